package reporting

import (
	"testing"

	"skillboard/internal/pkg/oid"
)

func TestComputeKeySkillsMastery_AnyMemberSuffices(t *testing.T) {
	welding := oid.New()
	safety := oid.New()

	// Two members share one job skill set. Only one masters welding; nobody
	// was evaluated on safety.
	members := []MemberSnapshot{
		{
			UserID: oid.New(),
			JobSkills: []JobSkill{
				{SkillID: welding, ExpectedLevel: 3},
				{SkillID: safety, ExpectedLevel: 2},
			},
			TrackedLevels: map[oid.ID]float64{welding: 1},
		},
		{
			UserID: oid.New(),
			JobSkills: []JobSkill{
				{SkillID: welding, ExpectedLevel: 3},
				{SkillID: safety, ExpectedLevel: 2},
			},
			TrackedLevels: map[oid.ID]float64{welding: 3},
		},
	}

	got := ComputeKeySkillsMastery(members)
	if got.TotalEvaluatedSkillsCount != 1 {
		t.Fatalf("expected 1 evaluated unique skill, got %d", got.TotalEvaluatedSkillsCount)
	}
	if got.MasteredSkillsCount != 1 {
		t.Fatalf("expected welding mastered by the second member, got %d", got.MasteredSkillsCount)
	}
	if got.Percentage != 100 {
		t.Fatalf("expected 100%%, got %d", got.Percentage)
	}
}

func TestComputeKeySkillsMastery_NothingEvaluated(t *testing.T) {
	members := []MemberSnapshot{
		{
			UserID:    oid.New(),
			JobSkills: []JobSkill{{SkillID: oid.New(), ExpectedLevel: 2}},
		},
	}
	got := ComputeKeySkillsMastery(members)
	if got.Percentage != 0 || got.TotalEvaluatedSkillsCount != 0 || got.MasteredSkillsCount != 0 {
		t.Fatalf("expected zeroed mastery, got %+v", got)
	}
}

func TestComputeEvaluationProgress_Bounds(t *testing.T) {
	a, b := oid.New(), oid.New()

	got := ComputeEvaluationProgress(4, map[oid.ID]struct{}{a: {}, b: {}})
	if got.Percentage != 50 {
		t.Fatalf("expected 50%%, got %d", got.Percentage)
	}
	if got.EvaluatedMembersCount != 2 || got.TotalMembersCount != 4 {
		t.Fatalf("unexpected counts: %+v", got)
	}

	empty := ComputeEvaluationProgress(0, nil)
	if empty.Percentage != 0 {
		t.Fatalf("empty team must report 0%%, got %d", empty.Percentage)
	}

	full := ComputeEvaluationProgress(3, map[oid.ID]struct{}{a: {}, b: {}, oid.New(): {}})
	if full.Percentage < 0 || full.Percentage > 100 {
		t.Fatalf("percentage out of bounds: %d", full.Percentage)
	}
}
