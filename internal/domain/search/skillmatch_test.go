package search

import (
	"testing"

	"skillboard/internal/pkg/oid"
)

func TestUsersMatchingAll(t *testing.T) {
	skillA := oid.New()
	skillB := oid.New()
	userPartial := oid.New()
	userFull := oid.New()

	required := []SkillRequirement{
		{SkillID: skillA, MinLevel: 3},
		{SkillID: skillB, MinLevel: 2},
	}

	// userPartial qualified only on A (their B observation was below the
	// minimum, so the repository never produced a hit for it).
	hits := []ObservationHit{
		{UserID: userPartial, SkillID: skillA},
		{UserID: userFull, SkillID: skillA},
		{UserID: userFull, SkillID: skillB},
	}

	matched := UsersMatchingAll(hits, required)

	if _, ok := matched[userPartial]; ok {
		t.Fatalf("user qualifying on a single skill must not match")
	}
	if _, ok := matched[userFull]; !ok {
		t.Fatalf("user qualifying on every skill must match")
	}
	if len(matched) != 1 {
		t.Fatalf("expected exactly 1 match, got %d", len(matched))
	}
}

func TestUsersMatchingAll_DuplicateHitsCountOnce(t *testing.T) {
	skillA := oid.New()
	skillB := oid.New()
	user := oid.New()

	// Two evaluations observed the same skill; the set must not treat the
	// duplicate as covering the second requirement.
	hits := []ObservationHit{
		{UserID: user, SkillID: skillA},
		{UserID: user, SkillID: skillA},
	}
	required := []SkillRequirement{
		{SkillID: skillA, MinLevel: 1},
		{SkillID: skillB, MinLevel: 1},
	}

	if matched := UsersMatchingAll(hits, required); len(matched) != 0 {
		t.Fatalf("expected no matches, got %d", len(matched))
	}
}

func TestUsersMatchingAll_IgnoresUnrequestedSkills(t *testing.T) {
	skillA := oid.New()
	user := oid.New()

	hits := []ObservationHit{
		{UserID: user, SkillID: oid.New()},
		{UserID: user, SkillID: skillA},
	}
	required := []SkillRequirement{{SkillID: skillA, MinLevel: 2}}

	matched := UsersMatchingAll(hits, required)
	if _, ok := matched[user]; !ok {
		t.Fatalf("expected user to match")
	}
}

func TestUsersMatchingAll_EmptyRequirements(t *testing.T) {
	if got := UsersMatchingAll([]ObservationHit{{UserID: oid.New(), SkillID: oid.New()}}, nil); len(got) != 0 {
		t.Fatalf("empty requirement list must match nobody, got %d", len(got))
	}
}
