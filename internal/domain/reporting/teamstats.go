package reporting

import "skillboard/internal/pkg/oid"

// MemberSnapshot is one direct report: the skills their job expects and the
// tracked levels they currently hold.
type MemberSnapshot struct {
	UserID    oid.ID
	JobSkills []JobSkill
	// TrackedLevels maps skillId to the member's persisted level. Entries
	// with a null level are omitted by the caller.
	TrackedLevels map[oid.ID]float64
}

type JobSkill struct {
	SkillID       oid.ID
	ExpectedLevel int
}

type KeySkillsMastery struct {
	MasteredSkillsCount       int `json:"masteredSkillsCount"`
	TotalEvaluatedSkillsCount int `json:"totalEvaluatedSkillsCount"`
	Percentage                int `json:"percentage"`
}

// ComputeKeySkillsMastery walks the union of distinct skills referenced by any
// team member's job. A skill counts as evaluated when at least one member has
// a tracked level for it, and as mastered when at least one member's tracked
// level reaches the skill's expected level. The booleans are per unique skill,
// not averaged per member.
func ComputeKeySkillsMastery(members []MemberSnapshot) KeySkillsMastery {
	type skillState struct {
		evaluated bool
		mastered  bool
	}
	states := make(map[oid.ID]*skillState)

	for _, m := range members {
		for _, js := range m.JobSkills {
			st, ok := states[js.SkillID]
			if !ok {
				st = &skillState{}
				states[js.SkillID] = st
			}
			lvl, observed := m.TrackedLevels[js.SkillID]
			if !observed {
				continue
			}
			st.evaluated = true
			if lvl >= float64(js.ExpectedLevel) {
				st.mastered = true
			}
		}
	}

	var mastered, evaluated int
	for _, st := range states {
		if !st.evaluated {
			continue
		}
		evaluated++
		if st.mastered {
			mastered++
		}
	}

	return KeySkillsMastery{
		MasteredSkillsCount:       mastered,
		TotalEvaluatedSkillsCount: evaluated,
		Percentage:                Percentage(mastered, evaluated),
	}
}

type EvaluationProgress struct {
	EvaluatedMembersCount int `json:"evaluatedMembersCount"`
	TotalMembersCount     int `json:"totalMembersCount"`
	Percentage            int `json:"percentage"`
}

// ComputeEvaluationProgress reports the share of team members with at least
// one evaluation in the current campaign. Without a current campaign the
// caller passes an empty evaluated set.
func ComputeEvaluationProgress(teamSize int, evaluatedMembers map[oid.ID]struct{}) EvaluationProgress {
	count := len(evaluatedMembers)
	if count > teamSize {
		count = teamSize
	}
	return EvaluationProgress{
		EvaluatedMembersCount: count,
		TotalMembersCount:     teamSize,
		Percentage:            Percentage(count, teamSize),
	}
}
