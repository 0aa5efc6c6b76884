// Package search holds the pure matching logic behind multi-criteria user
// search.
package search

import "skillboard/internal/pkg/oid"

// SkillRequirement asks for a minimum observed level on one skill.
type SkillRequirement struct {
	SkillID  oid.ID
	MinLevel int
}

// ObservationHit is one (user, skill) pair whose observed level already
// satisfies the requirement for that skill.
type ObservationHit struct {
	UserID  oid.ID
	SkillID oid.ID
}

// UsersMatchingAll groups qualifying hits per user and keeps only users whose
// matched skill-ID set covers every requirement. A user observed at A=3,B=1
// against requirements A>=3,B>=2 does not match; A=4,B=2 does.
func UsersMatchingAll(hits []ObservationHit, required []SkillRequirement) map[oid.ID]struct{} {
	requiredSet := make(map[oid.ID]struct{}, len(required))
	for _, r := range required {
		requiredSet[r.SkillID] = struct{}{}
	}
	if len(requiredSet) == 0 {
		return map[oid.ID]struct{}{}
	}

	matchedByUser := make(map[oid.ID]map[oid.ID]struct{})
	for _, h := range hits {
		if _, wanted := requiredSet[h.SkillID]; !wanted {
			continue
		}
		set, ok := matchedByUser[h.UserID]
		if !ok {
			set = make(map[oid.ID]struct{}, len(requiredSet))
			matchedByUser[h.UserID] = set
		}
		set[h.SkillID] = struct{}{}
	}

	out := make(map[oid.ID]struct{})
	for userID, set := range matchedByUser {
		if len(set) == len(requiredSet) {
			out[userID] = struct{}{}
		}
	}
	return out
}
