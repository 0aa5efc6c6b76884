// Package evaluation holds the longitudinal skill-level merge rule applied
// after a complete evaluation is submitted.
package evaluation

// PriorObservation is the most recent observed level for the same user+skill
// coming from a different evaluation, together with whether that evaluation
// belongs to the same campaign as the one being submitted.
type PriorObservation struct {
	ObservedLevel float64
	SameCampaign  bool
}

// MergeInput carries everything the merge rule looks at for one skill.
type MergeInput struct {
	// ObservedLevel is the level recorded in the evaluation being submitted.
	ObservedLevel float64
	// Prior is nil when no other evaluation ever observed this user+skill.
	Prior *PriorObservation
	// TrackedLevel is the persisted longitudinal level, nil when absent.
	TrackedLevel *float64
}

// MergeLevel computes the new tracked level. Each new observation pulls the
// reference value halfway toward itself:
//
//   - prior observation in the same campaign: average of that observation and
//     the new one (two peers within one campaign are reconciled equally);
//   - prior observation in another campaign: average of the tracked level
//     (falling back to the new observation when none exists) and the new one;
//   - no prior observation: average of the tracked level and the new one, or
//     the new observation unchanged when nothing was tracked.
func MergeLevel(in MergeInput) float64 {
	switch {
	case in.Prior != nil && in.Prior.SameCampaign:
		return (in.Prior.ObservedLevel + in.ObservedLevel) / 2
	case in.Prior != nil:
		base := in.ObservedLevel
		if in.TrackedLevel != nil {
			base = *in.TrackedLevel
		}
		return (base + in.ObservedLevel) / 2
	case in.TrackedLevel != nil:
		return (*in.TrackedLevel + in.ObservedLevel) / 2
	default:
		return in.ObservedLevel
	}
}
