package evaluation

import "testing"

func fptr(f float64) *float64 { return &f }

func TestMergeLevel_FirstObservation(t *testing.T) {
	got := MergeLevel(MergeInput{ObservedLevel: 3})
	if got != 3 {
		t.Fatalf("expected 3, got %v", got)
	}
}

func TestMergeLevel_RepeatSameCampaignIsStable(t *testing.T) {
	// First submission: no prior, no tracked level.
	first := MergeLevel(MergeInput{ObservedLevel: 2})
	if first != 2 {
		t.Fatalf("expected 2 after first submission, got %v", first)
	}

	// Second submission of the same level in the same campaign averages two
	// equal values and must not drift.
	second := MergeLevel(MergeInput{
		ObservedLevel: 2,
		Prior:         &PriorObservation{ObservedLevel: 2, SameCampaign: true},
		TrackedLevel:  fptr(first),
	})
	if second != 2 {
		t.Fatalf("expected 2 after repeat submission, got %v", second)
	}
}

func TestMergeLevel_SameCampaignAveragesObservations(t *testing.T) {
	// Self-assessment said 1, manager says 3: reconciled as equal peers.
	got := MergeLevel(MergeInput{
		ObservedLevel: 3,
		Prior:         &PriorObservation{ObservedLevel: 1, SameCampaign: true},
		TrackedLevel:  fptr(1),
	})
	if got != 2 {
		t.Fatalf("expected 2, got %v", got)
	}
}

func TestMergeLevel_CrossCampaignSmoothsTrackedLevel(t *testing.T) {
	got := MergeLevel(MergeInput{
		ObservedLevel: 4,
		Prior:         &PriorObservation{ObservedLevel: 1, SameCampaign: false},
		TrackedLevel:  fptr(2),
	})
	if got != 3 {
		t.Fatalf("expected 3 (average of tracked 2 and observed 4), got %v", got)
	}
}

func TestMergeLevel_CrossCampaignWithoutTrackedLevel(t *testing.T) {
	// No persisted level: fall back to the new observation, which averages to
	// the observation itself.
	got := MergeLevel(MergeInput{
		ObservedLevel: 4,
		Prior:         &PriorObservation{ObservedLevel: 1, SameCampaign: false},
	})
	if got != 4 {
		t.Fatalf("expected 4, got %v", got)
	}
}

func TestMergeLevel_NoPriorBlendsWithTrackedLevel(t *testing.T) {
	got := MergeLevel(MergeInput{ObservedLevel: 1, TrackedLevel: fptr(3)})
	if got != 2 {
		t.Fatalf("expected 2, got %v", got)
	}
}
