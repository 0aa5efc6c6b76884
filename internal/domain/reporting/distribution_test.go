package reporting

import "testing"

func fptr(f float64) *float64 { return &f }

func TestBucketLevels_SumEqualsInRangeRows(t *testing.T) {
	levels := []*float64{fptr(0), fptr(1), fptr(1), fptr(4), fptr(3)}
	dist := BucketLevels(levels)

	sum := 0
	for lvl := MinLevel; lvl <= MaxLevel; lvl++ {
		sum += dist[lvl]
	}
	if sum != len(levels) {
		t.Fatalf("expected bucket sum %d, got %d", len(levels), sum)
	}
	if dist[1] != 2 {
		t.Fatalf("expected 2 rows at level 1, got %d", dist[1])
	}
}

func TestBucketLevels_DropsNullAndOutOfRange(t *testing.T) {
	levels := []*float64{nil, fptr(-1), fptr(5), fptr(2.5), fptr(2)}
	dist := BucketLevels(levels)

	sum := 0
	for _, n := range dist {
		sum += n
	}
	if sum != 1 {
		t.Fatalf("expected only the in-range integer row counted, got sum %d", sum)
	}
	if dist[2] != 1 {
		t.Fatalf("expected level 2 count 1, got %d", dist[2])
	}
}

func TestBucketLevels_AlwaysFiveBuckets(t *testing.T) {
	dist := BucketLevels(nil)
	if len(dist) != 5 {
		t.Fatalf("expected 5 buckets, got %d", len(dist))
	}
	for lvl := MinLevel; lvl <= MaxLevel; lvl++ {
		if dist[lvl] != 0 {
			t.Fatalf("expected empty bucket at %d", lvl)
		}
	}
}

func TestPercentage(t *testing.T) {
	cases := []struct {
		part, whole, want int
	}{
		{0, 0, 0},
		{1, 3, 33},
		{2, 3, 67},
		{5, 5, 100},
		{0, 7, 0},
	}
	for _, c := range cases {
		if got := Percentage(c.part, c.whole); got != c.want {
			t.Fatalf("Percentage(%d,%d) = %d, want %d", c.part, c.whole, got, c.want)
		}
	}
}
