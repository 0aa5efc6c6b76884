// Package reporting computes the aggregate views built on top of tracked
// skill levels: the per-job level distribution and manager team statistics.
package reporting

import "math"

const (
	MinLevel = 0
	MaxLevel = 4
)

// LevelDistribution counts tracked levels per integer proficiency level.
type LevelDistribution map[int]int

// BucketLevels tallies tracked levels into the fixed 0..4 histogram. Null
// levels, fractional merge results and values outside the range are dropped
// from the tally, never reported as errors.
func BucketLevels(levels []*float64) LevelDistribution {
	dist := make(LevelDistribution, MaxLevel-MinLevel+1)
	for lvl := MinLevel; lvl <= MaxLevel; lvl++ {
		dist[lvl] = 0
	}

	for _, lvl := range levels {
		if lvl == nil {
			continue
		}
		v := *lvl
		if v != math.Trunc(v) {
			continue
		}
		n := int(v)
		if n < MinLevel || n > MaxLevel {
			continue
		}
		dist[n]++
	}
	return dist
}

// Percentage rounds part/whole to the nearest whole percent, 0 when whole is 0.
func Percentage(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}
