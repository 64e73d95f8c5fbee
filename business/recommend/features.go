package recommend

import (
	"hash/fnv"
	"time"
)

// ComputeTimeBucket maps a timestamp to one of four coarse day parts used by
// the likelihood's context expert.
func ComputeTimeBucket(t time.Time) string {
	h := t.Hour()
	switch {
	case h < 6:
		return "night"
	case h < 12:
		return "morning"
	case h < 18:
		return "afternoon"
	default:
		return "evening"
	}
}

const numTimeBuckets = 4

// moods the product recognizes; used for Laplace smoothing denominators.
var knownMoods = []string{"Happy", "Tired", "Stressed", "Focused"}

// hashToUnit deterministically hashes a string into [0, 1].
func hashToUnit(s string) float64 {
	if s == "" {
		return 0
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return float64(h.Sum32()) / float64(^uint32(0))
}
