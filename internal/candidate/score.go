package candidate

import (
	"math"
	"regexp"
	"strconv"

	"course_assembler/internal/domain"
)

// Weights blend the metadata sub-scores into MetaScore.
type Weights struct {
	Views    float64
	Likes    float64
	Duration float64
}

func DefaultWeights() Weights {
	return Weights{Views: 0.4, Likes: 0.3, Duration: 0.3}
}

// MetaScore rates a candidate from popularity, like ratio and length.
// The result is always within [0,1] for weights that sum to 1.
func MetaScore(c *domain.VideoCandidate, w Weights) float64 {
	views := float64(max(c.ViewCount, 0))
	likes := float64(max(c.LikeCount, 0))

	viewScore := clamp01(math.Log10(views+1) / 6.0)
	likeScore := clamp01(likes / (views + 1) * 20)
	durationScore := DurationScore(c.DurationSeconds)

	return clamp01(w.Views*viewScore + w.Likes*likeScore + w.Duration*durationScore)
}

// DurationScore prefers 5-20 minute videos.
func DurationScore(seconds int) float64 {
	switch {
	case seconds >= 300 && seconds <= 1200:
		return 1.0
	case seconds >= 120 && seconds < 300:
		return 0.7
	case seconds > 1200 && seconds <= 3600:
		return 0.6
	default:
		return 0.3
	}
}

var isoDuration = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// ParseISODuration converts "PT1H2M10S" or "P1DT2H" into seconds.
// Unparseable input yields 0.
func ParseISODuration(s string) int {
	m := isoDuration.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	total := 0
	for i, mult := range []int{86400, 3600, 60, 1} {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return 0
		}
		total += n * mult
	}
	return total
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
