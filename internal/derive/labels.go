package derive

import (
	"math"
	"strconv"
)

// Match bands of a job score.
const (
	BandHigh      = "High Match"
	BandPotential = "Potential Match"
	BandLow       = "Low Match"
)

// MatchBand classifies a raw match score.
func MatchBand(score float64) string {
	switch {
	case score >= 80:
		return BandHigh
	case score >= 50:
		return BandPotential
	default:
		return BandLow
	}
}

var recommendations = []struct {
	min  float64
	text string
}{
	{90, "Exceptional fit! You're ready for top-tier roles."},
	{80, "Excellent profile. Very strong market alignment."},
	{70, "Great match. You qualify for most positions."},
	{60, "Good foundation. A few skills will boost you up."},
	{50, "Solid start. Targeted upskilling recommended."},
	{40, "Fair match. Focus on core requirements."},
	{30, "Early stage. Build your portfolio projects."},
	{20, "Learning curve ahead. Don't give up!"},
	{10, "Just starting. Every expert was once a beginner."},
}

// Recommendation returns the market score card advice for an average score.
func Recommendation(score float64) string {
	rounded := math.Round(score)
	for _, r := range recommendations {
		if rounded >= r.min {
			return r.text
		}
	}
	return "New journey. Let's build your skills from scratch."
}

// ScoreLabel formats a score as a whole percentage, e.g. "82%".
func ScoreLabel(score float64) string {
	return strconv.Itoa(RoundScore(score)) + "%"
}

// RoundScore rounds a score for display.
func RoundScore(score float64) int {
	if math.IsNaN(score) {
		return 0
	}
	return int(math.Round(score))
}
