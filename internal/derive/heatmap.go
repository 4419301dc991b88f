package derive

import (
	"math"
	"strconv"

	"github.com/jonathan/career-navigator/internal/skills"
	"github.com/jonathan/career-navigator/internal/types"
)

// HeatRow is one skill of the demand heatmap.
type HeatRow struct {
	Name  string
	Count int
	// Share is the percentage of jobs requiring the skill, in [0, 100].
	Share float64
	// Percentage is Share with one decimal, as displayed.
	Percentage string
	Verified   bool
}

// HeatmapRow computes the demand share of one skill across totalJobs jobs.
// With no jobs the percentage is "0.0".
func HeatmapRow(skill types.NamedCount, totalJobs int, confirmed []string) HeatRow {
	return heatmapRow(skill, totalJobs, skills.NewSet(confirmed...))
}

// Heatmap computes a row for every top skill of analytics.
func Heatmap(analytics *types.Analytics, totalJobs int, confirmed []string) []HeatRow {
	rows := []HeatRow{}
	if analytics == nil {
		return rows
	}
	have := skills.NewSet(confirmed...)
	for _, s := range analytics.TopSkills {
		rows = append(rows, heatmapRow(s, totalJobs, have))
	}
	return rows
}

func heatmapRow(skill types.NamedCount, totalJobs int, have *skills.Set) HeatRow {
	var share float64
	if totalJobs > 0 {
		share = float64(skill.Count) / float64(totalJobs) * 100
		share = math.Max(0, math.Min(100, share))
		share = round1(share)
	}
	return HeatRow{
		Name:       skill.Name,
		Count:      skill.Count,
		Share:      share,
		Percentage: strconv.FormatFloat(share, 'f', 1, 64),
		Verified:   have.Contains(skill.Name),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
