package observability

import (
	"fmt"
	"strings"

	"github.com/jonathan/career-navigator/internal/derive"
	"github.com/jonathan/career-navigator/internal/poller"
	"github.com/jonathan/career-navigator/internal/types"
)

// PrintStatus outputs one line of poll progress.
func (p *Printer) PrintStatus(snap poller.Snapshot) {
	line := snap.StatusLine
	if snap.State.Terminal() && snap.Message != "" {
		line = snap.Message
	}
	if line == "" {
		line = snap.State.String()
	}
	p.printf("[%s] %s\n", snap.TaskID, line)
}

// PrintDashboard outputs the market overview of a reconciled search:
// the market score card, skill demand heatmap, top locations, work modes
// and the skills worth learning next.
func (p *Printer) PrintDashboard(snap poller.Snapshot, confirmed []string) {
	analytics := snap.Analytics
	totalJobs := len(snap.Jobs)
	if totalJobs == 0 && analytics != nil {
		totalJobs = analytics.TotalJobs
	}

	title := "MARKET DASHBOARD"
	if snap.Query != "" {
		title = fmt.Sprintf("MARKET DASHBOARD: %s", strings.ToUpper(snap.Query))
	}

	score := marketScore(snap.Jobs, analytics)
	var sb strings.Builder
	fmt.Fprintf(&sb, "Market Score:  %s\n", derive.ScoreLabel(score))
	fmt.Fprintf(&sb, "               %s\n", derive.Recommendation(score))
	fmt.Fprintf(&sb, "Jobs Found:    %d\n", totalJobs)
	if analytics != nil && analytics.Source != "" {
		fmt.Fprintf(&sb, "Source:        %s\n", analytics.Source)
	}
	p.printBox(title, sb.String())

	if analytics == nil {
		p.printBox("MARKET ANALYTICS", "Analytics are unavailable for this search.")
		return
	}

	p.printHeatmap(derive.Heatmap(analytics, totalJobs, confirmed))
	p.printCounts("TOP LOCATIONS", analytics.TopLocations, maxItemsToShow)
	p.printCounts("WORK MODES", analytics.WorkModeDistribution, len(analytics.WorkModeDistribution))
	if len(analytics.PortalBreakdown) > 0 {
		p.printCounts("PORTALS", analytics.PortalBreakdown, len(analytics.PortalBreakdown))
	}

	missing := derive.MissingTopSkills(analytics, confirmed, derive.DefaultRoadmapSkills)
	if len(missing) > 0 {
		var gb strings.Builder
		for _, s := range missing {
			fmt.Fprintf(&gb, "  • %s\n", s)
		}
		p.printBox("SKILLS TO LEARN NEXT", gb.String())
	}
}

func (p *Printer) printHeatmap(rows []derive.HeatRow) {
	if len(rows) == 0 {
		p.printBox("SKILL DEMAND", "No skill demand data.")
		return
	}
	var sb strings.Builder
	count := min(len(rows), heatmapRows)
	for _, row := range rows[:count] {
		mark := " "
		if row.Verified {
			mark = "✓"
		}
		fmt.Fprintf(&sb, "%s %-20s %s %5s%%\n", mark, truncate(row.Name, 20), bar(row.Share, 20), row.Percentage)
	}
	writeMore(&sb, len(rows), count)
	p.printBox("SKILL DEMAND", sb.String())
}

func (p *Printer) printCounts(title string, counts []types.NamedCount, limit int) {
	if len(counts) == 0 {
		return
	}
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	var sb strings.Builder
	count := min(len(counts), limit)
	for _, c := range counts[:count] {
		share := 0.0
		if total > 0 {
			share = float64(c.Count) / float64(total) * 100
		}
		fmt.Fprintf(&sb, "%-24s %4d  %s\n", truncate(c.Name, 24), c.Count, bar(share, 20))
	}
	writeMore(&sb, len(counts), count)
	p.printBox(title, sb.String())
}

// marketScore prefers the backend's average and falls back to the mean of
// the listed jobs.
func marketScore(jobs []types.Job, analytics *types.Analytics) float64 {
	if analytics != nil && (analytics.AvgMatchScore != 0 || len(jobs) == 0) {
		return analytics.AvgMatchScore
	}
	if len(jobs) == 0 {
		return 0
	}
	var sum float64
	for _, j := range jobs {
		sum += j.MatchScore
	}
	return sum / float64(len(jobs))
}
