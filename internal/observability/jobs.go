package observability

import (
	"fmt"
	"strings"

	"github.com/jonathan/career-navigator/internal/derive"
	"github.com/jonathan/career-navigator/internal/fetch"
	"github.com/jonathan/career-navigator/internal/types"
)

// PrintJobs outputs one card per job. total is the count before filtering.
func (p *Printer) PrintJobs(jobs []types.Job, total int, confirmed []string) {
	if len(jobs) == 0 {
		p.printBox(fmt.Sprintf("JOBS (0 of %d)", total), "No jobs match the current filters.")
		return
	}

	p.printf("Showing %d of %d jobs\n", len(jobs), total)
	for i, job := range jobs {
		p.printJobCard(i+1, job, confirmed)
	}
}

func (p *Printer) printJobCard(n int, job types.Job, confirmed []string) {
	var sb strings.Builder

	if job.Company != "" {
		fmt.Fprintf(&sb, "Company:   %s\n", job.Company)
	}
	if job.Location != "" {
		fmt.Fprintf(&sb, "Location:  %s\n", job.Location)
	}
	if job.WorkMode != "" {
		fmt.Fprintf(&sb, "Mode:      %s\n", job.WorkMode)
	}
	fmt.Fprintf(&sb, "Score:     %s Match (%s)\n", derive.ScoreLabel(job.MatchScore), derive.MatchBand(job.MatchScore))

	part := derive.PartitionSkills(job.Skills, confirmed)
	if len(part.Matched) > 0 {
		fmt.Fprintf(&sb, "Have:      %s\n", joinLimited(part.Matched, cardMatched))
	}
	if len(part.Missing) > 0 {
		fmt.Fprintf(&sb, "Missing:   %s\n", joinLimited(part.Missing, cardMissing))
	}
	if portal := fetch.PortalLabel(job.Portal, job.Link); portal != "" {
		fmt.Fprintf(&sb, "Portal:    %s\n", portal)
	}
	if p.descriptionRunes > 0 && job.Description != "" {
		excerpt := strings.Join(strings.Fields(fetch.HTMLToText(job.Description)), " ")
		fmt.Fprintf(&sb, "\n%s\n", wrap(truncate(excerpt, p.descriptionRunes), boxWidth-4))
	}

	title := job.Title
	if title == "" {
		title = "Untitled role"
	}
	p.printBox(fmt.Sprintf("%d. %s", n, title), sb.String())
	// Links are printed in full below the card.
	if job.Link != "" {
		p.printf("  Apply: %s\n", job.Link)
	}
}
