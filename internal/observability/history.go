package observability

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/career-navigator/internal/archive"
	"github.com/jonathan/career-navigator/internal/types"
)

const dateLayout = "2006-01-02 15:04"

// PrintProfile outputs an uploaded resume profile and the skills up for review.
func (p *Printer) PrintProfile(profile *types.Profile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Profile ID:  %s\n", profile.ID)
	if profile.Filename != "" {
		fmt.Fprintf(&sb, "File:        %s\n", profile.Filename)
	}
	if profile.CreatedAt != nil {
		fmt.Fprintf(&sb, "Uploaded:    %s\n", profile.CreatedAt.Local().Format(dateLayout))
	}

	review := profile.ReviewSkills()
	label := "Extracted Skills"
	if len(profile.ConfirmedSkills) > 0 {
		label = "Confirmed Skills"
	}
	fmt.Fprintf(&sb, "\n%s (%d):\n", label, len(review))
	for _, s := range review {
		fmt.Fprintf(&sb, "  • %s\n", s)
	}
	if len(review) == 0 {
		sb.WriteString("  (none)\n")
	}

	p.printBox("RESUME PROFILE", sb.String())
}

// PrintProfiles outputs the saved resume profiles.
func (p *Printer) PrintProfiles(profiles []types.Profile) {
	if len(profiles) == 0 {
		p.printBox("SAVED PROFILES", "No saved profiles.")
		return
	}
	var sb strings.Builder
	for _, prof := range profiles {
		name := prof.Filename
		if name == "" {
			name = "resume"
		}
		fmt.Fprintf(&sb, "%s  %s\n", prof.ID, name)
		fmt.Fprintf(&sb, "    %s  %d skills\n", formatTime(prof.CreatedAt), len(prof.ReviewSkills()))
	}
	p.printBox(fmt.Sprintf("SAVED PROFILES (%d)", len(profiles)), sb.String())
}

// PrintSearches outputs the past searches of one profile.
func (p *Printer) PrintSearches(profileID string, searches []types.SearchRecord) {
	title := fmt.Sprintf("SEARCHES FOR %s", profileID)
	if len(searches) == 0 {
		p.printBox(title, "No searches recorded for this profile.")
		return
	}
	var sb strings.Builder
	for _, s := range searches {
		where := s.Location
		if where == "" {
			where = "anywhere"
		}
		fmt.Fprintf(&sb, "%s  %s in %s\n", s.ID, s.Query, where)
		fmt.Fprintf(&sb, "    %s  jobs %d  avg %.0f%%  high %d  reach %.1f%%\n",
			formatTime(s.CreatedAt), s.TotalJobs, s.AverageScore, s.HighMatchJobs, s.MarketReach)
		if len(s.Portals) > 0 {
			fmt.Fprintf(&sb, "    portals: %s\n", strings.Join(s.Portals, ", "))
		}
	}
	p.printBox(title, sb.String())
}

// PrintArchive outputs stored search snapshots.
func (p *Printer) PrintArchive(entries []archive.Entry) {
	if len(entries) == 0 {
		p.printBox("ARCHIVED SEARCHES", "No archived searches.")
		return
	}
	var sb strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&sb, "%s  %s\n", e.TaskID, e.Query)
		saved := e.SavedAt
		fmt.Fprintf(&sb, "    %s  jobs %d  avg %.0f%%\n", formatTime(&saved), e.TotalJobs, e.AvgMatchScore)
	}
	p.printBox(fmt.Sprintf("ARCHIVED SEARCHES (%d)", len(entries)), sb.String())
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "unknown date"
	}
	return t.Local().Format(dateLayout)
}
