package observability

import (
	"fmt"
	"strings"

	"github.com/jonathan/career-navigator/internal/derive"
	"github.com/jonathan/career-navigator/internal/types"
)

// PrintSimulation outputs the effect of adding skills to a profile.
func (p *Printer) PrintSimulation(added []string, result *types.SimulationResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Added Skills:  %s\n\n", strings.Join(added, ", "))
	fmt.Fprintf(&sb, "Average Score: %s → %s (%s)\n",
		derive.ScoreLabel(result.OriginalAvgScore), derive.ScoreLabel(result.NewAvgScore), signed(result.ScoreDelta, "%"))
	if result.OriginalReach != nil {
		fmt.Fprintf(&sb, "Market Reach:  %.1f%% → %.1f%% (%s)\n", *result.OriginalReach, result.NewReach, signed(result.ReachDelta, "%"))
	} else {
		fmt.Fprintf(&sb, "Market Reach:  %.1f%% (%s)\n", result.NewReach, signed(result.ReachDelta, "%"))
	}
	fmt.Fprintf(&sb, "Jobs Improved: %d\n", result.JobsImproved)

	if len(result.TopImprovements) > 0 {
		sb.WriteString("\nBiggest Gains:\n")
		count := min(len(result.TopImprovements), maxItemsToShow)
		for _, imp := range result.TopImprovements[:count] {
			fmt.Fprintf(&sb, "  • %s @ %s: %s → %s\n", imp.Title, imp.Company,
				derive.ScoreLabel(imp.OldScore), derive.ScoreLabel(imp.NewScore))
		}
		writeMore(&sb, len(result.TopImprovements), count)
	}

	p.printBox("SKILL SIMULATION", sb.String())
}

// PrintRoles outputs AI role suggestions for a resume.
func (p *Printer) PrintRoles(suggestions *types.RoleSuggestions) {
	if suggestions == nil || len(suggestions.Roles) == 0 {
		p.printBox("SUGGESTED ROLES", "No role suggestions returned.")
		return
	}
	var sb strings.Builder
	for i, r := range suggestions.Roles {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, r.Title)
		if r.Reason != "" {
			fmt.Fprintf(&sb, "%s\n", indent(wrap(r.Reason, boxWidth-7), "   "))
		}
		if len(r.Skills) > 0 {
			fmt.Fprintf(&sb, "   Skills: %s\n", joinLimited(r.Skills, maxItemsToShow))
		}
	}
	p.printBox("SUGGESTED ROLES", sb.String())
}

// PrintRoadmap outputs a monthly learning plan and portfolio projects.
func (p *Printer) PrintRoadmap(targetRole string, roadmap *types.Roadmap) {
	if roadmap == nil {
		return
	}

	var sb strings.Builder
	if len(roadmap.MonthlyPlan) == 0 {
		sb.WriteString("No monthly plan returned.\n")
	}
	for _, m := range roadmap.MonthlyPlan {
		fmt.Fprintf(&sb, "Month %d: %s\n", m.Month, m.FocusTopic)
		if len(m.SkillsToLearn) > 0 {
			fmt.Fprintf(&sb, "  Learn:    %s\n", strings.Join(m.SkillsToLearn, ", "))
		}
		for _, res := range m.Resources {
			fmt.Fprintf(&sb, "  Resource: %s\n", res)
		}
		if m.ProjectIdea != "" {
			fmt.Fprintf(&sb, "  Build:    %s\n", m.ProjectIdea)
		}
	}
	title := "LEARNING ROADMAP"
	if targetRole != "" {
		title = fmt.Sprintf("LEARNING ROADMAP: %s", strings.ToUpper(targetRole))
	}
	p.printBox(title, sb.String())

	if len(roadmap.PortfolioProjects) == 0 {
		return
	}
	var pb strings.Builder
	for i, proj := range roadmap.PortfolioProjects {
		fmt.Fprintf(&pb, "%d. %s\n", i+1, proj.Title)
		if proj.Description != "" {
			fmt.Fprintf(&pb, "%s\n", indent(wrap(proj.Description, boxWidth-7), "   "))
		}
		if len(proj.TechStack) > 0 {
			fmt.Fprintf(&pb, "   Stack: %s\n", strings.Join(proj.TechStack, ", "))
		}
		if proj.RecruiterHook != "" {
			fmt.Fprintf(&pb, "   Hook:  %s\n", proj.RecruiterHook)
		}
	}
	p.printBox("PORTFOLIO PROJECTS", pb.String())
}

// PrintPivots outputs adjacent roles reachable from the current skills.
func (p *Printer) PrintPivots(currentRole string, pivots *types.PivotSuggestions) {
	title := "CAREER PIVOTS"
	if currentRole != "" {
		title = fmt.Sprintf("CAREER PIVOTS FROM %s", strings.ToUpper(currentRole))
	}
	if pivots == nil || len(pivots.Pivots) == 0 {
		p.printBox(title, "No pivot suggestions returned.")
		return
	}
	var sb strings.Builder
	for _, pv := range pivots.Pivots {
		fmt.Fprintf(&sb, "%s\n", pv.Role)
		fmt.Fprintf(&sb, "  Overlap: %d%%  %s\n", pv.OverlapPercentage, bar(float64(pv.OverlapPercentage), 20))
		if len(pv.BridgeSkills) > 0 {
			fmt.Fprintf(&sb, "  Bridge:  %s\n", strings.Join(pv.BridgeSkills, ", "))
		}
		if pv.SalaryPotential != "" {
			fmt.Fprintf(&sb, "  Salary:  %s\n", pv.SalaryPotential)
		}
	}
	p.printBox(title, sb.String())
}

// PrintComparison outputs a resume against job description gap analysis.
func (p *Printer) PrintComparison(cmp *types.Comparison) {
	if cmp == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Match Score:  %s (%s)\n", derive.ScoreLabel(cmp.MatchScore), derive.MatchBand(cmp.MatchScore))
	if cmp.CrossEncoderScore != 0 {
		fmt.Fprintf(&sb, "Cross-Encoder: %s\n", derive.ScoreLabel(cmp.CrossEncoderScore))
	}
	p.printBox("RESUME VS JOB", sb.String())

	analysis := cmp.LLMAnalysis
	if analysis.WhyItFits != "" {
		p.printBox("WHY IT FITS", wrap(analysis.WhyItFits, boxWidth-4))
	}
	if analysis.WhyItDoesntFit != "" {
		p.printBox("WHY IT DOESN'T FIT", wrap(analysis.WhyItDoesntFit, boxWidth-4))
	}
	if len(analysis.MissingSkills) > 0 {
		p.printBox("MISSING SKILLS", wrap(strings.Join(analysis.MissingSkills, ", "), boxWidth-4))
	}
	if len(analysis.ResumePatches) > 0 {
		var pb strings.Builder
		for _, patch := range analysis.ResumePatches {
			if patch.Section != "" {
				fmt.Fprintf(&pb, "[%s]\n", patch.Section)
			}
			fmt.Fprintf(&pb, "%s\n", indent(wrap("• "+patch.BulletPoint, boxWidth-8), "  "))
			if patch.Reason != "" {
				fmt.Fprintf(&pb, "%s\n", indent(wrap(patch.Reason, boxWidth-8), "    "))
			}
		}
		p.printBox("SUGGESTED RESUME BULLETS", pb.String())
	}
}

func signed(v float64, unit string) string {
	return fmt.Sprintf("%+.1f%s", v, unit)
}
