package main

import (
	"fmt"
	"strings"

	"github.com/jonathan/career-navigator/internal/derive"
	"github.com/jonathan/career-navigator/internal/types"
	"github.com/spf13/cobra"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List the jobs found by a search",
	Long: `Wait for a search task, then list its jobs as cards with the match band, matched and missing skills and the apply link.
Filters combine: a job is shown when its score reaches --min-score, it requires any of the --skill values and
its location contains any of the --location values.`,
	RunE: runJobs,
}

var (
	jobsTaskID      string
	jobsProfileID   string
	jobsConfirmed   []string
	jobsMinScore    float64
	jobsSkills      []string
	jobsLocations   []string
	jobsSort        string
	jobsLimit       int
	jobsListFilters bool
	jobsDescription int
)

func init() {
	jobsCmd.Flags().StringVarP(&jobsTaskID, "task-id", "t", "", "Search task ID (required)")
	jobsCmd.Flags().StringVar(&jobsProfileID, "profile-id", "", "Profile whose confirmed skills split matched and missing skills")
	jobsCmd.Flags().StringSliceVar(&jobsConfirmed, "have", nil, "Confirmed skill (repeatable; overrides --profile-id skills)")
	jobsCmd.Flags().Float64Var(&jobsMinScore, "min-score", 0, "Minimum match score (defaults to config min_score)")
	jobsCmd.Flags().StringSliceVarP(&jobsSkills, "skill", "s", nil, "Only jobs requiring this skill (repeatable)")
	jobsCmd.Flags().StringSliceVarP(&jobsLocations, "location", "l", nil, "Only jobs in this location (repeatable)")
	jobsCmd.Flags().StringVar(&jobsSort, "sort", derive.SortByMatchScore, "Sort key; match_score sorts best first, anything else keeps API order")
	jobsCmd.Flags().IntVarP(&jobsLimit, "limit", "n", 0, "Show at most this many jobs (0 shows all)")
	jobsCmd.Flags().IntVar(&jobsDescription, "description-chars", 0, "Show up to this many characters of each job description")
	jobsCmd.Flags().BoolVar(&jobsListFilters, "list-filters", false, "Print the skills and locations available as filters")

	_ = jobsCmd.MarkFlagRequired("task-id")

	rootCmd.AddCommand(jobsCmd)
}

func runJobs(cmd *cobra.Command, _ []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	confirmed, err := confirmedSkills(ctx, jobsProfileID, jobsConfirmed)
	if err != nil {
		return err
	}

	snap, err := pollSearch(ctx, types.JobSearch{TaskID: jobsTaskID})
	if err != nil {
		return fmt.Errorf("search did not complete: %w", err)
	}

	if jobsListFilters {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Skills:    %s\n", strings.Join(derive.UniqueSkills(snap.Jobs), ", "))
		fmt.Fprintf(out, "Locations: %s\n", strings.Join(derive.UniqueLocations(snap.Analytics), ", "))
		return nil
	}

	minScore := app.cfg.MinScore
	if cmd.Flags().Changed("min-score") {
		minScore = jobsMinScore
	}

	shown := derive.SortJobs(derive.FilterJobs(snap.Jobs, derive.Filter{
		MinScore:  minScore,
		Skills:    jobsSkills,
		Locations: jobsLocations,
	}), jobsSort)
	if jobsLimit > 0 && len(shown) > jobsLimit {
		shown = shown[:jobsLimit]
	}

	app.printer.SetDescriptionLength(jobsDescription)
	app.printer.PrintJobs(shown, len(snap.Jobs), confirmed)
	return nil
}
