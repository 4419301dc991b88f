package main

import (
	"fmt"

	"github.com/jonathan/career-navigator/internal/derive"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <resume.pdf>",
	Short: "Upload a resume, scan the market and show the dashboard",
	Long: `Run the whole flow in one command: upload the resume, apply --add-skill and --remove-skill to the
extracted skills, confirm them, start the market scan, wait for the results and print the dashboard
followed by the best matching jobs.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

var (
	runAddSkills    []string
	runRemoveSkills []string
	runRole         string
	runLocation     string
	runPortals      []string
	runSerpAPIKey   string
	runNumJobs      int
	runTopJobs      int
	runArchive      bool
)

func init() {
	runCmd.Flags().StringSliceVar(&runAddSkills, "add-skill", nil, "Skill to add to the extracted skills (repeatable)")
	runCmd.Flags().StringSliceVar(&runRemoveSkills, "remove-skill", nil, "Extracted skill to drop (repeatable)")
	addSearchFlags(runCmd, &runRole, &runLocation, &runPortals, &runSerpAPIKey, &runNumJobs)
	runCmd.Flags().IntVar(&runTopJobs, "top", 5, "Best matching jobs to list after the dashboard (0 lists none)")
	runCmd.Flags().BoolVar(&runArchive, "archive", false, "Store the ready search in the archive database")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	params, err := searchParamsFrom(cmd, runRole, runLocation, runPortals, runSerpAPIKey, runNumJobs)
	if err != nil {
		return err
	}

	profile, err := uploadResume(cmd, args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Uploaded %s as profile %s\n", args[0], profile.ID)

	confirmed := reviewSkills(profile.Skills.Labels(), runAddSkills, runRemoveSkills)
	if len(confirmed) == 0 {
		return fmt.Errorf("no skills left to confirm; use --add-skill")
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	search, err := confirmAndSearch(ctx, profile, confirmed, params)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Search started: %s\n", search.TaskID)

	snap, err := pollSearch(ctx, *search)
	if err != nil {
		return fmt.Errorf("search did not complete: %w", err)
	}

	app.printer.PrintDashboard(snap, confirmed)
	if runTopJobs > 0 {
		best := derive.SortJobs(snap.Jobs, derive.SortByMatchScore)
		if len(best) > runTopJobs {
			best = best[:runTopJobs]
		}
		app.printer.PrintJobs(best, len(snap.Jobs), confirmed)
	}

	if runArchive {
		if err := archiveSnapshot(ctx, snap, profile.ID); err != nil {
			return fmt.Errorf("failed to archive search: %w", err)
		}
		fmt.Fprintf(out, "Archived search %s\n", snap.TaskID)
	}
	return nil
}
