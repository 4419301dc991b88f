package main

import (
	"fmt"

	"github.com/jonathan/career-navigator/internal/types"
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Wait for a search and show the market dashboard",
	Long: `Poll a search task until its results are ready, then show the market score, skill demand heatmap,
top locations, work modes and the skills worth learning next.

A finished task that the API no longer tracks is recovered from its stored results when possible.`,
	RunE: runDashboard,
}

var (
	dashTaskID    string
	dashProfileID string
	dashSkills    []string
	dashQuery     string
	dashLocation  string
	dashArchive   bool
)

func init() {
	dashboardCmd.Flags().StringVarP(&dashTaskID, "task-id", "t", "", "Search task ID (required)")
	dashboardCmd.Flags().StringVar(&dashProfileID, "profile-id", "", "Profile whose confirmed skills mark the heatmap")
	dashboardCmd.Flags().StringSliceVarP(&dashSkills, "skill", "s", nil, "Confirmed skill (repeatable; overrides --profile-id skills)")
	dashboardCmd.Flags().StringVar(&dashQuery, "query", "", "Role searched for, shown until the results report it")
	dashboardCmd.Flags().StringVar(&dashLocation, "location", "", "Location searched")
	dashboardCmd.Flags().BoolVar(&dashArchive, "archive", false, "Store the ready search in the archive database")

	_ = dashboardCmd.MarkFlagRequired("task-id")

	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	confirmed, err := confirmedSkills(ctx, dashProfileID, dashSkills)
	if err != nil {
		return err
	}

	snap, err := pollSearch(ctx, types.JobSearch{TaskID: dashTaskID, Query: dashQuery, Location: dashLocation})
	if err != nil {
		return fmt.Errorf("search did not complete: %w", err)
	}

	app.printer.PrintDashboard(snap, confirmed)

	if dashArchive {
		if err := archiveSnapshot(ctx, snap, dashProfileID); err != nil {
			return fmt.Errorf("failed to archive search: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Archived search %s\n", snap.TaskID)
	}
	return nil
}
