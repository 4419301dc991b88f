package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/jonathan/career-navigator/internal/archive"
	"github.com/spf13/cobra"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Manage searches stored in the archive database",
	Long:  "Searches saved with 'dashboard --archive' or 'run --archive' are kept in PostgreSQL (DATABASE_URL or --db-url).",
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived searches, newest first",
	Args:  cobra.NoArgs,
	RunE:  runArchiveList,
}

var archiveShowCmd = &cobra.Command{
	Use:   "show <task-id>",
	Short: "Show the dashboard of an archived search",
	Args:  cobra.ExactArgs(1),
	RunE:  runArchiveShow,
}

var archiveDeleteCmd = &cobra.Command{
	Use:   "delete <task-id>",
	Short: "Delete an archived search",
	Args:  cobra.ExactArgs(1),
	RunE:  runArchiveDelete,
}

var (
	archiveLimit  int
	archiveSkills []string
	archiveJobs   bool
)

func init() {
	archiveListCmd.Flags().IntVarP(&archiveLimit, "limit", "n", archive.DefaultListLimit, "Maximum searches to list")
	archiveShowCmd.Flags().StringSliceVarP(&archiveSkills, "skill", "s", nil, "Confirmed skill (repeatable; marks the heatmap)")
	archiveShowCmd.Flags().BoolVar(&archiveJobs, "jobs", false, "Also list the stored jobs")

	archiveCmd.AddCommand(archiveListCmd)
	archiveCmd.AddCommand(archiveShowCmd)
	archiveCmd.AddCommand(archiveDeleteCmd)
	rootCmd.AddCommand(archiveCmd)
}

func runArchiveList(cmd *cobra.Command, _ []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	db, err := openArchive(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	entries, err := db.ListSnapshots(ctx, archiveLimit)
	if err != nil {
		return err
	}
	app.printer.PrintArchive(entries)
	return nil
}

func runArchiveShow(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	db, err := openArchive(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	snap, err := db.GetSnapshot(ctx, args[0])
	if err != nil {
		return err
	}
	if snap == nil {
		return fmt.Errorf("no archived search %s", args[0])
	}

	confirmed, err := confirmedSkills(ctx, snap.ProfileID, archiveSkills)
	if err != nil {
		app.logger.Warn("profile lookup failed, showing without confirmed skills",
			slog.String("profile_id", snap.ProfileID), slog.Any("error", err))
		confirmed = []string{}
	}

	poll := snap.Poll()
	app.printer.PrintDashboard(poll, confirmed)
	if archiveJobs {
		app.printer.PrintJobs(poll.Jobs, len(poll.Jobs), confirmed)
	}
	return nil
}

func runArchiveDelete(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	db, err := openArchive(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.DeleteSnapshot(ctx, args[0]); err != nil {
		if errors.Is(err, archive.ErrNotFound) {
			return fmt.Errorf("no archived search %s", args[0])
		}
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted archived search %s\n", args[0])
	return nil
}
