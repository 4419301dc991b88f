package main

import (
	"fmt"

	"github.com/jonathan/career-navigator/internal/types"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse and manage saved profiles and past searches",
}

var historyProfilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List saved resume profiles",
	Args:  cobra.NoArgs,
	RunE:  runHistoryProfiles,
}

var historySearchesCmd = &cobra.Command{
	Use:   "searches <profile-id>",
	Short: "List the past searches of a profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistorySearches,
}

var historyDeleteProfileCmd = &cobra.Command{
	Use:   "delete-profile <profile-id>",
	Short: "Delete a saved profile and its searches",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDeleteProfile,
}

var historyDeleteSearchCmd = &cobra.Command{
	Use:   "delete-search <search-id>",
	Short: "Delete a past search",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDeleteSearch,
}

var historyRestoreCmd = &cobra.Command{
	Use:   "restore <search-id>",
	Short: "Reopen a past search and show its dashboard",
	Long: `Make a past search the active one and load its stored results. The API no longer tracks the task,
so the results are recovered by search ID.`,
	Args: cobra.ExactArgs(1),
	RunE: runHistoryRestore,
}

var restoreProfileID string

func init() {
	historyRestoreCmd.Flags().StringVar(&restoreProfileID, "profile-id", "", "Profile the search belongs to (marks confirmed skills)")

	historyCmd.AddCommand(historyProfilesCmd)
	historyCmd.AddCommand(historySearchesCmd)
	historyCmd.AddCommand(historyDeleteProfileCmd)
	historyCmd.AddCommand(historyDeleteSearchCmd)
	historyCmd.AddCommand(historyRestoreCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryProfiles(cmd *cobra.Command, _ []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	profiles, err := app.client.HistoryProfiles(ctx)
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}
	app.printer.PrintProfiles(profiles)
	return nil
}

func runHistorySearches(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	searches, err := app.client.ProfileSearches(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to list searches: %w", err)
	}
	app.printer.PrintSearches(args[0], searches)
	return nil
}

func runHistoryDeleteProfile(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	ack, err := app.client.DeleteProfile(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	if current := app.store.Profile(); current != nil && current.ID == args[0] {
		app.store.Reset()
	}
	printAck(cmd, ack, "Deleted profile "+args[0])
	return nil
}

func runHistoryDeleteSearch(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	ack, err := app.client.DeleteSearch(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to delete search: %w", err)
	}
	printAck(cmd, ack, "Deleted search "+args[0])
	return nil
}

func runHistoryRestore(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	confirmed, err := confirmedSkills(ctx, restoreProfileID, nil)
	if err != nil {
		return err
	}

	snap, err := pollSearch(ctx, types.JobSearch{TaskID: args[0]})
	if err != nil {
		return fmt.Errorf("failed to restore search: %w", err)
	}
	app.printer.PrintDashboard(snap, confirmed)
	return nil
}

func printAck(cmd *cobra.Command, ack *types.Ack, fallback string) {
	msg := fallback
	if ack != nil && ack.Message != "" {
		msg = ack.Message
	}
	fmt.Fprintln(cmd.OutOrStdout(), msg)
}
