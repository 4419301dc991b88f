package main

import (
	"fmt"

	"github.com/jonathan/career-navigator/internal/skills"
	"github.com/jonathan/career-navigator/internal/types"
	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Estimate how learning new skills changes your market score",
	Long: `Re-score the jobs of a finished search as if the profile also had the given skills, and show the
change in average match score and market reach along with the jobs that improve most.`,
	RunE: runSimulate,
}

var (
	simTaskID    string
	simProfileID string
	simSkills    []string
)

func init() {
	simulateCmd.Flags().StringVarP(&simTaskID, "task-id", "t", "", "Finished search task ID (required)")
	simulateCmd.Flags().StringVar(&simProfileID, "profile-id", "", "Profile to simulate for (required)")
	simulateCmd.Flags().StringSliceVarP(&simSkills, "skill", "s", nil, "Skill to add (repeatable, required)")

	_ = simulateCmd.MarkFlagRequired("task-id")
	_ = simulateCmd.MarkFlagRequired("profile-id")
	_ = simulateCmd.MarkFlagRequired("skill")

	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	added := skills.Dedup(simSkills)
	if len(added) == 0 {
		return fmt.Errorf("at least one --skill is required")
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	result, err := app.client.Simulate(ctx, simTaskID, &types.SimulateRequest{
		ProfileID:   simProfileID,
		AddedSkills: added,
	})
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}
	app.printer.PrintSimulation(added, result)
	return nil
}
