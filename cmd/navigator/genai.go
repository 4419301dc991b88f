package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/career-navigator/internal/derive"
	"github.com/jonathan/career-navigator/internal/types"
	"github.com/spf13/cobra"
)

const (
	defaultRoadmapCurrentRole = "Aspiring Candidate"
	defaultRoadmapTargetRole  = "Target Role"
	defaultPivotCurrentRole   = "Current Profile"
)

var roadmapCmd = &cobra.Command{
	Use:   "roadmap",
	Short: "Generate a learning roadmap for the skills you are missing",
	Long: `Generate a monthly learning plan and portfolio projects for the most demanded skills of a search
that the profile has not confirmed. Pass --missing-skill to choose the skills yourself.`,
	RunE: runRoadmap,
}

var pivotCmd = &cobra.Command{
	Use:   "pivot",
	Short: "Suggest adjacent roles reachable from your current skills",
	RunE:  runPivot,
}

var suggestRolesCmd = &cobra.Command{
	Use:   "suggest-roles",
	Short: "Suggest roles that fit a resume",
	RunE:  runSuggestRoles,
}

var (
	genaiAPIKey   string
	genaiProvider string

	roadmapTaskID        string
	roadmapProfileID     string
	roadmapSkills        []string
	roadmapMissingSkills []string
	roadmapCurrentRole   string
	roadmapTargetRole    string

	pivotProfileID   string
	pivotSkills      []string
	pivotCurrentRole string

	suggestProfileID      string
	suggestResumeTextFile string
	suggestQuery          string
)

func init() {
	for _, c := range []*cobra.Command{roadmapCmd, pivotCmd, suggestRolesCmd} {
		addGenAIFlags(c)
	}

	roadmapCmd.Flags().StringVarP(&roadmapTaskID, "task-id", "t", "", "Search whose skill demand picks the missing skills")
	roadmapCmd.Flags().StringVar(&roadmapProfileID, "profile-id", "", "Profile whose confirmed skills are excluded")
	roadmapCmd.Flags().StringSliceVarP(&roadmapSkills, "skill", "s", nil, "Confirmed skill (repeatable; overrides --profile-id skills)")
	roadmapCmd.Flags().StringSliceVar(&roadmapMissingSkills, "missing-skill", nil, "Skill to plan for (repeatable; skips the search lookup)")
	roadmapCmd.Flags().StringVar(&roadmapCurrentRole, "current-role", defaultRoadmapCurrentRole, "Your current role")
	roadmapCmd.Flags().StringVar(&roadmapTargetRole, "target-role", "", "Role to plan for (defaults to the searched role)")

	pivotCmd.Flags().StringVar(&pivotProfileID, "profile-id", "", "Profile whose confirmed skills are used")
	pivotCmd.Flags().StringSliceVarP(&pivotSkills, "skill", "s", nil, "Current skill (repeatable; overrides --profile-id skills)")
	pivotCmd.Flags().StringVar(&pivotCurrentRole, "current-role", defaultPivotCurrentRole, "Your current role")

	suggestRolesCmd.Flags().StringVar(&suggestProfileID, "profile-id", "", "Saved profile whose resume text is used")
	suggestRolesCmd.Flags().StringVar(&suggestResumeTextFile, "resume-text-file", "", "Resume text file")
	suggestRolesCmd.Flags().StringVarP(&suggestQuery, "query", "q", "", "What kind of role you are looking for")

	rootCmd.AddCommand(roadmapCmd)
	rootCmd.AddCommand(pivotCmd)
	rootCmd.AddCommand(suggestRolesCmd)
}

func addGenAIFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&genaiAPIKey, "api-key", "", "GenAI provider API key (defaults to GROQ_API_KEY env var)")
	cmd.Flags().StringVar(&genaiProvider, "provider", "", "GenAI provider (defaults to config genai_provider)")
}

// genAICredentials resolves the provider key and name from flags over config.
func genAICredentials(cmd *cobra.Command) (apiKey, provider string, err error) {
	apiKey = app.cfg.GenAIAPIKey
	if cmd.Flags().Changed("api-key") {
		apiKey = genaiAPIKey
	}
	provider = app.cfg.GenAIProvider
	if cmd.Flags().Changed("provider") {
		provider = genaiProvider
	}
	if strings.TrimSpace(apiKey) == "" {
		return "", "", fmt.Errorf("GROQ_API_KEY environment variable or --api-key flag is required")
	}
	return apiKey, provider, nil
}

// resumeText reads the resume from a text file or a saved profile.
func resumeText(ctx context.Context, path, profileID string) (string, error) {
	if path != "" {
		return readTextFile(path)
	}
	if profileID == "" {
		return "", fmt.Errorf("either --profile-id or --resume-text-file must be provided")
	}
	profile, err := findProfile(ctx, app.client, profileID)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(profile.RawText) == "" {
		return "", fmt.Errorf("profile %s has no resume text", profileID)
	}
	return profile.RawText, nil
}

func runRoadmap(cmd *cobra.Command, _ []string) error {
	apiKey, provider, err := genAICredentials(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	targetRole := strings.TrimSpace(roadmapTargetRole)
	missing := roadmapMissingSkills
	if len(missing) == 0 {
		if roadmapTaskID == "" {
			return fmt.Errorf("either --task-id or --missing-skill must be provided")
		}
		confirmed, err := confirmedSkills(ctx, roadmapProfileID, roadmapSkills)
		if err != nil {
			return err
		}
		analytics, err := app.client.Analytics(ctx, roadmapTaskID)
		if err != nil {
			return fmt.Errorf("failed to load skill demand: %w", err)
		}
		missing = derive.MissingTopSkills(analytics, confirmed, derive.DefaultRoadmapSkills)
		if len(missing) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "You have all top skills! Great job.")
			return nil
		}
		if targetRole == "" {
			if search := app.store.JobSearch(); search != nil && search.TaskID == roadmapTaskID {
				targetRole = search.Query
			}
		}
	}
	if targetRole == "" {
		targetRole = defaultRoadmapTargetRole
	}

	roadmap, err := app.client.Roadmap(ctx, &types.RoadmapRequest{
		APIKey:        apiKey,
		Provider:      provider,
		CurrentRole:   roadmapCurrentRole,
		TargetRole:    targetRole,
		MissingSkills: missing,
	})
	if err != nil {
		return fmt.Errorf("failed to generate roadmap: %w", err)
	}
	app.printer.PrintRoadmap(targetRole, roadmap)
	return nil
}

func runPivot(cmd *cobra.Command, _ []string) error {
	apiKey, provider, err := genAICredentials(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	current, err := confirmedSkills(ctx, pivotProfileID, pivotSkills)
	if err != nil {
		return err
	}
	if len(current) == 0 {
		return fmt.Errorf("either --profile-id or --skill must be provided")
	}

	pivots, err := app.client.Pivot(ctx, &types.PivotRequest{
		APIKey:        apiKey,
		Provider:      provider,
		CurrentRole:   pivotCurrentRole,
		CurrentSkills: current,
	})
	if err != nil {
		return fmt.Errorf("failed to suggest pivots: %w", err)
	}
	app.printer.PrintPivots(pivotCurrentRole, pivots)
	return nil
}

func runSuggestRoles(cmd *cobra.Command, _ []string) error {
	apiKey, provider, err := genAICredentials(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	text, err := resumeText(ctx, suggestResumeTextFile, suggestProfileID)
	if err != nil {
		return err
	}

	roles, err := app.client.SuggestRoles(ctx, &types.RoleSuggestionRequest{
		APIKey:     apiKey,
		Provider:   provider,
		ResumeText: text,
		UserQuery:  suggestQuery,
	})
	if err != nil {
		return fmt.Errorf("failed to suggest roles: %w", err)
	}
	app.printer.PrintRoles(roles)
	return nil
}
