package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jonathan/career-navigator/internal/types"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Confirm profile skills and start a market scan",
	Long: `Confirm the reviewed skills of a profile, then start a job search across the selected portals.
The command prints the task ID; follow it with 'navigator dashboard --task-id <id>'.`,
	RunE: runSearch,
}

var (
	searchProfileID   string
	searchRawTextFile string
	searchSkills      []string
	searchRole        string
	searchLocation    string
	searchPortals     []string
	searchSerpAPIKey  string
	searchNumJobs     int
)

// searchParams are the market scan inputs shared by search and run.
type searchParams struct {
	Role       string
	Location   string
	Portals    []string
	SerpAPIKey string
	NumJobs    int
}

func init() {
	searchCmd.Flags().StringVar(&searchProfileID, "profile-id", "", "Saved profile to search with")
	searchCmd.Flags().StringVar(&searchRawTextFile, "raw-text-file", "", "Resume text file (defaults to the saved profile's text)")
	searchCmd.Flags().StringSliceVarP(&searchSkills, "skill", "s", nil, "Confirmed skill (repeatable; defaults to the profile's skills)")
	addSearchFlags(searchCmd, &searchRole, &searchLocation, &searchPortals, &searchSerpAPIKey, &searchNumJobs)

	rootCmd.AddCommand(searchCmd)
}

// addSearchFlags registers the market scan flags on cmd.
func addSearchFlags(cmd *cobra.Command, role, location *string, portals *[]string, serpKey *string, numJobs *int) {
	cmd.Flags().StringVarP(role, "role", "r", "", "Target role to search for (required)")
	cmd.Flags().StringVarP(location, "location", "l", "", "Job location (defaults to config location)")
	cmd.Flags().StringSliceVarP(portals, "portal", "p", nil, "Portal to scan: "+strings.Join(types.Portals, ", ")+" (repeatable; defaults to all)")
	cmd.Flags().StringVar(serpKey, "serp-api-key", "", "SerpAPI key for Google Jobs (defaults to SERP_API_KEY env var)")
	cmd.Flags().IntVar(numJobs, "num-jobs", 0, "Jobs to fetch per portal (1-100)")
}

// searchParamsFrom merges search flags over the resolved configuration.
func searchParamsFrom(cmd *cobra.Command, role, location string, portals []string, serpKey string, numJobs int) (searchParams, error) {
	params := searchParams{
		Role:       strings.TrimSpace(role),
		Location:   app.cfg.Location,
		Portals:    app.cfg.Portals,
		SerpAPIKey: app.cfg.SerpAPIKey,
		NumJobs:    app.cfg.NumJobs,
	}
	if params.Role == "" {
		return params, fmt.Errorf("--role is required")
	}
	if cmd.Flags().Changed("location") {
		params.Location = location
	}
	if cmd.Flags().Changed("portal") {
		params.Portals = make([]string, 0, len(portals))
		for _, p := range portals {
			params.Portals = append(params.Portals, strings.ToLower(strings.TrimSpace(p)))
		}
	}
	if cmd.Flags().Changed("serp-api-key") {
		params.SerpAPIKey = serpKey
	}
	if cmd.Flags().Changed("num-jobs") {
		params.NumJobs = numJobs
	}
	if params.SerpAPIKey == "" {
		return params, fmt.Errorf("SERP_API_KEY environment variable or --serp-api-key flag is required")
	}
	return params, nil
}

func runSearch(cmd *cobra.Command, _ []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	params, err := searchParamsFrom(cmd, searchRole, searchLocation, searchPortals, searchSerpAPIKey, searchNumJobs)
	if err != nil {
		return err
	}

	profile := &types.Profile{ID: searchProfileID}
	if searchProfileID != "" && (searchRawTextFile == "" || len(searchSkills) == 0) {
		saved, err := findProfile(ctx, app.client, searchProfileID)
		if err != nil {
			return err
		}
		profile = saved
	}
	if searchRawTextFile != "" {
		text, err := readTextFile(searchRawTextFile)
		if err != nil {
			return err
		}
		profile.RawText = text
	}
	if profile.RawText == "" {
		return fmt.Errorf("either --profile-id or --raw-text-file must be provided")
	}

	confirmed := profile.ReviewSkills()
	if len(searchSkills) > 0 {
		confirmed = reviewSkills(nil, searchSkills, nil)
	}

	search, err := confirmAndSearch(ctx, profile, confirmed, params)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Search started: %s\n", search.TaskID)
	fmt.Fprintf(out, "Next: navigator dashboard --task-id %s", search.TaskID)
	if profile.ID != "" {
		fmt.Fprintf(out, " --profile-id %s", profile.ID)
	}
	fmt.Fprintln(out)
	return nil
}

// confirmAndSearch confirms the reviewed skills and starts the market scan.
// On success the session holds the profile and the new search.
func confirmAndSearch(ctx context.Context, profile *types.Profile, confirmed []string, params searchParams) (*types.JobSearch, error) {
	_, err := app.client.ConfirmSkills(ctx, &types.ConfirmSkillsRequest{
		ProfileID:       profile.ID,
		RawText:         profile.RawText,
		ConfirmedSkills: confirmed,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to confirm skills: %w", err)
	}
	reviewed := profile.Clone()
	reviewed.ConfirmedSkills = confirmed
	app.store.SetProfile(reviewed)
	app.logger.Debug("confirmed skills", slog.String("profile_id", profile.ID), slog.Int("skills", len(confirmed)))

	resp, err := app.client.StartSearch(ctx, &types.StartSearchRequest{
		ProfileID: profile.ID,
		Query:     params.Role,
		Location:  params.Location,
		Portals:   params.Portals,
		SerpAPIConfig: &types.SerpAPIConfig{
			APIKey:  params.SerpAPIKey,
			NumJobs: params.NumJobs,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start search: %w", err)
	}

	search := &types.JobSearch{TaskID: resp.TaskID, Query: params.Role, Location: params.Location}
	app.store.SetJobSearch(search)
	app.logger.Info("search started",
		slog.String("task_id", resp.TaskID),
		slog.String("query", params.Role),
		slog.Any("portals", params.Portals))
	return search, nil
}
