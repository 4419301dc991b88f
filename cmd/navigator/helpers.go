package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/jonathan/career-navigator/internal/api"
	"github.com/jonathan/career-navigator/internal/archive"
	"github.com/jonathan/career-navigator/internal/poller"
	"github.com/jonathan/career-navigator/internal/skills"
	"github.com/jonathan/career-navigator/internal/types"
	"github.com/spf13/cobra"
)

// commandContext returns a context cancelled on interrupt.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt)
}

// readTextFile reads a UTF-8 text file and rejects empty content.
func readTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("%s is empty", path)
	}
	return text, nil
}

// findProfile looks a saved profile up in the history listing.
func findProfile(ctx context.Context, client *api.Client, profileID string) (*types.Profile, error) {
	profiles, err := client.HistoryProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	for i := range profiles {
		if profiles[i].ID == profileID {
			return &profiles[i], nil
		}
	}
	return nil, fmt.Errorf("profile %s not found", profileID)
}

// confirmedSkills returns explicit skills when given, otherwise the
// reviewed skills of the saved profile. Both may be empty.
func confirmedSkills(ctx context.Context, profileID string, explicit []string) ([]string, error) {
	if len(explicit) > 0 {
		return skills.Dedup(explicit), nil
	}
	if profileID == "" {
		return []string{}, nil
	}
	profile, err := findProfile(ctx, app.client, profileID)
	if err != nil {
		return nil, err
	}
	app.store.SetProfile(profile)
	return profile.ReviewSkills(), nil
}

// reviewSkills applies --add-skill and --remove-skill edits to extracted skills.
func reviewSkills(extracted, add, remove []string) []string {
	set := skills.NewSet(extracted...)
	for _, s := range remove {
		set.Remove(s)
	}
	for _, s := range add {
		set.Add(s)
	}
	return set.Labels()
}

// pollSearch makes taskID the active search and polls it to a terminal state,
// printing each new status line.
func pollSearch(ctx context.Context, search types.JobSearch) (poller.Snapshot, error) {
	app.store.SetJobSearch(&search)

	var lastLine string
	p := poller.New(app.client, app.store, poller.Options{
		Interval:    app.cfg.PollInterval(),
		MaxDuration: app.cfg.MaxPoll(),
		Logger:      app.logger,
		OnUpdate: func(s poller.Snapshot) {
			if s.State.Terminal() || s.StatusLine == lastLine {
				return
			}
			lastLine = s.StatusLine
			app.printer.PrintStatus(s)
		},
	})

	snap, err := p.Run(ctx)
	if err != nil {
		return snap, err
	}
	app.logger.Info("search ready",
		slog.String("task_id", snap.TaskID),
		slog.Int("jobs", len(snap.Jobs)),
		slog.Bool("analytics", snap.Analytics != nil))
	return snap, nil
}

// openArchive connects to the configured archive database.
func openArchive(ctx context.Context) (*archive.DB, error) {
	if app.cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required")
	}
	db, err := archive.Connect(ctx, app.cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := db.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// archiveSnapshot stores a ready search.
func archiveSnapshot(ctx context.Context, snap poller.Snapshot, profileID string) error {
	db, err := openArchive(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	stored := archive.FromPoll(snap, app.store.JobSearch(), profileID)
	if err := db.SaveSnapshot(ctx, stored); err != nil {
		return err
	}
	app.logger.Info("archived search", slog.String("task_id", stored.TaskID))
	return nil
}
