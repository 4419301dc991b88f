// Package archive stores reconciled search snapshots in PostgreSQL.
package archive

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonathan/career-navigator/internal/types"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// DefaultListLimit caps ListSnapshots when no limit is given.
const DefaultListLimit = 20

// ErrNotFound is returned when no snapshot exists for a task ID.
var ErrNotFound = errors.New("snapshot not found")

// querier is the subset of pgxpool.Pool the store uses.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool  *pgxpool.Pool
	q     querier
	nowFn func() time.Time
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	if databaseURL == "" {
		return nil, errors.New("database URL is required")
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}
	config.MaxConns = 4

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool, q: pool, nowFn: time.Now}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema applies the embedded migrations in name order.
func (db *DB) EnsureSchema(ctx context.Context) error {
	entries, err := schemaFS.ReadDir("schema")
	if err != nil {
		return fmt.Errorf("failed to read schema dir: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		data, err := schemaFS.ReadFile("schema/" + entry.Name())
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", entry.Name(), err)
		}
		if _, err := db.q.Exec(ctx, string(data)); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// SaveSnapshot inserts or replaces the snapshot for its task ID.
func (db *DB) SaveSnapshot(ctx context.Context, snap *Snapshot) error {
	if snap == nil || strings.TrimSpace(snap.TaskID) == "" {
		return errors.New("snapshot task ID is required")
	}

	jobs := snap.Jobs
	if jobs == nil {
		jobs = []types.Job{}
	}
	jobsJSON, err := json.Marshal(jobs)
	if err != nil {
		return fmt.Errorf("failed to marshal jobs: %w", err)
	}
	var analyticsJSON []byte
	if snap.Analytics != nil {
		analyticsJSON, err = json.Marshal(snap.Analytics)
		if err != nil {
			return fmt.Errorf("failed to marshal analytics: %w", err)
		}
	}

	savedAt := snap.SavedAt
	if savedAt.IsZero() {
		savedAt = db.nowFn().UTC()
	}
	sum := Summarize(jobs)

	_, err = db.q.Exec(ctx,
		`INSERT INTO search_snapshots
		   (task_id, profile_id, query, location, total_jobs, avg_match_score, high_match_jobs, jobs, analytics, saved_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (task_id) DO UPDATE SET
		   profile_id = $2, query = $3, location = $4, total_jobs = $5,
		   avg_match_score = $6, high_match_jobs = $7, jobs = $8, analytics = $9, saved_at = $10`,
		snap.TaskID, snap.ProfileID, snap.Query, snap.Location,
		sum.TotalJobs, sum.AvgMatchScore, sum.HighMatchJobs,
		jobsJSON, analyticsJSON, savedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", snap.TaskID, err)
	}
	snap.SavedAt = savedAt
	return nil
}

// GetSnapshot loads a snapshot by task ID. It returns nil, nil when none exists.
func (db *DB) GetSnapshot(ctx context.Context, taskID string) (*Snapshot, error) {
	var (
		snap          Snapshot
		jobsJSON      []byte
		analyticsJSON []byte
	)
	err := db.q.QueryRow(ctx,
		`SELECT task_id, profile_id, query, location, jobs, analytics, saved_at
		 FROM search_snapshots WHERE task_id = $1`,
		taskID,
	).Scan(&snap.TaskID, &snap.ProfileID, &snap.Query, &snap.Location, &jobsJSON, &analyticsJSON, &snap.SavedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get snapshot %s: %w", taskID, err)
	}

	if err := json.Unmarshal(jobsJSON, &snap.Jobs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal jobs: %w", err)
	}
	if snap.Jobs == nil {
		snap.Jobs = []types.Job{}
	}
	if len(analyticsJSON) > 0 && string(analyticsJSON) != "null" {
		var a types.Analytics
		if err := json.Unmarshal(analyticsJSON, &a); err != nil {
			return nil, fmt.Errorf("failed to unmarshal analytics: %w", err)
		}
		snap.Analytics = &a
	}
	return &snap, nil
}

// ListSnapshots returns summaries of the most recently saved snapshots.
func (db *DB) ListSnapshots(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := db.q.Query(ctx,
		`SELECT task_id, profile_id, query, location, total_jobs, avg_match_score, high_match_jobs, saved_at
		 FROM search_snapshots ORDER BY saved_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.TaskID, &e.ProfileID, &e.Query, &e.Location,
			&e.TotalJobs, &e.AvgMatchScore, &e.HighMatchJobs, &e.SavedAt); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return entries, nil
}

// DeleteSnapshot removes a snapshot. It returns ErrNotFound when nothing was deleted.
func (db *DB) DeleteSnapshot(ctx context.Context, taskID string) error {
	result, err := db.q.Exec(ctx, `DELETE FROM search_snapshots WHERE task_id = $1`, taskID)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot %s: %w", taskID, err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
