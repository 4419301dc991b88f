package poller

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/career-navigator/internal/types"
)

type fetched struct {
	results   *types.SearchResults
	analytics *types.Analytics
}

// fetchAll loads results and analytics concurrently. Results are required;
// an analytics failure or empty reply is logged and yields nil analytics.
func fetchAll(ctx context.Context, backend Backend, taskID string, logger *slog.Logger) (fetched, error) {
	var out fetched
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		res, err := backend.Results(gctx, taskID)
		if err != nil {
			return err
		}
		if res == nil {
			return errMissingJobs
		}
		if !res.HasJobs() && res.Error != "" {
			return errors.New(res.Error)
		}
		out.results = res
		return nil
	})

	g.Go(func() error {
		a, err := backend.Analytics(gctx, taskID)
		switch {
		case err != nil:
			logger.Debug("analytics unavailable", slog.Any("error", err))
		case a == nil:
			logger.Debug("analytics response was empty")
		default:
			out.analytics = a
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return fetched{}, err
	}
	return out, nil
}
