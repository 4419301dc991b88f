// Package poller drives a server-side search task to a consistent result.
//
// A Handle polls task status on a fixed interval, surfaces a status line from
// the task log, and once the task is done (or unknown to the server) fetches
// results and analytics concurrently. Stopping a handle, cancelling its
// context, or switching the session to another task ends the loop; no
// snapshot is applied after that point.
package poller

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/jonathan/career-navigator/internal/api"
	"github.com/jonathan/career-navigator/internal/session"
	"github.com/jonathan/career-navigator/internal/types"
)

// Defaults for Options.
const (
	DefaultInterval    = 3 * time.Second
	DefaultMaxDuration = 10 * time.Minute
)

// Backend is the part of the API the poller consumes.
type Backend interface {
	TaskStatus(ctx context.Context, taskID string) (*types.TaskStatus, error)
	Results(ctx context.Context, taskID string) (*types.SearchResults, error)
	Analytics(ctx context.Context, taskID string) (*types.Analytics, error)
}

// Options configures a Poller.
type Options struct {
	Interval time.Duration
	// MaxDuration bounds the polling phase. Negative disables the bound.
	MaxDuration time.Duration
	// OnUpdate receives every applied snapshot, in order, from the poll
	// goroutine. It may call Handle methods, including Stop.
	OnUpdate func(Snapshot)
	Logger   *slog.Logger
}

// Poller starts polls for the session's active search.
type Poller struct {
	backend Backend
	store   *session.Store
	opts    Options
}

// New creates a Poller.
func New(backend Backend, store *session.Store, opts Options) *Poller {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.MaxDuration == 0 {
		opts.MaxDuration = DefaultMaxDuration
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Poller{backend: backend, store: store, opts: opts}
}

// Handle is one running poll.
type Handle struct {
	taskID  string
	backend Backend
	store   *session.Store
	opts    Options
	logger  *slog.Logger
	cancel  context.CancelFunc
	done    chan struct{}

	// notifyMu orders OnUpdate calls. mu is released before OnUpdate runs.
	notifyMu sync.Mutex

	mu       sync.Mutex
	finished bool
	snap     Snapshot
	err      error
}

// Start begins polling the session's active task in a new goroutine.
func (p *Poller) Start(ctx context.Context) (*Handle, error) {
	taskID := p.store.TaskID()
	if taskID == "" {
		return nil, ErrNoActiveSearch
	}

	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{
		taskID:  taskID,
		backend: p.backend,
		store:   p.store,
		opts:    p.opts,
		logger:  p.opts.Logger.With(slog.String("task_id", taskID)),
		cancel:  cancel,
		done:    make(chan struct{}),
		snap:    Snapshot{TaskID: taskID, State: StateInitializing, StatusLine: StatusInitializing},
	}

	changes, unsubscribe := p.store.Subscribe()
	// The session may have moved on between TaskID and Subscribe.
	if p.store.TaskID() != taskID {
		unsubscribe()
		cancel()
		return nil, ErrSuperseded
	}

	go h.watch(ctx, changes)
	go func() {
		defer close(h.done)
		defer unsubscribe()
		defer cancel()
		h.run(ctx)
		// Parent cancellation leaves the handle unfinished; record why.
		h.halt(context.Cause(ctx))
	}()
	return h, nil
}

// Run polls the session's active task and blocks until a terminal state.
func (p *Poller) Run(ctx context.Context) (Snapshot, error) {
	h, err := p.Start(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return h.Wait(context.Background())
}

// TaskID returns the task this handle polls.
func (h *Handle) TaskID() string {
	return h.taskID
}

// Stop cancels the poll. Once Stop returns, no further snapshot is applied.
func (h *Handle) Stop() {
	h.halt(ErrStopped)
}

// Done is closed when the poll goroutine has exited.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Result returns the last applied snapshot.
func (h *Handle) Result() Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.snap
}

// Err returns the terminal error, ErrStopped, ErrSuperseded, or nil.
func (h *Handle) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// Wait blocks until the poll goroutine exits or ctx is done.
func (h *Handle) Wait(ctx context.Context) (Snapshot, error) {
	select {
	case <-h.done:
		h.mu.Lock()
		defer h.mu.Unlock()
		return h.snap, h.err
	case <-ctx.Done():
		return h.Result(), ctx.Err()
	}
}

func (h *Handle) halt(reason error) {
	h.mu.Lock()
	if !h.finished {
		h.finished = true
		h.err = reason
	}
	h.mu.Unlock()
	h.cancel()
}

func (h *Handle) stopped() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.finished
}

// apply publishes s unless the handle already finished. Terminal snapshots
// finish the handle with err.
func (h *Handle) apply(s Snapshot, err error) bool {
	h.notifyMu.Lock()
	defer h.notifyMu.Unlock()

	h.mu.Lock()
	if h.finished {
		h.mu.Unlock()
		return false
	}
	s.TaskID = h.taskID
	h.snap = s
	if s.State.Terminal() {
		h.finished = true
		h.err = err
	}
	h.mu.Unlock()

	if h.opts.OnUpdate != nil {
		h.opts.OnUpdate(s)
	}
	return true
}

func (h *Handle) watch(ctx context.Context, changes <-chan session.Change) {
	for {
		select {
		case <-ctx.Done():
			return
		case c, ok := <-changes:
			if !ok {
				return
			}
			if c.TaskID != h.taskID {
				h.logger.Debug("search superseded", slog.String("new_task_id", c.TaskID))
				h.halt(ErrSuperseded)
				return
			}
		}
	}
}

func (h *Handle) run(ctx context.Context) {
	h.emit(Snapshot{State: StateInitializing, StatusLine: StatusInitializing}, nil)

	pollCtx := ctx
	var deadline <-chan struct{}
	if h.opts.MaxDuration > 0 {
		var cancel context.CancelFunc
		pollCtx, cancel = context.WithTimeout(ctx, h.opts.MaxDuration)
		defer cancel()
		deadline = pollCtx.Done()
	}

	ticker := time.NewTicker(h.opts.Interval)
	defer ticker.Stop()

	ticks := 0
	for {
		ticks++
		status, err := h.backend.TaskStatus(pollCtx, h.taskID)
		if ctx.Err() != nil {
			return
		}
		if err != nil && pollCtx.Err() != nil {
			h.timeout(ticks)
			return
		}

		switch {
		case err != nil && api.IsNotFound(err):
			h.logger.Info("task not found on server, attempting direct fetch")
			h.recover(ctx, ticks)
			return
		case err != nil:
			h.logger.Warn("status check failed", slog.Int("tick", ticks), slog.Any("error", err))
		case status == nil:
			h.logger.Warn("status check returned no status", slog.Int("tick", ticks))
		case status.IsCompleted():
			h.logger.Debug("task completed", slog.Int("tick", ticks))
			h.reconcile(ctx, ticks)
			return
		case status.IsFailed():
			h.logger.Info("task failed", slog.Int("tick", ticks))
			h.emit(Snapshot{
				State:      StateFailed,
				StatusLine: MessageFailed,
				Logs:       status.Logs,
				Ticks:      ticks,
				Message:    MessageFailed,
			}, &TerminalError{State: StateFailed, TaskID: h.taskID, Message: MessageFailed})
			return
		default:
			h.emit(Snapshot{
				State:      StatePolling,
				StatusLine: StatusLine(status.Logs),
				Logs:       status.Logs,
				Ticks:      ticks,
			}, nil)
		}

		select {
		case <-ctx.Done():
			return
		case <-deadline:
			if ctx.Err() == nil {
				h.timeout(ticks)
			}
			return
		case <-ticker.C:
		}
	}
}

func (h *Handle) timeout(ticks int) {
	h.logger.Warn("polling abandoned", slog.Duration("max_duration", h.opts.MaxDuration))
	h.emit(Snapshot{
		State:      StateTimedOut,
		StatusLine: MessageTimedOut,
		Ticks:      ticks,
		Message:    MessageTimedOut,
	}, &TerminalError{State: StateTimedOut, TaskID: h.taskID, Message: MessageTimedOut, Cause: context.DeadlineExceeded})
}

func (h *Handle) reconcile(ctx context.Context, ticks int) {
	if !h.emit(Snapshot{State: StateReconciling, StatusLine: StatusAnalyzing, Ticks: ticks}, nil) {
		return
	}
	res, err := fetchAll(ctx, h.backend, h.taskID, h.logger)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		h.logger.Warn("fetching results failed", slog.Any("error", err))
		h.emit(Snapshot{
			State:      StateFailed,
			StatusLine: MessageResultsFailed,
			Ticks:      ticks,
			Message:    MessageResultsFailed,
		}, &TerminalError{State: StateFailed, TaskID: h.taskID, Message: MessageResultsFailed, Cause: err})
		return
	}
	h.ready(res, ticks)
}

func (h *Handle) recover(ctx context.Context, ticks int) {
	if !h.emit(Snapshot{State: StateNotFoundRecovery, StatusLine: StatusRecovering, Ticks: ticks}, nil) {
		return
	}
	res, err := fetchAll(ctx, h.backend, h.taskID, h.logger)
	if ctx.Err() != nil {
		return
	}
	if err == nil && !res.results.HasJobs() {
		err = errMissingJobs
	}
	if err != nil {
		h.logger.Info("recovery fetch failed", slog.Any("error", err))
		h.emit(Snapshot{
			State:      StateNotFoundError,
			StatusLine: MessageNotFound,
			Ticks:      ticks,
			Message:    MessageNotFound,
		}, &TerminalError{State: StateNotFoundError, TaskID: h.taskID, Message: MessageNotFound, Cause: err})
		return
	}
	h.ready(res, ticks)
}

func (h *Handle) ready(res fetched, ticks int) {
	query := res.results.Query
	if query != "" && !h.stopped() {
		h.store.UpdateJobSearch(func(prev *types.JobSearch) *types.JobSearch {
			if prev == nil || prev.TaskID != h.taskID || prev.Query != "" {
				return prev
			}
			prev.Query = query
			return prev
		})
	}
	jobs := res.results.Jobs
	if jobs == nil {
		jobs = []types.Job{}
	}
	h.emit(Snapshot{
		State:      StateReady,
		StatusLine: StatusAnalyzing,
		Ticks:      ticks,
		Query:      query,
		Jobs:       jobs,
		Analytics:  res.analytics,
	}, nil)
}

// emit logs the transition and applies s.
func (h *Handle) emit(s Snapshot, err error) bool {
	if !h.apply(s, err) {
		return false
	}
	h.logger.Debug("poll state", slog.String("state", s.State.String()), slog.String("status", s.StatusLine))
	return true
}

var errMissingJobs = errors.New("results payload has no jobs")
