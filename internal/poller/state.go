package poller

import (
	"errors"
	"fmt"

	"github.com/jonathan/career-navigator/internal/types"
)

// State is a step of the search state machine.
type State int

const (
	StateInitializing State = iota
	StatePolling
	StateReconciling
	StateNotFoundRecovery
	StateReady
	StateFailed
	StateNotFoundError
	StateTimedOut
)

var stateNames = map[State]string{
	StateInitializing:     "initializing",
	StatePolling:          "polling",
	StateReconciling:      "reconciling",
	StateNotFoundRecovery: "not_found_recovery",
	StateReady:            "ready",
	StateFailed:           "failed",
	StateNotFoundError:    "not_found_error",
	StateTimedOut:         "timed_out",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Terminal reports whether no further transition can follow s.
func (s State) Terminal() bool {
	switch s {
	case StateReady, StateFailed, StateNotFoundError, StateTimedOut:
		return true
	default:
		return false
	}
}

// User-facing messages of the failure states.
const (
	MessageFailed        = "Search failed. Please try again."
	MessageResultsFailed = "Failed to load search results. Please try again."
	MessageNotFound      = "Search not found. It may have expired or been deleted."
	MessageTimedOut      = "Search is taking too long. Please try again later."
)

var (
	// ErrNoActiveSearch is returned by Start when the session holds no task ID.
	ErrNoActiveSearch = errors.New("no active search in session")
	// ErrStopped is reported by a handle stopped before reaching a terminal state.
	ErrStopped = errors.New("poller stopped")
	// ErrSuperseded is reported when the session switched to another task.
	ErrSuperseded = errors.New("search superseded by a newer task")
)

// TerminalError is returned for the Failed, NotFoundError and TimedOut states.
type TerminalError struct {
	State   State
	TaskID  string
	Message string
	Cause   error
}

func (e *TerminalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("search %s %s: %s: %v", e.TaskID, e.State, e.Message, e.Cause)
	}
	return fmt.Sprintf("search %s %s: %s", e.TaskID, e.State, e.Message)
}

func (e *TerminalError) Unwrap() error {
	return e.Cause
}

// Snapshot is the observable state of one poll.
type Snapshot struct {
	TaskID     string
	State      State
	StatusLine string
	Logs       []string
	// Ticks counts status checks issued so far.
	Ticks int
	// Query is the role the results report, when known.
	Query     string
	Jobs      []types.Job
	Analytics *types.Analytics
	// Message is the user-facing text of a failure state.
	Message string
}
