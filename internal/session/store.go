// Package session holds the in-memory state of one client session: the
// active candidate profile and the active job-search handle.
package session

import (
	"sync"

	"github.com/jonathan/career-navigator/internal/types"
)

// Change describes a job-search handle transition.
type Change struct {
	PreviousTaskID string
	TaskID         string
}

// Store is the session context. The zero value is not usable; call New.
// Readers always receive copies, and every write is applied under one lock,
// so no caller observes a partially applied update.
type Store struct {
	mu          sync.Mutex
	profile     *types.Profile
	search      *types.JobSearch
	subscribers map[int]chan Change
	nextSub     int
}

// New returns an empty store.
func New() *Store {
	return &Store{subscribers: make(map[int]chan Change)}
}

// Profile returns a copy of the active profile, or nil.
func (s *Store) Profile() *types.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile.Clone()
}

// SetProfile replaces the active profile.
func (s *Store) SetProfile(p *types.Profile) {
	s.UpdateProfile(func(*types.Profile) *types.Profile { return p })
}

// UpdateProfile replaces the active profile with fn applied to the latest value.
// fn receives a copy and must not retain it across calls.
func (s *Store) UpdateProfile(fn func(prev *types.Profile) *types.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = fn(s.profile.Clone()).Clone()
}

// JobSearch returns a copy of the active search handle, or nil.
func (s *Store) JobSearch() *types.JobSearch {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.search.Clone()
}

// TaskID returns the active task identifier, or "".
func (s *Store) TaskID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.search == nil {
		return ""
	}
	return s.search.TaskID
}

// SetJobSearch replaces the active search handle.
func (s *Store) SetJobSearch(h *types.JobSearch) {
	s.UpdateJobSearch(func(*types.JobSearch) *types.JobSearch { return h })
}

// UpdateJobSearch replaces the active search handle with fn applied to the
// latest value. Subscribers are notified when the task ID changes.
func (s *Store) UpdateJobSearch(fn func(prev *types.JobSearch) *types.JobSearch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prevID := ""
	if s.search != nil {
		prevID = s.search.TaskID
	}
	s.search = fn(s.search.Clone()).Clone()
	nextID := ""
	if s.search != nil {
		nextID = s.search.TaskID
	}
	if prevID != nextID {
		s.notify(Change{PreviousTaskID: prevID, TaskID: nextID})
	}
}

// Reset clears both entities, as when the user returns to the entry view.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	prevID := ""
	if s.search != nil {
		prevID = s.search.TaskID
	}
	s.profile = nil
	s.search = nil
	if prevID != "" {
		s.notify(Change{PreviousTaskID: prevID})
	}
}

// Subscribe registers for task-ID changes. The returned cancel func
// unregisters and closes the channel. Slow subscribers miss changes rather
// than block writers; the channel holds the most recent pending change.
func (s *Store) Subscribe() (<-chan Change, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan Change, 1)
	s.subscribers[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subscribers, id)
			close(ch)
		})
	}
	return ch, cancel
}

// notify must be called with mu held.
func (s *Store) notify(c Change) {
	for _, ch := range s.subscribers {
		select {
		case ch <- c:
		default:
			// Drop the stale pending change and keep the newest.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- c:
			default:
			}
		}
	}
}
