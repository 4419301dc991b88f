package archive

import (
	"time"

	"github.com/jonathan/career-navigator/internal/derive"
	"github.com/jonathan/career-navigator/internal/poller"
	"github.com/jonathan/career-navigator/internal/types"
)

// Snapshot is a stored ready search: its jobs and market analytics.
type Snapshot struct {
	TaskID    string           `json:"task_id"`
	ProfileID string           `json:"profile_id,omitempty"`
	Query     string           `json:"query"`
	Location  string           `json:"location,omitempty"`
	Jobs      []types.Job      `json:"jobs"`
	Analytics *types.Analytics `json:"analytics,omitempty"`
	SavedAt   time.Time        `json:"saved_at"`
}

// Entry summarizes a stored snapshot for listings.
type Entry struct {
	TaskID        string
	ProfileID     string
	Query         string
	Location      string
	TotalJobs     int
	AvgMatchScore float64
	HighMatchJobs int
	SavedAt       time.Time
}

// Summary holds aggregate scores of a job list.
type Summary struct {
	TotalJobs     int
	AvgMatchScore float64
	HighMatchJobs int
}

// Summarize aggregates job scores. Scores are not rounded.
func Summarize(jobs []types.Job) Summary {
	s := Summary{TotalJobs: len(jobs)}
	if len(jobs) == 0 {
		return s
	}
	var sum float64
	for _, j := range jobs {
		sum += j.MatchScore
		if derive.MatchBand(j.MatchScore) == derive.BandHigh {
			s.HighMatchJobs++
		}
	}
	s.AvgMatchScore = sum / float64(len(jobs))
	return s
}

// FromPoll builds a snapshot from a ready poll. search and profileID are
// optional session context.
func FromPoll(snap poller.Snapshot, search *types.JobSearch, profileID string) *Snapshot {
	out := &Snapshot{
		TaskID:    snap.TaskID,
		ProfileID: profileID,
		Query:     snap.Query,
		Jobs:      append([]types.Job{}, snap.Jobs...),
		Analytics: snap.Analytics,
	}
	if search != nil {
		if out.Query == "" {
			out.Query = search.Query
		}
		out.Location = search.Location
	}
	return out
}

// Poll converts a stored snapshot back into a ready poll snapshot.
func (s *Snapshot) Poll() poller.Snapshot {
	return poller.Snapshot{
		TaskID:    s.TaskID,
		State:     poller.StateReady,
		Query:     s.Query,
		Jobs:      append([]types.Job{}, s.Jobs...),
		Analytics: s.Analytics,
	}
}
