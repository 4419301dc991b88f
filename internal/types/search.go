package types

import (
	"bytes"
	"encoding/json"
	"strings"
)

// JobSearch is the handle of the active market scan held by the session.
type JobSearch struct {
	TaskID   string `json:"task_id"`
	Query    string `json:"query,omitempty"`
	Location string `json:"location,omitempty"`
}

// Clone returns a copy of the handle.
func (j *JobSearch) Clone() *JobSearch {
	if j == nil {
		return nil
	}
	c := *j
	return &c
}

// Task status values reported by the backend.
const (
	TaskStatusPending    = "pending"
	TaskStatusProcessing = "processing"
	TaskStatusRunning    = "running"
	TaskStatusCompleted  = "completed"
	TaskStatusFailed     = "failed"
)

// TaskStatus is the payload of GET /jobs/status/{taskId}.
type TaskStatus struct {
	TaskID string   `json:"task_id,omitempty"`
	Status string   `json:"status"`
	Logs   []string `json:"logs"`
}

// IsCompleted reports a terminal success.
func (s *TaskStatus) IsCompleted() bool {
	return strings.EqualFold(s.Status, TaskStatusCompleted)
}

// IsFailed reports a terminal failure.
func (s *TaskStatus) IsFailed() bool {
	return strings.EqualFold(s.Status, TaskStatusFailed)
}

// IsTerminal reports whether polling should stop.
func (s *TaskStatus) IsTerminal() bool {
	return s.IsCompleted() || s.IsFailed()
}

// StartSearchResponse is the payload of POST /jobs/search.
type StartSearchResponse struct {
	TaskID string `json:"task_id"`
	Status string `json:"status,omitempty"`
}

// Job is one listing within a completed task's results.
type Job struct {
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	WorkMode    string    `json:"work_mode,omitempty"`
	Description string    `json:"description,omitempty"`
	Skills      SkillList `json:"skills"`
	MatchScore  float64   `json:"match_score"`
	Link        string    `json:"link,omitempty"`
	Portal      string    `json:"portal,omitempty"`
}

type jobWire struct {
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	WorkMode    string    `json:"work_mode"`
	Description string    `json:"description"`
	Skills      SkillList `json:"skills"`
	MatchScore  *float64  `json:"match_score"`
	Link        string    `json:"link"`
	URL         string    `json:"url"`
	Portal      string    `json:"portal"`
}

// UnmarshalJSON accepts the apply link under either "link" or "url".
// A missing match score decodes as 0.
func (j *Job) UnmarshalJSON(data []byte) error {
	var w jobWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	link := w.Link
	if link == "" {
		link = w.URL
	}
	var score float64
	if w.MatchScore != nil {
		score = *w.MatchScore
	}
	*j = Job{
		Title:       w.Title,
		Company:     w.Company,
		Location:    w.Location,
		WorkMode:    w.WorkMode,
		Description: w.Description,
		Skills:      w.Skills,
		MatchScore:  score,
		Link:        link,
		Portal:      w.Portal,
	}
	return nil
}

// SearchResults is the payload of GET /jobs/results/{taskId}.
type SearchResults struct {
	Query string `json:"query,omitempty"`
	Jobs  []Job  `json:"jobs"`
	Error string `json:"error,omitempty"`
}

// UnmarshalJSON accepts either {"query", "jobs"} or a bare array of jobs,
// which is how results files written by the scraper engine look.
func (r *SearchResults) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var jobs []Job
		if err := json.Unmarshal(trimmed, &jobs); err != nil {
			return err
		}
		*r = SearchResults{Jobs: jobs}
		return nil
	}
	type plain SearchResults
	var p plain
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return err
	}
	*r = SearchResults(p)
	return nil
}

// HasJobs reports whether the payload carried a jobs list at all.
func (r *SearchResults) HasJobs() bool {
	return r != nil && r.Jobs != nil
}

// NamedCount is one row of a ranked aggregate (skill, location, work mode...).
type NamedCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// RangeCount is one bucket of the score distribution.
type RangeCount struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

// Analytics is the payload of GET /jobs/analytics/{taskId}.
type Analytics struct {
	TaskID               string       `json:"task_id,omitempty"`
	Source               string       `json:"source,omitempty"`
	TotalJobs            int          `json:"total_jobs"`
	AvgMatchScore        float64      `json:"avg_match_score"`
	TopSkills            []NamedCount `json:"top_skills"`
	TopLocations         []NamedCount `json:"top_locations"`
	TopCompanies         []NamedCount `json:"top_companies,omitempty"`
	TopRoles             []NamedCount `json:"top_roles,omitempty"`
	WorkModeDistribution []NamedCount `json:"work_mode_distribution"`
	ScoreDistribution    []RangeCount `json:"score_distribution,omitempty"`
	PortalBreakdown      []NamedCount `json:"portal_breakdown,omitempty"`
}
