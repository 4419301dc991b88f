package api

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/jonathan/career-navigator/internal/schemas"
	"github.com/jonathan/career-navigator/internal/types"
)

// UploadResume uploads a resume file and returns the parsed profile.
func (c *Client) UploadResume(ctx context.Context, filename string, r io.Reader) (*types.Profile, error) {
	var p types.Profile
	if err := c.Upload(ctx, "/profile/upload", "file", filename, r, &p); err != nil {
		return nil, err
	}
	if p.Filename == "" {
		p.Filename = filename
	}
	return &p, nil
}

// ConfirmSkills stores the reviewed skill list for a profile.
func (c *Client) ConfirmSkills(ctx context.Context, req *types.ConfirmSkillsRequest) (*types.Ack, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var ack types.Ack
	if err := c.Do(ctx, http.MethodPost, "/profile/embed", req, &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}

// StartSearch submits a market scan and returns its task handle.
func (c *Client) StartSearch(ctx context.Context, req *types.StartSearchRequest) (*types.StartSearchResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var resp types.StartSearchResponse
	if err := c.Do(ctx, http.MethodPost, "/jobs/search", req, &resp); err != nil {
		return nil, err
	}
	if resp.TaskID == "" {
		return nil, &APIError{Detail: "search response missing task_id"}
	}
	return &resp, nil
}

// TaskStatus fetches the status and log of a search task.
func (c *Client) TaskStatus(ctx context.Context, taskID string) (*types.TaskStatus, error) {
	var s types.TaskStatus
	if err := c.doJSON(ctx, http.MethodGet, "/jobs/status/"+url.PathEscape(taskID), nil, &s, schemas.TaskStatus); err != nil {
		return nil, err
	}
	if s.TaskID == "" {
		s.TaskID = taskID
	}
	return &s, nil
}

// Results fetches the job listings of a completed task.
func (c *Client) Results(ctx context.Context, taskID string) (*types.SearchResults, error) {
	var r types.SearchResults
	if err := c.doJSON(ctx, http.MethodGet, "/jobs/results/"+url.PathEscape(taskID), nil, &r, schemas.SearchResults); err != nil {
		return nil, err
	}
	return &r, nil
}

// Analytics fetches the aggregate summary of a completed task.
func (c *Client) Analytics(ctx context.Context, taskID string) (*types.Analytics, error) {
	var a types.Analytics
	if err := c.doJSON(ctx, http.MethodGet, "/jobs/analytics/"+url.PathEscape(taskID), nil, &a, schemas.Analytics); err != nil {
		return nil, err
	}
	return &a, nil
}

// Simulate re-scores a task's jobs as if the profile had the added skills.
func (c *Client) Simulate(ctx context.Context, taskID string, req *types.SimulateRequest) (*types.SimulationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var res types.SimulationResult
	if err := c.Do(ctx, http.MethodPost, "/jobs/simulate/"+url.PathEscape(taskID), req, &res); err != nil {
		return nil, err
	}
	if res.Error != "" {
		return nil, &APIError{Status: http.StatusOK, Detail: res.Error}
	}
	return &res, nil
}

// Compare scores a resume against a single job description.
func (c *Client) Compare(ctx context.Context, req *types.CompareRequest) (*types.Comparison, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var res types.Comparison
	if err := c.Do(ctx, http.MethodPost, "/jobs/compare", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// HistoryProfiles lists stored profiles, newest first.
func (c *Client) HistoryProfiles(ctx context.Context) ([]types.Profile, error) {
	var out []types.Profile
	if err := c.Do(ctx, http.MethodGet, "/history/profiles", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []types.Profile{}
	}
	return out, nil
}

// ProfileSearches lists the stored searches of one profile.
func (c *Client) ProfileSearches(ctx context.Context, profileID string) ([]types.SearchRecord, error) {
	var out []types.SearchRecord
	if err := c.Do(ctx, http.MethodGet, "/history/profiles/"+url.PathEscape(profileID)+"/searches", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []types.SearchRecord{}
	}
	return out, nil
}

// DeleteProfile removes a stored profile and its searches.
func (c *Client) DeleteProfile(ctx context.Context, profileID string) (*types.Ack, error) {
	var ack types.Ack
	if err := c.Do(ctx, http.MethodDelete, "/history/profiles/"+url.PathEscape(profileID), nil, &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}

// DeleteSearch removes one stored search.
func (c *Client) DeleteSearch(ctx context.Context, searchID string) (*types.Ack, error) {
	var ack types.Ack
	if err := c.Do(ctx, http.MethodDelete, "/history/searches/"+url.PathEscape(searchID), nil, &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}

// SuggestRoles asks the language model for roles matching a resume.
func (c *Client) SuggestRoles(ctx context.Context, req *types.RoleSuggestionRequest) (*types.RoleSuggestions, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var res types.RoleSuggestions
	if err := c.Do(ctx, http.MethodPost, "/genai/suggest-roles", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Roadmap asks the language model for a learning plan toward a target role.
func (c *Client) Roadmap(ctx context.Context, req *types.RoadmapRequest) (*types.Roadmap, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var res types.Roadmap
	if err := c.Do(ctx, http.MethodPost, "/genai/roadmap", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Pivot asks the language model for adjacent roles.
func (c *Client) Pivot(ctx context.Context, req *types.PivotRequest) (*types.PivotSuggestions, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var res types.PivotSuggestions
	if err := c.Do(ctx, http.MethodPost, "/genai/pivot", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
