package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-navigator/internal/types"
)

func TestUploadResume(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/profile/upload", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"profile_id": "p-1",
			"raw_text": "Go developer",
			"skills": [{"name": "Go", "confirmed": false}, {"name": "go"}, {"name": "SQL"}]
		}`))
	})

	p, err := c.UploadResume(context.Background(), "cv.pdf", strings.NewReader("%PDF"))
	require.NoError(t, err)
	assert.Equal(t, "p-1", p.ID)
	assert.Equal(t, "cv.pdf", p.Filename)
	assert.Equal(t, []string{"Go", "SQL"}, p.Skills.Labels())
}

func TestStartSearch_ValidatesBeforeNetwork(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"task_id": "t-1"}`))
	})

	_, err := c.StartSearch(context.Background(), &types.StartSearchRequest{Query: "SRE"})
	var verr *types.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, int32(0), calls.Load())
}

func TestStartSearch(t *testing.T) {
	var body types.StartSearchRequest
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/jobs/search", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte(`{"task_id": "t-42", "status": "pending"}`))
	})

	resp, err := c.StartSearch(context.Background(), &types.StartSearchRequest{
		ProfileID:     "p-1",
		Query:         "SRE",
		Location:      "India",
		Portals:       []string{"linkedin"},
		SerpAPIConfig: &types.SerpAPIConfig{APIKey: "k", NumJobs: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, "t-42", resp.TaskID)
	assert.Equal(t, "SRE", body.Query)
	assert.Equal(t, 10, body.SerpAPIConfig.NumJobs)
}

func TestStartSearch_MissingTaskID(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status": "pending"}`))
	})

	_, err := c.StartSearch(context.Background(), &types.StartSearchRequest{
		Query:         "SRE",
		Location:      "India",
		Portals:       []string{"naukri"},
		SerpAPIConfig: &types.SerpAPIConfig{APIKey: "k", NumJobs: 5},
	})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Contains(t, apiErr.Detail, "task_id")
}

func TestTaskStatus(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/jobs/status/gone" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail": "Task not found"}`))
			return
		}
		_, _ = w.Write([]byte(`{"status": "pending", "logs": ["Scraping @ LinkedIn (1/10)"]}`))
	})

	s, err := c.TaskStatus(context.Background(), "t-1")
	require.NoError(t, err)
	assert.Equal(t, "t-1", s.TaskID)
	assert.False(t, s.IsTerminal())
	assert.Equal(t, []string{"Scraping @ LinkedIn (1/10)"}, s.Logs)

	_, err = c.TaskStatus(context.Background(), "gone")
	assert.True(t, IsNotFound(err))
}

func TestResultsAndAnalytics(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/jobs/results/t-1":
			_, _ = w.Write([]byte(`[{"title": "SRE", "url": "https://jobs.example/1", "match_score": 77}]`))
		case "/api/v1/jobs/analytics/t-1":
			_, _ = w.Write([]byte(`{"avg_match_score": 77, "top_skills": [{"name": "Go", "count": 1}]}`))
		default:
			http.NotFound(w, r)
		}
	})

	res, err := c.Results(context.Background(), "t-1")
	require.NoError(t, err)
	require.Len(t, res.Jobs, 1)
	assert.Equal(t, "https://jobs.example/1", res.Jobs[0].Link)

	a, err := c.Analytics(context.Background(), "t-1")
	require.NoError(t, err)
	assert.Equal(t, []types.NamedCount{{Name: "Go", Count: 1}}, a.TopSkills)
}

func TestSimulate_SoftError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"error": "Profile embedding not found"}`))
	})

	_, err := c.Simulate(context.Background(), "t-1", &types.SimulateRequest{ProfileID: "p-1", AddedSkills: []string{"Go"}})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Profile embedding not found", apiErr.Detail)
}

func TestSimulate(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/jobs/simulate/t-1", r.URL.Path)
		_, _ = w.Write([]byte(`{"original_avg_score": 50, "new_avg_score": 58.5, "score_delta": 8.5, "new_reach": 40, "reach_delta": 10, "jobs_improved": 3}`))
	})

	res, err := c.Simulate(context.Background(), "t-1", &types.SimulateRequest{ProfileID: "p-1", AddedSkills: []string{"Kubernetes"}})
	require.NoError(t, err)
	assert.InDelta(t, 58.5, res.NewAvgScore, 0.001)
	assert.Nil(t, res.OriginalReach)
	assert.Equal(t, 3, res.JobsImproved)
}

func TestHistory(t *testing.T) {
	var deleted []string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodDelete:
			deleted = append(deleted, r.URL.Path)
			_, _ = w.Write([]byte(`{"status": "deleted"}`))
		case r.URL.Path == "/api/v1/history/profiles":
			_, _ = w.Write([]byte(`[{"id": "p-1", "filename": "cv.pdf", "confirmed_skills": "[\"Go\"]"}]`))
		case r.URL.Path == "/api/v1/history/profiles/p-1/searches":
			_, _ = w.Write([]byte(`null`))
		}
	})

	profiles, err := c.HistoryProfiles(context.Background())
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, []string{"Go"}, profiles[0].ConfirmedSkills)

	searches, err := c.ProfileSearches(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Empty(t, searches)
	assert.NotNil(t, searches)

	ack, err := c.DeleteProfile(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, "deleted", ack.Status)
	_, err = c.DeleteSearch(context.Background(), "s-9")
	require.NoError(t, err)
	assert.Equal(t, []string{"/api/v1/history/profiles/p-1", "/api/v1/history/searches/s-9"}, deleted)
}

func TestGenAIEndpoints(t *testing.T) {
	var paths []string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "groq", body["provider"])
		switch r.URL.Path {
		case "/api/v1/genai/suggest-roles":
			_, _ = w.Write([]byte(`{"roles": [{"title": "ML Engineer", "reason": "fit", "skills": ["Python"]}]}`))
		case "/api/v1/genai/roadmap":
			_, _ = w.Write([]byte(`{"monthly_plan": [{"month": 1, "focus_topic": "Spark"}], "portfolio_projects": []}`))
		case "/api/v1/genai/pivot":
			_, _ = w.Write([]byte(`{"pivots": [{"role": "Data Engineer", "overlap_percentage": 70, "bridge_skills": ["Airflow"]}]}`))
		}
	})
	ctx := context.Background()

	roles, err := c.SuggestRoles(ctx, &types.RoleSuggestionRequest{APIKey: "k", Provider: "groq", ResumeText: "resume"})
	require.NoError(t, err)
	assert.Equal(t, "ML Engineer", roles.Roles[0].Title)

	plan, err := c.Roadmap(ctx, &types.RoadmapRequest{APIKey: "k", Provider: "groq", CurrentRole: "Analyst", TargetRole: "Data Engineer", MissingSkills: []string{"Spark"}})
	require.NoError(t, err)
	assert.Equal(t, "Spark", plan.MonthlyPlan[0].FocusTopic)

	pivots, err := c.Pivot(ctx, &types.PivotRequest{APIKey: "k", Provider: "groq", CurrentRole: "Analyst", CurrentSkills: []string{"SQL"}})
	require.NoError(t, err)
	assert.Equal(t, 70, pivots.Pivots[0].OverlapPercentage)

	assert.Equal(t, []string{"/api/v1/genai/suggest-roles", "/api/v1/genai/roadmap", "/api/v1/genai/pivot"}, paths)
}

func TestCompare(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/jobs/compare", r.URL.Path)
		_, _ = w.Write([]byte(`{"match_score": 72.4, "llm_analysis": {"why_it_fits": "Go", "why_it_doesnt_fit": "No Rust", "resume_patches": [{"bullet_point": "Built X"}]}}`))
	})

	res, err := c.Compare(context.Background(), &types.CompareRequest{ProfileID: "p-1", JDText: "Need Go", APIKey: "k"})
	require.NoError(t, err)
	assert.InDelta(t, 72.4, res.MatchScore, 0.001)
	assert.Equal(t, "Built X", res.LLMAnalysis.ResumePatches[0].BulletPoint)

	_, err = c.Compare(context.Background(), &types.CompareRequest{JDText: "Need Go", APIKey: "k"})
	var verr *types.ValidationError
	assert.True(t, errors.As(err, &verr))
}
