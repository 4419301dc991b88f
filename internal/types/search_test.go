package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskStatus_Terminal(t *testing.T) {
	tests := []struct {
		status    string
		completed bool
		failed    bool
	}{
		{TaskStatusPending, false, false},
		{TaskStatusProcessing, false, false},
		{TaskStatusRunning, false, false},
		{TaskStatusCompleted, true, false},
		{"COMPLETED", true, false},
		{TaskStatusFailed, false, true},
		{"", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			s := &TaskStatus{Status: tt.status}
			assert.Equal(t, tt.completed, s.IsCompleted())
			assert.Equal(t, tt.failed, s.IsFailed())
			assert.Equal(t, tt.completed || tt.failed, s.IsTerminal())
		})
	}
}

func TestJob_UnmarshalLinkFallback(t *testing.T) {
	var withURL Job
	require.NoError(t, json.Unmarshal([]byte(`{"title": "SRE", "url": "https://example.com/a"}`), &withURL))
	assert.Equal(t, "https://example.com/a", withURL.Link)

	var withLink Job
	require.NoError(t, json.Unmarshal([]byte(`{"link": "https://example.com/b", "url": "https://example.com/c"}`), &withLink))
	assert.Equal(t, "https://example.com/b", withLink.Link)
}

func TestJob_UnmarshalNullScore(t *testing.T) {
	var j Job
	require.NoError(t, json.Unmarshal([]byte(`{"title": "SRE", "match_score": null}`), &j))
	assert.Zero(t, j.MatchScore)
}

func TestSearchResults_Unmarshal(t *testing.T) {
	t.Run("object form", func(t *testing.T) {
		var r SearchResults
		require.NoError(t, json.Unmarshal([]byte(`{"query": "Data Engineer", "jobs": [{"title": "A", "match_score": 80}]}`), &r))
		assert.Equal(t, "Data Engineer", r.Query)
		require.Len(t, r.Jobs, 1)
		assert.True(t, r.HasJobs())
	})

	t.Run("bare array", func(t *testing.T) {
		var r SearchResults
		require.NoError(t, json.Unmarshal([]byte(` [{"title": "A"}, {"title": "B", "skills": "[\"Go\"]"}]`), &r))
		assert.Empty(t, r.Query)
		require.Len(t, r.Jobs, 2)
		assert.Equal(t, []string{"Go"}, r.Jobs[1].Skills.Labels())
	})

	t.Run("error body without jobs", func(t *testing.T) {
		var r SearchResults
		require.NoError(t, json.Unmarshal([]byte(`{"error": "Results not found"}`), &r))
		assert.False(t, r.HasJobs())
		assert.Equal(t, "Results not found", r.Error)
	})

	t.Run("empty jobs list still counts", func(t *testing.T) {
		var r SearchResults
		require.NoError(t, json.Unmarshal([]byte(`{"jobs": []}`), &r))
		assert.True(t, r.HasJobs())
	})
}

func TestAnalytics_Unmarshal(t *testing.T) {
	input := `{
		"total_jobs": 12,
		"avg_match_score": 64.25,
		"top_skills": [{"name": "Python", "count": 9}],
		"top_locations": [{"name": "Bangalore", "count": 5}],
		"work_mode_distribution": [{"name": "Remote", "count": 3}],
		"score_distribution": [{"range": "80-100", "count": 2}],
		"source": "database"
	}`

	var a Analytics
	require.NoError(t, json.Unmarshal([]byte(input), &a))
	assert.Equal(t, 12, a.TotalJobs)
	assert.InDelta(t, 64.25, a.AvgMatchScore, 0.0001)
	assert.Equal(t, []NamedCount{{Name: "Python", Count: 9}}, a.TopSkills)
	assert.Equal(t, []RangeCount{{Range: "80-100", Count: 2}}, a.ScoreDistribution)
	assert.Equal(t, "database", a.Source)
}

func TestSearchRecord_UnmarshalEncodedPortals(t *testing.T) {
	input := `{
		"id": "s-1",
		"profile_id": "p-1",
		"query": "Backend Engineer",
		"portals": "[\"linkedin\", \"indeed\"]",
		"total_jobs": 20,
		"market_reach": 45.5,
		"average_score": 61.2,
		"high_match_jobs": 4,
		"created_at": "2024-06-01T09:00:00Z"
	}`

	var s SearchRecord
	require.NoError(t, json.Unmarshal([]byte(input), &s))
	assert.Equal(t, []string{"linkedin", "indeed"}, s.Portals)
	assert.Equal(t, 4, s.HighMatchJobs)
	require.NotNil(t, s.CreatedAt)
}

func TestJobSearch_Clone(t *testing.T) {
	h := &JobSearch{TaskID: "t-1", Query: "SRE"}
	c := h.Clone()
	c.Query = "changed"
	assert.Equal(t, "SRE", h.Query)

	var nilHandle *JobSearch
	assert.Nil(t, nilHandle.Clone())
}
