package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI serves canned matching API responses and records request bodies.
type fakeAPI struct {
	t      *testing.T
	server *httptest.Server

	mu     sync.Mutex
	bodies map[string]map[string]any
	hits   map[string]int
}

const (
	fakeJobs = `{"query":"Backend Engineer","jobs":[
		{"title":"Go Developer","company":"Acme","location":"Bangalore","work_mode":"Remote","skills":["Go","Docker","Kubernetes"],"match_score":86,"link":"https://www.linkedin.com/jobs/view/1","portal":"linkedin"},
		{"title":"Platform Engineer","company":"Globex","location":"Pune","work_mode":"Hybrid","skills":["Python","AWS"],"match_score":42.4,"link":"https://in.indeed.com/viewjob?jk=2","portal":"indeed"}
	]}`
	fakeAnalytics = `{"total_jobs":2,"avg_match_score":64.2,
		"top_skills":[{"name":"Go","count":2},{"name":"Docker","count":1},{"name":"AWS","count":1}],
		"top_locations":[{"name":"Bangalore","count":1},{"name":"Pune","count":1}],
		"work_mode_distribution":[{"name":"Remote","count":1},{"name":"Hybrid","count":1}]}`
	fakeProfiles = `[{"id":"p1","filename":"resume.pdf","raw_text":"Go developer with SQL","skills":["Go","SQL"],"confirmed_skills":"[\"Go\",\"SQL\"]","created_at":"2026-01-02T10:00:00Z"}]`
)

func newFakeAPI(t *testing.T) *fakeAPI {
	f := &fakeAPI{t: t, bodies: map[string]map[string]any{}, hits: map[string]int{}}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /profile/upload", func(w http.ResponseWriter, r *http.Request) {
		f.hit(r)
		writeJSON(w, http.StatusOK, `{"profile_id":"p1","filename":"resume.pdf","raw_text":"Go developer with SQL","skills":["Go","SQL","Excel"]}`)
	})
	mux.HandleFunc("POST /profile/embed", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		writeJSON(w, http.StatusOK, `{"status":"success"}`)
	})
	mux.HandleFunc("POST /jobs/search", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		writeJSON(w, http.StatusOK, `{"task_id":"t1","status":"started"}`)
	})
	mux.HandleFunc("GET /jobs/status/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.hit(r)
		switch r.PathValue("id") {
		case "t1":
			writeJSON(w, http.StatusOK, `{"task_id":"t1","status":"completed","logs":["Scanning linkedin","Scored 2 jobs"]}`)
		case "broken":
			writeJSON(w, http.StatusOK, `{"task_id":"broken","status":"failed","logs":["Portal error"]}`)
		default:
			writeJSON(w, http.StatusNotFound, `{"detail":"Task not found"}`)
		}
	})
	mux.HandleFunc("GET /jobs/results/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.hit(r)
		writeJSON(w, http.StatusOK, fakeJobs)
	})
	mux.HandleFunc("GET /jobs/analytics/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.hit(r)
		writeJSON(w, http.StatusOK, fakeAnalytics)
	})
	mux.HandleFunc("POST /jobs/simulate/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		writeJSON(w, http.StatusOK, `{"original_avg_score":55,"new_avg_score":62,"score_delta":7,"new_reach":50,"reach_delta":10,"jobs_improved":1,
			"top_improvements":[{"title":"Platform Engineer","company":"Globex","old_score":42,"new_score":61,"delta":19}]}`)
	})
	mux.HandleFunc("POST /jobs/compare", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		writeJSON(w, http.StatusOK, `{"match_score":71,"cross_encoder_score":0.8,"llm_analysis":{"why_it_fits":"Strong Go background.","why_it_doesnt_fit":"No Kubernetes.","missing_skills":["Kubernetes"],"resume_patches":[{"bullet_point":"Deployed Go services on Kubernetes"}]}}`)
	})
	mux.HandleFunc("GET /history/profiles", func(w http.ResponseWriter, r *http.Request) {
		f.hit(r)
		writeJSON(w, http.StatusOK, fakeProfiles)
	})
	mux.HandleFunc("GET /history/profiles/{id}/searches", func(w http.ResponseWriter, r *http.Request) {
		f.hit(r)
		writeJSON(w, http.StatusOK, `[{"id":"s1","profile_id":"p1","query":"Backend Engineer","location":"India","portals":"[\"linkedin\"]","total_jobs":2,"market_reach":50,"average_score":64.2,"high_match_jobs":1}]`)
	})
	mux.HandleFunc("DELETE /history/searches/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.hit(r)
		writeJSON(w, http.StatusOK, `{"status":"success","message":"Search deleted"}`)
	})
	mux.HandleFunc("POST /genai/roadmap", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		writeJSON(w, http.StatusOK, `{"monthly_plan":[{"month":1,"focus_topic":"Containers","skills_to_learn":["Docker"],"resources":["Docker docs"],"project_idea":"Containerize an API"}],"portfolio_projects":[]}`)
	})
	mux.HandleFunc("POST /genai/pivot", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		writeJSON(w, http.StatusOK, `{"pivots":[{"role":"SRE","overlap_percentage":70,"bridge_skills":["Kubernetes"],"salary_potential":"High"}]}`)
	})
	mux.HandleFunc("POST /genai/suggest-roles", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		writeJSON(w, http.StatusOK, `{"roles":[{"title":"Backend Engineer","reason":"Go experience","skills":["Go"]}]}`)
	})
	mux.HandleFunc("GET /posting", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = io.WriteString(w, `<html><body><nav>Jobs Home</nav><main><h1>Backend Engineer</h1><p>Build Go services on Kubernetes.</p></main></body></html>`)
	})

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeAPI) hit(r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hits[r.Method+" "+r.URL.Path]++
}

func (f *fakeAPI) record(r *http.Request) {
	f.hit(r)
	var body map[string]any
	assert.NoError(f.t, json.NewDecoder(r.Body).Decode(&body))
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bodies[r.URL.Path] = body
}

func (f *fakeAPI) body(path string) map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bodies[path]
}

func (f *fakeAPI) hitCount(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[key]
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

// executeCommand runs the root command in-process against api and returns stdout.
func executeCommand(t *testing.T, api *fakeAPI, args ...string) (string, error) {
	t.Helper()
	return executeCommandEnv(t, api, nil, args...)
}

// executeCommandEnv is executeCommand with env applied over a cleared environment.
func executeCommandEnv(t *testing.T, api *fakeAPI, env map[string]string, args ...string) (string, error) {
	t.Helper()
	for _, key := range []string{"NAVIGATOR_API_URL", "SERP_API_KEY", "GROQ_API_KEY", "DATABASE_URL", "LOG_LEVEL"} {
		t.Setenv(key, env[key])
	}
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	if api != nil {
		args = append(args, "--api-url", api.server.URL)
	}
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores every flag of cmd and its children to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func stringsOf(v any) []string {
	items, _ := v.([]any)
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, _ := item.(string)
		out = append(out, strings.TrimSpace(s))
	}
	return out
}
