package derive

import (
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-navigator/internal/skills"
	"github.com/jonathan/career-navigator/internal/types"
)

var skillPool = []string{"Python", "python", "Go", "SQL", "sql", "Docker", "AWS", "Kubernetes", "React", "Spark"}
var locationPool = []string{"Bangalore, India", "Remote", "Pune", "bangalore", "Hyderabad, Telangana", ""}

func randomJobs(r *rand.Rand, n int) []types.Job {
	jobs := make([]types.Job, n)
	for i := range jobs {
		var labels []string
		for j := 0; j < r.Intn(5); j++ {
			labels = append(labels, skillPool[r.Intn(len(skillPool))])
		}
		jobs[i] = types.Job{
			Title:      "Job " + strconv.Itoa(i),
			Location:   locationPool[r.Intn(len(locationPool))],
			MatchScore: float64(r.Intn(1001)) / 10,
			Skills:     types.NewSkillList(labels...),
		}
	}
	return jobs
}

func randomLabels(r *rand.Rand, pool []string) []string {
	var out []string
	for j := 0; j < r.Intn(3); j++ {
		out = append(out, pool[r.Intn(len(pool))])
	}
	return out
}

func TestPartitionSkills(t *testing.T) {
	p := PartitionSkills(types.NewSkillList("Python", "Docker", "Kubernetes"), []string{"python", "KUBERNETES", "Go"})
	assert.Equal(t, []string{"Python", "Kubernetes"}, p.Matched)
	assert.Equal(t, []string{"Docker"}, p.Missing)

	empty := PartitionSkills(types.SkillList{}, []string{"Go"})
	assert.Equal(t, []string{}, empty.Matched)
	assert.Equal(t, []string{}, empty.Missing)
}

func TestPartitionSkills_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		job := types.NewSkillList(randomLabels(r, skillPool)...)
		confirmed := randomLabels(r, skillPool)

		first := PartitionSkills(job, confirmed)
		second := PartitionSkills(job, confirmed)
		require.Equal(t, first, second, "partition is idempotent")

		union := skills.NewSet(first.Matched...)
		for _, m := range first.Missing {
			require.False(t, union.Contains(m), "matched and missing are disjoint")
			union.Add(m)
		}
		require.Equal(t, job.Len(), union.Len())
		for _, label := range job.Labels() {
			require.True(t, union.Contains(label))
		}
	}
}

func TestPartitionSkills_DefensiveSkillShapes(t *testing.T) {
	var encoded, broken types.SkillList
	require.NoError(t, encoded.UnmarshalJSON([]byte(`"[\"Go\", \"Rust\"]"`)))
	require.NoError(t, broken.UnmarshalJSON([]byte(`"[Go"`)))

	p := PartitionSkills(encoded, []string{"go"})
	assert.Equal(t, []string{"Go"}, p.Matched)
	assert.Equal(t, []string{"Rust"}, p.Missing)

	p = PartitionSkills(broken, []string{"go"})
	assert.Empty(t, p.Matched)
	assert.Empty(t, p.Missing)
}

func TestHeatmapRow(t *testing.T) {
	row := HeatmapRow(types.NamedCount{Name: "Python", Count: 3}, 7, []string{"python"})
	assert.Equal(t, "42.9", row.Percentage)
	assert.InDelta(t, 42.9, row.Share, 0.0001)
	assert.True(t, row.Verified)
	assert.Equal(t, 3, row.Count)

	row = HeatmapRow(types.NamedCount{Name: "Rust", Count: 2}, 0, nil)
	assert.Equal(t, "0.0", row.Percentage)
	assert.False(t, row.Verified)

	row = HeatmapRow(types.NamedCount{Name: "Go", Count: 12}, 10, nil)
	assert.Equal(t, "100.0", row.Percentage, "counts above the job total are clamped")
}

func TestHeatmap_Bounds(t *testing.T) {
	analytics := &types.Analytics{TopSkills: []types.NamedCount{
		{Name: "Python", Count: 9}, {Name: "Go", Count: 0}, {Name: "SQL", Count: 4}, {Name: "Docker", Count: 40},
	}}

	for _, total := range []int{0, 1, 4, 9, 10, 33} {
		rows := Heatmap(analytics, total, []string{"Go"})
		require.Len(t, rows, 4)
		for _, row := range rows {
			assert.GreaterOrEqual(t, row.Share, 0.0)
			assert.LessOrEqual(t, row.Share, 100.0)
			if total == 0 {
				assert.Equal(t, "0.0", row.Percentage)
			}
		}
		assert.True(t, rows[1].Verified)
	}

	assert.Equal(t, []HeatRow{}, Heatmap(nil, 10, nil))
}

func TestFilterJobs(t *testing.T) {
	jobs := []types.Job{
		{Title: "A", Location: "Bangalore, India", MatchScore: 90, Skills: types.NewSkillList("Go", "SQL")},
		{Title: "B", Location: "Remote", MatchScore: 45, Skills: types.NewSkillList("Python")},
		{Title: "C", Location: "Pune", MatchScore: 70, Skills: types.NewSkillList("python", "Docker")},
		{Title: "D", Location: "bangalore", MatchScore: 30},
	}

	titles := func(js []types.Job) []string {
		out := []string{}
		for _, j := range js {
			out = append(out, j.Title)
		}
		return out
	}

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{name: "no filter", filter: Filter{}, want: []string{"A", "B", "C", "D"}},
		{name: "min score inclusive", filter: Filter{MinScore: 70}, want: []string{"A", "C"}},
		{name: "skill any of ignoring case", filter: Filter{Skills: []string{"PYTHON", "sql"}}, want: []string{"A", "B", "C"}},
		{name: "location contains", filter: Filter{Locations: []string{"Bangalore"}}, want: []string{"A", "D"}},
		{name: "location any of", filter: Filter{Locations: []string{"pune", "remote"}}, want: []string{"B", "C"}},
		{name: "conjunction", filter: Filter{MinScore: 50, Skills: []string{"Python"}, Locations: []string{"Pune", "Remote"}}, want: []string{"C"}},
		{name: "blank selections ignored", filter: Filter{Skills: []string{" "}, Locations: []string{""}}, want: []string{"A", "B", "C", "D"}},
		{name: "nothing matches", filter: Filter{Skills: []string{"Haskell"}}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, titles(FilterJobs(jobs, tt.filter)))
		})
	}
}

func TestFilterJobs_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for i := 0; i < 200; i++ {
		jobs := randomJobs(r, r.Intn(20))
		f := Filter{
			MinScore:  float64(r.Intn(100)),
			Skills:    randomLabels(r, skillPool),
			Locations: randomLabels(r, []string{"india", "Remote", "PUNE"}),
		}

		got := FilterJobs(jobs, f)
		require.LessOrEqual(t, len(got), len(jobs))

		selected := skills.NewSet(f.Skills...)
		for _, job := range got {
			require.GreaterOrEqual(t, job.MatchScore, f.MinScore)
			if selected.Len() > 0 {
				require.True(t, anySkill(job.Skills, selected))
			}
			if len(f.Locations) > 0 {
				ok := false
				for _, l := range f.Locations {
					ok = ok || strings.Contains(strings.ToLower(job.Location), strings.ToLower(l))
				}
				require.True(t, ok)
			}
		}

		all := FilterJobs(jobs, Filter{})
		require.Len(t, all, len(jobs), "empty selections exclude nothing")
	}
}

func TestFilterJobs_DoesNotMutateInput(t *testing.T) {
	jobs := []types.Job{{Title: "A", MatchScore: 10}, {Title: "B", MatchScore: 90}}
	_ = FilterJobs(jobs, Filter{MinScore: 50})
	_ = SortJobs(jobs, SortByMatchScore)
	assert.Equal(t, "A", jobs[0].Title)
	assert.Len(t, jobs, 2)
}

func TestSortJobs(t *testing.T) {
	jobs := []types.Job{
		{Title: "A", MatchScore: 40},
		{Title: "B", MatchScore: 90},
		{Title: "C", MatchScore: 40},
		{Title: "D", MatchScore: 65.5},
	}

	sorted := SortJobs(jobs, SortByMatchScore)
	var order []string
	for _, j := range sorted {
		order = append(order, j.Title)
	}
	assert.Equal(t, []string{"B", "D", "A", "C"}, order)

	assert.Equal(t, sorted, SortJobs(jobs, ""), "match score is the default order")
	assert.Equal(t, jobs, SortJobs(jobs, "date"), "unknown keys keep input order")
}

func TestSortJobs_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 100; i++ {
		jobs := randomJobs(r, r.Intn(30))
		once := SortJobs(jobs, SortByMatchScore)
		for k := 0; k+1 < len(once); k++ {
			require.GreaterOrEqual(t, once[k].MatchScore, once[k+1].MatchScore)
		}
		require.Equal(t, once, SortJobs(once, SortByMatchScore), "sorting is idempotent")
	}
}

func TestUniqueSkills(t *testing.T) {
	jobs := []types.Job{
		{Skills: types.NewSkillList("Python", "docker")},
		{Skills: types.NewSkillList("python", "PYTHON", "AWS")},
		{},
	}
	assert.Equal(t, []string{"AWS", "docker", "Python"}, UniqueSkills(jobs))
	assert.Equal(t, []string{}, UniqueSkills(nil))
}

func TestSkillDedupKeepsFirstSeenCasing(t *testing.T) {
	list := types.NewSkillList("Python", "python", "PYTHON")
	assert.Equal(t, []string{"Python"}, list.Labels())

	profile := &types.Profile{Skills: list}
	profile.ConfirmedSkills = profile.ReviewSkills()
	assert.Equal(t, []string{"Python"}, types.NewSkillList(profile.ConfirmedSkills...).Labels())
	assert.Equal(t, []string{"Python"}, UniqueSkills([]types.Job{{Skills: list}, {Skills: types.NewSkillList("python")}}))
}

func TestUniqueLocations(t *testing.T) {
	a := &types.Analytics{TopLocations: []types.NamedCount{{Name: "Pune"}, {Name: "Remote"}, {Name: "pune"}, {Name: " "}}}
	assert.Equal(t, []string{"Pune", "Remote"}, UniqueLocations(a))
	assert.Equal(t, []string{}, UniqueLocations(nil))
}

func TestMissingTopSkills(t *testing.T) {
	a := &types.Analytics{TopSkills: []types.NamedCount{
		{Name: "Python"}, {Name: "SQL"}, {Name: "AWS"}, {Name: "Docker"}, {Name: "Spark"}, {Name: "Kafka"}, {Name: "Airflow"}, {Name: "aws"},
	}}

	assert.Equal(t, []string{"AWS", "Docker", "Spark", "Kafka", "Airflow"}, MissingTopSkills(a, []string{"python", "SQL"}, DefaultRoadmapSkills))
	assert.Equal(t, []string{"SQL"}, MissingTopSkills(a, []string{"Python"}, 1))
	assert.Len(t, MissingTopSkills(a, nil, 0), 7)
	assert.Equal(t, []string{}, MissingTopSkills(nil, nil, 5))
}

func TestMatchBand(t *testing.T) {
	assert.Equal(t, BandHigh, MatchBand(80))
	assert.Equal(t, BandPotential, MatchBand(79.99))
	assert.Equal(t, BandPotential, MatchBand(50))
	assert.Equal(t, BandLow, MatchBand(49.9))
}

func TestRecommendation(t *testing.T) {
	assert.Equal(t, "Exceptional fit! You're ready for top-tier roles.", Recommendation(89.6))
	assert.Equal(t, "Excellent profile. Very strong market alignment.", Recommendation(89.4))
	assert.Equal(t, "Solid start. Targeted upskilling recommended.", Recommendation(50))
	assert.Equal(t, "Just starting. Every expert was once a beginner.", Recommendation(10))
	assert.Equal(t, "New journey. Let's build your skills from scratch.", Recommendation(0))
}

func TestScoreLabel(t *testing.T) {
	assert.Equal(t, "82%", ScoreLabel(81.6))
	assert.Equal(t, "0%", ScoreLabel(0))
	assert.Equal(t, 65, RoundScore(64.5))
}
