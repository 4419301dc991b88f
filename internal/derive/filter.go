package derive

import (
	"sort"
	"strings"

	"github.com/jonathan/career-navigator/internal/skills"
	"github.com/jonathan/career-navigator/internal/types"
)

// SortByMatchScore orders jobs by descending match score.
const SortByMatchScore = "match_score"

// Filter selects jobs. Each list is an "any of" match; an empty list
// accepts every job. All three conditions must hold.
type Filter struct {
	MinScore  float64
	Skills    []string
	Locations []string
}

// FilterJobs returns the jobs passing f, in input order.
func FilterJobs(jobs []types.Job, f Filter) []types.Job {
	wantSkills := skills.NewSet(f.Skills...)
	wantLocations := normalizeLocations(f.Locations)

	out := make([]types.Job, 0, len(jobs))
	for _, job := range jobs {
		if job.MatchScore < f.MinScore {
			continue
		}
		if wantSkills.Len() > 0 && !anySkill(job.Skills, wantSkills) {
			continue
		}
		if len(wantLocations) > 0 && !matchLocation(job.Location, wantLocations) {
			continue
		}
		out = append(out, job)
	}
	return out
}

func anySkill(list types.SkillList, want *skills.Set) bool {
	for _, label := range list.Labels() {
		if want.Contains(label) {
			return true
		}
	}
	return false
}

func normalizeLocations(locations []string) []string {
	out := make([]string, 0, len(locations))
	for _, l := range locations {
		if k := skills.Key(l); k != "" {
			out = append(out, k)
		}
	}
	return out
}

// matchLocation accepts a job whose location equals or contains any wanted one.
func matchLocation(location string, want []string) bool {
	loc := strings.ToLower(location)
	for _, w := range want {
		if loc == w || strings.Contains(loc, w) {
			return true
		}
	}
	return false
}

// SortJobs returns a sorted copy of jobs. "match_score" (and "") order by
// descending score, keeping input order among equal scores. Other keys
// return the jobs unchanged.
func SortJobs(jobs []types.Job, sortBy string) []types.Job {
	out := make([]types.Job, len(jobs))
	copy(out, jobs)
	switch sortBy {
	case SortByMatchScore, "":
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].MatchScore > out[j].MatchScore
		})
	}
	return out
}

// UniqueLocations returns the location facets reported by analytics, in
// ranking order, deduplicated ignoring case.
func UniqueLocations(analytics *types.Analytics) []string {
	if analytics == nil {
		return []string{}
	}
	set := skills.NewSet()
	for _, l := range analytics.TopLocations {
		set.Add(l.Name)
	}
	return set.Labels()
}
