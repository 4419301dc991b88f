// Package derive computes presentation structures from fetched jobs,
// analytics and profile skills.
//
// Every function is pure: inputs are never modified and each call returns
// freshly allocated slices.
package derive

import (
	"strings"

	"github.com/jonathan/career-navigator/internal/skills"
	"github.com/jonathan/career-navigator/internal/types"
)

// Partition splits a job's required skills by whether the profile has them.
type Partition struct {
	Matched []string
	Missing []string
}

// PartitionSkills compares a job's skills with the confirmed profile skills,
// ignoring case. Labels keep the job's casing and order.
func PartitionSkills(job types.SkillList, confirmed []string) Partition {
	have := skills.NewSet(confirmed...)
	p := Partition{Matched: []string{}, Missing: []string{}}
	for _, label := range job.Labels() {
		if have.Contains(label) {
			p.Matched = append(p.Matched, label)
		} else {
			p.Missing = append(p.Missing, label)
		}
	}
	return p
}

// UniqueSkills returns every skill required by any job, deduplicated
// ignoring case and sorted for display.
func UniqueSkills(jobs []types.Job) []string {
	set := skills.NewSet()
	for _, job := range jobs {
		for _, label := range job.Skills.Labels() {
			set.Add(label)
		}
	}
	return set.Sorted()
}

// DefaultRoadmapSkills is how many missing in-demand skills feed a roadmap.
const DefaultRoadmapSkills = 5

// MissingTopSkills returns up to limit of the most demanded skills the
// profile has not confirmed, in demand order. A limit <= 0 returns them all.
func MissingTopSkills(analytics *types.Analytics, confirmed []string, limit int) []string {
	out := []string{}
	if analytics == nil {
		return out
	}
	have := skills.NewSet(confirmed...)
	seen := skills.NewSet()
	for _, s := range analytics.TopSkills {
		if have.Contains(s.Name) || !seen.Add(s.Name) {
			continue
		}
		out = append(out, strings.TrimSpace(s.Name))
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
