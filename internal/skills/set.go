// Package skills provides case-insensitive skill label sets.
//
// Labels are compared by their lower-cased, trimmed form but keep the casing
// they were first seen with, so "Python", "python" and "PYTHON" collapse into
// a single "Python" entry.
package skills

import (
	"sort"
	"strings"
)

// Key returns the comparison key for a skill label.
func Key(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// Set is an ordered, case-insensitive collection of skill labels.
// The zero value is an empty set ready to use.
type Set struct {
	index  map[string]int
	labels []string
}

// NewSet builds a set from labels, keeping first-seen casing and order.
func NewSet(labels ...string) *Set {
	s := &Set{}
	for _, l := range labels {
		s.Add(l)
	}
	return s
}

// Add inserts a label unless an equal label (ignoring case) is present.
// Blank labels are ignored. Returns true if the label was added.
func (s *Set) Add(label string) bool {
	trimmed := strings.TrimSpace(label)
	if trimmed == "" {
		return false
	}
	if s.index == nil {
		s.index = make(map[string]int)
	}
	key := Key(trimmed)
	if _, ok := s.index[key]; ok {
		return false
	}
	s.index[key] = len(s.labels)
	s.labels = append(s.labels, trimmed)
	return true
}

// Remove deletes the label matching the given one, ignoring case.
func (s *Set) Remove(label string) bool {
	key := Key(label)
	i, ok := s.index[key]
	if !ok {
		return false
	}
	s.labels = append(s.labels[:i], s.labels[i+1:]...)
	delete(s.index, key)
	for k, idx := range s.index {
		if idx > i {
			s.index[k] = idx - 1
		}
	}
	return true
}

// Contains reports whether the set holds label, ignoring case.
func (s *Set) Contains(label string) bool {
	if s == nil || s.index == nil {
		return false
	}
	_, ok := s.index[Key(label)]
	return ok
}

// Len returns the number of labels.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.labels)
}

// Labels returns a copy of the labels in insertion order.
func (s *Set) Labels() []string {
	if s == nil {
		return []string{}
	}
	out := make([]string, len(s.labels))
	copy(out, s.labels)
	return out
}

// Sorted returns a copy of the labels ordered case-insensitively.
// Ties fall back to byte order so output is deterministic.
func (s *Set) Sorted() []string {
	out := s.Labels()
	sort.SliceStable(out, func(i, j int) bool {
		ki, kj := Key(out[i]), Key(out[j])
		if ki != kj {
			return ki < kj
		}
		return out[i] < out[j]
	})
	return out
}

// Dedup returns labels with blanks dropped and case-insensitive duplicates removed.
func Dedup(labels []string) []string {
	return NewSet(labels...).Labels()
}
