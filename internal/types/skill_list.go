// Package types provides type definitions for the payloads exchanged with the matching API.
package types

import (
	"bytes"
	"encoding/json"

	"github.com/jonathan/career-navigator/internal/skills"
)

// SkillListKind records which wire shape a SkillList was decoded from.
type SkillListKind int

const (
	// SkillListEmpty is null, missing, or an unrecognized shape.
	SkillListEmpty SkillListKind = iota
	// SkillListStrings is a JSON array of strings.
	SkillListStrings
	// SkillListEncoded is a JSON string holding an encoded array.
	SkillListEncoded
	// SkillListRecords is a JSON array of {"name": ...} records.
	SkillListRecords
)

// String returns a short name for the kind.
func (k SkillListKind) String() string {
	switch k {
	case SkillListStrings:
		return "strings"
	case SkillListEncoded:
		return "encoded"
	case SkillListRecords:
		return "records"
	default:
		return "empty"
	}
}

// SkillList is a list of skill labels normalized once at decode time.
// The backend sends skills as plain strings, as {"name": ...} records, or as a
// JSON-encoded string of either; all of them decode into canonical labels.
// Decoding never fails: an unparseable value becomes an empty list.
type SkillList struct {
	Kind   SkillListKind
	labels []string
}

type skillRecord struct {
	Name string `json:"name"`
}

// NewSkillList builds a SkillList from plain labels.
func NewSkillList(labels ...string) SkillList {
	return SkillList{Kind: SkillListStrings, labels: skills.Dedup(labels)}
}

// Labels returns a copy of the canonical labels: trimmed, deduplicated ignoring
// case, first-seen casing and order.
func (s SkillList) Labels() []string {
	out := make([]string, len(s.labels))
	copy(out, s.labels)
	return out
}

// Len returns the number of canonical labels.
func (s SkillList) Len() int {
	return len(s.labels)
}

// Set returns the labels as a case-insensitive set.
func (s SkillList) Set() *skills.Set {
	return skills.NewSet(s.labels...)
}

// MarshalJSON always encodes as an array of strings.
func (s SkillList) MarshalJSON() ([]byte, error) {
	if s.labels == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.labels)
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *SkillList) UnmarshalJSON(data []byte) error {
	*s = decodeSkillList(data, true)
	return nil
}

func decodeSkillList(data []byte, allowEncoded bool) SkillList {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return SkillList{}
	}

	switch data[0] {
	case '"':
		if !allowEncoded {
			return SkillList{}
		}
		var encoded string
		if err := json.Unmarshal(data, &encoded); err != nil {
			return SkillList{Kind: SkillListEncoded}
		}
		inner := decodeSkillList([]byte(encoded), false)
		return SkillList{Kind: SkillListEncoded, labels: inner.labels}
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return SkillList{}
		}
		kind := SkillListStrings
		set := skills.NewSet()
		for _, item := range items {
			item = bytes.TrimSpace(item)
			if len(item) == 0 {
				continue
			}
			switch item[0] {
			case '"':
				var label string
				if json.Unmarshal(item, &label) == nil {
					set.Add(label)
				}
			case '{':
				kind = SkillListRecords
				var rec skillRecord
				if json.Unmarshal(item, &rec) == nil {
					set.Add(rec.Name)
				}
			}
		}
		return SkillList{Kind: kind, labels: set.Labels()}
	default:
		return SkillList{}
	}
}
