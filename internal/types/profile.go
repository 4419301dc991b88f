package types

import (
	"encoding/json"
	"time"
)

// Profile is one parsed resume as held by the session.
type Profile struct {
	ID              string     `json:"profile_id"`
	Filename        string     `json:"filename,omitempty"`
	RawText         string     `json:"raw_text"`
	Skills          SkillList  `json:"skills"`
	ConfirmedSkills []string   `json:"confirmed_skills"`
	ResumePath      string     `json:"resume_path,omitempty"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
}

// profileWire accepts both the upload response (profile_id) and the history
// listing (id, confirmed_skills possibly stored as an encoded string).
type profileWire struct {
	ProfileID       string     `json:"profile_id"`
	ID              string     `json:"id"`
	Filename        string     `json:"filename"`
	RawText         string     `json:"raw_text"`
	Skills          SkillList  `json:"skills"`
	ExtractedSkills SkillList  `json:"extracted_skills"`
	ConfirmedSkills SkillList  `json:"confirmed_skills"`
	ResumePath      string     `json:"resume_path"`
	CreatedAt       *Timestamp `json:"created_at"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Profile) UnmarshalJSON(data []byte) error {
	var w profileWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	id := w.ProfileID
	if id == "" {
		id = w.ID
	}
	extracted := w.Skills
	if extracted.Len() == 0 {
		extracted = w.ExtractedSkills
	}
	*p = Profile{
		ID:              id,
		Filename:        w.Filename,
		RawText:         w.RawText,
		Skills:          extracted,
		ConfirmedSkills: w.ConfirmedSkills.Labels(),
		ResumePath:      w.ResumePath,
		CreatedAt:       w.CreatedAt.TimePtr(),
	}
	return nil
}

// ReviewSkills returns the labels a user starts the review step with:
// confirmed skills when present, otherwise the extracted ones.
func (p *Profile) ReviewSkills() []string {
	if p == nil {
		return []string{}
	}
	if len(p.ConfirmedSkills) > 0 {
		return NewSkillList(p.ConfirmedSkills...).Labels()
	}
	return p.Skills.Labels()
}

// Clone returns a deep copy so callers cannot mutate shared state.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	c := *p
	c.Skills = SkillList{Kind: p.Skills.Kind, labels: p.Skills.Labels()}
	if p.ConfirmedSkills != nil {
		c.ConfirmedSkills = append([]string(nil), p.ConfirmedSkills...)
	}
	if p.CreatedAt != nil {
		t := *p.CreatedAt
		c.CreatedAt = &t
	}
	return &c
}

// Timestamp decodes the timestamp layouts the backend emits (RFC 3339 and
// SQLite's "2006-01-02 15:04:05").
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// UnmarshalJSON implements json.Unmarshaler. Unknown layouts decode to the zero time.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil || s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	t.Time = time.Time{}
	return nil
}

// TimePtr returns nil for a nil or zero timestamp.
func (t *Timestamp) TimePtr() *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	v := t.Time
	return &v
}
