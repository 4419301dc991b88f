package types

import (
	"encoding/json"
	"time"
)

// SearchRecord is one past search as listed by GET /history/profiles/{id}/searches.
type SearchRecord struct {
	ID            string     `json:"id"`
	ProfileID     string     `json:"profile_id,omitempty"`
	Query         string     `json:"query"`
	Location      string     `json:"location,omitempty"`
	Portals       []string   `json:"portals,omitempty"`
	TotalJobs     int        `json:"total_jobs"`
	MarketReach   float64    `json:"market_reach"`
	AverageScore  float64    `json:"average_score"`
	HighMatchJobs int        `json:"high_match_jobs"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
}

type searchRecordWire struct {
	ID            string     `json:"id"`
	ProfileID     string     `json:"profile_id"`
	Query         string     `json:"query"`
	Location      string     `json:"location"`
	Portals       SkillList  `json:"portals"`
	TotalJobs     int        `json:"total_jobs"`
	MarketReach   float64    `json:"market_reach"`
	AverageScore  float64    `json:"average_score"`
	HighMatchJobs int        `json:"high_match_jobs"`
	CreatedAt     *Timestamp `json:"created_at"`
}

// UnmarshalJSON tolerates portals stored as an encoded string and SQLite timestamps.
func (s *SearchRecord) UnmarshalJSON(data []byte) error {
	var w searchRecordWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*s = SearchRecord{
		ID:            w.ID,
		ProfileID:     w.ProfileID,
		Query:         w.Query,
		Location:      w.Location,
		Portals:       w.Portals.Labels(),
		TotalJobs:     w.TotalJobs,
		MarketReach:   w.MarketReach,
		AverageScore:  w.AverageScore,
		HighMatchJobs: w.HighMatchJobs,
		CreatedAt:     w.CreatedAt.TimePtr(),
	}
	return nil
}

// Ack is the generic acknowledgement body returned by delete and embed calls.
type Ack struct {
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}
