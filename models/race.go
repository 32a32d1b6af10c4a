package models

import "github.com/uptrace/bun"

// Race is a single numbered event within a Meeting. RaceKey is the derived
// identity (normalized track + date + race number) shared by every tool that
// touches the store, so the same real-world race always lands on one row.
type Race struct {
	bun.BaseModel `bun:"table:races,alias:rc"`

	RaceKey    string `bun:"race_key,pk" json:"raceKey"`
	MeetingID  int    `bun:"meeting_id,notnull" json:"meetingID"`
	Number     int    `bun:"race_number,notnull" json:"number"`
	Distance   string `bun:"distance" json:"distance,omitempty"`
	Surface    string `bun:"surface" json:"surface,omitempty"`
	Confidence string `bun:"confidence_level" json:"confidenceLevel,omitempty"`
	Strategy   string `bun:"betting_strategy" json:"bettingStrategy,omitempty"`

	Meeting     *Meeting      `bun:"rel:belongs-to,join:meeting_id=meeting_id" json:"-"`
	Predictions []*Prediction `bun:"rel:has-many,join:race_key=race_key" json:"predictions,omitempty"`
	Result      *Result       `bun:"rel:has-one,join:race_key=race_key" json:"result,omitempty"`
}
