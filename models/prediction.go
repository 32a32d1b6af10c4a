package models

import "github.com/uptrace/bun"

// DangerRank is the reserved rank for the distinguished "Danger" pick, kept
// outside the 1..N primary ranking.
const DangerRank = 99

// Prediction is one ranked horse selection for a Race. Horse numbers are
// strings because program numbers may carry letters ("1A").
type Prediction struct {
	bun.BaseModel `bun:"table:predictions,alias:p"`

	ID          int    `bun:"id,pk,autoincrement" json:"id"`
	RaceKey     string `bun:"race_key,notnull" json:"raceKey"`
	HorseNumber string `bun:"horse_number,notnull" json:"horseNumber"`
	HorseName   string `bun:"horse_name,notnull" json:"horseName"`
	Rank        int    `bun:"rank,notnull" json:"rank"`
	Confidence  string `bun:"confidence_level" json:"confidenceLevel,omitempty"`
	Barrier     string `bun:"barrier" json:"barrier,omitempty"`
	Reason      string `bun:"reason" json:"reason,omitempty"`
	// FinishPosition is filled in by the automated-lookup grading path for
	// horses the oracle actually picked; it is never set for unpicked horses.
	FinishPosition *int `bun:"finish_position" json:"finishPosition,omitempty"`

	Race *Race `bun:"rel:belongs-to,join:race_key=race_key" json:"-"`
}
