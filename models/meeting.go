package models

import "github.com/uptrace/bun"

// Meeting is one racing program at one venue on one date.
type Meeting struct {
	bun.BaseModel `bun:"table:meetings,alias:m"`

	MeetingID int    `bun:"meeting_id,pk,autoincrement" json:"meetingID"`
	Track     string `bun:"track,notnull" json:"track"`
	Date      string `bun:"date,notnull" json:"date"`
	Condition string `bun:"track_condition" json:"trackCondition,omitempty"`
	Weather   string `bun:"weather" json:"weather,omitempty"`
}
