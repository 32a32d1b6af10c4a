package models

import "github.com/uptrace/bun"

// Result is the graded outcome for a Race: the top three finishers and the
// official payouts. All payouts are stored at a $2.00 base stake regardless
// of the base unit the source quoted; the wager package owns the rescaling.
// One Result per race key; re-grading replaces the whole row.
type Result struct {
	bun.BaseModel `bun:"table:results,alias:res"`

	ID             int     `bun:"id,pk,autoincrement" json:"id"`
	RaceKey        string  `bun:"race_key,notnull,unique" json:"raceKey"`
	WinnerNumber   string  `bun:"winner_number,notnull" json:"winnerNumber"`
	SecondNumber   string  `bun:"second_number" json:"secondNumber,omitempty"`
	ThirdNumber    string  `bun:"third_number" json:"thirdNumber,omitempty"`
	WinPayout      float64 `bun:"win_payout,notnull,default:0" json:"winPayout"`
	ExactaPayout   float64 `bun:"exacta_payout,notnull,default:0" json:"exactaPayout"`
	TrifectaPayout float64 `bun:"trifecta_payout,notnull,default:0" json:"trifectaPayout"`

	Race *Race `bun:"rel:belongs-to,join:race_key=race_key" json:"-"`
}
