package models

import (
	"time"

	"github.com/uptrace/bun"
)

// IngestBatch is an audit row written once per ingest run.
type IngestBatch struct {
	bun.BaseModel `bun:"table:ingest_batches,alias:ib"`

	BatchID          string    `bun:"batch_id,pk" json:"batchID"`
	StartedAt        time.Time `bun:"started_at,notnull" json:"startedAt"`
	RacesAdded       int       `bun:"races_added,notnull,default:0" json:"racesAdded"`
	PredictionsAdded int       `bun:"predictions_added,notnull,default:0" json:"predictionsAdded"`
	FilesSkipped     int       `bun:"files_skipped,notnull,default:0" json:"filesSkipped"`
}
