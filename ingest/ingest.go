// Package ingest walks a directory of oracle prediction documents and loads
// them into the store. Ingestion is strictly additive: a race that already
// exists is skipped, never updated, so re-running historical backfills can
// never regress earlier predictions.
package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/cboland/raceledger/models"
	"github.com/cboland/raceledger/normalize"
	"github.com/cboland/raceledger/racekey"
)

// Report summarizes one ingest run.
type Report struct {
	BatchID          string `json:"batchID"`
	RacesAdded       int    `json:"racesAdded"`
	PredictionsAdded int    `json:"predictionsAdded"`
	FilesSkipped     int    `json:"filesSkipped"`
}

// Run ingests every *.json document under dir. A document or race that fails
// validation is skipped with a diagnostic; the rest of the batch continues.
func Run(ctx context.Context, bdb *bun.DB, dir string, log *zap.Logger) (*Report, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	rep := &Report{BatchID: uuid.NewString()}
	started := time.Now()
	log.Info("ingest starting", zap.String("batch", rep.BatchID), zap.Int("files", len(files)))

	for _, path := range files {
		if err := ingestFile(ctx, bdb, path, rep, log); err != nil {
			rep.FilesSkipped++
			log.Warn("skipping file", zap.String("file", path), zap.Error(err))
		}
	}

	batch := &models.IngestBatch{
		BatchID:          rep.BatchID,
		StartedAt:        started,
		RacesAdded:       rep.RacesAdded,
		PredictionsAdded: rep.PredictionsAdded,
		FilesSkipped:     rep.FilesSkipped,
	}
	if _, err := bdb.NewInsert().Model(batch).Exec(ctx); err != nil {
		log.Warn("recording ingest batch", zap.Error(err))
	}

	log.Info("ingest complete",
		zap.String("batch", rep.BatchID),
		zap.Int("racesAdded", rep.RacesAdded),
		zap.Int("predictionsAdded", rep.PredictionsAdded),
		zap.Int("filesSkipped", rep.FilesSkipped),
	)
	return rep, nil
}

func ingestFile(ctx context.Context, bdb *bun.DB, path string, rep *Report, log *zap.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading: %w", err)
	}

	doc, err := normalize.DecodeDocument(data)
	if err != nil {
		return err
	}
	if !racekey.ValidDate(doc.Meta.Date) {
		// Still ingested: a bad date yields a distinct, stable key.
		log.Warn("document date not in YYYY-MM-DD form",
			zap.String("file", path), zap.String("date", doc.Meta.Date))
	}

	var races, predictions int
	err = bdb.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		meetingID, err := upsertMeeting(ctx, tx, doc.Meta)
		if err != nil {
			return err
		}

		for i := range doc.Races {
			rc := doc.Races[i]
			if rc.Number <= 0 {
				// Validation failures are isolated per race; a store error
				// below aborts the whole file so the transaction stays clean.
				log.Warn("skipping race without a valid number", zap.String("file", path))
				continue
			}
			added, picks, err := ingestRace(ctx, tx, meetingID, doc.Meta, rc)
			if err != nil {
				return err
			}
			if added {
				races++
				predictions += picks
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	rep.RacesAdded += races
	rep.PredictionsAdded += predictions
	return nil
}

func upsertMeeting(ctx context.Context, tx bun.Tx, meta normalize.Meta) (int, error) {
	meeting := &models.Meeting{
		Track:     meta.Track,
		Date:      meta.Date,
		Condition: meta.Condition,
		Weather:   meta.Weather,
	}
	_, err := tx.NewInsert().Model(meeting).
		On("CONFLICT (track, date) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("inserting meeting: %w", err)
	}

	err = tx.NewSelect().Model(meeting).
		Where("track = ? AND date = ?", meta.Track, meta.Date).
		Scan(ctx)
	if err != nil {
		return 0, fmt.Errorf("loading meeting: %w", err)
	}
	return meeting.MeetingID, nil
}

// ingestRace inserts one race plus its predictions. Existing races are left
// untouched and reported as not-added.
func ingestRace(ctx context.Context, tx bun.Tx, meetingID int, meta normalize.Meta, rc normalize.RaceDoc) (bool, int, error) {
	key := racekey.Key(meta.Track, meta.Date, int(rc.Number))
	exists, err := tx.NewSelect().Model((*models.Race)(nil)).
		Where("race_key = ?", key).
		Exists(ctx)
	if err != nil {
		return false, 0, fmt.Errorf("checking race %s: %w", key, err)
	}
	if exists {
		return false, 0, nil
	}

	race := &models.Race{
		RaceKey:    key,
		MeetingID:  meetingID,
		Number:     int(rc.Number),
		Distance:   rc.Distance,
		Surface:    rc.Surface,
		Confidence: rc.Confidence,
		Strategy:   rc.Exotic.Text(),
	}
	if _, err := tx.NewInsert().Model(race).Exec(ctx); err != nil {
		return false, 0, fmt.Errorf("inserting race %s: %w", key, err)
	}

	picks := normalize.Picks(rc)
	if len(picks) == 0 {
		// Legitimate: the source document supplied no usable picks.
		return true, 0, nil
	}

	rows := make([]models.Prediction, 0, len(picks))
	for _, p := range picks {
		rows = append(rows, models.Prediction{
			RaceKey:     key,
			HorseNumber: p.Number,
			HorseName:   p.Name,
			Rank:        p.Rank,
			Confidence:  p.Confidence,
			Barrier:     p.Barrier,
			Reason:      p.Reason,
		})
	}
	if _, err := tx.NewInsert().Model(&rows).Exec(ctx); err != nil {
		return false, 0, fmt.Errorf("inserting predictions for %s: %w", key, err)
	}
	return true, len(rows), nil
}
