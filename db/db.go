package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"github.com/cboland/raceledger/config"
	"github.com/cboland/raceledger/models"
)

// Setup opens a PostgreSQL connection using the provided config.
func Setup(cfg *config.Config) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.PostgresDSN())))
	db := bun.NewDB(sqldb, pgdialect.New())

	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	if err := db.PingContext(context.Background()); err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	return db
}

// CreateTables creates all tables in dependency order.
func CreateTables(ctx context.Context, db *bun.DB) error {
	tables := []interface{}{
		(*models.User)(nil),
		(*models.Meeting)(nil),
		(*models.Race)(nil),
		(*models.Prediction)(nil),
		(*models.Result)(nil),
		(*models.IngestBatch)(nil),
	}

	for _, model := range tables {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("creating table for %T: %w", model, err)
		}
	}

	constraints := []string{
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'meetings_no_dupes') THEN ALTER TABLE meetings ADD CONSTRAINT meetings_no_dupes UNIQUE (track, date); END IF; END $$`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'races_no_dupes') THEN ALTER TABLE races ADD CONSTRAINT races_no_dupes UNIQUE (meeting_id, race_number); END IF; END $$`,
		// rank 1 ("top pick") and the danger tier are each unique per race
		`CREATE UNIQUE INDEX IF NOT EXISTS predictions_one_top_pick ON predictions (race_key) WHERE rank = 1`,
		`CREATE UNIQUE INDEX IF NOT EXISTS predictions_one_danger ON predictions (race_key) WHERE rank = 99`,
	}
	for _, stmt := range constraints {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			log.Printf("constraint: %v", err)
		}
	}

	return nil
}

// PurgeMeeting is the administrative escape hatch: it deletes a meeting and
// cascades through its races, predictions and results in one transaction.
// Nothing else in the system ever deletes graded data.
func PurgeMeeting(ctx context.Context, db *bun.DB, meetingID int) error {
	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var keys []string
		err := tx.NewSelect().
			Model((*models.Race)(nil)).
			Column("race_key").
			Where("meeting_id = ?", meetingID).
			Scan(ctx, &keys)
		if err != nil {
			return fmt.Errorf("listing races: %w", err)
		}

		if len(keys) > 0 {
			if _, err := tx.NewDelete().Model((*models.Prediction)(nil)).
				Where("race_key IN (?)", bun.In(keys)).Exec(ctx); err != nil {
				return fmt.Errorf("deleting predictions: %w", err)
			}
			if _, err := tx.NewDelete().Model((*models.Result)(nil)).
				Where("race_key IN (?)", bun.In(keys)).Exec(ctx); err != nil {
				return fmt.Errorf("deleting results: %w", err)
			}
			if _, err := tx.NewDelete().Model((*models.Race)(nil)).
				Where("meeting_id = ?", meetingID).Exec(ctx); err != nil {
				return fmt.Errorf("deleting races: %w", err)
			}
		}

		res, err := tx.NewDelete().Model((*models.Meeting)(nil)).
			Where("meeting_id = ?", meetingID).Exec(ctx)
		if err != nil {
			return fmt.Errorf("deleting meeting: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("meeting %d not found", meetingID)
		}
		return nil
	})
}
