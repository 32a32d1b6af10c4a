// cmd/migrate/main.go
// Backfills the local PostgreSQL store from a legacy MySQL prediction
// database. Legacy rows are keyed by auto-increment ids; every race is
// re-keyed through the canonical track/date/number key on the way in, so a
// meeting that exists in both stores collapses onto one row.
//
// Usage:
//
//	MYSQL_DSN="user:pass@tcp(host:3306)/predictions?parseTime=true" \
//	DB_PASS="pgpass" \
//	go run ./cmd/migrate
package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/uptrace/bun"

	"github.com/cboland/raceledger/config"
	bundb "github.com/cboland/raceledger/db"
	"github.com/cboland/raceledger/models"
	"github.com/cboland/raceledger/racekey"
)

const batchSize = 500

func main() {
	ctx := context.Background()

	cfg := config.Load()

	// --- MySQL ---
	if cfg.MySQLDSN == "" {
		log.Fatal("MYSQL_DSN required, e.g.: user:pass@tcp(host:3306)/predictions?parseTime=true")
	}
	myDB, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("open mysql: %v", err)
	}
	defer myDB.Close()
	myDB.SetMaxOpenConns(4)
	if err := myDB.PingContext(ctx); err != nil {
		log.Fatalf("ping mysql: %v", err)
	}
	log.Println("connected to MySQL")

	// --- PostgreSQL ---
	pgDB := bundb.Setup(cfg)
	defer pgDB.Close()
	log.Println("connected to PostgreSQL")

	// Create tables (idempotent)
	if err := bundb.CreateTables(ctx, pgDB); err != nil {
		log.Fatalf("create tables: %v", err)
	}

	mig := &migrator{my: myDB, pg: pgDB}

	steps := []struct {
		name string
		fn   func(context.Context) (int, error)
	}{
		{"users", mig.users},
		{"meetings", mig.meetings},
		{"races", mig.races},
		{"predictions", mig.predictions},
		{"results", mig.results},
	}

	for _, s := range steps {
		n, err := s.fn(ctx)
		if err != nil {
			log.Fatalf("migrate %s: %v", s.name, err)
		}
		log.Printf("%-12s  %d rows migrated", s.name, n)
	}

	log.Println("migration complete")
}

type migrator struct {
	my *sql.DB
	pg *bun.DB

	// legacy race id -> canonical race key, filled by races and used by
	// predictions and results
	keys map[int]string
}

// bulkInsert inserts a batch, skipping rows that already exist (idempotent re-runs).
func bulkInsert[T any](ctx context.Context, pgDB *bun.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	_, err := pgDB.NewInsert().Model(&rows).On("CONFLICT DO NOTHING").Exec(ctx)
	return err
}

func (m *migrator) users(ctx context.Context) (int, error) {
	rows, err := m.my.QueryContext(ctx, "SELECT username, password FROM users")
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var batch []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.Username, &u.Password); err != nil {
			return 0, err
		}
		batch = append(batch, u)
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}
	if err := bulkInsert(ctx, m.pg, batch); err != nil {
		return 0, err
	}
	return len(batch), nil
}

func (m *migrator) meetings(ctx context.Context) (int, error) {
	rows, err := m.my.QueryContext(ctx,
		"SELECT track, date, track_condition FROM meetings")
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	total := 0
	for rows.Next() {
		var (
			track     string
			date      time.Time
			condition sql.NullString
		)
		if err := rows.Scan(&track, &date, &condition); err != nil {
			return total, err
		}
		meeting := &models.Meeting{
			Track:     track,
			Date:      date.Format("2006-01-02"),
			Condition: condition.String,
		}
		_, err := m.pg.NewInsert().Model(meeting).
			On("CONFLICT (track, date) DO NOTHING").
			Exec(ctx)
		if err != nil {
			return total, err
		}
		total++
	}
	return total, rows.Err()
}

// races re-keys every legacy race onto the canonical key and remembers the
// mapping for the dependent tables.
func (m *migrator) races(ctx context.Context) (int, error) {
	rows, err := m.my.QueryContext(ctx,
		`SELECT r.id, m.track, m.date, r.race_number,
		        r.distance, r.surface, r.confidence_level, r.betting_strategy
		 FROM races r
		 INNER JOIN meetings m ON r.meeting_id = m.id`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	m.keys = map[int]string{}
	total := 0
	for rows.Next() {
		var (
			legacyID   int
			track      string
			date       time.Time
			number     int
			distance   sql.NullString
			surface    sql.NullString
			confidence sql.NullString
			strategy   sql.NullString
		)
		if err := rows.Scan(&legacyID, &track, &date, &number,
			&distance, &surface, &confidence, &strategy); err != nil {
			return total, err
		}

		day := date.Format("2006-01-02")
		key := racekey.Key(track, day, number)
		m.keys[legacyID] = key

		meeting := &models.Meeting{}
		err := m.pg.NewSelect().Model(meeting).
			Where("track = ? AND date = ?", track, day).
			Scan(ctx)
		if err != nil {
			return total, err
		}

		race := &models.Race{
			RaceKey:    key,
			MeetingID:  meeting.MeetingID,
			Number:     number,
			Distance:   distance.String,
			Surface:    surface.String,
			Confidence: confidence.String,
			Strategy:   strategy.String,
		}
		_, err = m.pg.NewInsert().Model(race).
			On("CONFLICT (race_key) DO NOTHING").
			Exec(ctx)
		if err != nil {
			return total, err
		}
		total++
	}
	return total, rows.Err()
}

func (m *migrator) predictions(ctx context.Context) (int, error) {
	rows, err := m.my.QueryContext(ctx,
		`SELECT race_id, horse_number, horse_name, ranking,
		        confidence_level, barrier, reason, finish_position
		 FROM selections`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var batch []models.Prediction
	total := 0
	for rows.Next() {
		var (
			raceID     int
			number     string
			name       sql.NullString
			rank       int
			confidence sql.NullString
			barrier    sql.NullString
			reason     sql.NullString
			finish     sql.NullInt64
		)
		if err := rows.Scan(&raceID, &number, &name, &rank,
			&confidence, &barrier, &reason, &finish); err != nil {
			return total, err
		}
		key, ok := m.keys[raceID]
		if !ok {
			log.Printf("selection for unknown legacy race %d, skipping", raceID)
			continue
		}

		p := models.Prediction{
			RaceKey:     key,
			HorseNumber: number,
			HorseName:   name.String,
			Rank:        rank,
			Confidence:  confidence.String,
			Barrier:     barrier.String,
			Reason:      reason.String,
		}
		if finish.Valid {
			v := int(finish.Int64)
			p.FinishPosition = &v
		}
		batch = append(batch, p)

		if len(batch) >= batchSize {
			if err := bulkInsert(ctx, m.pg, batch); err != nil {
				return total, err
			}
			total += len(batch)
			batch = batch[:0]
		}
	}
	if err := bulkInsert(ctx, m.pg, batch); err != nil {
		return total, err
	}
	return total + len(batch), rows.Err()
}

func (m *migrator) results(ctx context.Context) (int, error) {
	rows, err := m.my.QueryContext(ctx,
		`SELECT race_id, winner_number, second_number, third_number,
		        win_payout, exacta_payout, trifecta_payout
		 FROM results`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var batch []models.Result
	total := 0
	for rows.Next() {
		var (
			raceID   int
			winner   string
			second   sql.NullString
			third    sql.NullString
			win      sql.NullFloat64
			exacta   sql.NullFloat64
			trifecta sql.NullFloat64
		)
		if err := rows.Scan(&raceID, &winner, &second, &third,
			&win, &exacta, &trifecta); err != nil {
			return total, err
		}
		key, ok := m.keys[raceID]
		if !ok {
			log.Printf("result for unknown legacy race %d, skipping", raceID)
			continue
		}

		batch = append(batch, models.Result{
			RaceKey:        key,
			WinnerNumber:   winner,
			SecondNumber:   second.String,
			ThirdNumber:    third.String,
			WinPayout:      win.Float64,
			ExactaPayout:   exacta.Float64,
			TrifectaPayout: trifecta.Float64,
		})

		if len(batch) >= batchSize {
			if err := bulkInsert(ctx, m.pg, batch); err != nil {
				return total, err
			}
			total += len(batch)
			batch = batch[:0]
		}
	}
	if err := bulkInsert(ctx, m.pg, batch); err != nil {
		return total, err
	}
	return total + len(batch), rows.Err()
}
