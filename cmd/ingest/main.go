// cmd/ingest/main.go
// Loads every oracle prediction document from a directory into the store.
// Safe to re-run: races that already exist are skipped, never updated.
//
// Usage:
//
//	go run ./cmd/ingest -dir logs
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/cboland/raceledger/config"
	bundb "github.com/cboland/raceledger/db"
	"github.com/cboland/raceledger/ingest"
	applog "github.com/cboland/raceledger/logger"
)

func main() {
	dir := flag.String("dir", "", "directory of prediction documents (default: LOGS_DIR)")
	flag.Parse()

	cfg := config.Load()
	if *dir == "" {
		*dir = cfg.LogsDir
	}

	logger, err := applog.New(cfg.Debug)
	if err != nil {
		log.Fatal("logger:", err)
	}
	defer func() { _ = logger.Sync() }()

	db := bundb.Setup(cfg)
	defer db.Close()

	ctx := context.Background()
	if err := bundb.CreateTables(ctx, db); err != nil {
		log.Fatal("create tables:", err)
	}

	rep, err := ingest.Run(ctx, db, *dir, logger)
	if err != nil {
		log.Fatal("ingest:", err)
	}

	fmt.Printf("batch %s: %d races, %d predictions added, %d files skipped\n",
		rep.BatchID, rep.RacesAdded, rep.PredictionsAdded, rep.FilesSkipped)
}
