// cmd/purge/main.go
// Deletes one meeting and everything hanging off it: races, predictions,
// results. Meant for pulling a bad ingest before re-running it.
//
// Usage:
//
//	go run ./cmd/purge -track "Gulfstream Park" -date 2026-08-29
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/cboland/raceledger/config"
	bundb "github.com/cboland/raceledger/db"
	"github.com/cboland/raceledger/models"
	"github.com/cboland/raceledger/racekey"
)

func main() {
	track := flag.String("track", "", "track name (required)")
	date := flag.String("date", "", "meeting date YYYY-MM-DD (required)")
	flag.Parse()

	if *track == "" || *date == "" {
		log.Fatal("both -track and -date are required")
	}
	if !racekey.ValidDate(*date) {
		log.Fatal("-date must be YYYY-MM-DD")
	}

	cfg := config.Load()
	db := bundb.Setup(cfg)
	defer db.Close()
	ctx := context.Background()

	meeting := &models.Meeting{}
	err := db.NewSelect().Model(meeting).
		Where("track = ? AND date = ?", *track, *date).
		Scan(ctx)
	if err != nil {
		log.Fatalf("no meeting for %s on %s", *track, *date)
	}

	if err := bundb.PurgeMeeting(ctx, db, meeting.MeetingID); err != nil {
		log.Fatal("purge:", err)
	}

	fmt.Printf("purged %s %s\n", *track, *date)
}
