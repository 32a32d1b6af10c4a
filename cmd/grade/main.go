// cmd/grade/main.go
// Records an official race outcome. Payout flags take the value as quoted by
// the source plus the base stake it was quoted at; everything is stored on
// the $2.00 base. With -lookup the published finishing order is fetched and
// applied to the whole meeting instead.
//
// Usage:
//
//	go run ./cmd/grade -track "Gulfstream Park" -date 2026-08-29 -race 7 \
//	    -winner 4 -second 7 -third 1 -win 9.00 -exacta 24.40 -exacta-base 1
//
//	go run ./cmd/grade -track "Gulfstream Park" -date 2026-08-29 -lookup
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"sort"

	"github.com/cboland/raceledger/config"
	bundb "github.com/cboland/raceledger/db"
	"github.com/cboland/raceledger/grade"
	applog "github.com/cboland/raceledger/logger"
	"github.com/cboland/raceledger/racekey"
	"github.com/cboland/raceledger/results"
)

func main() {
	track := flag.String("track", "", "track name (required)")
	date := flag.String("date", "", "meeting date YYYY-MM-DD (required)")
	race := flag.Int("race", 0, "race number")
	lookup := flag.Bool("lookup", false, "fetch the published finishing order for the whole meeting")

	winner := flag.String("winner", "", "winning program number")
	second := flag.String("second", "", "second program number")
	third := flag.String("third", "", "third program number")

	win := flag.Float64("win", 0, "win payout as quoted")
	exacta := flag.Float64("exacta", 0, "exacta payout as quoted")
	trifecta := flag.Float64("trifecta", 0, "trifecta payout as quoted")
	winBase := flag.Float64("win-base", 0, "base stake the win payout was quoted at (0 = $2)")
	exactaBase := flag.Float64("exacta-base", 0, "base stake the exacta payout was quoted at (0 = $2)")
	trifectaBase := flag.Float64("trifecta-base", 0, "base stake the trifecta payout was quoted at (0 = $2)")
	flag.Parse()

	if *track == "" || *date == "" {
		log.Fatal("both -track and -date are required")
	}
	if !racekey.ValidDate(*date) {
		log.Fatal("-date must be YYYY-MM-DD")
	}

	cfg := config.Load()
	logger, err := applog.New(cfg.Debug)
	if err != nil {
		log.Fatal("logger:", err)
	}
	defer func() { _ = logger.Sync() }()

	db := bundb.Setup(cfg)
	defer db.Close()
	ctx := context.Background()

	if *lookup {
		order := results.New(cfg.ResultsBaseURL, logger).Lookup(ctx, *track, *date)
		if len(order) == 0 {
			log.Fatal("no published results found; grade manually")
		}

		nums := make([]int, 0, len(order))
		for n := range order {
			nums = append(nums, n)
		}
		sort.Ints(nums)

		for _, n := range nums {
			key := racekey.Key(*track, *date, n)
			matched, err := grade.MarkFinishPositions(ctx, db, key, order[n])
			if err != nil {
				log.Printf("%s: %v", key, err)
				continue
			}
			fmt.Printf("%s: winner %s, %d predictions matched\n", key, order[n][1], matched)
		}
		fmt.Println("payouts are not published in the summaries; record them with -winner/-win")
		return
	}

	if *race <= 0 {
		log.Fatal("-race is required without -lookup")
	}
	if *winner == "" {
		log.Fatal("-winner is required without -lookup")
	}

	key := racekey.Key(*track, *date, *race)
	outcome := grade.Outcome{
		Winner:         *winner,
		Second:         *second,
		Third:          *third,
		WinPayout:      *win,
		ExactaPayout:   *exacta,
		TrifectaPayout: *trifecta,
		WinBase:        *winBase,
		ExactaBase:     *exactaBase,
		TrifectaBase:   *trifectaBase,
	}
	if err := grade.Grade(ctx, db, key, outcome); err != nil {
		log.Fatal("grade:", err)
	}

	positions := map[int]string{1: *winner}
	if *second != "" {
		positions[2] = *second
	}
	if *third != "" {
		positions[3] = *third
	}
	matched, err := grade.MarkFinishPositions(ctx, db, key, positions)
	if err != nil {
		log.Fatal("mark positions:", err)
	}

	fmt.Printf("%s graded, %d predictions matched\n", key, matched)
}
