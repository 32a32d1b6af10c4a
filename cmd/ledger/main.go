// cmd/ledger/main.go
// Prints the wagering simulation report over every graded race.
//
// Usage:
//
//	go run ./cmd/ledger
//	go run ./cmd/ledger -tracks gulfstream,saratoga -from 2026-08-01 -to 2026-08-31
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/cboland/raceledger/config"
	bundb "github.com/cboland/raceledger/db"
	"github.com/cboland/raceledger/ledger"
)

func main() {
	tracks := flag.String("tracks", "", "comma-separated track name substrings")
	from := flag.String("from", "", "inclusive start date YYYY-MM-DD")
	to := flag.String("to", "", "inclusive end date YYYY-MM-DD")
	winStake := flag.String("win-stake", "", "override the flat win stake")
	primeStake := flag.String("prime-stake", "", "override the top-tier win stake")
	flag.Parse()

	f := ledger.Filter{From: *from, To: *to}
	for _, t := range strings.Split(*tracks, ",") {
		if t = strings.TrimSpace(t); t != "" {
			f.Tracks = append(f.Tracks, t)
		}
	}
	if *winStake != "" {
		f.WinStake = mustDecimal("win-stake", *winStake)
	}
	if *primeStake != "" {
		f.PrimeStake = mustDecimal("prime-stake", *primeStake)
	}

	cfg := config.Load()
	db := bundb.Setup(cfg)
	defer db.Close()

	races, err := ledger.Load(context.Background(), db)
	if err != nil {
		log.Fatal("load:", err)
	}

	render(ledger.Compute(races, f))
}

func mustDecimal(name, v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil || !d.IsPositive() {
		log.Fatalf("-%s must be a positive amount", name)
	}
	return d
}

func render(rep *ledger.Report) {
	fmt.Printf("graded races: %d\n\n", rep.Races)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "bet\tplays\thits\tcost\treturn\tnet\troi")
	fmt.Fprintf(w, "win\t%d\t%d\t%s\t%s\t%s\t%s%%\n",
		rep.Win.Bets, rep.Win.Wins,
		money(rep.Win.Cost), money(rep.Win.Return), money(rep.Win.Net), rep.Win.ROI.StringFixed(1))
	fmt.Fprintf(w, "exacta box\t%d\t%d\t%s\t%s\t%s\t%s%%\n",
		rep.Exacta.Opportunities, rep.Exacta.Hits,
		money(rep.Exacta.Cost), money(rep.Exacta.Return), money(rep.Exacta.Net), rep.Exacta.ROI.StringFixed(1))
	fmt.Fprintf(w, "trifecta box\t%d\t%d\t%s\t%s\t%s\t%s%%\n",
		rep.Trifecta.Opportunities, rep.Trifecta.Hits,
		money(rep.Trifecta.Cost), money(rep.Trifecta.Return), money(rep.Trifecta.Net), rep.Trifecta.ROI.StringFixed(1))
	w.Flush()

	if len(rep.Tracks) > 0 {
		fmt.Println()
		w = tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "track\traces\twins\tnet\troi")
		for _, ts := range rep.Tracks {
			fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s%%\n",
				ts.Track, ts.Races, ts.Wins, money(ts.Net), ts.ROI.StringFixed(1))
		}
		w.Flush()
	}

	if rep.Misses.Count > 0 {
		fmt.Printf("\ncomplete misses: %d, avg winner payout %s\n%s\n",
			rep.Misses.Count, money(rep.Misses.AvgWinPayout), rep.Misses.Note)
	}
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
