package normalize

import "strings"

// Pick is one canonical ranked selection.
type Pick struct {
	Number     string
	Name       string
	Barrier    string
	Reason     string
	Rank       int
	Confidence string
}

// DangerRank marks the distinguished longshot-threat pick, outside the
// primary 1..N ranking.
const DangerRank = 99

// Confidence tiers, strongest first.
const (
	ConfidenceBestOfDay = "Best of Day"
	ConfidenceTopPick   = "Top Pick"
	ConfidenceContender = "Contender"
	ConfidenceDanger    = "Danger"
)

// placeholders is the sentinel set of names the oracle emits when it has no
// real pick. Anything matching here (case-insensitively, trimmed) is dropped
// before it can pollute statistics.
var placeholders = map[string]struct{}{
	"none":                  {},
	"n/a":                   {},
	"null":                  {},
	"tbd":                   {},
	"no danger":             {},
	"no threat":             {},
	"no significant danger": {},
}

// IsPlaceholder reports whether a horse name is a known non-pick sentinel or
// empty.
func IsPlaceholder(name string) bool {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return true
	}
	_, ok := placeholders[n]
	return ok
}

func usable(p *PickDoc) bool {
	if p == nil {
		return false
	}
	if strings.TrimSpace(p.Number.String()) == "" {
		return false
	}
	return !IsPlaceholder(p.Name)
}

func canonical(p *PickDoc, rank int, confidence string) Pick {
	return Pick{
		Number:     strings.TrimSpace(p.Number.String()),
		Name:       strings.TrimSpace(p.Name),
		Barrier:    strings.TrimSpace(p.Barrier.String()),
		Reason:     strings.TrimSpace(p.Reason),
		Rank:       rank,
		Confidence: confidence,
	}
}

// Picks flattens one race fragment into the canonical ordered selection list.
// The selections array is authoritative when present (position 0 is rank 1);
// otherwise the legacy named slots degrade to top_pick=1, value_bet=2. The
// danger horse, from either shape, is always emitted at DangerRank. The
// result is deterministic and may be empty; missing picks are never invented.
func Picks(r RaceDoc) []Pick {
	var out []Pick
	rank := 0

	if len(r.Selections) > 0 {
		for i := range r.Selections {
			p := &r.Selections[i]
			if !usable(p) {
				continue
			}
			rank++
			out = append(out, canonical(p, rank, tierFor(rank, r.Confidence)))
		}
	} else if r.Picks != nil {
		for _, p := range []*PickDoc{r.Picks.TopPick, r.Picks.ValueBet} {
			if !usable(p) {
				continue
			}
			rank++
			out = append(out, canonical(p, rank, tierFor(rank, r.Confidence)))
		}
	}

	danger := r.Danger
	if danger == nil && r.Picks != nil {
		danger = r.Picks.Danger
	}
	if usable(danger) && !inList(out, danger) {
		out = append(out, canonical(danger, DangerRank, ConfidenceDanger))
	}
	return out
}

// tierFor labels the rank-1 pick Best of Day when the race-level confidence
// says so, Top Pick otherwise; everything deeper is a Contender. The value_bet
// ordering behind rank 2 is a best-effort legacy mapping, not a guarantee.
func tierFor(rank int, raceConfidence string) string {
	if rank == 1 {
		if strings.Contains(strings.ToLower(raceConfidence), "best of day") {
			return ConfidenceBestOfDay
		}
		return ConfidenceTopPick
	}
	return ConfidenceContender
}

func inList(picks []Pick, p *PickDoc) bool {
	n := strings.TrimSpace(p.Number.String())
	for _, existing := range picks {
		if existing.Number == n {
			return true
		}
	}
	return false
}
