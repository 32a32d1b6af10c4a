package normalize

import "testing"

const legacyShape = `{
	"meta": {"track": "Gulfstream Park", "date": "2026-08-29"},
	"races": [{
		"number": 7,
		"confidence_level": "Best of Day",
		"picks": {
			"top_pick":     {"number": "4", "name": "Fast Lane", "reason": "class edge"},
			"value_bet":    {"number": 7, "name": "Longshot Louie"},
			"danger_horse": {"number": "9", "name": "Dark Cloud"}
		}
	}]
}`

const selectionsShape = `{
	"meta": {"track": "Gulfstream Park", "date": "2026-08-29"},
	"races": [{
		"number": "7",
		"confidence_level": "Best of Day",
		"selections": [
			{"number": "4", "name": "Fast Lane", "reason": "class edge"},
			{"number": "7", "name": "Longshot Louie"}
		],
		"danger_horse": {"number": 9, "name": "Dark Cloud"}
	}]
}`

func decodeOne(t *testing.T, raw string) RaceDoc {
	t.Helper()
	doc, err := DecodeDocument([]byte(raw))
	if err != nil {
		t.Fatalf("DecodeDocument: %v", err)
	}
	if len(doc.Races) != 1 {
		t.Fatalf("got %d races, want 1", len(doc.Races))
	}
	return doc.Races[0]
}

// Both historical document shapes must normalize to identical picks.
func TestPicksShapeEquivalence(t *testing.T) {
	legacy := Picks(decodeOne(t, legacyShape))
	selections := Picks(decodeOne(t, selectionsShape))

	if len(legacy) != len(selections) {
		t.Fatalf("shape mismatch: legacy %d picks, selections %d", len(legacy), len(selections))
	}
	for i := range legacy {
		if legacy[i] != selections[i] {
			t.Errorf("pick %d differs: legacy %+v, selections %+v", i, legacy[i], selections[i])
		}
	}
}

func TestPicksRanking(t *testing.T) {
	picks := Picks(decodeOne(t, selectionsShape))
	if len(picks) != 3 {
		t.Fatalf("got %d picks, want 3", len(picks))
	}

	tests := []struct {
		number     string
		rank       int
		confidence string
	}{
		{"4", 1, ConfidenceBestOfDay},
		{"7", 2, ConfidenceContender},
		{"9", DangerRank, ConfidenceDanger},
	}
	for i, tt := range tests {
		p := picks[i]
		if p.Number != tt.number || p.Rank != tt.rank || p.Confidence != tt.confidence {
			t.Errorf("pick %d = %+v, want number %q rank %d confidence %q",
				i, p, tt.number, tt.rank, tt.confidence)
		}
	}
}

func TestPicksTopPickTier(t *testing.T) {
	race := decodeOne(t, selectionsShape)
	race.Confidence = "Contender"
	picks := Picks(race)
	if picks[0].Confidence != ConfidenceTopPick {
		t.Errorf("rank-1 confidence = %q, want %q without a best-of-day race", picks[0].Confidence, ConfidenceTopPick)
	}
}

func TestPicksDangerDedup(t *testing.T) {
	race := decodeOne(t, selectionsShape)
	race.Danger.Number = "4" // same horse as the top pick
	picks := Picks(race)
	for _, p := range picks {
		if p.Rank == DangerRank {
			t.Errorf("danger duplicating a ranked pick should be dropped, got %+v", p)
		}
	}
}

func TestPicksPlaceholderDanger(t *testing.T) {
	race := decodeOne(t, legacyShape)
	race.Picks.Danger.Name = "No significant danger"
	picks := Picks(race)
	if len(picks) != 2 {
		t.Fatalf("placeholder danger kept: %+v", picks)
	}
}

func TestIsPlaceholder(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"None", true},
		{"  N/A ", true},
		{"no danger", true},
		{"NO SIGNIFICANT DANGER", true},
		{"", true},
		{"Nonesuch Lad", false},
		{"Fast Lane", false},
	}
	for _, tt := range tests {
		if got := IsPlaceholder(tt.name); got != tt.want {
			t.Errorf("IsPlaceholder(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDecodeDocumentRoots(t *testing.T) {
	// Array root and double-encoded string root both unwrap to the object.
	wrapped := []string{
		"[" + selectionsShape + "]",
		`"{\"meta\": {\"track\": \"Saratoga\", \"date\": \"2026-08-29\"}, \"races\": []}"`,
	}
	for _, raw := range wrapped {
		doc, err := DecodeDocument([]byte(raw))
		if err != nil {
			t.Errorf("DecodeDocument(%.30q...): %v", raw, err)
			continue
		}
		if doc.Meta.Track == "" {
			t.Errorf("DecodeDocument(%.30q...) lost meta", raw)
		}
	}
}

func TestDecodeDocumentRejects(t *testing.T) {
	bad := []string{
		``,
		`{}`,
		`{"meta": {"track": "Saratoga"}}`,
		`{"meta": {"date": "2026-08-29"}}`,
		`not json`,
	}
	for _, raw := range bad {
		if _, err := DecodeDocument([]byte(raw)); err == nil {
			t.Errorf("DecodeDocument(%q) accepted invalid input", raw)
		}
	}
}

func TestExoticStrategyText(t *testing.T) {
	tests := []struct {
		e    *ExoticStrategy
		want string
	}{
		{nil, ""},
		{&ExoticStrategy{Strategy: "exacta box 4-7"}, "exacta box 4-7"},
		{&ExoticStrategy{Exacta: "4 over 7"}, "4 over 7"},
		{&ExoticStrategy{Trifecta: " 4-7-9 "}, "4-7-9"},
	}
	for _, tt := range tests {
		if got := tt.e.Text(); got != tt.want {
			t.Errorf("Text() = %q, want %q", got, tt.want)
		}
	}
}
