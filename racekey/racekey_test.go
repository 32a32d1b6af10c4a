package racekey

import "testing"

func TestNormalizeTrack(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Gulfstream Park", "gulfstream_park"},
		{"gulfstream_park", "gulfstream_park"},
		{"  GULFSTREAM   PARK  ", "gulfstream_park"},
		{"Santa_Anita Park", "santa_anita_park"},
		{"saratoga", "saratoga"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeTrack(tt.in); got != tt.want {
			t.Errorf("NormalizeTrack(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestKeyStable(t *testing.T) {
	// Every spelling of the same real-world race must land on one key.
	want := "gulfstream_park_2026-08-29_R7"
	for _, track := range []string{"Gulfstream Park", "gulfstream park", "GULFSTREAM_PARK", " Gulfstream  Park "} {
		if got := Key(track, "2026-08-29", 7); got != want {
			t.Errorf("Key(%q) = %q, want %q", track, got, want)
		}
	}
}

func TestKeyDistinct(t *testing.T) {
	a := Key("Gulfstream Park", "2026-08-29", 7)
	for _, b := range []string{
		Key("Gulfstream Park", "2026-08-29", 8),
		Key("Gulfstream Park", "2026-08-30", 7),
		Key("Saratoga", "2026-08-29", 7),
	} {
		if a == b {
			t.Errorf("distinct races share key %q", a)
		}
	}
}

func TestValidDate(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"2026-08-29", true},
		{" 2026-08-29 ", true},
		{"08/29/2026", false},
		{"2026-8-29", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidDate(tt.in); got != tt.want {
			t.Errorf("ValidDate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSameRunner(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"4", "4", true},
		{" 4 ", "4", true},
		{"1A", "1A", true},
		{"1", "1A", false},
		{"01", "1", false}, // no numeric coercion
		{"", "", false},
	}
	for _, tt := range tests {
		if got := SameRunner(tt.a, tt.b); got != tt.want {
			t.Errorf("SameRunner(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
