// Package racekey derives the stable identity string for a race and owns the
// string-normalization helpers every other package must use instead of
// comparing raw identifiers ad hoc.
package racekey

import (
	"fmt"
	"regexp"
	"strings"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// NormalizeTrack lower-cases a track name, trims it, and collapses any run of
// internal whitespace or underscores to a single underscore, so
// "Gulfstream Park" and "gulfstream_park" normalize identically.
func NormalizeTrack(track string) string {
	t := strings.ToLower(strings.TrimSpace(track))
	t = strings.ReplaceAll(t, "_", " ")
	return strings.Join(strings.Fields(t), "_")
}

// Key builds the deterministic race identity from track, date and race
// number. The date is taken as given: a malformed date still produces a
// stable (if wrong) key, which callers log rather than reject.
func Key(track, date string, number int) string {
	return fmt.Sprintf("%s_%s_R%d", NormalizeTrack(track), strings.TrimSpace(date), number)
}

// ValidDate reports whether the date looks like sortable YYYY-MM-DD form.
// Calendar correctness is not checked.
func ValidDate(date string) bool {
	return datePattern.MatchString(strings.TrimSpace(date))
}

// SameRunner compares two program numbers by trimmed, case-sensitive string
// equality. No numeric coercion: "1A" is a valid program number, and "01" is
// not the same runner as "1".
func SameRunner(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	return a != "" && a == b
}
