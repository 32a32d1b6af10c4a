// Package trackdata holds the track profile directory: per-track chart codes
// and bias notes, nested by region. The nesting depth is not fixed, so lookup
// is a tree search rather than a flat map read.
package trackdata

import (
	_ "embed"
	"encoding/json"

	"github.com/cboland/raceledger/racekey"
)

//go:embed tracks.json
var rawDirectory []byte

// Profile describes one track.
type Profile struct {
	Country   string `json:"country"`
	Code      string `json:"code"`
	BiasNotes string `json:"bias_notes,omitempty"`
}

// Node is one level of the nested directory: region names mapping either to
// deeper regions or to track profiles.
type Node map[string]json.RawMessage

var directory Node

func init() {
	if err := json.Unmarshal(rawDirectory, &directory); err != nil {
		panic("trackdata: bad embedded directory: " + err.Error())
	}
}

// Find returns the first profile whose key matches the normalized track name
// at any depth of the tree.
func Find(track string) (*Profile, bool) {
	return findIn(directory, racekey.NormalizeTrack(track))
}

// FindIn searches an arbitrary directory tree instead of the embedded one.
func FindIn(tree Node, track string) (*Profile, bool) {
	return findIn(tree, racekey.NormalizeTrack(track))
}

func findIn(tree Node, want string) (*Profile, bool) {
	for key, raw := range tree {
		var p Profile
		if err := json.Unmarshal(raw, &p); err == nil && p.Code != "" {
			if racekey.NormalizeTrack(key) == want {
				return &p, true
			}
			continue
		}
		var child Node
		if err := json.Unmarshal(raw, &child); err != nil {
			continue
		}
		if p, ok := findIn(child, want); ok {
			return p, true
		}
	}
	return nil, false
}
