// Package normalize maps the oracle's prediction documents, across every
// historical output shape, into one canonical list of ranked picks per race.
// Downstream code never branches on raw document shape.
package normalize

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Document is one meeting's worth of oracle output.
type Document struct {
	Meta  Meta      `json:"meta"`
	Races []RaceDoc `json:"races"`
}

// Meta identifies the meeting the document describes.
type Meta struct {
	Track     string `json:"track"`
	Date      string `json:"date"`
	Condition string `json:"track_condition"`
	Weather   string `json:"weather"`
}

// RaceDoc is the raw per-race fragment. Older producer versions emitted the
// flat Picks object; newer ones emit the ordered Selections list with a
// sibling danger_horse. Both are tolerated here and nowhere else.
type RaceDoc struct {
	Number     FlexInt         `json:"number"`
	Distance   string          `json:"distance"`
	Surface    string          `json:"surface"`
	Confidence string          `json:"confidence_level"`
	Selections []PickDoc       `json:"selections"`
	Picks      *LegacyPicks    `json:"picks"`
	Danger     *PickDoc        `json:"danger_horse"`
	Exotic     *ExoticStrategy `json:"exotic_strategy"`
}

// PickDoc is a single raw selection.
type PickDoc struct {
	Number  FlexString `json:"number"`
	Name    string     `json:"name"`
	Barrier FlexString `json:"barrier"`
	Reason  string     `json:"reason"`
}

// LegacyPicks is the old named-slot shape.
type LegacyPicks struct {
	TopPick  *PickDoc `json:"top_pick"`
	Danger   *PickDoc `json:"danger_horse"`
	ValueBet *PickDoc `json:"value_bet"`
}

// ExoticStrategy is the freeform wagering annotation attached to a race.
type ExoticStrategy struct {
	Strategy  string `json:"strategy"`
	Exacta    string `json:"exacta"`
	Trifecta  string `json:"trifecta"`
	Rationale string `json:"rationale"`
}

// Text returns whichever strategy field the producer filled in.
func (e *ExoticStrategy) Text() string {
	if e == nil {
		return ""
	}
	for _, s := range []string{e.Strategy, e.Exacta, e.Trifecta} {
		if strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// FlexString decodes a JSON string or number into a string. Program numbers
// arrive as both "4" and 4 depending on producer version.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("not a string or number: %s", data)
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string { return string(f) }

// FlexInt decodes a JSON number or numeric string into an int.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}
	s := string(data)
	if data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("not an integer: %s", data)
	}
	*f = FlexInt(n)
	return nil
}

// DecodeDocument decodes an oracle document from raw bytes. Three root forms
// are accepted transparently: the meeting object itself, a one-element array
// wrapping it, and a JSON-encoded string needing a second decode pass.
func DecodeDocument(data []byte) (*Document, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("empty document")
	}

	switch data[0] {
	case '"':
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return nil, fmt.Errorf("decoding wrapped string: %w", err)
		}
		return DecodeDocument([]byte(inner))
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("decoding list root: %w", err)
		}
		if len(items) == 0 {
			return nil, errors.New("empty list root")
		}
		return DecodeDocument(items[0])
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	doc.Meta.Track = strings.TrimSpace(doc.Meta.Track)
	doc.Meta.Date = strings.TrimSpace(doc.Meta.Date)
	if doc.Meta.Track == "" {
		return nil, errors.New("document missing meta.track")
	}
	if doc.Meta.Date == "" {
		return nil, errors.New("document missing meta.date")
	}
	return &doc, nil
}
