package game

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// PlayerSet holds the players of a snapshot in the order the server listed them.
//
// On the wire it is a JSON object keyed by player ID. A Go map would lose that order,
// and with it the guarantee that rendering the same payload twice gives the same page.
type PlayerSet []Player

// UnmarshalJSON decodes a JSON object of players, keeping the document order.
// Anything but an object yields an empty set.
func (ps *PlayerSet) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid players JSON")
	}
	*ps = decodePlayers(gjson.ParseBytes(data))
	return nil
}

// MarshalJSON encodes the set back into a JSON object, in order.
func (ps PlayerSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range ps {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(p.ID)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal player %q: %w", p.ID, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Get returns the player with the given ID.
func (ps PlayerSet) Get(id string) (*Player, bool) {
	for i := range ps {
		if ps[i].ID == id {
			return &ps[i], true
		}
	}
	return nil, false
}

// UnmarshalJSON decodes a snapshot leniently, see DecodeSnapshot.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid snapshot JSON")
	}
	root := gjson.ParseBytes(data)
	*s = Snapshot{
		Players:     decodePlayers(root.Get("players")),
		BottomCards: decodeCards(root.Get("bottom_cards")),
		LandlordID:  optionalString(root.Get("landlord_id")),
		CurrentTurn: optionalString(root.Get("current_turn")),
		GameOver:    root.Get("game_over").Bool(),
		WinnerSide:  optionalString(root.Get("winner_side")),
		History:     decodeHistory(root.Get("history")),
	}
	if m, ok := intValue(root.Get("multiplier")); ok {
		s.Multiplier = m
	}
	return nil
}

// DecodeSnapshot parses the body of an admin state response.
//
// There is no schema validation: a field that is absent or has an unexpected JSON type
// is left at its zero value and defaulted when rendering. Numbers sent as floats or
// numeric strings are accepted. Only a body that is not JSON at all is an error.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := snap.UnmarshalJSON(data); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &snap, nil
}

func decodePlayers(r gjson.Result) PlayerSet {
	if !r.IsObject() {
		return nil
	}
	var ps PlayerSet
	r.ForEach(func(key, value gjson.Result) bool {
		p := Player{ID: key.String()}
		if value.IsObject() {
			p.Role = Role(stringValue(value.Get("role")))
			if count, ok := intValue(value.Get("hand_count")); ok {
				p.HandCount = &count
			}
			p.Hand = decodeCards(value.Get("hand"))
		}
		ps = append(ps, p)
		return true
	})
	return ps
}

// decodeCards skips entries that are not objects.
func decodeCards(r gjson.Result) []Card {
	if !r.IsArray() {
		return nil
	}
	var cards []Card
	for _, c := range r.Array() {
		if !c.IsObject() {
			continue
		}
		rank, _ := intValue(c.Get("rank"))
		cards = append(cards, Card{Rank: rank, Suit: Suit(stringValue(c.Get("suit")))})
	}
	return cards
}

func decodeHistory(r gjson.Result) []HistoryEntry {
	if !r.IsArray() {
		return nil
	}
	var history []HistoryEntry
	for _, h := range r.Array() {
		if !h.IsObject() {
			continue
		}
		history = append(history, HistoryEntry{
			PlayerID:   stringValue(h.Get("player_id")),
			Cards:      stringValue(h.Get("cards")),
			ActionType: stringValue(h.Get("action_type")),
		})
	}
	return history
}

// stringValue returns the text of a scalar, and "" for null, objects and arrays.
func stringValue(r gjson.Result) string {
	switch r.Type {
	case gjson.String, gjson.Number, gjson.True, gjson.False:
		return r.String()
	default:
		return ""
	}
}

// optionalString is like stringValue, but returns nil instead of "".
func optionalString(r gjson.Result) *string {
	switch r.Type {
	case gjson.String, gjson.Number, gjson.True, gjson.False:
		s := r.String()
		return &s
	default:
		return nil
	}
}

// intValue accepts JSON numbers (truncated to an integer) and numeric strings.
func intValue(r gjson.Result) (int, bool) {
	switch r.Type {
	case gjson.Number:
		return int(r.Int()), true
	case gjson.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(r.Str), 64)
		if err != nil {
			return 0, false
		}
		return int(f), true
	default:
		return 0, false
	}
}
