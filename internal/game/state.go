package game

import (
	"fmt"
	"strings"
)

// Value returns the string pointed to, or "" if s is nil.
func Value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (s *Snapshot) String() string {
	if s == nil {
		return "Snapshot <nil>"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Snapshot: landlord=%q, turn=%q, multiplier=%d, gameOver=%t, winner=%q, bottom=[%s], history=%d, players: ",
		Value(s.LandlordID), Value(s.CurrentTurn), s.Multiplier, s.GameOver, Value(s.WinnerSide),
		CardsString(s.BottomCards), len(s.History))
	for _, p := range s.Players {
		fmt.Fprintf(&sb, "%s (%s, %d cards), ", p.ID, p.Role, p.Count())
	}
	return sb.String()
}
