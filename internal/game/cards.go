package game

import (
	"strconv"
	"strings"
)

var rankTexts = map[int]string{
	11:             "J",
	12:             "Q",
	13:             "K",
	RankAce:        "A",
	RankTwo:        "2",
	RankSmallJoker: "SJ",
	RankBigJoker:   "BJ",
}

// RankText returns the display text of a rank. Unknown ranks are printed as numbers.
func RankText(rank int) string {
	if text, found := rankTexts[rank]; found {
		return text
	}
	return strconv.Itoa(rank)
}

// SuitSymbol returns the pip symbol of a suit: empty for jokers and "?" for unknown suits.
func SuitSymbol(s Suit) string {
	switch s {
	case SuitSpade:
		return "♠"
	case SuitHeart:
		return "♥"
	case SuitDiamond:
		return "♦"
	case SuitClub:
		return "♣"
	case SuitJoker:
		return ""
	default:
		return "?"
	}
}

// DisplayText is the symbol followed by the rank. Jokers never show a suit symbol.
func (c Card) DisplayText() string {
	if c.Rank >= RankSmallJoker {
		return RankText(c.Rank)
	}
	return SuitSymbol(c.Suit) + RankText(c.Rank)
}

// IsRed reports whether the card is drawn in red: hearts and diamonds only.
// Jokers and unknown suits are black.
func (c Card) IsRed() bool {
	return c.Suit == SuitHeart || c.Suit == SuitDiamond
}

func (c Card) String() string {
	return c.DisplayText()
}

// CardsString formats a play the way the server formats history entries:
// space separated cards, or "PASS" for an empty play.
func CardsString(cards []Card) string {
	if len(cards) == 0 {
		return "PASS"
	}
	parts := make([]string, 0, len(cards))
	for _, c := range cards {
		parts = append(parts, SuitSymbol(c.Suit)+RankText(c.Rank))
	}
	return strings.Join(parts, " ")
}
