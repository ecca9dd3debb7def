package game

import (
	"math/rand"
	"sort"
)

// NewDeck creates a full deck of 54 cards: 13 ranks (3 up to the "2") in each of the four
// suits, followed by the small and the big joker.
func NewDeck() []Card {
	deck := make([]Card, 0, 54)
	for rank := RankMin; rank <= RankTwo; rank++ {
		for _, suit := range []Suit{SuitSpade, SuitHeart, SuitDiamond, SuitClub} {
			deck = append(deck, Card{Rank: rank, Suit: suit})
		}
	}
	deck = append(deck,
		Card{Rank: RankSmallJoker, Suit: SuitJoker},
		Card{Rank: RankBigJoker, Suit: SuitJoker})
	return deck
}

// Deal shuffles a new deck and splits it in three hands of HandSize cards plus
// NumBottomCards bottom cards. Hands are sorted.
func Deal(rng *rand.Rand) (hands [NumPlayers][]Card, bottom []Card) {
	deck := NewDeck()
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })

	for i := range NumPlayers {
		hand := make([]Card, HandSize)
		copy(hand, deck[i*HandSize:(i+1)*HandSize])
		SortHand(hand)
		hands[i] = hand
	}
	bottom = make([]Card, NumBottomCards)
	copy(bottom, deck[NumPlayers*HandSize:])
	SortHand(bottom)
	return
}

// SortHand sorts cards by rank, then by suit.
func SortHand(cards []Card) {
	sort.Slice(cards, func(i, j int) bool {
		if cards[i].Rank != cards[j].Rank {
			return cards[i].Rank < cards[j].Rank
		}
		return cards[i].Suit < cards[j].Suit
	})
}
