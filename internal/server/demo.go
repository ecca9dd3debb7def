package server

import (
	"math/rand"

	"github.com/janpfeifer/DouAdmin/internal/game"
)

// DemoSnapshot deals a new game the way the game server starts one: the first seat is
// the landlord, takes the bottom cards and plays first.
func DemoSnapshot(rng *rand.Rand) game.Snapshot {
	hands, bottom := game.Deal(rng)
	landlord := game.PlayerIDs[0]

	snap := game.Snapshot{
		BottomCards: bottom,
		LandlordID:  &landlord,
		CurrentTurn: &landlord,
		Multiplier:  1,
		History:     []game.HistoryEntry{},
	}
	for i, id := range game.PlayerIDs {
		p := game.Player{ID: id, Role: game.RoleFarmer, Hand: hands[i]}
		if id == landlord {
			p.Role = game.RoleLandlord
			p.Hand = append(p.Hand, bottom...)
			game.SortHand(p.Hand)
		}
		count := len(p.Hand)
		p.HandCount = &count
		snap.Players = append(snap.Players, p)
	}
	return snap
}

// AdvanceDemo makes the current player move, so the dashboard has something to follow:
// it plays its lowest card, or passes one time out of four. This is not a rules engine.
// When a hand empties the game is over and the winner side is set. Returns false if
// the game was already over.
func AdvanceDemo(snap *game.Snapshot, rng *rand.Rand) bool {
	if snap.GameOver || len(snap.Players) == 0 {
		return false
	}

	turn := 0
	if snap.CurrentTurn != nil {
		for i, p := range snap.Players {
			if p.ID == *snap.CurrentTurn {
				turn = i
				break
			}
		}
	}
	p := &snap.Players[turn]

	if len(p.Hand) > 0 && rng.Intn(4) != 0 {
		card := p.Hand[0]
		p.Hand = p.Hand[1:]
		count := len(p.Hand)
		p.HandCount = &count
		snap.History = append(snap.History, game.HistoryEntry{
			PlayerID:   p.ID,
			Cards:      game.CardsString([]game.Card{card}),
			ActionType: "play",
		})
		if card.Rank >= game.RankSmallJoker {
			snap.Multiplier *= 2
		}
	} else {
		snap.History = append(snap.History, game.HistoryEntry{
			PlayerID:   p.ID,
			Cards:      game.CardsString(nil),
			ActionType: "pass",
		})
	}

	if len(p.Hand) == 0 {
		snap.GameOver = true
		winner := "farmers"
		if p.Role == game.RoleLandlord {
			winner = "landlord"
		}
		snap.WinnerSide = &winner
		snap.CurrentTurn = nil
		return true
	}

	next := snap.Players[(turn+1)%len(snap.Players)].ID
	snap.CurrentTurn = &next
	return true
}
