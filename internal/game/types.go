package game

// Suit of a card as sent by the game server.
type Suit string

const (
	SuitSpade   Suit = "S"
	SuitHeart   Suit = "H"
	SuitDiamond Suit = "D"
	SuitClub    Suit = "C"
	SuitJoker   Suit = "J" // Jokers carry no real suit
)

// Card ranks with a special meaning. Ranks 3 to 14 are 3..10, J, Q, K, A.
const (
	RankMin        = 3
	RankAce        = 14
	RankTwo        = 15 // The "2" ranks above the ace in this game.
	RankSmallJoker = 16
	RankBigJoker   = 17
)

// Card is a single playing card.
type Card struct {
	Rank int  `json:"rank"`
	Suit Suit `json:"suit"`
}

// Role is the side a player is on.
type Role string

const (
	RoleLandlord Role = "landlord"
	RoleFarmer   Role = "farmer"
)

// Player is the admin view of one seat.
type Player struct {
	ID        string `json:"-"`          // Key of the player in the snapshot's players object
	Role      Role   `json:"role"`       // Anything other than RoleLandlord is shown as a farmer
	HandCount *int   `json:"hand_count"` // May be absent, see Player.Count
	Hand      []Card `json:"hand"`       // May be empty if the server hides it
}

// Count returns the number of cards the player holds: hand_count if the server sent it,
// otherwise the length of the hand.
func (p *Player) Count() int {
	if p.HandCount != nil {
		return *p.HandCount
	}
	return len(p.Hand)
}

// HistoryEntry is one move in the game log. Cards is pre-formatted by the server.
type HistoryEntry struct {
	PlayerID   string `json:"player_id"`
	Cards      string `json:"cards"`
	ActionType string `json:"action_type"`
}

// Snapshot is the full state returned by the admin endpoint.
//
// All fields are optional on the wire: missing values are defaulted when rendering.
type Snapshot struct {
	Players     PlayerSet      `json:"players"`
	BottomCards []Card         `json:"bottom_cards"`
	LandlordID  *string        `json:"landlord_id"`
	CurrentTurn *string        `json:"current_turn"`
	Multiplier  int            `json:"multiplier"`
	GameOver    bool           `json:"game_over"`
	WinnerSide  *string        `json:"winner_side"`
	History     []HistoryEntry `json:"history"`
}
