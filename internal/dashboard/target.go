package dashboard

import "github.com/janpfeifer/DouAdmin/internal/game"

// RenderTarget receives the dashboard regions. Each call replaces the previous content
// of the region.
//
// Calls are serialized by the Client: an implementation never sees two calls at once,
// but calls may come from different goroutines.
type RenderTarget interface {
	SetPlayers(players []PlayerView)
	SetBottomCards(bottom BottomView)
	SetInfo(lines []InfoLine)
	SetHistory(history HistoryView)
	SetStatus(status Status)
}

// CardView is a card glyph.
type CardView struct {
	Text string
	Red  bool // Otherwise black
}

// ColorClass is the CSS class for the card color: "red" or "black".
func (c CardView) ColorClass() string {
	if c.Red {
		return "red"
	}
	return "black"
}

// PlayerView is the card shown for one player.
type PlayerView struct {
	ID        string
	Role      game.Role
	Title     string // e.g. "p1（地主）"
	HandCount string // e.g. "手牌数量：2"
	Hand      []CardView
}

// BottomView is the label and the cards set aside during the deal.
type BottomView struct {
	Label string
	Cards []CardView
}

// InfoLine is one line of game metadata.
type InfoLine struct {
	Label string
	Value string
}

// Text of the line as displayed.
func (l InfoLine) Text() string {
	return l.Label + l.Value
}

// HistoryView lists the moves, oldest first.
type HistoryView struct {
	Lines   []string
	Omitted int    // Number of older entries not included in Lines
	Notice  string // Localized text about the omitted entries, empty if none
}

// StatusState is the state of the refresh indicator.
type StatusState int

const (
	StatusPending StatusState = iota // Nothing fetched yet
	StatusOK
	StatusBad
)

// Class returns the CSS class of the state.
func (s StatusState) Class() string {
	switch s {
	case StatusOK:
		return "status-ok"
	case StatusBad:
		return "status-bad"
	default:
		return "status-pending"
	}
}

func (s StatusState) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusBad:
		return "bad"
	default:
		return "pending"
	}
}

// Status is the refresh indicator.
type Status struct {
	State StatusState
	Text  string
}

// PendingStatus is the indicator shown before the first response.
func PendingStatus(loc *Localizer) Status {
	return Status{State: StatusPending, Text: loc.sprintf(msgStatusPending)}
}
