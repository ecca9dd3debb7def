package dashboard

import (
	"fmt"
	"strconv"

	"github.com/janpfeifer/DouAdmin/internal/game"
)

// Renderer maps snapshots to the views of a RenderTarget.
type Renderer struct {
	loc          *Localizer
	historyLimit int
}

// NewRenderer creates a Renderer. historyLimit is the maximum number of history lines
// rendered, the most recent ones; 0 renders them all.
func NewRenderer(loc *Localizer, historyLimit int) *Renderer {
	return &Renderer{loc: loc, historyLimit: historyLimit}
}

// Render replaces the players, bottom cards, info and history regions of target.
// A nil snapshot is rendered as an empty one. Rendering the same snapshot twice yields
// the same views.
func (r *Renderer) Render(snap *game.Snapshot, target RenderTarget) {
	if snap == nil {
		snap = &game.Snapshot{}
	}
	target.SetPlayers(r.Players(snap))
	target.SetBottomCards(r.Bottom(snap))
	target.SetInfo(r.Info(snap))
	target.SetHistory(r.History(snap))
}

// Players returns one view per player, in the order the server listed them.
func (r *Renderer) Players(snap *game.Snapshot) []PlayerView {
	views := make([]PlayerView, 0, len(snap.Players))
	for _, p := range snap.Players {
		views = append(views, PlayerView{
			ID:        p.ID,
			Role:      p.Role,
			Title:     r.loc.sprintf(msgPlayerTitle, p.ID, r.RoleName(p.Role)),
			HandCount: r.loc.sprintf(msgHandCount, strconv.Itoa(p.Count())),
			Hand:      CardViews(p.Hand),
		})
	}
	return views
}

// RoleName is the localized name of the role. Anything but the landlord is a farmer.
func (r *Renderer) RoleName(role game.Role) string {
	if role == game.RoleLandlord {
		return r.loc.sprintf(msgRoleLandlord)
	}
	return r.loc.sprintf(msgRoleFarmer)
}

// Bottom returns the bottom cards view.
func (r *Renderer) Bottom(snap *game.Snapshot) BottomView {
	return BottomView{
		Label: r.loc.sprintf(msgBottomCards),
		Cards: CardViews(snap.BottomCards),
	}
}

// Info returns the game metadata lines: landlord, current turn, multiplier, game over
// and winner side, each with its fallback when absent.
func (r *Renderer) Info(snap *game.Snapshot) []InfoLine {
	// Only a missing (zero) multiplier defaults to 1, negative values are shown as sent.
	multiplier := snap.Multiplier
	if multiplier == 0 {
		multiplier = 1
	}
	gameOver := r.loc.sprintf(msgNo)
	if snap.GameOver {
		gameOver = r.loc.sprintf(msgYes)
	}
	return []InfoLine{
		{Label: r.loc.sprintf(msgLandlordID), Value: orDefault(snap.LandlordID, r.loc.sprintf(msgUndetermined))},
		{Label: r.loc.sprintf(msgCurrentTurn), Value: orDefault(snap.CurrentTurn, "-")},
		{Label: r.loc.sprintf(msgMultiplier), Value: strconv.Itoa(multiplier)},
		{Label: r.loc.sprintf(msgGameOver), Value: gameOver},
		{Label: r.loc.sprintf(msgWinnerSide), Value: orDefault(snap.WinnerSide, r.loc.sprintf(msgNoneYet))},
	}
}

// History returns the history lines in input order, keeping only the most recent
// entries when there are more than the limit.
func (r *Renderer) History(snap *game.Snapshot) HistoryView {
	entries := snap.History
	var view HistoryView
	if r.historyLimit > 0 && len(entries) > r.historyLimit {
		view.Omitted = len(entries) - r.historyLimit
		view.Notice = r.loc.sprintf(msgHistoryOmitted, strconv.Itoa(view.Omitted))
		entries = entries[view.Omitted:]
	}
	view.Lines = make([]string, 0, len(entries))
	for _, h := range entries {
		view.Lines = append(view.Lines, HistoryLine(h))
	}
	return view
}

// HistoryLine formats an entry as "playerId: cards (actionType)".
func HistoryLine(h game.HistoryEntry) string {
	return fmt.Sprintf("%s: %s (%s)", h.PlayerID, h.Cards, h.ActionType)
}

// CardViews maps cards to glyphs. It never returns nil.
func CardViews(cards []game.Card) []CardView {
	views := make([]CardView, 0, len(cards))
	for _, c := range cards {
		views = append(views, CardView{Text: c.DisplayText(), Red: c.IsRed()})
	}
	return views
}

// orDefault returns fallback for nil and empty strings.
func orDefault(value *string, fallback string) string {
	if value == nil || *value == "" {
		return fallback
	}
	return *value
}
