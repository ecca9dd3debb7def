package frontend

import (
	"context"

	"github.com/janpfeifer/DouAdmin/internal/config"
	"github.com/janpfeifer/DouAdmin/internal/dashboard"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"
)

// AdminPage is the admin dashboard: it polls the game server while mounted and shows
// the players' hands, the bottom cards, the game metadata and the move history.
type AdminPage struct {
	app.Compo
	Config config.Config

	loc    *dashboard.Localizer
	board  *Board
	view   View
	cancel context.CancelFunc
}

func (a *AdminPage) OnAppUpdate(ctx app.Context) {
	klog.Infof("AdminPage: App update available, reloading...")
	ctx.Reload()
}

func (a *AdminPage) OnMount(ctx app.Context) {
	klog.Infof("AdminPage: OnMount called")
	a.loc = dashboard.NewLocalizer(a.Config.Locale)
	if app.IsServer {
		// Prerendering: show the empty page, polling only happens in the browser.
		a.view.Status = dashboard.PendingStatus(a.loc)
		return
	}

	a.board = NewBoard()
	a.board.Listen("admin", func() {
		ctx.Dispatch(func(ctx app.Context) {
			a.view = a.board.View()
		})
	})
	client := dashboard.NewClient(a.Config, a.board)
	a.view = a.board.View()

	pollCtx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	go client.Poll(pollCtx)
}

func (a *AdminPage) OnDismount() {
	klog.Infof("AdminPage: OnDismount called")
	if a.board != nil {
		a.board.Unlisten("admin")
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}

func (a *AdminPage) Render() app.UI {
	if a.loc == nil {
		a.loc = dashboard.NewLocalizer(a.Config.Locale)
	}
	body := append([]app.UI{&TopBar{Title: a.loc.Title(), Status: a.view.Status}}, renderBoard(a.loc, a.view)...)
	return app.Main().Class("container").Body(body...)
}

// renderBoard renders the regions below the top bar.
func renderBoard(loc *dashboard.Localizer, v View) []app.UI {
	return []app.UI{
		app.Section().Body(
			app.H2().Text(loc.PlayersHeading()),
			app.Div().ID("admin-players").Class("grid").Body(renderPlayers(v.Players)...),
			app.Div().ID("admin-bottom").Body(renderBottom(v.Bottom)...),
		),
		app.Article().Body(
			app.Header().Text(loc.GameInfoHeading()),
			app.Div().ID("admin-game-info").Body(renderInfo(v.Info)...),
		),
		app.Article().Body(
			app.Header().Text(loc.HistoryHeading()),
			app.Div().ID("admin-history").Body(renderHistory(v.History)...),
		),
	}
}

func renderPlayers(players []dashboard.PlayerView) []app.UI {
	elems := make([]app.UI, 0, len(players))
	for _, p := range players {
		hand := make([]app.UI, 0, len(p.Hand))
		for _, c := range p.Hand {
			hand = append(hand, app.Div().Class("card").Class("small").Class(c.ColorClass()).Text(c.Text))
		}
		elems = append(elems, app.Article().Class("admin-player-card").Body(
			app.H3().Text(p.Title),
			app.P().Text(p.HandCount),
			app.Div().Class("admin-player-hand").Body(hand...),
		))
	}
	return elems
}

func renderBottom(bottom dashboard.BottomView) []app.UI {
	elems := make([]app.UI, 0, len(bottom.Cards)+1)
	elems = append(elems, app.Strong().Text(bottom.Label))
	for _, c := range bottom.Cards {
		elems = append(elems, app.Span().Class("card").Class("small").Class(c.ColorClass()).Text(c.Text))
	}
	return elems
}

func renderInfo(lines []dashboard.InfoLine) []app.UI {
	elems := make([]app.UI, 0, 2*len(lines))
	for i, l := range lines {
		if i > 0 {
			elems = append(elems, app.Br())
		}
		elems = append(elems, app.Text(l.Text()))
	}
	return elems
}

func renderHistory(history dashboard.HistoryView) []app.UI {
	elems := make([]app.UI, 0, len(history.Lines)+1)
	if history.Notice != "" {
		elems = append(elems, app.Div().Class("log-notice").Text(history.Notice))
	}
	for _, line := range history.Lines {
		elems = append(elems, app.Div().Class("log-entry").Body(
			app.Span().Class("text").Text(line),
		))
	}
	return elems
}
