package frontend

import (
	"github.com/janpfeifer/DouAdmin/internal/dashboard"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

// TopBar shows the page title and the refresh indicator.
type TopBar struct {
	app.Compo
	Title  string
	Status dashboard.Status
}

func (t *TopBar) onBannerClick(ctx app.Context, e app.Event) {
	ctx.Navigate("/")
}

func (t *TopBar) Render() app.UI {
	return app.Nav().Body(
		app.Ul().Body(
			app.Li().Body(
				app.Strong().
					Style("cursor", "pointer").
					OnClick(t.onBannerClick).
					Text(t.Title),
			),
		),
		app.Ul().Body(
			app.Li().Body(statusIndicator(t.Status)),
		),
	)
}

func statusIndicator(status dashboard.Status) app.UI {
	return app.Span().
		ID("admin-refresh-status").
		Class(status.State.Class()).
		Text(status.Text)
}
