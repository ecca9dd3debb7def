package server

import (
	"context"
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/janpfeifer/DouAdmin/internal/config"
	"github.com/janpfeifer/DouAdmin/internal/dashboard"
	"github.com/janpfeifer/DouAdmin/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackendRejectsBadToken(t *testing.T) {
	b := NewDemoBackend("secret", rand.New(rand.NewSource(1)))
	srv := httptest.NewServer(b)
	defer srv.Close()

	for _, query := range []string{"", "?token=", "?token=wrong"} {
		resp, err := http.Get(srv.URL + "/admin/state" + query)
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, "query %q", query)
		assert.JSONEq(t, `{"detail":"unauthorized"}`, string(body))
	}
}

func TestBackendRejectsMethods(t *testing.T) {
	b := NewDemoBackend("secret", rand.New(rand.NewSource(1)))
	srv := httptest.NewServer(b)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/admin/state?token=secret", "application/json", strings.NewReader("{}"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, http.MethodGet, resp.Header.Get("Allow"))
}

func TestBackendServesSnapshot(t *testing.T) {
	b := NewDemoBackend("secret", rand.New(rand.NewSource(1)))
	srv := httptest.NewServer(b)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/admin/state?token=secret")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	snap, err := game.DecodeSnapshot(data)
	require.NoError(t, err)

	want := b.Snapshot()
	require.Len(t, snap.Players, game.NumPlayers)
	for i, p := range snap.Players {
		assert.Equal(t, want.Players[i].ID, p.ID, "players must keep their order")
		assert.Equal(t, want.Players[i].Hand, p.Hand)
		assert.Equal(t, len(p.Hand), p.Count())
	}
	assert.Equal(t, want.BottomCards, snap.BottomCards)
	assert.Equal(t, "human", game.Value(snap.LandlordID))

	// The raw document uses the wire names.
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"players", "bottom_cards", "landlord_id", "current_turn", "multiplier", "game_over", "winner_side", "history"} {
		assert.Contains(t, raw, key)
	}
}

func TestBackendSetSnapshot(t *testing.T) {
	b := NewBackend("secret", game.Snapshot{})
	winner := "farmers"
	b.SetSnapshot(game.Snapshot{GameOver: true, WinnerSide: &winner, Multiplier: 4})
	b.Update(func(snap *game.Snapshot) { snap.Multiplier *= 2 })

	got := b.Snapshot()
	assert.True(t, got.GameOver)
	assert.Equal(t, "farmers", game.Value(got.WinnerSide))
	assert.Equal(t, 8, got.Multiplier)
}

// TestDashboardAgainstBackend runs the polling client against a real HTTP backend.
func TestDashboardAgainstBackend(t *testing.T) {
	b := NewDemoBackend("secret", rand.New(rand.NewSource(7)))
	srv := httptest.NewServer(LogRequests(b))
	defer srv.Close()

	cfg := config.Default()
	cfg.BackendHTTPBase = srv.URL
	cfg.AdminToken = "secret"
	cfg.Locale = "en"
	target := &lastStatus{}
	client := dashboard.NewClient(cfg, target, dashboard.WithHTTPClient(srv.Client()))
	assert.Equal(t, dashboard.StatusPending, target.status.State)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, client.Refresh(ctx))
	assert.Equal(t, dashboard.StatusOK, target.status.State)
	require.Len(t, target.players, game.NumPlayers)
	assert.Equal(t, "human (Landlord)", target.players[0].Title)
	assert.Len(t, target.players[0].Hand, game.HandSize+game.NumBottomCards)
	assert.Len(t, target.bottom.Cards, game.NumBottomCards)

	// A bad token turns the status red but keeps what was shown.
	cfg.AdminToken = "wrong"
	badClient := dashboard.NewClient(cfg, target, dashboard.WithHTTPClient(srv.Client()))
	err := badClient.Refresh(ctx)
	var statusErr *dashboard.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusForbidden, statusErr.Code)
	assert.Equal(t, dashboard.StatusBad, target.status.State)
	assert.Len(t, target.players, game.NumPlayers)
}

// lastStatus is a RenderTarget that keeps the last value set, used from a single goroutine.
type lastStatus struct {
	players []dashboard.PlayerView
	bottom  dashboard.BottomView
	status  dashboard.Status
}

func (l *lastStatus) SetPlayers(players []dashboard.PlayerView) { l.players = players }
func (l *lastStatus) SetBottomCards(bottom dashboard.BottomView) { l.bottom = bottom }
func (l *lastStatus) SetInfo([]dashboard.InfoLine)               {}
func (l *lastStatus) SetHistory(dashboard.HistoryView)           {}
func (l *lastStatus) SetStatus(status dashboard.Status)          { l.status = status }
