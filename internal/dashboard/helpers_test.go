package dashboard

import (
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/janpfeifer/DouAdmin/internal/config"
)

// recordingTarget keeps the last value of each region and counts the updates.
type recordingTarget struct {
	mu      sync.Mutex
	players []PlayerView
	bottom  BottomView
	info    []InfoLine
	history HistoryView
	status  Status
	calls   map[string]int
}

func newRecordingTarget() *recordingTarget {
	return &recordingTarget{calls: make(map[string]int)}
}

func (r *recordingTarget) SetPlayers(players []PlayerView) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.players = players
	r.calls["players"]++
}

func (r *recordingTarget) SetBottomCards(bottom BottomView) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bottom = bottom
	r.calls["bottom"]++
}

func (r *recordingTarget) SetInfo(lines []InfoLine) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.info = lines
	r.calls["info"]++
}

func (r *recordingTarget) SetHistory(history HistoryView) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = history
	r.calls["history"]++
}

func (r *recordingTarget) SetStatus(status Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = status
	r.calls["status"]++
}

func (r *recordingTarget) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

func (r *recordingTarget) Calls(region string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[region]
}

func (r *recordingTarget) infoTexts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	texts := make([]string, 0, len(r.info))
	for _, l := range r.info {
		texts = append(texts, l.Text())
	}
	return texts
}

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(code int, body string) *http.Response {
	return &http.Response{
		StatusCode: code,
		Status:     http.StatusText(code),
		Header:     http.Header{"Content-Type": {"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func httpClientFunc(f roundTripFunc) *http.Client {
	return &http.Client{Transport: f}
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.BackendHTTPBase = "http://game.test"
	cfg.AdminToken = "admin"
	return cfg
}

var fixedNow = func() time.Time {
	return time.Date(2026, 10, 18, 12, 34, 56, 0, time.Local)
}

const scenarioJSON = `{
	"players": {
		"p1": {"role": "landlord", "hand_count": 2, "hand": [{"rank": 14, "suit": "S"}, {"rank": 17, "suit": "J"}]}
	},
	"bottom_cards": [{"rank": 3, "suit": "H"}],
	"landlord_id": "p1",
	"current_turn": "p1",
	"multiplier": 2,
	"game_over": false,
	"winner_side": null,
	"history": [{"player_id": "p1", "cards": "A", "action_type": "play"}]
}`
