// Package console renders the admin dashboard as text, for terminals and logs.
package console

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/janpfeifer/DouAdmin/internal/dashboard"
	"k8s.io/klog/v2"
)

// ANSI escape sequences.
const (
	ansiClearScreen = "\x1b[H\x1b[2J"
	ansiRed         = "\x1b[31m"
	ansiBold        = "\x1b[1m"
	ansiReset       = "\x1b[0m"
)

// Target is a dashboard.RenderTarget that writes the whole dashboard to an io.Writer.
//
// It keeps the latest content of every region and redraws them all whenever the status is
// set, which the dashboard.Client does last on every refresh.
type Target struct {
	// Color enables ANSI colors: red cards in red, titles in bold.
	Color bool

	// Clear clears the screen before each redraw.
	Clear bool

	mu      sync.Mutex
	w       io.Writer
	players []dashboard.PlayerView
	bottom  dashboard.BottomView
	info    []dashboard.InfoLine
	history dashboard.HistoryView
	status  dashboard.Status
}

// New creates a Target writing to w.
func New(w io.Writer) *Target {
	return &Target{w: w}
}

func (t *Target) SetPlayers(players []dashboard.PlayerView) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.players = players
}

func (t *Target) SetBottomCards(bottom dashboard.BottomView) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bottom = bottom
}

func (t *Target) SetInfo(lines []dashboard.InfoLine) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.info = lines
}

func (t *Target) SetHistory(history dashboard.HistoryView) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.history = history
}

// SetStatus updates the status line and redraws the dashboard.
func (t *Target) SetStatus(status dashboard.Status) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status = status
	if _, err := t.w.Write(t.frame()); err != nil {
		klog.Errorf("console: failed to write dashboard: %v", err)
	}
}

// Frame returns the text of the dashboard as it would be drawn now.
func (t *Target) Frame() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return string(t.frame())
}

func (t *Target) frame() []byte {
	var buf bytes.Buffer
	if t.Clear {
		buf.WriteString(ansiClearScreen)
	}
	fmt.Fprintf(&buf, "%s [%s]\n", t.status.Text, t.status.State)

	for _, p := range t.players {
		buf.WriteString("\n")
		buf.WriteString(t.bold(p.Title))
		buf.WriteString("\n")
		buf.WriteString(p.HandCount)
		buf.WriteString("\n")
		if len(p.Hand) > 0 {
			buf.WriteString(t.cards(p.Hand))
			buf.WriteString("\n")
		}
	}

	buf.WriteString("\n")
	buf.WriteString(t.bold(t.bottom.Label))
	buf.WriteString(t.cards(t.bottom.Cards))
	buf.WriteString("\n\n")

	for _, line := range t.info {
		buf.WriteString(line.Text())
		buf.WriteString("\n")
	}

	if t.history.Notice != "" || len(t.history.Lines) > 0 {
		buf.WriteString("\n")
	}
	if t.history.Notice != "" {
		buf.WriteString(t.history.Notice)
		buf.WriteString("\n")
	}
	for _, line := range t.history.Lines {
		buf.WriteString(line)
		buf.WriteString("\n")
	}
	return buf.Bytes()
}

func (t *Target) cards(cards []dashboard.CardView) string {
	parts := make([]string, 0, len(cards))
	for _, c := range cards {
		if t.Color && c.Red {
			parts = append(parts, ansiRed+c.Text+ansiReset)
		} else {
			parts = append(parts, c.Text)
		}
	}
	return strings.Join(parts, " ")
}

func (t *Target) bold(s string) string {
	if !t.Color || s == "" {
		return s
	}
	return ansiBold + s + ansiReset
}
