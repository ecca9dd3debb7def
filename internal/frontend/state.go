package frontend

import (
	"sync"

	"github.com/janpfeifer/DouAdmin/internal/dashboard"
	"k8s.io/klog/v2"
)

// View is everything the admin page shows.
type View struct {
	Players []dashboard.PlayerView
	Bottom  dashboard.BottomView
	Info    []dashboard.InfoLine
	History dashboard.HistoryView
	Status  dashboard.Status
}

// Board is the dashboard.RenderTarget of the page. It is written by the polling
// goroutines and read by the UI, so it only hands out copies of its View.
//
// Listeners are notified when the status is set, which is the last update of every
// refresh: a listener never sees a half rendered snapshot.
type Board struct {
	mu        sync.Mutex
	view      View
	listeners map[string]func()
}

// NewBoard creates an empty Board.
func NewBoard() *Board {
	return &Board{listeners: make(map[string]func())}
}

// View returns a copy of the current view.
func (b *Board) View() View {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.view
}

// Listen registers a function called after each update. It replaces any listener
// with the same name.
func (b *Board) Listen(name string, fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[name] = fn
}

// Unlisten removes the listener with the given name.
func (b *Board) Unlisten(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.listeners, name)
}

func (b *Board) SetPlayers(players []dashboard.PlayerView) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.view.Players = players
}

func (b *Board) SetBottomCards(bottom dashboard.BottomView) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.view.Bottom = bottom
}

func (b *Board) SetInfo(lines []dashboard.InfoLine) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.view.Info = lines
}

func (b *Board) SetHistory(history dashboard.HistoryView) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.view.History = history
}

func (b *Board) SetStatus(status dashboard.Status) {
	b.mu.Lock()
	b.view.Status = status
	listeners := make([]func(), 0, len(b.listeners))
	for _, l := range b.listeners {
		if l != nil {
			listeners = append(listeners, l)
		}
	}
	b.mu.Unlock()

	klog.V(1).Infof("Board: status %s, notifying %d listeners", status.State, len(listeners))
	for _, l := range listeners {
		l()
	}
}
