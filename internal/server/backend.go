package server

import (
	"crypto/subtle"
	"encoding/json"
	"math/rand"
	"net/http"
	"sync"

	"github.com/janpfeifer/DouAdmin/internal/game"
	"k8s.io/klog/v2"
)

// Backend serves GET /admin/state like the game server does, from an in-memory snapshot.
// It is meant for local development of the dashboard and for tests.
type Backend struct {
	token string

	mu       sync.RWMutex
	snapshot game.Snapshot
}

// NewBackend creates a Backend serving snap to requests carrying token.
func NewBackend(token string, snap game.Snapshot) *Backend {
	return &Backend{token: token, snapshot: snap}
}

// NewDemoBackend creates a Backend with a freshly dealt game.
func NewDemoBackend(token string, rng *rand.Rand) *Backend {
	return NewBackend(token, DemoSnapshot(rng))
}

// Snapshot returns the snapshot currently served.
func (b *Backend) Snapshot() game.Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snapshot
}

// SetSnapshot replaces the snapshot served.
func (b *Backend) SetSnapshot(snap game.Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.snapshot = snap
}

// Update changes the snapshot served in place.
func (b *Backend) Update(fn func(snap *game.Snapshot)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn(&b.snapshot)
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func (b *Backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Detail: "method not allowed"})
		return
	}
	token := r.URL.Query().Get("token")
	if subtle.ConstantTimeCompare([]byte(token), []byte(b.token)) != 1 {
		klog.Warningf("Backend: rejected admin state request from %s: bad token", r.RemoteAddr)
		writeJSON(w, http.StatusForbidden, errorResponse{Detail: "unauthorized"})
		return
	}

	b.mu.RLock()
	data, err := json.Marshal(&b.snapshot)
	b.mu.RUnlock()
	if err != nil {
		klog.Errorf("Backend: failed to marshal snapshot: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: "internal error"})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		klog.Errorf("Backend: failed to write response: %v", err)
	}
}
