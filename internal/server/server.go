package server

import (
	"context"
	"math/rand"
	"net"
	"net/http"
	"time"

	"github.com/janpfeifer/DouAdmin/internal/config"
	"github.com/janpfeifer/DouAdmin/internal/frontend"
	"github.com/janpfeifer/DouAdmin/internal/game"
	"github.com/janpfeifer/DouAdmin/web"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"
)

// Options of the dashboard server.
type Options struct {
	// Addr to listen on. If empty, a free port on localhost is used.
	Addr string

	// Dashboard configuration handed to the WASM app.
	Dashboard config.Config

	// Demo also serves /admin/state from an in-memory game, so the dashboard can
	// be pointed at this server itself.
	Demo bool

	// DemoStep, if positive, advances the demo game at this interval.
	DemoStep time.Duration

	// Seed of the demo deal.
	Seed int64
}

// Server describes a running server.
type Server struct {
	Address string
	Backend *Backend // Only set in demo mode.
}

// Run starts the server and blocks until the context is canceled.
// Once listening, the server description is sent to started, if not nil.
func Run(ctx context.Context, opts Options, started chan<- *Server) error {
	// Register the go-app route so the server knows how to prerender it.
	app.Route("/", func() app.Composer { return &frontend.AdminPage{Config: opts.Dashboard} })

	// The web assets and the compiled webassembly
	// are served natively by the go-app framework
	h := &app.Handler{
		Name:        "DouAdmin",
		ShortName:   "DouAdmin",
		Description: "Dou Dizhu admin dashboard",
		Version:     game.Version,
		Styles: []string{
			"/web/css/main.css", // Layout, card and status styles
		},
		Env: app.Environment(opts.Dashboard.Environ()),
	}

	s := &Server{}
	mux := http.NewServeMux()

	if opts.Demo {
		rng := rand.New(rand.NewSource(opts.Seed))
		s.Backend = NewDemoBackend(opts.Dashboard.AdminToken, rng)
		mux.Handle("/admin/state", LogRequests(s.Backend))
		if opts.DemoStep > 0 {
			go runDemo(ctx, s.Backend, opts.DemoStep, rng)
		}
	}

	// We want to serve /web for static files: the embedded stylesheets, and the
	// compiled app.wasm from disk.
	mux.Handle("/web/css/", http.StripPrefix("/web/", http.FileServerFS(web.Styles)))
	mux.Handle("/web/", http.StripPrefix("/web/", http.FileServer(http.Dir("web/"))))
	mux.Handle("/", h)

	addr := opts.Addr
	if addr == "" {
		addr = "127.0.0.1:0"
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.Address = listener.Addr().String()

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		klog.Infof("Server started on %s (demo=%t)", s.Address, opts.Demo)
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			klog.Errorf("Server error: %v", err)
		}
	}()
	if started != nil {
		started <- s
	}

	<-ctx.Done()

	// Graceful shutdown with 5 second timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	klog.Infof("Shutting down server...")
	return srv.Shutdown(shutdownCtx)
}

// runDemo advances the demo game every step, and deals a new one a few steps after
// it is over.
func runDemo(ctx context.Context, backend *Backend, step time.Duration, rng *rand.Rand) {
	ticker := time.NewTicker(step)
	defer ticker.Stop()
	idle := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		backend.Update(func(snap *game.Snapshot) {
			if AdvanceDemo(snap, rng) {
				return
			}
			idle++
			if idle >= 5 {
				idle = 0
				*snap = DemoSnapshot(rng)
				klog.Infof("Demo: dealt a new game")
			}
		})
	}
}
