package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/janpfeifer/DouAdmin/internal/config"
	"github.com/janpfeifer/DouAdmin/internal/server"
	_ "github.com/joho/godotenv/autoload"
	"k8s.io/klog/v2"
)

var (
	flagAddr     = flag.String("addr", "", "Address to listen on (default: auto-port on localhost)")
	flagBackend  = flag.String("backend", "", "Game server base URL, overrides $"+config.EnvBackendHTTPBase)
	flagToken    = flag.String("token", "", "Admin token, overrides $"+config.EnvAdminToken)
	flagDemo     = flag.Bool("demo", false, "Also serve /admin/state from an in-memory demo game")
	flagDemoStep = flag.Duration("demo-step", 2*time.Second, "Interval between demo moves, 0 freezes the demo game")
	flagSeed     = flag.Int64("seed", 0, "Seed of the demo game (default: current time)")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	cfg, err := config.Load()
	if err != nil {
		klog.Exitf("Invalid configuration: %v", err)
	}
	if *flagBackend != "" {
		cfg.BackendHTTPBase = *flagBackend
	}
	if *flagToken != "" {
		cfg.AdminToken = *flagToken
	}
	if err := cfg.Validate(); err != nil {
		klog.Exitf("Invalid configuration: %v", err)
	}
	seed := *flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	started := make(chan *server.Server, 1)
	go func() {
		s, ok := <-started
		if !ok {
			return
		}
		fmt.Printf("DouAdmin dashboard listening on http://%s\n", s.Address)
		if s.Backend != nil {
			fmt.Printf("Demo admin state on http://%s/admin/state (point %s at it)\n",
				s.Address, config.EnvBackendHTTPBase)
		}
	}()

	opts := server.Options{
		Addr:      *flagAddr,
		Dashboard: cfg,
		Demo:      *flagDemo,
		DemoStep:  *flagDemoStep,
		Seed:      seed,
	}
	if err := server.Run(ctx, opts, started); err != nil {
		klog.Exitf("Server failed: %v", err)
	}
}
