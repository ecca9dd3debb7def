// admin is the terminal version of the dashboard: it polls the game server and redraws
// the admin state on every refresh.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/janpfeifer/DouAdmin/internal/config"
	"github.com/janpfeifer/DouAdmin/internal/console"
	"github.com/janpfeifer/DouAdmin/internal/dashboard"
	_ "github.com/joho/godotenv/autoload"
	"k8s.io/klog/v2"
)

var (
	flagBackend = flag.String("backend", "", "Game server base URL, overrides $"+config.EnvBackendHTTPBase)
	flagToken   = flag.String("token", "", "Admin token, overrides $"+config.EnvAdminToken)
	flagLocale  = flag.String("locale", "", "Language of the texts, overrides $"+config.EnvLocale)
	flagColor   = flag.Bool("color", true, "Color red cards and the status")
	flagClear   = flag.Bool("clear", true, "Clear the screen before each redraw")
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
	if *flagLocale != "" {
		cfg.Locale = *flagLocale
	}
	if err := cfg.Validate(); err != nil {
		klog.Exitf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	target := console.New(os.Stdout)
	target.Color = *flagColor
	target.Clear = *flagClear
	client := dashboard.NewClient(cfg, target)
	client.Poll(ctx)
	klog.Infof("Stopped.")
}
