package main

import (
	"flag"
	"os"

	"github.com/janpfeifer/DouAdmin/internal/config"
	"github.com/janpfeifer/DouAdmin/internal/frontend"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"
)

func main() {
	// Initialize klog for WASM, forcing logs to stderr (console)
	fs := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(fs)
	fs.Set("logtostderr", "true")
	klog.SetOutput(os.Stderr)
	klog.Infof("WASM started!")

	// The server hands the dashboard configuration over as environment variables.
	cfg, err := config.Load()
	if err != nil {
		klog.Errorf("Invalid dashboard configuration, using defaults: %v", err)
		cfg = config.Default()
	}

	// Single route: the admin dashboard.
	app.Route("/", func() app.Composer { return &frontend.AdminPage{Config: cfg} })

	// When building for WEB (GOOS=js GOARCH=wasm), app.Run() executes the frontend logic
	app.RunWhenOnBrowser()
}
