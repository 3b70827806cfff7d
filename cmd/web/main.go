package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/peterkuimelis/wizard0x65/internal/config"
	"github.com/peterkuimelis/wizard0x65/internal/web"
)

func main() {
	configPath := flag.String("config", "wizard.yaml", "path to config file")
	port := flag.Int("port", 0, "HTTP port to listen on (overrides config)")
	decksFile := flag.String("decks", "", "path to decks YAML file (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *port > 0 {
		cfg.WebPort = *port
	}
	if *decksFile != "" {
		cfg.DecksFile = *decksFile
	}
	logger := cfg.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	srv := web.NewServer(web.Options{
		DecksFile: cfg.DecksFile,
		MaxSteps:  cfg.MaxSteps,
		Interval:  cfg.AutoplayInterval,
		Log:       logger,
	})

	addr := fmt.Sprintf(":%d", cfg.WebPort)
	logger.Infof("wizard0x65 web UI listening on http://localhost:%d", cfg.WebPort)
	if err := srv.ListenAndServe(ctx, addr); err != nil {
		logger.WithError(err).Fatal("web server stopped")
	}
}
