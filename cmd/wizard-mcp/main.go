package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/wizard0x65/internal/config"
	wizardmcp "github.com/peterkuimelis/wizard0x65/internal/mcp"
)

func main() {
	configPath := flag.String("config", "wizard.yaml", "path to config file")
	decks := flag.String("decks", "", "path to decks YAML file (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *decks != "" {
		cfg.DecksFile = *decks
	}

	// stdout carries the MCP stream; config.Logger writes to stderr.
	sim := wizardmcp.NewSimulator(cfg.DecksFile, cfg.MaxSteps, cfg.Logger())

	s := server.NewMCPServer("wizard0x65", "1.0.0")
	wizardmcp.RegisterTools(s, sim)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
