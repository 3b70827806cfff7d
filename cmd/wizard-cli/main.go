package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/peterkuimelis/wizard0x65/internal/battle"
	"github.com/peterkuimelis/wizard0x65/internal/config"
	"github.com/peterkuimelis/wizard0x65/internal/log"
	wizardnet "github.com/peterkuimelis/wizard0x65/internal/net"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	cmd := os.Args[1]
	switch cmd {
	case "run":
		err = runLocal(ctx, os.Args[2:])
	case "host":
		err = runHost(ctx, os.Args[2:])
	case "join":
		err = runJoin(ctx, os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  wizard run  -p CARDS -e CARDS [--auto] [--verbose] [--max-steps N]")
	fmt.Println("  wizard host [--port P] [--decks FILE]")
	fmt.Println("  wizard join [--addr ADDR] (-p CARDS -e CARDS | --player-deck N --enemy-deck M) [--verbose]")
	fmt.Println()
	fmt.Println("Cards are \"cardId\" or \"cardId:health:damage\", comma separated, front card first.")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  run     Simulate a battle locally, stepping on enter")
	fmt.Println("  host    Start a battle server")
	fmt.Println("  join    Connect to a battle server and step a battle remotely")
}

// specList collects card specs from repeated or comma separated flags.
type specList []string

func (s *specList) String() string { return strings.Join(*s, ",") }

func (s *specList) Set(v string) error {
	*s = append(*s, battle.SplitSpecs(v)...)
	return nil
}

func loadConfig(fs *flag.FlagSet, args []string) (config.Config, error) {
	path := fs.String("config", "wizard.yaml", "path to config file")
	decks := fs.String("decks", "", "path to decks YAML file (overrides config)")
	maxSteps := fs.Int("max-steps", 0, "step limit for non-interactive runs (overrides config)")
	if err := fs.Parse(args); err != nil {
		return config.Config{}, err
	}

	cfg, err := config.Load(*path)
	if err != nil {
		return config.Config{}, err
	}
	if *decks != "" {
		cfg.DecksFile = *decks
	}
	if *maxSteps > 0 {
		cfg.MaxSteps = *maxSteps
	}
	return cfg, nil
}

func runLocal(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	var player, enemy specList
	fs.Var(&player, "p", "player deck")
	fs.Var(&enemy, "e", "enemy deck")
	auto := fs.Bool("auto", false, "run to the end without waiting for enter")
	verbose := fs.Bool("verbose", false, "print the battle log")
	cfg, err := loadConfig(fs, args)
	if err != nil {
		return err
	}

	var logger battle.EventLog
	if *verbose {
		logger = log.NewTextLogger(os.Stdout)
	}
	sess, err := battle.NewSession(player, enemy, logger)
	if err != nil {
		return err
	}

	if *auto {
		res, err := sess.Run(ctx, cfg.MaxSteps)
		sess.Game.Print(os.Stdout)
		if err != nil {
			return err
		}
		fmt.Printf("%s after %d steps\n", res.RoundStatus, res.Steps)
		return nil
	}
	return playLocal(ctx, sess, cfg.MaxSteps, os.Stdin, os.Stdout)
}

// playLocal prints the battle, then steps it each time the user presses enter.
func playLocal(ctx context.Context, sess *battle.Session, maxSteps int, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)
	sess.Game.Print(out)

	for !sess.Over() {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(out, "Press enter to continue (r: run to the end, q: quit)... ")
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return nil
		}

		switch strings.TrimSpace(line) {
		case "q":
			return nil
		case "r":
			if _, err := sess.Run(ctx, maxSteps); errors.Is(err, battle.ErrStepLimit) {
				sess.Game.Print(out)
				return err
			}
		default:
			sess.Step()
		}
		sess.Game.Print(out)
	}

	res := sess.Result()
	fmt.Fprintf(out, "%s after %d steps\n", res.RoundStatus, res.Steps)
	return nil
}

func runHost(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("host", flag.ExitOnError)
	port := fs.String("port", "", "TCP port to listen on (overrides config)")
	cfg, err := loadConfig(fs, args)
	if err != nil {
		return err
	}
	if *port != "" {
		cfg.TCPPort = *port
	}

	srv := &wizardnet.Server{
		DeckFile: cfg.DecksFile,
		Port:     cfg.TCPPort,
		MaxSteps: cfg.MaxSteps,
		Log:      cfg.Logger(),
	}
	return srv.Run(ctx)
}

func runJoin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	addr := fs.String("addr", "localhost:9000", "server address to connect to")
	var player, enemy specList
	fs.Var(&player, "p", "player deck")
	fs.Var(&enemy, "e", "enemy deck")
	playerDeck := fs.Int("player-deck", 1, "player deck number from the server's decks file")
	enemyDeck := fs.Int("enemy-deck", 2, "enemy deck number from the server's decks file")
	verbose := fs.Bool("verbose", false, "print the battle log")
	if _, err := loadConfig(fs, args); err != nil {
		return err
	}

	start := wizardnet.ClientMessage{Player: player, Enemy: enemy}
	if len(player) == 0 && len(enemy) == 0 {
		start.PlayerDeck = *playerDeck
		start.EnemyDeck = *enemyDeck
	}
	return wizardnet.Connect(ctx, *addr, start, *verbose)
}
