package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lox/blackjackforbots/internal/randutil"
	"github.com/lox/blackjackforbots/internal/simulator"
)

// SimulateCmd runs independent sessions in parallel.
type SimulateCmd struct {
	Config    string        `help:"HCL table and roster file (default: built-in four player table)" type:"path" env:"BLACKJACK_CONFIG"`
	Sessions  int           `help:"Number of sessions to play" default:"1000"`
	MaxRounds int           `help:"Round limit per session (0 plays until everyone is broke)" default:"1000"`
	Workers   int           `help:"Concurrent sessions (0 uses GOMAXPROCS)" default:"0" env:"BLACKJACK_WORKERS"`
	Timeout   time.Duration `help:"Wall-clock limit per session (0 disables)" default:"0s"`
	Seed      int64         `help:"Base RNG seed (0 for time-based)" default:"0" env:"BLACKJACK_SEED"`
}

func (c *SimulateCmd) Run(globals *Globals) error {
	logger := globals.Logger()

	cfg, err := loadConfig(c.Config)
	if err != nil {
		return err
	}
	seed := randutil.Resolve(c.Seed)

	logger.Info("Starting simulation",
		"sessions", c.Sessions,
		"max_rounds", c.MaxRounds,
		"seed", seed,
		"players", len(cfg.Players))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := simulator.New(simulator.Config{
		Sessions:         c.Sessions,
		MaxRounds:        c.MaxRounds,
		Decks:            cfg.Table.Decks,
		ShuffleThreshold: cfg.Table.ShuffleThreshold,
		Seed:             seed,
		Players:          cfg.Players,
		Workers:          c.Workers,
		Timeout:          c.Timeout,
		Logger:           logger,
	}).Run(ctx)
	if err != nil {
		return err
	}

	fmt.Println(renderSummary(res, seed))
	return nil
}
