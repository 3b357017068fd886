package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lox/blackjackforbots/internal/game"
	"github.com/lox/blackjackforbots/internal/randutil"
)

// PlayCmd plays a single game, logging every round at debug level.
type PlayCmd struct {
	Config    string `help:"HCL table and roster file (default: built-in four player table)" type:"path" env:"BLACKJACK_CONFIG"`
	MaxRounds int    `help:"Stop after this many rounds (0 plays until everyone is broke)" default:"0"`
	Seed      int64  `help:"RNG seed (0 for time-based)" default:"5" env:"BLACKJACK_SEED"`
}

func (c *PlayCmd) Run(globals *Globals) error {
	logger := globals.Logger()

	cfg, err := loadConfig(c.Config)
	if err != nil {
		return err
	}

	seed := randutil.Resolve(c.Seed)
	rng := randutil.New(seed)
	g, err := game.New(rng, cfg.Table.Game(), game.WithLogger(logger.WithPrefix("table")))
	if err != nil {
		return err
	}
	players, release, err := seat(g, cfg, rng, logger)
	if err != nil {
		return err
	}
	defer release()

	logger.Info("Starting game",
		"seed", seed,
		"decks", cfg.Table.Decks,
		"players", len(players))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = g.Run(ctx, c.MaxRounds, func(res *game.RoundResult) error {
		for _, p := range res.Players {
			logger.Debug("Round result",
				"round", res.Round,
				"player", p.Name,
				"bet", p.Bet,
				"net", p.Net,
				"bank", p.Bank)
		}
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	logger.Info("Game over", "rounds", g.Round(), "players_left", g.PlayersIn())
	fmt.Println(renderBanks(players, g.Round()))
	return nil
}
