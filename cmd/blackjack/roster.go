package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjackforbots/internal/bot"
	"github.com/lox/blackjackforbots/internal/config"
	"github.com/lox/blackjackforbots/internal/game"
)

// loadConfig returns the built-in roster when path is empty.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// seat adds every configured player to g. The returned func releases agent
// resources.
func seat(g *game.Game, cfg *config.Config, rng *rand.Rand, logger *log.Logger) ([]*game.Player, func(), error) {
	var closers []func()
	release := func() {
		for _, c := range closers {
			c()
		}
	}

	players := make([]*game.Player, 0, len(cfg.Players))
	for _, p := range cfg.Players {
		agent, err := bot.New(p.Bot(), rng, logger)
		if err != nil {
			release()
			return nil, nil, fmt.Errorf("player %s: %w", p.Name, err)
		}
		if c, ok := agent.(interface{ Close() }); ok {
			closers = append(closers, c.Close)
		}
		player, err := g.AddPlayer(p.Name, p.Bank, p.Rules(), agent)
		if err != nil {
			release()
			return nil, nil, fmt.Errorf("player %s: %w", p.Name, err)
		}
		players = append(players, player)
	}
	return players, release, nil
}
