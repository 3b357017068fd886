// Package config loads table and player roster settings from HCL.
//
//	table {
//	  decks             = 6
//	  shuffle_threshold = 0.25
//	}
//
//	player "alice" {
//	  strategy     = "basic"
//	  bank         = 100
//	  bet_fraction = 0.05
//	  surrender    = false
//	}
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/blackjackforbots/blackjack"
	"github.com/lox/blackjackforbots/internal/bot"
	"github.com/lox/blackjackforbots/internal/game"
)

// Defaults mirror the classic four-player demonstration table.
const (
	DefaultDecks         = 4
	DefaultBank          = 50
	DefaultRiskTolerance = 0.25
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is a table and its players.
type Config struct {
	Table   *Table   `hcl:"table,block"`
	Players []Player `hcl:"player,block"`
}

// Table holds shoe settings.
type Table struct {
	Decks            int     `hcl:"decks,optional"`
	ShuffleThreshold float64 `hcl:"shuffle_threshold,optional"`
}

// Player is one seat. Rule toggles default to enabled.
type Player struct {
	Name             string  `hcl:"name,label"`
	Strategy         string  `hcl:"strategy"`
	Bank             int     `hcl:"bank,optional"`
	BetFraction      float64 `hcl:"bet_fraction,optional"`
	RiskTolerance    float64 `hcl:"risk_tolerance,optional"`
	Script           string  `hcl:"script,optional"`
	Double           *bool   `hcl:"double,optional"`
	DoubleAfterSplit *bool   `hcl:"double_after_split,optional"`
	Surrender        *bool   `hcl:"surrender,optional"`
}

// Default returns the demonstration roster: a random player, two risk
// players and a basic strategy player.
func Default() *Config {
	cfg := &Config{
		Players: []Player{
			{Name: "random", Strategy: bot.StrategyRandom},
			{Name: "risk-1", Strategy: bot.StrategyRisk},
			{Name: "risk-2", Strategy: bot.StrategyRisk},
			{Name: "basic", Strategy: bot.StrategyBasic},
		},
	}
	cfg.applyDefaults()
	return cfg
}

// Load reads an HCL file. A missing file yields Default.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: failed to parse HCL file: %s", diags.Error())
	}
	cfg, err := decode(file.Body)
	if err != nil {
		return nil, err
	}

	// Scripts are relative to the config file.
	dir := filepath.Dir(filename)
	for i := range cfg.Players {
		if s := cfg.Players[i].Script; s != "" && !filepath.IsAbs(s) {
			cfg.Players[i].Script = filepath.Join(dir, s)
		}
	}
	return cfg, nil
}

// Parse decodes HCL source. filename is used in diagnostics only.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: failed to parse HCL: %s", diags.Error())
	}
	return decode(file.Body)
}

func decode(body hcl.Body) (*Config, error) {
	var cfg Config
	if diags := gohcl.DecodeBody(body, nil, &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("config: failed to decode HCL: %s", diags.Error())
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Table == nil {
		c.Table = &Table{}
	}
	if c.Table.Decks == 0 {
		c.Table.Decks = DefaultDecks
	}
	if c.Table.ShuffleThreshold == 0 {
		c.Table.ShuffleThreshold = blackjack.DefaultShuffleThreshold
	}

	for i := range c.Players {
		p := &c.Players[i]
		if p.Bank == 0 {
			p.Bank = DefaultBank
		}
		if p.BetFraction == 0 {
			p.BetFraction = bot.DefaultBetFraction
		}
		if p.RiskTolerance == 0 && p.Strategy == bot.StrategyRisk {
			p.RiskTolerance = DefaultRiskTolerance
		}
	}
}

// Validate checks the configuration is playable.
func (c *Config) Validate() error {
	if c.Table == nil {
		return fmt.Errorf("%w: missing table", ErrInvalid)
	}
	if c.Table.Decks < 1 {
		return fmt.Errorf("%w: decks must be at least 1, got %d", ErrInvalid, c.Table.Decks)
	}
	if c.Table.ShuffleThreshold < 0 || c.Table.ShuffleThreshold >= 1 {
		return fmt.Errorf("%w: shuffle threshold must be in [0, 1), got %g", ErrInvalid, c.Table.ShuffleThreshold)
	}
	if len(c.Players) == 0 {
		return fmt.Errorf("%w: at least one player must be configured", ErrInvalid)
	}

	seen := make(map[string]bool, len(c.Players))
	for _, p := range c.Players {
		if seen[p.Name] {
			return fmt.Errorf("%w: duplicate player %q", ErrInvalid, p.Name)
		}
		seen[p.Name] = true

		if !slices.Contains(bot.Strategies, p.Strategy) {
			return fmt.Errorf("%w: player %s: unknown strategy %q", ErrInvalid, p.Name, p.Strategy)
		}
		if p.Bank <= 0 {
			return fmt.Errorf("%w: player %s: bank must be positive", ErrInvalid, p.Name)
		}
		if p.BetFraction <= 0 || p.BetFraction > 1 {
			return fmt.Errorf("%w: player %s: bet fraction must be in (0, 1]", ErrInvalid, p.Name)
		}
		if p.RiskTolerance < 0 || p.RiskTolerance > 1 {
			return fmt.Errorf("%w: player %s: risk tolerance must be in [0, 1]", ErrInvalid, p.Name)
		}
		if p.Strategy == bot.StrategyLua && p.Script == "" {
			return fmt.Errorf("%w: player %s: lua strategy needs a script", ErrInvalid, p.Name)
		}
	}
	if err := game.CheckReserve(c.Table.Decks, c.Table.ShuffleThreshold, len(c.Players)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Game returns the engine configuration for the table.
func (t Table) Game() game.Config {
	return game.Config{Decks: t.Decks, ShuffleThreshold: t.ShuffleThreshold}
}

// Rules returns the player's table rules.
func (p Player) Rules() game.Rules {
	return game.Rules{
		Double:           enabled(p.Double),
		DoubleAfterSplit: enabled(p.DoubleAfterSplit),
		Surrender:        enabled(p.Surrender),
	}
}

// Bot returns the agent spec for the player.
func (p Player) Bot() bot.Spec {
	return bot.Spec{
		Strategy:      p.Strategy,
		BetFraction:   p.BetFraction,
		RiskTolerance: p.RiskTolerance,
		Script:        p.Script,
	}
}

func enabled(b *bool) bool {
	return b == nil || *b
}
