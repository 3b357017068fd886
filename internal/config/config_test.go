package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjackforbots/internal/bot"
	"github.com/lox/blackjackforbots/internal/game"
)

func TestDefault(t *testing.T) {
	t.Parallel()
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, game.Config{Decks: 4, ShuffleThreshold: 0.25}, cfg.Table.Game())
	require.Len(t, cfg.Players, 4)

	var strategies []string
	for _, p := range cfg.Players {
		strategies = append(strategies, p.Strategy)
		assert.Equal(t, 50, p.Bank)
		assert.Equal(t, 0.1, p.BetFraction)
		assert.Equal(t, game.DefaultRules(), p.Rules())
	}
	assert.Equal(t, []string{"random", "risk", "risk", "basic"}, strategies)
	assert.Equal(t, 0.25, cfg.Players[1].RiskTolerance)
}

func TestParse(t *testing.T) {
	t.Parallel()
	cfg, err := Parse([]byte(`
table {
  decks             = 6
  shuffle_threshold = 0.3
}

player "alice" {
  strategy     = "basic"
  bank         = 200
  bet_fraction = 0.05
  surrender    = false
}

player "bob" {
  strategy           = "risk"
  risk_tolerance     = 0.4
  double_after_split = false
}
`), "table.hcl")
	require.NoError(t, err)

	assert.Equal(t, game.Config{Decks: 6, ShuffleThreshold: 0.3}, cfg.Table.Game())
	require.Len(t, cfg.Players, 2)

	alice, bob := cfg.Players[0], cfg.Players[1]
	assert.Equal(t, "alice", alice.Name)
	assert.Equal(t, game.Rules{Double: true, DoubleAfterSplit: true}, alice.Rules())
	assert.Equal(t, bot.Spec{Strategy: "basic", BetFraction: 0.05}, alice.Bot())
	assert.Equal(t, 200, alice.Bank)

	assert.Equal(t, game.Rules{Double: true, Surrender: true}, bob.Rules())
	assert.Equal(t, bot.Spec{Strategy: "risk", BetFraction: 0.1, RiskTolerance: 0.4}, bob.Bot())
	assert.Equal(t, DefaultBank, bob.Bank)
}

func TestParseDefaultsTable(t *testing.T) {
	t.Parallel()
	cfg, err := Parse([]byte(`player "solo" { strategy = "random" }`), "solo.hcl")
	require.NoError(t, err)
	assert.Equal(t, DefaultDecks, cfg.Table.Decks)
	assert.Equal(t, 0.25, cfg.Table.ShuffleThreshold)
	assert.Zero(t, cfg.Players[0].RiskTolerance)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		src     string
		invalid bool
		message string
	}{
		{"syntax", `player "x" {`, false, "parse"},
		{"missing strategy", `player "x" {}`, false, "decode"},
		{"unknown attribute", "player \"x\" {\n  strategy = \"basic\"\n  colour = \"red\"\n}", false, "decode"},
		{"no players", `table { decks = 2 }`, true, "at least one player"},
		{"unknown strategy", `player "x" { strategy = "counting" }`, true, "unknown strategy"},
		{"duplicate", "player \"x\" { strategy = \"basic\" }\nplayer \"x\" { strategy = \"risk\" }", true, "duplicate player"},
		{"negative bank", "player \"x\" {\n  strategy = \"basic\"\n  bank = -5\n}", true, "bank must be positive"},
		{"bet fraction", "player \"x\" {\n  strategy = \"basic\"\n  bet_fraction = 2\n}", true, "bet fraction"},
		{"risk tolerance", "player \"x\" {\n  strategy = \"risk\"\n  risk_tolerance = 3\n}", true, "risk tolerance"},
		{"lua without script", `player "x" { strategy = "lua" }`, true, "needs a script"},
		{"decks", "table { decks = -1 }\nplayer \"x\" { strategy = \"basic\" }", true, "decks"},
		{"threshold", "table { shuffle_threshold = 1 }\nplayer \"x\" { strategy = \"basic\" }", true, "shuffle threshold"},
		{"shoe too small", "table {\n  decks = 1\n}\nplayer \"a\" { strategy = \"basic\" }\nplayer \"b\" { strategy = \"risk\" }", true, "shoe too small"},
		{"threshold too low", "table {\n  decks = 1\n  shuffle_threshold = 0.05\n}\nplayer \"x\" { strategy = \"basic\" }", true, "shoe too small"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "bad.hcl")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
			if tt.invalid {
				assert.ErrorIs(t, err, ErrInvalid)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("missing file uses defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "absent.hcl"))
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("scripts resolve next to the file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "table.hcl")
		require.NoError(t, os.WriteFile(path, []byte(`
player "scripted" {
  strategy = "lua"
  script   = "bots/dealer.lua"
}
player "absolute" {
  strategy = "lua"
  script   = "/opt/bots/dealer.lua"
}
`), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "bots", "dealer.lua"), cfg.Players[0].Script)
		assert.Equal(t, "/opt/bots/dealer.lua", cfg.Players[1].Script)
	})
}

func TestLoadExampleTable(t *testing.T) {
	t.Parallel()
	cfg, err := Load(filepath.Join("..", "..", "examples", "table.hcl"))
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.Table.Decks)
	require.Len(t, cfg.Players, 4)
	assert.False(t, cfg.Players[2].Rules().Surrender)
	assert.FileExists(t, cfg.Players[3].Script)
}
