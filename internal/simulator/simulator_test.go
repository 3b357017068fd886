package simulator

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjackforbots/internal/config"
	"github.com/lox/blackjackforbots/internal/game"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func roster() []config.Player {
	return []config.Player{
		{Name: "random", Strategy: "random", Bank: 50, BetFraction: 0.1},
		{Name: "risk", Strategy: "risk", Bank: 50, BetFraction: 0.1, RiskTolerance: 0.25},
		{Name: "basic", Strategy: "basic", Bank: 50, BetFraction: 0.1},
	}
}

func mockClock(t *testing.T) *quartz.Mock {
	t.Helper()
	clock := quartz.NewMock(t)
	clock.Set(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)).MustWait(context.Background())
	return clock
}

func TestRunAccounting(t *testing.T) {
	t.Parallel()
	const sessions, maxRounds = 6, 150

	res, err := New(Config{
		Sessions:  sessions,
		MaxRounds: maxRounds,
		Decks:     4,
		Seed:      99,
		Players:   roster(),
		Workers:   3,
		Logger:    quietLogger(),
	}).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, res.Sessions, sessions)
	require.Len(t, res.Players, 3)
	assert.Zero(t, res.TimedOut)

	total := 0
	for _, s := range res.Sessions {
		assert.LessOrEqual(t, s.Rounds, maxRounds)
		assert.Positive(t, s.Rounds)
		total += s.Rounds
	}
	assert.Equal(t, total, res.Rounds)

	for _, p := range res.Players {
		require.NoError(t, p.Net.Validate(), p.Name)
		assert.Equal(t, sessions, p.Final.Rounds, "%s: one final bank per session", p.Name)
		assert.InDelta(t, p.Final.Sum-float64(sessions*50), p.Net.Sum, 1e-9, "%s: net matches bankroll change", p.Name)
		assert.InDelta(t, float64(p.Net.Rounds), p.Survived.Sum, 1e-9, p.Name)
		assert.GreaterOrEqual(t, p.Outcomes.Hands, p.Net.Rounds, "%s: at least one hand per round", p.Name)
		assert.Equal(t, p.Outcomes.Hands, p.Outcomes.Wins+p.Outcomes.Losses+p.Outcomes.Pushes, p.Name)
		assert.LessOrEqual(t, p.Busted, sessions)
		assert.GreaterOrEqual(t, p.Final.Percentile(0), 0.0, "%s: banks never go negative", p.Name)
	}
	assert.Same(t, res.Players[2], res.Player("basic"))
	assert.Nil(t, res.Player("nobody"))
}

func TestRunIsReproducible(t *testing.T) {
	t.Parallel()
	run := func(workers int) *Result {
		res, err := New(Config{
			Sessions:  5,
			MaxRounds: 100,
			Decks:     2,
			Seed:      2024,
			Players:   roster(),
			Workers:   workers,
			Clock:     mockClock(t),
			Logger:    quietLogger(),
		}).Run(context.Background())
		require.NoError(t, err)
		return res
	}

	sequential := run(1)
	assert.Equal(t, sequential, run(4), "worker count must not change results")
	for _, s := range sequential.Sessions {
		assert.Len(t, s.ID, 26)
	}
}

func TestRunSessionDeadline(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clock := mockClock(t)

	var rounds []int
	res, err := New(Config{
		Sessions: 2,
		Decks:    4,
		Seed:     7,
		Players:  roster(),
		Workers:  1,
		Timeout:  time.Second,
		Clock:    clock,
		Logger:   quietLogger(),
		OnRound: func(_ string, r *game.RoundResult) {
			rounds = append(rounds, r.Round)
			if r.Round == 1 {
				clock.Advance(time.Second).MustWait(ctx)
			}
		},
	}).Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 1}, rounds, "each session stops after the round in progress")
	assert.Equal(t, 2, res.TimedOut)
	assert.Equal(t, 2, res.Rounds)
	for _, s := range res.Sessions {
		assert.True(t, s.TimedOut)
	}
	assert.Equal(t, 2*time.Second, res.Elapsed)
}

func TestRunWithLuaPlayer(t *testing.T) {
	t.Parallel()
	script := filepath.Join(t.TempDir(), "dealer.lua")
	require.NoError(t, os.WriteFile(script, []byte(`
function action(obs)
  if obs.total < 17 then return "hit" end
  return "stay"
end
`), 0o600))

	res, err := New(Config{
		Sessions:  2,
		MaxRounds: 50,
		Decks:     1,
		Seed:      3,
		Players: []config.Player{
			{Name: "dealer-rule", Strategy: "lua", Script: script, Bank: 100, BetFraction: 0.05},
		},
		Logger: quietLogger(),
	}).Run(context.Background())
	require.NoError(t, err)

	p := res.Player("dealer-rule")
	require.NotNil(t, p)
	assert.Positive(t, p.Net.Rounds)
	assert.Zero(t, p.Outcomes.Doubles, "script never doubles")
	assert.Zero(t, p.Outcomes.SplitHands, "script never splits")
	assert.Zero(t, p.Outcomes.Surrenders)
}

func TestRunErrors(t *testing.T) {
	t.Parallel()
	base := func() Config {
		return Config{Sessions: 2, MaxRounds: 10, Decks: 2, Players: roster(), Logger: quietLogger()}
	}

	t.Run("no sessions", func(t *testing.T) {
		cfg := base()
		cfg.Sessions = 0
		_, err := New(cfg).Run(context.Background())
		assert.ErrorContains(t, err, "sessions must be at least 1")
	})

	t.Run("no players", func(t *testing.T) {
		cfg := base()
		cfg.Players = nil
		_, err := New(cfg).Run(context.Background())
		assert.ErrorContains(t, err, "no players")
	})

	t.Run("duplicate players", func(t *testing.T) {
		cfg := base()
		cfg.Players = append(cfg.Players, cfg.Players[0])
		_, err := New(cfg).Run(context.Background())
		assert.ErrorContains(t, err, "duplicate player")
	})

	t.Run("bad agent", func(t *testing.T) {
		cfg := base()
		cfg.Players = []config.Player{{Name: "ghost", Strategy: "lua", Script: filepath.Join(t.TempDir(), "nope.lua"), Bank: 50}}
		_, err := New(cfg).Run(context.Background())
		assert.ErrorContains(t, err, "player ghost")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("bad table", func(t *testing.T) {
		cfg := base()
		cfg.Decks = 0
		_, err := New(cfg).Run(context.Background())
		assert.Error(t, err)
	})

	t.Run("shoe too small for roster", func(t *testing.T) {
		cfg := base()
		cfg.Decks = 1
		_, err := New(cfg).Run(context.Background())
		assert.ErrorIs(t, err, game.ErrShoeTooSmall)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := New(base()).Run(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
