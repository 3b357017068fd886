// Package simulator runs many independent blackjack sessions in parallel and
// aggregates the results per player.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjackforbots/internal/bot"
	"github.com/lox/blackjackforbots/internal/config"
	"github.com/lox/blackjackforbots/internal/game"
	"github.com/lox/blackjackforbots/internal/gameid"
	"github.com/lox/blackjackforbots/internal/randutil"
	"github.com/lox/blackjackforbots/internal/statistics"
)

// errDeadline stops a session after the round in progress.
var errDeadline = errors.New("simulator: session deadline")

// Config holds configuration for running simulations
type Config struct {
	Sessions         int
	MaxRounds        int // per session; 0 plays until every player is broke
	Decks            int
	ShuffleThreshold float64
	Seed             int64 // session i plays with randutil.Derive(Seed, i)
	Players          []config.Player
	Workers          int           // 0 uses GOMAXPROCS
	Timeout          time.Duration // per session; 0 disables
	Clock            quartz.Clock
	Logger           *log.Logger

	// OnRound, if set, sees every completed round. It is called from
	// worker goroutines.
	OnRound func(session string, res *game.RoundResult)
}

// PlayerSummary aggregates one configured player across sessions.
type PlayerSummary struct {
	Name     string
	Strategy string
	Net      statistics.Statistics // net chips per round played
	Survived statistics.Statistics // rounds played per session
	Final    statistics.Statistics // bankroll at the end of each session
	Outcomes statistics.Outcomes
	Busted   int // sessions that ended with an empty bankroll
}

// SessionSummary describes one session.
type SessionSummary struct {
	ID       string
	Seed     int64
	Rounds   int
	TimedOut bool
}

// Result is the outcome of a simulation.
type Result struct {
	Players  []*PlayerSummary // configuration order
	Sessions []SessionSummary
	Rounds   int
	TimedOut int
	Elapsed  time.Duration
}

// Player returns the summary for name, or nil.
func (r *Result) Player(name string) *PlayerSummary {
	for _, p := range r.Players {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Simulator runs blackjack sessions
type Simulator struct {
	config Config
	clock  quartz.Clock
	logger *log.Logger
}

// New creates a new simulator with the given configuration
func New(cfg Config) *Simulator {
	s := &Simulator{config: cfg, clock: cfg.Clock, logger: cfg.Logger}
	if s.clock == nil {
		s.clock = quartz.NewReal()
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	if s.config.Workers <= 0 {
		s.config.Workers = runtime.GOMAXPROCS(0)
	}
	return s
}

type sessionResult struct {
	summary SessionSummary
	players map[string]*PlayerSummary
}

// Run executes every session and returns the aggregate. The first failing
// session cancels the rest.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	if s.config.Sessions < 1 {
		return nil, fmt.Errorf("simulator: sessions must be at least 1, got %d", s.config.Sessions)
	}
	if len(s.config.Players) == 0 {
		return nil, errors.New("simulator: no players configured")
	}
	seen := make(map[string]bool, len(s.config.Players))
	for _, p := range s.config.Players {
		if seen[p.Name] {
			return nil, fmt.Errorf("simulator: duplicate player %q", p.Name)
		}
		seen[p.Name] = true
	}
	if err := game.CheckReserve(s.config.Decks, s.config.ShuffleThreshold, len(s.config.Players)); err != nil {
		return nil, fmt.Errorf("simulator: %w", err)
	}

	start := s.clock.Now()
	ids := gameid.NewGenerator(s.clock, randutil.New(s.config.Seed))
	results := make([]*sessionResult, s.config.Sessions)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)
	for i := range s.config.Sessions {
		id := ids.Generate()
		seed := randutil.Derive(s.config.Seed, i)
		g.Go(func() error {
			res, err := s.runSession(ctx, id, seed)
			if err != nil {
				return fmt.Errorf("session %s (seed %d): %w", id, seed, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &Result{Elapsed: s.clock.Since(start)}
	for _, p := range s.config.Players {
		out.Players = append(out.Players, &PlayerSummary{Name: p.Name, Strategy: p.Strategy})
	}
	for _, res := range results {
		out.Sessions = append(out.Sessions, res.summary)
		out.Rounds += res.summary.Rounds
		if res.summary.TimedOut {
			out.TimedOut++
		}
		for _, p := range out.Players {
			sp := res.players[p.Name]
			p.Net.Merge(&sp.Net)
			p.Survived.Merge(&sp.Survived)
			p.Final.Merge(&sp.Final)
			p.Outcomes.Merge(sp.Outcomes)
			p.Busted += sp.Busted
		}
	}

	s.logger.Info("Simulation complete",
		"sessions", s.config.Sessions,
		"rounds", out.Rounds,
		"timed_out", out.TimedOut,
		"elapsed", out.Elapsed)
	return out, nil
}

func (s *Simulator) runSession(ctx context.Context, id string, seed int64) (*sessionResult, error) {
	logger := s.logger.With("session", id)
	rng := randutil.New(seed)

	g, err := game.New(rng, game.Config{
		Decks:            s.config.Decks,
		ShuffleThreshold: s.config.ShuffleThreshold,
	}, game.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	res := &sessionResult{
		summary: SessionSummary{ID: id, Seed: seed},
		players: make(map[string]*PlayerSummary, len(s.config.Players)),
	}
	survived := make(map[string]int, len(s.config.Players))
	seated := make([]*game.Player, 0, len(s.config.Players))
	for _, p := range s.config.Players {
		agent, err := bot.New(p.Bot(), rng, logger)
		if err != nil {
			return nil, fmt.Errorf("player %s: %w", p.Name, err)
		}
		if closer, ok := agent.(interface{ Close() }); ok {
			defer closer.Close()
		}
		player, err := g.AddPlayer(p.Name, p.Bank, p.Rules(), agent)
		if err != nil {
			return nil, fmt.Errorf("player %s: %w", p.Name, err)
		}
		seated = append(seated, player)
		res.players[p.Name] = &PlayerSummary{Name: p.Name, Strategy: p.Strategy}
	}

	var expired atomic.Bool
	if s.config.Timeout > 0 {
		timer := s.clock.AfterFunc(s.config.Timeout, func() {
			expired.Store(true)
		})
		defer timer.Stop()
	}

	logger.Debug("Session started", "seed", seed)
	err = g.Run(ctx, s.config.MaxRounds, func(round *game.RoundResult) error {
		res.summary.Rounds++
		for _, pr := range round.Players {
			sp := res.players[pr.Name]
			sp.Net.Add(float64(pr.Net))
			for _, h := range pr.Hands {
				sp.Outcomes.Record(h)
			}
			survived[pr.Name]++
		}
		if s.config.OnRound != nil {
			s.config.OnRound(id, round)
		}
		if expired.Load() {
			return errDeadline
		}
		return nil
	})
	switch {
	case errors.Is(err, errDeadline):
		res.summary.TimedOut = true
		logger.Warn("Session deadline reached", "rounds", res.summary.Rounds, "timeout", s.config.Timeout)
	case err != nil:
		return nil, err
	}

	for _, p := range seated {
		sp := res.players[p.Name]
		sp.Survived.Add(float64(survived[p.Name]))
		sp.Final.Add(float64(p.Bank))
		if p.Bank == 0 {
			sp.Busted++
		}
	}
	logger.Debug("Session finished", "rounds", res.summary.Rounds)
	return res, nil
}
