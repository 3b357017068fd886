// Package bot provides the built-in blackjack agents.
package bot

import (
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"os"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjackforbots/internal/game"
)

// Strategy names accepted by New.
const (
	StrategyRandom = "random"
	StrategyRisk   = "risk"
	StrategyBasic  = "basic"
	StrategyLua    = "lua"
)

// Strategies lists the strategy names New accepts.
var Strategies = []string{StrategyRandom, StrategyRisk, StrategyBasic, StrategyLua}

// DefaultBetFraction is the share of the bankroll staked each round.
const DefaultBetFraction = 0.1

// Spec selects and parameterises an agent.
type Spec struct {
	Strategy      string
	BetFraction   float64
	RiskTolerance float64 // risk strategy only
	Script        string  // lua strategy only: path to the script
}

// New creates the agent described by spec. rng should be the game's rng so a
// single seed reproduces both the shoe and the agent's choices.
func New(spec Spec, rng *rand.Rand, logger *log.Logger) (game.Agent, error) {
	frac := spec.BetFraction
	if frac == 0 {
		frac = DefaultBetFraction
	}
	if frac < 0 || frac > 1 {
		return nil, fmt.Errorf("bot: bet fraction %.3f outside (0, 1]", frac)
	}

	switch spec.Strategy {
	case StrategyRandom:
		return NewRandomAgent(rng, frac, logger), nil
	case StrategyRisk:
		tol := spec.RiskTolerance
		if tol == 0 {
			tol = DefaultRiskTolerance
		}
		return NewRiskAgent(frac, tol, logger), nil
	case StrategyBasic:
		return NewBasicStrategyAgent(frac, logger), nil
	case StrategyLua:
		if spec.Script == "" {
			return nil, fmt.Errorf("bot: lua strategy needs a script")
		}
		src, err := os.ReadFile(spec.Script)
		if err != nil {
			return nil, fmt.Errorf("bot: read lua script: %w", err)
		}
		agent, err := NewLuaAgent(string(src), rng, frac, logger)
		if err != nil {
			return nil, fmt.Errorf("bot: load %s: %w", spec.Script, err)
		}
		return agent, nil
	default:
		return nil, fmt.Errorf("bot: unknown strategy %q", spec.Strategy)
	}
}

// FractionalBet stakes floor(fraction × bank), at least 1 and at most bank.
func FractionalBet(fraction float64, bank int) int {
	bet := int(math.Floor(fraction * float64(bank)))
	return max(1, min(bet, bank))
}

func prefixed(logger *log.Logger, prefix string) *log.Logger {
	if logger == nil {
		return log.New(io.Discard)
	}
	return logger.WithPrefix(prefix)
}
