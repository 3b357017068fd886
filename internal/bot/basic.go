package bot

import (
	"github.com/charmbracelet/log"

	bj "github.com/lox/blackjackforbots/blackjack"
	"github.com/lox/blackjackforbots/internal/game"
)

// BasicStrategyAgent plays the classic basic-strategy chart. Decisions are
// taken in order: stay on 20 or 21, surrender, split, double, then the
// hit/stay chart. Only legal actions are ever returned.
type BasicStrategyAgent struct {
	betFraction float64
	logger      *log.Logger
}

// NewBasicStrategyAgent creates a BasicStrategyAgent.
func NewBasicStrategyAgent(betFraction float64, logger *log.Logger) *BasicStrategyAgent {
	return &BasicStrategyAgent{betFraction: betFraction, logger: prefixed(logger, "basic")}
}

func (b *BasicStrategyAgent) Bet(bank int) int {
	return FractionalBet(b.betFraction, bank)
}

func (b *BasicStrategyAgent) Action(obs game.Observation) game.Action {
	action, reason := b.decide(obs)
	b.logger.Debug("Chart decision",
		"hand", obs.Hand,
		"upcard", obs.DealerUpcard,
		"action", action,
		"reason", reason)
	return action
}

func (b *BasicStrategyAgent) decide(obs game.Observation) (game.Action, string) {
	hand := obs.Hand
	total, soft := hand.Total(), hand.Soft()
	up := obs.DealerUpcard

	if total >= 20 {
		return game.Stay, "twenty or better"
	}

	split := obs.Legal.Has(game.Split) && hand.IsPair() && splitsPair(hand.Card(0), up, obs.Rules.Double && obs.Rules.DoubleAfterSplit)

	// A pair the chart splits is never surrendered (8-8 against 9, 10, A).
	if obs.Legal.Has(game.Surrender) && !soft && !split && surrenderChart[total][up] {
		return game.Surrender, "surrender chart"
	}
	if split {
		return game.Split, "split chart"
	}
	if obs.Legal.Has(game.Double) {
		chart := doubleHard
		if soft {
			chart = doubleSoft
		}
		if chart[total][up] {
			return game.Double, "double chart"
		}
	}
	if hits(total, soft, up) {
		return game.Hit, "hit chart"
	}
	return game.Stay, "stay chart"
}

func splitsPair(pair, up bj.Rank, das bool) bool {
	switch splitChart[pair][up] {
	case splitAlways:
		return true
	case splitIfDAS:
		return das
	default:
		return false
	}
}

func hits(total int, soft bool, up bj.Rank) bool {
	if soft {
		switch {
		case total <= 17:
			return true
		case total >= 19:
			return false
		default:
			return hitSoft[total][up]
		}
	}
	switch {
	case total <= 11:
		return true
	case total >= 17:
		return false
	default:
		return hitHard[total][up]
	}
}
