package bot

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjackforbots/internal/game"
)

// RandomAgent hits or stays with equal odds and always stays on 21.
type RandomAgent struct {
	rng         *rand.Rand
	betFraction float64
	logger      *log.Logger
}

// NewRandomAgent creates a RandomAgent drawing from rng.
func NewRandomAgent(rng *rand.Rand, betFraction float64, logger *log.Logger) *RandomAgent {
	return &RandomAgent{rng: rng, betFraction: betFraction, logger: prefixed(logger, "random")}
}

func (r *RandomAgent) Bet(bank int) int {
	return FractionalBet(r.betFraction, bank)
}

func (r *RandomAgent) Action(obs game.Observation) game.Action {
	if obs.Hand.Total() == 21 {
		return game.Stay
	}
	if r.rng.Float64() < 0.5 {
		return game.Stay
	}
	return game.Hit
}
