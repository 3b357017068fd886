package bot

import (
	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/lox/blackjackforbots/internal/game"
)

// DefaultRiskTolerance is the bust probability a RiskAgent accepts by default.
const DefaultRiskTolerance = 0.5

// Next-card model: mean and population standard deviation of 1..10.
const (
	cardMean   = 5.5
	cardStdDev = 2.872
)

// RiskAgent stays on soft 19 or better and otherwise hits hard totals while
// the estimated chance of busting on the next card is below its tolerance.
type RiskAgent struct {
	betFraction float64
	tolerance   float64
	next        distuv.Normal
	logger      *log.Logger
}

// NewRiskAgent creates a RiskAgent.
func NewRiskAgent(betFraction, tolerance float64, logger *log.Logger) *RiskAgent {
	return &RiskAgent{
		betFraction: betFraction,
		tolerance:   tolerance,
		next:        distuv.Normal{Mu: cardMean, Sigma: cardStdDev},
		logger:      prefixed(logger, "risk"),
	}
}

func (r *RiskAgent) Bet(bank int) int {
	return FractionalBet(r.betFraction, bank)
}

func (r *RiskAgent) Action(obs game.Observation) game.Action {
	total := obs.Hand.Total()
	if obs.Hand.Soft() {
		if total < 19 {
			return game.Hit
		}
		return game.Stay
	}

	p := r.BustProbability(total)
	r.logger.Debug("Estimated bust chance", "total", total, "p", p, "tolerance", r.tolerance)
	if p < r.tolerance {
		return game.Hit
	}
	return game.Stay
}

// BustProbability approximates the chance that one more card takes a hard
// total past 21.
func (r *RiskAgent) BustProbability(total int) float64 {
	return 1 - r.next.CDF(float64(22-total))
}
