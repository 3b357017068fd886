package game

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjackforbots/blackjack"
	"github.com/lox/blackjackforbots/internal/randutil"
)

// scriptedAgent bets a fixed amount and replays a list of actions, staying
// once the script runs out.
type scriptedAgent struct {
	bet     int
	actions []Action
	seen    []Observation
	payouts []int
}

func script(bet int, actions ...Action) *scriptedAgent {
	return &scriptedAgent{bet: bet, actions: actions}
}

func (a *scriptedAgent) Bet(int) int { return a.bet }

func (a *scriptedAgent) Action(obs Observation) Action {
	a.seen = append(a.seen, obs)
	if len(a.actions) == 0 {
		return Stay
	}
	next := a.actions[0]
	a.actions = a.actions[1:]
	return next
}

func (a *scriptedAgent) Payout(amount int) { a.payouts = append(a.payouts, amount) }

// dealerRuleAgent hits below 17 and never uses the optional actions.
type dealerRuleAgent struct{ bet int }

func (a dealerRuleAgent) Bet(int) int { return a.bet }

func (a dealerRuleAgent) Action(obs Observation) Action {
	if obs.Hand.Total() < 17 {
		return Hit
	}
	return Stay
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

// stackedGame deals cards in the given order: each player two, the dealer
// two, then draws in play order.
func stackedGame(t *testing.T, cards ...blackjack.Rank) *Game {
	t.Helper()
	rng := randutil.New(1)
	shoe := blackjack.NewStackedShoe(rng, 1, cards...)
	g, err := New(rng, Config{Decks: 1, ShuffleThreshold: 0.01}, WithShoe(shoe), WithLogger(quietLogger()))
	require.NoError(t, err)
	return g
}

func sit(t *testing.T, g *Game, name string, bank int, rules Rules, agent Agent) *Player {
	t.Helper()
	p, err := g.AddPlayer(name, bank, rules, agent)
	require.NoError(t, err)
	return p
}

func ranks(tokens ...string) []blackjack.Rank {
	out := make([]blackjack.Rank, len(tokens))
	for i, tok := range tokens {
		out[i] = blackjack.MustParseRank(tok)
	}
	return out
}
