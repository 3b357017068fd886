package game

import "github.com/lox/blackjackforbots/blackjack"

// Observation is the read-only view a player gets before each decision.
// It is rebuilt for every decision, so hits are already reflected in Hand.
type Observation struct {
	DealerUpcard blackjack.Rank
	Hand         blackjack.Hand // copy; mutating it has no effect on play
	Legal        ActionSet
	Rules        Rules
	Bank         int // bankroll at the start of the round
	Bet          int // stake riding on this hand
	HandIndex    int // 0 for the dealt hand, then split hands in creation order
}

// Agent makes betting and playing decisions for a player. Agents never see
// the shoe or the dealer's hole card.
type Agent interface {
	// Bet returns the stake for the next round given the current bankroll.
	Bet(bank int) int
	// Action picks one of obs.Legal.
	Action(obs Observation) Action
}

// PayoutObserver is implemented by agents that want to hear their net
// result after each round.
type PayoutObserver interface {
	Payout(amount int)
}
