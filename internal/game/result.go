package game

import (
	"math"

	"github.com/lox/blackjackforbots/blackjack"
)

// Outcome is how a single hand finished.
type Outcome uint8

const (
	Lose Outcome = iota
	Win
	Push
	Natural   // blackjack paid 3:2
	Busted    // player bust, loses regardless of dealer
	Surrendered
)

func (o Outcome) String() string {
	switch o {
	case Lose:
		return "lose"
	case Win:
		return "win"
	case Push:
		return "push"
	case Natural:
		return "blackjack"
	case Busted:
		return "bust"
	case Surrendered:
		return "surrender"
	default:
		return "unknown"
	}
}

// HandResult is one settled hand.
type HandResult struct {
	Hand    blackjack.Hand
	Bet     int
	Doubled bool
	Outcome Outcome
	Payout  int
}

// PlayerResult is one player's round.
type PlayerResult struct {
	PlayerID int
	Name     string
	Bet      int // opening stake
	Hands    []HandResult
	Net      int // summed payout applied to the bankroll
	Bank     int // bankroll after the round
}

// RoundResult is the record of one completed round.
type RoundResult struct {
	Round           int
	Shuffled        bool
	Dealer          blackjack.Hand
	DealerBlackjack bool
	DealerPlayed    bool
	Players         []PlayerResult
}

// Settle compares a finished, non-surrendered hand with the dealer's final
// hand and returns the outcome and signed payout.
func Settle(hand blackjack.Hand, bet int, dealer blackjack.Hand) (Outcome, int) {
	switch {
	case hand.Blackjack():
		return Natural, roundHalfEven(1.5 * float64(bet))
	case hand.Bust():
		return Busted, -bet
	case dealer.Bust() || hand.Total() > dealer.Total():
		return Win, bet
	case hand.Total() == dealer.Total():
		return Push, 0
	default:
		return Lose, -bet
	}
}

// SettleDealerBlackjack settles a hand against a dealer natural: only a
// player natural pushes.
func SettleDealerBlackjack(hand blackjack.Hand, bet int) (Outcome, int) {
	if hand.Blackjack() {
		return Push, 0
	}
	return Lose, -bet
}

// SurrenderPayout is the half stake forfeited on surrender.
func SurrenderPayout(bet int) int {
	return -roundHalfEven(float64(bet) / 2)
}

func roundHalfEven(x float64) int {
	return int(math.RoundToEven(x))
}
