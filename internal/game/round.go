package game

import (
	"fmt"

	"github.com/lox/blackjackforbots/blackjack"
)

// seat is a player's state for one round.
type seat struct {
	player    *Player
	bet       int
	committed int // total staked across all hands this round
	net       int
	pending   []*handState // FIFO work queue
	settled   []*handState
}

type handState struct {
	hand        blackjack.Hand
	index       int
	bet         int
	doubled     bool
	surrendered bool
	outcome     Outcome
	payout      int
}

// PlayRound plays one full round: shuffle check, bets, deal, player turns,
// dealer play-out and settlement. Any contract violation aborts the round
// with a wrapped error and leaves bankrolls untouched.
func (g *Game) PlayRound() (*RoundResult, error) {
	g.round++
	res := &RoundResult{Round: g.round}

	if g.shoe.NeedsShuffle(g.cfg.ShuffleThreshold) {
		g.shoe.Shuffle()
		res.Shuffled = true
		g.logger.Debug("Shuffled shoe", "round", g.round, "cards", g.shoe.Remaining())
	}

	g.dropBrokePlayers()
	g.logger.Debug("Starting round", "round", g.round, "players", len(g.players))

	seats, err := g.collectBets()
	if err != nil {
		return nil, g.abort(err)
	}

	dealer, err := g.deal(seats)
	if err != nil {
		return nil, g.abort(err)
	}
	upcard := dealer.Card(0)

	if dealer.Blackjack() {
		res.DealerBlackjack = true
		for _, s := range seats {
			hs := s.pending[0]
			s.pending = nil
			hs.outcome, hs.payout = SettleDealerBlackjack(hs.hand, hs.bet)
			s.net += hs.payout
			s.settled = append(s.settled, hs)
		}
		g.logger.Debug("Dealer blackjack", "round", g.round, "dealer", dealer)
	} else {
		for _, s := range seats {
			if err := g.playSeat(s, upcard); err != nil {
				return nil, g.abort(err)
			}
		}

		if needsDealer(seats) {
			if err := g.playDealer(&dealer); err != nil {
				return nil, g.abort(err)
			}
			res.DealerPlayed = true
			g.logger.Debug("Dealer played out", "round", g.round, "dealer", dealer)
		} else {
			g.logger.Debug("Dealer did not need to play", "round", g.round)
		}

		for _, s := range seats {
			for _, hs := range s.settled {
				if hs.surrendered {
					continue
				}
				hs.outcome, hs.payout = Settle(hs.hand, hs.bet, dealer)
				s.net += hs.payout
			}
		}
	}

	res.Dealer = dealer
	for _, s := range seats {
		s.player.Payout(s.net)
		res.Players = append(res.Players, s.result())
		g.logger.Debug("Player settled",
			"round", g.round,
			"player", s.player.Name,
			"net", s.net,
			"bank", s.player.Bank)
	}
	return res, nil
}

func (g *Game) abort(err error) error {
	g.logger.Error("Round aborted", "round", g.round, "error", err)
	return fmt.Errorf("round %d: %w", g.round, err)
}

func (g *Game) dropBrokePlayers() {
	kept := g.players[:0]
	for _, p := range g.players {
		if p.InPlay() {
			kept = append(kept, p)
			continue
		}
		g.logger.Debug("Player out of money", "id", p.ID, "name", p.Name)
	}
	clear(g.players[len(kept):])
	g.players = kept
}

func (g *Game) collectBets() ([]*seat, error) {
	seats := make([]*seat, 0, len(g.players))
	for _, p := range g.players {
		bet := p.Agent.Bet(p.Bank)
		if bet <= 0 || bet > p.Bank {
			return nil, fmt.Errorf("%w: player %d (%s) bet %d with bank %d", ErrInsufficientFunds, p.ID, p.Name, bet, p.Bank)
		}
		g.logger.Debug("Bet placed", "player", p.Name, "bet", bet, "bank", p.Bank)
		seats = append(seats, &seat{player: p, bet: bet, committed: bet})
	}
	return seats, nil
}

// deal gives each player two cards in seat order, then the dealer two.
func (g *Game) deal(seats []*seat) (blackjack.Hand, error) {
	for _, s := range seats {
		var h blackjack.Hand
		if err := g.drawInto(&h, 2); err != nil {
			return blackjack.Hand{}, err
		}
		s.pending = []*handState{{hand: h, bet: s.bet}}
	}
	var dealer blackjack.Hand
	if err := g.drawInto(&dealer, 2); err != nil {
		return blackjack.Hand{}, err
	}
	return dealer, nil
}

func (g *Game) drawInto(h *blackjack.Hand, n int) error {
	for range n {
		r, err := g.shoe.Draw()
		if err != nil {
			return err
		}
		if err := h.Add(r); err != nil {
			return err
		}
	}
	return nil
}

// playSeat works through a player's hands until none are pending. A split
// puts the second hand at the back of the queue.
func (g *Game) playSeat(s *seat, upcard blackjack.Rank) error {
	next := 1
	for len(s.pending) > 0 {
		hs := s.pending[0]
		s.pending = s.pending[1:]

	decisions:
		for !hs.hand.Bust() {
			obs := g.observe(s, hs, upcard)
			action := s.player.Agent.Action(obs)
			if !obs.Legal.Has(action) {
				return fmt.Errorf("%w: player %d (%s) chose %s on %s, legal %s",
					ErrUnknownAction, s.player.ID, s.player.Name, action, hs.hand, obs.Legal)
			}
			g.logger.Debug("Player action",
				"player", s.player.Name,
				"hand", hs.index,
				"cards", hs.hand,
				"upcard", upcard,
				"action", action)

			switch action {
			case Surrender:
				hs.surrendered = true
				hs.outcome = Surrendered
				hs.payout = SurrenderPayout(hs.bet)
				s.net += hs.payout
				break decisions
			case Split:
				left, right, err := hs.hand.Split()
				if err != nil {
					return err
				}
				if err := g.drawInto(&left, 1); err != nil {
					return err
				}
				if err := g.drawInto(&right, 1); err != nil {
					return err
				}
				hs.hand = left
				s.committed += hs.bet
				s.pending = append(s.pending, &handState{hand: right, index: next, bet: hs.bet})
				next++
			case Double:
				s.committed += hs.bet
				hs.bet *= 2
				hs.doubled = true
				if err := g.drawInto(&hs.hand, 1); err != nil {
					return err
				}
				break decisions
			case Hit:
				if err := g.drawInto(&hs.hand, 1); err != nil {
					return err
				}
			case Stay:
				break decisions
			}
		}
		s.settled = append(s.settled, hs)
	}
	return nil
}

// observe builds the decision snapshot and the legal action set. Double,
// split and surrender are only offered on a two-card hand, and double and
// split only when the bankroll covers another stake of the same size.
func (g *Game) observe(s *seat, hs *handState, upcard blackjack.Rank) Observation {
	rules := s.player.Rules
	legal := NewActionSet(Hit, Stay)
	if hs.hand.Len() == 2 {
		affordable := s.committed+hs.bet <= s.player.Bank
		if rules.Double && affordable && (!hs.hand.FromSplit() || rules.DoubleAfterSplit) {
			legal = legal.Add(Double)
		}
		if rules.Surrender {
			legal = legal.Add(Surrender)
		}
		if hs.hand.IsPair() && affordable {
			legal = legal.Add(Split)
		}
	}
	return Observation{
		DealerUpcard: upcard,
		Hand:         hs.hand.Clone(),
		Legal:        legal,
		Rules:        rules,
		Bank:         s.player.Bank,
		Bet:          hs.bet,
		HandIndex:    hs.index,
	}
}

// needsDealer reports whether any live hand still depends on the dealer's
// final total.
func needsDealer(seats []*seat) bool {
	for _, s := range seats {
		for _, hs := range s.settled {
			if hs.surrendered || hs.hand.Bust() || hs.hand.Blackjack() {
				continue
			}
			return true
		}
	}
	return false
}

func (g *Game) playDealer(dealer *blackjack.Hand) error {
	for dealer.Total() < DealerStandsOn {
		if err := g.drawInto(dealer, 1); err != nil {
			return err
		}
	}
	return nil
}

func (s *seat) result() PlayerResult {
	pr := PlayerResult{
		PlayerID: s.player.ID,
		Name:     s.player.Name,
		Bet:      s.bet,
		Net:      s.net,
		Bank:     s.player.Bank,
	}
	for _, hs := range s.settled {
		pr.Hands = append(pr.Hands, HandResult{
			Hand:    hs.hand,
			Bet:     hs.bet,
			Doubled: hs.doubled,
			Outcome: hs.outcome,
			Payout:  hs.payout,
		})
	}
	return pr
}
