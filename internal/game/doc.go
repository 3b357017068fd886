// Package game implements the blackjack round engine.
//
// A Game owns the shoe and the seated players. PlayRound runs one round to
// completion: reshuffle if the shoe is low, collect bets, deal, settle a dealer
// natural immediately, otherwise let each player work through its hands, play
// out the dealer and settle every hand.
//
// # Basic Usage
//
//	rng := randutil.New(5)
//	g, _ := game.New(rng, game.Config{Decks: 4})
//	g.AddPlayer("basic", 50, game.DefaultRules(), bot.NewBasicStrategyAgent(0.1, logger))
//	for g.PlayersIn() > 0 {
//	    if _, err := g.PlayRound(); err != nil {
//	        return err
//	    }
//	}
//
// # Deterministic Testing
//
// A stacked shoe deals a fixed sequence, first card first. Players receive two
// cards each in seat order, then the dealer two; draws during play follow:
//
//	shoe := blackjack.NewStackedShoe(rng, 1, blackjack.Ten, blackjack.Seven, blackjack.Ace, blackjack.Ten)
//	g, _ := game.New(rng, game.Config{Decks: 1, ShuffleThreshold: 0.01}, game.WithShoe(shoe))
//
// # Accounting
//
// Each hand carries its own stake. Doubling doubles that hand's stake, a split
// hand starts with the stake of the hand it came from, and surrender forfeits
// half of it. A player's payouts are summed and applied to the bankroll once
// per round.
package game
