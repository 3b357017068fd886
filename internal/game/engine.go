package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjackforbots/blackjack"
)

var (
	// ErrUnknownAction indicates an agent chose an action outside the legal set.
	ErrUnknownAction = errors.New("game: unknown action")

	// ErrInsufficientFunds indicates a bet that is not positive or exceeds the bankroll.
	ErrInsufficientFunds = errors.New("game: insufficient funds")

	// ErrShoeTooSmall indicates a table whose reshuffle reserve cannot cover a
	// round for every seat.
	ErrShoeTooSmall = errors.New("game: shoe too small for table")
)

const (
	// DealerStandsOn is the total at which the dealer stops drawing.
	DealerStandsOn = 17

	// CardsPerSeat is the card budget for one player, or the dealer, in a round.
	CardsPerSeat = 6
)

// CheckReserve verifies that a shoe of decks reshuffled at threshold always
// starts a round with enough cards for players plus the dealer. A zero
// threshold selects the default.
func CheckReserve(decks int, threshold float64, players int) error {
	if threshold == 0 {
		threshold = blackjack.DefaultShuffleThreshold
	}
	reserve := threshold * float64(decks*blackjack.DeckSize)
	need := (players + 1) * CardsPerSeat
	if reserve < float64(need) {
		return fmt.Errorf("%w: %d deck(s) at threshold %g keep %d cards, %d player(s) need %d",
			ErrShoeTooSmall, decks, threshold, int(reserve), players, need)
	}
	return nil
}

// Config describes the table.
type Config struct {
	Decks            int     // decks in the shoe, at least 1
	ShuffleThreshold float64 // remaining fraction that triggers a reshuffle; zero selects the default
}

// Option configures a Game during creation.
type Option func(*Game)

// WithLogger sets the logger used for round and decision detail.
func WithLogger(logger *log.Logger) Option {
	return func(g *Game) {
		g.logger = logger
	}
}

// WithShoe replaces the shoe built from Config, typically with a stacked
// shoe for deterministic tests.
func WithShoe(shoe *blackjack.Shoe) Option {
	return func(g *Game) {
		g.shoe = shoe
	}
}

// Game runs rounds of blackjack between a dealer and registered players.
// A Game is not safe for concurrent use; run independent games in parallel
// instead.
type Game struct {
	cfg     Config
	rng     *rand.Rand
	shoe    *blackjack.Shoe
	logger  *log.Logger
	players []*Player // active seats, broke players are dropped
	nextID  int
	round   int
	sized   bool // shoe built from cfg, so seats are checked against its reserve
}

// New creates a game. The rng drives the shoe; pass the same rng to
// stochastic agents so a single seed replays the whole game.
func New(rng *rand.Rand, cfg Config, opts ...Option) (*Game, error) {
	if rng == nil {
		return nil, errors.New("game: rng is required")
	}
	if cfg.ShuffleThreshold == 0 {
		cfg.ShuffleThreshold = blackjack.DefaultShuffleThreshold
	}
	if cfg.ShuffleThreshold < 0 || cfg.ShuffleThreshold >= 1 {
		return nil, fmt.Errorf("game: shuffle threshold %.2f outside [0, 1)", cfg.ShuffleThreshold)
	}

	g := &Game{cfg: cfg, rng: rng, nextID: 1}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	if g.shoe == nil {
		shoe, err := blackjack.NewShoe(rng, cfg.Decks)
		if err != nil {
			return nil, err
		}
		g.shoe = shoe
		g.sized = true
	}
	return g, nil
}

// AddPlayer seats a new player and assigns it the next sequential ID. Unless
// the shoe was supplied with WithShoe, a seat the shoe's reshuffle reserve
// cannot cover is rejected with ErrShoeTooSmall.
func (g *Game) AddPlayer(name string, bank int, rules Rules, agent Agent) (*Player, error) {
	if bank <= 0 {
		return nil, fmt.Errorf("%w: player %q needs a positive bankroll, got %d", ErrInsufficientFunds, name, bank)
	}
	if agent == nil {
		return nil, fmt.Errorf("game: player %q has no agent", name)
	}
	if g.sized {
		if err := CheckReserve(g.cfg.Decks, g.cfg.ShuffleThreshold, len(g.players)+1); err != nil {
			return nil, fmt.Errorf("player %q: %w", name, err)
		}
	}
	p := &Player{ID: g.nextID, Name: name, Bank: bank, Rules: rules, Agent: agent}
	g.nextID++
	g.players = append(g.players, p)
	g.logger.Debug("Player seated", "id", p.ID, "name", name, "bank", bank)
	return p, nil
}

// Players returns the seated players, including any that went broke in the
// last round and have not yet been removed.
func (g *Game) Players() []*Player {
	return append([]*Player(nil), g.players...)
}

// PlayersIn counts players with a positive bankroll.
func (g *Game) PlayersIn() int {
	n := 0
	for _, p := range g.players {
		if p.InPlay() {
			n++
		}
	}
	return n
}

// Round returns the number of rounds started so far.
func (g *Game) Round() int {
	return g.round
}

// Shoe exposes the shoe for inspection. Agents must not be given it.
func (g *Game) Shoe() *blackjack.Shoe {
	return g.shoe
}

// Run plays rounds until no player has money, maxRounds rounds have been
// played (zero means no limit) or ctx is done. onRound, if set, sees every
// completed round; an error from it stops the run.
func (g *Game) Run(ctx context.Context, maxRounds int, onRound func(*RoundResult) error) error {
	for played := 0; g.PlayersIn() > 0; played++ {
		if maxRounds > 0 && played >= maxRounds {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		res, err := g.PlayRound()
		if err != nil {
			return err
		}
		if onRound != nil {
			if err := onRound(res); err != nil {
				return err
			}
		}
	}
	return nil
}
