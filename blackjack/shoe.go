package blackjack

import (
	"fmt"
	"math/rand/v2"
)

// DeckSize is the number of cards in one standard deck.
const DeckSize = 52

// DefaultShuffleThreshold is the remaining fraction of the shoe at or below
// which it is reshuffled before a round.
const DefaultShuffleThreshold = 0.25

// Shoe is a stack of ranks drawn from the end. Tens appear four times per
// suit standing in for 10, J, Q and K.
type Shoe struct {
	decks int
	full  int
	cards []Rank
	rng   *rand.Rand
}

// NewShoe creates a shuffled shoe of the given number of decks.
func NewShoe(rng *rand.Rand, decks int) (*Shoe, error) {
	if rng == nil {
		return nil, fmt.Errorf("blackjack: shoe requires an rng")
	}
	if decks < 1 {
		return nil, fmt.Errorf("blackjack: shoe needs at least one deck, got %d", decks)
	}
	s := &Shoe{
		decks: decks,
		cards: make([]Rank, 0, decks*DeckSize),
		rng:   rng,
	}
	s.Shuffle()
	return s, nil
}

// NewStackedShoe creates an unshuffled shoe that deals the given ranks in
// order, first element first. Its full length is the stacked length, so the
// reshuffle check measures against the stack; a stack drawn down to the
// threshold is replaced by full decks at the next round.
func NewStackedShoe(rng *rand.Rand, decks int, deal ...Rank) *Shoe {
	s := &Shoe{decks: decks, full: len(deal), rng: rng}
	s.cards = make([]Rank, len(deal))
	for i, r := range deal {
		s.cards[len(deal)-1-i] = r
	}
	return s
}

// Decks returns the number of decks the shoe is built from.
func (s *Shoe) Decks() int {
	return s.decks
}

// FullLength returns the card count the shoe held when last filled.
func (s *Shoe) FullLength() int {
	return s.full
}

// Remaining returns the number of cards left to draw.
func (s *Shoe) Remaining() int {
	return len(s.cards)
}

// Reset refills the shoe in rank order without shuffling.
func (s *Shoe) Reset() {
	s.cards = s.cards[:0]
	s.full = s.decks * DeckSize
	for range s.decks * 4 {
		for r := Two; r <= Nine; r++ {
			s.cards = append(s.cards, r)
		}
		s.cards = append(s.cards, Ten, Ten, Ten, Ten, Ace)
	}
}

// Shuffle refills the shoe and randomises its order.
func (s *Shoe) Shuffle() {
	s.Reset()
	s.rng.Shuffle(len(s.cards), func(i, j int) {
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	})
}

// Draw removes and returns the next card.
func (s *Shoe) Draw() (Rank, error) {
	n := len(s.cards)
	if n == 0 {
		return 0, ErrShoeExhausted
	}
	r := s.cards[n-1]
	s.cards = s.cards[:n-1]
	return r, nil
}

// NeedsShuffle reports whether the remaining cards have fallen to or below
// threshold of the full shoe.
func (s *Shoe) NeedsShuffle(threshold float64) bool {
	return float64(s.Remaining()) <= threshold*float64(s.FullLength())
}
