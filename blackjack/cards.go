// Package blackjack models blackjack cards, hands and the shoe they are dealt from.
//
// Cards carry a rank only. Jacks, queens and kings are normalised to Ten when
// parsed, so no face card ever reaches a Hand or a Shoe.
package blackjack

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidCard indicates an unrecognised rank token or an out-of-range Rank.
	ErrInvalidCard = errors.New("blackjack: invalid card")

	// ErrInvalidSplit indicates a split of a hand that is not a two-card pair.
	ErrInvalidSplit = errors.New("blackjack: invalid split")

	// ErrShoeExhausted indicates a draw from an empty shoe.
	ErrShoeExhausted = errors.New("blackjack: shoe exhausted")
)

// Rank is a normalised card rank. Face cards share Ten.
type Rank uint8

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Ace
)

// Ranks lists every rank in ascending order, Ace last.
var Ranks = [...]Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Ace}

// Valid reports whether r is one of Two..Ten or Ace.
func (r Rank) Valid() bool {
	return r >= Two && r <= Ace
}

// Value returns the hard value of the rank. Aces count 1 here; Total decides
// when one counts as 11.
func (r Rank) Value() int {
	if r == Ace {
		return 1
	}
	return int(r)
}

// String returns "2".."10" or "A".
func (r Rank) String() string {
	switch {
	case r == Ace:
		return "A"
	case r.Valid():
		return fmt.Sprintf("%d", int(r))
	default:
		return "?"
	}
}

// ParseRank parses a rank token. Face cards (J, Q, K) and "T" become Ten.
func ParseRank(s string) (Rank, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "2":
		return Two, nil
	case "3":
		return Three, nil
	case "4":
		return Four, nil
	case "5":
		return Five, nil
	case "6":
		return Six, nil
	case "7":
		return Seven, nil
	case "8":
		return Eight, nil
	case "9":
		return Nine, nil
	case "10", "T", "J", "Q", "K":
		return Ten, nil
	case "A":
		return Ace, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidCard, s)
}

// MustParseRank is like ParseRank but panics on error.
func MustParseRank(s string) Rank {
	r, err := ParseRank(s)
	if err != nil {
		panic(err)
	}
	return r
}
