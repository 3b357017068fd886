package blackjack

import (
	"fmt"
	"strings"
)

// Hand is an ordered run of ranks. Totals are derived on demand.
type Hand struct {
	cards []Rank
	split bool // produced by a split; never a natural
}

// NewHand creates a hand from the given ranks.
func NewHand(ranks ...Rank) (Hand, error) {
	var h Hand
	for _, r := range ranks {
		if err := h.Add(r); err != nil {
			return Hand{}, err
		}
	}
	return h, nil
}

// ParseHand builds a hand from rank tokens such as "A", "K", "9".
func ParseHand(tokens ...string) (Hand, error) {
	var h Hand
	for _, tok := range tokens {
		r, err := ParseRank(tok)
		if err != nil {
			return Hand{}, err
		}
		h.cards = append(h.cards, r)
	}
	return h, nil
}

// MustParseHand is like ParseHand but panics on error.
func MustParseHand(tokens ...string) Hand {
	h, err := ParseHand(tokens...)
	if err != nil {
		panic(err)
	}
	return h
}

// Add appends a rank to the hand.
func (h *Hand) Add(r Rank) error {
	if !r.Valid() {
		return fmt.Errorf("%w: rank %d", ErrInvalidCard, uint8(r))
	}
	h.cards = append(h.cards, r)
	return nil
}

// Len returns the number of cards in the hand.
func (h Hand) Len() int {
	return len(h.cards)
}

// Card returns the i-th card in deal order.
func (h Hand) Card(i int) Rank {
	return h.cards[i]
}

// Cards returns a copy of the ranks in deal order.
func (h Hand) Cards() []Rank {
	return append([]Rank(nil), h.cards...)
}

// Clone returns an independent copy of the hand.
func (h Hand) Clone() Hand {
	return Hand{cards: h.Cards(), split: h.split}
}

// FromSplit reports whether the hand was created by splitting a pair.
func (h Hand) FromSplit() bool {
	return h.split
}

// Total returns the best total of the hand.
func (h Hand) Total() int {
	total, _ := Total(h.cards)
	return total
}

// Soft reports whether an Ace is currently counted as 11.
func (h Hand) Soft() bool {
	_, soft := Total(h.cards)
	return soft
}

// Bust reports whether the hand totals more than 21.
func (h Hand) Bust() bool {
	return h.Total() > 21
}

// Blackjack reports whether the hand is a natural: two untouched cards
// totalling 21 that did not come from a split.
func (h Hand) Blackjack() bool {
	return !h.split && len(h.cards) == 2 && h.Total() == 21
}

// IsPair reports whether the hand holds exactly two cards of equal rank.
func (h Hand) IsPair() bool {
	return len(h.cards) == 2 && h.cards[0] == h.cards[1]
}

// Split separates a pair into two single-card hands. The caller deals the
// second card to each.
func (h Hand) Split() (Hand, Hand, error) {
	if !h.IsPair() {
		return Hand{}, Hand{}, fmt.Errorf("%w: %s", ErrInvalidSplit, h)
	}
	return Hand{cards: []Rank{h.cards[0]}, split: true},
		Hand{cards: []Rank{h.cards[1]}, split: true},
		nil
}

// String returns e.g. "[A 10] 21 soft".
func (h Hand) String() string {
	parts := make([]string, len(h.cards))
	for i, r := range h.cards {
		parts[i] = r.String()
	}
	total, soft := Total(h.cards)
	kind := "hard"
	if soft {
		kind = "soft"
	}
	return fmt.Sprintf("[%s] %d %s", strings.Join(parts, " "), total, kind)
}

// Total computes a hand total in deal order. An Ace counts 11 when the
// running total stays at or below 21, otherwise 1. If the final total busts
// while an Ace counts 11, it is reduced by 10 once; at most one Ace can ever
// hold the 11. soft reports whether that Ace still counts 11.
func Total(cards []Rank) (total int, soft bool) {
	aceHigh := false
	for _, r := range cards {
		if r == Ace && total+11 <= 21 {
			total += 11
			aceHigh = true
			continue
		}
		total += r.Value()
	}
	if total > 21 && aceHigh {
		total -= 10
		aceHigh = false
	}
	return total, aceHigh
}
