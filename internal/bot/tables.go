package bot

import bj "github.com/lox/blackjackforbots/blackjack"

type splitRule uint8

const (
	splitNever splitRule = iota
	splitAlways
	splitIfDAS // only when doubling after a split is allowed
)

type chart map[int]map[bj.Rank]bool

func upcards(ranks ...bj.Rank) map[bj.Rank]bool {
	m := make(map[bj.Rank]bool, len(ranks))
	for _, r := range ranks {
		m[r] = true
	}
	return m
}

func upcardRange(lo, hi bj.Rank) map[bj.Rank]bool {
	m := make(map[bj.Rank]bool)
	for r := lo; r <= hi; r++ {
		m[r] = true
	}
	return m
}

var allUpcards = upcardRange(bj.Two, bj.Ace)

var surrenderChart = chart{
	15: upcards(bj.Ten),
	16: upcards(bj.Nine, bj.Ten, bj.Ace),
}

var doubleSoft = chart{
	13: upcardRange(bj.Five, bj.Six),
	14: upcardRange(bj.Five, bj.Six),
	15: upcardRange(bj.Four, bj.Six),
	16: upcardRange(bj.Four, bj.Six),
	17: upcardRange(bj.Three, bj.Six),
	18: upcardRange(bj.Two, bj.Six),
	19: upcards(bj.Six),
}

var doubleHard = chart{
	9:  upcardRange(bj.Three, bj.Six),
	10: upcardRange(bj.Two, bj.Nine),
	11: allUpcards,
}

// Soft 18 is the only soft total that depends on the upcard.
var hitSoft = chart{
	18: upcards(bj.Nine, bj.Ten, bj.Ace),
}

var hitHard = chart{
	12: upcards(bj.Two, bj.Three, bj.Seven, bj.Eight, bj.Nine, bj.Ten, bj.Ace),
	13: upcardRange(bj.Seven, bj.Ace),
	14: upcardRange(bj.Seven, bj.Ace),
	15: upcardRange(bj.Seven, bj.Ace),
	16: upcardRange(bj.Seven, bj.Ace),
}

var splitChart = map[bj.Rank]map[bj.Rank]splitRule{
	bj.Two:   lowPairs(),
	bj.Three: lowPairs(),
	bj.Four:  splits(splitIfDAS, bj.Five, bj.Six),
	bj.Six: merge(
		splits(splitIfDAS, bj.Two),
		splits(splitAlways, bj.Three, bj.Four, bj.Five, bj.Six),
	),
	bj.Seven: splits(splitAlways, bj.Two, bj.Three, bj.Four, bj.Five, bj.Six, bj.Seven),
	bj.Eight: splits(splitAlways, bj.Ranks[:]...),
	bj.Nine:  splits(splitAlways, bj.Two, bj.Three, bj.Four, bj.Five, bj.Six, bj.Eight, bj.Nine),
	bj.Ace:   splits(splitAlways, bj.Ranks[:]...),
}

func lowPairs() map[bj.Rank]splitRule {
	return merge(
		splits(splitIfDAS, bj.Two, bj.Three),
		splits(splitAlways, bj.Four, bj.Five, bj.Six, bj.Seven),
	)
}

func splits(rule splitRule, ups ...bj.Rank) map[bj.Rank]splitRule {
	m := make(map[bj.Rank]splitRule, len(ups))
	for _, r := range ups {
		m[r] = rule
	}
	return m
}

func merge(ms ...map[bj.Rank]splitRule) map[bj.Rank]splitRule {
	out := make(map[bj.Rank]splitRule)
	for _, m := range ms {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}
