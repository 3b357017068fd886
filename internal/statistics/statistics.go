// Package statistics accumulates per-round results across simulated sessions.
package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/blackjackforbots/internal/game"
)

// Statistics tracks a stream of per-round net results in chips.
type Statistics struct {
	Rounds int
	Sum    float64
	SumSq  float64   // Sum of squares for variance calculation
	Values []float64 // Store all values for median/percentile calculation
}

// Add incorporates one round's net result.
func (s *Statistics) Add(net float64) {
	s.Rounds++
	s.Sum += net
	s.SumSq += net * net
	s.Values = append(s.Values, net)
}

// Merge folds other into s.
func (s *Statistics) Merge(other *Statistics) {
	s.Rounds += other.Rounds
	s.Sum += other.Sum
	s.SumSq += other.SumSq
	s.Values = append(s.Values, other.Values...)
}

// Mean returns the arithmetic mean net per round
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.Sum / float64(s.Rounds)
}

// Variance returns the sample variance
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumSq - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(max(s.Variance(), 0))
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median value of all results
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()
	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the value at the given percentile (0.0 to 1.0),
// interpolating between neighbours.
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

func (s *Statistics) sorted() []float64 {
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)
	return sorted
}

// Validate checks the running sums agree with the stored values.
func (s *Statistics) Validate() error {
	if len(s.Values) != s.Rounds {
		return fmt.Errorf("values length (%d) does not match rounds (%d)", len(s.Values), s.Rounds)
	}
	var sum float64
	for _, v := range s.Values {
		sum += v
	}
	if math.Abs(sum-s.Sum) > 1e-6 {
		return fmt.Errorf("ledger mismatch: sum of values %.6f, running sum %.6f", sum, s.Sum)
	}
	return nil
}

// Outcomes counts how settled hands finished.
type Outcomes struct {
	Hands      int
	Wins       int // includes blackjacks
	Losses     int // includes busts and surrenders
	Pushes     int
	Blackjacks int
	Busts      int
	Surrenders int
	Doubles    int
	SplitHands int // hands that came from a split
}

// Record counts one settled hand.
func (o *Outcomes) Record(h game.HandResult) {
	o.Hands++
	switch h.Outcome {
	case game.Win:
		o.Wins++
	case game.Natural:
		o.Wins++
		o.Blackjacks++
	case game.Push:
		o.Pushes++
	case game.Lose:
		o.Losses++
	case game.Busted:
		o.Losses++
		o.Busts++
	case game.Surrendered:
		o.Losses++
		o.Surrenders++
	}
	if h.Doubled {
		o.Doubles++
	}
	if h.Hand.FromSplit() {
		o.SplitHands++
	}
}

// Merge folds other into o.
func (o *Outcomes) Merge(other Outcomes) {
	o.Hands += other.Hands
	o.Wins += other.Wins
	o.Losses += other.Losses
	o.Pushes += other.Pushes
	o.Blackjacks += other.Blackjacks
	o.Busts += other.Busts
	o.Surrenders += other.Surrenders
	o.Doubles += other.Doubles
	o.SplitHands += other.SplitHands
}

// Rate returns n as a share of all recorded hands.
func (o Outcomes) Rate(n int) float64 {
	if o.Hands == 0 {
		return 0
	}
	return float64(n) / float64(o.Hands)
}
