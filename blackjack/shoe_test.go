package blackjack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjackforbots/internal/randutil"
)

func TestNewShoeComposition(t *testing.T) {
	t.Parallel()
	shoe, err := NewShoe(randutil.New(1), 1)
	require.NoError(t, err)
	require.Equal(t, 52, shoe.FullLength())
	require.Equal(t, 52, shoe.Remaining())

	counts := make(map[Rank]int)
	for shoe.Remaining() > 0 {
		r, err := shoe.Draw()
		require.NoError(t, err)
		require.True(t, r.Valid())
		counts[r]++
	}
	for r := Two; r <= Nine; r++ {
		assert.Equal(t, 4, counts[r], "rank %s", r)
	}
	assert.Equal(t, 16, counts[Ten])
	assert.Equal(t, 4, counts[Ace])
}

func TestShoeDrawAndShuffle(t *testing.T) {
	t.Parallel()
	shoe, err := NewShoe(randutil.New(7), 4)
	require.NoError(t, err)
	require.Equal(t, 208, shoe.FullLength())

	for i := 1; i <= 60; i++ {
		_, err := shoe.Draw()
		require.NoError(t, err)
		require.Equal(t, 208-i, shoe.Remaining())
	}

	shoe.Shuffle()
	assert.Equal(t, shoe.FullLength(), shoe.Remaining())
	assert.Equal(t, 208, shoe.FullLength(), "full length never changes")
}

func TestShoeExhausted(t *testing.T) {
	t.Parallel()
	shoe := NewStackedShoe(randutil.New(1), 1, Ace, Ten)

	r, err := shoe.Draw()
	require.NoError(t, err)
	assert.Equal(t, Ace, r)
	r, err = shoe.Draw()
	require.NoError(t, err)
	assert.Equal(t, Ten, r)

	_, err = shoe.Draw()
	assert.ErrorIs(t, err, ErrShoeExhausted)
}

func TestStackedShoeMeasuresAgainstStack(t *testing.T) {
	t.Parallel()
	shoe := NewStackedShoe(randutil.New(1), 2, Ten, Seven, Ace, Ten)
	assert.Equal(t, 4, shoe.FullLength())
	assert.False(t, shoe.NeedsShuffle(DefaultShuffleThreshold), "a fresh stack deals before any reshuffle")

	for range 3 {
		_, err := shoe.Draw()
		require.NoError(t, err)
	}
	assert.True(t, shoe.NeedsShuffle(DefaultShuffleThreshold))

	shoe.Shuffle()
	assert.Equal(t, 104, shoe.FullLength())
	assert.Equal(t, 104, shoe.Remaining())
}

func TestShoeNeedsShuffle(t *testing.T) {
	t.Parallel()
	shoe, err := NewShoe(randutil.New(3), 1)
	require.NoError(t, err)
	assert.False(t, shoe.NeedsShuffle(DefaultShuffleThreshold))

	// 13 of 52 is exactly the 25% threshold.
	for shoe.Remaining() > 14 {
		_, err := shoe.Draw()
		require.NoError(t, err)
	}
	assert.False(t, shoe.NeedsShuffle(DefaultShuffleThreshold))
	_, err = shoe.Draw()
	require.NoError(t, err)
	assert.True(t, shoe.NeedsShuffle(DefaultShuffleThreshold))
}

func TestShoeDeterministicForSeed(t *testing.T) {
	t.Parallel()
	a, err := NewShoe(randutil.New(42), 2)
	require.NoError(t, err)
	b, err := NewShoe(randutil.New(42), 2)
	require.NoError(t, err)

	for range 104 {
		ra, _ := a.Draw()
		rb, _ := b.Draw()
		require.Equal(t, ra, rb)
	}
}

func TestNewShoeValidation(t *testing.T) {
	t.Parallel()
	_, err := NewShoe(randutil.New(1), 0)
	assert.Error(t, err)
	_, err = NewShoe(nil, 1)
	assert.Error(t, err)
}
