package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatio(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 100.0, Ratio("580", "580"))
	assert.Equal(t, 100.0, Ratio("", ""))
	assert.Equal(t, 0.0, Ratio("abc", ""))
	assert.InDelta(t, 66.67, Ratio("580", "581"), 0.01)
	assert.Equal(t, 0.0, Ratio("abc", "xyz"))
	assert.Equal(t, 0.0, Ratio("580", "7696"))
	assert.InDelta(t, 90.91, Ratio("zverev", "verev"), 0.01)
	assert.InDelta(t, 50.0, Ratio("ab", "ba"), 0.01)
	assert.Equal(t, 100.0, Ratio("Müller", "Müller"))
}

func TestTokenSortRatio_IgnoresOrderAndPunctuation(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 100.0, TokenSortRatio("Federer R.", "r federer"))
	assert.InDelta(t, 88.0, TokenSortRatio("Alex de Minaur", "A. De Minaur"), 0.01)
	assert.Less(t, TokenSortRatio("Carlos Alcaraz", "J. Sinner"), 60.0)
	assert.InDelta(t, 62.5, TokenSortRatio("A. Zverev", "A. Rublev"), 0.01)
}

func TestTokenSetRatio_SubsetScoresFull(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 100.0, TokenSetRatio("Mutua Madrid Open", "Madrid Open"))
	assert.Equal(t, 0.0, TokenSetRatio("", "Madrid"))
}

func TestPartialRatio(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 100.0, PartialRatio("hamburg", "bitpanda hamburg open"))
	assert.Equal(t, 100.0, PartialRatio("", ""))
	assert.Equal(t, 0.0, PartialRatio("", "x"))
}

func TestWRatio(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 100.0, WRatio("Wimbledon", "wimbledon"))
	assert.InDelta(t, 90.0, WRatio("Hamburg", "Bitpanda Hamburg Open"), 0.01)
	assert.Less(t, WRatio("Dallas Open", "Roland Garros"), 75.0)
	assert.Equal(t, 0.0, WRatio("", "Roland Garros"))
}

func TestExtractOne(t *testing.T) {
	t.Parallel()

	_, ok := ExtractOne("580", nil, Ratio)
	require.False(t, ok)

	got, ok := ExtractOne("580", []string{"339", "580", "580"}, Ratio)
	require.True(t, ok)
	assert.Equal(t, "580", got.Choice)
	assert.Equal(t, 1, got.Index)
	assert.Equal(t, 100.0, got.Score)

	got, ok = ExtractOne("Roland Garros", []string{"Wimbledon", "Roland Garros"}, nil)
	require.True(t, ok)
	assert.Equal(t, 1, got.Index)
}

func TestProcess(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "f auger aliassime", Process("  F. Auger-Aliassime "))
	assert.Equal(t, "", Process("..."))
}
