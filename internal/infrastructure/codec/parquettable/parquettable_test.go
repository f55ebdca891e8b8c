package parquettable

import (
	"testing"
	"time"

	"github.com/riskibarqy/matchedge/internal/domain/match"
	"github.com/riskibarqy/matchedge/internal/domain/tournament"
	"github.com/riskibarqy/matchedge/internal/domain/unified"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTripKeepsMissingValues(t *testing.T) {
	tid := int64(580)
	year := 2024
	end := time.Date(2024, 1, 28, 0, 0, 0, 0, time.UTC)

	in := []tournament.Tournament{
		{ID: &tid, Name: "Australian Open", Level: "gs", Surface: "hard", EndDate: &end, Year: &year},
		{Name: "Unknown Cup"},
	}
	data, err := Marshal(in)
	require.NoError(t, err)

	out, err := Unmarshal[tournament.Tournament](data)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, int64(580), *out[0].ID)
	assert.True(t, end.Equal(*out[0].EndDate))
	assert.Equal(t, "hard", out[0].Surface)
	assert.Nil(t, out[1].ID)
	assert.Nil(t, out[1].EndDate)
	assert.Nil(t, out[1].Year)
}

func TestNestedRecordsSurvive(t *testing.T) {
	tid := int64(580)
	six := 6
	aces := 14.0
	rec := unified.Record{
		Result: match.Result{TournamentID: &tid, MatchID: "ms001", P1ID: "s0ag", P2ID: "a0e2", P1Sets: match.SetScores{Set1: &six}},
		Level:  "gs",
	}
	rec.P1.Aces = &aces

	data, err := Marshal([]unified.Record{rec})
	require.NoError(t, err)
	out, err := Unmarshal[unified.Record](data)
	require.NoError(t, err)

	require.Len(t, out, 1)
	assert.Equal(t, "ms001", out[0].Result.MatchID)
	assert.Equal(t, 6, *out[0].Result.P1Sets.Set1)
	assert.Nil(t, out[0].Result.P1Sets.Set2)
	assert.Equal(t, 14.0, *out[0].P1.Aces)
	assert.Nil(t, out[0].P2.Aces)
}

func TestUnmarshalEmpty(t *testing.T) {
	out, err := Unmarshal[unified.Record](nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}
