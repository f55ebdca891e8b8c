package usecase

import (
	"testing"

	"github.com/riskibarqy/matchedge/internal/domain/matchstats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statsColumns() []string {
	columns := []string{"match_id", "tournament_id", "player_1", "player_2", "p1_id", "p2_id"}
	for _, prefix := range []string{"p1_", "p2_"} {
		for _, col := range matchstats.ScrapedColumns {
			columns = append(columns, prefix+col)
		}
	}
	return columns
}

func statsRow(columns []string, cells map[string]string) []string {
	values := make([]string, len(columns))
	for i, col := range columns {
		values[i] = cells[col]
	}
	return values
}

func TestNormalizeStatistics_PointOutcomeRatios(t *testing.T) {
	t.Parallel()

	cells := map[string]string{
		"match_id": "ms001", "tournament_id": "580", "player_1": "J. Sinner", "player_2": "C. Alcaraz",
		"p1_id": "S0AG", "p2_id": "A0E2",
		"p1_first_serve":             "12/20",
		"p1_1st_serve_points_won":    "0/0",
		"p1_total_points_won":        "garbage",
		"p2_service_points_won":      "45/60",
		"p1_aces":                    "11",
		"p2_double_faults":           "x",
		"p1_max_speed":               "221.5",
		"p2_1st_serve_average_speed": "",
	}
	columns := statsColumns()

	got, report := NormalizeStatistics(table(columns, statsRow(columns, cells)), testRoster())
	require.Len(t, got, 1)
	s := got[0]

	assert.Equal(t, "s0ag", s.P1ID)
	assert.Equal(t, "a0e2", s.P2ID)
	assert.Equal(t, int64Ptr(580), s.TournamentID)
	assert.Equal(t, floatPtr(0.6), s.P1.FirstServe)
	assert.Nil(t, s.P1.FirstServePointsWon)
	assert.Nil(t, s.P1.TotalPointsWon)
	assert.Equal(t, floatPtr(0.75), s.P2.ServicePointsWon)
	assert.Equal(t, floatPtr(11), s.P1.Aces)
	assert.Nil(t, s.P2.DoubleFaults)
	assert.Equal(t, floatPtr(221.5), s.P1.MaxSpeed)
	assert.Nil(t, s.P2.FirstServeAverageSpeed)
	assert.Equal(t, 1, report.MalformedFractions)
}

func TestNormalizeStatistics_ZeroDenominatorsAreNotMalformed(t *testing.T) {
	t.Parallel()

	cells := map[string]string{
		"match_id": "ms002", "tournament_id": "580", "p1_id": "s0ag", "p2_id": "a0e2",
		"p1_first_serve":          "0.0/0",
		"p1_1st_serve_points_won": " 0/0 ",
		"p2_first_serve":          "0 / 0",
		"p2_total_points_won":     "7/0",
		"p2_service_points_won":   "1/2/3",
	}
	columns := statsColumns()

	got, report := NormalizeStatistics(table(columns, statsRow(columns, cells)), testRoster())
	require.Len(t, got, 1)
	assert.Nil(t, got[0].P1.FirstServe)
	assert.Nil(t, got[0].P1.FirstServePointsWon)
	assert.Nil(t, got[0].P2.FirstServe)
	assert.Nil(t, got[0].P2.TotalPointsWon)
	assert.Nil(t, got[0].P2.ServicePointsWon)
	assert.Equal(t, 1, report.MalformedFractions)
}

func TestNormalizeStatistics_DecomposesBreakAndNetPoints(t *testing.T) {
	t.Parallel()

	cells := map[string]string{
		"match_id": "ms002", "tournament_id": "339", "p1_id": "f324", "p2_id": "d643",
		"p1_break_points_saved":     "3/4",
		"p1_break_points_converted": "2/5",
		"p1_net_points_won":         "0/0",
		"p2_break_points_saved":     "3/5",
		"p2_break_points_converted": "1/4",
		"p2_net_points_won":         "9/12",
	}
	columns := statsColumns()

	got, _ := NormalizeStatistics(table(columns, statsRow(columns, cells)), testRoster())
	require.Len(t, got, 1)
	s := got[0]

	assert.Equal(t, floatPtr(0.75), s.P1.BreakPointsSaved)
	assert.Equal(t, floatPtr(0.4), s.P1.BreakPointsConverted)
	assert.Equal(t, floatPtr(0), s.P1.NetPointsWon)
	assert.Equal(t, floatPtr(0), s.P1.NetPointsPlayed)
	assert.Equal(t, floatPtr(5), s.P1.BreakPointOpportunities)

	assert.Equal(t, floatPtr(0.6), s.P2.BreakPointsSaved)
	assert.Equal(t, floatPtr(0.25), s.P2.BreakPointsConverted)
	assert.Equal(t, floatPtr(0.75), s.P2.NetPointsWon)
	assert.Equal(t, floatPtr(12), s.P2.NetPointsPlayed)
	assert.Equal(t, floatPtr(4), s.P2.BreakPointOpportunities)
}

func TestNormalizeStatistics_MissingLaterDenominatorKeepsEarlierOne(t *testing.T) {
	t.Parallel()

	cells := map[string]string{
		"match_id": "ms003", "tournament_id": "339", "p1_id": "f324", "p2_id": "d643",
		"p1_break_points_saved":     "3/4",
		"p2_break_points_converted": "",
	}
	columns := statsColumns()

	got, _ := NormalizeStatistics(table(columns, statsRow(columns, cells)), testRoster())
	require.Len(t, got, 1)
	assert.Equal(t, floatPtr(4), got[0].P2.BreakPointOpportunities)
	assert.Nil(t, got[0].P1.BreakPointOpportunities)
}

func TestNormalizeStatistics_BackfillsMissingNamesOnly(t *testing.T) {
	t.Parallel()

	cells := map[string]string{
		"match_id": "ms004", "tournament_id": "339",
		"player_1": "", "player_2": "Novak Djokovic",
		"p1_id": "F324", "p2_id": "d643",
	}
	columns := statsColumns()

	got, report := NormalizeStatistics(table(columns, statsRow(columns, cells)), testRoster())
	require.Len(t, got, 1)
	assert.Equal(t, "R. Federer", got[0].Player1)
	assert.Equal(t, "Novak Djokovic", got[0].Player2)
	assert.Equal(t, 1, report.NamesBackfilled)
}

func TestNormalizeStatistics_UppercaseHeaders(t *testing.T) {
	t.Parallel()

	raw := table([]string{"MATCH_ID", "Tournament_ID", "P1_ID", "P2_ID", "P1_ACES"},
		[]string{"ms005", "580.0", "AB12", "CD34", "7"})

	got, _ := NormalizeStatistics(raw, nil)
	require.Len(t, got, 1)
	assert.Equal(t, "ms005", got[0].MatchID)
	assert.Equal(t, int64Ptr(580), got[0].TournamentID)
	assert.Equal(t, "ab12", got[0].P1ID)
	assert.Equal(t, floatPtr(7), got[0].P1.Aces)
}
