package postgres

import (
	"time"

	"github.com/riskibarqy/matchedge/internal/domain/match"
	"github.com/riskibarqy/matchedge/internal/domain/matchstats"
	"github.com/riskibarqy/matchedge/internal/domain/unified"
)

const archiveTable = "unified_matches"

type unifiedMatchInsertModel struct {
	RunID         string     `db:"run_id"`
	BatchPosition int        `db:"batch_position"`
	MatchDate     *time.Time `db:"match_date"`
	TournamentID  *int64     `db:"tournament_id"`
	MatchID       *string    `db:"match_id"`
	MatchRound    *string    `db:"match_round"`
	Player1       *string    `db:"player_1"`
	P1ID          *string    `db:"p1_id"`
	Player1Scores *string    `db:"player_1_scores"`
	Player2       *string    `db:"player_2"`
	P2ID          *string    `db:"p2_id"`
	Player2Scores *string    `db:"player_2_scores"`
	Winner        *string    `db:"winner"`
	WinnerID      *string    `db:"winner_id"`
	Result        *string    `db:"result"`
	Duration      *string    `db:"duration"`
	BestOf        int        `db:"best_of"`
	P1Sets        string     `db:"p1_sets"`
	P2Sets        string     `db:"p2_sets"`
	StatsLink     *string    `db:"stats_link"`
	Year          *int       `db:"year"`
	Level         *string    `db:"level"`
	Location      *string    `db:"location"`
	Surface       *string    `db:"surface"`
	P1Metrics     string     `db:"p1_metrics"`
	P2Metrics     string     `db:"p2_metrics"`
}

func toUnifiedMatchInsertModel(runID string, position int, rec unified.Record) unifiedMatchInsertModel {
	r := rec.Result
	return unifiedMatchInsertModel{
		RunID:         runID,
		BatchPosition: position,
		MatchDate:     r.MatchDate,
		TournamentID:  r.TournamentID,
		MatchID:       nullableString(r.MatchID),
		MatchRound:    nullableString(r.MatchRound),
		Player1:       nullableString(r.Player1),
		P1ID:          nullableString(r.P1ID),
		Player1Scores: nullableString(r.Player1Scores),
		Player2:       nullableString(r.Player2),
		P2ID:          nullableString(r.P2ID),
		Player2Scores: nullableString(r.Player2Scores),
		Winner:        nullableString(r.Winner),
		WinnerID:      nullableString(r.WinnerID),
		Result:        nullableString(string(r.Status)),
		Duration:      nullableString(r.Duration),
		BestOf:        r.BestOf,
		P1Sets:        encodeSets(r.P1Sets),
		P2Sets:        encodeSets(r.P2Sets),
		StatsLink:     nullableString(r.StatsLink),
		Year:          r.Year,
		Level:         nullableString(rec.Level),
		Location:      nullableString(rec.Location),
		Surface:       nullableString(rec.Surface),
		P1Metrics:     encodeMetrics(rec.P1),
		P2Metrics:     encodeMetrics(rec.P2),
	}
}

// encodeSets renders set scores as a JSON array with null for unplayed sets.
func encodeSets(s match.SetScores) string {
	values := s.Values()
	return encodeJSON(values[:], "[]")
}

// encodeMetrics renders the present metrics as a JSON object keyed by column
// name. Missing metrics are omitted.
func encodeMetrics(m matchstats.Metrics) string {
	out := make(map[string]float64, len(matchstats.MetricColumns))
	for _, col := range matchstats.MetricColumns {
		if v, _ := m.Get(col); v != nil {
			out[col] = *v
		}
	}
	if len(out) == 0 {
		return "{}"
	}
	return encodeJSON(out, "{}")
}
