package usecase

import (
	"context"

	"github.com/riskibarqy/matchedge/internal/domain/match"
	"github.com/riskibarqy/matchedge/internal/domain/matchstats"
	"github.com/riskibarqy/matchedge/internal/domain/tournament"
	"github.com/riskibarqy/matchedge/internal/domain/unified"
	"github.com/riskibarqy/matchedge/internal/platform/logging"
)

// MergeReport counts rows through both joins.
type MergeReport struct {
	Results               int `json:"results"`
	TournamentMatches     int `json:"tournament_matches"`
	DuplicateTournaments  int `json:"duplicate_tournaments"`
	Agreed                int `json:"agreed"`
	Swapped               int `json:"swapped"`
	Unaligned             int `json:"unaligned"`
	WithoutStats          int `json:"without_stats"`
	Joined                int `json:"joined"`
	DroppedNoPointOutcome int `json:"dropped_no_point_outcome"`
	Merged                int `json:"merged"`
}

type MergeEngine struct {
	logger *logging.Logger
}

func NewMergeEngine(logger *logging.Logger) *MergeEngine {
	if logger == nil {
		logger = logging.Default()
	}
	return &MergeEngine{logger: logger}
}

// Merge enriches results with tournament context, aligns player slots with
// statistics and keeps only results that have statistics with at least one
// point-outcome metric. Result order is preserved. On shared columns the
// results side wins.
func (e *MergeEngine) Merge(ctx context.Context, results []match.Result, tournaments []tournament.Tournament, stats []matchstats.Statistics) ([]unified.Record, MergeReport) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MergeEngine.Merge")
	defer endSpan(span, nil)

	report := MergeReport{Results: len(results)}

	byKey := make(map[tournament.Key]tournament.Tournament, len(tournaments))
	for _, t := range tournaments {
		key, ok := t.JoinKey()
		if !ok {
			continue
		}
		if _, exists := byKey[key]; exists {
			report.DuplicateTournaments++
			e.logger.WarnContext(ctx, "duplicate tournament edition, keeping first",
				"tournament_id", key.ID,
				"year", key.Year,
			)
			continue
		}
		byKey[key] = t
	}

	statsByKey := make(map[match.StatsKey][]matchstats.Statistics, len(stats))
	for _, s := range stats {
		key, ok := s.Key()
		if !ok {
			continue
		}
		statsByKey[key] = append(statsByKey[key], s)
	}
	idx := NewStatsIndex(stats)

	out := make([]unified.Record, 0, len(results))
	for _, r := range results {
		rec := unified.Record{}
		if t, ok := lookupTournament(byKey, r); ok {
			rec.Level = t.Level
			rec.Location = t.Location
			rec.Surface = t.Surface
			report.TournamentMatches++
		}

		aligned, decision := AlignResult(r, idx)
		switch decision {
		case AlignAgreed:
			report.Agreed++
		case AlignSwapped:
			report.Swapped++
		case AlignUnresolved:
			report.Unaligned++
		case AlignNoStats:
			report.WithoutStats++
		}
		rec.Result = aligned

		key, ok := aligned.StatsKey()
		if !ok {
			continue
		}
		for _, s := range statsByKey[key] {
			report.Joined++
			if !s.HasPointOutcome() {
				report.DroppedNoPointOutcome++
				continue
			}
			joined := rec
			joined.P1 = s.P1
			joined.P2 = s.P2
			out = append(out, joined)
		}
	}
	report.Merged = len(out)

	e.logger.InfoContext(ctx, "merge completed",
		"results", report.Results,
		"swapped", report.Swapped,
		"unaligned", report.Unaligned,
		"merged", report.Merged,
	)
	return out, report
}

func lookupTournament(byKey map[tournament.Key]tournament.Tournament, r match.Result) (tournament.Tournament, bool) {
	if r.TournamentID == nil || r.Year == nil {
		return tournament.Tournament{}, false
	}
	t, ok := byKey[tournament.Key{ID: *r.TournamentID, Year: *r.Year}]
	return t, ok
}
