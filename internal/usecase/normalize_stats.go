package usecase

import (
	"strings"

	"github.com/riskibarqy/matchedge/internal/domain/matchstats"
	"github.com/riskibarqy/matchedge/internal/domain/player"
	"github.com/riskibarqy/matchedge/internal/domain/rawdata"
)

type slot int

const (
	slot1 slot = iota + 1
	slot2
)

func (s slot) prefix() string {
	if s == slot2 {
		return "p2_"
	}
	return "p1_"
}

// fractionSplit decomposes a scraped "won/faced" column into a ratio kept in
// place and a denominator written to another slot's column.
type fractionSplit struct {
	source      slot
	column      string
	target      slot
	denominator string
}

// fractionSplits run in order and a later present denominator replaces an
// earlier one. The site lists break points saved against the opponent's
// opportunities, hence the cross-slot targets.
var fractionSplits = []fractionSplit{
	{slot1, matchstats.ColBreakPointsSaved, slot2, matchstats.ColBreakPointOpportunities},
	{slot1, matchstats.ColBreakPointsConverted, slot1, matchstats.ColBreakPointOpportunities},
	{slot1, matchstats.ColNetPointsWon, slot1, matchstats.ColNetPointsPlayed},
	{slot2, matchstats.ColBreakPointsSaved, slot1, matchstats.ColBreakPointOpportunities},
	{slot2, matchstats.ColBreakPointsConverted, slot2, matchstats.ColBreakPointOpportunities},
	{slot2, matchstats.ColNetPointsWon, slot2, matchstats.ColNetPointsPlayed},
}

// StatsReport counts statistics rows and the values lost to malformed cells.
type StatsReport struct {
	Rows               int `json:"rows"`
	MalformedFractions int `json:"malformed_fractions"`
	NamesBackfilled    int `json:"names_backfilled"`
}

// NormalizeStatistics types the statistics source. Point-outcome fractions
// become two-decimal ratios, break point and net point fractions are split
// into ratio and denominator, and every other metric is read leniently.
func NormalizeStatistics(table rawdata.Table, roster *player.Roster) ([]matchstats.Statistics, StatsReport) {
	table = table.LowerHeaders()
	report := StatsReport{Rows: table.Len()}
	out := make([]matchstats.Statistics, 0, table.Len())
	for _, row := range table.Rows {
		s := matchstats.Statistics{
			MatchID:      row.Get("match_id"),
			TournamentID: parseIntCell(row.Get("tournament_id")),
			Player1:      row.Get("player_1"),
			Player2:      row.Get("player_2"),
			P1ID:         strings.ToLower(row.Get("p1_id")),
			P2ID:         strings.ToLower(row.Get("p2_id")),
		}
		report.MalformedFractions += readMetrics(row, slot1, &s.P1)
		report.MalformedFractions += readMetrics(row, slot2, &s.P2)
		report.MalformedFractions += splitFractions(row, &s)

		if s.Player1 == "" {
			if name, ok := roster.NameByID(s.P1ID); ok {
				s.Player1 = name
				report.NamesBackfilled++
			}
		}
		if s.Player2 == "" {
			if name, ok := roster.NameByID(s.P2ID); ok {
				s.Player2 = name
				report.NamesBackfilled++
			}
		}
		out = append(out, s)
	}
	return out, report
}

// readMetrics fills the point-outcome ratios and the plain numeric metrics of
// one slot. It returns how many present point-outcome cells were malformed.
func readMetrics(row rawdata.Row, s slot, m *matchstats.Metrics) int {
	malformed := 0
	for _, col := range matchstats.PointOutcomeColumns {
		raw, ok := row.Value(s.prefix() + col)
		if !ok {
			continue
		}
		if _, _, ok := parseFraction(raw); !ok {
			malformed++
		}
		m.Set(col, fractionRatio(raw))
	}

	for _, col := range matchstats.ScrapedColumns {
		if isPointOutcome(col) || isSplitColumn(col) {
			continue
		}
		m.Set(col, parseFloatCell(row.Get(s.prefix()+col)))
	}
	return malformed
}

func splitFractions(row rawdata.Row, s *matchstats.Statistics) int {
	malformed := 0
	for _, split := range fractionSplits {
		raw, present := row.Value(split.source.prefix() + split.column)
		ratio, denominator := fractionParts(raw)
		if present && ratio == nil {
			malformed++
		}
		metricsFor(s, split.source).Set(split.column, ratio)

		target := metricsFor(s, split.target)
		if existing, _ := target.Get(split.denominator); denominator != nil || existing == nil {
			target.Set(split.denominator, denominator)
		}
	}
	return malformed
}

func metricsFor(s *matchstats.Statistics, which slot) *matchstats.Metrics {
	if which == slot2 {
		return &s.P2
	}
	return &s.P1
}

func isPointOutcome(col string) bool {
	for _, c := range matchstats.PointOutcomeColumns {
		if c == col {
			return true
		}
	}
	return false
}

func isSplitColumn(col string) bool {
	for _, split := range fractionSplits {
		if split.column == col {
			return true
		}
	}
	return false
}
