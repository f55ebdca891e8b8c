package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/riskibarqy/matchedge/internal/platform/fuzzy"
	"github.com/riskibarqy/matchedge/internal/platform/logging"
)

// DefaultDateThreshold is the score a fuzzy tournament-id match must beat.
const DefaultDateThreshold = 95.0

var knownDateLayouts = []string{
	"2-1-2006",
	"2006-1-2",
	"Mon, 2 January, 2006",
}

// TournamentEndDate is one raw (id, end date) pair from the tournaments source.
type TournamentEndDate struct {
	TournamentID string
	EndDate      string
}

// DateReconciler turns scraped match dates into calendar dates. Placeholders
// such as "Final" or "Round of 16" take the tournament's end date.
type DateReconciler struct {
	ids       []string
	endDates  map[string]string
	threshold float64
	logger    *logging.Logger
}

// NewDateReconciler indexes end dates in source order. The first entry for a
// repeated id wins.
func NewDateReconciler(endDates []TournamentEndDate, threshold float64, logger *logging.Logger) *DateReconciler {
	if logger == nil {
		logger = logging.Default()
	}
	if threshold <= 0 {
		threshold = DefaultDateThreshold
	}

	d := &DateReconciler{
		ids:       make([]string, 0, len(endDates)),
		endDates:  make(map[string]string, len(endDates)),
		threshold: threshold,
		logger:    logger,
	}
	for _, item := range endDates {
		id := strings.TrimSpace(item.TournamentID)
		if id == "" {
			continue
		}
		if _, ok := d.endDates[id]; ok {
			continue
		}
		d.ids = append(d.ids, id)
		d.endDates[id] = strings.TrimSpace(item.EndDate)
	}
	return d
}

// Reconcile resolves raw for a match of tournamentID. ok is false when the
// date stays unresolved; callers keep the row with a missing date.
func (d *DateReconciler) Reconcile(ctx context.Context, raw, tournamentID string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if !isPlaceholderDate(raw) {
		return ParseDate(raw)
	}

	tournamentID = strings.TrimSpace(tournamentID)
	best, ok := fuzzy.ExtractOne(tournamentID, d.ids, fuzzy.WRatio)
	if !ok || best.Score <= d.threshold {
		d.logger.WarnContext(ctx, "match date unresolved",
			"match_date", raw,
			"tournament_id", tournamentID,
			"best_candidate", best.Choice,
			"score", best.Score,
		)
		return time.Time{}, false
	}

	endDate := d.endDates[best.Choice]
	parsed, ok := ParseDate(endDate)
	if !ok {
		d.logger.WarnContext(ctx, "tournament end date unparseable",
			"tournament_id", best.Choice,
			"end_date", endDate,
		)
		return time.Time{}, false
	}
	return parsed, true
}

func isPlaceholderDate(raw string) bool {
	lower := strings.ToLower(raw)
	return strings.Contains(lower, "round") || strings.Contains(lower, "final")
}

// ParseDate tries the known site layouts, then a generic parser. The result
// is a UTC midnight.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range knownDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return dateOnly(t), true
		}
	}
	t, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return dateOnly(t), true
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
