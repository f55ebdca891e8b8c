package usecase

import (
	"context"
	"strings"

	"github.com/riskibarqy/matchedge/internal/domain/match"
	"github.com/riskibarqy/matchedge/internal/domain/rawdata"
	"github.com/riskibarqy/matchedge/internal/platform/textnorm"
	"github.com/riskibarqy/matchedge/internal/reference"
)

// ResultsReport counts what the results stages changed or could not resolve.
type ResultsReport struct {
	RowsIn             int `json:"rows_in"`
	RowsOut            int `json:"rows_out"`
	DroppedNoMatchID   int `json:"dropped_no_match_id"`
	DroppedNoScores    int `json:"dropped_no_scores"`
	UnresolvedDates    int `json:"unresolved_dates"`
	UnresolvedWinners  int `json:"unresolved_winners"`
	UnresolvedSlotIDs  int `json:"unresolved_slot_ids"`
	CorrectedNames     int `json:"corrected_names"`
	Walkovers          int `json:"walkovers"`
	Byes               int `json:"byes"`
	UnknownMatchRounds int `json:"unknown_match_rounds"`
}

// ResultsNormalizer runs the ordered results stages. It never fails on bad
// cells: unresolvable values become missing and the row is kept unless it
// lacks a match id or both score strings.
type ResultsNormalizer struct {
	tables     *reference.Tables
	identities *IdentityResolver
	dates      *DateReconciler
}

func NewResultsNormalizer(tables *reference.Tables, identities *IdentityResolver, dates *DateReconciler) *ResultsNormalizer {
	return &ResultsNormalizer{tables: tables, identities: identities, dates: dates}
}

func (n *ResultsNormalizer) Normalize(ctx context.Context, table rawdata.Table) ([]match.Result, ResultsReport) {
	table = table.LowerHeaders()
	rounds := n.tables.Rounds()

	report := ResultsReport{RowsIn: table.Len()}
	out := make([]match.Result, 0, table.Len())
	for _, row := range table.Rows {
		rawTournamentID := row.Get("tournament_id")
		r := match.Result{
			TournamentID:  parseIntCell(rawTournamentID),
			MatchID:       row.Get("match_id"),
			Player1:       row.Get("player_1"),
			P1ID:          firstValue(row, "p1_id", "player_1_id"),
			Player1Scores: row.Get("player_1_scores"),
			Player2:       row.Get("player_2"),
			P2ID:          firstValue(row, "p2_id", "player_2_id"),
			Player2Scores: row.Get("player_2_scores"),
			Winner:        row.Get("winner"),
			StatsLink:     row.Get("stats_link"),
		}
		if r.TournamentID != nil {
			rawTournamentID = formatInt64(*r.TournamentID)
		}

		if rawDate, ok := row.Value("match_date"); ok {
			if date, resolved := n.dates.Reconcile(ctx, rawDate, rawTournamentID); resolved {
				r.MatchDate = &date
			} else {
				report.UnresolvedDates++
			}
		} else {
			report.UnresolvedDates++
		}

		r.P1Sets = splitSetScores(r.Player1Scores)
		r.P2Sets = splitSetScores(r.Player2Scores)

		r.BestOf = 3
		if n.tables.IsFiveSet(rawTournamentID) {
			r.BestOf = 5
		}

		r.Player1 = textnorm.ShortName(r.Player1)
		r.Player2 = textnorm.ShortName(r.Player2)
		r.Winner = textnorm.ShortName(r.Winner)

		if r.Winner != "" {
			if res := n.identities.Resolve(ctx, r.Winner); res.Resolved() {
				r.WinnerID = res.ID
			}
		}

		p1Fix, p1Corrected := n.tables.Correction(r.Player1)
		p2Fix, p2Corrected := n.tables.Correction(r.Player2)
		if winnerFix, ok := n.tables.Correction(r.Winner); ok {
			r.Winner = winnerFix.Name
			if r.WinnerID == "" {
				r.WinnerID = winnerFix.ID
			}
			report.CorrectedNames++
		}
		if p1Corrected {
			r.Player1 = p1Fix.Name
			report.CorrectedNames++
		}
		if p2Corrected {
			r.Player2 = p2Fix.Name
			report.CorrectedNames++
		}
		if r.Winner != "" && r.WinnerID == "" {
			report.UnresolvedWinners++
		}

		r.Status = n.classifyStatus(row.Get("result"), r, row.Get("duration"))
		switch r.Status {
		case match.StatusBye:
			report.Byes++
		case match.StatusWalkover:
			report.Walkovers++
		}

		r.P1ID = n.backfillSlotID(r.Player1, r.P1ID, p1Fix, p1Corrected)
		r.P2ID = n.backfillSlotID(r.Player2, r.P2ID, p2Fix, p2Corrected)

		if r.MatchID == "" {
			report.DroppedNoMatchID++
			continue
		}
		if r.Player1Scores == "" && r.Player2Scores == "" {
			report.DroppedNoScores++
			continue
		}
		if r.P1ID == "" || r.P2ID == "" {
			report.UnresolvedSlotIDs++
		}

		r.Duration = normalizeDuration(row.Get("duration"))

		if rawRound, ok := row.Value("match_round"); ok {
			if round, known := rounds.Normalize(n.tables.CanonicalRound(rawRound)); known {
				r.MatchRound = round
			} else {
				report.UnknownMatchRounds++
			}
		}

		if r.MatchDate != nil {
			year := r.MatchDate.Year()
			r.Year = &year
		}

		r.P1ID = strings.ToLower(r.P1ID)
		r.P2ID = strings.ToLower(r.P2ID)
		r.WinnerID = strings.ToLower(r.WinnerID)

		out = append(out, r)
	}
	report.RowsOut = len(out)
	return out, report
}

// classifyStatus keeps a scraped status, then applies the Walkover rules and
// finally the Bye rule, so a Bye slot always wins.
func (n *ResultsNormalizer) classifyStatus(raw string, r match.Result, rawDuration string) match.Status {
	status := normalizeStatus(raw)

	bye := r.Player1 == n.tables.ByeSentinel || r.Player2 == n.tables.ByeSentinel
	noDuration := strings.TrimSpace(rawDuration) == ""
	noP1Score := r.Player1Scores == ""

	if (noDuration && noP1Score) || (noP1Score && !bye) {
		status = match.StatusWalkover
	}
	if bye {
		status = match.StatusBye
	}
	return status
}

// backfillSlotID prefers the id derived from the display name, then the
// scraped id, then the id supplied by a name correction.
func (n *ResultsNormalizer) backfillSlotID(name, scraped string, fix reference.NameCorrection, corrected bool) string {
	if id, ok := n.identities.ResolveByInitialLastName(name); ok {
		return id
	}
	if scraped != "" {
		return scraped
	}
	if corrected {
		return fix.ID
	}
	return ""
}

func normalizeStatus(raw string) match.Status {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	switch status := match.Status(raw); status {
	case match.StatusCompleted, match.StatusRetired, match.StatusWalkover, match.StatusDefault, match.StatusBye:
		return status
	}
	return match.ClassifyNote(raw)
}

// splitSetScores reads a whitespace-separated score line such as "7 6 3".
// Each token keeps its leading digit run, so tie-break notation is dropped.
func splitSetScores(raw string) match.SetScores {
	var values [match.MaxSets]*int
	for i, token := range strings.Fields(raw) {
		if i >= match.MaxSets {
			break
		}
		values[i] = firstDigitRun(token)
	}
	return match.NewSetScores(values)
}

func firstValue(row rawdata.Row, cols ...string) string {
	for _, col := range cols {
		if v, ok := row.Value(col); ok {
			return v
		}
	}
	return ""
}
