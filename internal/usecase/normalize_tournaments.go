package usecase

import (
	"context"
	"strings"

	"github.com/riskibarqy/matchedge/internal/domain/rawdata"
	"github.com/riskibarqy/matchedge/internal/domain/tournament"
	"github.com/riskibarqy/matchedge/internal/platform/fuzzy"
	"github.com/riskibarqy/matchedge/internal/platform/logging"
	"github.com/riskibarqy/matchedge/internal/platform/textnorm"
	"github.com/riskibarqy/matchedge/internal/reference"
)

// DefaultSurfaceThreshold is the score a fuzzy surface-table match must beat.
const DefaultSurfaceThreshold = 75.0

type TournamentNormalizer struct {
	tables    *reference.Tables
	threshold float64
	logger    *logging.Logger
}

func NewTournamentNormalizer(tables *reference.Tables, threshold float64, logger *logging.Logger) *TournamentNormalizer {
	if logger == nil {
		logger = logging.Default()
	}
	if threshold <= 0 {
		threshold = DefaultSurfaceThreshold
	}
	return &TournamentNormalizer{tables: tables, threshold: threshold, logger: logger}
}

// TournamentReport counts rows that lost a value during normalization.
type TournamentReport struct {
	Rows               int `json:"rows"`
	UnresolvedSurfaces int `json:"unresolved_surfaces"`
	UnknownLevels      int `json:"unknown_levels"`
	UnparsedEndDates   int `json:"unparsed_end_dates"`
}

// Normalize types the tournaments source. A surface column, when present, is
// trusted; otherwise surfaces come from the reference table by fuzzy name.
func (n *TournamentNormalizer) Normalize(ctx context.Context, table rawdata.Table) ([]tournament.Tournament, TournamentReport) {
	table = table.LowerHeaders()
	scrapedSurface := table.Has("surface")
	levels := n.tables.Levels()
	surfaceNames := n.tables.SurfaceNames()

	report := TournamentReport{Rows: table.Len()}
	out := make([]tournament.Tournament, 0, table.Len())
	for _, row := range table.Rows {
		t := tournament.Tournament{
			ID:       parseIntCell(row.Get("id")),
			Name:     row.Get("name"),
			Location: row.Get("location"),
			URL:      row.Get("url"),
		}

		if scrapedSurface {
			t.Surface = textnorm.Lower(row.Get("surface"))
		} else {
			t.Surface = n.lookupSurface(ctx, t.Name, surfaceNames)
		}
		if t.Surface == "" {
			report.UnresolvedSurfaces++
		}

		if rawLevel, ok := row.Value("level"); ok {
			if level, known := levels.Normalize(rawLevel); known {
				t.Level = level
			} else {
				report.UnknownLevels++
				n.logger.DebugContext(ctx, "tournament level outside known order", "name", t.Name, "level", rawLevel)
			}
		}

		if rawEnd, ok := row.Value("end_date"); ok {
			if end, parsed := ParseDate(rawEnd); parsed {
				year := end.Year()
				t.EndDate = &end
				t.Year = &year
			} else {
				report.UnparsedEndDates++
			}
		}

		out = append(out, t)
	}
	return out, report
}

func (n *TournamentNormalizer) lookupSurface(ctx context.Context, name string, surfaceNames []string) string {
	if strings.TrimSpace(name) == "" {
		n.logger.WarnContext(ctx, "tournament surface unresolved", "name", name, "reason", "empty name")
		return ""
	}
	best, ok := fuzzy.ExtractOne(name, surfaceNames, fuzzy.WRatio)
	if !ok || best.Score <= n.threshold {
		n.logger.WarnContext(ctx, "tournament surface unresolved",
			"name", name,
			"best_candidate", best.Choice,
			"score", best.Score,
		)
		return ""
	}
	return textnorm.Lower(n.tables.Surfaces[best.Index].Surface)
}

// TournamentEndDates extracts raw (id, end_date) pairs in source order for
// the date reconciler.
func TournamentEndDates(table rawdata.Table) []TournamentEndDate {
	table = table.LowerHeaders()
	out := make([]TournamentEndDate, 0, table.Len())
	for _, row := range table.Rows {
		id, ok := row.Value("id")
		if !ok {
			continue
		}
		if parsed := parseIntCell(id); parsed != nil {
			id = formatInt64(*parsed)
		}
		out = append(out, TournamentEndDate{TournamentID: id, EndDate: row.Get("end_date")})
	}
	return out
}
