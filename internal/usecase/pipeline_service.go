package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/riskibarqy/matchedge/internal/domain/match"
	"github.com/riskibarqy/matchedge/internal/domain/matchstats"
	"github.com/riskibarqy/matchedge/internal/domain/player"
	"github.com/riskibarqy/matchedge/internal/domain/rawdata"
	"github.com/riskibarqy/matchedge/internal/domain/tournament"
	"github.com/riskibarqy/matchedge/internal/domain/unified"
	"github.com/riskibarqy/matchedge/internal/platform/logging"
	"github.com/riskibarqy/matchedge/internal/reference"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"
)

const (
	LastScrapedMarkerKey = "logs/last_scraped_date.csv"

	rankingsKeyFormat    = "raw/top_players_%s.csv"
	tournamentsKeyFormat = "raw/All_Tournaments_%s.csv"
	resultsKeyFormat     = "raw/all_results_%s.csv"
	statisticsKeyFormat  = "raw/all_stats_GS_%s.csv"
)

// ArtifactStore persists the cleaned tables, the merged snapshot and the run
// report of one run.
type ArtifactStore interface {
	SaveRankings(ctx context.Context, players []player.Player) error
	SaveTournaments(ctx context.Context, fileDate string, tournaments []tournament.Tournament) error
	SaveResults(ctx context.Context, fileDate string, results []match.Result) error
	SaveStatistics(ctx context.Context, fileDate string, stats []matchstats.Statistics) error
	SaveMerged(ctx context.Context, fileDate string, records []unified.Record) error
	SaveReport(ctx context.Context, fileDate string, report RunReport) error
}

// Thresholds are the fuzzy-match cut-offs. Zero values use the defaults.
type Thresholds struct {
	Identity float64
	Surface  float64
	Date     float64
}

// RunReport summarizes one reconciliation run.
type RunReport struct {
	RunID       string           `json:"run_id"`
	FileDate    string           `json:"file_date"`
	StartedAt   time.Time        `json:"started_at"`
	FinishedAt  time.Time        `json:"finished_at"`
	Players     int              `json:"players"`
	Tournaments TournamentReport `json:"tournaments"`
	Results     ResultsReport    `json:"results"`
	Statistics  StatsReport      `json:"statistics"`
	Merge       MergeReport      `json:"merge"`
	Archive     ArchiveResult    `json:"archive"`
}

type PipelineService struct {
	source     rawdata.Source
	artifacts  ArtifactStore
	archive    *ArchiveService
	tables     *reference.Tables
	thresholds Thresholds
	logger     *logging.Logger
	now        func() time.Time
	newRunID   func() string
}

func NewPipelineService(
	source rawdata.Source,
	artifacts ArtifactStore,
	archive *ArchiveService,
	tables *reference.Tables,
	thresholds Thresholds,
	logger *logging.Logger,
) *PipelineService {
	if logger == nil {
		logger = logging.Default()
	}
	if tables == nil {
		tables = reference.Default()
	}
	return &PipelineService{
		source:     source,
		artifacts:  artifacts,
		archive:    archive,
		tables:     tables,
		thresholds: thresholds,
		logger:     logger,
		now:        time.Now,
		newRunID:   func() string { return uuid.NewString() },
	}
}

type rawSources struct {
	rankings    rawdata.Table
	tournaments rawdata.Table
	results     rawdata.Table
	statistics  rawdata.Table
}

// Run reconciles the snapshot named by the last-run marker and appends the
// merged batch to the archive.
func (s *PipelineService) Run(ctx context.Context) (report RunReport, err error) {
	report.RunID = s.newRunID()
	report.StartedAt = s.now().UTC()

	ctx, span := startUsecaseSpan(ctx, "usecase.PipelineService.Run", attribute.String("run_id", report.RunID))
	defer func() { endSpan(span, err) }()

	fileDate, err := s.LastScrapedDate(ctx)
	if err != nil {
		return report, err
	}
	report.FileDate = fileDate
	logger := s.logger.With("run_id", report.RunID, "file_date", fileDate)
	logger.InfoContext(ctx, "reconciliation run started")

	raw, err := s.loadSources(ctx, fileDate)
	if err != nil {
		return report, err
	}

	players := NormalizeRankings(raw.rankings)
	roster := player.NewRoster(players)
	report.Players = roster.Len()

	identities := NewIdentityResolver(roster, s.thresholds.Identity, logger)
	dates := NewDateReconciler(TournamentEndDates(raw.tournaments), s.thresholds.Date, logger)

	tournaments, tournamentReport := NewTournamentNormalizer(s.tables, s.thresholds.Surface, logger).Normalize(ctx, raw.tournaments)
	results, resultsReport := NewResultsNormalizer(s.tables, identities, dates).Normalize(ctx, raw.results)
	stats, statsReport := NormalizeStatistics(raw.statistics, roster)
	report.Tournaments = tournamentReport
	report.Results = resultsReport
	report.Statistics = statsReport

	if err := s.saveCleaned(ctx, fileDate, players, tournaments, results, stats); err != nil {
		return report, err
	}

	merged, mergeReport := NewMergeEngine(logger).Merge(ctx, results, tournaments, stats)
	report.Merge = mergeReport
	if err := s.artifacts.SaveMerged(ctx, fileDate, merged); err != nil {
		return report, fmt.Errorf("save merged snapshot: %w", err)
	}

	archiveResult, err := s.archive.Append(ctx, report.RunID, fileDate, merged)
	if err != nil {
		return report, err
	}
	report.Archive = archiveResult
	report.FinishedAt = s.now().UTC()

	if err := s.artifacts.SaveReport(ctx, fileDate, report); err != nil {
		logger.WarnContext(ctx, "run report not saved", "error", err)
	}
	logger.InfoContext(ctx, "reconciliation run finished",
		"players", report.Players,
		"results", report.Results.RowsOut,
		"statistics", report.Statistics.Rows,
		"merged", report.Merge.Merged,
		"swapped", report.Merge.Swapped,
		"unaligned", report.Merge.Unaligned,
		"archive_rows", report.Archive.RowsAfter,
		"duration_ms", report.FinishedAt.Sub(report.StartedAt).Milliseconds(),
	)
	return report, nil
}

// LastScrapedDate reads the file-date token from the last-run marker: a
// header row followed by one date row.
func (s *PipelineService) LastScrapedDate(ctx context.Context) (string, error) {
	table, err := s.source.LoadTable(ctx, LastScrapedMarkerKey)
	if err != nil {
		return "", fmt.Errorf("read last-run marker: %w", err)
	}
	if len(table.Columns) == 0 || table.Len() == 0 {
		return "", fmt.Errorf("%w: last-run marker %s is empty", ErrSourceNotFound, LastScrapedMarkerKey)
	}
	fileDate := table.Rows[0].Get(table.Columns[0])
	if _, ok := ParseDate(fileDate); !ok {
		return "", fmt.Errorf("%w: last-run marker holds %q, not a date", ErrSourceNotFound, fileDate)
	}
	return fileDate, nil
}

// PlanURLs returns the results pages the scraper should visit for the
// tournaments of the current snapshot.
func (s *PipelineService) PlanURLs(ctx context.Context) ([]string, error) {
	fileDate, err := s.LastScrapedDate(ctx)
	if err != nil {
		return nil, err
	}
	startDate, _ := ParseDate(fileDate)

	table, err := s.source.LoadTable(ctx, fmt.Sprintf(tournamentsKeyFormat, fileDate))
	if err != nil {
		return nil, fmt.Errorf("load tournaments: %w", err)
	}
	tournaments, _ := NewTournamentNormalizer(s.tables, s.thresholds.Surface, s.logger).Normalize(ctx, table)
	return PlanResultsURLs(tournaments, startDate), nil
}

func (s *PipelineService) loadSources(ctx context.Context, fileDate string) (rawSources, error) {
	var raw rawSources
	targets := []struct {
		key string
		dst *rawdata.Table
	}{
		{fmt.Sprintf(rankingsKeyFormat, fileDate), &raw.rankings},
		{fmt.Sprintf(tournamentsKeyFormat, fileDate), &raw.tournaments},
		{fmt.Sprintf(resultsKeyFormat, fileDate), &raw.results},
		{fmt.Sprintf(statisticsKeyFormat, fileDate), &raw.statistics},
	}

	p := pool.New().WithErrors().WithContext(ctx).WithCancelOnError()
	for _, target := range targets {
		target := target
		p.Go(func(ctx context.Context) error {
			table, err := s.source.LoadTable(ctx, target.key)
			if err != nil {
				return fmt.Errorf("load %s: %w", target.key, err)
			}
			*target.dst = table
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return rawSources{}, err
	}
	return raw, nil
}

func (s *PipelineService) saveCleaned(
	ctx context.Context,
	fileDate string,
	players []player.Player,
	tournaments []tournament.Tournament,
	results []match.Result,
	stats []matchstats.Statistics,
) error {
	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		return wrapSave("rankings", s.artifacts.SaveRankings(ctx, players))
	})
	p.Go(func(ctx context.Context) error {
		return wrapSave("tournaments", s.artifacts.SaveTournaments(ctx, fileDate, tournaments))
	})
	p.Go(func(ctx context.Context) error {
		return wrapSave("results", s.artifacts.SaveResults(ctx, fileDate, results))
	})
	p.Go(func(ctx context.Context) error {
		return wrapSave("statistics", s.artifacts.SaveStatistics(ctx, fileDate, stats))
	})
	return p.Wait()
}

func wrapSave(name string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("save cleaned %s: %w", name, err)
}
