package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/matchedge/internal/domain/match"
	"github.com/riskibarqy/matchedge/internal/domain/matchstats"
	"github.com/riskibarqy/matchedge/internal/domain/player"
	"github.com/riskibarqy/matchedge/internal/domain/rawdata"
	"github.com/riskibarqy/matchedge/internal/domain/tournament"
	"github.com/riskibarqy/matchedge/internal/domain/unified"
	rawdatamock "github.com/riskibarqy/matchedge/internal/mocks/domain/rawdata"
	"github.com/riskibarqy/matchedge/internal/reference"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type recordingArtifacts struct {
	mu          sync.Mutex
	players     []player.Player
	tournaments []tournament.Tournament
	results     []match.Result
	stats       []matchstats.Statistics
	merged      []unified.Record
	report      *RunReport
}

func (a *recordingArtifacts) SaveRankings(_ context.Context, players []player.Player) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.players = players
	return nil
}

func (a *recordingArtifacts) SaveTournaments(_ context.Context, _ string, tournaments []tournament.Tournament) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.tournaments = tournaments
	return nil
}

func (a *recordingArtifacts) SaveResults(_ context.Context, _ string, results []match.Result) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.results = results
	return nil
}

func (a *recordingArtifacts) SaveStatistics(_ context.Context, _ string, stats []matchstats.Statistics) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stats = stats
	return nil
}

func (a *recordingArtifacts) SaveMerged(_ context.Context, _ string, records []unified.Record) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.merged = records
	return nil
}

func (a *recordingArtifacts) SaveReport(_ context.Context, _ string, report RunReport) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.report = &report
	return nil
}

func markerTable(value string) rawdata.Table {
	return table([]string{"last_scraped_date"}, []string{value})
}

func pipelineSources(fileDate string) map[string]rawdata.Table {
	statsCols := []string{"match_id", "tournament_id", "player_1", "player_2", "p1_id", "p2_id", "p1_first_serve", "p2_first_serve"}
	return map[string]rawdata.Table{
		LastScrapedMarkerKey: markerTable(fileDate),
		fmt.Sprintf(rankingsKeyFormat, fileDate): table([]string{"rank", "name", "id"},
			[]string{"1", "J. Sinner", "S0AG"},
			[]string{"2", "C. Alcaraz", "A0E2"},
		),
		fmt.Sprintf(tournamentsKeyFormat, fileDate): table([]string{"id", "name", "level", "location", "end_date", "url"},
			[]string{"580", "Australian Open", "Grand Slam", "Melbourne", "15-09-2024", "https://www.atptour.com/en/tournaments/australian-open/580/overview"},
		),
		fmt.Sprintf(resultsKeyFormat, fileDate): table(resultColumns,
			[]string{"Final", "Jannik Sinner", "Carlos Alcaraz", "3:10", "Final", "6 6 6", "4 4 4", "Jannik Sinner", "", "ms001", "580"},
		),
		fmt.Sprintf(statisticsKeyFormat, fileDate): table(statsCols,
			[]string{"ms001", "580", "", "", "a0e2", "s0ag", "30/50", "40/60"},
		),
	}
}

func newPipelineSource(t *testing.T, tables map[string]rawdata.Table) *rawdatamock.Source {
	source := rawdatamock.NewSource(t)
	for key, tbl := range tables {
		source.On("LoadTable", mock.Anything, key).Return(tbl, nil).Maybe()
	}
	return source
}

func TestPipelineService_Run(t *testing.T) {
	t.Parallel()

	fileDate := "2024-09-01"
	artifacts := &recordingArtifacts{}
	archive := &memoryArchive{records: records("old"), found: true}

	svc := NewPipelineService(
		newPipelineSource(t, pipelineSources(fileDate)),
		artifacts,
		NewArchiveService(archive, nil, nopLogger()),
		reference.Default(),
		Thresholds{},
		nopLogger(),
	)
	svc.newRunID = func() string { return "run-1" }
	svc.now = func() time.Time { return time.Date(2024, 9, 2, 8, 0, 0, 0, time.UTC) }

	report, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "run-1", report.RunID)
	assert.Equal(t, fileDate, report.FileDate)
	assert.Equal(t, 2, report.Players)
	assert.Equal(t, 1, report.Merge.Swapped)
	assert.Equal(t, 1, report.Merge.Merged)
	assert.Equal(t, ArchiveResult{RowsBefore: 1, RowsAppended: 1, RowsAfter: 2, BackedUp: true}, report.Archive)

	require.Len(t, artifacts.merged, 1)
	rec := artifacts.merged[0]
	assert.Equal(t, "a0e2", rec.Result.P1ID)
	assert.Equal(t, "C. Alcaraz", rec.Result.Player1)
	assert.Equal(t, "s0ag", rec.Result.WinnerID)
	assert.Equal(t, "hard", rec.Surface)
	assert.Equal(t, "Grand Slam", rec.Level)
	assert.Equal(t, floatPtr(0.6), rec.P1.FirstServe)
	assert.Equal(t, datePtr(2024, 9, 15), rec.Result.MatchDate)

	assert.Len(t, artifacts.players, 2)
	assert.Len(t, artifacts.tournaments, 1)
	assert.Len(t, artifacts.results, 1)
	assert.Len(t, artifacts.stats, 1)
	require.NotNil(t, artifacts.report)
	assert.Equal(t, "run-1", artifacts.report.RunID)

	assert.Equal(t, []string{"old", "ms001"}, matchIDs(archive.records))
}

func TestPipelineService_Run_MissingMarkerIsFatal(t *testing.T) {
	t.Parallel()

	source := rawdatamock.NewSource(t)
	source.On("LoadTable", mock.Anything, LastScrapedMarkerKey).
		Return(rawdata.Table{}, fmt.Errorf("%w: %s", ErrSourceNotFound, LastScrapedMarkerKey)).
		Once()

	svc := NewPipelineService(source, &recordingArtifacts{}, NewArchiveService(&memoryArchive{}, nil, nopLogger()), nil, Thresholds{}, nopLogger())
	_, err := svc.Run(context.Background())
	require.ErrorIs(t, err, ErrSourceNotFound)
}

func TestPipelineService_Run_MissingSnapshotIsFatal(t *testing.T) {
	t.Parallel()

	fileDate := "2024-09-01"
	tables := pipelineSources(fileDate)
	missing := fmt.Sprintf(statisticsKeyFormat, fileDate)
	delete(tables, missing)

	source := newPipelineSource(t, tables)
	source.On("LoadTable", mock.Anything, missing).
		Return(rawdata.Table{}, fmt.Errorf("%w: %s", ErrSourceNotFound, missing)).
		Once()

	artifacts := &recordingArtifacts{}
	archive := &memoryArchive{records: records("old"), found: true}
	svc := NewPipelineService(source, artifacts, NewArchiveService(archive, nil, nopLogger()), nil, Thresholds{}, nopLogger())

	_, err := svc.Run(context.Background())
	require.ErrorIs(t, err, ErrSourceNotFound)
	assert.Nil(t, artifacts.merged)
	assert.Equal(t, []string{"old"}, matchIDs(archive.records))
}

func TestPipelineService_LastScrapedDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		marker  rawdata.Table
		want    string
		wantErr bool
	}{
		{name: "date row", marker: markerTable("2025-08-06"), want: "2025-08-06"},
		{name: "header only", marker: rawdata.Table{Columns: []string{"last_scraped_date"}}, wantErr: true},
		{name: "not a date", marker: markerTable("soon"), wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			source := rawdatamock.NewSource(t)
			source.On("LoadTable", mock.Anything, LastScrapedMarkerKey).Return(tc.marker, nil).Once()
			svc := NewPipelineService(source, nil, nil, nil, Thresholds{}, nopLogger())

			got, err := svc.LastScrapedDate(context.Background())
			if tc.wantErr {
				require.ErrorIs(t, err, ErrSourceNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPipelineService_PlanURLs(t *testing.T) {
	t.Parallel()

	fileDate := "2024-09-01"
	tables := pipelineSources(fileDate)
	source := rawdatamock.NewSource(t)
	source.On("LoadTable", mock.Anything, LastScrapedMarkerKey).Return(tables[LastScrapedMarkerKey], nil).Once()
	key := fmt.Sprintf(tournamentsKeyFormat, fileDate)
	source.On("LoadTable", mock.Anything, key).Return(tables[key], nil).Once()

	svc := NewPipelineService(source, nil, nil, nil, Thresholds{}, nopLogger())
	got, err := svc.PlanURLs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"https://www.atptour.com/en/scores/archive/australian-open/580/2024/results"}, got)
}
