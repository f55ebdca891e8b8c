package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/riskibarqy/matchedge/internal/config"
	"github.com/riskibarqy/matchedge/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, key, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(key))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func seedSnapshot(t *testing.T, dir string) {
	t.Helper()
	writeFile(t, dir, "logs/last_scraped_date.csv", "last_scraped_date\n2024-09-01\n")
	writeFile(t, dir, "raw/top_players_2024-09-01.csv", "rank,name,id\n1,J. Sinner,S0AG\n2,C. Alcaraz,A0E2\n")
	writeFile(t, dir, "raw/All_Tournaments_2024-09-01.csv",
		"id,name,level,location,end_date,url\n"+
			"580,Australian Open,Grand Slam,Melbourne,15-09-2024,https://www.atptour.com/en/tournaments/australian-open/580/overview\n")
	writeFile(t, dir, "raw/all_results_2024-09-01.csv",
		"match_date,player_1,player_2,duration,match_round,player_1_scores,player_2_scores,winner,result,match_id,tournament_id\n"+
			"Final,Jannik Sinner,Carlos Alcaraz,3:10,Final,6 6 6,4 4 4,Jannik Sinner,,ms001,580\n")
	writeFile(t, dir, "raw/all_stats_GS_2024-09-01.csv",
		"match_id,tournament_id,player_1,player_2,p1_id,p2_id,p1_first_serve,p2_first_serve\n"+
			"ms001,580,,,a0e2,s0ag,30/50,40/60\n")
}

func TestPipelineEndToEndOnLocalData(t *testing.T) {
	dir := t.TempDir()
	seedSnapshot(t, dir)

	cfg := config.Config{
		DataDir:                dir,
		WriteWorkers:           2,
		IdentityFuzzyThreshold: 70,
		SurfaceFuzzyThreshold:  75,
		DateFuzzyThreshold:     95,
	}
	p, err := NewPipeline(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	defer p.Close()

	report, err := p.Service.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2024-09-01", report.FileDate)
	assert.Equal(t, 1, report.Merge.Merged)
	assert.Equal(t, 1, report.Merge.Swapped)
	assert.False(t, report.Archive.BackedUp)
	assert.Equal(t, 1, report.Archive.RowsAfter)

	for _, key := range []string{
		"clean/top_players.csv",
		"clean/all_tournaments_2024-09-01.parquet",
		"clean/all_results_2024-09-01.csv",
		"clean/all_stats_2024-09-01.csv",
		"clean/merged_matches_2024-09-01.csv",
		"clean/merged_matches.parquet",
		"logs/run_report_2024-09-01.json",
	} {
		_, err := os.Stat(filepath.Join(dir, filepath.FromSlash(key)))
		assert.NoError(t, err, key)
	}

	second, err := p.Service.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, second.Archive.BackedUp)
	assert.Equal(t, 2, second.Archive.RowsAfter)

	_, err = os.Stat(filepath.Join(dir, "clean", "merged_matches_2024-09-01_backup.csv"))
	assert.NoError(t, err)
}

func TestNewPipelineRejectsMissingReferenceFile(t *testing.T) {
	cfg := config.Config{DataDir: t.TempDir(), ReferenceTablesPath: filepath.Join(t.TempDir(), "missing.yaml")}
	_, err := NewPipeline(context.Background(), cfg, logging.NewNop())
	require.Error(t, err)
}

func TestScheduleRejectsInvalidSpec(t *testing.T) {
	cfg := config.Config{DataDir: t.TempDir()}
	p, err := NewPipeline(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	defer p.Close()

	require.Error(t, p.Schedule(context.Background(), "not a schedule"))
}

func TestScheduleStopsOnCancel(t *testing.T) {
	cfg := config.Config{DataDir: t.TempDir()}
	p, err := NewPipeline(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, p.Schedule(ctx, "0 6 * * 1"))
}
