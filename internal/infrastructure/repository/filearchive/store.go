// Package filearchive persists run artifacts and the cross-run archive as
// paired CSV and Parquet objects in a bucket.
package filearchive

import (
	"context"
	"fmt"
	"sync"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/matchedge/internal/domain/match"
	"github.com/riskibarqy/matchedge/internal/domain/matchstats"
	"github.com/riskibarqy/matchedge/internal/domain/player"
	"github.com/riskibarqy/matchedge/internal/domain/tournament"
	"github.com/riskibarqy/matchedge/internal/domain/unified"
	"github.com/riskibarqy/matchedge/internal/infrastructure/codec/csvtable"
	"github.com/riskibarqy/matchedge/internal/infrastructure/codec/parquettable"
	"github.com/riskibarqy/matchedge/internal/infrastructure/storage"
	"github.com/riskibarqy/matchedge/internal/platform/logging"
	"github.com/riskibarqy/matchedge/internal/usecase"
)

const (
	rankingsBase    = "clean/top_players"
	tournamentsBase = "clean/all_tournaments_%s"
	resultsBase     = "clean/all_results_%s"
	statisticsBase  = "clean/all_stats_%s"
	mergedBase      = "clean/merged_matches_%s"
	backupBase      = "clean/merged_matches_%s_backup"
	archiveBase     = "clean/merged_matches"
	reportKey       = "logs/run_report_%s.json"

	defaultWorkers = 4
)

// Store writes every table twice, as CSV and as Parquet, encoding and
// uploading both formats on a shared worker pool.
type Store struct {
	bucket storage.Bucket
	pool   *ants.Pool
	logger *logging.Logger
}

var (
	_ usecase.ArtifactStore = (*Store)(nil)
	_ unified.Archive       = (*Store)(nil)
)

func New(bucket storage.Bucket, workers int, logger *logging.Logger) (*Store, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if workers <= 0 {
		workers = defaultWorkers
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create write pool: %w", err)
	}
	return &Store{bucket: bucket, pool: pool, logger: logger}, nil
}

// Close releases the worker pool.
func (s *Store) Close() {
	s.pool.Release()
}

func (s *Store) SaveRankings(ctx context.Context, players []player.Player) error {
	return writeTable(ctx, s, rankingsBase, players)
}

func (s *Store) SaveTournaments(ctx context.Context, fileDate string, tournaments []tournament.Tournament) error {
	return writeTable(ctx, s, fmt.Sprintf(tournamentsBase, fileDate), tournaments)
}

func (s *Store) SaveResults(ctx context.Context, fileDate string, results []match.Result) error {
	return writeTable(ctx, s, fmt.Sprintf(resultsBase, fileDate), results)
}

func (s *Store) SaveStatistics(ctx context.Context, fileDate string, stats []matchstats.Statistics) error {
	return writeTable(ctx, s, fmt.Sprintf(statisticsBase, fileDate), stats)
}

func (s *Store) SaveMerged(ctx context.Context, fileDate string, records []unified.Record) error {
	return writeTable(ctx, s, fmt.Sprintf(mergedBase, fileDate), records)
}

func (s *Store) SaveReport(ctx context.Context, fileDate string, report usecase.RunReport) error {
	data, err := sonic.ConfigStd.MarshalIndent(report, "", "  ")
	if err != nil {
		return crerr.Wrap(err, "encode run report")
	}
	return s.bucket.Put(ctx, fmt.Sprintf(reportKey, fileDate), data)
}

// Load reads the archive from its Parquet copy, falling back to the CSV copy
// when only that one exists.
func (s *Store) Load(ctx context.Context) ([]unified.Record, bool, error) {
	data, err := s.bucket.Get(ctx, archiveBase+".parquet")
	if err == nil {
		records, err := parquettable.Unmarshal[unified.Record](data)
		if err != nil {
			return nil, false, crerr.Wrapf(err, "decode %s.parquet", archiveBase)
		}
		return records, true, nil
	}
	if !storage.IsNotFound(err) {
		return nil, false, err
	}

	data, err = s.bucket.Get(ctx, archiveBase+".csv")
	if storage.IsNotFound(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	s.logger.WarnContext(ctx, "archive parquet copy missing, loading csv copy", "key", archiveBase+".csv")
	records, err := csvtable.Unmarshal[unified.Record](data)
	if err != nil {
		return nil, false, crerr.Wrapf(err, "decode %s.csv", archiveBase)
	}
	return records, true, nil
}

func (s *Store) Backup(ctx context.Context, fileDate string, records []unified.Record) error {
	return writeTable(ctx, s, fmt.Sprintf(backupBase, fileDate), records)
}

func (s *Store) Save(ctx context.Context, records []unified.Record) error {
	return writeTable(ctx, s, archiveBase, records)
}

type encoder[T any] struct {
	ext    string
	encode func([]T) ([]byte, error)
}

// writeTable stores rows under base+".csv" and base+".parquet".
func writeTable[T any](ctx context.Context, s *Store, base string, rows []T) error {
	encoders := []encoder[T]{
		{ext: ".csv", encode: csvtable.Marshal[T]},
		{ext: ".parquet", encode: parquettable.Marshal[T]},
	}

	var (
		mu   sync.Mutex
		errs error
		wg   sync.WaitGroup
	)
	for _, enc := range encoders {
		enc := enc
		key := base + enc.ext
		wg.Add(1)
		if err := s.pool.Submit(func() {
			defer wg.Done()
			err := putEncoded(ctx, s.bucket, key, rows, enc.encode)
			if err != nil {
				mu.Lock()
				errs = crerr.CombineErrors(errs, err)
				mu.Unlock()
			}
		}); err != nil {
			wg.Done()
			wg.Wait()
			return fmt.Errorf("submit write of %s: %w", key, err)
		}
	}
	wg.Wait()
	if errs != nil {
		return errs
	}

	s.logger.DebugContext(ctx, "table written", "key", base, "rows", len(rows))
	return nil
}

func putEncoded[T any](ctx context.Context, bucket storage.Bucket, key string, rows []T, encode func([]T) ([]byte, error)) error {
	data, err := encode(rows)
	if err != nil {
		return crerr.Wrapf(err, "encode %s", key)
	}
	if err := bucket.Put(ctx, key, data); err != nil {
		return crerr.Wrapf(err, "put %s", key)
	}
	return nil
}
