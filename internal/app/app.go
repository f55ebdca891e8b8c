package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/matchedge/internal/config"
	"github.com/riskibarqy/matchedge/internal/domain/unified"
	"github.com/riskibarqy/matchedge/internal/infrastructure/repository/filearchive"
	"github.com/riskibarqy/matchedge/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/matchedge/internal/infrastructure/storage"
	"github.com/riskibarqy/matchedge/internal/infrastructure/storage/httpbucket"
	"github.com/riskibarqy/matchedge/internal/infrastructure/storage/localfs"
	"github.com/riskibarqy/matchedge/internal/platform/logging"
	"github.com/riskibarqy/matchedge/internal/platform/resilience"
	"github.com/riskibarqy/matchedge/internal/reference"
	"github.com/riskibarqy/matchedge/internal/usecase"
)

// Pipeline is the wired reconciliation pipeline and the resources it owns.
type Pipeline struct {
	Service *usecase.PipelineService

	store  *filearchive.Store
	db     *sqlx.DB
	logger *logging.Logger
}

func NewPipeline(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = logging.Default()
	}

	tables := reference.Default()
	if cfg.ReferenceTablesPath != "" {
		loaded, err := reference.LoadFile(cfg.ReferenceTablesPath)
		if err != nil {
			return nil, fmt.Errorf("load reference tables: %w", err)
		}
		tables = loaded
	}

	local := localfs.New(cfg.DataDir)
	rawBucket, err := newRawBucket(cfg, local, logger)
	if err != nil {
		return nil, err
	}

	store, err := filearchive.New(local, cfg.WriteWorkers, logger.Named("artifacts"))
	if err != nil {
		return nil, err
	}

	p := &Pipeline{store: store, logger: logger}

	var mirror unified.Mirror
	if cfg.ArchiveDBEnabled {
		db, err := openDB(ctx, cfg)
		if err != nil {
			p.Close()
			return nil, err
		}
		p.db = db
		mirror = postgres.NewArchiveMirrorRepository(db)
	}

	archive := usecase.NewArchiveService(store, mirror, logger.Named("archive"))
	p.Service = usecase.NewPipelineService(
		storage.NewTableSource(rawBucket, logger.Named("source")),
		store,
		archive,
		tables,
		usecase.Thresholds{
			Identity: cfg.IdentityFuzzyThreshold,
			Surface:  cfg.SurfaceFuzzyThreshold,
			Date:     cfg.DateFuzzyThreshold,
		},
		logger.Named("pipeline"),
	)

	logger.Info("pipeline wired",
		"data_dir", cfg.DataDir,
		"remote_source", cfg.SourceBaseURL != "",
		"archive_db", cfg.ArchiveDBEnabled,
	)
	return p, nil
}

// Close releases the write pool and the database handle.
func (p *Pipeline) Close() {
	if p.store != nil {
		p.store.Close()
	}
	if p.db != nil {
		if err := p.db.Close(); err != nil {
			p.logger.Warn("close database", "error", err)
		}
	}
}

// newRawBucket reads scraped inputs from the remote bucket when one is
// configured and from the data directory otherwise.
func newRawBucket(cfg config.Config, local *localfs.Bucket, logger *logging.Logger) (storage.Bucket, error) {
	if cfg.SourceBaseURL == "" {
		return local, nil
	}
	remote, err := httpbucket.New(httpbucket.Config{
		BaseURL:    cfg.SourceBaseURL,
		Token:      cfg.SourceToken,
		Timeout:    cfg.SourceTimeout,
		MaxRetries: cfg.SourceMaxRetries,
		Logger:     logger.Named("httpbucket"),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.SourceCircuit.Enabled,
			FailureThreshold: cfg.SourceCircuit.FailureCount,
			OpenTimeout:      cfg.SourceCircuit.OpenTimeout,
			HalfOpenMaxReq:   cfg.SourceCircuit.HalfOpenMaxReq,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("build remote source bucket: %w", err)
	}
	return remote, nil
}
