package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/matchedge/internal/domain/unified"
	"github.com/riskibarqy/matchedge/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

// ArchiveResult describes one append.
type ArchiveResult struct {
	RowsBefore   int  `json:"rows_before"`
	RowsAppended int  `json:"rows_appended"`
	RowsAfter    int  `json:"rows_after"`
	BackedUp     bool `json:"backed_up"`
	Mirrored     bool `json:"mirrored"`
}

// ArchiveService appends unified batches to the cross-run archive. The
// archive is backed up before every write and never deduplicated.
type ArchiveService struct {
	archive unified.Archive
	mirror  unified.Mirror
	logger  *logging.Logger
}

// NewArchiveService builds the service. mirror may be nil.
func NewArchiveService(archive unified.Archive, mirror unified.Mirror, logger *logging.Logger) *ArchiveService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ArchiveService{archive: archive, mirror: mirror, logger: logger}
}

func (s *ArchiveService) Append(ctx context.Context, runID, fileDate string, batch []unified.Record) (result ArchiveResult, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ArchiveService.Append",
		attribute.String("file_date", fileDate),
		attribute.Int("batch_rows", len(batch)),
	)
	defer func() { endSpan(span, err) }()

	fileDate = strings.TrimSpace(fileDate)
	if fileDate == "" {
		return ArchiveResult{}, fmt.Errorf("%w: file date is required", ErrInvalidInput)
	}

	existing, found, err := s.archive.Load(ctx)
	if err != nil {
		return ArchiveResult{}, fmt.Errorf("load archive: %w", err)
	}
	result.RowsBefore = len(existing)

	if found {
		if err := s.archive.Backup(ctx, fileDate, existing); err != nil {
			return ArchiveResult{}, fmt.Errorf("backup archive: %w", err)
		}
		result.BackedUp = true
	} else {
		s.logger.WarnContext(ctx, "archive not found, starting a new one", "file_date", fileDate)
	}

	combined := make([]unified.Record, 0, len(existing)+len(batch))
	combined = append(combined, existing...)
	combined = append(combined, batch...)
	if err := s.archive.Save(ctx, combined); err != nil {
		return ArchiveResult{}, fmt.Errorf("save archive: %w", err)
	}
	result.RowsAppended = len(batch)
	result.RowsAfter = len(combined)

	if s.mirror != nil && len(batch) > 0 {
		if err := s.mirror.AppendBatch(ctx, runID, batch); err != nil {
			s.logger.WarnContext(ctx, "archive mirror append failed", "run_id", runID, "error", err)
		} else {
			result.Mirrored = true
		}
	}

	s.logger.InfoContext(ctx, "archive appended",
		"file_date", fileDate,
		"rows_before", result.RowsBefore,
		"rows_appended", result.RowsAppended,
		"rows_after", result.RowsAfter,
	)
	return result, nil
}
