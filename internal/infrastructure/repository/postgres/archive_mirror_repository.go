package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/matchedge/internal/domain/unified"
	qb "github.com/riskibarqy/matchedge/internal/platform/querybuilder"
)

// Rows per INSERT statement. 26 columns keep this well under the 65535
// bind-parameter limit.
const insertChunkSize = 500

// ArchiveMirrorRepository copies each archived batch into Postgres so the
// history can be queried with SQL.
type ArchiveMirrorRepository struct {
	db *sqlx.DB
}

var _ unified.Mirror = (*ArchiveMirrorRepository)(nil)

func NewArchiveMirrorRepository(db *sqlx.DB) *ArchiveMirrorRepository {
	return &ArchiveMirrorRepository{db: db}
}

func (r *ArchiveMirrorRepository) AppendBatch(ctx context.Context, runID string, records []unified.Record) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx append unified matches: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, chunk := range buildInsertChunks(runID, records, insertChunkSize) {
		query, args, err := qb.InsertModels(archiveTable, chunk, "ON CONFLICT (run_id, batch_position) DO NOTHING")
		if err != nil {
			return fmt.Errorf("build insert unified matches query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert unified matches run_id=%s: %w", runID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit append unified matches tx: %w", err)
	}
	return nil
}

func (r *ArchiveMirrorRepository) Count(ctx context.Context) (int, error) {
	query, args, err := qb.Select("COUNT(1)").From(archiveTable).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count unified matches query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count unified matches: %w", err)
	}
	return count, nil
}

// CountByRun returns how many rows a single run appended.
func (r *ArchiveMirrorRepository) CountByRun(ctx context.Context, runID string) (int, error) {
	query, args, err := qb.Select("COUNT(1)").From(archiveTable).Where(qb.Eq("run_id", runID)).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count unified matches by run query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count unified matches run_id=%s: %w", runID, err)
	}
	return count, nil
}

func buildInsertChunks(runID string, records []unified.Record, size int) [][]unifiedMatchInsertModel {
	if size <= 0 {
		size = insertChunkSize
	}
	chunks := make([][]unifiedMatchInsertModel, 0, (len(records)+size-1)/size)
	for start := 0; start < len(records); start += size {
		end := min(start+size, len(records))
		chunk := make([]unifiedMatchInsertModel, 0, end-start)
		for i := start; i < end; i++ {
			chunk = append(chunk, toUnifiedMatchInsertModel(runID, i, records[i]))
		}
		chunks = append(chunks, chunk)
	}
	return chunks
}
