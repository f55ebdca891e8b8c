package unified

import "context"

// Archive is the persisted cross-run history of unified records.
// It assumes a single writer.
type Archive interface {
	// Load returns the archived rows in order. found is false when no archive
	// has been written yet.
	Load(ctx context.Context) (records []Record, found bool, err error)
	// Backup writes a dated copy of records that later runs never overwrite.
	Backup(ctx context.Context, fileDate string, records []Record) error
	// Save replaces the archive with records.
	Save(ctx context.Context, records []Record) error
}

// Mirror receives each appended batch, e.g. a queryable database copy.
type Mirror interface {
	AppendBatch(ctx context.Context, runID string, records []Record) error
	Count(ctx context.Context) (int, error)
}
