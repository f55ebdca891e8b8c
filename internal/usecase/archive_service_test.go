package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/matchedge/internal/domain/unified"
	unifiedmock "github.com/riskibarqy/matchedge/internal/mocks/domain/unified"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type memoryArchive struct {
	records []unified.Record
	found   bool
	backups map[string][]unified.Record
}

func (a *memoryArchive) Load(_ context.Context) ([]unified.Record, bool, error) {
	return append([]unified.Record(nil), a.records...), a.found, nil
}

func (a *memoryArchive) Backup(_ context.Context, fileDate string, records []unified.Record) error {
	if a.backups == nil {
		a.backups = map[string][]unified.Record{}
	}
	a.backups[fileDate] = append([]unified.Record(nil), records...)
	return nil
}

func (a *memoryArchive) Save(_ context.Context, records []unified.Record) error {
	a.records = append([]unified.Record(nil), records...)
	a.found = true
	return nil
}

func records(matchIDs ...string) []unified.Record {
	out := make([]unified.Record, 0, len(matchIDs))
	for _, id := range matchIDs {
		rec := unified.Record{}
		rec.Result.MatchID = id
		out = append(out, rec)
	}
	return out
}

func matchIDs(recs []unified.Record) []string {
	out := make([]string, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.Result.MatchID)
	}
	return out
}

func TestArchiveService_AppendIsOrderPreserving(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	stepwise := &memoryArchive{records: records("old1", "old2"), found: true}
	svc := NewArchiveService(stepwise, nil, nopLogger())

	_, err := svc.Append(ctx, "run-a", "2025-01-01", records("a1", "a2"))
	require.NoError(t, err)
	_, err = svc.Append(ctx, "run-b", "2025-01-08", records("b1", "a1"))
	require.NoError(t, err)

	once := &memoryArchive{records: records("old1", "old2"), found: true}
	_, err = NewArchiveService(once, nil, nopLogger()).Append(ctx, "run-ab", "2025-01-08", append(records("a1", "a2"), records("b1", "a1")...))
	require.NoError(t, err)

	assert.Equal(t, []string{"old1", "old2", "a1", "a2", "b1", "a1"}, matchIDs(stepwise.records))
	assert.Equal(t, matchIDs(once.records), matchIDs(stepwise.records))
	assert.Equal(t, []string{"old1", "old2"}, matchIDs(stepwise.backups["2025-01-01"]))
	assert.Equal(t, []string{"old1", "old2", "a1", "a2"}, matchIDs(stepwise.backups["2025-01-08"]))
}

func TestArchiveService_FirstRunSkipsBackup(t *testing.T) {
	t.Parallel()

	archive := &memoryArchive{}
	got, err := NewArchiveService(archive, nil, nopLogger()).Append(context.Background(), "run", "2025-01-01", records("m1"))
	require.NoError(t, err)

	assert.False(t, got.BackedUp)
	assert.Equal(t, ArchiveResult{RowsAppended: 1, RowsAfter: 1}, got)
	assert.Empty(t, archive.backups)
}

func TestArchiveService_BackupFailureStopsBeforeSave(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	archive := unifiedmock.NewArchive(t)
	archive.On("Load", ctx).Return(records("old"), true, nil).Once()
	archive.On("Backup", ctx, "2025-01-01", records("old")).Return(errors.New("disk full")).Once()

	_, err := NewArchiveService(archive, nil, nopLogger()).Append(ctx, "run", "2025-01-01", records("new"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backup archive")
	archive.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestArchiveService_MirrorFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	archive := unifiedmock.NewArchive(t)
	archive.On("Load", ctx).Return([]unified.Record(nil), false, nil).Once()
	archive.On("Save", ctx, records("m1")).Return(nil).Once()

	mirror := unifiedmock.NewMirror(t)
	mirror.On("AppendBatch", ctx, "run-1", records("m1")).Return(errors.New("connection refused")).Once()

	got, err := NewArchiveService(archive, mirror, nopLogger()).Append(ctx, "run-1", "2025-01-01", records("m1"))
	require.NoError(t, err)
	assert.False(t, got.Mirrored)
	assert.Equal(t, 1, got.RowsAfter)
}

func TestArchiveService_MirrorsAppendedBatch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mirror := unifiedmock.NewMirror(t)
	mirror.On("AppendBatch", ctx, "run-2", records("m2")).Return(nil).Once()

	archive := &memoryArchive{records: records("m1"), found: true}
	got, err := NewArchiveService(archive, mirror, nopLogger()).Append(ctx, "run-2", "2025-01-02", records("m2"))
	require.NoError(t, err)
	assert.True(t, got.Mirrored)
	assert.True(t, got.BackedUp)
}

func TestArchiveService_RequiresFileDate(t *testing.T) {
	t.Parallel()

	_, err := NewArchiveService(&memoryArchive{}, nil, nopLogger()).Append(context.Background(), "run", " ", nil)
	require.ErrorIs(t, err, ErrInvalidInput)
}
