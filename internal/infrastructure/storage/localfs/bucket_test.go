package localfs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/riskibarqy/matchedge/internal/infrastructure/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutThenGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	b := New(t.TempDir())

	require.NoError(t, b.Put(ctx, "clean/merged_matches.csv", []byte("a,b\n1,2\n")))
	data, err := b.Get(ctx, "clean/merged_matches.csv")
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(data))

	require.NoError(t, b.Put(ctx, "clean/merged_matches.csv", []byte("a\n")))
	data, err = b.Get(ctx, "clean/merged_matches.csv")
	require.NoError(t, err)
	assert.Equal(t, "a\n", string(data))

	entries, err := os.ReadDir(filepath.Join(b.Root(), "clean"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not remain")
}

func TestGetMissingKey(t *testing.T) {
	t.Parallel()

	b := New(t.TempDir())
	_, err := b.Get(context.Background(), "raw/all_results_2025-01-05.csv")
	require.Error(t, err)
	assert.True(t, storage.IsNotFound(err))
}

func TestExists(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	b := New(t.TempDir())

	ok, err := b.Exists(ctx, "logs/last_scraped_date.csv")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, b.Put(ctx, "logs/last_scraped_date.csv", []byte("date\n2025-01-05\n")))
	ok, err = b.Exists(ctx, "logs/last_scraped_date.csv")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRejectsKeysOutsideRoot(t *testing.T) {
	t.Parallel()

	b := New(t.TempDir())
	for _, key := range []string{"", "../etc/passwd", "/abs/path"} {
		err := b.Put(context.Background(), key, []byte("x"))
		assert.Error(t, err, key)
	}
}
