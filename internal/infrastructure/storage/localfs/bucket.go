// Package localfs stores bucket objects as files under a root directory.
package localfs

import (
	"context"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/matchedge/internal/infrastructure/storage"
)

type Bucket struct {
	root string
}

var _ storage.Bucket = (*Bucket)(nil)

func New(root string) *Bucket {
	root = strings.TrimSpace(root)
	if root == "" {
		root = "."
	}
	return &Bucket{root: root}
}

func (b *Bucket) Root() string {
	return b.root
}

func (b *Bucket) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := b.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, crerr.Wrapf(storage.ErrObjectNotFound, "key %s", key)
	}
	if err != nil {
		return nil, crerr.Wrapf(err, "read %s", key)
	}
	return data, nil
}

// Put writes through a temporary file and renames it into place, so readers
// never observe a partial object.
func (b *Bucket) Put(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := b.path(key)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return crerr.Wrapf(err, "create directory for %s", key)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return crerr.Wrapf(err, "create temp file for %s", key)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return crerr.Wrapf(err, "write %s", key)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return crerr.Wrapf(err, "sync %s", key)
	}
	if err := tmp.Close(); err != nil {
		return crerr.Wrapf(err, "close %s", key)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return crerr.Wrapf(err, "rename %s", key)
	}
	return nil
}

func (b *Bucket) Exists(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	path, err := b.path(key)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case stderrors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, crerr.Wrapf(err, "stat %s", key)
	}
}

func (b *Bucket) path(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" || !filepath.IsLocal(filepath.FromSlash(key)) {
		return "", crerr.Newf("invalid object key %q", key)
	}
	return filepath.Join(b.root, filepath.FromSlash(key)), nil
}
