// internal/store/localfs.go
package store

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/newthinker/prospect/internal/core"
)

// LocalFS is a Backend rooted at a directory on the local filesystem.
type LocalFS struct {
	base string
}

// NewLocalFS creates the base directory if needed and returns the backend.
func NewLocalFS(base string) (*LocalFS, error) {
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, core.Wrapf(core.ErrStoreFailed, "create %s: %v", base, err)
	}
	return &LocalFS{base: base}, nil
}

func (l *LocalFS) abs(path string) string {
	return filepath.Join(l.base, filepath.FromSlash(path))
}

func (l *LocalFS) Write(ctx context.Context, path string, data []byte) error {
	full := l.abs(path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return core.Wrapf(core.ErrStoreFailed, "create dir for %s: %v", path, err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return core.Wrapf(core.ErrStoreFailed, "write %s: %v", path, err)
	}
	return nil
}

func (l *LocalFS) Read(ctx context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(l.abs(path))
	if os.IsNotExist(err) {
		return nil, core.Wrapf(core.ErrNotFound, "%s", path)
	}
	if err != nil {
		return nil, core.Wrapf(core.ErrStoreFailed, "read %s: %v", path, err)
	}
	return data, nil
}

func (l *LocalFS) List(ctx context.Context, prefix string) ([]string, error) {
	root := l.abs(prefix)
	var paths []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(l.base, p)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, core.Wrapf(core.ErrStoreFailed, "list %s: %v", prefix, err)
	}
	sort.Strings(paths)
	return paths, nil
}

func (l *LocalFS) Delete(ctx context.Context, path string) error {
	err := os.Remove(l.abs(path))
	if err != nil && !os.IsNotExist(err) {
		return core.Wrapf(core.ErrStoreFailed, "delete %s: %v", path, err)
	}
	return nil
}

func (l *LocalFS) Exists(ctx context.Context, path string) (bool, error) {
	_, err := os.Stat(l.abs(path))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, core.Wrapf(core.ErrStoreFailed, "stat %s: %v", path, err)
	}
	return true, nil
}
