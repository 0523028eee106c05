package objectstore

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/tphakala/video-enrichment-api/internal/errors"
)

const (
	objectDirPerm  = 0o755
	objectFilePerm = 0o644
)

// FSStore implements Store on an afero filesystem. The bucket is the first
// directory level and the key is the path below it.
type FSStore struct {
	fs      afero.Fs
	backend string
}

// NewFSStore wraps fs. backend is the name reported in logs and metrics.
func NewFSStore(fs afero.Fs, backend string) *FSStore {
	return &FSStore{fs: fs, backend: backend}
}

// Backend returns the configured backend name
func (s *FSStore) Backend() string {
	return s.backend
}

func (s *FSStore) filePath(p Path) string {
	return filepath.Join(string(filepath.Separator), p.Bucket, filepath.FromSlash(p.Key))
}

// Exists reports whether a regular file is stored at p
func (s *FSStore) Exists(ctx context.Context, p Path) bool {
	if ctx.Err() != nil || p.Key == "" {
		return false
	}
	info, err := s.fs.Stat(s.filePath(p))
	return err == nil && !info.IsDir()
}

// Upload writes the object, creating parent directories
func (s *FSStore) Upload(ctx context.Context, p Path, data []byte, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name := s.filePath(p)
	if err := s.fs.MkdirAll(filepath.Dir(name), objectDirPerm); err != nil {
		return wrapFSError(err, "mkdir", p)
	}
	if err := afero.WriteFile(s.fs, name, data, objectFilePerm); err != nil {
		return wrapFSError(err, "write", p)
	}
	return nil
}

// Download reads the object
func (s *FSStore) Download(ctx context.Context, p Path) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(s.fs, s.filePath(p))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, os.ErrNotExist) {
			return nil, ErrObjectNotFound
		}
		return nil, wrapFSError(err, "read", p)
	}
	return data, nil
}

// Delete removes the object if present
func (s *FSStore) Delete(ctx context.Context, p Path) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.fs.Remove(s.filePath(p)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return wrapFSError(err, "remove", p)
	}
	return nil
}

func wrapFSError(err error, operation string, p Path) error {
	return errors.New(err).
		Component("objectstore").
		Category(errors.CategoryFileIO).
		Context("operation", operation).
		Context("bucket", p.Bucket).
		Build()
}
