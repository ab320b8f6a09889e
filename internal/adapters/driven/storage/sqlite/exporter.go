package sqlite

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/custodia-labs/vmt/internal/core/domain"
	"github.com/custodia-labs/vmt/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.Exporter = (*Exporter)(nil)

// Exporter writes a session as a fresh single-session bundle.
type Exporter struct{}

// NewExporter creates a SQLite bundle exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// Format returns domain.ExportSQLite.
func (e *Exporter) Format() domain.ExportFormat {
	return domain.ExportSQLite
}

// Export replaces any file at path with a bundle holding session. The
// bundle is built next to path and renamed into place once closed, so a
// failed export leaves the previous file untouched.
func (e *Exporter) Export(ctx context.Context, path string, session *domain.Session) error {
	if session == nil {
		return domain.ErrInvalidInput
	}
	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+".building")
	if err := removeBundle(tmp); err != nil {
		return err
	}

	if err := build(ctx, tmp, session); err != nil {
		_ = removeBundle(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = removeBundle(tmp)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	// Stale sidecars from an earlier bundle at path would be replayed on open.
	return removeSidecars(path)
}

func build(ctx context.Context, path string, session *domain.Session) (err error) {
	store, err := NewStore(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing bundle: %w", cerr)
		}
	}()
	return store.SaveSession(ctx, session)
}

func removeBundle(path string) error {
	if err := removeFile(path); err != nil {
		return err
	}
	return removeSidecars(path)
}

func removeSidecars(path string) error {
	if err := removeFile(path + "-wal"); err != nil {
		return err
	}
	return removeFile(path + "-shm")
}

func removeFile(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing %s: %w", path, err)
	}
	return nil
}
