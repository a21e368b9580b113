package storage

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/VishalGhuge111/hirely/database"
	"github.com/VishalGhuge111/hirely/internal/logutil"
	"github.com/VishalGhuge111/hirely/pkg/models"
)

// Open builds the Store for backend. path is a directory for the file
// backend and a database file for sqlite; memory ignores it. The returned
// close func releases backend resources and is never nil.
func Open(logger *slog.Logger, backend, path string) (Store, func() error, error) {
	noop := func() error { return nil }
	if logger == nil {
		logger = logutil.Discard()
	}
	log := logutil.WithFields(logger, "backend", backend)

	switch backend {
	case BackendMemory:
		return NewInMemory(log), noop, nil

	case BackendFile, "":
		s, err := NewFile(log, path)
		if err != nil {
			return nil, noop, err
		}
		return s, noop, nil

	case BackendSqlite:
		if dir := filepath.Dir(path); dir != "" {
			if err := os.MkdirAll(dir, 0o700); err != nil {
				return nil, noop, models.NewStorageError("open", err)
			}
		}
		db, err := database.OpenSqlite(path)
		if err != nil {
			return nil, noop, logutil.LogAndWrapErr(log, "failed to open sqlite storage",
				models.NewStorageError("open", err), "path", path)
		}
		return NewSqlite(log, db), db.Close, nil

	default:
		return nil, noop, fmt.Errorf("storage: unknown backend %q", backend)
	}
}
