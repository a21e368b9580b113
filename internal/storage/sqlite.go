package storage

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/VishalGhuge111/hirely/internal/logutil"
	"github.com/VishalGhuge111/hirely/pkg/models"
)

const (
	sqliteGet    = `SELECT value FROM local_storage WHERE key = ?`
	sqliteUpsert = `INSERT INTO local_storage (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	sqliteDelete = `DELETE FROM local_storage WHERE key = ?`
)

type sqliteStore struct {
	db  *sql.DB
	log *slog.Logger
}

// NewSqlite returns a Store backed by the local_storage table. The schema
// must already be migrated (see database.OpenSqlite).
func NewSqlite(logger *slog.Logger, db *sql.DB) *sqliteStore {
	if logger == nil {
		logger = logutil.Discard()
	}
	return &sqliteStore{db: db, log: logger}
}

func (s *sqliteStore) Get(ctx context.Context, key string) (string, bool, error) {
	defer logutil.NewTimingLogger(s.log, time.Now(), "executed sql query", "method", "get", "key", key)()
	if err := checkCtx(ctx, s.log, "get"); err != nil {
		return "", false, err
	}

	var value string
	err := s.db.QueryRowContext(ctx, sqliteGet, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, logutil.DebugAndWrapErr(s.log, "failed to get value",
			models.NewStorageError("get", err), "key", key)
	}
	return value, true, nil
}

func (s *sqliteStore) Set(ctx context.Context, key, value string) error {
	defer logutil.NewTimingLogger(s.log, time.Now(), "executed sql query", "method", "set", "key", key)()
	if err := checkCtx(ctx, s.log, "set"); err != nil {
		return err
	}
	if key == "" {
		return &InvalidKeyError{Key: key}
	}

	if _, err := s.db.ExecContext(ctx, sqliteUpsert, key, value, time.Now().Unix()); err != nil {
		return logutil.LogAndWrapErr(s.log, "failed to set value",
			models.NewStorageError("set", err), "key", key)
	}
	return nil
}

func (s *sqliteStore) Remove(ctx context.Context, key string) error {
	defer logutil.NewTimingLogger(s.log, time.Now(), "executed sql query", "method", "remove", "key", key)()
	if err := checkCtx(ctx, s.log, "remove"); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, sqliteDelete, key); err != nil {
		return logutil.LogAndWrapErr(s.log, "failed to remove value",
			models.NewStorageError("remove", err), "key", key)
	}
	return nil
}
