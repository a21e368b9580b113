package storage

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/VishalGhuge111/hirely/internal/logutil"
	"github.com/VishalGhuge111/hirely/pkg/models"
)

var fileKeyRegex = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

type fileStore struct {
	dir   string
	mutex sync.Mutex
	log   *slog.Logger
}

// NewFile returns a Store keeping one file per key inside dir. The directory
// is created with user-only permissions if missing.
func NewFile(logger *slog.Logger, dir string) (*fileStore, error) {
	if logger == nil {
		logger = logutil.Discard()
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, logutil.LogAndWrapErr(logger, "failed to create storage directory",
			models.NewStorageError("open", err), "dir", dir)
	}
	return &fileStore{dir: dir, log: logger}, nil
}

func (s *fileStore) path(key string) (string, error) {
	if !fileKeyRegex.MatchString(key) || key == "." || key == ".." {
		return "", &InvalidKeyError{Key: key}
	}
	return filepath.Join(s.dir, key+".json"), nil
}

func (s *fileStore) Get(ctx context.Context, key string) (string, bool, error) {
	defer logutil.NewTimingLogger(s.log, time.Now(), "read storage file", "key", key)()
	if err := checkCtx(ctx, s.log, "get"); err != nil {
		return "", false, err
	}
	p, err := s.path(key)
	if err != nil {
		return "", false, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, logutil.DebugAndWrapErr(s.log, "failed to read storage file",
			models.NewStorageError("get", err), "key", key)
	}
	return string(b), true, nil
}

func (s *fileStore) Set(ctx context.Context, key, value string) error {
	defer logutil.NewTimingLogger(s.log, time.Now(), "wrote storage file", "key", key)()
	if err := checkCtx(ctx, s.log, "set"); err != nil {
		return err
	}
	p, err := s.path(key)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	// write then rename so a crash never leaves a half-written record
	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return logutil.LogAndWrapErr(s.log, "failed to create temp storage file",
			models.NewStorageError("set", err), "key", key)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		return logutil.LogAndWrapErr(s.log, "failed to write storage file",
			models.NewStorageError("set", err), "key", key)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return logutil.LogAndWrapErr(s.log, "failed to chmod storage file",
			models.NewStorageError("set", err), "key", key)
	}
	if err := tmp.Close(); err != nil {
		return logutil.LogAndWrapErr(s.log, "failed to close storage file",
			models.NewStorageError("set", err), "key", key)
	}
	if err := os.Rename(tmpName, p); err != nil {
		return logutil.LogAndWrapErr(s.log, "failed to replace storage file",
			models.NewStorageError("set", err), "key", key)
	}
	return nil
}

func (s *fileStore) Remove(ctx context.Context, key string) error {
	defer logutil.NewTimingLogger(s.log, time.Now(), "removed storage file", "key", key)()
	if err := checkCtx(ctx, s.log, "remove"); err != nil {
		return err
	}
	p, err := s.path(key)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return logutil.LogAndWrapErr(s.log, "failed to remove storage file",
			models.NewStorageError("remove", err), "key", key)
	}
	return nil
}
