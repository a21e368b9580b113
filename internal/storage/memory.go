package storage

import (
	"context"
	"log/slog"
	"sync"

	"github.com/VishalGhuge111/hirely/internal/logutil"
)

type inMemoryStore struct {
	values map[string]string
	mutex  sync.Mutex
	log    *slog.Logger
}

// NewInMemory returns a Store that lives only as long as the process.
func NewInMemory(logger *slog.Logger) *inMemoryStore {
	if logger == nil {
		logger = logutil.Discard()
	}
	return &inMemoryStore{
		values: make(map[string]string),
		log:    logger,
	}
}

func (s *inMemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := checkCtx(ctx, s.log, "get"); err != nil {
		return "", false, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	v, ok := s.values[key]
	return v, ok, nil
}

func (s *inMemoryStore) Set(ctx context.Context, key, value string) error {
	if err := checkCtx(ctx, s.log, "set"); err != nil {
		return err
	}
	if key == "" {
		return &InvalidKeyError{Key: key}
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.values[key] = value
	s.log.Debug("stored value", "key", key)
	return nil
}

func (s *inMemoryStore) Remove(ctx context.Context, key string) error {
	if err := checkCtx(ctx, s.log, "remove"); err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.values, key)
	s.log.Debug("removed value", "key", key)
	return nil
}
