// Package storage persists small pieces of client state (the session record)
// under string keys, the way a browser's local storage would.
package storage

import (
	"context"
	"fmt"
	"log/slog"
)

// Store defines the interface for a key/value client state store.
type Store interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSqlite = "sqlite"
)

// checkCtx returns ctx.Err() if the context is already done, logging the
// cancelled operation.
func checkCtx(ctx context.Context, log *slog.Logger, op string) error {
	select {
	case <-ctx.Done():
		log.Info("context cancelled during storage "+op, "error", ctx.Err())
		return ctx.Err()
	default:
		return nil
	}
}

var ErrInvalidKey = &InvalidKeyError{}

// InvalidKeyError is returned for keys a backend cannot represent.
type InvalidKeyError struct {
	Key string
}

func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("storage: invalid key %q", e.Key)
}

func (e *InvalidKeyError) Is(target error) bool {
	_, ok := target.(*InvalidKeyError)
	return ok
}
