// Package session holds the signed-in identity and its bearer token for the
// lifetime of the application, mirroring it to persistent client storage.
package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/VishalGhuge111/hirely/internal/logutil"
	"github.com/VishalGhuge111/hirely/pkg/models"
	"github.com/golang-jwt/jwt/v5"
)

// StorageKey is the single key the session record lives under.
const StorageKey = "auth"

// Store is the subset of client storage the session needs.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// State is a point-in-time copy of the session.
type State struct {
	User    *models.User
	Token   string
	Loading bool
}

// IsAuthenticated reports whether the snapshot carries a user and token.
func (s State) IsAuthenticated() bool {
	return s.User != nil && s.Token != ""
}

// Session is the in-memory holder of {user, token, loading}. One Session is
// owned by the application root and handed to every view.
type Session struct {
	log   *slog.Logger
	store Store

	mu      sync.RWMutex
	user    *models.User
	token   string
	loading bool

	initOnce sync.Once
	initErr  error

	subMu   sync.Mutex
	subs    map[int]func(State)
	nextSub int
}

type Option func(*Session)

// WithLogger sets the logger used by the session.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// New returns an empty session in the loading state. Call Initialize once
// to rehydrate it from store.
func New(store Store, opts ...Option) *Session {
	s := &Session{
		log:     logutil.Discard(),
		store:   store,
		loading: true,
		subs:    make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize reads the persisted record exactly once. A valid record becomes
// the session; a missing, malformed or half-empty one leaves it empty.
// Loading is false afterwards in every case. Only a failing store read is
// reported; later calls return the first call's result.
func (s *Session) Initialize(ctx context.Context) error {
	s.initOnce.Do(func() {
		defer logutil.NewTimingLogger(s.log, time.Now(), "session initialized")()

		payload, err := s.readRecord(ctx)

		s.mu.Lock()
		if payload != nil {
			s.user = payload.User.Clone()
			s.token = payload.Token
		}
		s.loading = false
		s.mu.Unlock()

		s.initErr = err
		s.notify()
	})
	return s.initErr
}

func (s *Session) readRecord(ctx context.Context) (*models.AuthPayload, error) {
	raw, ok, err := s.store.Get(ctx, StorageKey)
	if err != nil {
		return nil, logutil.LogAndWrapErr(s.log, "failed to read session record", err)
	}
	if !ok {
		s.log.Debug("no session record")
		return nil, nil
	}

	var payload models.AuthPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		s.log.Warn("ignoring malformed session record", "err", models.NewDecodeError("session record", err))
		return nil, nil
	}
	if !payload.Complete() {
		s.log.Warn("ignoring incomplete session record", "has_user", payload.User != nil, "has_token", payload.Token != "")
		return nil, nil
	}
	return &payload, nil
}

// Login persists payload and makes it the current session. The payload must
// carry both a user and a token. On a storage failure the session is left
// unchanged.
func (s *Session) Login(ctx context.Context, payload models.AuthPayload) error {
	if err := s.replace(ctx, payload, "login"); err != nil {
		return err
	}
	s.log.Info("signed in", "user_id", payload.User.ID, "role", payload.User.Role)
	return nil
}

// UpdateUser stores a fresh {user, token} pair returned by a profile update.
// The previous session is replaced wholesale; fields are never merged.
func (s *Session) UpdateUser(ctx context.Context, payload models.AuthPayload) error {
	if err := s.replace(ctx, payload, "update"); err != nil {
		return err
	}
	s.log.Debug("session user updated", "user_id", payload.User.ID)
	return nil
}

func (s *Session) replace(ctx context.Context, payload models.AuthPayload, op string) error {
	if !payload.Complete() {
		return models.NewValidationError("auth response is missing user or token")
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return models.NewDecodeError("session record", err)
	}

	s.mu.Lock()
	if err := s.store.Set(ctx, StorageKey, string(b)); err != nil {
		s.mu.Unlock()
		return logutil.LogAndWrapErr(s.log, "failed to persist session", err, "op", op)
	}
	s.user = payload.User.Clone()
	s.token = payload.Token
	s.loading = false
	s.mu.Unlock()

	s.notify()
	return nil
}

// Logout removes the persisted record and clears the session. The in-memory
// session is cleared even when the store fails; that error is returned.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	err := s.store.Remove(context.WithoutCancel(ctx), StorageKey)
	wasSignedIn := s.user != nil
	s.user = nil
	s.token = ""
	s.loading = false
	s.mu.Unlock()

	if err != nil {
		err = logutil.LogAndWrapErr(s.log, "failed to remove session record", err)
	}
	if wasSignedIn {
		s.log.Info("signed out")
	}
	s.notify()
	return err
}

// State returns a snapshot of the session.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{User: s.user.Clone(), Token: s.token, Loading: s.loading}
}

// User returns a copy of the signed-in user, or nil.
func (s *Session) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.Clone()
}

// Token returns the bearer token, or "" when signed out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Loading is true until Initialize has run.
func (s *Session) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.token != ""
}

func (s *Session) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.IsAdmin()
}

// TokenClaims reads the bearer token's claims without verifying its
// signature. ok is false for a missing or opaque token.
func (s *Session) TokenClaims() (models.TokenClaims, bool) {
	token := s.Token()
	if token == "" {
		return models.TokenClaims{}, false
	}
	var claims models.TokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		s.log.Debug("token is not a readable jwt", "err", err)
		return models.TokenClaims{}, false
	}
	return claims, true
}

// TokenExpiry returns the token's exp claim. It is for display only; the
// server remains the authority.
func (s *Session) TokenExpiry() (time.Time, bool) {
	claims, ok := s.TokenClaims()
	if !ok {
		return time.Time{}, false
	}
	return claims.Expiry()
}

// Subscribe registers fn to receive a snapshot after every change. The
// returned func removes the subscription.
func (s *Session) Subscribe(fn func(State)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Session) notify() {
	state := s.State()

	s.subMu.Lock()
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(state)
	}
}
