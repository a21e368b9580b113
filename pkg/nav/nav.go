// Package nav models client-side navigation: a history of locations, each
// optionally carrying state handed from one view to the next.
package nav

import (
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/VishalGhuge111/hirely/internal/logutil"
)

// Known locations.
const (
	Home           = "/"
	About          = "/about"
	Contact        = "/contact"
	Login          = "/login"
	Register       = "/register"
	VerifyEmail    = "/verify-email"
	ForgotPassword = "/forgot-password"
	ResetPassword  = "/reset-password"
	Jobs           = "/jobs"
	Dashboard      = "/dashboard"
	Profile        = "/profile"
	AdminDashboard = "/admin/dashboard"
	AdminJobs      = "/admin/jobs"
)

// StateEmail is the state key carrying the address an OTP was sent to.
const StateEmail = "email"

// JobPath is the public detail page for a job.
func JobPath(id string) string {
	return Jobs + "/" + url.PathEscape(id)
}

// AdminJobPath is the admin management page for a job.
func AdminJobPath(id string) string {
	return AdminJobs + "/" + url.PathEscape(id)
}

// Entry is one location in the history.
type Entry struct {
	Path  string
	State map[string]string
	// Hard is set for full reloads, which drop in-memory view state.
	Hard bool
}

// Value returns the state value for key, or "".
func (e Entry) Value(key string) string {
	return e.State[key]
}

// Navigator moves the application between views.
type Navigator interface {
	// Navigate moves to path, pushing a history entry unless WithReplace is given.
	Navigate(path string, opts ...Option)
	// Assign performs a hard navigation: history is reset to path alone.
	Assign(path string)
	// Back returns to the previous entry, if any.
	Back()
	// Current returns the active entry.
	Current() Entry
}

type options struct {
	replace bool
	state   map[string]string
}

type Option func(*options)

// WithReplace replaces the current entry instead of pushing a new one.
func WithReplace() Option {
	return func(o *options) {
		o.replace = true
	}
}

// WithState attaches a key/value pair to the new entry.
func WithState(key, value string) Option {
	return func(o *options) {
		if o.state == nil {
			o.state = make(map[string]string)
		}
		o.state[key] = value
	}
}

// History is an in-memory Navigator.
type History struct {
	log       *slog.Logger
	mu        sync.Mutex
	entries   []Entry
	listeners []func(Entry)
}

// NewHistory returns a history positioned at start ("/" when empty).
func NewHistory(logger *slog.Logger, start string) *History {
	if logger == nil {
		logger = logutil.Discard()
	}
	return &History{
		log:     logger,
		entries: []Entry{{Path: clean(start)}},
	}
}

// OnChange registers fn to be called after every location change.
func (h *History) OnChange(fn func(Entry)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listeners = append(h.listeners, fn)
}

func (h *History) Navigate(path string, opts ...Option) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	e := Entry{Path: clean(path), State: o.state}

	h.mu.Lock()
	if o.replace {
		h.entries[len(h.entries)-1] = e
	} else {
		h.entries = append(h.entries, e)
	}
	h.mu.Unlock()

	h.log.Debug("navigated", "path", e.Path, "replace", o.replace)
	h.emit(e)
}

func (h *History) Assign(path string) {
	e := Entry{Path: clean(path), Hard: true}

	h.mu.Lock()
	h.entries = []Entry{e}
	h.mu.Unlock()

	h.log.Debug("hard navigation", "path", e.Path)
	h.emit(e)
}

func (h *History) Back() {
	h.mu.Lock()
	if len(h.entries) < 2 {
		h.mu.Unlock()
		return
	}
	h.entries = h.entries[:len(h.entries)-1]
	e := h.entries[len(h.entries)-1]
	h.mu.Unlock()

	h.emit(e)
}

func (h *History) Current() Entry {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[len(h.entries)-1]
}

// Location is shorthand for Current().Path.
func (h *History) Location() string {
	return h.Current().Path
}

// Len reports the number of history entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

func (h *History) emit(e Entry) {
	h.mu.Lock()
	ls := append([]func(Entry){}, h.listeners...)
	h.mu.Unlock()
	for _, fn := range ls {
		fn(e)
	}
}

func clean(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return Home
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			return Home
		}
	}
	return p
}
