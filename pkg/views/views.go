// Package views holds one controller per screen. A view is mounted once per
// visit: it runs its access guard, fetches what it shows, and exposes the
// actions the screen offers. Unmount cancels everything still in flight and
// results arriving afterwards are dropped.
package views

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/VishalGhuge111/hirely/internal/logutil"
	"github.com/VishalGhuge111/hirely/pkg/access"
	"github.com/VishalGhuge111/hirely/pkg/apiclient"
	"github.com/VishalGhuge111/hirely/pkg/models"
	"github.com/VishalGhuge111/hirely/pkg/nav"
	"github.com/VishalGhuge111/hirely/pkg/session"
)

// ErrNotMounted is returned by actions on a view that is not mounted.
var ErrNotMounted = errors.New("views: view is not mounted")

// ErrRedirected is returned by Mount when the guard or a missing
// prerequisite sent the visitor elsewhere.
var ErrRedirected = errors.New("views: redirected")

// Deps are the collaborators every view shares. They are owned by the
// application root.
type Deps struct {
	Session *session.Session
	API     *apiclient.Client
	Nav     nav.Navigator
	Guard   *access.Guard
	Log     *slog.Logger
}

// Page is a mountable screen.
type Page interface {
	Path() string
	Mount(ctx context.Context) error
	Unmount()
}

// Stat is one labelled number on a dashboard.
type Stat struct {
	Label string
	Value int
}

// Notice is the feedback line shown under a form.
type Notice struct {
	Error   string
	Success string
}

type base struct {
	Deps
	path string

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	unsub  func()
}

func newBase(d Deps, path string) base {
	if d.Log == nil {
		d.Log = logutil.Discard()
	}
	if d.Guard == nil {
		d.Guard = access.NewGuard(d.Log, nil)
		d.Guard.LoadDefaultPolicies()
	}
	d.Log = logutil.WithFields(d.Log, "view", path)
	return base{Deps: d, path: path}
}

// Path is the location this view is mounted at.
func (b *base) Path() string {
	return b.path
}

// enter runs the guard for the view's path and starts a new view lifetime.
// When the guard fails the visitor is redirected and ErrRedirected returned.
func (b *base) enter(parent context.Context) (ctx context.Context, err error) {
	d := b.Guard.Check(b.path, b.Session.User())
	if !d.Allowed {
		b.Nav.Navigate(d.Redirect, nav.WithReplace())
		return nil, ErrRedirected
	}

	ctx, cancel := context.WithCancel(parent)
	var unsub func()
	if d.Class == access.Protected || d.Class == access.Admin {
		// a session ending anywhere sends this view to login
		unsub = b.Session.Subscribe(func(st session.State) {
			if !st.Loading && !st.IsAuthenticated() && ctx.Err() == nil {
				b.Log.Debug("session ended while view mounted")
				b.Nav.Navigate(b.Guard.LoginPath, nav.WithReplace())
			}
		})
	}

	b.mu.Lock()
	b.stopLocked()
	b.ctx, b.cancel, b.unsub = ctx, cancel, unsub
	b.mu.Unlock()

	b.Log.Debug("view mounted")
	return ctx, nil
}

// redirect sends the visitor to path instead of mounting.
func (b *base) redirect(path string, opts ...nav.Option) error {
	b.Nav.Navigate(path, append(opts, nav.WithReplace())...)
	return ErrRedirected
}

// Unmount cancels in-flight requests and stops reacting to the session.
func (b *base) Unmount() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopLocked()
}

func (b *base) stopLocked() {
	if b.cancel != nil {
		b.cancel()
	}
	if b.unsub != nil {
		b.unsub()
	}
	b.cancel, b.unsub = nil, nil
}

// detach stops the session subscription so the view can end the session
// and choose its own destination.
func (b *base) detach() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.unsub != nil {
		b.unsub()
		b.unsub = nil
	}
}

// active returns the context of the current mount.
func (b *base) active() (context.Context, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ctx == nil || b.ctx.Err() != nil {
		return nil, ErrNotMounted
	}
	return b.ctx, nil
}

// token returns the session's bearer token.
func (b *base) token() string {
	return b.Session.Token()
}

// validationMessage returns the text of a form validation failure, or "".
func validationMessage(err error) string {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	return ""
}
