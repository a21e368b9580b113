// Package hirely is the client for the hirely job board API. An App owns the
// session, the API client, navigation and the access guard, and builds the
// views that drive every screen.
package hirely

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/VishalGhuge111/hirely/internal/logutil"
	"github.com/VishalGhuge111/hirely/internal/storage"
	"github.com/VishalGhuge111/hirely/pkg/access"
	"github.com/VishalGhuge111/hirely/pkg/apiclient"
	"github.com/VishalGhuge111/hirely/pkg/nav"
	"github.com/VishalGhuge111/hirely/pkg/session"
	"github.com/VishalGhuge111/hirely/pkg/views"
	"github.com/go-logr/logr"
)

// ErrNoPage is returned by Page for a path no screen lives at.
var ErrNoPage = errors.New("hirely: no page at path")

type App struct {
	logger  *slog.Logger
	Session *session.Session
	API     *apiclient.Client
	Nav     nav.Navigator
	Guard   *access.Guard

	// Hold information to build the app after configuration
	baseURL        string
	store          storage.Store
	httpClient     *http.Client
	onForcedLogout func(ctx context.Context)

	unauthMu sync.Mutex
}

type Option func(*App)

func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithBaseURL sets the API root, e.g. https://api.example.com/api.
func WithBaseURL(baseURL string) Option {
	return func(a *App) {
		a.baseURL = baseURL
	}
}

// WithStorage sets where the session record is persisted. The default keeps
// it in memory only.
func WithStorage(s storage.Store) Option {
	return func(a *App) {
		a.store = s
	}
}

// WithNavigator replaces the in-memory history.
func WithNavigator(n nav.Navigator) Option {
	return func(a *App) {
		a.Nav = n
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(a *App) {
		a.httpClient = hc
	}
}

// WithForcedLogoutHook registers fn to run after a 401 response has ended
// the session and sent the visitor to login.
func WithForcedLogoutHook(fn func(ctx context.Context)) Option {
	return func(a *App) {
		a.onForcedLogout = fn
	}
}

// New builds the App and rehydrates the session from storage.
func New(ctx context.Context, opts ...Option) (*App, error) {
	a := &App{logger: logutil.Discard()}
	for _, opt := range opts {
		opt(a)
	}
	if strings.TrimSpace(a.baseURL) == "" {
		return nil, errors.New("hirely: API base URL is required")
	}

	a.logger.Info("starting hirely", "api", a.baseURL)

	if a.store == nil {
		a.store = storage.NewInMemory(a.logger)
	}
	if a.Nav == nil {
		a.Nav = nav.NewHistory(logutil.WithFields(a.logger, "component", "nav"), nav.Home)
	}

	a.Session = session.New(a.store, session.WithLogger(logutil.WithFields(a.logger, "component", "session")))
	a.API = apiclient.New(a.baseURL,
		apiclient.WithHTTPClient(a.httpClient),
		apiclient.WithLogger(logutil.WithFields(a.logger, "component", "api")),
		apiclient.WithUnauthorizedHandler(apiclient.UnauthorizedFunc(a.handleUnauthorized)),
	)
	a.Guard = access.NewGuard(logutil.WithFields(a.logger, "component", "guard"), nil)
	a.Guard.LoadDefaultPolicies()
	a.logger.Debug("hirely components loaded")

	if err := a.Session.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("unable to restore session: %w", err)
	}
	a.logger.Debug("session restored", "signed_in", a.Session.IsAuthenticated())

	return a, nil
}

// handleUnauthorized ends the session after any 401 and reloads at login.
// The forced-logout hook runs only for the 401 that ended a live session.
func (a *App) handleUnauthorized(ctx context.Context) {
	a.unauthMu.Lock()
	defer a.unauthMu.Unlock()

	wasSignedIn := a.Session.IsAuthenticated()
	a.logger.Warn("api rejected credentials, signing out", "signed_in", wasSignedIn)
	if err := a.Session.Logout(ctx); err != nil {
		a.logger.Warn("session record not removed", "err", err)
	}
	a.Nav.Assign(nav.Login)
	if wasSignedIn && a.onForcedLogout != nil {
		a.onForcedLogout(ctx)
	}
}

// Logger returns the app's logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Logr returns the app's logger through the go-logr interface.
func (a *App) Logr() logr.Logger {
	return logutil.Logr(a.logger)
}

// Deps are the collaborators handed to every view.
func (a *App) Deps() views.Deps {
	return views.Deps{
		Session: a.Session,
		API:     a.API,
		Nav:     a.Nav,
		Guard:   a.Guard,
		Log:     a.logger,
	}
}

func (a *App) Navbar() *views.Navbar {
	return views.NewNavbar(a.Deps())
}

func (a *App) Home() *views.HomeView {
	return views.NewHome(a.Deps())
}

func (a *App) Login() *views.LoginView {
	return views.NewLogin(a.Deps())
}

func (a *App) Register() *views.RegisterView {
	return views.NewRegister(a.Deps())
}

func (a *App) VerifyEmail() *views.VerifyEmailView {
	return views.NewVerifyEmail(a.Deps())
}

func (a *App) ForgotPassword() *views.ForgotPasswordView {
	return views.NewForgotPassword(a.Deps())
}

func (a *App) ResetPassword() *views.ResetPasswordView {
	return views.NewResetPassword(a.Deps())
}

func (a *App) Jobs() *views.JobsView {
	return views.NewJobs(a.Deps())
}

func (a *App) JobDetail(id string) *views.JobDetailView {
	return views.NewJobDetail(a.Deps(), id)
}

func (a *App) Dashboard() *views.UserDashboardView {
	return views.NewUserDashboard(a.Deps())
}

func (a *App) Profile() *views.ProfileView {
	return views.NewProfile(a.Deps())
}

func (a *App) About() *views.AboutView {
	return views.NewAbout(a.Deps())
}

func (a *App) Contact() *views.ContactView {
	return views.NewContact(a.Deps())
}

func (a *App) AdminDashboard() *views.AdminDashboardView {
	return views.NewAdminDashboard(a.Deps())
}

func (a *App) AdminJobDetail(id string) *views.AdminJobDetailView {
	return views.NewAdminJobDetail(a.Deps(), id)
}

// Page returns the screen living at path. Job pages take their id from the
// last path segment.
func (a *App) Page(path string) (views.Page, error) {
	path = "/" + strings.Trim(strings.TrimSpace(path), "/")

	switch path {
	case nav.Home:
		return a.Home(), nil
	case nav.Login:
		return a.Login(), nil
	case nav.Register:
		return a.Register(), nil
	case nav.VerifyEmail:
		return a.VerifyEmail(), nil
	case nav.ForgotPassword:
		return a.ForgotPassword(), nil
	case nav.ResetPassword:
		return a.ResetPassword(), nil
	case nav.Jobs:
		return a.Jobs(), nil
	case nav.Dashboard:
		return a.Dashboard(), nil
	case nav.Profile:
		return a.Profile(), nil
	case nav.About:
		return a.About(), nil
	case nav.Contact:
		return a.Contact(), nil
	case nav.AdminDashboard:
		return a.AdminDashboard(), nil
	}

	if id, ok := childID(path, nav.AdminJobs); ok {
		return a.AdminJobDetail(id), nil
	}
	if id, ok := childID(path, nav.Jobs); ok {
		return a.JobDetail(id), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNoPage, path)
}

// childID returns the single segment below parent in path.
func childID(path, parent string) (string, bool) {
	rest, ok := strings.CutPrefix(path, parent+"/")
	if !ok || rest == "" || strings.Contains(rest, "/") {
		return "", false
	}
	id, err := url.PathUnescape(rest)
	if err != nil {
		return "", false
	}
	return id, true
}
