package views

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/VishalGhuge111/hirely/internal/storage"
	"github.com/VishalGhuge111/hirely/pkg/access"
	"github.com/VishalGhuge111/hirely/pkg/apiclient"
	"github.com/VishalGhuge111/hirely/pkg/models"
	"github.com/VishalGhuge111/hirely/pkg/nav"
	"github.com/VishalGhuge111/hirely/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reply struct {
	status int
	body   string
}

type request struct {
	auth string
	body map[string]any
}

// fakeAPI answers "METHOD /path" routes with canned replies and records
// what each route received.
type fakeAPI struct {
	srv *httptest.Server

	mu       sync.Mutex
	routes   map[string]reply
	handlers map[string]http.HandlerFunc
	seen     map[string][]request
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{
		routes:   make(map[string]reply),
		handlers: make(map[string]http.HandlerFunc),
		seen:     make(map[string][]request),
	}
	f.srv = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path
	req := request{auth: r.Header.Get("Authorization")}
	if b, _ := io.ReadAll(r.Body); len(b) > 0 {
		_ = json.Unmarshal(b, &req.body)
	}

	f.mu.Lock()
	f.seen[key] = append(f.seen[key], req)
	h, hasHandler := f.handlers[key]
	rep, ok := f.routes[key]
	f.mu.Unlock()

	if hasHandler {
		h(w, r)
		return
	}
	if !ok {
		rep = reply{status: http.StatusNotFound, body: `{"message":"no route"}`}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rep.status)
	_, _ = io.WriteString(w, rep.body)
}

func (f *fakeAPI) on(method, path string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[method+" "+path] = reply{status: status, body: body}
}

func (f *fakeAPI) handle(method, path string, h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[method+" "+path] = h
}

func (f *fakeAPI) requests(method, path string) []request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen[method+" "+path]
}

type testEnv struct {
	api   *fakeAPI
	store storage.Store
	hist  *nav.History
	sess  *session.Session
	deps  Deps
}

// newEnv wires views the way the application root does, 401 handling
// included.
func newEnv(t *testing.T) *testEnv {
	t.Helper()
	e := &testEnv{
		api:   newFakeAPI(t),
		store: storage.NewInMemory(nil),
		hist:  nav.NewHistory(nil, nav.Home),
	}
	e.sess = session.New(e.store)
	require.NoError(t, e.sess.Initialize(context.Background()))

	client := apiclient.New(e.api.srv.URL, apiclient.WithUnauthorizedHandler(
		apiclient.UnauthorizedFunc(func(ctx context.Context) {
			_ = e.sess.Logout(ctx)
			e.hist.Assign(nav.Login)
		})))
	guard := access.NewGuard(nil, nil)
	guard.LoadDefaultPolicies()

	e.deps = Deps{Session: e.sess, API: client, Nav: e.hist, Guard: guard}
	return e
}

func (e *testEnv) signIn(t *testing.T, role models.Role) {
	t.Helper()
	require.NoError(t, e.sess.Login(context.Background(), models.AuthPayload{
		User:  &models.User{ID: "u1", Name: "Ada", Email: "a@b.com", Role: role},
		Token: "t1",
	}))
}

func TestGuardedMount_Redirects(t *testing.T) {
	tests := []struct {
		name  string
		role  models.Role // "" for a guest
		mount func(Deps) error
		want  string
	}{
		{"login when signed in", models.RoleUser, func(d Deps) error { return NewLogin(d).Mount(context.Background()) }, nav.Home},
		{"register when signed in", models.RoleUser, func(d Deps) error { return NewRegister(d).Mount(context.Background()) }, nav.Home},
		{"dashboard as guest", "", func(d Deps) error { return NewUserDashboard(d).Mount(context.Background()) }, nav.Login},
		{"profile as guest", "", func(d Deps) error { return NewProfile(d).Mount(context.Background()) }, nav.Login},
		{"admin as guest", "", func(d Deps) error { return NewAdminDashboard(d).Mount(context.Background()) }, nav.Login},
		{"admin as user", models.RoleUser, func(d Deps) error { return NewAdminDashboard(d).Mount(context.Background()) }, nav.Home},
		{"admin job as user", models.RoleUser, func(d Deps) error { return NewAdminJobDetail(d, "j1").Mount(context.Background()) }, nav.Home},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			if tt.role != "" {
				e.signIn(t, tt.role)
			}
			e.hist.Navigate("/somewhere")

			err := tt.mount(e.deps)
			assert.ErrorIs(t, err, ErrRedirected)
			assert.Equal(t, tt.want, e.hist.Location())
			assert.Equal(t, 2, e.hist.Len(), "redirect replaces the entry")
		})
	}
}

func TestProtectedView_SessionEndSendsToLogin(t *testing.T) {
	e := newEnv(t)
	e.signIn(t, models.RoleUser)
	e.api.on(http.MethodGet, "/applications/user", http.StatusOK, `[]`)

	v := NewUserDashboard(e.deps)
	require.NoError(t, v.Mount(context.Background()))
	e.hist.Navigate(nav.Dashboard)

	require.NoError(t, e.sess.Logout(context.Background()))
	assert.Equal(t, nav.Login, e.hist.Location())
}

func TestUnauthorized_ClearsSessionAndStorage(t *testing.T) {
	e := newEnv(t)
	e.signIn(t, models.RoleUser)
	e.api.on(http.MethodGet, "/applications/user", http.StatusUnauthorized, `{"message":"Token expired"}`)

	v := NewUserDashboard(e.deps)
	err := v.Mount(context.Background())
	assert.ErrorIs(t, err, apiclient.ErrUnauthorized)

	assert.False(t, e.sess.IsAuthenticated())
	_, ok, err := e.store.Get(context.Background(), session.StorageKey)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, nav.Login, e.hist.Location())
	assert.True(t, e.hist.Current().Hard)
	assert.Equal(t, "Token expired", v.State().Error)
}

func TestUnmount_DiscardsLateResults(t *testing.T) {
	e := newEnv(t)
	arrived := make(chan struct{})
	e.api.handle(http.MethodGet, "/jobs", func(w http.ResponseWriter, r *http.Request) {
		close(arrived)
		<-r.Context().Done()
	})

	v := NewJobs(e.deps)
	done := make(chan error, 1)
	go func() { done <- v.Mount(context.Background()) }()

	<-arrived
	v.Unmount()

	assert.ErrorIs(t, <-done, context.Canceled)
	assert.Empty(t, v.State().Jobs)
	assert.Empty(t, v.State().Error, "the cancelled fetch is not reported")
}

func TestActions_RequireMount(t *testing.T) {
	e := newEnv(t)

	assert.ErrorIs(t, NewLogin(e.deps).Submit(apiclient.Credentials{Email: "a@b.com", Password: "x"}), ErrNotMounted)
	assert.ErrorIs(t, NewContact(e.deps).Submit(apiclient.ContactMessage{}), ErrNotMounted)
	assert.ErrorIs(t, NewJobDetail(e.deps, "j1").Submit("https://cv.example.com"), ErrNotMounted)
	assert.Empty(t, e.api.requests(http.MethodPost, "/auth/login"))
}
