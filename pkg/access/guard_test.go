package access

import (
	"io"
	"log/slog"
	"testing"

	"github.com/VishalGhuge111/hirely/pkg/models"
	"github.com/VishalGhuge111/hirely/pkg/nav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Helper: a no-op logger for tests ---
func NoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var (
	regularUser = &models.User{ID: "1", Name: "Ada", Role: models.RoleUser}
	adminUser   = &models.User{ID: "2", Name: "Root", Role: models.RoleAdmin}
)

func TestBuildPrefixes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"simple nested path", "/a/b/c", []string{"/a/b/c", "/a/b", "/a", "/"}},
		{"root only", "/", []string{"/"}},
		{"empty string treated as root", "", []string{"/"}},
		{"no leading slash", "x/y", []string{"/x/y", "/x", "/"}},
		{"single segment", "/foo", []string{"/foo", "/"}},
		{"path with trailing slash", "/admin/jobs/", []string{"/admin/jobs", "/admin", "/"}},
		{"root with trailing slashes", "///", []string{"/"}},
		{"job id", "/admin/jobs/64f1c2", []string{"/admin/jobs/64f1c2", "/admin/jobs", "/admin", "/"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, buildPrefixes(tt.input))
		})
	}
}

func TestFindMatchingPolicy(t *testing.T) {
	g := NewGuard(NoopLogger(), nil)
	g.SetPolicy("/admin", Admin)
	g.SetPolicy("admin/public/", Public)
	g.SetPolicy("/dashboard", Protected)

	tests := []struct {
		path      string
		wantClass PageClass
		wantFound bool
	}{
		{"/admin", Admin, true},
		{"/admin/jobs/42", Admin, true},
		{"/admin/public/page", Public, true},
		{"/dashboard", Protected, true},
		{"/dashboards", Public, false},
		{"/unknown", Public, false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			class, found := g.FindMatchingPolicy(tt.path)
			assert.Equal(t, tt.wantClass, class)
			assert.Equal(t, tt.wantFound, found)
		})
	}
}

func TestCheck_DecisionTable(t *testing.T) {
	g := NewGuard(NoopLogger(), nil)
	g.LoadDefaultPolicies()

	tests := []struct {
		name         string
		path         string
		user         *models.User
		wantAllowed  bool
		wantRedirect string
	}{
		{"guest on login", nav.Login, nil, true, ""},
		{"user on login", nav.Login, regularUser, false, nav.Home},
		{"admin on register", nav.Register, adminUser, false, nav.Home},
		{"guest on dashboard", nav.Dashboard, nil, false, nav.Login},
		{"user on dashboard", nav.Dashboard, regularUser, true, ""},
		{"guest on profile", nav.Profile, nil, false, nav.Login},
		{"guest on admin", nav.AdminDashboard, nil, false, nav.Login},
		{"user on admin", nav.AdminDashboard, regularUser, false, nav.Home},
		{"user on admin job", nav.AdminJobPath("j1"), regularUser, false, nav.Home},
		{"admin on admin job", nav.AdminJobPath("j1"), adminUser, true, ""},
		{"guest on job", nav.JobPath("j1"), nil, true, ""},
		{"guest on home", nav.Home, nil, true, ""},
		{"user on reset", nav.ResetPassword, regularUser, true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := g.Check(tt.path, tt.user)
			assert.Equal(t, tt.wantAllowed, d.Allowed)
			assert.Equal(t, tt.wantRedirect, d.Redirect)
		})
	}
}

func TestCheck_CustomConfig(t *testing.T) {
	g := NewGuard(nil, &Config{LoginPath: "/signin", HomePath: "/start"})
	g.SetPolicy("/secret", Protected)
	g.SetPolicy("/signin", GuestOnly)

	assert.Equal(t, "/signin", g.Check("/secret", nil).Redirect)
	assert.Equal(t, "/start", g.Check("/signin", regularUser).Redirect)
}

func TestDashboardFor(t *testing.T) {
	assert.Equal(t, nav.Login, DashboardFor(nil))
	assert.Equal(t, nav.Dashboard, DashboardFor(regularUser))
	assert.Equal(t, nav.AdminDashboard, DashboardFor(adminUser))
}

func TestAccountMenu(t *testing.T) {
	guest := AccountMenu(nil)
	assert.Equal(t, []MenuItem{{"Login", nav.Login}, {"Join", nav.Register}}, guest)

	user := AccountMenu(regularUser)
	require.Len(t, user, 3)
	assert.Equal(t, MenuItem{"Applications", nav.Dashboard}, user[1])
	assert.Equal(t, LogoutLabel, user[2].Label)

	admin := AccountMenu(adminUser)
	assert.Equal(t, MenuItem{"Admin Panel", nav.AdminDashboard}, admin[1])
}

func TestHomeCTAs(t *testing.T) {
	p, s := HomeCTAs(nil)
	assert.Equal(t, nav.Login, p.Path)
	assert.Equal(t, nav.Register, s.Path)

	p, s = HomeCTAs(regularUser)
	assert.Equal(t, nav.Jobs, p.Path)
	assert.Equal(t, nav.Dashboard, s.Path)
}

func TestPageClassString(t *testing.T) {
	assert.Equal(t, "admin", Admin.String())
	assert.Equal(t, "unknown", PageClass(99).String())
}
