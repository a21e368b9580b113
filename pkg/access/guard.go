// Package access decides which views a session may see, where it is sent
// otherwise, and which actions a view offers.
package access

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/VishalGhuge111/hirely/internal/logutil"
	"github.com/VishalGhuge111/hirely/pkg/models"
	"github.com/VishalGhuge111/hirely/pkg/nav"
)

// PageClass groups views that share one access rule.
type PageClass int

const (
	// Public views are open to everyone.
	Public PageClass = iota
	// GuestOnly views (login, register) send signed-in users home.
	GuestOnly
	// Protected views need a session.
	Protected
	// Admin views need a session holding the admin role.
	Admin
)

func (c PageClass) String() string {
	switch c {
	case Public:
		return "public"
	case GuestOnly:
		return "guest-only"
	case Protected:
		return "protected"
	case Admin:
		return "admin"
	}
	return "unknown"
}

// Decision is the outcome of a guard check. When Allowed is false the view
// must not render and the caller navigates to Redirect.
type Decision struct {
	Allowed  bool
	Redirect string
	Class    PageClass
}

// Config sets the redirect targets.
type Config struct {
	LoginPath string // where sessionless visitors are sent
	HomePath  string // where signed-in visitors of guest-only and unauthorized admin views are sent
}

func newDefaultConfig() *Config {
	return &Config{
		LoginPath: nav.Login,
		HomePath:  nav.Home,
	}
}

// Guard holds the page-class policy for every path prefix.
type Guard struct {
	log      *slog.Logger
	Policies map[string]PageClass
	Config
	mu sync.RWMutex
}

// NewGuard returns a Guard with no policies. Paths without a matching policy
// are Public. A nil config uses /login and / as redirect targets.
func NewGuard(logger *slog.Logger, config *Config) *Guard {
	if logger == nil {
		logger = logutil.Discard()
	}
	if config == nil {
		config = newDefaultConfig()
	}
	return &Guard{
		log:      logger,
		Policies: make(map[string]PageClass),
		Config:   *config,
	}
}

// SetPolicy assigns class to path and everything below it that has no more
// specific policy.
func (g *Guard) SetPolicy(path string, class PageClass) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	g.Policies[path] = class
}

// FindMatchingPolicy returns the class of the most specific policy covering path.
func (g *Guard) FindMatchingPolicy(path string) (PageClass, bool) {
	pathsToCheck := buildPrefixes(path)

	g.mu.RLock()
	defer g.mu.RUnlock()

	for _, p := range pathsToCheck {
		if class, ok := g.Policies[p]; ok {
			g.log.Debug("guard matched policy", "path", path, "policy_path", p, "class", class)
			return class, true
		}
	}
	return Public, false
}

// Check evaluates the guard for a visit to path by user (nil when signed out).
func (g *Guard) Check(path string, user *models.User) Decision {
	class, _ := g.FindMatchingPolicy(path)
	d := Decision{Allowed: true, Class: class}

	switch class {
	case GuestOnly:
		if user != nil {
			d = Decision{Redirect: g.HomePath, Class: class}
		}
	case Protected:
		if user == nil {
			d = Decision{Redirect: g.LoginPath, Class: class}
		}
	case Admin:
		switch {
		case user == nil:
			d = Decision{Redirect: g.LoginPath, Class: class}
		case !user.Role.AtLeast(models.RoleAdmin):
			d = Decision{Redirect: g.HomePath, Class: class}
		}
	}

	if !d.Allowed {
		g.log.Debug("guard redirected visit", "path", path, "class", class, "redirect", d.Redirect, "role", user.RoleOrGuest())
	}
	return d
}

// buildPrefixes returns a list of paths to check from most specific to least specific.
// For "/a/b/c" it returns ["/a/b/c", "/a/b", "/a", "/"].
func buildPrefixes(path string) []string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) == 1 && segments[0] == "" {
		return []string{"/"}
	}

	prefixes := make([]string, 0, len(segments)+1)
	for i := len(segments); i > 0; i-- {
		prefixes = append(prefixes, "/"+strings.Join(segments[:i], "/"))
	}
	return append(prefixes, "/")
}
