package access

import (
	"github.com/VishalGhuge111/hirely/pkg/models"
	"github.com/VishalGhuge111/hirely/pkg/nav"
)

// LoadDefaultPolicies installs the rules for hirely's views.
func (g *Guard) LoadDefaultPolicies() {
	g.SetPolicy(nav.Home, Public)
	g.SetPolicy(nav.Jobs, Public)
	g.SetPolicy(nav.About, Public)
	g.SetPolicy(nav.Contact, Public)
	g.SetPolicy(nav.VerifyEmail, Public)
	g.SetPolicy(nav.ForgotPassword, Public)
	g.SetPolicy(nav.ResetPassword, Public)

	g.SetPolicy(nav.Login, GuestOnly)
	g.SetPolicy(nav.Register, GuestOnly)

	g.SetPolicy(nav.Dashboard, Protected)
	g.SetPolicy(nav.Profile, Protected)

	g.SetPolicy("/admin", Admin)
}

// DashboardFor is the landing view for user's role.
func DashboardFor(user *models.User) string {
	switch {
	case user == nil:
		return nav.Login
	case user.IsAdmin():
		return nav.AdminDashboard
	default:
		return nav.Dashboard
	}
}

// MenuItem is one navigation link.
type MenuItem struct {
	Label string
	Path  string
}

// LogoutLabel marks the account menu item that ends the session. It has no Path.
const LogoutLabel = "Logout"

// MainMenu is shown to everyone.
func MainMenu() []MenuItem {
	return []MenuItem{
		{Label: "Home", Path: nav.Home},
		{Label: "About", Path: nav.About},
		{Label: "Jobs", Path: nav.Jobs},
		{Label: "Contact", Path: nav.Contact},
	}
}

// AccountMenu returns the session-dependent items: sign-in links for guests,
// profile, dashboard and logout for users. Admins get the admin panel in
// place of their applications.
func AccountMenu(user *models.User) []MenuItem {
	if user == nil {
		return []MenuItem{
			{Label: "Login", Path: nav.Login},
			{Label: "Join", Path: nav.Register},
		}
	}
	dashboard := MenuItem{Label: "Applications", Path: nav.Dashboard}
	if user.IsAdmin() {
		dashboard = MenuItem{Label: "Admin Panel", Path: nav.AdminDashboard}
	}
	return []MenuItem{
		{Label: "My Profile", Path: nav.Profile},
		dashboard,
		{Label: LogoutLabel},
	}
}

// HomeCTAs are the home page calls to action: browsing jobs and the
// dashboard for a session, sign-in and sign-up otherwise.
func HomeCTAs(user *models.User) (primary, secondary MenuItem) {
	if user == nil {
		return MenuItem{Label: "Get Started", Path: nav.Login}, MenuItem{Label: "Sign Up", Path: nav.Register}
	}
	return MenuItem{Label: "Get Started", Path: nav.Jobs}, MenuItem{Label: "Go to Dashboard", Path: nav.Dashboard}
}
