package views

import (
	"context"

	"github.com/VishalGhuge111/hirely/pkg/access"
	"github.com/VishalGhuge111/hirely/pkg/nav"
)

// NavbarState is the header shown on every screen.
type NavbarState struct {
	Main     []access.MenuItem
	Account  []access.MenuItem
	UserName string
}

// Navbar follows the session; it has no lifetime of its own.
type Navbar struct {
	Deps
}

func NewNavbar(d Deps) *Navbar {
	return &Navbar{Deps: d}
}

func (n *Navbar) State() NavbarState {
	user := n.Session.User()
	st := NavbarState{
		Main:    access.MainMenu(),
		Account: access.AccountMenu(user),
	}
	if user != nil {
		st.UserName = user.Name
	}
	return st
}

// Logout ends the session and sends the visitor to login. A mounted
// protected page may already have replaced itself with login; no second
// entry is pushed then.
func (n *Navbar) Logout(ctx context.Context) error {
	err := n.Session.Logout(ctx)
	if n.Nav.Current().Path != nav.Login {
		n.Nav.Navigate(nav.Login)
	}
	return err
}
