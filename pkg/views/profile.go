package views

import (
	"context"
	"strings"
	"time"

	"github.com/VishalGhuge111/hirely/pkg/apiclient"
	"github.com/VishalGhuge111/hirely/pkg/models"
	"github.com/VishalGhuge111/hirely/pkg/nav"
	"github.com/VishalGhuge111/hirely/pkg/validate"
)

// ProfileState is what the profile screen shows.
type ProfileState struct {
	User        *models.User
	Form        apiclient.ProfileUpdate
	TokenExpiry time.Time // zero when the token carries no readable expiry
	Saving      bool
	Notice
}

// ProfileView shows and edits the signed-in user's account.
type ProfileView struct {
	base
	state ProfileState
}

func NewProfile(d Deps) *ProfileView {
	return &ProfileView{base: newBase(d, nav.Profile)}
}

// Mount requires a session and fills the form from the current user.
func (v *ProfileView) Mount(ctx context.Context) error {
	if _, err := v.enter(ctx); err != nil {
		return err
	}
	v.mu.Lock()
	v.state = ProfileState{}
	v.mu.Unlock()
	v.refresh()
	return nil
}

func (v *ProfileView) refresh() {
	user := v.Session.User()
	exp, _ := v.Session.TokenExpiry()

	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.User = user
	v.state.TokenExpiry = exp
	if user != nil {
		v.state.Form = apiclient.ProfileUpdate{Name: user.Name, Mobile: user.Mobile, LinkedIn: user.LinkedIn}
	}
}

func (v *ProfileView) State() ProfileState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

func (v *ProfileView) setNotice(n Notice) {
	v.mu.Lock()
	v.state.Saving = false
	v.state.Notice = n
	v.mu.Unlock()
}

// Save updates the profile. The server answers with a fresh user and token
// which replace the session as a whole.
func (v *ProfileView) Save(in apiclient.ProfileUpdate) error {
	ctx, err := v.active()
	if err != nil {
		return err
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Mobile = strings.TrimSpace(in.Mobile)
	in.LinkedIn = strings.TrimSpace(in.LinkedIn)
	if err := validate.Struct(in); err != nil {
		v.setNotice(Notice{Error: validationMessage(err)})
		return err
	}

	v.mu.Lock()
	v.state.Saving = true
	v.state.Notice = Notice{}
	v.mu.Unlock()

	payload, err := v.API.UpdateProfile(ctx, v.token(), in)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err == nil {
		err = v.Session.UpdateUser(ctx, payload)
	}
	if err != nil {
		v.setNotice(Notice{Error: apiclient.Message(err, "Failed to update profile")})
		return err
	}

	v.refresh()
	v.setNotice(Notice{Success: "Profile updated successfully!"})
	return nil
}

// DeleteAccount removes the account, ends the session and sends the visitor
// to registration.
func (v *ProfileView) DeleteAccount() error {
	ctx, err := v.active()
	if err != nil {
		return err
	}
	err = v.API.DeleteProfile(ctx, v.token())
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		v.setNotice(Notice{Error: "Failed to delete account. Try again."})
		return err
	}

	v.detach()
	if err := v.Session.Logout(ctx); err != nil {
		v.Log.Warn("account deleted but session record not removed", "err", err)
	}
	v.Nav.Navigate(nav.Register)
	return nil
}

// Logout ends the session and sends the visitor to login.
func (v *ProfileView) Logout() error {
	ctx, err := v.active()
	if err != nil {
		return err
	}
	v.detach()
	err = v.Session.Logout(ctx)
	v.Nav.Navigate(nav.Login)
	return err
}
