package views

import (
	"context"
	"strings"

	"github.com/VishalGhuge111/hirely/pkg/apiclient"
	"github.com/VishalGhuge111/hirely/pkg/nav"
	"github.com/VishalGhuge111/hirely/pkg/validate"
)

// FormState is the state shared by the single-form auth screens.
type FormState struct {
	Submitting bool
	Notice
}

type formView struct {
	base
	state FormState
}

func (v *formView) State() FormState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// begin marks a submission in progress and clears the previous notice.
func (v *formView) begin() {
	v.mu.Lock()
	v.state = FormState{Submitting: true}
	v.mu.Unlock()
}

func (v *formView) finish(n Notice) {
	v.mu.Lock()
	v.state = FormState{Notice: n}
	v.mu.Unlock()
}

// fail records err as the form's error, using the server's message when it
// sent one, and returns err.
func (v *formView) fail(err error, fallback string) error {
	msg := apiclient.Message(err, fallback)
	if verr := validationMessage(err); verr != "" {
		msg = verr
	}
	v.finish(Notice{Error: msg})
	return err
}

// LoginView is the sign-in form.
type LoginView struct {
	formView
}

func NewLogin(d Deps) *LoginView {
	return &LoginView{formView{base: newBase(d, nav.Login)}}
}

// Mount sends signed-in visitors home.
func (v *LoginView) Mount(ctx context.Context) error {
	_, err := v.enter(ctx)
	return err
}

// Submit signs in. On success the session holds the returned user and token
// and the visitor is sent home. The entered credentials are not cleared on
// failure.
func (v *LoginView) Submit(in apiclient.Credentials) error {
	ctx, err := v.active()
	if err != nil {
		return err
	}
	in.Email = strings.TrimSpace(in.Email)
	if err := validate.Struct(in); err != nil {
		return v.fail(err, "")
	}

	v.begin()
	payload, err := v.API.Login(ctx, in)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return v.fail(err, "Login failed. Please try again.")
	}
	if err := v.Session.Login(ctx, payload); err != nil {
		v.finish(Notice{Error: "Login failed. Please try again."})
		return err
	}

	v.finish(Notice{})
	v.Nav.Navigate(nav.Home)
	return nil
}

// RegisterView is the sign-up form.
type RegisterView struct {
	formView
}

func NewRegister(d Deps) *RegisterView {
	return &RegisterView{formView{base: newBase(d, nav.Register)}}
}

// Mount sends signed-in visitors home.
func (v *RegisterView) Mount(ctx context.Context) error {
	_, err := v.enter(ctx)
	return err
}

// Submit creates the account. A response carrying a session signs the user
// in and goes home; one without a token means the address must be verified
// first, so the visitor moves to the verification screen with the email.
func (v *RegisterView) Submit(in apiclient.Registration) error {
	ctx, err := v.active()
	if err != nil {
		return err
	}
	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if err := validate.Struct(in); err != nil {
		return v.fail(err, "")
	}

	v.begin()
	payload, err := v.API.Register(ctx, in)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return v.fail(err, "Registration failed. Try again.")
	}

	if payload.Token == "" {
		v.finish(Notice{Success: "Check your email for a verification code"})
		v.Nav.Navigate(nav.VerifyEmail, nav.WithState(nav.StateEmail, in.Email))
		return nil
	}
	if err := v.Session.Login(ctx, payload); err != nil {
		v.finish(Notice{Error: "Registration failed. Try again."})
		return err
	}
	v.finish(Notice{})
	v.Nav.Navigate(nav.Home)
	return nil
}

// emailStepView is a screen that continues a flow for an address handed over
// in navigation state.
type emailStepView struct {
	formView
	email string
}

// Email is the address the code was sent to.
func (v *emailStepView) Email() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.email
}

func (v *emailStepView) mountWithEmail(ctx context.Context, otherwise string) error {
	email := v.Nav.Current().Value(nav.StateEmail)
	if email == "" {
		return v.redirect(otherwise)
	}
	if _, err := v.enter(ctx); err != nil {
		return err
	}
	v.mu.Lock()
	v.email = email
	v.mu.Unlock()
	return nil
}

// VerifyEmailView confirms a new account with an emailed code.
type VerifyEmailView struct {
	emailStepView
}

func NewVerifyEmail(d Deps) *VerifyEmailView {
	return &VerifyEmailView{emailStepView{formView: formView{base: newBase(d, nav.VerifyEmail)}}}
}

// Mount needs the email in navigation state; without it the visitor is sent
// back to registration.
func (v *VerifyEmailView) Mount(ctx context.Context) error {
	return v.mountWithEmail(ctx, nav.Register)
}

// Submit checks the code and sends the visitor to login.
func (v *VerifyEmailView) Submit(otp string) error {
	ctx, err := v.active()
	if err != nil {
		return err
	}
	in := apiclient.EmailVerification{Email: v.Email(), OTP: strings.TrimSpace(otp)}
	if err := validate.Struct(in); err != nil {
		return v.fail(err, "")
	}

	v.begin()
	err = v.API.VerifyEmail(ctx, in)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return v.fail(err, "OTP verification failed")
	}
	v.finish(Notice{Success: "Email verified successfully."})
	v.Nav.Navigate(nav.Login)
	return nil
}

// Resend asks for a new code.
func (v *VerifyEmailView) Resend() error {
	ctx, err := v.active()
	if err != nil {
		return err
	}
	v.begin()
	err = v.API.ResendOTP(ctx, v.Email())
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return v.fail(err, "Failed to resend OTP")
	}
	v.finish(Notice{Success: "New OTP sent to your email"})
	return nil
}

// ForgotPasswordView requests a reset code.
type ForgotPasswordView struct {
	formView
}

func NewForgotPassword(d Deps) *ForgotPasswordView {
	return &ForgotPasswordView{formView{base: newBase(d, nav.ForgotPassword)}}
}

func (v *ForgotPasswordView) Mount(ctx context.Context) error {
	_, err := v.enter(ctx)
	return err
}

// Submit sends a reset code to email and moves on to the reset screen.
func (v *ForgotPasswordView) Submit(email string) error {
	ctx, err := v.active()
	if err != nil {
		return err
	}
	email = strings.TrimSpace(email)
	if err := validate.Var("email", email, "required,email"); err != nil {
		return v.fail(err, "")
	}

	v.begin()
	err = v.API.ForgotPassword(ctx, email)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return v.fail(err, "Failed to send OTP")
	}
	v.finish(Notice{})
	v.Nav.Navigate(nav.ResetPassword, nav.WithState(nav.StateEmail, email))
	return nil
}

// ResetPasswordView sets a new password with the emailed code.
type ResetPasswordView struct {
	emailStepView
}

func NewResetPassword(d Deps) *ResetPasswordView {
	return &ResetPasswordView{emailStepView{formView: formView{base: newBase(d, nav.ResetPassword)}}}
}

// Mount needs the email in navigation state; without it the visitor is sent
// to the forgot-password screen.
func (v *ResetPasswordView) Mount(ctx context.Context) error {
	return v.mountWithEmail(ctx, nav.ForgotPassword)
}

func (v *ResetPasswordView) Submit(otp, newPassword string) error {
	ctx, err := v.active()
	if err != nil {
		return err
	}
	in := apiclient.PasswordReset{Email: v.Email(), OTP: strings.TrimSpace(otp), NewPassword: newPassword}
	if err := validate.Struct(in); err != nil {
		return v.fail(err, "")
	}

	v.begin()
	err = v.API.ResetPassword(ctx, in)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return v.fail(err, "Reset failed")
	}
	v.finish(Notice{Success: "Password changed successfully"})
	v.Nav.Navigate(nav.Login)
	return nil
}
