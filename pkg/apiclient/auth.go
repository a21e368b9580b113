package apiclient

import (
	"context"
	"net/http"

	"github.com/VishalGhuge111/hirely/pkg/models"
)

// Credentials is the login form.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Registration is the sign-up form.
type Registration struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// EmailVerification confirms an address with the code sent to it.
type EmailVerification struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"otp"`
}

// PasswordReset sets a new password using an emailed code.
type PasswordReset struct {
	Email       string `json:"email" validate:"required,email"`
	OTP         string `json:"otp" validate:"otp"`
	NewPassword string `json:"password" validate:"required,min=6"`
}

// ProfileUpdate holds the editable profile fields.
type ProfileUpdate struct {
	Name     string `json:"name" validate:"required,max=100"`
	Mobile   string `json:"mobile" validate:"omitempty,max=20"`
	LinkedIn string `json:"linkedin" validate:"omitempty,url"`
}

type emailBody struct {
	Email string `json:"email"`
}

// Login exchanges credentials for a session payload.
func (c *Client) Login(ctx context.Context, in Credentials) (models.AuthPayload, error) {
	var out models.AuthPayload
	err := c.Do(ctx, http.MethodPost, "/auth/login", in, &out)
	return out, err
}

// Register creates an account. Deployments that verify email first reply
// without a token; the caller then continues with VerifyEmail.
func (c *Client) Register(ctx context.Context, in Registration) (models.AuthPayload, error) {
	var out models.AuthPayload
	err := c.Do(ctx, http.MethodPost, "/auth/register", in, &out)
	return out, err
}

func (c *Client) VerifyEmail(ctx context.Context, in EmailVerification) error {
	return c.Do(ctx, http.MethodPost, "/auth/verify-email", in, nil)
}

func (c *Client) ResendOTP(ctx context.Context, email string) error {
	return c.Do(ctx, http.MethodPost, "/auth/resend-otp", emailBody{Email: email}, nil)
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.Do(ctx, http.MethodPost, "/auth/forgot-password", emailBody{Email: email}, nil)
}

func (c *Client) ResetPassword(ctx context.Context, in PasswordReset) error {
	return c.Do(ctx, http.MethodPost, "/auth/reset-password", in, nil)
}

// UpdateProfile saves the profile and returns a fresh session payload.
func (c *Client) UpdateProfile(ctx context.Context, token string, in ProfileUpdate) (models.AuthPayload, error) {
	var out models.AuthPayload
	err := c.Do(ctx, http.MethodPut, "/auth/profile", in, &out, WithBearer(token))
	return out, err
}

// DeleteProfile permanently removes the signed-in account.
func (c *Client) DeleteProfile(ctx context.Context, token string) error {
	return c.Do(ctx, http.MethodDelete, "/auth/profile", nil, nil, WithBearer(token))
}
