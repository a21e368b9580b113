package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/VishalGhuge111/hirely/pkg/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorded captures what the fake API saw.
type recorded struct {
	method, path, auth, requestID, contentType string
	body                                       map[string]any
}

func fakeAPI(t *testing.T, status int, response string) (*httptest.Server, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.EscapedPath()
		rec.auth = r.Header.Get("Authorization")
		rec.requestID = r.Header.Get(RequestIDHeader)
		rec.contentType = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		if len(b) > 0 {
			_ = json.Unmarshal(b, &rec.body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func TestNew_TrimsBaseURL(t *testing.T) {
	c := New(" http://api.local/api/ ")
	assert.Equal(t, "http://api.local/api", c.BaseURL())
}

func TestDo_NoDefaultAuthHeader(t *testing.T) {
	srv, rec := fakeAPI(t, http.StatusOK, `[]`)
	c := New(srv.URL)

	_, err := c.ListJobs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rec.auth)
	_, err = uuid.Parse(rec.requestID)
	assert.NoError(t, err)
}

func TestDo_BearerPerCall(t *testing.T) {
	srv, rec := fakeAPI(t, http.StatusOK, `[]`)
	c := New(srv.URL)

	_, err := c.MyApplications(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, "Bearer t1", rec.auth)
	assert.Equal(t, "/applications/user", rec.path)

	_, err = c.MyApplications(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, rec.auth, "empty token attaches nothing")
}

func TestLogin_DecodesPayload(t *testing.T) {
	srv, rec := fakeAPI(t, http.StatusOK, `{"user":{"_id":"1","name":"Ada","email":"a@b.com","role":"user"},"token":"t1"}`)
	c := New(srv.URL)

	p, err := c.Login(context.Background(), Credentials{Email: "a@b.com", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/auth/login", rec.path)
	assert.Equal(t, "application/json", rec.contentType)
	assert.Equal(t, map[string]any{"email": "a@b.com", "password": "x"}, rec.body)

	require.NotNil(t, p.User)
	assert.Equal(t, "1", p.User.ID)
	assert.Equal(t, models.RoleUser, p.User.Role)
	assert.Equal(t, "t1", p.Token)
}

func TestDo_Unauthorized(t *testing.T) {
	srv, _ := fakeAPI(t, http.StatusUnauthorized, `{"message":"Token expired"}`)

	var calls atomic.Int32
	c := New(srv.URL, WithUnauthorizedHandler(UnauthorizedFunc(func(ctx context.Context) {
		assert.NoError(t, ctx.Err())
		calls.Add(1)
	})))

	_, err := c.MyApplications(context.Background(), "stale")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "Token expired", Message(err, "fallback"))
	assert.Equal(t, int32(1), calls.Load())

	// any endpoint triggers it, with or without a token
	_, err = c.ListJobs(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, int32(2), calls.Load())
}

func TestDo_UnauthorizedHandlerSurvivesCancelledCaller(t *testing.T) {
	srv, _ := fakeAPI(t, http.StatusUnauthorized, `{}`)
	ctx, cancel := context.WithCancel(context.Background())

	var handlerErr error
	c := New(srv.URL, WithUnauthorizedHandler(UnauthorizedFunc(func(hctx context.Context) {
		cancel()
		handlerErr = hctx.Err()
	})))

	err := c.DeleteProfile(ctx, "t")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.NoError(t, handlerErr)
}

func TestDo_ErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		sentinel error
		message  string
	}{
		{"validation", http.StatusBadRequest, `{"message":"Email already exists"}`, ErrValidation, "Email already exists"},
		{"unprocessable", http.StatusUnprocessableEntity, `{"error":"bad otp"}`, ErrValidation, "bad otp"},
		{"forbidden", http.StatusForbidden, `{"message":"Admins only"}`, ErrForbidden, "Admins only"},
		{"not found", http.StatusNotFound, `not json`, ErrNotFound, "fallback"},
		{"server", http.StatusInternalServerError, ``, nil, "fallback"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := fakeAPI(t, tt.status, tt.body)
			called := false
			c := New(srv.URL, WithUnauthorizedHandler(UnauthorizedFunc(func(context.Context) { called = true })))

			_, err := c.GetJob(context.Background(), "42")
			require.Error(t, err)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			if tt.sentinel != nil {
				assert.ErrorIs(t, err, tt.sentinel)
			}
			assert.NotErrorIs(t, err, ErrUnauthorized)
			assert.Equal(t, tt.message, Message(err, "fallback"))
			assert.False(t, called)
		})
	}
}

func TestDo_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url)
	_, err := c.ListJobs(context.Background())

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "/jobs", te.Path)
	assert.Equal(t, "offline", Message(err, "offline"))
}

func TestDo_CancelledContext(t *testing.T) {
	srv, _ := fakeAPI(t, http.StatusOK, `[]`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(srv.URL).ListJobs(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDo_UndecodableBody(t *testing.T) {
	srv, _ := fakeAPI(t, http.StatusOK, `{"jobs":`)
	_, err := New(srv.URL).ListJobs(context.Background())

	var de *models.DecodeError
	assert.ErrorAs(t, err, &de)
}

func TestApplicationForJob(t *testing.T) {
	t.Run("existing", func(t *testing.T) {
		srv, rec := fakeAPI(t, http.StatusOK, `{"_id":"a1","jobId":"j1","userId":"u1","status":"Shortlisted"}`)
		app, err := New(srv.URL).ApplicationForJob(context.Background(), "t", "j1")
		require.NoError(t, err)
		require.NotNil(t, app)
		assert.Equal(t, "/applications/job/j1", rec.path)
		assert.Equal(t, "a1", app.ID)
		assert.Equal(t, models.StatusShortlisted, app.Status)
	})
	t.Run("null body", func(t *testing.T) {
		srv, _ := fakeAPI(t, http.StatusOK, `null`)
		app, err := New(srv.URL).ApplicationForJob(context.Background(), "t", "j1")
		require.NoError(t, err)
		assert.Nil(t, app)
	})
}

func TestEndpoints_RequestShapes(t *testing.T) {
	active := true
	job := models.JobInput{Title: "Go Dev", Company: "Acme", Location: "Remote", Type: models.JobTypeInternship,
		Description: "<p>d</p>", Requirements: "<ul><li>r</li></ul>", IsActive: &active}

	tests := []struct {
		name       string
		call       func(c *Client) error
		wantMethod string
		wantPath   string
		wantAuth   string
		wantBody   map[string]any
	}{
		{"register", func(c *Client) error {
			_, err := c.Register(context.Background(), Registration{Name: "Ada", Email: "a@b.com", Password: "secret"})
			return err
		}, http.MethodPost, "/auth/register", "", map[string]any{"name": "Ada", "email": "a@b.com", "password": "secret"}},
		{"verify", func(c *Client) error {
			return c.VerifyEmail(context.Background(), EmailVerification{Email: "a@b.com", OTP: "123456"})
		}, http.MethodPost, "/auth/verify-email", "", map[string]any{"email": "a@b.com", "otp": "123456"}},
		{"resend", func(c *Client) error {
			return c.ResendOTP(context.Background(), "a@b.com")
		}, http.MethodPost, "/auth/resend-otp", "", map[string]any{"email": "a@b.com"}},
		{"forgot", func(c *Client) error {
			return c.ForgotPassword(context.Background(), "a@b.com")
		}, http.MethodPost, "/auth/forgot-password", "", map[string]any{"email": "a@b.com"}},
		{"reset", func(c *Client) error {
			return c.ResetPassword(context.Background(), PasswordReset{Email: "a@b.com", OTP: "123456", NewPassword: "n3w"})
		}, http.MethodPost, "/auth/reset-password", "", map[string]any{"email": "a@b.com", "otp": "123456", "password": "n3w"}},
		{"update profile", func(c *Client) error {
			_, err := c.UpdateProfile(context.Background(), "t", ProfileUpdate{Name: "Ada", Mobile: "555"})
			return err
		}, http.MethodPut, "/auth/profile", "Bearer t", map[string]any{"name": "Ada", "mobile": "555", "linkedin": ""}},
		{"delete profile", func(c *Client) error {
			return c.DeleteProfile(context.Background(), "t")
		}, http.MethodDelete, "/auth/profile", "Bearer t", nil},
		{"create job", func(c *Client) error {
			return c.CreateJob(context.Background(), "t", job)
		}, http.MethodPost, "/jobs", "Bearer t", map[string]any{"title": "Go Dev", "company": "Acme", "location": "Remote",
			"type": "Internship", "description": "<p>d</p>", "requirements": "<ul><li>r</li></ul>", "isActive": true}},
		{"close job", func(c *Client) error {
			return c.SetJobActive(context.Background(), "t", "j1", false)
		}, http.MethodPut, "/jobs/j1", "Bearer t", map[string]any{"isActive": false}},
		{"delete job", func(c *Client) error {
			return c.DeleteJob(context.Background(), "t", "j1")
		}, http.MethodDelete, "/jobs/j1", "Bearer t", nil},
		{"apply", func(c *Client) error {
			return c.Apply(context.Background(), "t", "j1", "https://cv.example/ada")
		}, http.MethodPost, "/applications/j1", "Bearer t", map[string]any{"resumeLink": "https://cv.example/ada"}},
		{"status", func(c *Client) error {
			return c.UpdateApplicationStatus(context.Background(), "t", "a1", models.StatusSelected)
		}, http.MethodPatch, "/applications/a1/status", "Bearer t", map[string]any{"status": "Selected"}},
		{"contact", func(c *Client) error {
			return c.SendContact(context.Background(), ContactMessage{Name: "Ada", Email: "a@b.com", Subject: "Hi", Message: "Hello"})
		}, http.MethodPost, "/contact", "", map[string]any{"name": "Ada", "email": "a@b.com", "subject": "Hi", "message": "Hello"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, rec := fakeAPI(t, http.StatusOK, `{}`)
			require.NoError(t, tt.call(New(srv.URL)))
			assert.Equal(t, tt.wantMethod, rec.method)
			assert.Equal(t, tt.wantPath, rec.path)
			assert.Equal(t, tt.wantAuth, rec.auth)
			assert.Equal(t, tt.wantBody, rec.body)
		})
	}
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "", Message(nil, "x"))
	assert.Equal(t, "x", Message(errors.New("boom"), "x"))
	assert.Equal(t, "x", Message(&APIError{Status: 500}, "x"))
	assert.Equal(t, "nope", Message(&APIError{Status: 400, Message: "nope"}, "x"))
}
