package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/VishalGhuge111/hirely/pkg/models"
)

// MyApplications lists the signed-in user's applications.
func (c *Client) MyApplications(ctx context.Context, token string) ([]models.Application, error) {
	var out []models.Application
	err := c.Do(ctx, http.MethodGet, "/applications/user", nil, &out, WithBearer(token))
	return out, err
}

// AllApplications lists every application. Admin only.
func (c *Client) AllApplications(ctx context.Context, token string) ([]models.Application, error) {
	var out []models.Application
	err := c.Do(ctx, http.MethodGet, "/applications/admin", nil, &out, WithBearer(token))
	return out, err
}

// ApplicationForJob returns the signed-in user's application to jobID, or
// nil when the server answers with an empty body.
func (c *Client) ApplicationForJob(ctx context.Context, token, jobID string) (*models.Application, error) {
	var out *models.Application
	err := c.Do(ctx, http.MethodGet, "/applications/job/"+url.PathEscape(jobID), nil, &out, WithBearer(token))
	return out, err
}

// Apply submits an application to jobID.
func (c *Client) Apply(ctx context.Context, token, jobID, resumeLink string) error {
	body := struct {
		ResumeLink string `json:"resumeLink"`
	}{resumeLink}
	return c.Do(ctx, http.MethodPost, "/applications/"+url.PathEscape(jobID), body, nil, WithBearer(token))
}

// UpdateApplicationStatus moves an application to status. Admin only.
func (c *Client) UpdateApplicationStatus(ctx context.Context, token, appID string, status models.ApplicationStatus) error {
	body := struct {
		Status models.ApplicationStatus `json:"status"`
	}{status}
	return c.Do(ctx, http.MethodPatch, "/applications/"+url.PathEscape(appID)+"/status", body, nil, WithBearer(token))
}
