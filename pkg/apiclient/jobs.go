package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/VishalGhuge111/hirely/pkg/models"
)

func jobPath(id string) string {
	return "/jobs/" + url.PathEscape(id)
}

// ListJobs returns every listing, open or closed.
func (c *Client) ListJobs(ctx context.Context) ([]models.Job, error) {
	var out []models.Job
	err := c.Do(ctx, http.MethodGet, "/jobs", nil, &out)
	return out, err
}

// GetJob returns one listing. A missing job is an error matching ErrNotFound.
func (c *Client) GetJob(ctx context.Context, id string) (models.Job, error) {
	var out models.Job
	err := c.Do(ctx, http.MethodGet, jobPath(id), nil, &out)
	return out, err
}

func (c *Client) CreateJob(ctx context.Context, token string, in models.JobInput) error {
	return c.Do(ctx, http.MethodPost, "/jobs", in, nil, WithBearer(token))
}

func (c *Client) UpdateJob(ctx context.Context, token, id string, in models.JobInput) error {
	return c.Do(ctx, http.MethodPut, jobPath(id), in, nil, WithBearer(token))
}

// SetJobActive opens or closes a listing for new applications.
func (c *Client) SetJobActive(ctx context.Context, token, id string, active bool) error {
	body := struct {
		IsActive bool `json:"isActive"`
	}{active}
	return c.Do(ctx, http.MethodPut, jobPath(id), body, nil, WithBearer(token))
}

func (c *Client) DeleteJob(ctx context.Context, token, id string) error {
	return c.Do(ctx, http.MethodDelete, jobPath(id), nil, nil, WithBearer(token))
}
