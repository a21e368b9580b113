package apiclient

import (
	"context"
	"net/http"
)

// ContactMessage is the public contact form.
type ContactMessage struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

func (c *Client) SendContact(ctx context.Context, in ContactMessage) error {
	return c.Do(ctx, http.MethodPost, "/contact", in, nil)
}
