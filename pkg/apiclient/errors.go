package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinels for errors.Is. They match any APIError with the same status;
// ErrValidation also matches 422.
var (
	ErrUnauthorized = &APIError{Status: http.StatusUnauthorized}
	ErrForbidden    = &APIError{Status: http.StatusForbidden}
	ErrNotFound     = &APIError{Status: http.StatusNotFound}
	ErrValidation   = &APIError{Status: http.StatusBadRequest}
)

// APIError is a non-2xx response. Message is the server's message field when
// it sent one.
type APIError struct {
	Status  int
	Message string
	Method  string
	Path    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s %s: %d: %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("api: %s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
}

func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	if t.Status == http.StatusBadRequest {
		return e.Status == http.StatusBadRequest || e.Status == http.StatusUnprocessableEntity
	}
	return t.Status == e.Status
}

// TransportError is a request that never produced an HTTP response.
type TransportError struct {
	Method string
	Path   string
	err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("api: %s %s: %v", e.Method, e.Path, e.err)
}

func (e *TransportError) Unwrap() error {
	return e.err
}

// errorBody covers the envelopes the API uses for failures.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Details string `json:"details"`
}

func parseErrorBody(b []byte) string {
	var parsed errorBody
	if err := json.Unmarshal(b, &parsed); err != nil {
		return ""
	}
	for _, m := range []string{parsed.Message, parsed.Error, parsed.Details} {
		if m = strings.TrimSpace(m); m != "" {
			return m
		}
	}
	return ""
}

// Message turns err into text fit for showing next to a form: the server's
// message when there is one, otherwise fallback.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
