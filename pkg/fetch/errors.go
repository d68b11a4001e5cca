package fetch

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError is returned when the dashboard, or the API server proxying to
// it, answers with a non-successful HTTP status.
type StatusError struct {
	Status int
	Text   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Text)
}

// StatusCode returns the HTTP status carried by err, or 0 if err does not
// carry one.
func StatusCode(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Status
	}
	return 0
}

// Error is a fetch failure translated into a message a user can act on.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Classify translates a failure to fetch from dashboardURL. Proxy paths and
// absolute URLs fail for different reasons, so they get different hints.
func Classify(dashboardURL string, err error) *Error {
	status := StatusCode(err)
	var message string
	if IsFullURL(dashboardURL) {
		switch status {
		case http.StatusForbidden:
			message = "Access denied (403). Check authentication and CORS configuration."
		case http.StatusNotFound:
			message = "Polaris dashboard not found (404). Verify the URL is correct."
		default:
			message = fmt.Sprintf("Failed to fetch from %s: %v", ResultsURL(dashboardURL), err)
		}
	} else {
		switch status {
		case http.StatusForbidden:
			message = "Access denied (403). Check that your RBAC permissions allow proxying to the Polaris service."
		case http.StatusNotFound, http.StatusServiceUnavailable:
			message = "Polaris dashboard not reachable. Ensure Polaris is installed in the configured namespace."
		default:
			message = fmt.Sprintf("Failed to fetch Polaris data: %v", err)
		}
	}
	return &Error{Message: message, Err: err}
}
