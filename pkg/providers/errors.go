package providers

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// Sentinel errors for the distinct backend failure kinds. Callers classify
// with errors.Is; BackendError additionally carries the HTTP status and body.
var (
	// ErrUnreachable means the backend could not be contacted at all.
	ErrUnreachable = errors.New("backend unreachable")

	// ErrTimeout means the request exceeded the configured budget.
	ErrTimeout = errors.New("backend timeout")

	// ErrMalformedResponse means the response body was missing the
	// expected fields or was not valid JSON.
	ErrMalformedResponse = errors.New("malformed backend response")

	// ErrEmptyText is returned when a caller submits empty input.
	ErrEmptyText = errors.New("empty text provided")
)

// BackendError reports a non-2xx response from the backend.
type BackendError struct {
	StatusCode int
	Body       string
}

func (e *BackendError) Error() string {
	body := e.Body
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, body)
}

// ClassifyTransportError maps a transport-level error onto the failure
// taxonomy so callers can distinguish an unreachable backend from a timeout.
func ClassifyTransportError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	msg := err.Error()
	if strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "network is unreachable") {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	return fmt.Errorf("%w: %v", ErrUnreachable, err)
}

// IsRetryable reports whether the error is worth retrying inside the
// client. Non-2xx statuses below 500 and malformed responses are not.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrUnreachable) || errors.Is(err, ErrTimeout) {
		return true
	}
	var be *BackendError
	if errors.As(err, &be) {
		return be.StatusCode >= 500 || be.StatusCode == 429
	}
	return false
}
