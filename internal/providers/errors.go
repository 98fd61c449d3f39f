package providers

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// StatusError captures non-2xx responses from a registration site.
type StatusError struct {
	Source     string
	StatusCode int
	RetryAfter time.Duration
	Message    string
}

func (e *StatusError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "unexpected upstream status"
	}
	if e.Source != "" {
		msg = e.Source + ": " + msg
	}
	return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
}

// RateLimited reports whether the upstream asked us to slow down.
func (e *StatusError) RateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// Permanent reports whether retrying the same request is pointless.
func (e *StatusError) Permanent() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500 && !e.RateLimited()
}

// AsStatusError attempts to unwrap an error into a StatusError.
func AsStatusError(err error) (*StatusError, bool) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr, true
	}
	return nil, false
}
