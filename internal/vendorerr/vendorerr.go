// Package vendorerr holds the error taxonomy shared by every upstream vendor client.
//
// Callers classify failures with errors.As:
//
//	var herr *vendorerr.HTTPError
//	if errors.As(err, &herr) && herr.Status == http.StatusNotFound { ... }
package vendorerr

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// SessionError reports that acquiring the vendor session failed.
// Step is "cookie" or "token".
type SessionError struct {
	Step string
	Err  error
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("session acquisition failed at %s step: %v", e.Step, e.Err)
}

func (e *SessionError) Unwrap() error { return e.Err }

// HTTPError is a non-success status returned by a vendor.
type HTTPError struct {
	Status int
	URL    string
	Body   string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upstream %s returned status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("upstream %s returned status %d: %s", e.URL, e.Status, e.Body)
}

// IsAuth reports whether the status means the credentials were rejected.
func (e *HTTPError) IsAuth() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// TimeoutError reports that a vendor call exceeded its deadline.
type TimeoutError struct {
	Op  string
	Err error
}

func (e *TimeoutError) Error() string { return fmt.Sprintf("%s: deadline exceeded", e.Op) }

func (e *TimeoutError) Unwrap() error { return e.Err }

// DataError is a success status whose payload lacks expected fields.
type DataError struct {
	Op     string
	Reason string
}

func (e *DataError) Error() string { return fmt.Sprintf("%s: %s", e.Op, e.Reason) }

// ParseError reports malformed feed or HTML content.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string { return fmt.Sprintf("parse %s: %v", e.Source, e.Err) }

func (e *ParseError) Unwrap() error { return e.Err }

// FromTransport classifies an error returned by http.Client.Do or a body read.
// Deadline errors become *TimeoutError; everything else is wrapped with op.
func FromTransport(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Op: op, Err: err}
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return &TimeoutError{Op: op, Err: err}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// IsAuth reports whether err carries a 401/403 vendor status.
func IsAuth(err error) bool {
	var herr *HTTPError
	return errors.As(err, &herr) && herr.IsAuth()
}
