// Package apierr defines the error taxonomy shared by the sankaku packages.
//
// Client-side precondition failures are sentinel values that can be matched with
// errors.Is. Failures that carry a server response are typed errors that can be
// matched with errors.As.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrConfig indicates invalid or conflicting client-side configuration
	ErrConfig = errors.New("invalid configuration")
	// ErrConflictingRateLimit indicates both rps and rpm were given
	ErrConflictingRateLimit = fmt.Errorf("%w: can't set both rps and rpm at once", ErrConfig)
	// ErrMissingRateLimit indicates neither rps nor rpm was given
	ErrMissingRateLimit = fmt.Errorf("%w: at least one of rps or rpm must be specified", ErrConfig)
	// ErrInvalidLogin indicates that neither credentials nor an access token were given
	ErrInvalidLogin = fmt.Errorf("%w: login requires login and password or an access token", ErrConfig)
	// ErrVideoDuration indicates a video duration filter without a video file type
	ErrVideoDuration = errors.New("video duration filter is only available with file type video")
	// ErrLoginRequired indicates an operation that needs an authenticated session
	ErrLoginRequired = errors.New("login required: this operation is only available for logged-in users")
)

// ServerError represents a non-ok, malformed or error-coded API response
type ServerError struct {
	Status  int
	Message string
	Payload []byte
}

// Error implements the error interface
func (e *ServerError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if len(e.Payload) > 0 {
		return fmt.Sprintf("sankaku server error: status %d: %s: %s", e.Status, msg, e.Payload)
	}
	return fmt.Sprintf("sankaku server error: status %d: %s", e.Status, msg)
}

// AuthorizationError represents a failed login or token validation
type AuthorizationError struct {
	Status  int
	Payload []byte
}

// Error implements the error interface
func (e *AuthorizationError) Error() string {
	if len(e.Payload) > 0 {
		return fmt.Sprintf("authorization failed: status %d: %s", e.Status, e.Payload)
	}
	return fmt.Sprintf("authorization failed: status %d", e.Status)
}

// NotFoundError represents a by-id lookup that the server rejected
type NotFoundError struct {
	Status int
	// ID is the requested identifier (numeric id or name)
	ID any
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %v (status %d)", e.ID, e.Status)
}

// IsNotFound reports whether err is, or wraps, a NotFoundError
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsUnauthorized reports whether err is, or wraps, an AuthorizationError or a
// ServerError with a 401/403 status
func IsUnauthorized(err error) bool {
	var ae *AuthorizationError
	if errors.As(err, &ae) {
		return true
	}
	var se *ServerError
	if errors.As(err, &se) {
		return se.Status == http.StatusUnauthorized || se.Status == http.StatusForbidden
	}
	return false
}
