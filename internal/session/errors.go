package session

import (
	"fmt"

	"github.com/rohmanhakim/whois-client/pkg/failure"
)

type AuthErrorCause string

const (
	ErrCauseRequestFailed AuthErrorCause = "auth request failed"
	ErrCauseKeyNotFound   AuthErrorCause = "session key not found in response"
)

// AuthError aborts client construction. There is no retry path: a failed
// auth request and an unparsable auth response are treated identically.
type AuthError struct {
	Message string
	Cause   AuthErrorCause
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication error: %s: %s", e.Cause, e.Message)
}

func (e *AuthError) Severity() failure.Severity {
	return failure.SeverityFatal
}

func (e *AuthError) IsRetryable() bool {
	return false
}
