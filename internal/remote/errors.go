package remote

import (
	"fmt"

	"github.com/rohmanhakim/whois-client/pkg/failure"
)

type FetchErrorCause string

const (
	ErrCauseRequestFailed  FetchErrorCause = "request failed"
	ErrCauseBadStatus      FetchErrorCause = "unexpected status"
	ErrCauseBodyReadFailed FetchErrorCause = "failed to read response body"
	ErrCauseEmptyBody      FetchErrorCause = "empty response body"
)

// FetchError is transient from the client's point of view: the caller
// decides whether to repeat the lookup.
type FetchError struct {
	Message string
	Cause   FetchErrorCause
	Domain  string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("remote fetch error: %s: %s", e.Cause, e.Message)
}

func (e *FetchError) Severity() failure.Severity {
	return failure.SeverityRecoverable
}

func (e *FetchError) IsRetryable() bool {
	return true
}
