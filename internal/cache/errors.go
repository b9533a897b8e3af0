package cache

import (
	"fmt"

	"github.com/rohmanhakim/whois-client/pkg/failure"
)

type CacheErrorCause string

const (
	ErrCauseEmptyDomain   CacheErrorCause = "empty domain"
	ErrCauseReadFailure   CacheErrorCause = "read failed"
	ErrCauseWriteFailure  CacheErrorCause = "write failed"
	ErrCauseDeleteFailure CacheErrorCause = "delete failed"
	ErrCauseMissingEntry  CacheErrorCause = "entry does not exist"
)

type CacheError struct {
	Message   string
	Retryable bool
	Cause     CacheErrorCause
	Domain    string
	Path      string
}

func (e *CacheError) Error() string {
	return fmt.Sprintf("cache error: %s: %s", e.Cause, e.Message)
}

func (e *CacheError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

func (e *CacheError) IsRetryable() bool {
	return e.Retryable
}
