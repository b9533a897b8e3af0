package remote

import (
	"context"

	"github.com/rohmanhakim/whois-client/pkg/failure"
)

// Fetcher issues the authenticated whois query for a domain and returns
// the raw response body. It never touches the cache — that is the
// orchestrator's job.
type Fetcher interface {
	Fetch(ctx context.Context, sessionKey string, domain string) ([]byte, failure.ClassifiedError)
}
