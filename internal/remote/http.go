package remote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/rohmanhakim/whois-client/pkg/failure"
)

/*
Responsibilities

- Build the whois query URL from the endpoint, session key and domain
- Perform the HTTP request
- Return the raw record bytes

The fetcher never parses the record and never retries: a failed fetch is
the caller's decision to repeat.
*/

type HTTPFetcher struct {
	whoisBaseURL string
	userAgent    string
	httpClient   *http.Client
	logger       zerolog.Logger
}

func NewHTTPFetcher(
	whoisBaseURL string,
	userAgent string,
	httpClient *http.Client,
	logger zerolog.Logger,
) *HTTPFetcher {
	return &HTTPFetcher{
		whoisBaseURL: whoisBaseURL,
		userAgent:    userAgent,
		httpClient:   httpClient,
		logger:       logger,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, sessionKey string, domain string) ([]byte, failure.ClassifiedError) {
	query := url.Values{}
	query.Set("sessionkey", sessionKey)
	query.Set("query", domain)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.whoisBaseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, &FetchError{
			Message: err.Error(),
			Cause:   ErrCauseRequestFailed,
			Domain:  domain,
		}
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{
			Message: err.Error(),
			Cause:   ErrCauseRequestFailed,
			Domain:  domain,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{
			Message: fmt.Sprintf("unexpected status %d", resp.StatusCode),
			Cause:   ErrCauseBadStatus,
			Domain:  domain,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{
			Message: err.Error(),
			Cause:   ErrCauseBodyReadFailed,
			Domain:  domain,
		}
	}
	if len(body) == 0 {
		return nil, &FetchError{
			Message: "response body is empty",
			Cause:   ErrCauseEmptyBody,
			Domain:  domain,
		}
	}

	f.logger.Debug().
		Str("domain", domain).
		Int("bytes", len(body)).
		Msg("whois record fetched")
	return body, nil
}
