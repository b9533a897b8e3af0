package session

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"regexp"

	"github.com/rs/zerolog"

	"github.com/rohmanhakim/whois-client/pkg/failure"
)

/*
Responsibilities

- Establish an authenticated session with the remote service
- Hold the session key for the lifetime of the client
- Invalidate the key on teardown

Session Semantics

- Login happens once; a held key makes further logins a no-op
- There is no re-login: a client that lost its key is done
- Logout is best-effort — it runs during teardown, where no caller is
  positioned to react to a failure
*/

// sessionKeyPattern extracts the key from the auth response body. A body
// without a key is treated the same as a failed request.
var sessionKeyPattern = regexp.MustCompile(`<SessionKey>(.+?)</SessionKey>`)

type Manager struct {
	username    string
	password    string
	authBaseURL string
	userAgent   string
	httpClient  *http.Client
	logger      zerolog.Logger

	sessionKey string
}

func NewManager(
	username string,
	password string,
	authBaseURL string,
	userAgent string,
	httpClient *http.Client,
	logger zerolog.Logger,
) *Manager {
	return &Manager{
		username:    username,
		password:    password,
		authBaseURL: authBaseURL,
		userAgent:   userAgent,
		httpClient:  httpClient,
		logger:      logger,
	}
}

// Login authenticates against the remote service and stores the issued
// session key. A no-op when a key is already held.
func (m *Manager) Login(ctx context.Context) failure.ClassifiedError {
	if m.sessionKey != "" {
		return nil
	}

	query := url.Values{}
	query.Set("username", m.username)
	query.Set("password", m.password)

	body, err := m.get(ctx, query)
	if err != nil {
		return &AuthError{
			Message: err.Error(),
			Cause:   ErrCauseRequestFailed,
		}
	}

	match := sessionKeyPattern.FindSubmatch(body)
	if match == nil {
		return &AuthError{
			Message: "auth response does not contain a session key",
			Cause:   ErrCauseKeyNotFound,
		}
	}

	m.sessionKey = string(match[1])
	m.logger.Debug().Msg("session established")
	return nil
}

// Logout invalidates the held session key. Failures are logged, not
// returned as fatal: this runs during teardown. The key is cleared
// either way.
func (m *Manager) Logout(ctx context.Context) {
	if m.sessionKey == "" {
		return
	}

	query := url.Values{}
	query.Set("sessionkey", m.sessionKey)

	if _, err := m.get(ctx, query); err != nil {
		m.logger.Warn().Err(err).Msg("session logout failed")
	} else {
		m.logger.Debug().Msg("session released")
	}
	m.sessionKey = ""
}

// SessionKey returns the current key, or the empty string before login
// and after logout.
func (m *Manager) SessionKey() string {
	return m.sessionKey
}

func (m *Manager) get(ctx context.Context, query url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.authBaseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	if m.userAgent != "" {
		req.Header.Set("User-Agent", m.userAgent)
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}
