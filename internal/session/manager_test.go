package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohmanhakim/whois-client/internal/session"
)

// fakeAuthServer mimics the remote auth endpoint: credentials get a
// session key, a sessionkey parameter invalidates it.
type fakeAuthServer struct {
	server        *httptest.Server
	loginCount    int
	logoutCount   int
	lastUsername  string
	lastPassword  string
	lastLogoutKey string
	issueKey      string
	failLogin     bool
	emptyBody     bool
}

func newFakeAuthServer(t *testing.T) *fakeAuthServer {
	t.Helper()
	f := &fakeAuthServer{issueKey: "ABC123KEY"}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if key := r.URL.Query().Get("sessionkey"); key != "" {
			f.logoutCount++
			f.lastLogoutKey = key
			w.Write([]byte("<SignOutResult>true</SignOutResult>"))
			return
		}
		f.loginCount++
		f.lastUsername = r.URL.Query().Get("username")
		f.lastPassword = r.URL.Query().Get("password")
		if f.failLogin {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("<Error>bad credentials</Error>"))
			return
		}
		if f.emptyBody {
			return
		}
		w.Write([]byte("<AuthResult><SessionKey>" + f.issueKey + "</SessionKey></AuthResult>"))
	}))
	t.Cleanup(f.server.Close)
	return f
}

func newTestManager(f *fakeAuthServer) *session.Manager {
	return session.NewManager(
		"user",
		"secret",
		f.server.URL,
		"whois-client-test/1.0",
		f.server.Client(),
		zerolog.Nop(),
	)
}

func TestLogin_ExtractsSessionKey(t *testing.T) {
	fake := newFakeAuthServer(t)
	manager := newTestManager(fake)

	err := manager.Login(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "ABC123KEY", manager.SessionKey())
	assert.Equal(t, "user", fake.lastUsername)
	assert.Equal(t, "secret", fake.lastPassword)
	assert.Equal(t, 1, fake.loginCount)
}

func TestLogin_IdempotentOnceKeyHeld(t *testing.T) {
	fake := newFakeAuthServer(t)
	manager := newTestManager(fake)

	require.NoError(t, manager.Login(context.Background()))
	require.NoError(t, manager.Login(context.Background()))
	require.NoError(t, manager.Login(context.Background()))

	assert.Equal(t, 1, fake.loginCount)
	assert.Equal(t, "ABC123KEY", manager.SessionKey())
}

func TestLogin_MissingSessionKeyFails(t *testing.T) {
	fake := newFakeAuthServer(t)
	fake.emptyBody = true
	manager := newTestManager(fake)

	err := manager.Login(context.Background())
	require.Error(t, err)

	var authErr *session.AuthError
	if assert.ErrorAs(t, err, &authErr) {
		assert.Equal(t, session.ErrCauseKeyNotFound, authErr.Cause)
	}
	assert.Empty(t, manager.SessionKey())
}

func TestLogin_UnparsableBodyFails(t *testing.T) {
	fake := newFakeAuthServer(t)
	fake.failLogin = true
	manager := newTestManager(fake)

	err := manager.Login(context.Background())
	require.Error(t, err)

	var authErr *session.AuthError
	if assert.ErrorAs(t, err, &authErr) {
		assert.Equal(t, session.ErrCauseKeyNotFound, authErr.Cause)
	}
}

func TestLogin_NetworkFailureFails(t *testing.T) {
	fake := newFakeAuthServer(t)
	manager := newTestManager(fake)
	fake.server.Close()

	err := manager.Login(context.Background())
	require.Error(t, err)

	var authErr *session.AuthError
	if assert.ErrorAs(t, err, &authErr) {
		assert.Equal(t, session.ErrCauseRequestFailed, authErr.Cause)
	}
}

func TestLogout_SendsHeldKey(t *testing.T) {
	fake := newFakeAuthServer(t)
	manager := newTestManager(fake)

	require.NoError(t, manager.Login(context.Background()))
	manager.Logout(context.Background())

	assert.Equal(t, 1, fake.logoutCount)
	assert.Equal(t, "ABC123KEY", fake.lastLogoutKey)
	assert.Empty(t, manager.SessionKey())
}

func TestLogout_WithoutKeyIsNoOp(t *testing.T) {
	fake := newFakeAuthServer(t)
	manager := newTestManager(fake)

	manager.Logout(context.Background())

	assert.Equal(t, 0, fake.logoutCount)
}

func TestLogout_NetworkFailureIsSwallowed(t *testing.T) {
	fake := newFakeAuthServer(t)
	manager := newTestManager(fake)

	require.NoError(t, manager.Login(context.Background()))
	fake.server.Close()

	// Must not panic or surface an error; the key is cleared regardless.
	manager.Logout(context.Background())
	assert.Empty(t, manager.SessionKey())
}
