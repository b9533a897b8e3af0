package remote_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohmanhakim/whois-client/internal/remote"
)

func TestFetch_BuildsQueryAndReturnsBody(t *testing.T) {
	var gotKey, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("sessionkey")
		gotQuery = r.URL.Query().Get("query")
		w.Write([]byte("<QueryResult>raw record</QueryResult>"))
	}))
	defer server.Close()

	fetcher := remote.NewHTTPFetcher(server.URL, "whois-client-test/1.0", server.Client(), zerolog.Nop())

	body, err := fetcher.Fetch(context.Background(), "ABC123KEY", "example.com")
	require.NoError(t, err)

	assert.Equal(t, []byte("<QueryResult>raw record</QueryResult>"), body)
	assert.Equal(t, "ABC123KEY", gotKey)
	assert.Equal(t, "example.com", gotQuery)
}

func TestFetch_SetsUserAgent(t *testing.T) {
	var gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		w.Write([]byte("record"))
	}))
	defer server.Close()

	fetcher := remote.NewHTTPFetcher(server.URL, "embedding-app/2.3", server.Client(), zerolog.Nop())

	_, err := fetcher.Fetch(context.Background(), "key", "example.com")
	require.NoError(t, err)
	assert.Equal(t, "embedding-app/2.3", gotAgent)
}

func TestFetch_EmptyBodyIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	fetcher := remote.NewHTTPFetcher(server.URL, "", server.Client(), zerolog.Nop())

	_, err := fetcher.Fetch(context.Background(), "key", "example.com")
	require.Error(t, err)

	var fetchErr *remote.FetchError
	if assert.ErrorAs(t, err, &fetchErr) {
		assert.Equal(t, remote.ErrCauseEmptyBody, fetchErr.Cause)
		assert.Equal(t, "example.com", fetchErr.Domain)
	}
}

func TestFetch_BadStatusIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	fetcher := remote.NewHTTPFetcher(server.URL, "", server.Client(), zerolog.Nop())

	_, err := fetcher.Fetch(context.Background(), "key", "example.com")
	require.Error(t, err)

	var fetchErr *remote.FetchError
	if assert.ErrorAs(t, err, &fetchErr) {
		assert.Equal(t, remote.ErrCauseBadStatus, fetchErr.Cause)
	}
}

func TestFetch_NetworkFailureIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := server.Client()
	server.Close()

	fetcher := remote.NewHTTPFetcher(server.URL, "", client, zerolog.Nop())

	_, err := fetcher.Fetch(context.Background(), "key", "example.com")
	require.Error(t, err)

	var fetchErr *remote.FetchError
	if assert.ErrorAs(t, err, &fetchErr) {
		assert.Equal(t, remote.ErrCauseRequestFailed, fetchErr.Cause)
	}
}

func TestFetch_ContextCancellation(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer server.Close()
	defer close(block)

	fetcher := remote.NewHTTPFetcher(server.URL, "", server.Client(), zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fetcher.Fetch(ctx, "key", "example.com")
	require.Error(t, err)

	var fetchErr *remote.FetchError
	assert.ErrorAs(t, err, &fetchErr)
}
