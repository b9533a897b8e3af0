// Package whoisclient is a session-authenticated client for a remote
// whois lookup service with a write-through, file-backed cache keyed by
// domain name.
//
// A client logs in once at construction and holds the session for its
// lifetime; Close releases it. Lookups are served from the cache tree
// when possible and fetched live otherwise. The cache layout
// (<root>/<shard>/<domain>.xml) is shared with other processes, so entry
// I/O is serialized with file locks.
package whoisclient

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/rohmanhakim/whois-client/internal/cache"
	"github.com/rohmanhakim/whois-client/internal/client"
	"github.com/rohmanhakim/whois-client/internal/config"
	"github.com/rohmanhakim/whois-client/internal/remote"
	"github.com/rohmanhakim/whois-client/internal/session"
)

type Client = client.Client

type Config = config.Config

// Error types surfaced by the client, re-exported so embedding
// applications can match on them with errors.As.
type (
	AuthError  = session.AuthError
	CacheError = cache.CacheError
	FetchError = remote.FetchError
)

var ErrEmptyDomain = client.ErrEmptyDomain
var ErrInvalidConfig = config.ErrInvalidConfig

// WithDefault starts a config builder from the three required settings.
// Chain With* methods and finish with Build.
func WithDefault(username string, password string, cacheRoot string) *Config {
	return config.WithDefault(username, password, cacheRoot)
}

// WithConfigFile loads a complete config from a YAML file.
func WithConfigFile(path string) (Config, error) {
	return config.WithConfigFile(path)
}

// New builds a client and establishes the remote session. Pass
// zerolog.Nop() to disable logging.
func New(ctx context.Context, cfg Config, logger zerolog.Logger) (*Client, error) {
	return client.New(ctx, cfg, logger)
}
