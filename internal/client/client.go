package client

import (
	"context"
	"sync"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/rs/zerolog"

	"github.com/rohmanhakim/whois-client/internal/cache"
	"github.com/rohmanhakim/whois-client/internal/config"
	"github.com/rohmanhakim/whois-client/internal/remote"
	"github.com/rohmanhakim/whois-client/internal/session"
)

/*
Responsibilities

- Decide cache-hit / miss / forced-refresh handling per lookup
- Invoke the remote fetch when needed and write the result back
- Track which domains required a live fetch
- Bound the session's lifetime to the client's

Lookup Semantics

Lookup is a three-way branch with no retry across branches:

 1. not cached: fetch, cache, return
 2. cached, refresh mode on: delete the entry, fetch, cache, return
 3. cached: read and return as-is

A failed fetch propagates and nothing is written for that domain.
*/

type Client struct {
	session *session.Manager
	store   *cache.Store
	fetcher remote.Fetcher
	refresh bool
	logger  zerolog.Logger

	mu             sync.Mutex
	fetchedDomains []string
}

// New builds a client from cfg and establishes the remote session. A
// failed login aborts construction. The caller owns the client and should
// defer Close so the session is released however its scope ends.
func New(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*Client, error) {
	httpClient := cleanhttp.DefaultPooledClient()
	httpClient.Timeout = cfg.Timeout()

	manager := session.NewManager(
		cfg.Username(),
		cfg.Password(),
		cfg.AuthBaseURL(),
		cfg.UserAgent(),
		httpClient,
		logger,
	)
	if err := manager.Login(ctx); err != nil {
		return nil, err
	}

	fetcher := remote.NewHTTPFetcher(
		cfg.WhoisBaseURL(),
		cfg.UserAgent(),
		httpClient,
		logger,
	)

	return &Client{
		session: manager,
		store:   cache.NewStore(cfg.CacheRoot(), logger),
		fetcher: fetcher,
		refresh: cfg.Refresh(),
		logger:  logger,
	}, nil
}

// Lookup returns the raw whois record for domain, from cache when
// possible.
func (c *Client) Lookup(ctx context.Context, domain string) ([]byte, error) {
	if domain == "" {
		return nil, ErrEmptyDomain
	}

	if !c.store.Exists(domain) {
		c.logger.Debug().Str("domain", domain).Msg("cache miss")
		return c.fetchAndCache(ctx, domain)
	}

	if c.refresh {
		c.logger.Debug().Str("domain", domain).Msg("refresh mode, invalidating entry")
		if err := c.store.Delete(domain); err != nil {
			return nil, err
		}
		return c.fetchAndCache(ctx, domain)
	}

	c.logger.Debug().Str("domain", domain).Msg("cache hit")
	return c.store.Read(domain)
}

func (c *Client) fetchAndCache(ctx context.Context, domain string) ([]byte, error) {
	body, err := c.fetcher.Fetch(ctx, c.session.SessionKey(), domain)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.fetchedDomains = append(c.fetchedDomains, domain)
	c.mu.Unlock()

	if err := c.store.Write(domain, body); err != nil {
		return nil, err
	}
	return body, nil
}

// FetchedDomains returns the domains that required a live remote fetch,
// in call order, duplicates included.
func (c *Client) FetchedDomains() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	domains := make([]string, len(c.fetchedDomains))
	copy(domains, c.fetchedDomains)
	return domains
}

// DeleteFromCache removes the cached entry for domain. A never-cached
// domain is a no-op.
func (c *Client) DeleteFromCache(domain string) error {
	if domain == "" {
		return ErrEmptyDomain
	}
	if err := c.store.Delete(domain); err != nil {
		return err
	}
	return nil
}

// CachedDate returns the short-date timestamp of the cached entry for
// domain.
func (c *Client) CachedDate(domain string) (string, error) {
	if domain == "" {
		return "", ErrEmptyDomain
	}
	date, err := c.store.ModifiedDate(domain)
	if err != nil {
		return "", err
	}
	return date, nil
}

// Close releases the remote session. Best-effort: logout failures are
// logged, never surfaced — by the time Close runs there is nobody left
// to react.
func (c *Client) Close(ctx context.Context) {
	c.session.Logout(ctx)
}
