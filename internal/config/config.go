package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rohmanhakim/whois-client/internal/build"
)

type Config struct {
	//===============
	// Remote service account
	//===============
	// Account username for the RegistryFusion authentication endpoint.
	username string
	// Account password for the RegistryFusion authentication endpoint.
	password string

	//===============
	// Cache
	//===============
	// Root directory of the shared cache tree. Entries live at
	// <cacheRoot>/<shard>/<domain>.xml.
	cacheRoot string
	// Whether every lookup invalidates and refetches its cache entry.
	refresh bool

	//===============
	// HTTP
	//===============
	// Per-request timeout applied to the HTTP client.
	timeout time.Duration
	// User agent sent on every request.
	userAgent string

	//===============
	// Endpoints
	//===============
	// Base URL of the authentication endpoint. Fixed for the process;
	// overridable for tests.
	authBaseURL string
	// Base URL of the whois query endpoint.
	whoisBaseURL string
}

type configDTO struct {
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	CacheRoot string `yaml:"cacheRoot"`
	Refresh   bool   `yaml:"refresh,omitempty"`
	// Duration string like "30s"; yaml.v3 has no native duration support.
	Timeout      string `yaml:"timeout,omitempty"`
	UserAgent    string `yaml:"userAgent,omitempty"`
	AuthBaseURL  string `yaml:"authBaseUrl,omitempty"`
	WhoisBaseURL string `yaml:"whoisBaseUrl,omitempty"`
}

const (
	defaultTimeout      = 30 * time.Second
	defaultAuthBaseURL  = "http://www.hexillion.com/rf/xml/1.0/auth/"
	defaultWhoisBaseURL = "http://www.hexillion.com/rf/xml/1.0/whois/"
)

func newConfigFromDTO(dto configDTO) (Config, error) {
	builder := WithDefault(dto.Username, dto.Password, dto.CacheRoot)

	builder.refresh = dto.Refresh

	if dto.Timeout != "" {
		timeout, err := time.ParseDuration(dto.Timeout)
		if err != nil {
			return Config{}, fmt.Errorf("%w: timeout is not a valid duration: %s", ErrInvalidConfig, err.Error())
		}
		builder = builder.WithTimeout(timeout)
	}
	if dto.UserAgent != "" {
		builder = builder.WithUserAgent(dto.UserAgent)
	}
	if dto.AuthBaseURL != "" {
		builder = builder.WithAuthBaseURL(dto.AuthBaseURL)
	}
	if dto.WhoisBaseURL != "" {
		builder = builder.WithWhoisBaseURL(dto.WhoisBaseURL)
	}

	return builder.Build()
}

func WithConfigFile(path string) (Config, error) {
	_, err := os.Stat(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrFileDoesNotExist, err.Error())
	}
	configContent, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrReadConfigFail, err.Error())
	}

	cfgDTO := configDTO{}
	if err := yaml.Unmarshal(configContent, &cfgDTO); err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigParsingFail, err.Error())
	}

	return newConfigFromDTO(cfgDTO)
}

// WithDefault creates a new Config with the provided credentials and cache
// root, plus default values for all other fields. All three arguments are
// mandatory — Build returns an error when any is empty.
func WithDefault(username string, password string, cacheRoot string) *Config {
	defaultConfig := Config{
		username:     username,
		password:     password,
		cacheRoot:    cacheRoot,
		refresh:      false,
		timeout:      defaultTimeout,
		userAgent:    build.UserAgent(),
		authBaseURL:  defaultAuthBaseURL,
		whoisBaseURL: defaultWhoisBaseURL,
	}
	return &defaultConfig
}

func (c *Config) WithRefresh(refresh bool) *Config {
	c.refresh = refresh
	return c
}

func (c *Config) WithTimeout(timeout time.Duration) *Config {
	c.timeout = timeout
	return c
}

func (c *Config) WithUserAgent(agent string) *Config {
	c.userAgent = agent
	return c
}

func (c *Config) WithAuthBaseURL(baseURL string) *Config {
	c.authBaseURL = baseURL
	return c
}

func (c *Config) WithWhoisBaseURL(baseURL string) *Config {
	c.whoisBaseURL = baseURL
	return c
}

func (c *Config) Build() (Config, error) {
	if c.username == "" {
		return Config{}, fmt.Errorf("%w: username cannot be empty", ErrInvalidConfig)
	}
	if c.password == "" {
		return Config{}, fmt.Errorf("%w: password cannot be empty", ErrInvalidConfig)
	}
	if c.cacheRoot == "" {
		return Config{}, fmt.Errorf("%w: cacheRoot cannot be empty", ErrInvalidConfig)
	}
	if c.timeout <= 0 {
		return Config{}, fmt.Errorf("%w: timeout must be positive", ErrInvalidConfig)
	}
	if _, err := url.ParseRequestURI(c.authBaseURL); err != nil {
		return Config{}, fmt.Errorf("%w: authBaseUrl is not a valid URL: %s", ErrInvalidConfig, err.Error())
	}
	if _, err := url.ParseRequestURI(c.whoisBaseURL); err != nil {
		return Config{}, fmt.Errorf("%w: whoisBaseUrl is not a valid URL: %s", ErrInvalidConfig, err.Error())
	}
	return *c, nil
}

func (c Config) Username() string {
	return c.username
}

func (c Config) Password() string {
	return c.password
}

func (c Config) CacheRoot() string {
	return c.cacheRoot
}

func (c Config) Refresh() bool {
	return c.refresh
}

func (c Config) Timeout() time.Duration {
	return c.timeout
}

func (c Config) UserAgent() string {
	return c.userAgent
}

func (c Config) AuthBaseURL() string {
	return c.authBaseURL
}

func (c Config) WhoisBaseURL() string {
	return c.whoisBaseURL
}
