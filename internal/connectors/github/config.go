package github

import (
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/markerhub/internal/core/domain"
)

// Config holds the settings for a search client.
type Config struct {
	// Token is a personal access token. Required.
	Token string

	// APIURL is an optional GitHub Enterprise base URL,
	// e.g. "https://ghe.example.com/api/v3/". Empty means github.com.
	APIURL string

	// Timeout bounds every HTTP request. Default: DefaultTimeout.
	Timeout time.Duration

	// RequestsPerSecond is the proactive throttle. Default: ProactiveRate.
	// A negative value disables throttling.
	RequestsPerSecond float64

	// MaxRetries bounds retries of transient search failures. Default: MaxRetries.
	MaxRetries int
}

// ConfigFromCollector derives a client config from the collector settings.
func ConfigFromCollector(cfg domain.CollectorConfig) Config {
	return Config{
		Token:  cfg.Token,
		APIURL: cfg.APIURL,
	}
}

// withDefaults fills zero values.
func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.RequestsPerSecond == 0 {
		c.RequestsPerSecond = ProactiveRate
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = MaxRetries
	}
	return c
}

// Validate checks that the config can build a client.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Token) == "" {
		return domain.ErrAuthRequired
	}
	if c.APIURL != "" && !strings.HasPrefix(c.APIURL, "http://") && !strings.HasPrefix(c.APIURL, "https://") {
		return fmt.Errorf("%w: api_url must be an http(s) URL", domain.ErrInvalidInput)
	}
	return nil
}
