package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/markerhub/internal/core/domain"
	"github.com/custodia-labs/markerhub/internal/core/ports/driving"
)

// Environment variables read after .env is loaded.
const (
	envToken         = "GITHUB_TOKEN"
	envMaxItems      = "MAX_REPOSITORIES"
	envAPIURL        = "GITHUB_API_URL"
	publicAPIURLHost = "api.github.com"
)

// envSettings applies environment overrides on top of stored settings.
// Command-line flags are applied later by the CLI and still win.
type envSettings struct {
	driving.SettingsService
	getenv func(string) string
}

var _ driving.SettingsService = envSettings{}

func (s envSettings) CollectorConfig(token string) (domain.CollectorConfig, error) {
	cfg, err := s.SettingsService.CollectorConfig(token)
	if err != nil {
		return cfg, err
	}

	if raw := strings.TrimSpace(s.getenv(envMaxItems)); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return cfg, fmt.Errorf("%w: %s=%q is not an integer", domain.ErrInvalidInput, envMaxItems, raw)
		}
		cfg.MaxItems = n
	}

	if raw := strings.TrimSpace(s.getenv(envAPIURL)); raw != "" && !isPublicAPI(raw) {
		cfg.APIURL = raw
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// isPublicAPI reports whether url names github.com's own API, which needs
// no enterprise base URL.
func isPublicAPI(url string) bool {
	host := strings.TrimPrefix(strings.TrimPrefix(url, "https://"), "http://")
	return strings.TrimRight(host, "/") == publicAPIURLHost
}
