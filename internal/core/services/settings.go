package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/markerhub/internal/core/domain"
	"github.com/custodia-labs/markerhub/internal/core/ports/driven"
	"github.com/custodia-labs/markerhub/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for collector settings.
const (
	keyQueries    = "collector.queries"
	keyMaxItems   = "collector.max_items"
	keyMarkerFile = "collector.marker_file"
	keyOutputPath = "collector.output_path"
	keyRateFloor  = "collector.rate_floor"
	keyMaxWaits   = "collector.max_waits"
	keyWaitMargin = "collector.wait_margin"
	keyMaxPages   = "collector.max_pages"
	keyPerPage    = "collector.per_page"
	keyAPIURL     = "github.api_url"
	keyCron       = "scheduler.cron"
)

// SettingsService turns stored configuration into a CollectorConfig.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// CollectorConfig reads the collector configuration, falling back to
// defaults for every missing key. The token is supplied by the caller and
// never read from the config file.
func (s *SettingsService) CollectorConfig(token string) (domain.CollectorConfig, error) {
	cfg := domain.DefaultCollectorConfig()
	cfg.Token = token

	if s.configStore != nil {
		if queries := s.configStore.GetStringSlice(keyQueries); len(queries) > 0 {
			cfg.Queries = queries
		}
		ints := []struct {
			key   string
			field *int
		}{
			{keyMaxItems, &cfg.MaxItems},
			{keyRateFloor, &cfg.RateFloor},
			{keyMaxWaits, &cfg.MaxWaits},
			{keyMaxPages, &cfg.MaxPages},
			{keyPerPage, &cfg.PerPage},
		}
		for _, f := range ints {
			n, err := s.getInt(f.key, *f.field)
			if err != nil {
				return cfg, err
			}
			*f.field = n
		}
		cfg.MarkerFile = s.getString(keyMarkerFile, cfg.MarkerFile)
		cfg.OutputPath = s.getString(keyOutputPath, cfg.OutputPath)
		cfg.APIURL = s.configStore.GetString(keyAPIURL)

		if raw := s.configStore.GetString(keyWaitMargin); raw != "" {
			margin, err := time.ParseDuration(raw)
			if err != nil {
				return cfg, fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, keyWaitMargin, err)
			}
			cfg.WaitMargin = margin
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// CronSpec returns the scheduler's cron expression.
func (s *SettingsService) CronSpec() string {
	if s.configStore == nil {
		return domain.DefaultCron
	}
	return s.getString(keyCron, domain.DefaultCron)
}

// SetQueries persists the query list.
func (s *SettingsService) SetQueries(queries []string) error {
	if s.configStore == nil {
		return errors.New("config store not configured")
	}
	spec, err := domain.NewQuerySpec(queries)
	if err != nil {
		return err
	}
	if err := s.configStore.Set(keyQueries, []string(spec)); err != nil {
		return fmt.Errorf("save queries: %w", err)
	}
	return nil
}

func (s *SettingsService) getString(key, def string) string {
	if v := strings.TrimSpace(s.configStore.GetString(key)); v != "" {
		return v
	}
	return def
}

// getInt returns def when key is unset and an error when it is set to
// anything but an integer.
func (s *SettingsService) getInt(key string, def int) (int, error) {
	raw, ok := s.configStore.Get(key)
	if !ok {
		return def, nil
	}
	switch raw.(type) {
	case int, int64:
		return s.configStore.GetInt(key), nil
	default:
		return def, fmt.Errorf("%w: %s must be an integer, got %v", domain.ErrInvalidInput, key, raw)
	}
}
