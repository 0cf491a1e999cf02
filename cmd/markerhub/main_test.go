package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/markerhub/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/markerhub/internal/core/domain"
)

func envFrom(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestBuildServices_Wiring(t *testing.T) {
	ctx := context.Background()
	svc := buildServices(ctx, envFrom(map[string]string{envToken: "token"}), memory.NewConfigStore(nil), memory.NewRunStore(), clock.NewMock())

	assert.Equal(t, "token", svc.Token)

	cfg, err := svc.Settings.CollectorConfig(svc.Token)
	require.NoError(t, err)
	cfg.OutputPath = filepath.Join(t.TempDir(), "out.json")

	collector, err := svc.Collectors(cfg, nil)
	require.NoError(t, err)
	assert.NotNil(t, collector)

	quotas, err := svc.Quotas(cfg)
	require.NoError(t, err)
	assert.NotNil(t, quotas)

	scheduler, err := svc.Schedulers("@hourly", collector, nil)
	require.NoError(t, err)
	assert.NotNil(t, scheduler)

	_, err = svc.Catalog(cfg.OutputPath).List(ctx, domain.CatalogQuery{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBuildServices_CollectorRejectsMissingToken(t *testing.T) {
	svc := buildServices(context.Background(), envFrom(nil), memory.NewConfigStore(nil), memory.NewRunStore(), clock.NewMock())

	cfg := domain.DefaultCollectorConfig()
	_, err := svc.Collectors(cfg, nil)

	assert.ErrorIs(t, err, domain.ErrAuthRequired)
}

func TestBuildServices_SchedulerRejectsBadCron(t *testing.T) {
	svc := buildServices(context.Background(), envFrom(map[string]string{envToken: "token"}), memory.NewConfigStore(nil), memory.NewRunStore(), clock.NewMock())

	_, err := svc.Schedulers("every tuesday", nil, nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEnvSettings_Overrides(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{
		"collector.max_items": 100,
		"github.api_url":      "https://ghe.config.example/api/v3/",
	})

	tests := []struct {
		name    string
		env     map[string]string
		wantMax int
		wantURL string
		wantErr error
	}{
		{"no overrides", nil, 100, "https://ghe.config.example/api/v3/", nil},
		{"max repositories", map[string]string{envMaxItems: " 25 "}, 25, "https://ghe.config.example/api/v3/", nil},
		{"enterprise url", map[string]string{envAPIURL: "https://ghe.env.example/api/v3/"}, 100, "https://ghe.env.example/api/v3/", nil},
		{"public api url keeps config", map[string]string{envAPIURL: "https://api.github.com"}, 100, "https://ghe.config.example/api/v3/", nil},
		{"non-integer max", map[string]string{envMaxItems: "lots"}, 0, "", domain.ErrInvalidInput},
		{"zero max", map[string]string{envMaxItems: "0"}, 0, "", domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := buildServices(context.Background(), envFrom(tt.env), store, memory.NewRunStore(), clock.NewMock())

			cfg, err := svc.Settings.CollectorConfig("token")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMax, cfg.MaxItems)
			assert.Equal(t, tt.wantURL, cfg.APIURL)
		})
	}
}

func TestIsPublicAPI(t *testing.T) {
	assert.True(t, isPublicAPI("https://api.github.com"))
	assert.True(t, isPublicAPI("https://api.github.com/"))
	assert.False(t, isPublicAPI("https://ghe.example.com/api/v3"))
}
