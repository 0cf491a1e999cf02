package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/markerhub/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/markerhub/internal/core/domain"
)

func TestSettingsService_CollectorConfig_Defaults(t *testing.T) {
	svc := NewSettingsService(memory.NewConfigStore(nil))

	cfg, err := svc.CollectorConfig("tok")

	require.NoError(t, err)
	want := domain.DefaultCollectorConfig()
	want.Token = "tok"
	assert.Equal(t, want, cfg)
}

func TestSettingsService_CollectorConfig_Overrides(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{
		"collector.queries":     []any{"a", "b"},
		"collector.max_items":   int64(25),
		"collector.marker_file": ".windsurfrules",
		"collector.output_path": "out/rules.json",
		"collector.rate_floor":  int64(0),
		"collector.wait_margin": "250ms",
		"collector.per_page":    int64(50),
		"github.api_url":        "https://ghe.example.com/api/v3/",
	})
	svc := NewSettingsService(store)

	cfg, err := svc.CollectorConfig("tok")

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, cfg.Queries)
	assert.Equal(t, 25, cfg.MaxItems)
	assert.Equal(t, ".windsurfrules", cfg.MarkerFile)
	assert.Equal(t, "out/rules.json", cfg.OutputPath)
	assert.Equal(t, 0, cfg.RateFloor, "explicit zero is kept")
	assert.Equal(t, 250*time.Millisecond, cfg.WaitMargin)
	assert.Equal(t, 50, cfg.PerPage)
	assert.Equal(t, domain.DefaultMaxPages, cfg.MaxPages)
	assert.Equal(t, "https://ghe.example.com/api/v3/", cfg.APIURL)
}

func TestSettingsService_CollectorConfig_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]any
	}{
		{"zero cap", map[string]any{"collector.max_items": 0}},
		{"bad margin", map[string]any{"collector.wait_margin": "soon"}},
		{"page too large", map[string]any{"collector.per_page": 500}},
		{"quoted rate floor", map[string]any{"collector.rate_floor": "5"}},
		{"quoted max waits", map[string]any{"collector.max_waits": "3"}},
		{"float cap", map[string]any{"collector.max_items": 10.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSettingsService(memory.NewConfigStore(tt.values)).CollectorConfig("tok")
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestSettingsService_CollectorConfig_NonIntegerNamesKey(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{"collector.rate_floor": "5"})

	_, err := NewSettingsService(store).CollectorConfig("tok")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "collector.rate_floor must be an integer")
}

func TestSettingsService_CronSpec(t *testing.T) {
	assert.Equal(t, domain.DefaultCron, NewSettingsService(memory.NewConfigStore(nil)).CronSpec())
	assert.Equal(t, domain.DefaultCron, NewSettingsService(nil).CronSpec())

	svc := NewSettingsService(memory.NewConfigStore(map[string]any{"scheduler.cron": "0 6 * * *"}))
	assert.Equal(t, "0 6 * * *", svc.CronSpec())
}

func TestSettingsService_SetQueries(t *testing.T) {
	store := memory.NewConfigStore(nil)
	svc := NewSettingsService(store)

	require.NoError(t, svc.SetQueries([]string{" x ", "y"}))
	assert.Equal(t, []string{"x", "y"}, store.GetStringSlice("collector.queries"))

	assert.ErrorIs(t, svc.SetQueries([]string{"x", "x"}), domain.ErrInvalidInput)
}
