package driving

import "github.com/custodia-labs/markerhub/internal/core/domain"

// SettingsService resolves stored configuration.
type SettingsService interface {
	// CollectorConfig returns the validated collector configuration
	// with the given credential applied.
	CollectorConfig(token string) (domain.CollectorConfig, error)

	// CronSpec returns the scheduler's cron expression.
	CronSpec() string

	// SetQueries persists the search queries.
	SetQueries(queries []string) error
}
