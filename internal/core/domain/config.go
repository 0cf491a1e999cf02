package domain

import (
	"fmt"
	"strings"
	"time"
)

// Collector defaults.
const (
	DefaultMaxItems   = 100
	DefaultOutputPath = "data/cursorrules_data.json"
	DefaultRateFloor  = 5
	DefaultMaxWaits   = 3
	DefaultMaxPages   = 10
	DefaultPerPage    = 100
	DefaultWaitMargin = time.Second
	DefaultCron       = "@daily"
)

// CollectorConfig holds the already-validated parameters of a run.
// It is built once by the caller and never read from process state.
type CollectorConfig struct {
	// Token is the API credential.
	Token string

	// Queries are the search expressions, consumed in order.
	Queries []string

	// MaxItems is the global item cap.
	MaxItems int

	// MarkerFile is the file searched for.
	MarkerFile string

	// OutputPath is where the snapshot is written.
	OutputPath string

	// RateFloor is the remaining-quota headroom below which the governor waits.
	RateFloor int

	// MaxWaits bounds the governor's wait-and-recheck loop.
	MaxWaits int

	// WaitMargin is added to every reset wait.
	WaitMargin time.Duration

	// MaxPages bounds the pages walked per query.
	MaxPages int

	// PerPage is the page size requested from the service.
	PerPage int

	// APIURL is an optional GitHub Enterprise base URL.
	APIURL string
}

// DefaultCollectorConfig returns sensible defaults.
func DefaultCollectorConfig() CollectorConfig {
	return CollectorConfig{
		Queries:    append([]string(nil), DefaultQueries...),
		MaxItems:   DefaultMaxItems,
		MarkerFile: DefaultMarkerFile,
		OutputPath: DefaultOutputPath,
		RateFloor:  DefaultRateFloor,
		MaxWaits:   DefaultMaxWaits,
		WaitMargin: DefaultWaitMargin,
		MaxPages:   DefaultMaxPages,
		PerPage:    DefaultPerPage,
	}
}

// Validate checks the configuration for values a run cannot work with.
func (c *CollectorConfig) Validate() error {
	var problems []string
	if c.MaxItems < 1 {
		problems = append(problems, "max_items must be at least 1")
	}
	if _, err := NewQuerySpec(c.Queries); err != nil {
		problems = append(problems, err.Error())
	}
	if strings.TrimSpace(c.OutputPath) == "" {
		problems = append(problems, "output_path is required")
	}
	if c.PerPage < 1 || c.PerPage > 100 {
		problems = append(problems, "per_page must be between 1 and 100")
	}
	if c.MaxPages < 1 {
		problems = append(problems, "max_pages must be at least 1")
	}
	if c.RateFloor < 0 {
		problems = append(problems, "rate_floor must not be negative")
	}
	if c.MaxWaits < 0 {
		problems = append(problems, "max_waits must not be negative")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(problems, "; "))
	}
	return nil
}
