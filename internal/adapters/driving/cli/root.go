package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/markerhub/internal/core/domain"
	"github.com/custodia-labs/markerhub/internal/core/ports/driving"
	"github.com/custodia-labs/markerhub/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

var (
	verbose    bool
	quiet      bool
	configPath string
)

// Services holds everything the commands call into.
type Services struct {
	// Token is the GitHub credential; empty when none is configured.
	Token string

	Settings   driving.SettingsService
	Collectors driving.CollectorFactory
	Quotas     driving.QuotaFactory
	Schedulers driving.SchedulerFactory
	History    driving.HistoryService

	// Catalog opens a catalog over the snapshot at path.
	Catalog func(path string) driving.CatalogService
}

// SetupFunc builds services once flags are parsed.
// configPath is empty unless --config was given.
type SetupFunc func(configPath string) (*Services, error)

var (
	setup    SetupFunc
	services *Services
)

var rootCmd = &cobra.Command{
	Use:   "markerhub",
	Short: "Catalog GitHub repositories that contain a marker file",
	Long: `markerhub searches GitHub for repositories containing a marker file
(.cursorrules by default), deduplicates the results across queries and
writes a star-sorted JSON snapshot.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
		logger.SetQuiet(quiet)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only log warnings and errors")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.markerhub/config.toml)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetSetup registers the function that builds services.
func SetSetup(fn SetupFunc) {
	setup = fn
	services = nil
}

// Command returns the root command.
func Command() *cobra.Command {
	return rootCmd
}

// requireServices builds services on first use.
func requireServices() (*Services, error) {
	if services != nil {
		return services, nil
	}
	if setup == nil {
		return nil, errors.New("services not configured")
	}
	svc, err := setup(configPath)
	if err != nil {
		return nil, err
	}
	services = svc
	return services, nil
}

// collectorConfig resolves the stored configuration with the credential.
// requireToken fails early when no credential is available.
func collectorConfig(svc *Services, requireToken bool) (domain.CollectorConfig, error) {
	if svc.Settings == nil {
		return domain.CollectorConfig{}, errors.New("settings service not configured")
	}
	if requireToken && svc.Token == "" {
		return domain.CollectorConfig{}, fmt.Errorf("%w: set GITHUB_TOKEN in the environment or a .env file", domain.ErrAuthRequired)
	}
	return svc.Settings.CollectorConfig(svc.Token)
}
