// Package driving defines the interfaces the CLI calls INTO the core.
//
//   - Collector: one collection run
//   - CatalogService: snapshot browsing
//   - HistoryService: past runs
//   - SettingsService: stored configuration
//   - Scheduler: unattended runs
package driving
