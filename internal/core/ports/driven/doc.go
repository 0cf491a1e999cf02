// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and adapters implement them.
//
//   - SearchService: remote repository search and quota probe (GitHub)
//   - SnapshotStore: snapshot persistence (JSON file)
//   - RunStore: run history persistence (SQLite)
//   - ConfigStore: application configuration (TOML)
//   - Clock: time source for rate-limit waits
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
