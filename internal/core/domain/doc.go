// Package domain defines the core entities for markerhub.
//
// This package is the innermost layer of the hexagon. It has no external
// dependencies and defines:
//
//   - RepositoryRecord: a discovered repository containing the marker file
//   - QuerySpec: the ordered search expressions for a run
//   - CollectionRun: transient state of one execution
//   - Snapshot: the persisted, star-sorted result set
//   - RunResult: the explicit outcome of a run
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
