// Package memory provides in-memory implementations of driven port
// interfaces. They back tests; nothing is persisted.
package memory
