// Package services implements the driving port interfaces.
// Services contain the core collection logic and orchestrate
// calls to driven ports (adapters).
//
// Services never touch the network or filesystem directly; all I/O goes
// through driven ports so every component can be tested with fakes.
package services
