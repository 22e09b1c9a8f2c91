// Package flowspec provides a minimal public façade for declaring and
// validating workflow graph specs without importing internal packages. It
// re-exports the core spec types for convenience and exposes a fluent Builder
// plus a Runtime with simple methods to store and check specs.
package flowspec
