// Package resource provides the per-entity services of the back office.
//
// Each service combines remote collection calls with a field mapper that
// translates between snake_case records and the camelCase domain entities
// of pkg/types. Services hold no mutable state and are safe for concurrent
// use. Reads fail with *types.FetchError and writes with *types.WriteError;
// a missing record on GetByID is reported as found == false, not as an
// error.
package resource
