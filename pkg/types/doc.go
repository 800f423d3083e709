// Package types defines the remote collection contract (Gateway, Collection,
// Record, Query), the back-office entity types with their drafts and patches,
// and the standard error taxonomy shared by every backend and service.
package types
