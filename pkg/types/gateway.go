package types

import "errors"

// Gateway gives access to the named collections of one backend. Callers
// attach to a backend, look collections up by name, and detach when done.
type Gateway interface {
	// Collection returns the Collection for the given name.
	// Returns ErrCollectionNotFound if the name is not a standard collection.
	Collection(name string) (Collection, error)

	// Attach connects the Gateway to the backend described by config.
	// Returns ErrAlreadyAttached if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, Collection returns ErrGatewayDetached.
	Detach() error
}

// Gateway lifecycle errors.
var (
	ErrGatewayDetached    = errors.New("gateway is detached")
	ErrAlreadyAttached    = errors.New("gateway is already attached")
	ErrCollectionNotFound = errors.New("collection not found")
)
