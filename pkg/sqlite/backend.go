// Package sqlite provides the public API for the SQLite gateway backend.
// This package exposes the factory function for creating SQLite backends
// while keeping implementation details internal.
package sqlite

import (
	"github.com/mesh-intelligence/backoffice/internal/sqlite"
	"github.com/mesh-intelligence/backoffice/pkg/types"
)

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	gw := sqlite.NewBackend()
//	err := gw.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: "data",
//	})
//	defer gw.Detach()
//	products, err := gw.Collection(types.CollectionProducts)
func NewBackend() types.Gateway {
	return sqlite.NewBackend()
}
