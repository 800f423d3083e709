package resource

import (
	"github.com/mesh-intelligence/backoffice/pkg/types"
)

func fetchError(collection string, err error) error {
	return &types.FetchError{Collection: collection, Err: err}
}

func writeError(collection, op, id string, err error) error {
	return &types.WriteError{Collection: collection, Op: op, ID: id, Err: err}
}
