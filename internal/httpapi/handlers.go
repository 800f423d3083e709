package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mesh-intelligence/backoffice/pkg/types"
)

// flagRequest toggles a boolean attribute such as isActive.
type flagRequest struct {
	Value bool `json:"value"`
}

// statusRequest carries a new status value.
type statusRequest struct {
	Status string `json:"status"`
}

func idParam(r *http.Request) string {
	return chi.URLParam(r, "id")
}

// writeFound answers a lookup: 404 when absent, the value otherwise.
func writeFound[T any](s *Server, w http.ResponseWriter, r *http.Request, v T, found bool, err error) {
	switch {
	case err != nil:
		s.writeError(w, r, err)
	case !found:
		s.writeError(w, r, types.ErrNotFound)
	default:
		writeJSON(w, http.StatusOK, v)
	}
}

// writeResult answers a write with status and the persisted value.
func writeResult[T any](s *Server, w http.ResponseWriter, r *http.Request, status int, v T, err error) {
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, status, v)
}

func (s *Server) writeNoContent(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
