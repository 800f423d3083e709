package httpapi

import (
	"net/http"
	"strconv"

	"github.com/mesh-intelligence/backoffice/pkg/table"
)

type pagination struct {
	TotalItems   int `json:"total_items"`
	TotalPages   int `json:"total_pages"`
	CurrentPage  int `json:"current_page"`
	ItemsPerPage int `json:"items_per_page"`
}

type listResponse[T any] struct {
	Items      []T        `json:"items"`
	Pagination pagination `json:"pagination"`
}

// intParam parses a positive integer query parameter, or returns def.
func intParam(r *http.Request, name string, def int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// serveList loads fetch into a controller, applies the q, page, and per_page
// parameters, and writes the visible page. A failed load answers 502 with
// the controller's message.
func serveList[T any](s *Server, w http.ResponseWriter, r *http.Request, fetch table.FetchFunc[T], opts ...table.Option[T]) {
	opts = append(opts, table.WithItemsPerPage[T](intParam(r, "per_page", s.cfg.PageSize)))
	c := table.New(fetch, opts...)
	c.Load(r.Context())
	if msg := c.Err(); msg != "" {
		writeMessage(w, http.StatusBadGateway, msg)
		return
	}

	c.SetSearchQuery(r.URL.Query().Get("q"))
	c.GoToPage(intParam(r, "page", 1))
	p := c.Page()
	writeJSON(w, http.StatusOK, listResponse[T]{
		Items: p.Items,
		Pagination: pagination{
			TotalItems:   p.TotalItems,
			TotalPages:   p.TotalPages,
			CurrentPage:  p.CurrentPage,
			ItemsPerPage: p.ItemsPerPage,
		},
	})
}
