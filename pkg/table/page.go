package table

// Page is a snapshot of the derived view of a Controller.
type Page[T any] struct {
	Items        []T    `json:"items"`
	CurrentPage  int    `json:"current_page"`
	TotalPages   int    `json:"total_pages"`
	TotalItems   int    `json:"total_items"`
	ItemsPerPage int    `json:"items_per_page"`
	Query        string `json:"query,omitempty"`
	Loading      bool   `json:"loading"`
	Error        string `json:"error,omitempty"`
}

// totalPages returns ceil(count / perPage).
func totalPages(count, perPage int) int {
	if count <= 0 || perPage <= 0 {
		return 0
	}
	return (count + perPage - 1) / perPage
}

// clampPage bounds page to [1, max(1, total)].
func clampPage(page, total int) int {
	if page > total {
		page = total
	}
	if page < 1 {
		page = 1
	}
	return page
}

// pageBounds returns the [start, end) slice bounds of page within count items.
func pageBounds(page, perPage, count int) (int, int) {
	start := (page - 1) * perPage
	if start > count {
		start = count
	}
	end := start + perPage
	if end > count {
		end = count
	}
	return start, end
}
