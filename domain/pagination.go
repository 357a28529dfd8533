package domain

// PaginatedResponse is the envelope for every list endpoint.
type PaginatedResponse[T any] struct {
	Data    []T  `json:"data"`
	Total   int  `json:"total"`
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	HasMore bool `json:"hasMore"`
}

// Paginate slices items for a 1-based page. A non-positive page or limit
// falls back to 1 and 20.
func Paginate[T any](items []T, page, limit int) PaginatedResponse[T] {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	start := (page - 1) * limit
	if start > len(items) {
		start = len(items)
	}
	end := min(start+limit, len(items))
	data := items[start:end]
	if data == nil {
		data = []T{}
	}
	return PaginatedResponse[T]{
		Data:    data,
		Total:   len(items),
		Page:    page,
		Limit:   limit,
		HasMore: end < len(items),
	}
}
