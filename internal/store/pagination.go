package store

// Pagination limits. Callers asking for nothing get the default page size;
// callers asking for too much get clamped.
const (
	DefaultPageSize = 50
	MaxPageSize     = 500
)

// Page contains one page of results plus paging metadata.
// Page numbers are zero-based at the store boundary; the transport layer
// converts one-based client input before building the query.
type Page[T any] struct {
	Items    []T  `json:"items"`
	Number   int  `json:"page"`
	PageSize int  `json:"page_size"`
	Total    int  `json:"total"`
	HasMore  bool `json:"has_more"`
}

// NormalizePaging clamps page and pageSize to valid ranges.
func NormalizePaging(page, pageSize int) (int, int) {
	if page < 0 {
		page = 0
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// NewPage assembles a Page from a slice of items and paging inputs.
func NewPage[T any](items []T, page, pageSize, total int) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{
		Items:    items,
		Number:   page,
		PageSize: pageSize,
		Total:    total,
		HasMore:  (page+1)*pageSize < total,
	}
}
