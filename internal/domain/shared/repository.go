package shared

// Filter represents query filter options shared by list operations
type Filter struct {
	Page    int
	Limit   int
	Search  string
	Filters map[string]interface{}
}

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Page:    1,
		Limit:   10,
		Filters: make(map[string]interface{}),
	}
}

// Normalize clamps page/limit to sane values
func (f *Filter) Normalize() {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = 10
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	if f.Filters == nil {
		f.Filters = make(map[string]interface{})
	}
}

// Offset returns the row offset for the current page
func (f *Filter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// Paginated represents a paginated result
type Paginated[T any] struct {
	Items []T
	Total int64
	Page  int
	Limit int
}

// Pages returns the total number of pages
func (p *Paginated[T]) Pages() int {
	if p.Limit <= 0 {
		return 0
	}
	pages := int(p.Total) / p.Limit
	if int(p.Total)%p.Limit > 0 {
		pages++
	}
	return pages
}

// NewPaginated creates a new paginated result
func NewPaginated[T any](items []T, total int64, page, limit int) Paginated[T] {
	return Paginated[T]{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
	}
}
