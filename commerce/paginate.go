package commerce

// Pagination limits shared by every provider.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// SortDirection orders list results.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ListOptions carries the list parameters every provider understands.
// Filters are provider-interpreted key/value refinements (category, price
// band, material); unknown keys are ignored by adapters.
type ListOptions struct {
	Page      int
	PageSize  int
	Sort      string
	Direction SortDirection
	Search    string
	Filters   map[string]string
}

// Normalize clamps paging values into the supported range: Page >= 1 and
// 1 <= PageSize <= MaxPageSize, defaulting PageSize to DefaultPageSize.
func (o ListOptions) Normalize() ListOptions {
	if o.Page < 1 {
		o.Page = 1
	}
	if o.PageSize < 1 {
		o.PageSize = DefaultPageSize
	}
	if o.PageSize > MaxPageSize {
		o.PageSize = MaxPageSize
	}
	if o.Direction != "" && o.Direction != SortAsc && o.Direction != SortDesc {
		o.Direction = SortAsc
	}
	return o
}

// Page is the uniform pagination envelope list operations return,
// whatever shape the vendor used on the wire.
type Page[T any] struct {
	Items           []T   `json:"items"`
	Total           int64 `json:"total"`
	Page            int   `json:"page"`
	PageSize        int   `json:"pageSize"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

// NewPage assembles a page envelope, deriving the navigation flags from
// the position and total.
func NewPage[T any](items []T, total int64, page, pageSize int) *Page[T] {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if items == nil {
		items = []T{}
	}
	return &Page[T]{
		Items:           items,
		Total:           total,
		Page:            page,
		PageSize:        pageSize,
		HasNextPage:     int64(page)*int64(pageSize) < total,
		HasPreviousPage: page > 1,
	}
}

// EmptyPage returns an empty envelope at the requested position. Stub
// services use it so list calls against unsupported entities degrade to
// "no results" instead of failing.
func EmptyPage[T any](opts ListOptions) *Page[T] {
	opts = opts.Normalize()
	return NewPage[T](nil, 0, opts.Page, opts.PageSize)
}
