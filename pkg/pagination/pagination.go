package pagination

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 10
	// MaxLimit caps how many rows any list query can request.
	MaxLimit = 100
)

// Params holds 1-indexed page/limit inputs from controllers.
type Params struct {
	Page  int
	Limit int
}

// Meta summarizes a paginated result set.
type Meta struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	Limit    int   `json:"limit"`
	LastPage int   `json:"lastPage"`
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// NormalizePage clamps the page number to 1 or greater.
func NormalizePage(page int) int {
	if page <= 0 {
		return 1
	}
	return page
}

// Normalize returns a copy of the params with page and limit clamped.
func (p Params) Normalize() Params {
	return Params{
		Page:  NormalizePage(p.Page),
		Limit: NormalizeLimit(p.Limit),
	}
}

// Offset converts the normalized page/limit pair into a row offset.
func (p Params) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.Limit
}

// NewMeta builds result metadata from the total row count.
func NewMeta(params Params, total int64) Meta {
	n := params.Normalize()
	lastPage := int((total + int64(n.Limit) - 1) / int64(n.Limit))
	if lastPage < 1 {
		lastPage = 1
	}
	return Meta{
		Total:    total,
		Page:     n.Page,
		Limit:    n.Limit,
		LastPage: lastPage,
	}
}
