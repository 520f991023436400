package pagination

import "math"

const (
	DefaultPage = 1
	DefaultSize = 25
	MaxSize     = 100
)

// PageRequest holds the parameters for a paginated request. Pages are
// 1-indexed; a page past the end of the result set yields an empty page.
type PageRequest struct {
	Page int `json:"page"`
	Size int `json:"page_size"`
}

// NewPageRequest clamps page and size into valid ranges.
func NewPageRequest(page, size int) PageRequest {
	if page <= 0 {
		page = DefaultPage
	}
	if size <= 0 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	return PageRequest{Page: page, Size: size}
}

func (p PageRequest) Offset() int { return (p.Page - 1) * p.Size }
func (p PageRequest) Limit() int  { return p.Size }

// Result is the envelope returned for paginated listings.
type Result struct {
	Data       any   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Size       int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

func NewResult(data any, total int64, req PageRequest) Result {
	pages := 0
	if total > 0 && req.Size > 0 {
		pages = int(math.Ceil(float64(total) / float64(req.Size)))
	}
	return Result{Data: data, Total: total, Page: req.Page, Size: req.Size, TotalPages: pages}
}
