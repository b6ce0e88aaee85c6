// Package pagination provides zero-based page requests and page totals.
package pagination

import "math"

// Request is a zero-based page request.
type Request struct {
	PageNumber int
	PageSize   int
}

// Normalize replaces a negative page number with the first page, a
// non-positive size with defaultSize, and caps the size at maxSize. The page
// number is capped so that Offset cannot overflow.
func (r Request) Normalize(defaultSize, maxSize int) Request {
	if r.PageNumber < 0 {
		r.PageNumber = 0
	}
	if r.PageSize < 1 {
		r.PageSize = defaultSize
	}
	if r.PageSize > maxSize {
		r.PageSize = maxSize
	}
	if maxPage := math.MaxInt32 / r.PageSize; r.PageNumber > maxPage {
		r.PageNumber = maxPage
	}
	return r
}

// Offset is the number of rows to skip.
func (r Request) Offset() int {
	return r.PageNumber * r.PageSize
}

// TotalPages returns the number of pages needed for total elements.
func TotalPages(total int64, pageSize int) int {
	if pageSize < 1 || total <= 0 {
		return 0
	}
	pages := total / int64(pageSize)
	if total%int64(pageSize) != 0 {
		pages++
	}
	return int(pages)
}
