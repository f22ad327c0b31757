// internal/app/system/paging/paging.go
package paging

// DefaultPageSize is the number of rows shown when nothing else is configured.
const DefaultPageSize = 5

// DefaultSizes are the page sizes offered in the page-size picker.
var DefaultSizes = []int{5, 10, 20, 50, 100}

// Pages returns the number of pages needed for total rows. An empty result
// still has one (empty) page.
func Pages(total, size int) int {
	if size < 1 || total <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

// Clamp keeps page inside [1, pages].
func Clamp(page, pages int) int {
	if page < 1 {
		return 1
	}
	if pages >= 1 && page > pages {
		return pages
	}
	return page
}

// Bounds returns the half-open slice window [lo, hi) for a page.
func Bounds(page, size, total int) (lo, hi int) {
	if size < 1 || total <= 0 {
		return 0, 0
	}
	lo = (page - 1) * size
	if lo > total {
		lo = total
	}
	hi = lo + size
	if hi > total {
		hi = total
	}
	return lo, hi
}

// Range holds computed display range values for a paginated list.
type Range struct {
	Start     int // 1-based start index (0 if no results)
	End       int // 1-based end index (0 if no results)
	PrevStart int // start value for previous page link
	NextStart int // start value for next page link
}

// ComputeRange calculates display range values given the current start index,
// the number of items shown and the page size.
func ComputeRange(start, shown, pageSize int) Range {
	if shown == 0 {
		return Range{Start: 0, End: 0, PrevStart: 1, NextStart: 1}
	}

	prevStart := start - pageSize
	if prevStart < 1 {
		prevStart = 1
	}

	return Range{
		Start:     start,
		End:       start + shown - 1,
		PrevStart: prevStart,
		NextStart: start + shown,
	}
}
