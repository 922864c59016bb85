package pagination

import "math"

// Set is the page-scoped view of a larger, already-sorted result set.
//
// FirstItemIndex and LastItemIndex are 1-based inclusive display bounds. When the
// whole result fits on one page, or the result is empty, IsNext and IsPrevious are
// both false. A Set is replaced as a whole and never updated field by field.
type Set[T any] struct {
	PageItems      []T  `json:"page_items"       yaml:"page_items"`
	TotalItems     int  `json:"total_items"      yaml:"total_items"`
	FirstItemIndex int  `json:"first_item_index" yaml:"first_item_index"`
	LastItemIndex  int  `json:"last_item_index"  yaml:"last_item_index"`
	IsNext         bool `json:"is_next"          yaml:"is_next"`
	IsPrevious     bool `json:"is_previous"      yaml:"is_previous"`

	// CurrentPage and PageSize record the Params the set was computed from.
	CurrentPage int `json:"current_page" yaml:"current_page"`
	PageSize    int `json:"page_size"    yaml:"page_size"`
}

// Paginate slices sorted into the page selected by params.
//
// When the result is larger than one page, the window is
// [(page-1)*size, page*size) clamped to the result length, IsPrevious is page > 1
// and IsNext is (total-1) > lastIndex. A page past the end yields an empty
// PageItems with the indices still published as computed, the first one
// saturating at math.MaxInt. Otherwise the whole result is the page.
//
// Params are expected to be valid (see Params.Validate), but invalid ones yield
// an empty page rather than a panic.
func Paginate[T any](sorted []T, params Params) Set[T] {
	total := len(sorted)
	page, size := params.Page, params.PageSize

	set := Set[T]{
		TotalItems:  total,
		CurrentPage: page,
		PageSize:    size,
	}

	var firstIndex, lastIndex int
	if total > size {
		pages := TotalPages(total, size)
		switch {
		case page >= 1 && page <= pages:
			firstIndex = (page - 1) * size
			lastIndex = min(page*size, total)
			set.PageItems = sorted[firstIndex:lastIndex]
		case page > pages:
			// page*size >= total here, so the window end clamps to total.
			firstIndex = pastEndStart(page, size)
			lastIndex = total
			set.PageItems = []T{}
		default:
			set.PageItems = []T{}
		}
		set.IsPrevious = page > 1
		set.IsNext = (total - 1) > lastIndex
	} else {
		firstIndex = 0
		lastIndex = total
		set.PageItems = sorted
		if set.PageItems == nil {
			set.PageItems = []T{}
		}
	}

	set.FirstItemIndex = firstIndex + 1
	set.LastItemIndex = lastIndex
	return set
}

// IsEmpty reports whether the set has no matching items at all.
func (s Set[T]) IsEmpty() bool {
	return s.TotalItems == 0
}

// InRange reports whether the current page lies within the result set.
func (s Set[T]) InRange() bool {
	return s.TotalItems == 0 || s.FirstItemIndex <= s.TotalItems
}

// TotalPages returns the number of pages for the set's page size.
func (s Set[T]) TotalPages() int {
	return TotalPages(s.TotalItems, s.PageSize)
}

// pastEndStart returns (page-1)*size for a page beyond the last one, saturating
// so that the published first index stays at most math.MaxInt.
func pastEndStart(page, size int) int {
	if size <= 0 {
		return 0
	}
	if page-1 > (math.MaxInt-1)/size {
		return math.MaxInt - 1
	}
	return (page - 1) * size
}
