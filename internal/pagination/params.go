package pagination

import (
	"errors"
	"fmt"
	"math"
)

// Pagination defaults and validation limits.
const (
	DefaultPage     = 1
	MinPage         = 1
	DefaultPageSize = 10
	MinPageSize     = 1
	MaxPageSize     = 1000
)

// Common validation errors.
var (
	ErrInvalidPage     = errors.New("page must be >= 1")
	ErrInvalidPageSize = errors.New("page-size must be between 1 and 1000")
	ErrPageOutOfRange  = errors.New("page is too large for the page size")
)

// Params holds the page selection for one pagination pass.
type Params struct {
	// Page is the 1-based page number.
	Page int `json:"page" yaml:"page"`

	// PageSize is the maximum number of items shown per page.
	PageSize int `json:"page_size" yaml:"page_size"`
}

// NewParams creates Params with default values.
func NewParams() Params {
	return Params{
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
	}
}

// Validate checks that page and page size are usable.
func (p Params) Validate() error {
	if p.Page < MinPage {
		return fmt.Errorf("%w: got %d", ErrInvalidPage, p.Page)
	}
	if p.PageSize < MinPageSize || p.PageSize > MaxPageSize {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, p.PageSize)
	}
	// page*pageSize must fit in an int.
	if limit := math.MaxInt / p.PageSize; p.Page > limit {
		return fmt.Errorf("%w: got %d, at most %d for page size %d", ErrPageOutOfRange, p.Page, limit, p.PageSize)
	}
	return nil
}

// CalculateTotalPages calculates the number of pages needed for totalItems.
func (p Params) CalculateTotalPages(totalItems int) int {
	return TotalPages(totalItems, p.PageSize)
}

// TotalPages returns ceil(totalItems / pageSize), or 0 when either is non-positive.
func TotalPages(totalItems, pageSize int) int {
	if totalItems <= 0 || pageSize <= 0 {
		return 0
	}
	pages := totalItems / pageSize
	if totalItems%pageSize > 0 {
		pages++
	}
	return pages
}
