package controller

import (
	"errors"

	"github.com/rshade/svccat/internal/catalog"
	"github.com/rshade/svccat/internal/fetch"
	"github.com/rshade/svccat/internal/pagination"
	"github.com/rshade/svccat/internal/reactive"
)

// PaginationSet is the page-scoped view of the catalog.
type PaginationSet = pagination.Set[catalog.ServiceRecord]

// ErrorKind classifies the failure behind an error signal.
type ErrorKind string

// Error kinds.
const (
	ErrorKindNone      ErrorKind = ""
	ErrorKindTransport ErrorKind = "transport"
	ErrorKindMalformed ErrorKind = "malformed_response"
	ErrorKindInput     ErrorKind = "invalid_input"
	ErrorKindUnknown   ErrorKind = "unknown"
)

// ErrorSignal tells the presentation layer that the last cycle failed.
type ErrorSignal struct {
	IsError bool
	Message string
	Kind    ErrorKind
	Err     error
}

func newErrorSignal(err error) ErrorSignal {
	if err == nil {
		return ErrorSignal{}
	}
	return ErrorSignal{
		IsError: true,
		Message: err.Error(),
		Kind:    classify(err),
		Err:     err,
	}
}

func classify(err error) ErrorKind {
	switch {
	case errors.Is(err, fetch.ErrTransport):
		return ErrorKindTransport
	case errors.Is(err, fetch.ErrMalformedResponse):
		return ErrorKindMalformed
	case errors.Is(err, pagination.ErrInvalidPage),
		errors.Is(err, pagination.ErrInvalidPageSize),
		errors.Is(err, pagination.ErrPageOutOfRange):
		return ErrorKindInput
	default:
		return ErrorKindUnknown
	}
}

// State is a snapshot of everything the controller publishes.
type State struct {
	// Services is the page applied by the most recent successful cycle.
	Services PaginationSet

	// Loading is true while a fetch is in flight or a debounced search is pending.
	Loading bool

	// SearchPending is true while a search change waits for the debounce delay.
	SearchPending bool

	// Error is raised by a failed cycle and cleared by the next successful one.
	Error ErrorSignal

	// Query is the query Services was fetched with.
	Query fetch.Query

	// Sequence is the number of the cycle whose outcome is shown; 0 before any.
	Sequence uint64

	// Version increases with every publication.
	Version uint64
}

// Inputs are the reactive cells the controller reads. The caller owns them.
type Inputs struct {
	Search   *reactive.Cell[string]
	Page     *reactive.Cell[int]
	PageSize *reactive.Cell[int]
}

// NewInputs creates input cells holding the given initial values.
func NewInputs(search string, page, pageSize int) Inputs {
	return Inputs{
		Search:   reactive.NewCell(search),
		Page:     reactive.NewCell(page),
		PageSize: reactive.NewCell(pageSize),
	}
}

// DefaultInputs returns an empty search on page 1 with the default page size.
func DefaultInputs() Inputs {
	return NewInputs("", pagination.DefaultPage, pagination.DefaultPageSize)
}

// Params returns the current page selection.
func (in Inputs) Params() pagination.Params {
	return pagination.Params{Page: in.Page.Get(), PageSize: in.PageSize.Get()}
}

// Query returns the current fetch query.
func (in Inputs) Query() fetch.Query {
	return fetch.Query{Search: in.Search.Get()}
}
