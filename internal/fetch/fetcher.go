package fetch

import (
	"context"
	"net/url"
	"strings"

	"github.com/rshade/svccat/internal/catalog"
)

// SearchParam is the query parameter carrying the search term.
const SearchParam = "q"

// Query describes one catalog fetch.
type Query struct {
	Search string
}

// URL renders the request URL for base. The search term is appended verbatim,
// without encoding, and only when non-empty; callers are expected to sanitize it.
func (q Query) URL(base string) string {
	if q.Search == "" {
		return base
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + SearchParam + "=" + q.Search
}

// Escaped returns q with the search term query-escaped, ready for URL.
func (q Query) Escaped() Query {
	return Query{Search: url.QueryEscape(q.Search)}
}

// Fetcher retrieves every record matching a query, in server order.
type Fetcher interface {
	Fetch(ctx context.Context, q Query) ([]catalog.ServiceRecord, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, q Query) ([]catalog.ServiceRecord, error)

// Fetch calls f(ctx, q).
func (f FetcherFunc) Fetch(ctx context.Context, q Query) ([]catalog.ServiceRecord, error) {
	return f(ctx, q)
}
