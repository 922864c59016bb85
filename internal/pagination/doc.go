// Package pagination provides the client-side page-window arithmetic for the catalog browser.
//
// This package contains the pagination logic shared by the controller, the TUI and the
// list command, including:
//   - Params: page number and page size with validation
//   - Set: the page-scoped view (visible items, display bounds, next/previous flags)
//   - Paginate: slices an already-sorted result set into a Set
//
// Sorting and slicing happen entirely on the fetched result set; the catalog API is
// never asked for a page.
package pagination
