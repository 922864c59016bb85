// Package controller implements the catalog pagination controller.
//
// A Controller watches two input cells, the search term and the page number, and
// keeps a published State up to date:
//   - a search change marks the state loading at once and schedules a debounced refresh
//   - a page change refreshes immediately
//   - Start performs one refresh with the initial inputs
//
// Every refresh fetches the full matching record set, sorts it by name and slices
// out the requested page. Refresh cycles may overlap; each is tagged with a sequence
// number and a result older than the last applied one is dropped, so a slow stale
// response never replaces a newer page. A failed cycle keeps the previous page,
// raises the error signal and leaves retrying to the caller.
package controller
