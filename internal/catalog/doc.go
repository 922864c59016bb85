// Package catalog defines the service catalog data model returned by the catalog API.
//
// Records are treated as immutable snapshots: every fetch produces a fresh slice and
// nothing in the browser mutates a record after decoding. The package also owns the
// two pieces of record-level logic the rest of the module relies on:
//   - SortByName: the case-insensitive, stable name ordering used for pagination
//   - Validate: shape checks that distinguish a malformed payload from a transport failure
package catalog
