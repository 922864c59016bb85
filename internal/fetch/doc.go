// Package fetch retrieves service records from the catalog API.
//
// The Fetcher contract is deliberately small: one query in, the full matching
// record set out. Failures are split into two kinds so callers can tell them apart:
//   - TransportError: the request did not complete or the server answered non-2xx
//   - MalformedResponseError: a response arrived but its body is not a record list
//
// No retries happen here. Retrying is the caller's decision.
package fetch
