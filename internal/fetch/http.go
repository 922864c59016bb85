package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/rshade/svccat/internal/catalog"
	"github.com/rshade/svccat/internal/logging"
)

// Request headers set on every catalog call.
const (
	HeaderRequestID = "X-Request-ID"
	HeaderTraceID   = "X-Trace-ID"
)

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 32 << 20

// HTTPClient fetches records with GET requests against a catalog endpoint.
//
// Concurrent fetches for the same URL share one request; each caller still gets
// its own copy of the result.
type HTTPClient struct {
	endpoint string
	client   *http.Client
	group    singleflight.Group
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) {
		if c != nil {
			h.client = c
		}
	}
}

// WithTimeout bounds each request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(h *HTTPClient) {
		clone := *h.client
		clone.Timeout = d
		h.client = &clone
	}
}

// NewHTTPClient creates a client for endpoint, e.g. "http://localhost:8080/api/services".
func NewHTTPClient(endpoint string, opts ...Option) *HTTPClient {
	h := &HTTPClient{
		endpoint: endpoint,
		client:   &http.Client{},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Endpoint returns the base endpoint.
func (h *HTTPClient) Endpoint() string {
	return h.endpoint
}

// Fetch implements Fetcher. The search term is query-escaped before substitution.
//
// A shared request runs detached from the cancellation of whichever caller
// started it; each caller stops waiting when its own ctx is done.
func (h *HTTPClient) Fetch(ctx context.Context, q Query) ([]catalog.ServiceRecord, error) {
	target := q.Escaped().URL(h.endpoint)

	ch := h.group.DoChan(target, func() (any, error) {
		return h.get(context.WithoutCancel(ctx), target)
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, &TransportError{URL: target, Err: ctx.Err()}
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, res.Err
	}

	records, _ := res.Val.([]catalog.ServiceRecord)
	if res.Shared {
		cp := make([]catalog.ServiceRecord, len(records))
		copy(cp, records)
		records = cp
	}
	return records, nil
}

func (h *HTTPClient) get(ctx context.Context, url string) ([]catalog.ServiceRecord, error) {
	logger := logging.FromContext(ctx).With().
		Str("component", "fetch").
		Str("url", url).
		Logger()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	requestID := logging.NewID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, requestID)
	if traceID := logging.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set(HeaderTraceID, traceID)
	}

	start := time.Now()
	resp, err := h.client.Do(req)
	if err != nil {
		logger.Warn().Err(err).Str("request_id", requestID).Msg("catalog request failed")
		return nil, &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		logger.Warn().
			Int("status", resp.StatusCode).
			Str("request_id", requestID).
			Msg("catalog returned error status")
		return nil, &TransportError{URL: url, StatusCode: resp.StatusCode}
	}

	records, err := decodeRecords(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		var transportErr *TransportError
		if errors.As(err, &transportErr) {
			transportErr.URL = url
			return nil, transportErr
		}
		logger.Warn().Err(err).Str("request_id", requestID).Msg("catalog response malformed")
		return nil, &MalformedResponseError{URL: url, Err: err}
	}

	logger.Debug().
		Str("request_id", requestID).
		Int("records", len(records)).
		Dur("elapsed", time.Since(start)).
		Msg("catalog fetch complete")
	return records, nil
}

// decodeRecords decodes a JSON array of records and validates each one. Read
// errors are reported as transport failures; anything else as a malformed body.
func decodeRecords(r io.Reader) ([]catalog.ServiceRecord, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("reading body: %w", err)}
	}

	var records []catalog.ServiceRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("decoding record list: %w", err)
	}
	if records == nil {
		return nil, errors.New("expected a JSON array, got null")
	}
	if err := catalog.ValidateAll(records); err != nil {
		return nil, err
	}
	return records, nil
}
