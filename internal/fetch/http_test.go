package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/svccat/internal/catalog"
	"github.com/rshade/svccat/internal/logging"
)

func TestQuery_URL(t *testing.T) {
	tests := []struct {
		name  string
		base  string
		query Query
		want  string
	}{
		{name: "no search", base: "/api/services", query: Query{}, want: "/api/services"},
		{name: "search", base: "/api/services", query: Query{Search: "pay"}, want: "/api/services?q=pay"},
		{name: "verbatim", base: "/api/services", query: Query{Search: "a b&c"}, want: "/api/services?q=a b&c"},
		{name: "existing query", base: "/api/services?env=prod", query: Query{Search: "x"}, want: "/api/services?env=prod&q=x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.query.URL(tt.base))
		})
	}
}

func TestHTTPClient_Fetch(t *testing.T) {
	var gotQuery, gotAccept, gotRequestID, gotTraceID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotAccept = r.Header.Get("Accept")
		gotRequestID = r.Header.Get(HeaderRequestID)
		gotTraceID = r.Header.Get(HeaderTraceID)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"name":"banana","published":true,"type":"rest","versions":[]},{"name":"Apple","type":"grpc","versions":[]}]`))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL + "/api/services")
	ctx := logging.ContextWithTraceID(context.Background(), "trace-1")

	records, err := client.Fetch(ctx, Query{Search: "a"})
	require.NoError(t, err)
	require.Len(t, records, 2)
	// Server order is preserved; sorting is the caller's job.
	assert.Equal(t, "banana", records[0].Name)
	assert.Equal(t, "q=a", gotQuery)
	assert.Equal(t, "application/json", gotAccept)
	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, "trace-1", gotTraceID)

	_, err = client.Fetch(context.Background(), Query{Search: "a b&c"})
	require.NoError(t, err)
	assert.Equal(t, "q=a+b%26c", gotQuery)

	_, err = client.Fetch(context.Background(), Query{})
	require.NoError(t, err)
	assert.Empty(t, gotQuery)
}

func TestHTTPClient_TransportErrors(t *testing.T) {
	t.Run("status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "boom", http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		_, err := NewHTTPClient(srv.URL).Fetch(context.Background(), Query{})
		require.Error(t, err)

		var te *TransportError
		require.True(t, errors.As(err, &te))
		assert.Equal(t, http.StatusServiceUnavailable, te.StatusCode)
		assert.ErrorIs(t, err, ErrTransport)
		assert.NotErrorIs(t, err, ErrMalformedResponse)
	})

	t.Run("connection refused", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := NewHTTPClient(url).Fetch(context.Background(), Query{})
		require.Error(t, err)

		var te *TransportError
		require.True(t, errors.As(err, &te))
		assert.Equal(t, 0, te.StatusCode)
		assert.ErrorIs(t, err, ErrTransport)
	})

	t.Run("timeout", func(t *testing.T) {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			<-release
			_, _ = w.Write([]byte(`[]`))
		}))
		defer srv.Close()
		defer close(release)

		_, err := NewHTTPClient(srv.URL, WithTimeout(50*time.Millisecond)).Fetch(context.Background(), Query{})
		assert.ErrorIs(t, err, ErrTransport)
	})
}

func TestHTTPClient_MalformedResponses(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `<html>oops</html>`},
		{name: "object instead of array", body: `{"name":"x"}`},
		{name: "null", body: `null`},
		{name: "missing name", body: `[{"name":"ok"},{"published":true,"type":"rest"}]`},
		{name: "null name", body: `[{"name":null}]`},
		{name: "negative metric", body: `[{"name":"ok","metrics":{"latency":-3}}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewHTTPClient(srv.URL).Fetch(context.Background(), Query{})
			require.Error(t, err)

			var me *MalformedResponseError
			require.True(t, errors.As(err, &me))
			assert.ErrorIs(t, err, ErrMalformedResponse)
			assert.NotErrorIs(t, err, ErrTransport)
		})
	}
}

func TestHTTPClient_CoalescesIdenticalInFlightRequests(t *testing.T) {
	var hits atomic.Int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		<-release
		_, _ = w.Write([]byte(`[{"name":"a"}]`))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL)

	var wg sync.WaitGroup
	results := make([]int, 3)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			records, err := client.Fetch(context.Background(), Query{Search: "a"})
			if err == nil {
				results[i] = len(records)
			}
		}()
	}

	require.Eventually(t, func() bool { return hits.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, []int{1, 1, 1}, results)
}

func TestHTTPClient_EmptyNameIsAccepted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"name":"b"},{"name":""}]`))
	}))
	defer srv.Close()

	records, err := NewHTTPClient(srv.URL).Fetch(context.Background(), Query{})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"", "b"}, []string{
		catalog.SortByName(records)[0].Name,
		catalog.SortByName(records)[1].Name,
	})
}

func TestHTTPClient_CancelledCallerDoesNotFailSharedRequest(t *testing.T) {
	var hits atomic.Int32
	arrived := make(chan struct{}, 1)
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		arrived <- struct{}{}
		<-release
		_, _ = w.Write([]byte(`[{"name":"a"}]`))
	}))
	defer srv.Close()
	defer func() {
		select {
		case <-release:
		default:
			close(release)
		}
	}()

	client := NewHTTPClient(srv.URL)

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstDone := make(chan error, 1)
	go func() {
		_, err := client.Fetch(firstCtx, Query{Search: "a"})
		firstDone <- err
	}()
	<-arrived

	cancelFirst()
	err := <-firstDone
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, ErrTransport)

	// The request started by the cancelled caller is still in flight; a second
	// caller joins it instead of issuing a new one.
	secondDone := make(chan error, 1)
	var records []catalog.ServiceRecord
	go func() {
		var fetchErr error
		records, fetchErr = client.Fetch(context.Background(), Query{Search: "a"})
		secondDone <- fetchErr
	}()

	time.Sleep(20 * time.Millisecond)
	close(release)
	require.NoError(t, <-secondDone)
	require.Len(t, records, 1)
	assert.Equal(t, int32(1), hits.Load())
}

func TestFetcherFunc(t *testing.T) {
	called := false
	var f Fetcher = FetcherFunc(func(_ context.Context, q Query) ([]catalog.ServiceRecord, error) {
		called = true
		assert.Equal(t, "x", q.Search)
		return nil, nil
	})
	_, err := f.Fetch(context.Background(), Query{Search: "x"})
	require.NoError(t, err)
	assert.True(t, called)
}
