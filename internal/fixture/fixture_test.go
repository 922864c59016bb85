package fixture

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/svccat/internal/catalog"
	"github.com/rshade/svccat/internal/fetch"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func names(records []catalog.ServiceRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}

func TestSample(t *testing.T) {
	records, err := Sample()
	require.NoError(t, err)
	require.NotEmpty(t, records)
	assert.False(t, catalog.IsSortedByName(records), "sample is served unsorted")
}

func TestLoad(t *testing.T) {
	records, err := Load("testdata/small.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"banana", "Apple"}, names(records))

	_, err = Load("testdata/invalid.json")
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrInvalidRecord)

	_, err = Load("testdata/missing.json")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFilter(t *testing.T) {
	records, err := Load("testdata/small.json")
	require.NoError(t, err)

	tests := []struct {
		name string
		q    string
		want []string
	}{
		{name: "empty matches all", q: "", want: []string{"banana", "Apple"}},
		{name: "name case-insensitive", q: "APP", want: []string{"Apple"}},
		{name: "description", q: "fruit", want: []string{"Apple"}},
		{name: "shared substring keeps order", q: "a", want: []string{"banana", "Apple"}},
		{name: "no match", q: "zzz", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(Filter(records, tt.q)))
		})
	}
}

func TestServer_ListServices(t *testing.T) {
	records, err := Load("testdata/small.json")
	require.NoError(t, err)
	srv := NewServer(records)

	tests := []struct {
		name   string
		target string
		want   []string
	}{
		{name: "all", target: ServicesPath, want: []string{"banana", "Apple"}},
		{name: "filtered", target: ServicesPath + "?q=ban", want: []string{"banana"}},
		{name: "empty result is an array", target: ServicesPath + "?q=kiwi", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			require.Equal(t, http.StatusOK, rec.Code)
			var got []catalog.ServiceRecord
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			require.NotNil(t, got)
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestServer_Health(t *testing.T) {
	srv := NewServer([]catalog.ServiceRecord{{Name: "a"}})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, HealthPath, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","services":1}`, rec.Body.String())
}

func TestServer_WithHTTPClient(t *testing.T) {
	records, err := Sample()
	require.NoError(t, err)
	ts := httptest.NewServer(NewServer(records).Handler())
	defer ts.Close()

	client := fetch.NewHTTPClient(ts.URL + ServicesPath)
	got, err := client.Fetch(context.Background(), fetch.Query{Search: "pay"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"payments", "Payouts"}, names(got))

	// The space survives the round trip through query escaping.
	got, err = client.Fetch(context.Background(), fetch.Query{Search: "wallet payment"})
	require.NoError(t, err)
	assert.Equal(t, []string{"payments"}, names(got))
}

func TestServer_Latency(t *testing.T) {
	srv := NewServer([]catalog.ServiceRecord{{Name: "a"}}, WithLatency(20*time.Millisecond))

	start := time.Now()
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, ServicesPath, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestServer_Run(t *testing.T) {
	srv := NewServer([]catalog.ServiceRecord{{Name: "a"}})
	ctx, cancel := context.WithCancel(context.Background())

	addrCh := make(chan net.Addr, 1)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run(ctx, "127.0.0.1:0", func(a net.Addr) { addrCh <- a })
	}()

	var addr net.Addr
	select {
	case addr = <-addrCh:
	case err := <-errCh:
		t.Fatalf("Run returned early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}

	resp, err := http.Get("http://" + addr.String() + HealthPath)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
