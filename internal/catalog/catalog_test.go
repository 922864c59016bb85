package catalog

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(records []ServiceRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}

func TestSortByName(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "case insensitive",
			input: []string{"banana", "Apple"},
			want:  []string{"Apple", "banana"},
		},
		{
			name:  "mixed case ordering",
			input: []string{"zeta", "Alpha", "beta", "ALPHA2"},
			want:  []string{"Alpha", "ALPHA2", "beta", "zeta"},
		},
		{
			name:  "empty",
			input: []string{},
			want:  []string{},
		},
		{
			name:  "digits sort before letters",
			input: []string{"b", "1a", "A"},
			want:  []string{"1a", "A", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := make([]ServiceRecord, len(tt.input))
			for i, n := range tt.input {
				records[i] = ServiceRecord{Name: n}
			}
			assert.Equal(t, tt.want, names(SortByName(records)))
		})
	}
}

func TestSortByName_StableTies(t *testing.T) {
	records := []ServiceRecord{
		{ID: "1", Name: "api"},
		{ID: "2", Name: "API"},
		{ID: "3", Name: "Api"},
		{ID: "4", Name: "aaa"},
	}

	sorted := SortByName(records)

	ids := make([]string, len(sorted))
	for i, r := range sorted {
		ids[i] = r.ID
	}
	assert.Equal(t, []string{"4", "1", "2", "3"}, ids)
}

func TestSortByName_DoesNotMutateInput(t *testing.T) {
	records := []ServiceRecord{{Name: "b"}, {Name: "a"}}
	_ = SortByName(records)
	assert.Equal(t, []string{"b", "a"}, names(records))
}

func TestSortByName_Idempotent(t *testing.T) {
	records := []ServiceRecord{{Name: "delta"}, {Name: "Charlie"}, {Name: "bravo"}, {Name: "ALPHA"}}

	once := SortByName(records)
	twice := SortByName(once)

	assert.Equal(t, once, twice)
	assert.True(t, IsSortedByName(once))
	assert.False(t, IsSortedByName(records))
}

func TestSortKey_FullCaseMapping(t *testing.T) {
	assert.Equal(t, "STRASSE", SortKey("straße"))
	assert.Equal(t, 0, CompareNames("straße", "STRASSE"))
	assert.Negative(t, CompareNames("apple", "Banana"))
}

func TestLatestVersion(t *testing.T) {
	t.Run("no versions", func(t *testing.T) {
		assert.Nil(t, ServiceRecord{Name: "svc"}.LatestVersion())
	})

	t.Run("highest semver wins", func(t *testing.T) {
		r := ServiceRecord{Name: "svc", Versions: []VersionRecord{
			{ID: "a", Name: "1.2.0"},
			{ID: "b", Name: "v1.10.0"},
			{ID: "c", Name: "1.9.3"},
		}}
		latest := r.LatestVersion()
		require.NotNil(t, latest)
		assert.Equal(t, "b", latest.ID)
	})

	t.Run("invalid names are skipped", func(t *testing.T) {
		r := ServiceRecord{Name: "svc", Versions: []VersionRecord{
			{ID: "a", Name: "2.0.0"},
			{ID: "b", Name: "nightly"},
		}}
		assert.Equal(t, "a", r.LatestVersion().ID)
	})

	t.Run("falls back to last entry", func(t *testing.T) {
		r := ServiceRecord{Name: "svc", Versions: []VersionRecord{
			{ID: "a", Name: "first"},
			{ID: "b", Name: "second"},
		}}
		assert.Equal(t, "b", r.LatestVersion().ID)
	})
}

func TestValidate(t *testing.T) {
	negative := -1.5

	t.Run("valid", func(t *testing.T) {
		require.NoError(t, ServiceRecord{Name: "billing"}.Validate())
	})

	t.Run("empty name is valid", func(t *testing.T) {
		require.NoError(t, ServiceRecord{}.Validate())
	})

	t.Run("negative metric", func(t *testing.T) {
		err := ServiceRecord{Name: "billing", Metrics: &ServiceMetrics{Latency: &negative}}.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidRecord))
		assert.Contains(t, err.Error(), "Latency")
	})

	t.Run("all reports index", func(t *testing.T) {
		err := ValidateAll([]ServiceRecord{{Name: "ok"}, {Name: "bad", Metrics: &ServiceMetrics{Uptime: &negative}}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "record 1")
		assert.ErrorIs(t, err, ErrInvalidRecord)
	})
}

func TestServiceRecord_UnmarshalName(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		wantErr  bool
		wantName string
	}{
		{name: "present", payload: `{"name":"billing"}`, wantName: "billing"},
		{name: "empty", payload: `{"name":""}`, wantName: ""},
		{name: "missing", payload: `{"id":"x","published":true,"type":"rest","versions":[]}`, wantErr: true},
		{name: "null", payload: `{"name":null}`, wantErr: true},
		{name: "wrong type", payload: `{"name":42}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r ServiceRecord
			err := json.Unmarshal([]byte(tt.payload), &r)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, r.Name)
		})
	}

	t.Run("missing name wraps ErrInvalidRecord", func(t *testing.T) {
		var records []ServiceRecord
		err := json.Unmarshal([]byte(`[{"name":"ok"},{"type":"rest"}]`), &records)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidRecord)
	})
}

func TestSortByName_EmptyNameSortsFirst(t *testing.T) {
	var records []ServiceRecord
	require.NoError(t, json.Unmarshal([]byte(`[{"name":"b"},{"name":""}]`), &records))
	require.NoError(t, ValidateAll(records))

	assert.Equal(t, []string{"", "b"}, names(SortByName(records)))
}

func TestSortByName_CodePointOrder(t *testing.T) {
	records := []ServiceRecord{
		{Name: "\U0001F600"},
		{Name: "\uFFFD"},
		{Name: "\uE000"},
		{Name: "z"},
	}

	assert.Equal(t, []string{"z", "\uE000", "\uFFFD", "\U0001F600"}, names(SortByName(records)))
}

func TestServiceRecord_JSONShape(t *testing.T) {
	payload := `{
		"id": "3f1c",
		"name": "Payments",
		"published": true,
		"type": "rest",
		"configured": false,
		"description": "Card processing",
		"metrics": {"errors": 2, "uptime": 99.5},
		"versions": [{
			"id": "v1",
			"name": "1.0.0",
			"updated_at": "2024-02-01T10:00:00Z",
			"developer": {"id": "d1", "name": "Dee", "email": "dee@example.com"}
		}]
	}`

	var r ServiceRecord
	require.NoError(t, json.Unmarshal([]byte(payload), &r))

	assert.Equal(t, "Payments", r.Name)
	assert.True(t, r.Published)
	require.NotNil(t, r.Configured)
	assert.False(t, r.IsConfigured())
	assert.Equal(t, "Card processing", r.DescriptionOrEmpty())
	uptime, ok := r.Uptime()
	assert.True(t, ok)
	assert.InDelta(t, 99.5, uptime, 0.0001)
	assert.Nil(t, r.Metrics.Latency)
	require.Len(t, r.Versions, 1)
	require.NotNil(t, r.Versions[0].Developer)
	assert.Equal(t, "dee@example.com", r.Versions[0].Developer.Email)
}
