// Package fixture serves a static service catalog over HTTP for local development
// and tests. Results are filtered by the q parameter but never sorted or paginated.
package fixture

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"

	"github.com/rshade/svccat/internal/catalog"
)

//go:embed catalog.json
var sampleCatalog []byte

// Sample returns the built-in demo catalog.
func Sample() ([]catalog.ServiceRecord, error) {
	return decode(sampleCatalog, "built-in catalog")
}

// Load reads a JSON array of service records from path.
func Load(path string) ([]catalog.ServiceRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	return decode(data, path)
}

func decode(data []byte, source string) ([]catalog.ServiceRecord, error) {
	var records []catalog.ServiceRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", source, err)
	}
	if err := catalog.ValidateAll(records); err != nil {
		return nil, fmt.Errorf("validating %s: %w", source, err)
	}
	if records == nil {
		records = []catalog.ServiceRecord{}
	}
	return records, nil
}

// Filter returns the records whose name or description contains q, ignoring case.
// An empty q matches everything. Order is preserved.
func Filter(records []catalog.ServiceRecord, q string) []catalog.ServiceRecord {
	if q == "" {
		return records
	}
	needle := strings.ToLower(q)
	return lo.Filter(records, func(r catalog.ServiceRecord, _ int) bool {
		return strings.Contains(strings.ToLower(r.Name), needle) ||
			strings.Contains(strings.ToLower(r.DescriptionOrEmpty()), needle)
	})
}
