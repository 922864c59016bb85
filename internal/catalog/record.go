package catalog

import (
	"encoding/json"
	"fmt"
)

// ServiceRecord is a single service entry in the catalog.
//
// Optional fields are pointers so that "absent" and "zero" stay distinguishable
// when a record is re-encoded for JSON or YAML output.
type ServiceRecord struct {
	ID          string          `json:"id,omitempty"          yaml:"id,omitempty"`
	Name        string          `json:"name"                  yaml:"name"`
	Published   bool            `json:"published"             yaml:"published"`
	Type        string          `json:"type"                  yaml:"type"`
	Configured  *bool           `json:"configured,omitempty"  yaml:"configured,omitempty"`
	Description *string         `json:"description,omitempty" yaml:"description,omitempty"`
	Metrics     *ServiceMetrics `json:"metrics,omitempty"     yaml:"metrics,omitempty"`
	Versions    []VersionRecord `json:"versions"              yaml:"versions"`
}

// ServiceMetrics holds the optional operational gauges reported for a service.
type ServiceMetrics struct {
	Errors   *float64 `json:"errors,omitempty"   yaml:"errors,omitempty"   validate:"omitempty,gte=0"`
	Latency  *float64 `json:"latency,omitempty"  yaml:"latency,omitempty"  validate:"omitempty,gte=0"`
	Requests *float64 `json:"requests,omitempty" yaml:"requests,omitempty" validate:"omitempty,gte=0"`
	Uptime   *float64 `json:"uptime,omitempty"   yaml:"uptime,omitempty"   validate:"omitempty,gte=0"`
}

// VersionRecord describes one published version of a service.
type VersionRecord struct {
	ID          string     `json:"id,omitempty"          yaml:"id,omitempty"`
	Name        string     `json:"name,omitempty"        yaml:"name,omitempty"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	UpdatedAt   string     `json:"updated_at,omitempty"  yaml:"updated_at,omitempty"`
	Developer   *Developer `json:"developer,omitempty"   yaml:"developer,omitempty"`
}

// Developer identifies the author of a version.
type Developer struct {
	ID     string `json:"id,omitempty"     yaml:"id,omitempty"`
	Name   string `json:"name,omitempty"   yaml:"name,omitempty"`
	Email  string `json:"email,omitempty"  yaml:"email,omitempty"`
	Avatar string `json:"avatar,omitempty" yaml:"avatar,omitempty"`
}

// UnmarshalJSON decodes a record, rejecting one whose name is missing or null.
// An empty name is kept; it sorts before every other name.
func (r *ServiceRecord) UnmarshalJSON(data []byte) error {
	type fields ServiceRecord
	aux := struct {
		*fields
		Name *string `json:"name"`
	}{fields: (*fields)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Name == nil {
		return fmt.Errorf("%w: name is missing or null", ErrInvalidRecord)
	}
	r.Name = *aux.Name
	return nil
}

// IsConfigured reports the configuration status, treating an absent value as false.
func (r ServiceRecord) IsConfigured() bool {
	return r.Configured != nil && *r.Configured
}

// DescriptionOrEmpty returns the description or "" when absent.
func (r ServiceRecord) DescriptionOrEmpty() string {
	if r.Description == nil {
		return ""
	}
	return *r.Description
}

// Uptime returns the uptime gauge and whether it was reported.
func (r ServiceRecord) Uptime() (float64, bool) {
	if r.Metrics == nil || r.Metrics.Uptime == nil {
		return 0, false
	}
	return *r.Metrics.Uptime, true
}
