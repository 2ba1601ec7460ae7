package model

// CompensationRecord is one pay data point for a role. Records from
// different sources are never merged into one; they are listed side by
// side and only aggregated through summary statistics over the non-nil
// numeric subset.
type CompensationRecord struct {
	Role         string   `json:"role"`
	Organization string   `json:"organization,omitempty"`
	Location     string   `json:"location,omitempty"`
	Base         *float64 `json:"base,omitempty"`
	Equity       *float64 `json:"equity,omitempty"`
	Bonus        *float64 `json:"bonus,omitempty"`
	Total        *float64 `json:"total,omitempty"`
	Level        string   `json:"level,omitempty"`
	SourceID     string   `json:"source_id"`
}
