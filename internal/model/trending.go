package model

// Demand buckets hiring demand for a trending role.
type Demand string

const (
	DemandHigh   Demand = "high"
	DemandMedium Demand = "medium"
	DemandLow    Demand = "low"
)

// TrendingRole is one role from a trending/emerging-jobs source.
// HiringOrganizations has set semantics: deduplicated, order not
// significant.
type TrendingRole struct {
	Title               string   `json:"title"`
	HiringOrganizations []string `json:"hiring_organizations,omitempty"`
	GrowthRate          *float64 `json:"growth_rate,omitempty"` // percent year over year
	AverageCompensation string   `json:"average_compensation,omitempty"`
	Demand              Demand   `json:"demand,omitempty"` // "" when unknown
	SourceID            string   `json:"source_id"`
}
