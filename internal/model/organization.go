package model

// OrganizationProfile holds what a culture/review site knows about one
// employer. Every field except Name is optional: upstream pages omit
// whole sections, and absence must surface as "unknown" in the report,
// never as a fabricated default. Each lookup re-fetches; profiles are
// never partially upgraded across calls.
type OrganizationProfile struct {
	Name           string             `json:"name"`
	Industry       string             `json:"industry,omitempty"`
	Size           string             `json:"size,omitempty"`
	Rating         *float64           `json:"rating,omitempty"`
	CultureRatings map[string]float64 `json:"culture_ratings,omitempty"`
	Headquarters   string             `json:"headquarters,omitempty"`
	Founded        string             `json:"founded,omitempty"`
	Revenue        string             `json:"revenue,omitempty"`
	ProcessNotes   string             `json:"process_notes,omitempty"`
	SourceID       string             `json:"source_id"`
}
