// Package source holds the shared plumbing for the five upstream site
// clients: the source catalog, the rate-limited HTML fetcher, and the
// defensive text-extraction helpers. Selector heuristics live inside each
// client package and are swappable without touching the aggregation layer.
package source

// JobFilters narrows a job-board search. Zero values mean "no filter".
type JobFilters struct {
	Location        string
	Remote          bool
	ExperienceLevel string // entry, mid, senior, staff; "" or "any" for all
	Limit           int    // requested result count; pagination stops once satisfied
}
