package tool

import (
	"sort"
	"strings"

	"github.com/joblens/joblens/internal/model"
)

// titleMatch tiers, descending relevance.
const (
	matchExact = iota
	matchSubstring
	matchNone
)

func titleMatchTier(title, query string) int {
	t, q := model.Fold(strings.TrimSpace(title)), model.Fold(strings.TrimSpace(query))
	switch {
	case t == q:
		return matchExact
	case q != "" && strings.Contains(t, q):
		return matchSubstring
	default:
		return matchNone
	}
}

// rankListings orders listings by title relevance to the query (exact
// match, then substring, then none), breaking ties by presence of
// compensation text. Equal records keep their incoming order.
func rankListings(in []model.Listing, query string) []model.Listing {
	out := make([]model.Listing, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		ti, tj := titleMatchTier(out[i].Title, query), titleMatchTier(out[j].Title, query)
		if ti != tj {
			return ti < tj
		}
		return out[i].Compensation != "" && out[j].Compensation == ""
	})
	return out
}

// filterMinSalary drops listings whose parsed compensation figure falls
// below the floor. Listings with no parseable figure are retained: an
// unknown salary is not evidence of a low one.
func filterMinSalary(in []model.Listing, floor float64) []model.Listing {
	if floor <= 0 {
		return in
	}
	out := make([]model.Listing, 0, len(in))
	for _, l := range in {
		if v := model.ParseSalaryText(l.Compensation); v != nil && *v < floor {
			continue
		}
		out = append(out, l)
	}
	return out
}
