package tool

import "github.com/joblens/joblens/internal/model"

// dedupeListings collapses listings sharing a case-folded
// (organization, title) identity. On a collision the record with the
// strictly higher completeness score wins; ties keep the first-seen.
// First-seen order of the surviving records is preserved.
func dedupeListings(in []model.Listing) []model.Listing {
	byKey := make(map[string]int, len(in))
	out := make([]model.Listing, 0, len(in))
	for _, l := range in {
		key := model.FoldKey(l.Organization, l.Title)
		idx, seen := byKey[key]
		if !seen {
			byKey[key] = len(out)
			out = append(out, l)
			continue
		}
		if l.CompletenessScore() > out[idx].CompletenessScore() {
			out[idx] = l
		}
	}
	return out
}
