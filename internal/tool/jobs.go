package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/joblens/joblens/internal/model"
	"github.com/joblens/joblens/internal/source"
)

// JobsParams are the validated parameters for the search-jobs tool.
type JobsParams struct {
	Query           string
	Location        string
	Remote          bool
	MinSalary       float64
	ExperienceLevel string
	Limit           int
}

// SearchJobs searches the job board and the compensation source
// concurrently, deduplicates and ranks the listings, and renders a
// markdown report. Always returns a report, even when every source fails.
func (t *Tools) SearchJobs(ctx context.Context, p JobsParams) string {
	limit := p.Limit
	if limit <= 0 || limit > t.report.MaxResults {
		limit = t.report.MaxResults
	}

	var (
		listings []model.Listing
		comps    []model.CompensationRecord
	)
	fanOut(ctx,
		func(ctx context.Context) {
			listings = t.jobs.Search(ctx, p.Query, source.JobFilters{
				Location:        p.Location,
				Remote:          p.Remote,
				ExperienceLevel: p.ExperienceLevel,
				Limit:           limit,
			})
		},
		func(ctx context.Context) {
			comps = t.comp.Search(ctx, p.Query, "")
		},
	)

	listings, jobsFailed := splitListings(listings)
	comps, compFailed := splitComps(comps)
	fetched := len(listings)

	listings = dedupeListings(listings)
	listings = filterMinSalary(listings, p.MinSalary)
	listings = rankListings(listings, p.Query)
	if len(listings) > limit {
		listings = listings[:limit]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Job Search: %s\n\n", p.Query)
	if p.Location != "" || p.Remote || p.ExperienceLevel != "" || p.MinSalary > 0 {
		b.WriteString(filtersLine(p))
	}

	if len(listings) == 0 {
		b.WriteString("No listings retrieved for this query. The sources may be unavailable; re-run to retry.\n\n")
	} else {
		fmt.Fprintf(&b, "%d listings:\n\n", len(listings))
		tableHeader(&b, "Title", "Organization", "Location", "Compensation", "Posted", "Source")
		for _, l := range listings {
			tableRow(&b, l.Title, l.Organization, l.Location, l.Compensation, formatDate(l.PostedAt), l.SourceID)
		}
		b.WriteString("\n")
		for _, l := range listings {
			if l.URL != "" {
				fmt.Fprintf(&b, "- %s: %s\n", tableCell(l.Title), l.URL)
			}
		}
		b.WriteString("\n")
	}

	summarySection(&b, "Compensation Context", summarize(compTotals(comps)))

	b.WriteString(statusBlock([]sourceStatus{
		{id: sourceIDOf(t.jobs), failed: jobsFailed, count: fetched},
		{id: sourceIDOf(t.comp), failed: compFailed, count: len(comps)},
	}))

	return truncate(b.String(), t.report.CharBudget)
}

func filtersLine(p JobsParams) string {
	var parts []string
	if p.Location != "" {
		parts = append(parts, "location "+p.Location)
	}
	if p.Remote {
		parts = append(parts, "remote only")
	}
	if p.ExperienceLevel != "" {
		parts = append(parts, p.ExperienceLevel+" level")
	}
	if p.MinSalary > 0 {
		parts = append(parts, "minimum "+formatMoney(p.MinSalary))
	}
	return "Filters: " + strings.Join(parts, ", ") + "\n\n"
}

// splitListings separates real listings from error placeholders. A
// placeholder is the client's whole output for a failed source, so any
// placeholder marks the source failed.
func splitListings(in []model.Listing) (ok []model.Listing, failed bool) {
	for _, l := range in {
		if model.IsPlaceholderTitle(l.Title) {
			failed = true
			continue
		}
		ok = append(ok, l)
	}
	return ok, failed
}

func splitComps(in []model.CompensationRecord) (ok []model.CompensationRecord, failed bool) {
	for _, r := range in {
		if model.IsPlaceholderTitle(r.Role) {
			failed = true
			continue
		}
		ok = append(ok, r)
	}
	return ok, failed
}

// compTotals collects the non-nil total figures from compensation rows.
func compTotals(in []model.CompensationRecord) []float64 {
	ptrs := make([]*float64, len(in))
	for i, r := range in {
		ptrs[i] = r.Total
	}
	return nonNil(ptrs)
}

// sourceIDOf reads the client's source ID for status lines. Clients and
// test mocks both expose Name().
func sourceIDOf(c any) string {
	if n, ok := c.(interface{ Name() string }); ok {
		return n.Name()
	}
	return "unknown"
}
