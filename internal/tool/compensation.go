package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/joblens/joblens/internal/model"
	"github.com/joblens/joblens/internal/source"
)

// CompensationParams are the validated parameters for the compensation
// tool.
type CompensationParams struct {
	Role         string
	Organization string
}

// Compensation queries the compensation source and the job board
// concurrently and renders salary rows plus summary statistics. Rows from
// different sources are listed side by side, never merged; statistics run
// over the non-nil totals from both.
func (t *Tools) Compensation(ctx context.Context, p CompensationParams) string {
	var (
		comps    []model.CompensationRecord
		listings []model.Listing
	)
	fanOut(ctx,
		func(ctx context.Context) {
			comps = t.comp.Search(ctx, p.Role, p.Organization)
		},
		func(ctx context.Context) {
			query := p.Role
			if p.Organization != "" {
				query = p.Role + " " + p.Organization
			}
			listings = t.jobs.Search(ctx, query, source.JobFilters{Limit: t.report.MaxSalaryRows})
		},
	)

	comps, compFailed := splitComps(comps)
	listings, jobsFailed := splitListings(listings)

	totals := compTotals(comps)
	for _, l := range listings {
		if v := model.ParseSalaryText(l.Compensation); v != nil {
			totals = append(totals, *v)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Compensation: %s\n\n", titleWithOrg(p.Role, p.Organization))

	if len(comps) == 0 && len(listings) == 0 {
		b.WriteString("No compensation data retrieved. The sources may be unavailable; re-run to retry.\n\n")
	}

	if len(comps) > 0 {
		rows := comps
		if len(rows) > t.report.MaxSalaryRows {
			rows = rows[:t.report.MaxSalaryRows]
		}
		fmt.Fprintf(&b, "## Reported Packages (%d)\n\n", len(rows))
		tableHeader(&b, "Organization", "Level", "Location", "Base", "Equity", "Bonus", "Total", "Source")
		for _, r := range rows {
			tableRow(&b, r.Organization, r.Level, r.Location,
				formatMoneyPtr(r.Base), formatMoneyPtr(r.Equity), formatMoneyPtr(r.Bonus),
				formatMoneyPtr(r.Total), r.SourceID)
		}
		b.WriteString("\n")
	}

	if posted := listingsWithPay(listings); len(posted) > 0 {
		b.WriteString("## Posted Listings With Pay\n\n")
		tableHeader(&b, "Title", "Organization", "Compensation", "Source")
		for _, l := range posted {
			tableRow(&b, l.Title, l.Organization, l.Compensation, l.SourceID)
		}
		b.WriteString("\n")
	}

	summarySection(&b, "Summary Statistics", summarize(totals))

	b.WriteString(statusBlock([]sourceStatus{
		{id: sourceIDOf(t.comp), failed: compFailed, count: len(comps)},
		{id: sourceIDOf(t.jobs), failed: jobsFailed, count: len(listings)},
	}))

	return truncate(b.String(), t.report.CharBudget)
}

func titleWithOrg(role, organization string) string {
	if organization == "" {
		return role
	}
	return role + " at " + organization
}

func listingsWithPay(in []model.Listing) []model.Listing {
	var out []model.Listing
	for _, l := range in {
		if l.Compensation != "" {
			out = append(out, l)
		}
	}
	return out
}
