package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/joblens/joblens/internal/model"
)

// TrendingParams are the validated parameters for the trending-roles
// tool.
type TrendingParams struct {
	Category string
}

// TrendingRoles fetches the trending-roles listing and, when a category
// is given, compensation rows for that category as a pay benchmark.
// Growth statistics run over the non-nil growth rates.
func (t *Tools) TrendingRoles(ctx context.Context, p TrendingParams) string {
	var (
		roles []model.TrendingRole
		comps []model.CompensationRecord
	)
	calls := []func(context.Context){
		func(ctx context.Context) { roles = t.trending.Trending(ctx, p.Category) },
	}
	benchmark := p.Category != ""
	if benchmark {
		calls = append(calls, func(ctx context.Context) {
			comps = t.comp.Search(ctx, p.Category, "")
		})
	}
	fanOut(ctx, calls...)

	roles, trendingFailed := splitTrending(roles)
	comps, compFailed := splitComps(comps)

	var b strings.Builder
	b.WriteString("# Trending Roles")
	if p.Category != "" {
		b.WriteString(": " + p.Category)
	}
	b.WriteString("\n\n")

	if len(roles) == 0 {
		b.WriteString("No trending-role data retrieved. The sources may be unavailable; re-run to retry.\n\n")
	} else {
		tableHeader(&b, "Role", "Growth", "Demand", "Avg Compensation", "Hiring")
		for _, r := range roles {
			tableRow(&b, r.Title, formatGrowth(r.GrowthRate), string(r.Demand),
				r.AverageCompensation, strings.Join(r.HiringOrganizations, ", "))
		}
		b.WriteString("\n")
	}

	if s := summarize(growthRates(roles)); s != nil {
		b.WriteString("## Growth Statistics\n\n")
		fmt.Fprintf(&b, "- Median: %.1f%%\n", s.Median)
		fmt.Fprintf(&b, "- Mean: %.1f%%\n", s.Mean)
		fmt.Fprintf(&b, "- Range: [%.1f%%, %.1f%%] across %d roles\n\n", s.Min, s.Max, s.Count)
	}

	summarySection(&b, "Pay Benchmark", summarize(compTotals(comps)))

	statuses := []sourceStatus{
		{id: sourceIDOf(t.trending), failed: trendingFailed, count: len(roles)},
	}
	if benchmark {
		statuses = append(statuses, sourceStatus{id: sourceIDOf(t.comp), failed: compFailed, count: len(comps)})
	}
	b.WriteString(statusBlock(statuses))

	return truncate(b.String(), t.report.CharBudget)
}

func splitTrending(in []model.TrendingRole) (ok []model.TrendingRole, failed bool) {
	for _, r := range in {
		if model.IsPlaceholderTitle(r.Title) {
			failed = true
			continue
		}
		ok = append(ok, r)
	}
	return ok, failed
}

func growthRates(in []model.TrendingRole) []float64 {
	ptrs := make([]*float64, len(in))
	for i, r := range in {
		ptrs[i] = r.GrowthRate
	}
	return nonNil(ptrs)
}

func formatGrowth(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%+.0f%%", *v)
}
