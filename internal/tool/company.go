package tool

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/joblens/joblens/internal/model"
)

// CompanyParams are the validated parameters for the company-info tool.
type CompanyParams struct {
	Company string
}

// CompanyInfo looks up the company profile and its interview reviews
// concurrently and renders a combined markdown report.
func (t *Tools) CompanyInfo(ctx context.Context, p CompanyParams) string {
	var (
		profile *model.OrganizationProfile
		reports []model.InterviewReport
	)
	fanOut(ctx,
		func(ctx context.Context) { profile = t.orgs.Lookup(ctx, p.Company) },
		func(ctx context.Context) { reports = t.interviews.Search(ctx, p.Company, "") },
	)

	orgFailed := profile != nil && model.IsPlaceholderTitle(profile.ProcessNotes)
	if orgFailed {
		profile = nil
	}
	reports, reviewsFailed := splitReports(reports)

	var b strings.Builder
	fmt.Fprintf(&b, "# Company: %s\n\n", p.Company)

	switch {
	case profile == nil && orgFailed:
		b.WriteString("The company profile could not be retrieved. Re-run to retry.\n\n")
	case profile == nil:
		b.WriteString("No company profile found under this name.\n\n")
	default:
		renderProfile(&b, profile)
	}

	if len(reports) > 0 {
		renderSentimentSummary(&b, reports)
	}

	b.WriteString(statusBlock([]sourceStatus{
		{id: sourceIDOf(t.orgs), failed: orgFailed, count: profileCount(profile)},
		{id: sourceIDOf(t.interviews), failed: reviewsFailed, count: len(reports)},
	}))

	return truncate(b.String(), t.report.CharBudget)
}

func profileCount(p *model.OrganizationProfile) int {
	if p == nil {
		return 0
	}
	return 1
}

func renderProfile(b *strings.Builder, p *model.OrganizationProfile) {
	b.WriteString("## Profile\n\n")
	tableHeader(b, "Field", "Value")
	tableRow(b, "Industry", p.Industry)
	tableRow(b, "Size", p.Size)
	tableRow(b, "Headquarters", p.Headquarters)
	tableRow(b, "Founded", p.Founded)
	tableRow(b, "Revenue", p.Revenue)
	if p.Rating != nil {
		tableRow(b, "Overall rating", fmt.Sprintf("%.1f / 5", *p.Rating))
	} else {
		tableRow(b, "Overall rating", "")
	}
	b.WriteString("\n")

	if len(p.CultureRatings) > 0 {
		b.WriteString("## Culture Ratings\n\n")
		tableHeader(b, "Category", "Score")
		for _, cat := range sortedKeys(p.CultureRatings) {
			tableRow(b, cat, fmt.Sprintf("%.1f", p.CultureRatings[cat]))
		}
		b.WriteString("\n")
	}

	if p.ProcessNotes != "" {
		fmt.Fprintf(b, "## Interview Process\n\n%s\n\n", p.ProcessNotes)
	}
}

// renderSentimentSummary condenses the review set into sentiment counts
// plus the most recent process notes.
func renderSentimentSummary(b *strings.Builder, reports []model.InterviewReport) {
	counts := map[model.Sentiment]int{}
	for _, r := range reports {
		if r.Sentiment != "" {
			counts[r.Sentiment]++
		}
	}

	fmt.Fprintf(b, "## Interview Reviews (%d)\n\n", len(reports))
	if len(counts) > 0 {
		fmt.Fprintf(b, "Sentiment: %d positive, %d neutral, %d negative\n\n",
			counts[model.SentimentPositive], counts[model.SentimentNeutral], counts[model.SentimentNegative])
	}
	shown := 0
	for _, r := range reports {
		if shown == 3 {
			break
		}
		if r.ProcessNotes == "" {
			continue
		}
		fmt.Fprintf(b, "- %s\n", tableCell(r.ProcessNotes))
		shown++
	}
	b.WriteString("\n")
}

func splitReports(in []model.InterviewReport) (ok []model.InterviewReport, failed bool) {
	for _, r := range in {
		if model.IsPlaceholderTitle(r.ProcessNotes) {
			failed = true
			continue
		}
		ok = append(ok, r)
	}
	return ok, failed
}

// sortedKeys gives map iteration a deterministic order for rendering.
func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
