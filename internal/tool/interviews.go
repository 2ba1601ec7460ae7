package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/joblens/joblens/internal/model"
)

// InterviewParams are the validated parameters for the
// interview-experiences tool.
type InterviewParams struct {
	Company string
	Role    string
}

// InterviewExperiences queries the review source and the company profile
// source concurrently and renders candidate reports with the company's
// own process description alongside.
func (t *Tools) InterviewExperiences(ctx context.Context, p InterviewParams) string {
	var (
		reports []model.InterviewReport
		profile *model.OrganizationProfile
	)
	fanOut(ctx,
		func(ctx context.Context) { reports = t.interviews.Search(ctx, p.Company, p.Role) },
		func(ctx context.Context) { profile = t.orgs.Lookup(ctx, p.Company) },
	)

	reports, reviewsFailed := splitReports(reports)
	orgFailed := profile != nil && model.IsPlaceholderTitle(profile.ProcessNotes)
	if orgFailed {
		profile = nil
	}

	var b strings.Builder
	heading := p.Company
	if p.Role != "" {
		heading = p.Role + " at " + p.Company
	}
	fmt.Fprintf(&b, "# Interview Experiences: %s\n\n", heading)

	if len(reports) == 0 {
		b.WriteString("No interview reports retrieved for this company. The sources may be unavailable; re-run to retry.\n\n")
	}
	for i, r := range reports {
		renderReport(&b, i+1, r)
	}

	if profile != nil && profile.ProcessNotes != "" {
		fmt.Fprintf(&b, "## Company-Stated Process\n\n%s\n\n", profile.ProcessNotes)
	}

	b.WriteString(statusBlock([]sourceStatus{
		{id: sourceIDOf(t.interviews), failed: reviewsFailed, count: len(reports)},
		{id: sourceIDOf(t.orgs), failed: orgFailed, count: profileCount(profile)},
	}))

	return truncate(b.String(), t.report.CharBudget)
}

func renderReport(b *strings.Builder, n int, r model.InterviewReport) {
	header := fmt.Sprintf("Report %d", n)
	if r.Role != "" {
		header += ": " + r.Role
	}
	fmt.Fprintf(b, "## %s\n\n", header)

	if r.Difficulty != nil {
		fmt.Fprintf(b, "- Difficulty: %.1f / 5\n", *r.Difficulty)
	}
	if r.Sentiment != "" {
		fmt.Fprintf(b, "- Experience: %s\n", r.Sentiment)
	}
	if r.OfferExtended != nil {
		outcome := "no offer"
		if *r.OfferExtended {
			outcome = "offer extended"
		}
		fmt.Fprintf(b, "- Outcome: %s\n", outcome)
	}
	if r.Date != nil {
		fmt.Fprintf(b, "- Date: %s\n", r.Date.Format("2006-01-02"))
	}
	if r.ProcessNotes != "" {
		fmt.Fprintf(b, "\n%s\n", r.ProcessNotes)
	}
	if len(r.Questions) > 0 {
		b.WriteString("\nQuestions asked:\n\n")
		for _, q := range r.Questions {
			fmt.Fprintf(b, "1. %s\n", q)
		}
	}
	b.WriteString("\n")
}
