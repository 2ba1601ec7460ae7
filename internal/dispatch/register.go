package dispatch

import (
	"context"

	"github.com/joblens/joblens/internal/tool"
)

func fptr(v float64) *float64 { return &v }

// RegisterAll binds the five aggregation tools to their parameter
// schemas.
func RegisterAll(d *Dispatcher, t *tool.Tools) {
	d.Register(Registration{
		Name:        "search-jobs",
		Description: "Search job listings across sources with dedupe and ranking.",
		Schema: Schema{Fields: []Field{
			{Name: "query", Kind: KindString, Required: true},
			{Name: "location", Kind: KindString},
			{Name: "remote", Kind: KindBool},
			{Name: "min_salary", Kind: KindFloat, Min: fptr(0)},
			{Name: "experience_level", Kind: KindEnum, Choices: []string{"entry", "mid", "senior", "staff", "any"}},
			{Name: "limit", Kind: KindInt, Min: fptr(1), Max: fptr(25), Default: 10},
		}},
		Handler: func(ctx context.Context, p map[string]any) string {
			return t.SearchJobs(ctx, tool.JobsParams{
				Query:           strParam(p, "query"),
				Location:        strParam(p, "location"),
				Remote:          boolParam(p, "remote"),
				MinSalary:       floatParam(p, "min_salary"),
				ExperienceLevel: strParam(p, "experience_level"),
				Limit:           intParam(p, "limit"),
			})
		},
	})

	d.Register(Registration{
		Name:        "company-info",
		Description: "Company profile, culture ratings and review sentiment.",
		Schema: Schema{Fields: []Field{
			{Name: "company", Kind: KindString, Required: true},
		}},
		Handler: func(ctx context.Context, p map[string]any) string {
			return t.CompanyInfo(ctx, tool.CompanyParams{Company: strParam(p, "company")})
		},
	})

	d.Register(Registration{
		Name:        "compensation",
		Description: "Compensation packages and summary statistics for a role.",
		Schema: Schema{Fields: []Field{
			{Name: "role", Kind: KindString, Required: true},
			{Name: "company", Kind: KindString},
		}},
		Handler: func(ctx context.Context, p map[string]any) string {
			return t.Compensation(ctx, tool.CompensationParams{
				Role:         strParam(p, "role"),
				Organization: strParam(p, "company"),
			})
		},
	})

	d.Register(Registration{
		Name:        "interview-experiences",
		Description: "Candidate interview reports for a company.",
		Schema: Schema{Fields: []Field{
			{Name: "company", Kind: KindString, Required: true},
			{Name: "role", Kind: KindString},
		}},
		Handler: func(ctx context.Context, p map[string]any) string {
			return t.InterviewExperiences(ctx, tool.InterviewParams{
				Company: strParam(p, "company"),
				Role:    strParam(p, "role"),
			})
		},
	})

	d.Register(Registration{
		Name:        "trending-roles",
		Description: "Trending roles with growth, demand and pay benchmarks.",
		Schema: Schema{Fields: []Field{
			{Name: "category", Kind: KindString},
		}},
		Handler: func(ctx context.Context, p map[string]any) string {
			return t.TrendingRoles(ctx, tool.TrendingParams{Category: strParam(p, "category")})
		},
	})
}

// Typed reads over validated parameter maps. Validation guarantees the
// dynamic types, so a missing optional field is the only case to handle.

func strParam(p map[string]any, name string) string {
	if v, ok := p[name].(string); ok {
		return v
	}
	return ""
}

func boolParam(p map[string]any, name string) bool {
	if v, ok := p[name].(bool); ok {
		return v
	}
	return false
}

func intParam(p map[string]any, name string) int {
	if v, ok := p[name].(int); ok {
		return v
	}
	return 0
}

func floatParam(p map[string]any, name string) float64 {
	if v, ok := p[name].(float64); ok {
		return v
	}
	return 0
}
