package tool

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joblens/joblens/internal/config"
	"github.com/joblens/joblens/internal/model"
	"github.com/joblens/joblens/internal/source"
)

type stubJobs struct{ out []model.Listing }

func (s *stubJobs) Name() string { return "indeed" }
func (s *stubJobs) Search(context.Context, string, source.JobFilters) []model.Listing {
	return s.out
}

type stubOrgs struct{ out *model.OrganizationProfile }

func (s *stubOrgs) Name() string { return "glassdoor" }
func (s *stubOrgs) Lookup(context.Context, string) *model.OrganizationProfile {
	return s.out
}

type stubComp struct{ out []model.CompensationRecord }

func (s *stubComp) Name() string { return "levels" }
func (s *stubComp) Search(context.Context, string, string) []model.CompensationRecord {
	return s.out
}

type stubInterviews struct{ out []model.InterviewReport }

func (s *stubInterviews) Name() string { return "blind" }
func (s *stubInterviews) Search(context.Context, string, string) []model.InterviewReport {
	return s.out
}

type stubTrending struct{ out []model.TrendingRole }

func (s *stubTrending) Name() string { return "linkedin" }
func (s *stubTrending) Trending(context.Context, string) []model.TrendingRole {
	return s.out
}

func testReportConfig() config.ReportConfig {
	return config.ReportConfig{MaxResults: 25, MaxSalaryRows: 20, CharBudget: 30000}
}

func newTestTools(jobs *stubJobs, orgs *stubOrgs, comp *stubComp, interviews *stubInterviews, trending *stubTrending) *Tools {
	if jobs == nil {
		jobs = &stubJobs{}
	}
	if orgs == nil {
		orgs = &stubOrgs{}
	}
	if comp == nil {
		comp = &stubComp{}
	}
	if interviews == nil {
		interviews = &stubInterviews{}
	}
	if trending == nil {
		trending = &stubTrending{}
	}
	return New(jobs, orgs, comp, interviews, trending, testReportConfig())
}

func fptr(v float64) *float64 { return &v }

func TestSearchJobs_DuplicateAndPlaceholderScenario(t *testing.T) {
	jobs := &stubJobs{out: []model.Listing{
		{Title: "Senior ML Engineer", Organization: "DeepMetrics", Compensation: "$200,000", URL: "https://a.example"},
		{Title: "Senior ML Engineer", Organization: "Acme AI", URL: "https://b.example"},
		{Title: "senior ml engineer", Organization: "deepmetrics", URL: "https://c.example"},
		{Title: model.PlaceholderTitle("Indeed"), SourceID: "indeed"},
	}}

	report := newTestTools(jobs, nil, nil, nil, nil).
		SearchJobs(context.Background(), JobsParams{Query: "Senior ML Engineer", Limit: 5})

	// The duplicate collapses, the placeholder is a status line not a row.
	assert.Equal(t, 2, strings.Count(report, "| Senior ML Engineer |"))
	assert.Contains(t, report, "2 listings:")
	assert.NotContains(t, report, "Search Error")
	assert.Contains(t, report, "- indeed: failed")
	// The complete duplicate won; its URL survives, the loser's does not.
	assert.Contains(t, report, "https://a.example")
	assert.NotContains(t, report, "https://c.example")
}

func TestSearchJobs_MinSalaryFilter(t *testing.T) {
	jobs := &stubJobs{out: []model.Listing{
		{Title: "Data Engineer", Organization: "LowPay Co", Compensation: "$80,000"},
		{Title: "Data Engineer", Organization: "Mystery Co"},
		{Title: "Data Engineer", Organization: "HighPay Co", Compensation: "$180,000"},
	}}

	report := newTestTools(jobs, nil, nil, nil, nil).
		SearchJobs(context.Background(), JobsParams{Query: "Data Engineer", MinSalary: 120000, Limit: 10})

	assert.NotContains(t, report, "LowPay Co")
	assert.Contains(t, report, "Mystery Co")
	assert.Contains(t, report, "HighPay Co")
}

func TestSearchJobs_AllSourcesFailed(t *testing.T) {
	jobs := &stubJobs{out: []model.Listing{{Title: model.PlaceholderTitle("Indeed")}}}
	comp := &stubComp{out: []model.CompensationRecord{{Role: model.PlaceholderTitle("Levels.fyi")}}}

	report := newTestTools(jobs, nil, comp, nil, nil).
		SearchJobs(context.Background(), JobsParams{Query: "Senior ML Engineer", Limit: 5})

	assert.Contains(t, report, "No listings retrieved")
	assert.Contains(t, report, "- indeed: failed")
	assert.Contains(t, report, "- levels: failed")
}

func TestCompensation_MedianAndRangeScenario(t *testing.T) {
	comp := &stubComp{out: []model.CompensationRecord{
		{Role: "Software Engineer", Organization: "DeepMetrics", Total: fptr(180000), SourceID: "levels"},
		{Role: "Software Engineer", Organization: "Acme AI", Total: fptr(195000), SourceID: "levels"},
	}}

	report := newTestTools(nil, nil, comp, nil, nil).
		Compensation(context.Background(), CompensationParams{Role: "Software Engineer"})

	assert.Contains(t, report, "- Median: $187,500")
	assert.Contains(t, report, "Range: [$180,000, $195,000] across 2 values")
}

func TestCompensation_SinglePointOmitsStatistics(t *testing.T) {
	comp := &stubComp{out: []model.CompensationRecord{
		{Role: "Software Engineer", Organization: "DeepMetrics", Total: fptr(180000), SourceID: "levels"},
	}}

	report := newTestTools(nil, nil, comp, nil, nil).
		Compensation(context.Background(), CompensationParams{Role: "Software Engineer"})

	assert.NotContains(t, report, "Summary Statistics")
	assert.Contains(t, report, "DeepMetrics")
}

func TestCompensation_NilTotalsExcludedFromStats(t *testing.T) {
	comp := &stubComp{out: []model.CompensationRecord{
		{Role: "SWE", Organization: "A", Total: fptr(100000)},
		{Role: "SWE", Organization: "B"},
		{Role: "SWE", Organization: "C", Total: fptr(200000)},
	}}

	report := newTestTools(nil, nil, comp, nil, nil).
		Compensation(context.Background(), CompensationParams{Role: "SWE"})

	assert.Contains(t, report, "- Median: $150,000")
	assert.Contains(t, report, "across 2 values")
}

func TestCompanyInfo_RendersProfileAndReviews(t *testing.T) {
	rating := 4.2
	orgs := &stubOrgs{out: &model.OrganizationProfile{
		Name:     "DeepMetrics",
		Industry: "Information Technology",
		Rating:   &rating,
		CultureRatings: map[string]float64{
			"Work/Life Balance": 3.9,
			"Culture & Values":  4.1,
		},
		ProcessNotes: "Recruiter screen, then onsite.",
		SourceID:     "glassdoor",
	}}
	interviews := &stubInterviews{out: []model.InterviewReport{
		{Organization: "DeepMetrics", Sentiment: model.SentimentPositive, ProcessNotes: "Fast loop."},
		{Organization: "DeepMetrics", Sentiment: model.SentimentNegative, ProcessNotes: "Slow feedback."},
	}}

	report := newTestTools(nil, orgs, nil, interviews, nil).
		CompanyInfo(context.Background(), CompanyParams{Company: "DeepMetrics"})

	assert.Contains(t, report, "# Company: DeepMetrics")
	assert.Contains(t, report, "Information Technology")
	assert.Contains(t, report, "4.2 / 5")
	assert.Contains(t, report, "Work/Life Balance")
	assert.Contains(t, report, "Sentiment: 1 positive, 0 neutral, 1 negative")
	assert.Contains(t, report, "- glassdoor: ok (1 results)")
	assert.Contains(t, report, "- blind: ok (2 results)")
}

func TestCompanyInfo_AllSourcesFailed(t *testing.T) {
	orgs := &stubOrgs{out: &model.OrganizationProfile{
		Name:         "DeepMetrics",
		ProcessNotes: model.PlaceholderTitle("Glassdoor"),
	}}
	interviews := &stubInterviews{out: []model.InterviewReport{
		{Organization: "DeepMetrics", ProcessNotes: model.PlaceholderTitle("Blind")},
	}}

	report := newTestTools(nil, orgs, nil, interviews, nil).
		CompanyInfo(context.Background(), CompanyParams{Company: "DeepMetrics"})

	assert.Contains(t, report, "could not be retrieved")
	assert.Contains(t, report, "- glassdoor: failed")
	assert.Contains(t, report, "- blind: failed")
	assert.NotContains(t, report, "Search Error")
}

func TestInterviewExperiences_QuestionsKeepOrder(t *testing.T) {
	diff := 3.5
	offered := true
	interviews := &stubInterviews{out: []model.InterviewReport{{
		Organization:  "DeepMetrics",
		Role:          "Senior ML Engineer",
		Difficulty:    &diff,
		Sentiment:     model.SentimentPositive,
		OfferExtended: &offered,
		Questions:     []string{"First question", "Second question", "Third question"},
		ProcessNotes:  "Five rounds.",
	}}}

	report := newTestTools(nil, nil, nil, interviews, nil).
		InterviewExperiences(context.Background(), InterviewParams{Company: "DeepMetrics"})

	assert.Contains(t, report, "Difficulty: 3.5 / 5")
	assert.Contains(t, report, "Outcome: offer extended")
	first := strings.Index(report, "First question")
	second := strings.Index(report, "Second question")
	third := strings.Index(report, "Third question")
	require.True(t, first >= 0 && second >= 0 && third >= 0)
	assert.Less(t, first, second)
	assert.Less(t, second, third)
}

func TestTrendingRoles_GrowthStats(t *testing.T) {
	trending := &stubTrending{out: []model.TrendingRole{
		{Title: "AI Safety Engineer", GrowthRate: fptr(42), Demand: model.DemandHigh},
		{Title: "Analytics Engineer", GrowthRate: fptr(18), Demand: model.DemandMedium},
		{Title: "QA Lead"},
	}}

	report := newTestTools(nil, nil, nil, nil, trending).
		TrendingRoles(context.Background(), TrendingParams{})

	assert.Contains(t, report, "AI Safety Engineer")
	assert.Contains(t, report, "- Median: 30.0%")
	assert.Contains(t, report, "- linkedin: ok (3 results)")
	// No category given, so the pay benchmark source is not invoked.
	assert.NotContains(t, report, "levels")
}

func TestTrendingRoles_FailedSource(t *testing.T) {
	trending := &stubTrending{out: []model.TrendingRole{{Title: model.PlaceholderTitle("LinkedIn")}}}

	report := newTestTools(nil, nil, nil, nil, trending).
		TrendingRoles(context.Background(), TrendingParams{})

	assert.Contains(t, report, "No trending-role data retrieved")
	assert.Contains(t, report, "- linkedin: failed")
}

func TestReports_TruncatedAtBudget(t *testing.T) {
	var listings []model.Listing
	for i := 0; i < 40; i++ {
		listings = append(listings, model.Listing{
			Title:        fmt.Sprintf("Senior ML Engineer %d", i),
			Organization: strings.Repeat("LongCorp", 10),
			Description:  strings.Repeat("responsibilities ", 30),
		})
	}
	tools := New(&stubJobs{out: listings}, &stubOrgs{}, &stubComp{}, &stubInterviews{}, &stubTrending{},
		config.ReportConfig{MaxResults: 50, MaxSalaryRows: 20, CharBudget: 400})

	report := tools.SearchJobs(context.Background(), JobsParams{Query: "Senior ML Engineer", Limit: 50})

	assert.True(t, strings.HasSuffix(report, TruncationMarker))
	assert.LessOrEqual(t, len([]rune(report)), 400)
}
