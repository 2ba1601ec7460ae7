// Package tool implements the five aggregation tools. Each tool fans out
// to its source clients concurrently, tolerates individual source
// failures, and renders a bounded markdown report.
package tool

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/joblens/joblens/internal/config"
	"github.com/joblens/joblens/internal/model"
	"github.com/joblens/joblens/internal/source"
)

// Consumer-side views of the source clients. Selector heuristics stay
// inside the client packages; the tools only see the record shapes.
type (
	jobSearcher interface {
		Search(ctx context.Context, query string, filters source.JobFilters) []model.Listing
	}
	orgLookup interface {
		Lookup(ctx context.Context, organization string) *model.OrganizationProfile
	}
	compSearcher interface {
		Search(ctx context.Context, role, organization string) []model.CompensationRecord
	}
	interviewSearcher interface {
		Search(ctx context.Context, company, role string) []model.InterviewReport
	}
	trendingLister interface {
		Trending(ctx context.Context, category string) []model.TrendingRole
	}
)

// Tools holds the source clients and report bounds shared by the five
// aggregation tools. Stateless across calls; the only long-lived state in
// the process is the rate-limiter registry behind the clients.
type Tools struct {
	jobs       jobSearcher
	orgs       orgLookup
	comp       compSearcher
	interviews interviewSearcher
	trending   trendingLister
	report     config.ReportConfig
}

// New wires the five source clients into the tool layer.
func New(
	jobs jobSearcher,
	orgs orgLookup,
	comp compSearcher,
	interviews interviewSearcher,
	trending trendingLister,
	report config.ReportConfig,
) *Tools {
	return &Tools{
		jobs:       jobs,
		orgs:       orgs,
		comp:       comp,
		interviews: interviews,
		trending:   trending,
		report:     report,
	}
}

// sourceStatus records one source's outcome for the report status block.
type sourceStatus struct {
	id     string
	failed bool
	count  int
}

// statusBlock renders the per-source status lines that every report
// carries, failed sources included.
func statusBlock(statuses []sourceStatus) string {
	var b strings.Builder
	b.WriteString("## Sources\n\n")
	for _, s := range statuses {
		if s.failed {
			fmt.Fprintf(&b, "- %s: failed\n", s.id)
		} else {
			fmt.Fprintf(&b, "- %s: ok (%d results)\n", s.id, s.count)
		}
	}
	return b.String()
}

// fanOut runs the given source calls concurrently, issuing all of them
// before any join, and waits for all to settle. The calls never return
// errors (source failure is a placeholder record), so the group error is
// always nil.
func fanOut(ctx context.Context, calls ...func(context.Context)) {
	g, gctx := errgroup.WithContext(ctx)
	for _, call := range calls {
		call := call
		g.Go(func() error {
			call(gctx)
			return nil
		})
	}
	// Only tool panics could surface here; the dispatcher is the recovery
	// boundary for those.
	_ = g.Wait()

	zap.L().Debug("tool: fan-out settled", zap.Int("calls", len(calls)))
}
