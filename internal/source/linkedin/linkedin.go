// Package linkedin scrapes a trending/emerging-roles listing into
// TrendingRole records.
package linkedin

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/joblens/joblens/internal/model"
	"github.com/joblens/joblens/internal/source"
)

// SourceID identifies this client in rate limiting and record provenance.
const SourceID = "linkedin"

type docFetcher interface {
	Document(ctx context.Context, sourceID, rawURL string) (*goquery.Document, error)
}

// Client is the LinkedIn trending-roles source client.
type Client struct {
	fetch docFetcher
	base  string
	label string
}

// New creates a LinkedIn client over the shared fetcher.
func New(fetch docFetcher, entry source.Entry) *Client {
	return &Client{
		fetch: fetch,
		base:  strings.TrimRight(entry.BaseURL, "/"),
		label: entry.Label,
	}
}

// Name returns the source ID.
func (c *Client) Name() string { return SourceID }

// Trending fetches the trending-roles listing, optionally filtered to a
// category. Never returns an error: failure yields a single placeholder
// role.
func (c *Client) Trending(ctx context.Context, category string) []model.TrendingRole {
	doc, err := c.fetch.Document(ctx, SourceID, c.trendingURL(category))
	if err != nil {
		zap.L().Warn("linkedin: trending fetch failed",
			zap.String("category", category),
			zap.Error(err),
		)
		return []model.TrendingRole{c.placeholder()}
	}
	return c.parseRoles(doc)
}

func (c *Client) trendingURL(category string) string {
	u := c.base + "/jobs/trending"
	if category != "" {
		u += "?category=" + url.QueryEscape(category)
	}
	return u
}

func (c *Client) parseRoles(doc *goquery.Document) []model.TrendingRole {
	var out []model.TrendingRole
	doc.Find("li.trending-role, div[data-test=trending-role]").Each(func(_ int, card *goquery.Selection) {
		title := source.FirstText(card, "h3.role-title", "span[data-test=title]")
		if title == "" {
			return
		}

		out = append(out, model.TrendingRole{
			Title:               title,
			HiringOrganizations: parseHiringOrgs(card),
			GrowthRate:          source.FirstFloat(card, "span.growth", "span[data-test=growth]"),
			AverageCompensation: source.FirstText(card, "span.avg-comp", "span[data-test=avg-comp]"),
			Demand:              parseDemand(source.FirstText(card, "span.demand", "span[data-test=demand]")),
			SourceID:            SourceID,
		})
	})
	return out
}

// parseHiringOrgs deduplicates while keeping first-seen order, giving the
// field its set semantics.
func parseHiringOrgs(card *goquery.Selection) []string {
	seen := make(map[string]struct{})
	var out []string
	card.Find("ul.hiring-orgs li, span[data-test=hiring-org]").Each(func(_ int, li *goquery.Selection) {
		org := source.CleanText(li.Text())
		if org == "" {
			return
		}
		key := model.Fold(org)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, org)
	})
	return out
}

// parseDemand maps the page's demand wording to the three-way enum.
// Unknown wording stays empty.
func parseDemand(s string) model.Demand {
	switch l := strings.ToLower(s); {
	case strings.Contains(l, "high") || strings.Contains(l, "surging"):
		return model.DemandHigh
	case strings.Contains(l, "medium") || strings.Contains(l, "moderate"):
		return model.DemandMedium
	case strings.Contains(l, "low") || strings.Contains(l, "cooling"):
		return model.DemandLow
	default:
		return ""
	}
}

func (c *Client) placeholder() model.TrendingRole {
	return model.TrendingRole{
		Title:    model.PlaceholderTitle(c.label),
		SourceID: SourceID,
	}
}
