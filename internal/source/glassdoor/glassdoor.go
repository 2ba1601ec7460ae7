// Package glassdoor scrapes Glassdoor employer overview pages into
// OrganizationProfile records.
package glassdoor

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/joblens/joblens/internal/model"
	"github.com/joblens/joblens/internal/source"
)

// SourceID identifies this client in rate limiting and record provenance.
const SourceID = "glassdoor"

type docFetcher interface {
	Document(ctx context.Context, sourceID, rawURL string) (*goquery.Document, error)
}

// Client is the Glassdoor source client.
type Client struct {
	fetch docFetcher
	base  string
	label string
}

// New creates a Glassdoor client over the shared fetcher.
func New(fetch docFetcher, entry source.Entry) *Client {
	return &Client{
		fetch: fetch,
		base:  strings.TrimRight(entry.BaseURL, "/"),
		label: entry.Label,
	}
}

// Name returns the source ID.
func (c *Client) Name() string { return SourceID }

// Lookup fetches the employer overview page for the named organization.
// Returns nil when the page parses but holds no profile (organization
// unknown to the source); returns a placeholder profile when the fetch
// itself fails, so the aggregator can report the source as failed.
func (c *Client) Lookup(ctx context.Context, organization string) *model.OrganizationProfile {
	doc, err := c.fetch.Document(ctx, SourceID, c.lookupURL(organization))
	if err != nil {
		zap.L().Warn("glassdoor: lookup fetch failed",
			zap.String("organization", organization),
			zap.Error(err),
		)
		return c.placeholder(organization)
	}
	return c.parseProfile(doc, organization)
}

func (c *Client) lookupURL(organization string) string {
	return c.base + "/Overview/Working-at-" + slug(organization) + ".htm"
}

// slug approximates Glassdoor's employer URL slugs: words joined by
// hyphens, punctuation dropped.
func slug(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}

// parseProfile extracts the overview module field by field. Any field the
// page omits stays absent; a page with no recognizable profile at all
// yields nil.
func (c *Client) parseProfile(doc *goquery.Document, requested string) *model.OrganizationProfile {
	name := source.FirstText(doc.Selection,
		"[data-test=employer-name]",
		"h1[data-test=employerName]",
		"div.employer-overview h1",
	)
	rating := source.FirstFloat(doc.Selection,
		"[data-test=rating]",
		"span.ratingNum",
		"div.rating-headline span.value",
	)
	industry := source.FirstText(doc.Selection,
		"[data-test=employer-industry]",
		"div.infoEntity.industry span.value",
	)

	if name == "" && rating == nil && industry == "" {
		return nil
	}
	if name == "" {
		name = requested
	}

	p := &model.OrganizationProfile{
		Name:     name,
		Industry: industry,
		Rating:   rating,
		Size: source.FirstText(doc.Selection,
			"[data-test=employer-size]",
			"div.infoEntity.size span.value",
		),
		Headquarters: source.FirstText(doc.Selection,
			"[data-test=employer-headquarters]",
			"div.infoEntity.headquarters span.value",
		),
		Founded: source.FirstText(doc.Selection,
			"[data-test=employer-founded]",
			"div.infoEntity.founded span.value",
		),
		Revenue: source.FirstText(doc.Selection,
			"[data-test=employer-revenue]",
			"div.infoEntity.revenue span.value",
		),
		ProcessNotes: source.FirstText(doc.Selection,
			"[data-test=interview-process]",
			"div.interviewProcess p",
		),
		SourceID: SourceID,
	}

	p.CultureRatings = parseCultureRatings(doc)
	return p
}

// parseCultureRatings reads the category rating breakdown (work/life
// balance, compensation, culture, ...). Rows missing either half are
// skipped rather than invented.
func parseCultureRatings(doc *goquery.Document) map[string]float64 {
	ratings := make(map[string]float64)
	doc.Find("[data-test=rating-breakdown] li, ul.ratingBreakdown li").Each(func(_ int, row *goquery.Selection) {
		category := source.FirstText(row, "span.category", "div.minor")
		score := source.FirstFloat(row, "span.score", "div.mean")
		if category == "" || score == nil {
			return
		}
		ratings[category] = *score
	})
	if len(ratings) == 0 {
		return nil
	}
	return ratings
}

func (c *Client) placeholder(organization string) *model.OrganizationProfile {
	return &model.OrganizationProfile{
		Name:         organization,
		ProcessNotes: model.PlaceholderTitle(c.label),
		SourceID:     SourceID,
	}
}
