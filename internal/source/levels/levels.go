// Package levels scrapes Levels.fyi role pages into CompensationRecord
// rows.
package levels

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/joblens/joblens/internal/model"
	"github.com/joblens/joblens/internal/source"
)

// SourceID identifies this client in rate limiting and record provenance.
const SourceID = "levels"

type docFetcher interface {
	Document(ctx context.Context, sourceID, rawURL string) (*goquery.Document, error)
}

// Client is the Levels.fyi source client.
type Client struct {
	fetch    docFetcher
	base     string
	label    string
	maxPages int
}

// New creates a Levels.fyi client over the shared fetcher.
func New(fetch docFetcher, entry source.Entry) *Client {
	return &Client{
		fetch:    fetch,
		base:     strings.TrimRight(entry.BaseURL, "/"),
		label:    entry.Label,
		maxPages: entry.MaxPages,
	}
}

// Name returns the source ID.
func (c *Client) Name() string { return SourceID }

// Search fetches compensation rows for a role, optionally narrowed to one
// organization. Never returns an error: total failure yields a single
// placeholder record. Records from this source are kept side by side with
// other sources' records, never merged.
func (c *Client) Search(ctx context.Context, role, organization string) []model.CompensationRecord {
	var out []model.CompensationRecord
	for page := 1; page <= c.maxPages; page++ {
		doc, err := c.fetch.Document(ctx, SourceID, c.searchURL(role, organization, page))
		if err != nil {
			zap.L().Warn("levels: search fetch failed",
				zap.String("role", role),
				zap.Int("page", page),
				zap.Error(err),
			)
			if len(out) == 0 {
				return []model.CompensationRecord{c.placeholder()}
			}
			return out
		}

		batch := c.parseRows(doc, role)
		if len(batch) == 0 {
			break
		}
		out = append(out, batch...)
	}
	return out
}

func (c *Client) searchURL(role, organization string, page int) string {
	u := c.base + "/t/" + roleSlug(role)
	q := url.Values{}
	if organization != "" {
		q.Set("search", organization)
	}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	if enc := q.Encode(); enc != "" {
		u += "?" + enc
	}
	return u
}

func roleSlug(role string) string {
	return strings.ToLower(strings.Join(strings.Fields(role), "-"))
}

// parseRows reads the compensation table. Each numeric cell parses
// independently; an unreadable figure stays nil rather than zero, so it
// cannot pollute the summary statistics downstream.
func (c *Client) parseRows(doc *goquery.Document, role string) []model.CompensationRecord {
	var out []model.CompensationRecord
	doc.Find("table.comp-table tbody tr, div[data-test=comp-row]").Each(func(_ int, row *goquery.Selection) {
		org := source.FirstText(row, "td.company", "span[data-test=company]")
		if org == "" {
			return
		}

		rec := model.CompensationRecord{
			Role:         role,
			Organization: org,
			Level:        source.FirstText(row, "td.level", "span[data-test=level]"),
			Location:     source.FirstText(row, "td.location", "span[data-test=location]"),
			Base:         cellSalary(row, "td.base", "span[data-test=base]"),
			Equity:       cellSalary(row, "td.stock", "span[data-test=stock]"),
			Bonus:        cellSalary(row, "td.bonus", "span[data-test=bonus]"),
			Total:        cellSalary(row, "td.total", "span[data-test=total]"),
			SourceID:     SourceID,
		}
		out = append(out, rec)
	})
	return out
}

func cellSalary(row *goquery.Selection, selectors ...string) *float64 {
	return model.ParseSalaryText(source.FirstText(row, selectors...))
}

func (c *Client) placeholder() model.CompensationRecord {
	return model.CompensationRecord{
		Role:     model.PlaceholderTitle(c.label),
		SourceID: SourceID,
	}
}
