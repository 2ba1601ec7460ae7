// Package indeed scrapes the Indeed job search results page into Listing
// records.
package indeed

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/joblens/joblens/internal/model"
	"github.com/joblens/joblens/internal/source"
)

// SourceID identifies this client in rate limiting and record provenance.
const SourceID = "indeed"

// resultsPerPage is Indeed's fixed page size; the start offset advances in
// multiples of it.
const resultsPerPage = 10

type docFetcher interface {
	Document(ctx context.Context, sourceID, rawURL string) (*goquery.Document, error)
}

// Client is the Indeed source client.
type Client struct {
	fetch    docFetcher
	base     string
	label    string
	maxPages int
	now      func() time.Time
}

// New creates an Indeed client over the shared fetcher.
func New(fetch docFetcher, entry source.Entry) *Client {
	return &Client{
		fetch:    fetch,
		base:     strings.TrimRight(entry.BaseURL, "/"),
		label:    entry.Label,
		maxPages: entry.MaxPages,
		now:      time.Now,
	}
}

// Name returns the source ID.
func (c *Client) Name() string { return SourceID }

// Search runs a paginated job search. It never returns an error: a failed
// fetch is logged and folded into a single placeholder record so the
// aggregator always receives a uniform record shape. A page that parses to
// zero records ends pagination (end of results, not an error).
func (c *Client) Search(ctx context.Context, query string, filters source.JobFilters) []model.Listing {
	limit := filters.Limit
	if limit <= 0 {
		limit = resultsPerPage
	}

	var out []model.Listing
	for page := 0; page < c.maxPages; page++ {
		doc, err := c.fetch.Document(ctx, SourceID, c.searchURL(query, filters, page))
		if err != nil {
			zap.L().Warn("indeed: search fetch failed",
				zap.String("query", query),
				zap.Int("page", page),
				zap.Error(err),
			)
			if len(out) == 0 {
				return []model.Listing{c.placeholder()}
			}
			return out
		}

		batch := c.parseSearch(doc)
		if len(batch) == 0 {
			break
		}
		out = append(out, batch...)
		if len(out) >= limit {
			out = out[:limit]
			break
		}
	}
	return out
}

func (c *Client) searchURL(query string, f source.JobFilters, page int) string {
	q := url.Values{}
	q.Set("q", query)
	if f.Location != "" {
		q.Set("l", f.Location)
	}
	if f.Remote {
		q.Set("sc", "0kf:attr(DSQF7);")
	}
	if lvl := strings.ToLower(f.ExperienceLevel); lvl != "" && lvl != "any" {
		q.Set("explvl", lvl+"_level")
	}
	if page > 0 {
		q.Set("start", strconv.Itoa(page*resultsPerPage))
	}
	return c.base + "/jobs?" + q.Encode()
}

// parseSearch extracts job cards. Indeed has shipped several card layouts;
// each field tries the known selector alternatives and gives up to nil
// rather than failing the record.
func (c *Client) parseSearch(doc *goquery.Document) []model.Listing {
	var out []model.Listing
	doc.Find("div.job_seen_beacon, div.jobsearch-SerpJobCard").Each(func(_ int, card *goquery.Selection) {
		title := source.FirstText(card,
			"h2.jobTitle span[title]",
			"h2.jobTitle a",
			"a.jcs-JobTitle span",
			"h2.title a",
		)
		org := source.FirstText(card,
			"span[data-testid=company-name]",
			"span.companyName",
			"span.company",
		)
		if title == "" || org == "" {
			// Sponsored shells and banner cards lack both; skip.
			return
		}

		href := source.FirstAttr(card, "href",
			"h2.jobTitle a",
			"a.jcs-JobTitle",
			"a[data-jk]",
		)
		if strings.HasPrefix(href, "/") {
			href = c.base + href
		}

		comp := source.FirstText(card,
			"div[data-testid=attribute_snippet_testid]",
			"div.salary-snippet-container",
			"span.salaryText",
		)
		// The snippet slot also carries non-pay attributes ("Full-time");
		// only keep text that reads as a pay figure.
		if comp != "" && model.ParseSalaryText(comp) == nil &&
			!strings.Contains(strings.ToLower(comp), "hour") {
			comp = ""
		}

		posted := source.FirstText(card,
			"span[data-testid=myJobsStateDate]",
			"span.date",
		)

		out = append(out, model.Listing{
			Title:        title,
			Organization: org,
			Location: source.FirstText(card,
				"div[data-testid=text-location]",
				"div.companyLocation",
				"span.location",
			),
			Compensation: comp,
			URL:          href,
			Description: source.FirstText(card,
				"div[data-testid=jobsnippet_footer]",
				"div.job-snippet",
				"div.summary",
			),
			PostedAt: source.ParseRelativeDate(posted, c.now()),
			SourceID: SourceID,
		})
	})
	return out
}

func (c *Client) placeholder() model.Listing {
	return model.Listing{
		Title:    model.PlaceholderTitle(c.label),
		SourceID: SourceID,
	}
}
