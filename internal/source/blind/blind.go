// Package blind scrapes Blind interview-review threads into
// InterviewReport records.
package blind

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
const SourceID = "blind"

type docFetcher interface {
	Document(ctx context.Context, sourceID, rawURL string) (*goquery.Document, error)
}

// Client is the Blind interview-review source client.
type Client struct {
	fetch    docFetcher
	base     string
	label    string
	maxPages int
	now      func() time.Time
}

// New creates a Blind client over the shared fetcher.
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

// Search fetches interview reports for a company, optionally narrowed to a
// role. Never returns an error: total failure yields a single placeholder
// report, a failure after earlier pages succeeded keeps the partial results.
func (c *Client) Search(ctx context.Context, company, role string) []model.InterviewReport {
	var out []model.InterviewReport
	for page := 1; page <= c.maxPages; page++ {
		doc, err := c.fetch.Document(ctx, SourceID, c.searchURL(company, role, page))
		if err != nil {
			zap.L().Warn("blind: search fetch failed",
				zap.String("company", company),
				zap.Int("page", page),
				zap.Error(err),
			)
			if len(out) == 0 {
				return []model.InterviewReport{c.placeholder(company)}
			}
			return out
		}

		batch := c.parseReviews(doc, company)
		if len(batch) == 0 {
			break
		}
		out = append(out, batch...)
	}
	return out
}

func (c *Client) searchURL(company, role string, page int) string {
	u := c.base + "/company/" + companySlug(company) + "/interviews"
	q := url.Values{}
	if role != "" {
		q.Set("role", role)
	}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	if enc := q.Encode(); enc != "" {
		u += "?" + enc
	}
	return u
}

func companySlug(company string) string {
	return strings.ToLower(strings.Join(strings.Fields(company), "-"))
}

func (c *Client) parseReviews(doc *goquery.Document, company string) []model.InterviewReport {
	var out []model.InterviewReport
	doc.Find("article.interview-review, div[data-test=interview-card]").Each(func(_ int, card *goquery.Selection) {
		notes := source.FirstText(card, "div.process", "p[data-test=process-notes]")
		role := source.FirstText(card, "span.role", "span[data-test=role]")
		if notes == "" && role == "" {
			return
		}

		rep := model.InterviewReport{
			Organization: company,
			Role:         role,
			Difficulty:   source.FirstFloat(card, "span.difficulty", "span[data-test=difficulty]"),
			Sentiment:    parseSentiment(source.FirstText(card, "span.verdict", "span[data-test=experience]")),
			Questions:    parseQuestions(card),
			ProcessNotes: notes,
			Date:         source.ParseRelativeDate(source.FirstText(card, "time", "span.date"), c.now()),
			SourceID:     SourceID,
		}
		rep.OfferExtended = parseOffer(source.FirstText(card, "span.offer", "span[data-test=offer]"))
		out = append(out, rep)
	})
	return out
}

// parseQuestions keeps page order; downstream rendering relies on it.
func parseQuestions(card *goquery.Selection) []string {
	var out []string
	card.Find("ul.questions li, ol[data-test=questions] li").Each(func(_ int, li *goquery.Selection) {
		if q := source.CleanText(li.Text()); q != "" {
			out = append(out, q)
		}
	})
	return out
}

// parseSentiment maps the verdict text to the three-way enum. Anything it
// cannot classify stays empty rather than guessing neutral.
func parseSentiment(s string) model.Sentiment {
	switch l := strings.ToLower(s); {
	case l == "":
		return ""
	case strings.Contains(l, "positive") || strings.Contains(l, "great") || strings.Contains(l, "good"):
		return model.SentimentPositive
	case strings.Contains(l, "negative") || strings.Contains(l, "bad") || strings.Contains(l, "poor"):
		return model.SentimentNegative
	case strings.Contains(l, "neutral") || strings.Contains(l, "average") || strings.Contains(l, "ok"):
		return model.SentimentNeutral
	default:
		return ""
	}
}

// parseOffer reads outcome text like "Offer extended" or "No offer".
// Returns nil when the card does not state an outcome.
func parseOffer(s string) *bool {
	l := strings.ToLower(s)
	if !strings.Contains(l, "offer") {
		return nil
	}
	v := !strings.Contains(l, "no offer") && !strings.Contains(l, "declined to extend")
	return &v
}

func (c *Client) placeholder(company string) model.InterviewReport {
	return model.InterviewReport{
		Organization: company,
		ProcessNotes: model.PlaceholderTitle(c.label),
		SourceID:     SourceID,
	}
}
