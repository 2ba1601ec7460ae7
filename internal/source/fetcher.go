package source

import (
	"context"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"

	"github.com/joblens/joblens/internal/ratelimit"
)

// desktopUserAgent is sent on every outbound request. Upstream sites serve
// different markup (or block outright) for non-browser agents.
const desktopUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// maxBodyBytes caps how much of a response body is read into the parser.
const maxBodyBytes = 2 << 20

// Fetcher issues rate-limited GET requests and parses the bodies into
// goquery documents. One fetcher is shared by all source clients; the
// per-source token bucket is acquired before every request.
type Fetcher struct {
	client  *http.Client
	limiter *ratelimit.Registry
}

// NewFetcher creates a fetcher gated by the given limiter registry. The
// timeout bounds every request end to end and is the only cancellation
// mechanism below the tool layer.
func NewFetcher(limiter *ratelimit.Registry, timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 10 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 10 * time.Second,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: limiter,
	}
}

// Document fetches rawURL on behalf of sourceID and parses the body.
// A status below 500 is treated as parseable (block pages and soft 404s
// still carry markup worth trying); 500 and above is a transient upstream
// failure. Nothing is retried: a failed fetch is reported, not retried,
// within a single call.
func (f *Fetcher) Document(ctx context.Context, sourceID, rawURL string) (*goquery.Document, error) {
	if err := f.limiter.Acquire(ctx, sourceID); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, eris.Wrapf(err, "source: %s create request", sourceID)
	}
	req.Header.Set("User-Agent", desktopUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, eris.Wrapf(err, "source: %s fetch", sourceID)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 500 {
		return nil, eris.Errorf("source: %s upstream status %d", sourceID, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, eris.Wrapf(err, "source: %s parse body", sourceID)
	}
	return doc, nil
}
