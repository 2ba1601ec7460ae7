package model

import (
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// descriptionRuneThreshold is the minimum description length that counts
// toward a listing's completeness score. Shorter snippets are usually
// truncated teasers rather than real descriptions.
const descriptionRuneThreshold = 40

// Listing is one job posting normalized from any upstream source. Records
// are created per request from parsed HTML and discarded after the report
// is rendered; nothing is persisted.
type Listing struct {
	Title        string     `json:"title"`
	Organization string     `json:"organization"`
	Location     string     `json:"location,omitempty"`
	Compensation string     `json:"compensation,omitempty"` // raw text, "" when the page omits it
	URL          string     `json:"url"`
	Description  string     `json:"description,omitempty"`
	PostedAt     *time.Time `json:"posted_at,omitempty"`
	SourceID     string     `json:"source_id"`
}

var foldCaser = cases.Fold()

// FoldKey builds the case-insensitive dedup identity for a listing:
// Unicode case-folded organization and title joined with a pipe.
func FoldKey(organization, title string) string {
	return foldCaser.String(strings.TrimSpace(organization)) + "|" +
		foldCaser.String(strings.TrimSpace(title))
}

// Fold returns the Unicode case-folded form of s, for case-insensitive
// comparisons outside the dedup key.
func Fold(s string) string {
	return foldCaser.String(s)
}

// CompletenessScore counts the non-empty enrichment fields on a listing:
// compensation text, a description longer than the teaser threshold, and a
// posted date. Used as the dedup tie-breaker; higher wins.
func (l Listing) CompletenessScore() int {
	score := 0
	if l.Compensation != "" {
		score++
	}
	if utf8.RuneCountInString(l.Description) > descriptionRuneThreshold {
		score++
	}
	if l.PostedAt != nil {
		score++
	}
	return score
}
