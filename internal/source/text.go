package source

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// CleanText collapses whitespace and strips non-breaking spaces.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.TrimSpace(strings.Join(strings.Fields(s), " "))
}

// FirstText returns the cleaned text of the first selector alternative
// that matches a non-empty node. Missing fields yield ""; extraction never
// fails a whole record over one field.
func FirstText(sel *goquery.Selection, selectors ...string) string {
	for _, s := range selectors {
		if t := CleanText(sel.Find(s).First().Text()); t != "" {
			return t
		}
	}
	return ""
}

// FirstAttr returns the named attribute from the first selector
// alternative that carries it non-empty.
func FirstAttr(sel *goquery.Selection, attr string, selectors ...string) string {
	for _, s := range selectors {
		if v, ok := sel.Find(s).First().Attr(attr); ok {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return ""
}

// FirstFloat parses the first float figure out of the first matching
// selector's text ("4.2", "Rating: 3.8 out of 5"). Returns nil when no
// selector yields a parseable number.
func FirstFloat(sel *goquery.Selection, selectors ...string) *float64 {
	for _, s := range selectors {
		if v := ParseLeadingFloat(sel.Find(s).First().Text()); v != nil {
			return v
		}
	}
	return nil
}

var floatRe = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// ParseLeadingFloat extracts the first numeric figure from free text.
func ParseLeadingFloat(s string) *float64 {
	m := floatRe.FindString(s)
	if m == "" {
		return nil
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return nil
	}
	return &v
}

var relativeDateRe = regexp.MustCompile(`(?i)(\d+)\+?\s*(day|week|month|hour)s?\s*ago`)

// ParseRelativeDate turns phrasing like "Posted 3 days ago", "30+ days
// ago", "today" into an absolute time relative to now. Returns nil for
// anything it cannot read; an unknown date stays unknown.
func ParseRelativeDate(s string, now time.Time) *time.Time {
	s = strings.ToLower(CleanText(s))
	if s == "" {
		return nil
	}
	if strings.Contains(s, "today") || strings.Contains(s, "just posted") {
		t := now
		return &t
	}
	if strings.Contains(s, "yesterday") {
		t := now.AddDate(0, 0, -1)
		return &t
	}

	m := relativeDateRe.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	var t time.Time
	switch m[2] {
	case "hour":
		t = now.Add(-time.Duration(n) * time.Hour)
	case "day":
		t = now.AddDate(0, 0, -n)
	case "week":
		t = now.AddDate(0, 0, -7*n)
	case "month":
		t = now.AddDate(0, -n, 0)
	default:
		return nil
	}
	return &t
}
