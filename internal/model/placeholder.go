package model

import "strings"

// placeholderSuffix marks sentinel records substituted for a failed fetch
// or parse. The aggregator recognizes the marker, excludes the record from
// substantive aggregation, and reports the source as failed instead.
const placeholderSuffix = " Search Error]"

// PlaceholderTitle builds the sentinel title for a failed source, e.g.
// "[Indeed Search Error]".
func PlaceholderTitle(sourceLabel string) string {
	return "[" + sourceLabel + placeholderSuffix
}

// IsPlaceholderTitle reports whether s is a sentinel title produced by
// PlaceholderTitle.
func IsPlaceholderTitle(s string) bool {
	return strings.HasPrefix(s, "[") && strings.HasSuffix(s, placeholderSuffix)
}
