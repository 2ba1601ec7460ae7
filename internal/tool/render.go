package tool

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TruncationMarker terminates any report cut off at the character budget.
// Truncation is always explicit, never a silent mid-structure cut.
const TruncationMarker = "\n\n[Report truncated]"

// truncate caps s at budget runes, replacing the tail with the truncation
// marker. Rune-based so a multi-byte character is never split.
func truncate(s string, budget int) string {
	if budget <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= budget {
		return s
	}
	marker := []rune(TruncationMarker)
	keep := budget - len(marker)
	if keep < 0 {
		keep = 0
	}
	return string(runes[:keep]) + TruncationMarker
}

// orDash substitutes a dash for an absent value in table cells, so
// unknown reads as unknown rather than as an empty cell.
func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// tableCell strips pipes and newlines that would break a markdown table
// row.
func tableCell(s string) string {
	s = strings.ReplaceAll(s, "|", "/")
	s = strings.ReplaceAll(s, "\n", " ")
	return orDash(s)
}

// tableRow writes one pipe-delimited row.
func tableRow(b *strings.Builder, cells ...string) {
	b.WriteString("|")
	for _, c := range cells {
		b.WriteString(" ")
		b.WriteString(tableCell(c))
		b.WriteString(" |")
	}
	b.WriteString("\n")
}

// tableHeader writes the header row plus the divider row.
func tableHeader(b *strings.Builder, cells ...string) {
	tableRow(b, cells...)
	b.WriteString("|")
	for range cells {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")
}

// formatMoney renders a dollar figure with thousands separators, e.g.
// "$187,500".
func formatMoney(v float64) string {
	s := strconv.FormatFloat(v, 'f', 0, 64)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteString(",")
		}
		b.WriteRune(r)
	}
	out := "$" + b.String()
	if neg {
		out = "-" + out
	}
	return out
}

// formatMoneyPtr renders an optional dollar figure, dash when absent.
func formatMoneyPtr(v *float64) string {
	if v == nil {
		return "-"
	}
	return formatMoney(*v)
}

// formatDate renders an optional date, dash when absent.
func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("2006-01-02")
}

// summarySection renders the statistics block for a set of dollar
// figures, or nothing when summarize withholds statistics.
func summarySection(b *strings.Builder, title string, s *Summary) {
	if s == nil {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", title)
	fmt.Fprintf(b, "- Median: %s\n", formatMoney(s.Median))
	fmt.Fprintf(b, "- Mean: %s\n", formatMoney(s.Mean))
	fmt.Fprintf(b, "- Range: [%s, %s] across %d values\n\n",
		formatMoney(s.Min), formatMoney(s.Max), s.Count)
}
