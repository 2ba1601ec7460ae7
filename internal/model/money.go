package model

import (
	"regexp"
	"strconv"
	"strings"
)

// salaryFigureRe matches dollar figures in free-form compensation text:
// "$180K", "$150,000", "190k total", "$85.5k".
var salaryFigureRe = regexp.MustCompile(`\$?\s?(\d{1,3}(?:,\d{3})+|\d+(?:\.\d+)?)\s*([kK])?`)

// minPlausibleSalary filters out figures that are clearly not annual pay
// (hourly rates, years, counts) after the K multiplier is applied.
const minPlausibleSalary = 10_000

// ParseSalaryText extracts an annual dollar figure from free-form
// compensation text. A range ("$150,000 - $190,000 a year") yields the
// midpoint of its lowest and highest plausible figures. Returns nil when
// no plausible figure is present; absence must propagate as unknown, never
// as zero.
func ParseSalaryText(s string) *float64 {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	var values []float64
	for _, m := range salaryFigureRe.FindAllStringSubmatch(s, -1) {
		raw := strings.ReplaceAll(m[1], ",", "")
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		if m[2] != "" {
			v *= 1000
		}
		if v < minPlausibleSalary {
			continue
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return nil
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	mid := (lo + hi) / 2
	return &mid
}
