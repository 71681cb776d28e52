package core

// convert.go coerces spreadsheet cells into prices.
//
// Sheet cells are authored by hand, so prices arrive as "1 250,50",
// "1250.5", "1 250" (non-breaking space) or stray text. Coercion never
// fails: anything without a numeric prefix becomes zero, which the
// classifier then treats as "no price".

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// numericPrefix matches the leading float literal of a cleaned cell.
// Trailing text ("150.00 руб") is ignored.
var numericPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ToNumber converts a price-like cell to a decimal.
// Whitespace and byte order marks are removed, the first decimal comma becomes a point, and the
// longest numeric prefix is parsed. Empty or unparsable input yields zero.
func ToNumber(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}

	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '\ufeff' {
			return -1
		}
		return r
	}, s)
	s = strings.Replace(s, ",", ".", 1)

	m := numericPrefix.FindString(s)
	if m == "" {
		return decimal.Zero
	}
	// "12." is a valid prefix but not a valid decimal literal
	if i := strings.IndexAny(m, "eE"); i > 0 && m[i-1] == '.' {
		m = m[:i-1] + m[i:]
	}
	m = strings.TrimSuffix(m, ".")

	d, err := decimal.NewFromString(m)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FormatPrice renders a price with exactly two decimals.
func FormatPrice(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// cell returns row[i], or "" when the index is out of range or negative.
func cell(row Row, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
