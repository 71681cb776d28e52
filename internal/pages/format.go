package pages

import (
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/kazandelikates/catalog/internal/core"
)

// formatAmount renders a price with locale grouping and at most two
// fraction digits: 1 234,5 in Russian, 1,234.5 in English.
func formatAmount(s string, locale string) string {
	return formatDecimal(core.ToNumber(s), locale)
}

func formatDecimal(d decimal.Decimal, locale string) string {
	f, _ := d.Float64()
	p := message.NewPrinter(language.Make(locale))
	return p.Sprint(number.Decimal(f, number.MaxFractionDigits(2)))
}

// mailSubject encodes like encodeURIComponent: spaces become %20.
func mailSubject(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
