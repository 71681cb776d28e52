// Package export renders catalog products into downloadable price lists,
// JSON documents and feeds. Every writer is a pure function of the product
// slice and its options.
package export

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kazandelikates/catalog/internal/core"
)

// ErrUnsupportedFormat is returned for unknown price list formats.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Format is a downloadable price list format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatXLS  Format = "xls" // SpreadsheetML 2003
)

// ParseFormat accepts csv, xlsx, xls and the legacy alias excel.
// An empty value selects xlsx.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "xlsx":
		return FormatXLSX, nil
	case "csv":
		return FormatCSV, nil
	case "xls", "excel":
		return FormatXLS, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// ContentType is the response media type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatXLS:
		return "application/vnd.ms-excel; charset=utf-8"
	default:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
}

// Options selects the language, currency and VAT mode of a price list.
type Options struct {
	Lang     string
	Currency core.Currency
	WithVAT  bool
}

// ParseOptions applies request defaults: the currency follows the language
// and VAT is included for RUB unless vat is "false". Other currencies are
// always quoted excluding VAT.
func ParseOptions(lang, currency, vat string) (Options, error) {
	opts := Options{Lang: core.NormalizeLang(lang)}

	if currency == "" {
		opts.Currency = core.DefaultCurrency(opts.Lang)
	} else {
		c, err := core.ParseCurrency(currency)
		if err != nil {
			return Options{}, err
		}
		opts.Currency = c
	}

	opts.WithVAT = opts.Currency == core.RUB && strings.ToLower(vat) != "false"
	return opts, nil
}

func (o Options) english() bool {
	return o.Lang == core.LangEN
}

// VATLabel describes the VAT mode in the price column header.
func (o Options) VATLabel() string {
	switch {
	case o.Currency == core.RUB && o.WithVAT && o.english():
		return "incl. VAT"
	case o.Currency == core.RUB && o.WithVAT:
		return "с НДС"
	case o.english():
		return "excl. VAT"
	default:
		return "без НДС"
	}
}

// Filename is the attachment name, e.g. Kazanskie_Delikatesy_RUB_VAT.csv.
func (o Options) Filename(f Format) string {
	company := "Kazanskie_Delikatesy"
	if o.english() {
		company = "Kazan_Delicacies"
	}

	suffix := ""
	if o.Currency == core.RUB {
		suffix = "_noVAT"
		if o.WithVAT {
			suffix = "_VAT"
		}
	}
	return fmt.Sprintf("%s_%s%s.%s", company, o.Currency, suffix, f)
}
