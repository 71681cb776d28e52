package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency is an ISO 4217 code used in price lists.
type Currency string

const (
	RUB Currency = "RUB"
	USD Currency = "USD"
	KZT Currency = "KZT"
	UZS Currency = "UZS"
	KGS Currency = "KGS"
	BYN Currency = "BYN"
	AZN Currency = "AZN"
)

// ExportCurrencies is the column order of export prices in every layout,
// starting at Layout.ExportPriceCol.
var ExportCurrencies = []Currency{USD, KZT, UZS, KGS, BYN, AZN}

// Currencies lists every currency a price list can be rendered in.
var Currencies = append([]Currency{RUB}, ExportCurrencies...)

// ErrUnsupportedCurrency is returned by ParseCurrency for unknown codes.
var ErrUnsupportedCurrency = errors.New("unsupported currency")

var currencyNames = map[Currency][2]string{
	RUB: {"Рубль (₽)", "Russian Ruble (₽)"},
	USD: {"Доллар ($)", "US Dollar ($)"},
	KZT: {"Тенге (₸)", "Kazakhstani Tenge (₸)"},
	UZS: {"Сум", "Uzbekistani Som"},
	KGS: {"Сом", "Kyrgyzstani Som"},
	BYN: {"Бел. рубль (Br)", "Belarusian Ruble (Br)"},
	AZN: {"Манат (₼)", "Azerbaijani Manat (₼)"},
}

// ParseCurrency normalizes a currency code.
func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := currencyNames[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedCurrency, s)
	}
	return c, nil
}

// Name returns the display name of the currency in the given language.
func (c Currency) Name(lang string) string {
	names, ok := currencyNames[c]
	if !ok {
		return string(c)
	}
	if lang == LangEN {
		return names[1]
	}
	return names[0]
}

// DefaultCurrency is USD for English price lists and RUB otherwise.
func DefaultCurrency(lang string) Currency {
	if lang == LangEN {
		return USD
	}
	return RUB
}

// Price is the displayable price of a product in one currency.
// Standard products fill Single; bakery products fill PerUnit and PerBox.
type Price struct {
	Single  decimal.Decimal
	PerUnit decimal.Decimal
	PerBox  decimal.Decimal
}

// PriceFor selects the price of p in the given currency. VAT only applies
// to RUB. Export currencies use the configured export price and fall back
// to zero, never to the domestic price.
func PriceFor(p Product, currency Currency, withVAT bool) Price {
	if currency != RUB {
		v := p.Offers.ExportPrices[currency]
		if p.IsBakery() {
			return Price{PerUnit: v, PerBox: v}
		}
		return Price{Single: v}
	}

	if p.IsBakery() {
		return Price{
			PerUnit: ToNumber(p.Offers.PricePerUnit),
			PerBox:  ToNumber(p.Offers.PricePerBox),
		}
	}
	if withVAT {
		return Price{Single: ToNumber(p.Offers.Price)}
	}
	return Price{Single: ToNumber(p.Offers.PriceExclVAT)}
}
