package core

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestPriceFor(t *testing.T) {
	standard := Product{Offers: Offers{
		Price:        "150.00",
		PriceExclVAT: "125.00",
		ExportPrices: ExportPrices{USD: decimal.RequireFromString("2.1")},
	}}
	bakery := Product{Offers: Offers{
		PricePerUnit: "85.00",
		PricePerBox:  "1700.00",
		ExportPrices: ExportPrices{KZT: decimal.RequireFromString("520")},
	}}

	tests := []struct {
		name    string
		p       Product
		cur     Currency
		withVAT bool
		want    Price
	}{
		{"standard rub with vat", standard, RUB, true, Price{Single: decimal.NewFromInt(150)}},
		{"standard rub without vat", standard, RUB, false, Price{Single: decimal.NewFromInt(125)}},
		{"standard export", standard, USD, true, Price{Single: decimal.RequireFromString("2.1")}},
		{"standard export missing is zero", standard, KZT, false, Price{}},
		{"bakery rub", bakery, RUB, true, Price{PerUnit: decimal.NewFromInt(85), PerBox: decimal.NewFromInt(1700)}},
		{"bakery rub ignores vat flag", bakery, RUB, false, Price{PerUnit: decimal.NewFromInt(85), PerBox: decimal.NewFromInt(1700)}},
		{"bakery export", bakery, KZT, false, Price{PerUnit: decimal.NewFromInt(520), PerBox: decimal.NewFromInt(520)}},
		{"bakery export missing is zero", bakery, USD, false, Price{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PriceFor(tt.p, tt.cur, tt.withVAT)
			if !got.Single.Equal(tt.want.Single) || !got.PerUnit.Equal(tt.want.PerUnit) || !got.PerBox.Equal(tt.want.PerBox) {
				t.Errorf("PriceFor() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		in      string
		want    Currency
		wantErr bool
	}{
		{"RUB", RUB, false},
		{"usd", USD, false},
		{" kzt ", KZT, false},
		{"EUR", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseCurrency(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCurrency(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrUnsupportedCurrency) {
			t.Errorf("ParseCurrency(%q) error = %v, want ErrUnsupportedCurrency", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseCurrency(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDefaultCurrency(t *testing.T) {
	if got := DefaultCurrency(LangEN); got != USD {
		t.Errorf("DefaultCurrency(en) = %s, want USD", got)
	}
	if got := DefaultCurrency(LangRU); got != RUB {
		t.Errorf("DefaultCurrency(ru) = %s, want RUB", got)
	}
}

func TestCurrencyName(t *testing.T) {
	if got := USD.Name(LangEN); got != "US Dollar ($)" {
		t.Errorf("USD.Name(en) = %q", got)
	}
	if got := RUB.Name(LangRU); got != "Рубль (₽)" {
		t.Errorf("RUB.Name(ru) = %q", got)
	}
}

func TestExportPrices_MarshalJSON(t *testing.T) {
	e := ExportPrices{USD: decimal.RequireFromString("15.5")}
	b, err := e.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if got, want := string(b), `{"USD":15.5}`; got != want {
		t.Errorf("MarshalJSON() = %s, want %s", got, want)
	}
}
