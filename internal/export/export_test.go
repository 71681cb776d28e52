package export

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"io"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/kazandelikates/catalog/internal/core"
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func sampleProducts() []core.Product {
	return []core.Product{
		{
			Name:          "Казылык",
			SKU:           "KD-001",
			Section:       "Заморозка",
			Category:      "Колбасы",
			Weight:        "300 г",
			Brand:         core.Brand,
			Certification: core.Certification,
			MeatType:      "конина",
			Offers: core.Offers{
				Price:        "450.00",
				PriceExclVAT: "375.00",
				ExportPrices: core.ExportPrices{core.USD: decimal.RequireFromString("5.5")},
			},
			ShelfLife: "180 суток",
			Storage:   "при -18°C",
			HSCode:    "1601",
		},
		{
			Name:          "Эчпочмак",
			SKU:           "KD-002",
			Section:       "Выпечка",
			Category:      "Выпечка",
			Weight:        "150 г",
			QtyPerBox:     "24",
			Brand:         core.Brand,
			Certification: core.Certification,
			Offers: core.Offers{
				PricePerUnit: "85.00",
				PricePerBox:  "2040.00",
			},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatXLSX, false},
		{"csv", FormatCSV, false},
		{"XLSX", FormatXLSX, false},
		{"xls", FormatXLS, false},
		{"excel", FormatXLS, false},
		{"pdf", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if tt.wantErr && !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("ParseFormat(%q) error = %v, want ErrUnsupportedFormat", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseOptions(t *testing.T) {
	tests := []struct {
		name                string
		lang, currency, vat string
		want                Options
		wantErr             bool
	}{
		{"ru defaults", "", "", "", Options{Lang: "ru", Currency: core.RUB, WithVAT: true}, false},
		{"en defaults", "en", "", "", Options{Lang: "en", Currency: core.USD}, false},
		{"rub without vat", "ru", "rub", "false", Options{Lang: "ru", Currency: core.RUB}, false},
		{"export currency ignores vat", "ru", "KZT", "true", Options{Lang: "ru", Currency: core.KZT}, false},
		{"unknown currency", "ru", "EUR", "", Options{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOptions(tt.lang, tt.currency, tt.vat)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOptions() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseOptions() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestOptions_LabelsAndFilename(t *testing.T) {
	tests := []struct {
		opts     Options
		format   Format
		vat      string
		filename string
	}{
		{Options{Lang: "ru", Currency: core.RUB, WithVAT: true}, FormatCSV, "с НДС", "Kazanskie_Delikatesy_RUB_VAT.csv"},
		{Options{Lang: "ru", Currency: core.RUB}, FormatXLSX, "без НДС", "Kazanskie_Delikatesy_RUB_noVAT.xlsx"},
		{Options{Lang: "en", Currency: core.RUB, WithVAT: true}, FormatXLS, "incl. VAT", "Kazan_Delicacies_RUB_VAT.xls"},
		{Options{Lang: "en", Currency: core.USD}, FormatXLSX, "excl. VAT", "Kazan_Delicacies_USD.xlsx"},
	}
	for _, tt := range tests {
		if got := tt.opts.VATLabel(); got != tt.vat {
			t.Errorf("VATLabel(%+v) = %q, want %q", tt.opts, got, tt.vat)
		}
		if got := tt.opts.Filename(tt.format); got != tt.filename {
			t.Errorf("Filename(%+v) = %q, want %q", tt.opts, got, tt.filename)
		}
	}
}

func TestHeaderAndCellsAlign(t *testing.T) {
	for _, lang := range []string{core.LangRU, core.LangEN} {
		o := Options{Lang: lang, Currency: core.RUB, WithVAT: true}
		want := 14
		if lang == core.LangEN {
			want = 15
		}
		for _, abbreviated := range []bool{false, true} {
			if got := len(Header(o, abbreviated)); got != want {
				t.Errorf("len(Header(%s, %v)) = %d, want %d", lang, abbreviated, got, want)
			}
		}
		for _, p := range sampleProducts() {
			if got := len(Cells(p, o)); got != want {
				t.Errorf("len(Cells(%s, %s)) = %d, want %d", p.SKU, lang, got, want)
			}
		}
	}
}

func TestWriteCSV_Russian(t *testing.T) {
	var buf bytes.Buffer
	o := Options{Lang: core.LangRU, Currency: core.RUB, WithVAT: true}
	if err := WriteCSV(&buf, sampleProducts(), o); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "\ufeffАртикул;Название;") {
		t.Errorf("missing BOM or header: %q", out[:40])
	}
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if !strings.Contains(lines[0], "Цена Рубль (₽) (с НДС)") {
		t.Errorf("header = %q", lines[0])
	}
	if want := "KD-001;Казылык;Заморозка;Колбасы;300 г;450.00;;;;180 суток;при -18°C;1601;конина;Halal"; lines[1] != want {
		t.Errorf("standard row = %q, want %q", lines[1], want)
	}
	if want := "KD-002;Эчпочмак;Выпечка;Выпечка;150 г;;85.00;2040.00;24;;;;;Halal"; lines[2] != want {
		t.Errorf("bakery row = %q, want %q", lines[2], want)
	}
}

func TestWriteCSV_EnglishExportCurrency(t *testing.T) {
	products := core.Localize(sampleProducts(), core.LangEN)

	var buf bytes.Buffer
	o := Options{Lang: core.LangEN, Currency: core.USD}
	if err := WriteCSV(&buf, products, o); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if !strings.Contains(lines[0], "Price USD (excl. VAT)") {
		t.Errorf("header = %q", lines[0])
	}
	fields := strings.Split(lines[1], ";")
	if fields[2] != "Казылык" || fields[6] != "5.50" {
		t.Errorf("standard row = %q", lines[1])
	}
	fields = strings.Split(lines[2], ";")
	if fields[7] != "0.00" || fields[8] != "0.00" {
		t.Errorf("bakery without USD price should quote zero: %q", lines[2])
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	o := Options{Lang: core.LangEN, Currency: core.USD}
	if err := WriteXLSX(&buf, core.Localize(sampleProducts(), core.LangEN), o, testNow); err != nil {
		t.Fatalf("WriteXLSX() error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	sheet := SheetName(o)
	checks := map[string]string{
		"A1": Title(o),
		"B2": "Date: 2026-03-14",
		"A4": "SKU",
		"C4": "Original (RU)",
		"A5": "KD-001",
		"C5": "Казылык",
		"A6": "KD-002",
	}
	for cell, want := range checks {
		got, err := f.GetCellValue(sheet, cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s) error = %v", cell, err)
		}
		if got != want {
			t.Errorf("%s = %q, want %q", cell, got, want)
		}
	}

	raw, err := f.GetCellValue(sheet, "G5", excelize.Options{RawCellValue: true})
	if err != nil {
		t.Fatal(err)
	}
	if v, err := strconv.ParseFloat(raw, 64); err != nil || v != 5.5 {
		t.Errorf("G5 = %q, want numeric 5.5", raw)
	}
	if got, _ := f.GetCellValue(sheet, "G6"); got != "" {
		t.Errorf("G6 = %q, want empty for bakery product", got)
	}
}

func TestWriteSpreadsheetML(t *testing.T) {
	var buf bytes.Buffer
	o := Options{Lang: core.LangRU, Currency: core.RUB}
	if err := WriteSpreadsheetML(&buf, sampleProducts(), o, testNow); err != nil {
		t.Fatalf("WriteSpreadsheetML() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		`<?mso-application progid="Excel.Sheet"?>`,
		`<Worksheet ss:Name="Каталог Казанские Деликатесы">`,
		`<Data ss:Type="String">Валюта: Рубль (₽) (без НДС)</Data>`,
		`<Data ss:Type="String">Дата: 2026-03-14</Data>`,
		`<Cell ss:StyleID="header"><Data ss:Type="String">Цена/шт</Data></Cell>`,
		`<Cell ss:StyleID="num"><Data ss:Type="Number">375.00</Data></Cell>`,
		`<Cell ss:StyleID="num"><Data ss:Type="Number">2040.00</Data></Cell>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s", want)
		}
	}

	dec := xml.NewDecoder(strings.NewReader(out))
	for {
		if _, err := dec.Token(); err != nil {
			if err != io.EOF {
				t.Fatalf("output is not well-formed XML: %v", err)
			}
			break
		}
	}
}

func TestWritePriceList_UnknownFormat(t *testing.T) {
	err := WritePriceList(&bytes.Buffer{}, Format("pdf"), nil, Options{}, testNow)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("WritePriceList() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestNewEnvelope(t *testing.T) {
	env := NewEnvelope(DefaultSite, nil, core.Query{Section: "Выпечка"}, []string{"Выпечка"}, testNow)

	data, err := json.Marshal(env)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	for _, want := range []string{
		`"@type":"DataCatalog"`,
		`"url":"https://api.pepperoni.tatar/api/products"`,
		`"dateModified":"2026-03-14T09:30:00.000Z"`,
		`"filters":{"search":null,"section":"Выпечка","category":null,"sku":null}`,
		`"products":[]`,
		`"totalProducts":0`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("envelope missing %s in %s", want, out)
		}
	}
}

func TestWriteSitemap(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSitemap(&buf, DefaultSite, sampleProducts(), testNow); err != nil {
		t.Fatal(err)
	}

	var set urlset
	if err := xml.Unmarshal(buf.Bytes(), &set); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if want := len(sitemapPages) + 4; len(set.URLs) != want {
		t.Errorf("len(URLs) = %d, want %d", len(set.URLs), want)
	}
	last := set.URLs[len(set.URLs)-1]
	if last.Loc != "https://api.pepperoni.tatar/en/products/kd-002" {
		t.Errorf("last loc = %q", last.Loc)
	}
	if set.URLs[1].LastMod != "" {
		t.Errorf("live endpoint should have no lastmod, got %q", set.URLs[1].LastMod)
	}
}

func TestWriteYML(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteYML(&buf, DefaultSite, sampleProducts(), testNow); err != nil {
		t.Fatal(err)
	}

	var cat ymlCatalog
	if err := xml.Unmarshal(buf.Bytes(), &cat); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if cat.Date != "2026-03-14 09:30" {
		t.Errorf("date = %q", cat.Date)
	}
	// Заморозка, Заморозка/Колбасы, Выпечка (category equals section)
	if len(cat.Shop.Categories) != 3 {
		t.Errorf("len(Categories) = %d, want 3", len(cat.Shop.Categories))
	}
	if len(cat.Shop.Offers) != 2 {
		t.Fatalf("len(Offers) = %d, want 2", len(cat.Shop.Offers))
	}
	if got := cat.Shop.Offers[1].Price; got != "85.00" {
		t.Errorf("bakery offer price = %q, want per-unit 85.00", got)
	}
	if got := cat.Shop.Offers[0].CategoryID; got != 2 {
		t.Errorf("offer categoryId = %d, want 2", got)
	}
}

func TestWriteGoogleFeed(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteGoogleFeed(&buf, DefaultSite, sampleProducts(), testNow); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		`xmlns:g="http://base.google.com/ns/1.0"`,
		`<g:id>KD-001</g:id>`,
		`<g:price>450.00 RUB</g:price>`,
		`<g:shipping_weight>300 g</g:shipping_weight>`,
		`<g:product_type>Выпечка &gt; Выпечка</g:product_type>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("feed missing %s", want)
		}
	}
}

func TestWriteRSS(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRSS(&buf, DefaultSite, sampleProducts(), testNow); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, `<guid isPermaLink="false">KD-002</guid>`) {
		t.Errorf("rss missing guid: %s", out)
	}
	if strings.Contains(out, "g:id") {
		t.Error("plain RSS should not carry merchant attributes")
	}
}

func TestWriteLLMSFull(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteLLMSFull(&buf, DefaultSite, sampleProducts(), testNow); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"Последняя синхронизация: 2026-03-14. Всего товаров: 2.",
		"### Заморозка (1 товаров)",
		"#### Колбасы",
		"| Казылык | KD-001 | 300 г | 450.00 | 180 суток | при -18°C |",
		"| Эчпочмак | KD-002 | 150 г | 85.00 | 2040.00 |  |",
		"Все цены доступны в 7 валютах: RUB, USD, KZT, UZS, KGS, BYN, AZN.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("llms-full missing %q", want)
		}
	}
}

func TestGramWeight(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"300 г", "300 g"},
		{"1,5 кг", "1500 g"},
		{"", ""},
		{"шт", ""},
	}
	for _, tt := range tests {
		if got := gramWeight(tt.in); got != tt.want {
			t.Errorf("gramWeight(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
