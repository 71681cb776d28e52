package export

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kazandelikates/catalog/internal/core"
)

// Cell is one value of a price list row. Numeric cells hold a 2-decimal
// price; an empty numeric cell means the column does not apply.
type Cell struct {
	Value   string
	Numeric bool
	Number  decimal.Decimal
}

func text(s string) Cell { return Cell{Value: s} }

func number(d decimal.Decimal) Cell {
	return Cell{Value: d.StringFixed(2), Numeric: true, Number: d}
}

var blankNumber = Cell{Numeric: true}

// Header returns the column titles. Spreadsheet headers are abbreviated.
func Header(o Options, abbreviated bool) []string {
	price := fmt.Sprintf("Цена %s (%s)", o.Currency.Name(o.Lang), o.VATLabel())
	if o.english() {
		price = fmt.Sprintf("Price %s (%s)", o.Currency, o.VATLabel())
	}

	switch {
	case o.english() && abbreviated:
		return []string{"SKU", "Name", "Original (RU)", "Section", "Category", "Weight", price,
			"Price/Unit", "Price/Box", "Qty/Box", "Shelf Life", "Storage", "HS Code", "Meat Type", "Cert"}
	case o.english():
		return []string{"SKU", "Name", "Original Name (RU)", "Section", "Category", "Weight", price,
			"Price per Unit", "Price per Box", "Qty/Box", "Shelf Life", "Storage", "HS Code", "Meat Type", "Certification"}
	case abbreviated:
		return []string{"Артикул", "Название", "Раздел", "Категория", "Вес", price,
			"Цена/шт", "Цена/кор", "Кол-во/кор", "Годность", "Хранение", "ТН ВЭД", "Мясо", "Серт."}
	default:
		return []string{"Артикул", "Название", "Раздел", "Категория", "Вес", price,
			"Цена за шт", "Цена за короб", "Кол-во/кор", "Срок годности", "Хранение", "ТН ВЭД", "Тип мяса", "Сертификация"}
	}
}

// Cells returns the row for p, aligned with Header. Bakery products fill
// the per-unit and per-box columns; others fill the single price column.
func Cells(p core.Product, o Options) []Cell {
	price := core.PriceFor(p, o.Currency, o.WithVAT)

	single, perUnit, perBox := blankNumber, blankNumber, blankNumber
	if p.IsBakery() {
		perUnit, perBox = number(price.PerUnit), number(price.PerBox)
	} else {
		single = number(price.Single)
	}

	cert := p.Certification
	if cert == "" {
		cert = core.Certification
	}

	row := []Cell{text(p.SKU), text(p.Name)}
	if o.english() {
		original := p.NameRU
		if original == "" {
			original = p.Name
		}
		row = append(row, text(original))
	}
	return append(row,
		text(p.Section),
		text(p.Category),
		text(p.Weight),
		single,
		perUnit,
		perBox,
		text(p.QtyPerBox),
		text(p.ShelfLife),
		text(p.Storage),
		text(p.HSCode),
		text(p.MeatType),
		text(cert),
	)
}

// Title is the heading line of spreadsheet price lists.
func Title(o Options) string {
	if o.english() {
		return "Kazan Delicacies — Halal Product Catalog"
	}
	return "Казанские Деликатесы — Каталог халяль продукции"
}

// SheetName is the worksheet name of spreadsheet price lists.
func SheetName(o Options) string {
	if o.english() {
		return "Kazan Delicacies Catalog"
	}
	return "Каталог Казанские Деликатесы"
}

func currencyLine(o Options) string {
	label := "Валюта"
	if o.english() {
		label = "Currency"
	}
	return fmt.Sprintf("%s: %s (%s)", label, o.Currency.Name(o.Lang), o.VATLabel())
}

func dateLine(o Options, date string) string {
	if o.english() {
		return "Date: " + date
	}
	return "Дата: " + date
}
