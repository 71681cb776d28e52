package core

import (
	"errors"
	"fmt"
	"strings"
)

// Layout keys registered by the layouts package.
const (
	LayoutStandard = "standard"
	LayoutBakery   = "bakery"
)

// DefaultSheets are the published source tabs. Order determines SKU
// numbering and must not change.
var DefaultSheets = []Sheet{
	{GID: "1087942289", Section: "Заморозка", Layout: LayoutStandard},
	{GID: "1589357549", Section: "Охлаждённая продукция", Layout: LayoutStandard},
	{GID: "26993021", Section: "Выпечка", Layout: LayoutBakery},
}

// Sections returns the section labels of sheets in order.
func Sections(sheets []Sheet) []string {
	out := make([]string, len(sheets))
	for i, s := range sheets {
		out[i] = s.Section
	}
	return out
}

// ErrUnknownLayout is returned when a sheet references an unregistered layout.
var ErrUnknownLayout = errors.New("unknown layout")

// SheetResult summarizes one sheet of an assembly run.
type SheetResult struct {
	Sheet      Sheet
	Rows       int
	Products   int
	Categories int
	Noise      int
}

// Assemble tokenizes and classifies every sheet in declared order and
// returns the concatenated products. texts[i] is the raw text of sheets[i].
// The SKU sequence continues across sheets; the category resets per sheet.
func Assemble(texts []string, sheets []Sheet) ([]Product, error) {
	products, _, err := AssembleWithStats(texts, sheets)
	return products, err
}

// AssembleWithStats is Assemble plus per-sheet counters.
func AssembleWithStats(texts []string, sheets []Sheet) ([]Product, []SheetResult, error) {
	if len(texts) != len(sheets) {
		return nil, nil, fmt.Errorf("assemble: %d texts for %d sheets", len(texts), len(sheets))
	}

	var (
		products []Product
		results  = make([]SheetResult, 0, len(sheets))
		seq      int
	)

	for i, sheet := range sheets {
		layout, ok := LayoutByKey(sheet.Layout)
		if !ok {
			return nil, nil, fmt.Errorf("sheet %s: %w: %q", sheet.Section, ErrUnknownLayout, sheet.Layout)
		}

		state := ParseState{Sequence: seq}
		res := SheetResult{Sheet: sheet}
		for _, row := range Tokenize(texts[i]) {
			res.Rows++
			var c Classification
			state, c = Classify(state, row, sheet, layout)
			switch c.Kind {
			case KindProduct:
				products = append(products, c.Product)
				res.Products++
			case KindCategory:
				res.Categories++
			default:
				res.Noise++
			}
		}

		seq = state.Sequence
		results = append(results, res)
	}

	return products, results, nil
}

// Filter applies q to products. All filters are case-insensitive and
// combined with AND; an empty filter matches everything.
func Filter(products []Product, q Query) []Product {
	if q.IsZero() {
		return products
	}

	search := strings.ToLower(q.Search)
	section := strings.ToLower(q.Section)
	category := strings.ToLower(q.Category)

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		if section != "" && !strings.Contains(strings.ToLower(p.Section), section) {
			continue
		}
		if category != "" && !strings.Contains(strings.ToLower(p.Category), category) {
			continue
		}
		if q.SKU != "" && !strings.EqualFold(p.SKU, q.SKU) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesSearch(p Product, q string) bool {
	for _, field := range []string{p.Name, p.NameRU, p.Category, p.SKU, p.MeatType} {
		if field != "" && strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// FindBySKU returns the product with the given SKU, case-insensitive.
func FindBySKU(products []Product, sku string) (Product, bool) {
	for _, p := range products {
		if strings.EqualFold(p.SKU, sku) {
			return p, true
		}
	}
	return Product{}, false
}
