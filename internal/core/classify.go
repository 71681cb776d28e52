package core

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Constant product attributes.
const (
	Brand         = "Казанские Деликатесы"
	Certification = "Halal"
	OfferURL      = "https://pepperoni.tatar"
	Availability  = "https://schema.org/InStock"
	DeliveryTerms = "EXW Kazan Russia"
)

// Classify is one step of the per-sheet fold. It decides whether row is
// noise, a category label or a product, and returns the updated state.
//
// Rows are checked in order: name, shape, prices. A row whose prices are all
// zero is a category label when its second cell is empty and noise otherwise.
// Only product rows advance the sequence.
func Classify(state ParseState, row Row, sheet Sheet, layout Layout) (ParseState, Classification) {
	name := cell(row, 0)
	if !validName(name, layout) {
		return state, Classification{Kind: KindNoise}
	}

	// Short rows carry no price columns; only a bare label survives.
	if len(row) < layout.MinColumns {
		if bareLabel(row) {
			state.Category = name
			return state, Classification{Kind: KindCategory, Label: name}
		}
		return state, Classification{Kind: KindNoise}
	}

	primary := ToNumber(cell(row, layout.PrimaryCol))
	secondary := ToNumber(cell(row, layout.SecondaryCol))

	if primary.IsZero() && secondary.IsZero() {
		if cell(row, 1) == "" {
			state.Category = name
			return state, Classification{Kind: KindCategory, Label: name}
		}
		return state, Classification{Kind: KindNoise}
	}

	state.Sequence++
	p := normalize(row, sheet, layout, state, primary, secondary)
	return state, Classification{Kind: KindProduct, Product: p}
}

func validName(name string, layout Layout) bool {
	if name == "" || slices.Contains(layout.HeaderNames, name) {
		return false
	}
	for _, prefix := range layout.NoisePrefixes {
		if strings.HasPrefix(name, prefix) {
			return false
		}
	}
	return true
}

// bareLabel reports whether every cell after the first is empty.
func bareLabel(row Row) bool {
	for _, c := range row[1:] {
		if c != "" {
			return false
		}
	}
	return true
}

func normalize(row Row, sheet Sheet, layout Layout, state ParseState, primary, secondary decimal.Decimal) Product {
	category := state.Category
	if category == "" {
		category = sheet.Section
	}

	weight := cell(row, layout.WeightCol)
	if weight != "" && layout.WeightSuffix != "" {
		weight += layout.WeightSuffix
	}

	name := cell(row, 0)
	p := Product{
		Name:          name,
		SKU:           FormatSKU(state.Sequence),
		Section:       sheet.Section,
		Category:      category,
		Weight:        weight,
		QtyPerBox:     cell(row, layout.QtyPerBoxCol),
		Brand:         Brand,
		Certification: Certification,
		MeatType:      DetectMeatType(name),
		ShelfLife:     cell(row, layout.ShelfLifeCol),
		Storage:       cell(row, layout.StorageCol),
		HSCode:        cell(row, layout.HSCodeCol),
		Offers: Offers{
			URL:           OfferURL,
			PriceCurrency: string(RUB),
			Availability:  Availability,
			ExportPrices:  exportPrices(row, layout.ExportPriceCol),
			DeliveryTerms: DeliveryTerms,
		},
	}

	switch layout.Variant {
	case VariantBakery:
		p.Offers.PricePerUnit = FormatPrice(primary)
		p.Offers.PricePerBox = FormatPrice(secondary)
		p.Offers.PricePerBoxExclVAT = FormatPrice(ToNumber(cell(row, layout.BoxExclVATCol)))
	default:
		p.Offers.Price = FormatPrice(primary)
		p.Offers.PriceExclVAT = FormatPrice(secondary)
	}

	return p
}

// exportPrices reads the export currency columns. Empty and zero cells are
// both treated as not configured.
func exportPrices(row Row, start int) ExportPrices {
	prices := make(ExportPrices)
	if start < 0 {
		return prices
	}
	for i, cur := range ExportCurrencies {
		v := ToNumber(cell(row, start+i))
		if !v.IsZero() {
			prices[cur] = v
		}
	}
	return prices
}

// FormatSKU renders a sequence number as a catalog SKU.
func FormatSKU(seq int) string {
	return fmt.Sprintf("KD-%03d", seq)
}

var meatKeywords = []struct {
	substr string
	meat   string
}{
	{"конин", "конина"},
	{"казылык", "конина"},
	{"индейк", "индейка"},
	{"баран", "баранина"},
	{"говяд", "говядина"},
	{"говяж", "говядина"},
	{"кур", "курица"},
	{"цыпл", "курица"},
}

// DetectMeatType derives the meat type from a product name.
// Returns "" when no keyword matches.
func DetectMeatType(name string) string {
	lower := strings.ToLower(name)
	for _, kw := range meatKeywords {
		if strings.Contains(lower, kw.substr) {
			return kw.meat
		}
	}
	return ""
}
