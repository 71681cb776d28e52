package core

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Row is one tokenized line of a sheet. Column meaning is positional.
type Row []string

// Variant distinguishes the two price schemas a sheet can carry.
type Variant int

const (
	VariantStandard Variant = iota
	VariantBakery
)

func (v Variant) String() string {
	switch v {
	case VariantBakery:
		return "bakery"
	default:
		return "standard"
	}
}

// Sheet describes one published source tab. Order within a sheet list
// determines SKU numbering.
type Sheet struct {
	GID     string // Published tab id
	Section string // Section label applied to every product of the sheet
	Layout  string // Registered layout key
}

// Layout is a declarative column mapping for one sheet schema.
// Column indices of -1 mean the layout has no such column.
type Layout struct {
	Key            string
	Variant        Variant
	MinColumns     int
	HeaderNames    []string // Name cells that mark a repeated header row
	NoisePrefixes  []string // Name prefixes that mark boilerplate rows
	WeightCol      int
	WeightSuffix   string // Appended to a non-empty weight
	QtyPerBoxCol   int
	PrimaryCol     int // Price incl. VAT (standard) or per unit (bakery)
	SecondaryCol   int // Price excl. VAT (standard) or per box (bakery)
	BoxExclVATCol  int // Bakery only
	ShelfLifeCol   int
	StorageCol     int
	HSCodeCol      int
	ExportPriceCol int // First export currency column, see ExportCurrencies
}

// Product is the canonical catalog entity consumed by every exporter.
type Product struct {
	Name          string `json:"name"`
	NameRU        string `json:"name_ru,omitempty"`
	SKU           string `json:"sku"`
	Section       string `json:"section"`
	Category      string `json:"category"`
	Weight        string `json:"weight"`
	QtyPerBox     string `json:"qtyPerBox,omitempty"`
	Brand         string `json:"brand"`
	Certification string `json:"certification"`
	MeatType      string `json:"meatType,omitempty"`
	Offers        Offers `json:"offers"`
	ShelfLife     string `json:"shelfLife"`
	Storage       string `json:"storage"`
	HSCode        string `json:"hsCode"`
}

// Offers carries domestic prices as 2-decimal strings and export prices
// keyed by currency. Only one variant's price fields are populated.
type Offers struct {
	URL                string       `json:"url"`
	PriceCurrency      string       `json:"priceCurrency"`
	Price              string       `json:"price,omitempty"`
	PriceExclVAT       string       `json:"priceExclVAT,omitempty"`
	PricePerUnit       string       `json:"pricePerUnit,omitempty"`
	PricePerBox        string       `json:"pricePerBox,omitempty"`
	PricePerBoxExclVAT string       `json:"pricePerBoxExclVAT,omitempty"`
	Availability       string       `json:"availability"`
	ExportPrices       ExportPrices `json:"exportPrices"`
	DeliveryTerms      string       `json:"deliveryTerms"`
}

// ExportPrices maps a currency to its configured export price.
// A missing key means no export price is configured.
type ExportPrices map[Currency]decimal.Decimal

// MarshalJSON writes prices as JSON numbers rather than decimal strings.
func (e ExportPrices) MarshalJSON() ([]byte, error) {
	out := make(map[Currency]json.Number, len(e))
	for cur, v := range e {
		out[cur] = json.Number(v.String())
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts numbers or numeric strings.
func (e *ExportPrices) UnmarshalJSON(data []byte) error {
	var raw map[Currency]decimal.Decimal
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*e = raw
	return nil
}

// IsBakery reports whether the product carries per-unit/per-box pricing.
func (p Product) IsBakery() bool {
	return p.Offers.PricePerUnit != ""
}

// ParseState is the accumulator threaded through Classify.
// Category resets per sheet; Sequence is global across sheets.
type ParseState struct {
	Category string
	Sequence int
}

// Kind is the outcome of classifying one row.
type Kind int

const (
	KindNoise Kind = iota
	KindCategory
	KindProduct
)

func (k Kind) String() string {
	switch k {
	case KindCategory:
		return "category"
	case KindProduct:
		return "product"
	default:
		return "noise"
	}
}

// Classification is the result of one fold step.
// Label is set for KindCategory, Product for KindProduct.
type Classification struct {
	Kind    Kind
	Label   string
	Product Product
}

// Query holds optional catalog filters. Empty fields are no-ops.
type Query struct {
	Search   string `json:"search,omitempty"`
	Section  string `json:"section,omitempty"`
	Category string `json:"category,omitempty"`
	SKU      string `json:"sku,omitempty"`
	Lang     string `json:"lang,omitempty"`
}

// IsZero reports whether no filter is set. Lang is not a filter.
func (q Query) IsZero() bool {
	return q.Search == "" && q.Section == "" && q.Category == "" && q.SKU == ""
}
