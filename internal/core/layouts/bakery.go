package layouts

import "github.com/kazandelikates/catalog/internal/core"

func init() {
	registerBakery()
}

// Bakery sheets price per unit and per box:
//
//	0 name | 1 weight, g | 2 qty per box | 3 price per unit | 4 price per box |
//	5 price per box excl. VAT | 6 shelf life | 7 storage | 8 HS code |
//	9..14 USD KZT UZS KGS BYN AZN
//
// Both price columns must be present, so rows shorter than five cells are
// never products.
func registerBakery() {
	core.RegisterLayout(core.Layout{
		Key:            core.LayoutBakery,
		Variant:        core.VariantBakery,
		MinColumns:     5,
		HeaderNames:    []string{"Наименование"},
		NoisePrefixes:  []string{"ООО"},
		WeightCol:      1,
		WeightSuffix:   " г",
		QtyPerBoxCol:   2,
		PrimaryCol:     3,
		SecondaryCol:   4,
		BoxExclVATCol:  5,
		ShelfLifeCol:   6,
		StorageCol:     7,
		HSCodeCol:      8,
		ExportPriceCol: 9,
	})
}
