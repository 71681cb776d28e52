package layouts

import "github.com/kazandelikates/catalog/internal/core"

func init() {
	registerStandard()
}

// Standard sheets (frozen and refrigerated goods):
//
//	0 name | 1 weight | 2 price incl. VAT | 3 price excl. VAT | 4 shelf life |
//	5 storage | 6 HS code | 7..12 USD KZT UZS KGS BYN AZN
func registerStandard() {
	core.RegisterLayout(core.Layout{
		Key:            core.LayoutStandard,
		Variant:        core.VariantStandard,
		MinColumns:     3,
		HeaderNames:    []string{"Наименование", "Номенклатура"},
		NoisePrefixes:  []string{"ООО"},
		WeightCol:      1,
		QtyPerBoxCol:   -1,
		PrimaryCol:     2,
		SecondaryCol:   3,
		BoxExclVATCol:  -1,
		ShelfLifeCol:   4,
		StorageCol:     5,
		HSCodeCol:      6,
		ExportPriceCol: 7,
	})
}
