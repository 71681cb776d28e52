// Package pages renders the static product detail pages served under
// /products/{sku} and /en/products/{sku}.
package pages

import "github.com/kazandelikates/catalog/internal/core"

type labels struct {
	Lang         string
	Locale       string // number formatting locale
	Brand        string
	TitleSuffix  string
	Description  string
	Back         string
	BackHref     string
	Catalog      string
	Pepperoni    string
	About        string
	Delivery     string
	FAQ          string
	SwitchLabel  string
	SwitchPrefix string
	NavPrefix    string
	InclVAT      string
	ExclVAT      string
	PerPiece     string
	InStock      string
	Category     string
	Weight       string
	WeightUnit   string
	PriceExclVAT string
	ShelfLife    string
	Storage      string
	HSCode       string
	Cert         string
	Maker        string
	Order        string
	OrderDesc    string
	Contact      string
	OrderSubject string
	ExportTitle  string
	PriceBox     string
	Pieces       string
}

var labelsEN = labels{
	Lang:         "en",
	Locale:       "en-US",
	Brand:        "Kazan Delicacies",
	TitleSuffix:  " — Kazan Delicacies | Halal",
	Description:  "Halal products by Kazan Delicacies.",
	Back:         "← Back to catalog",
	BackHref:     "/en/",
	Catalog:      "Catalog",
	Pepperoni:    "Pepperoni",
	About:        "About",
	Delivery:     "Delivery",
	FAQ:          "FAQ",
	SwitchLabel:  "🇷🇺 Русский",
	SwitchPrefix: "/products/",
	NavPrefix:    "/en/",
	InclVAT:      "incl. VAT",
	ExclVAT:      "excl. VAT",
	PerPiece:     "/pc",
	InStock:      "✓ In stock",
	Category:     "Category",
	Weight:       "Unit weight",
	WeightUnit:   "kg",
	PriceExclVAT: "Price excl. VAT",
	ShelfLife:    "Shelf life",
	Storage:      "Storage",
	HSCode:       "HS Code",
	Cert:         "Certification",
	Maker:        "Brand",
	Order:        "Order",
	OrderDesc:    "Wholesale, export, Private Label available",
	Contact:      "📧 Email",
	OrderSubject: "Order",
	ExportTitle:  "Export Prices",
	PriceBox:     "Price per box",
	Pieces:       "pcs",
}

var labelsRU = labels{
	Lang:         "ru",
	Locale:       "ru-RU",
	Brand:        "Казанские Деликатесы",
	TitleSuffix:  " — Казанские Деликатесы | Халяль",
	Description:  "Халяль продукция от Казанских Деликатесов.",
	Back:         "← Каталог",
	BackHref:     "/",
	Catalog:      "Каталог",
	Pepperoni:    "Пепперони",
	About:        "О компании",
	Delivery:     "Доставка",
	FAQ:          "FAQ",
	SwitchLabel:  "🇬🇧 English",
	SwitchPrefix: "/en/products/",
	NavPrefix:    "/",
	InclVAT:      "с НДС",
	ExclVAT:      "без НДС",
	PerPiece:     "/шт",
	InStock:      "✓ В наличии",
	Category:     "Категория",
	Weight:       "Вес расчёта",
	PriceExclVAT: "Цена без НДС",
	ShelfLife:    "Срок годности",
	Storage:      "Хранение",
	HSCode:       "ТН ВЭД",
	Cert:         "Сертификация",
	Maker:        "Производитель",
	Order:        "Заказ",
	OrderDesc:    "Оптом, экспорт, Private Label",
	Contact:      "📧 Написать",
	OrderSubject: "Заказ",
	ExportTitle:  "Экспортные цены",
	PriceBox:     "Цена за коробку",
	Pieces:       "шт",
}

func labelsFor(lang string) labels {
	if core.NormalizeLang(lang) == core.LangEN {
		return labelsEN
	}
	return labelsRU
}

// currencySymbols are shown next to export prices; others show the code.
var currencySymbols = map[core.Currency]string{
	core.USD: "$",
	core.KZT: "₸",
}

const pageCSS = `*{margin:0;padding:0;box-sizing:border-box}
body{font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,sans-serif;background:#fafafa;color:#1a1a1a;line-height:1.6}
.container{max-width:900px;margin:0 auto;padding:40px 24px}
.badge{display:inline-block;background:#1b7a3d;color:#fff;padding:4px 12px;border-radius:4px;font-size:.85rem;font-weight:600}
.detail-row{display:flex;justify-content:space-between;padding:8px 0;border-bottom:1px solid #eee;font-size:.9rem}
.detail-row dt{color:#767676}.detail-row dd{color:#1a1a1a;font-weight:500}
.cta-box{background:#f0f7f0;border:2px solid #1b7a3d;border-radius:10px;padding:24px;margin-top:24px}
.cta-box a{display:inline-block;padding:10px 24px;border-radius:8px;text-decoration:none;font-weight:600;font-size:.9rem;margin:4px 6px 4px 0}
footer{text-align:center;color:#555;font-size:.85rem;padding-top:24px;margin-top:32px}
footer a{color:#444;text-decoration:none}`
