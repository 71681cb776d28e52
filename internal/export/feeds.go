package export

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kazandelikates/catalog/internal/core"
)

func writeXML(w io.Writer, v any) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// DisplayPrice is the RUB price shown in feeds: the VAT-inclusive single
// price, or the per-unit price for bakery products. It falls back to the
// excl. VAT or per-box price when the preferred one is absent.
func DisplayPrice(p core.Product) decimal.Decimal {
	incl := core.PriceFor(p, core.RUB, true)
	if p.IsBakery() {
		if !incl.PerUnit.IsZero() {
			return incl.PerUnit
		}
		return incl.PerBox
	}
	if !incl.Single.IsZero() {
		return incl.Single
	}
	return core.PriceFor(p, core.RUB, false).Single
}

// --- sitemap ---

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

var sitemapPages = []struct {
	path, freq, priority string
	dated                bool
}{
	{"/", "weekly", "1.0", true},
	{"/api/products", "daily", "0.9", false},
	{"/products.json", "daily", "0.8", true},
	{"/openapi.yaml", "monthly", "0.7", true},
	{"/llms.txt", "daily", "0.6", true},
	{"/llms-full.txt", "daily", "0.6", true},
	{"/about", "monthly", "0.7", true},
	{"/faq", "monthly", "0.7", true},
	{"/delivery", "monthly", "0.6", true},
	{"/yml.xml", "daily", "0.5", true},
	{"/pepperoni", "monthly", "0.8", true},
	{"/en/", "weekly", "0.9", true},
	{"/en/pepperoni", "monthly", "0.8", true},
	{"/en/about", "monthly", "0.7", true},
	{"/en/faq", "monthly", "0.7", true},
	{"/en/delivery", "monthly", "0.6", true},
}

// WriteSitemap writes the static pages followed by the RU and EN detail
// page of every product.
func WriteSitemap(w io.Writer, site Site, products []core.Product, now time.Time) error {
	today := now.UTC().Format(time.DateOnly)
	set := urlset{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9"}

	for _, pg := range sitemapPages {
		u := sitemapURL{Loc: site.URL(pg.path), ChangeFreq: pg.freq, Priority: pg.priority}
		if pg.dated {
			u.LastMod = today
		}
		set.URLs = append(set.URLs, u)
	}
	for _, p := range products {
		for _, lang := range []string{core.LangRU, core.LangEN} {
			set.URLs = append(set.URLs, sitemapURL{
				Loc:        site.ProductURL(p.SKU, lang),
				LastMod:    today,
				ChangeFreq: "weekly",
				Priority:   "0.6",
			})
		}
	}
	return writeXML(w, set)
}

// --- Yandex YML ---

type ymlCatalog struct {
	XMLName xml.Name `xml:"yml_catalog"`
	Date    string   `xml:"date,attr"`
	Shop    ymlShop  `xml:"shop"`
}

type ymlShop struct {
	Name       string        `xml:"name"`
	Company    string        `xml:"company"`
	URL        string        `xml:"url"`
	Currencies []ymlCurrency `xml:"currencies>currency"`
	Categories []ymlCategory `xml:"categories>category"`
	Offers     []ymlOffer    `xml:"offers>offer"`
}

type ymlCurrency struct {
	ID   string `xml:"id,attr"`
	Rate string `xml:"rate,attr"`
}

type ymlCategory struct {
	ID       int    `xml:"id,attr"`
	ParentID int    `xml:"parentId,attr,omitempty"`
	Name     string `xml:",chardata"`
}

type ymlOffer struct {
	ID          string     `xml:"id,attr"`
	Available   bool       `xml:"available,attr"`
	URL         string     `xml:"url"`
	Price       string     `xml:"price"`
	CurrencyID  string     `xml:"currencyId"`
	CategoryID  int        `xml:"categoryId"`
	Name        string     `xml:"name"`
	Vendor      string     `xml:"vendor"`
	VendorCode  string     `xml:"vendorCode"`
	Description string     `xml:"description,omitempty"`
	Params      []ymlParam `xml:"param"`
}

type ymlParam struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

// WriteYML writes a Yandex Market catalog. Sections become top-level
// categories and sheet categories their children.
func WriteYML(w io.Writer, site Site, products []core.Product, now time.Time) error {
	shop := ymlShop{
		Name:       CompanyName,
		Company:    "ООО «" + CompanyName + "»",
		URL:        site.SiteURL,
		Currencies: []ymlCurrency{{ID: "RUR", Rate: "1"}},
	}

	ids := map[string]int{}
	categoryID := func(name string, parent int) int {
		key := fmt.Sprintf("%d/%s", parent, name)
		if id, ok := ids[key]; ok {
			return id
		}
		id := len(ids) + 1
		ids[key] = id
		shop.Categories = append(shop.Categories, ymlCategory{ID: id, ParentID: parent, Name: name})
		return id
	}

	for _, p := range products {
		section := categoryID(p.Section, 0)
		category := section
		if p.Category != p.Section {
			category = categoryID(p.Category, section)
		}

		offer := ymlOffer{
			ID:          p.SKU,
			Available:   true,
			URL:         site.ProductURL(p.SKU, core.LangRU),
			Price:       DisplayPrice(p).StringFixed(2),
			CurrencyID:  "RUR",
			CategoryID:  category,
			Name:        p.Name,
			Vendor:      p.Brand,
			VendorCode:  p.SKU,
			Description: describe(p),
		}
		for _, kv := range [][2]string{
			{"Вес", p.Weight},
			{"Кол-во в коробке", p.QtyPerBox},
			{"Срок годности", p.ShelfLife},
			{"Хранение", p.Storage},
			{"ТН ВЭД", p.HSCode},
			{"Тип мяса", p.MeatType},
			{"Сертификация", p.Certification},
		} {
			if kv[1] != "" {
				offer.Params = append(offer.Params, ymlParam{Name: kv[0], Value: kv[1]})
			}
		}
		shop.Offers = append(shop.Offers, offer)
	}

	return writeXML(w, ymlCatalog{Date: now.UTC().Format("2006-01-02 15:04"), Shop: shop})
}

func describe(p core.Product) string {
	parts := []string{p.Category}
	for _, s := range []string{p.Weight, p.ShelfLife, p.Storage} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// --- RSS ---

type rss struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	XMLNSG  string     `xml:"xmlns:g,attr,omitempty"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language,omitempty"`
	LastBuildDate string    `xml:"lastBuildDate,omitempty"`
	Items         []rssItem `xml:"item"`
}

type rssGUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description"`
	Category    string   `xml:"category,omitempty"`
	GUID        *rssGUID `xml:"guid,omitempty"`

	// Google Merchant attributes
	ID               string `xml:"g:id,omitempty"`
	Price            string `xml:"g:price,omitempty"`
	Availability     string `xml:"g:availability,omitempty"`
	Condition        string `xml:"g:condition,omitempty"`
	Brand            string `xml:"g:brand,omitempty"`
	ProductType      string `xml:"g:product_type,omitempty"`
	IdentifierExists string `xml:"g:identifier_exists,omitempty"`
	ShippingWeight   string `xml:"g:shipping_weight,omitempty"`
}

// WriteRSS writes an RSS 2.0 channel with one item per product.
func WriteRSS(w io.Writer, site Site, products []core.Product, now time.Time) error {
	ch := rssChannel{
		Title:         CompanyName + " — каталог халяль продукции",
		Link:          site.URL("/"),
		Description:   "Актуальный каталог и цены " + CompanyName,
		Language:      "ru",
		LastBuildDate: now.UTC().Format(time.RFC1123Z),
	}
	for _, p := range products {
		ch.Items = append(ch.Items, rssItem{
			Title:       p.Name,
			Link:        site.ProductURL(p.SKU, core.LangRU),
			Description: fmt.Sprintf("%s — %s ₽", describe(p), DisplayPrice(p).StringFixed(2)),
			Category:    p.Category,
			GUID:        &rssGUID{Value: p.SKU},
		})
	}
	return writeXML(w, rss{Version: "2.0", Channel: ch})
}

// WriteGoogleFeed writes a Google Merchant Center product feed.
func WriteGoogleFeed(w io.Writer, site Site, products []core.Product, now time.Time) error {
	ch := rssChannel{
		Title:         CompanyName,
		Link:          site.SiteURL,
		Description:   "Halal product feed",
		LastBuildDate: now.UTC().Format(time.RFC1123Z),
	}
	for _, p := range products {
		item := rssItem{
			Title:            p.Name,
			Link:             site.ProductURL(p.SKU, core.LangRU),
			ID:               p.SKU,
			Description:      describe(p),
			Price:            DisplayPrice(p).StringFixed(2) + " RUB",
			Availability:     "in_stock",
			Condition:        "new",
			Brand:            p.Brand,
			ProductType:      p.Section + " > " + p.Category,
			IdentifierExists: "no",
			ShippingWeight:   gramWeight(p.Weight),
		}
		ch.Items = append(ch.Items, item)
	}
	return writeXML(w, rss{Version: "2.0", XMLNSG: "http://base.google.com/ns/1.0", Channel: ch})
}

// gramWeight returns "<n> g" for weights given in grams or kilograms.
func gramWeight(weight string) string {
	lower := strings.ToLower(weight)
	n := core.ToNumber(lower)
	if n.IsZero() {
		return ""
	}
	if strings.Contains(lower, "кг") || strings.Contains(lower, "kg") {
		n = n.Mul(decimal.NewFromInt(1000))
	}
	return n.String() + " g"
}
