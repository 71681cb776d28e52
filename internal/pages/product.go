package pages

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/a-h/templ"

	"github.com/kazandelikates/catalog/internal/core"
	"github.com/kazandelikates/catalog/internal/export"
)

// ProductPage renders the detail page of p in lang. p must be the Russian
// source product; English pages are localized here.
func ProductPage(site export.Site, p core.Product, lang string) templ.Component {
	view := newProductView(site, p, core.NormalizeLang(lang))
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		view.render(h)
		return h.err
	})
}

type productView struct {
	site     export.Site
	l        labels
	source   core.Product
	p        core.Product // localized
	skuLower string
	bakery   bool
	priceRUB string
	priceUSD string
	noVAT    string
}

func newProductView(site export.Site, p core.Product, lang string) productView {
	v := productView{
		site:     site,
		l:        labelsFor(lang),
		source:   p,
		p:        core.Localize([]core.Product{p}, lang)[0],
		skuLower: strings.ToLower(p.SKU),
		bakery:   p.IsBakery(),
	}

	v.priceRUB = p.Offers.Price
	if v.bakery {
		v.priceRUB = p.Offers.PricePerUnit
	}
	if usd, ok := p.Offers.ExportPrices[core.USD]; ok {
		v.priceUSD = usd.String()
	}
	v.noVAT = p.Offers.PriceExclVAT
	if v.noVAT == "" {
		v.noVAT = p.Offers.PricePerBoxExclVAT
	}
	return v
}

type jsonLDProduct struct {
	Context string      `json:"@context"`
	Type    string      `json:"@type"`
	Name    string      `json:"name"`
	SKU     string      `json:"sku"`
	Brand   jsonLDBrand `json:"brand"`
	Offers  jsonLDOffer `json:"offers"`
}

type jsonLDBrand struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

type jsonLDOffer struct {
	Type          string `json:"@type"`
	PriceCurrency string `json:"priceCurrency"`
	Price         string `json:"price"`
	Availability  string `json:"availability"`
}

func (v productView) jsonLD() string {
	offer := jsonLDOffer{Type: "Offer", PriceCurrency: "RUB", Price: v.priceRUB, Availability: core.Availability}
	if v.priceUSD != "" {
		offer.PriceCurrency, offer.Price = "USD", v.priceUSD
	}
	data, _ := json.Marshal(jsonLDProduct{
		Context: "https://schema.org",
		Type:    "Product",
		Name:    v.p.Name,
		SKU:     v.p.SKU,
		Brand:   jsonLDBrand{Type: "Brand", Name: v.l.Brand},
		Offers:  offer,
	})
	return string(data)
}

func (v productView) render(h *htmlWriter) {
	l, p := v.l, v.p
	canonical := v.site.ProductURL(p.SKU, l.Lang)

	h.raw("<!DOCTYPE html>\n<html lang=\"" + l.Lang + "\">\n<head>\n")
	h.raw("<meta charset=\"UTF-8\">\n<meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	h.raw("<title>").text(p.Name + l.TitleSuffix).raw("</title>\n")
	h.raw(`<meta name="description" content="`).text(p.Name + ". " + p.Category + ". " + l.Description).raw("\">\n")
	h.raw("<meta name=\"robots\" content=\"index, follow\">\n")
	h.raw(`<link rel="canonical" href="`).text(canonical).raw("\">\n")
	h.raw(`<link rel="alternate" hreflang="ru" href="`).text(v.site.ProductURL(p.SKU, core.LangRU)).raw("\">\n")
	h.raw(`<link rel="alternate" hreflang="en" href="`).text(v.site.ProductURL(p.SKU, core.LangEN)).raw("\">\n")
	h.raw("<meta property=\"og:type\" content=\"product\">\n")
	h.raw(`<meta property="og:title" content="`).text(p.Name + " — " + l.Brand).raw("\">\n")
	h.raw(`<meta property="og:url" content="`).text(canonical).raw("\">\n")
	h.raw("<script type=\"application/ld+json\">\n").raw(v.jsonLD()).raw("\n</script>\n")
	h.raw("<style>" + pageCSS + "</style>\n</head>\n<body>\n<div class=\"container\">\n")

	v.renderNav(h)

	h.raw(`<a href="` + l.BackHref + `" style="display:inline-block;margin-bottom:24px;color:#0066cc;text-decoration:none;font-size:.9rem">`).text(l.Back).raw("</a>\n")
	h.raw(`<h1 style="font-size:1.6rem;margin-bottom:8px">`).text(p.Name).raw("</h1>\n")
	h.raw(`<div style="display:flex;gap:8px;flex-wrap:wrap;margin-bottom:12px">` + "\n")
	h.raw("<span class=\"badge\">HALAL</span>\n")
	h.raw(`<span class="badge" style="background:#0066cc">`).text(p.SKU).raw("</span>\n")
	h.raw(`<span class="badge" style="background:#555">`).text(p.Section).raw("</span>\n</div>\n")

	v.renderPrice(h)
	v.renderDetails(h)
	v.renderExportPrices(h)
	v.renderCTA(h)
	v.renderFooter(h)

	h.raw("</div>\n</body>\n</html>")
}

func (v productView) renderNav(h *htmlWriter) {
	l := v.l
	h.raw(`<div style="display:flex;gap:16px;flex-wrap:wrap;margin-bottom:24px;padding-bottom:16px;border-bottom:1px solid #eee;font-size:.9rem">` + "\n")
	for _, link := range [][2]string{
		{l.NavPrefix, l.Catalog},
		{l.NavPrefix + "pepperoni", l.Pepperoni},
		{l.NavPrefix + "about", l.About},
		{l.NavPrefix + "delivery", l.Delivery},
	} {
		h.raw(`<a href="` + link[0] + `" style="color:#0066cc;text-decoration:none">`).text(link[1]).raw("</a>\n")
	}
	h.raw(`<a href="` + l.SwitchPrefix + v.skuLower + `" style="color:#595959;text-decoration:none;margin-left:auto">`).text(l.SwitchLabel).raw("</a>\n</div>\n")
}

func (v productView) renderPrice(h *htmlWriter) {
	l := v.l
	big := "font-size:2rem;font-weight:700;color:#1b7a3d;margin:16px 0"

	rubStyle := big
	if v.priceUSD != "" {
		unit := l.ExclVAT
		if v.bakery {
			unit = l.PerPiece
		}
		h.raw(`<div style="` + big + `">$`).text(v.priceUSD).
			raw(` <span style="font-size:.85rem;color:#767676;font-weight:400">`).text(unit).raw("</span></div>\n")
		rubStyle = "color:#767676;font-size:.9rem"
	}

	suffix := " " + l.InclVAT
	if v.bakery {
		suffix = " " + l.PerPiece
	}
	h.raw(`<div style="` + rubStyle + `">`).text(formatAmount(v.priceRUB, l.Locale) + " ₽" + suffix).raw("</div>\n")
	h.raw(`<div style="color:#1b7a3d;font-size:.9rem;margin:8px 0">`).text(l.InStock).raw("</div>\n")

	if v.bakery && v.source.Offers.PricePerBox != "" {
		h.raw(`<div style="margin-top:8px;font-size:.9rem;color:#444">`).text(l.PriceBox + ": ").
			raw("<b>").text(formatAmount(v.source.Offers.PricePerBox, l.Locale) + " ₽").raw("</b>")
		if v.p.QtyPerBox != "" {
			h.text(" (" + v.p.QtyPerBox + " " + l.Pieces + ")")
		}
		h.raw("</div>\n")
	}
}

func (v productView) renderDetails(h *htmlWriter) {
	l, p := v.l, v.p
	row := func(label, value string) {
		if value == "" {
			return
		}
		h.raw(`<dl class="detail-row"><dt>`).text(label).raw("</dt><dd>").text(value).raw("</dd></dl>\n")
	}

	weight := p.Weight
	if weight != "" && l.WeightUnit != "" && strings.IndexFunc(weight, unicode.IsLetter) < 0 {
		weight += " " + l.WeightUnit
	}
	noVAT := ""
	if v.noVAT != "" {
		noVAT = v.noVAT + " ₽"
	}

	h.raw("<div style=\"margin:20px 0\">\n")
	row(l.Category, p.Category)
	row(l.Weight, weight)
	row(l.PriceExclVAT, noVAT)
	row(l.ShelfLife, p.ShelfLife)
	row(l.Storage, p.Storage)
	row(l.HSCode, p.HSCode)
	row(l.Cert, core.Certification)
	row(l.Maker, l.Brand)
	h.raw("</div>\n")
}

func (v productView) renderExportPrices(h *htmlWriter) {
	prices := v.p.Offers.ExportPrices
	if len(prices) == 0 {
		return
	}
	h.raw(`<h3 style="margin-top:20px;font-size:1rem;color:#1b7a3d">`).text(v.l.ExportTitle).raw("</h3>")
	h.raw(`<div style="display:flex;gap:12px;flex-wrap:wrap;margin:8px 0">`)
	for _, c := range core.ExportCurrencies {
		price, ok := prices[c]
		if !ok || price.IsZero() {
			continue
		}
		sym, ok := currencySymbols[c]
		if !ok {
			sym = string(c)
		}
		h.raw(`<span style="background:#fff;border:1px solid #ddd;padding:6px 12px;border-radius:6px;font-size:.85rem"><b>`).
			text(price.String()).raw("</b> ").text(sym).raw("</span>")
	}
	h.raw("</div>\n")
}

func (v productView) renderCTA(h *htmlWriter) {
	l := v.l
	subject := fmt.Sprintf("%s: %s (%s)", l.OrderSubject, v.p.Name, v.p.SKU)
	h.raw("<div class=\"cta-box\">\n")
	h.raw(`<h3 style="margin:0 0 8px">`).text(l.Order).raw("</h3>\n")
	h.raw(`<p style="color:#444;margin-bottom:12px">`).text(l.OrderDesc).raw("</p>\n")
	h.raw(`<a href="tel:` + export.CompanyPhone + `" style="background:#1b7a3d;color:#fff">📞 +7 987 217-02-02</a>` + "\n")
	h.raw(`<a href="mailto:` + export.CompanyEmail + `?subject=` + mailSubject(subject) + `" style="border:2px solid #1b7a3d;color:#1b7a3d">`).
		text(l.Contact).raw("</a>\n</div>\n")
}

func (v productView) renderFooter(h *htmlWriter) {
	l := v.l
	h.raw("<footer>\n<p>")
	for i, link := range [][2]string{
		{l.NavPrefix + "pepperoni", l.Pepperoni},
		{l.NavPrefix + "about", l.About},
		{l.NavPrefix + "faq", l.FAQ},
		{l.NavPrefix + "delivery", l.Delivery},
	} {
		if i > 0 {
			h.raw(" · ")
		}
		h.raw(`<a href="` + link[0] + `">`).text(link[1]).raw("</a>")
	}
	h.raw("</p>\n<p>© <a href=\"" + export.CompanyURL + "\">").text(l.Brand).
		raw("</a> · <a href=\"" + v.site.SiteURL + "\">").text(strings.TrimPrefix(v.site.SiteURL, "https://")).raw("</a></p>\n</footer>\n")
}

// htmlWriter chains writes and keeps the first error.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) *htmlWriter {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
	return h
}

func (h *htmlWriter) text(s string) *htmlWriter {
	return h.raw(templ.EscapeString(s))
}
