package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kazandelikates/catalog/internal/core"
	"github.com/kazandelikates/catalog/internal/export"
	"github.com/kazandelikates/catalog/internal/logging"
)

const (
	serviceName = "Pepperoni.tatar API"
	productHint = "Use /api/search?q=pepperoni to find products"
)

// setCatalogHeaders marks a response as shareable for an hour.
func setCatalogHeaders(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", catalogCacheControl)
}

// dataVersion is the build date in UTC.
func dataVersion(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}

// queryFromRequest reads catalog filters from the query string.
func queryFromRequest(r *http.Request) core.Query {
	q := r.URL.Query()
	return core.Query{
		Search:   strings.TrimSpace(q.Get("search")),
		Section:  strings.TrimSpace(q.Get("section")),
		Category: strings.TrimSpace(q.Get("category")),
		SKU:      strings.TrimSpace(q.Get("sku")),
		Lang:     core.NormalizeLang(q.Get("lang")),
	}
}

// handleHealth reports liveness for the legacy endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-cache")
	writeJSON(w, map[string]any{
		"status":  "healthy",
		"service": serviceName,
		"version": "2.0.0",
		"company": export.CompanyName,
		"endpoints": map[string]string{
			"products_live":   "/api/products",
			"products_static": "/products.json",
			"health":          "/api/health",
			"llms":            "/llms-full.txt",
		},
	})
}

// handleHealthV1 reports liveness, endpoints and build slot usage.
func (s *Server) handleHealthV1(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-cache")
	writeJSON(w, map[string]any{
		"status":     "healthy",
		"service":    serviceName,
		"version":    "2.1.0",
		"apiVersion": "v1",
		"company":    export.CompanyName,
		"builds":     s.service.Limiter().Status(),
		"endpoints": map[string]string{
			"products":        "/api/v1/products",
			"products_legacy": "/api/products",
			"product":         "/api/product/{sku}",
			"search":          "/api/search",
			"export":          "/api/export",
			"health":          "/api/v1/health",
			"stats":           "/api/stats",
			"static_catalog":  "/products.json",
			"llms":            "/llms-full.txt",
			"sitemap":         "/sitemap.xml",
			"yml":             "/yml.xml",
			"rss":             "/rss.xml",
			"google_feed":     "/google-feed.xml",
		},
		"params": map[string]string{
			"search":   "Filter by name, category, SKU, meatType (?search=pepperoni)",
			"section":  "Filter by section (?section=Frozen)",
			"category": "Filter by category (?category=Toppings)",
			"sku":      "Exact SKU match (?sku=KD-015)",
			"lang":     "Language: ru (default) or en (?lang=en)",
		},
	})
}

// handleProducts serves the filtered catalog as a schema.org DataCatalog.
func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	q := queryFromRequest(r)

	c, err := s.service.Products(r.Context(), q)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Debug("catalog served",
		"build_id", c.BuildID,
		"products", len(c.Products),
		"lang", q.Lang,
	)

	setCatalogHeaders(w)
	writeJSON(w, export.NewEnvelope(s.site, c.Products, q, c.Sections, c.Built))
}

type productLinks struct {
	Self    string `json:"self"`
	Catalog string `json:"catalog"`
	Search  string `json:"search"`
	HTML    string `json:"html"`
}

// productResponse is a single product with schema.org framing.
type productResponse struct {
	Context      string `json:"@context"`
	Type         string `json:"@type"`
	DateModified string `json:"dateModified"`
	DataVersion  string `json:"dataVersion"`
	Source       string `json:"source"`
	core.Product
	Links productLinks `json:"_links"`
}

type productNotFound struct {
	Error string `json:"error"`
	SKU   string `json:"sku"`
	Hint  string `json:"hint"`
	Code  string `json:"code"`
}

// handleProduct serves one product by SKU.
func (s *Server) handleProduct(w http.ResponseWriter, r *http.Request) {
	sku := chi.URLParam(r, "sku")
	lang := core.NormalizeLang(r.URL.Query().Get("lang"))

	p, c, err := s.service.Product(r.Context(), sku, lang)
	if err != nil {
		if errors.Is(err, core.ErrProductNotFound) {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(productNotFound{
				Error: "Product not found",
				SKU:   sku,
				Hint:  productHint,
				Code:  "CAT001",
			})
			return
		}
		s.respondError(w, r, err)
		return
	}

	setCatalogHeaders(w)
	writeJSON(w, productResponse{
		Context:      "https://schema.org",
		Type:         "Product",
		DateModified: c.Built.UTC().Format(export.ISOTime),
		DataVersion:  dataVersion(c.Built),
		Source:       "Google Sheets (live)",
		Product:      p,
		Links: productLinks{
			Self:    "/api/product/" + url.PathEscape(sku),
			Catalog: "/api/products",
			Search:  "/api/search",
			HTML:    "/products/" + url.PathEscape(strings.ToLower(sku)),
		},
	})
}

// searchItem is the compact product shape returned by /api/search.
type searchItem struct {
	ID            string      `json:"id"`
	SKU           string      `json:"sku"`
	Name          string      `json:"name"`
	NameRU        string      `json:"name_ru,omitempty"`
	Category      string      `json:"category"`
	Section       string      `json:"section"`
	Weight        string      `json:"weight"`
	MeatType      string      `json:"meatType,omitempty"`
	Price         json.Number `json:"price"`
	PriceCurrency string      `json:"priceCurrency"`
	Availability  string      `json:"availability"`
	URL           string      `json:"url"`
}

type searchLinks struct {
	Self        string `json:"self"`
	FullCatalog string `json:"fullCatalog"`
}

type searchResponse struct {
	DateModified string       `json:"dateModified"`
	DataVersion  string       `json:"dataVersion"`
	Query        string       `json:"query"`
	Lang         string       `json:"lang"`
	TotalMatches int          `json:"totalMatches"`
	Returned     int          `json:"returned"`
	Items        []searchItem `json:"items"`
	Links        searchLinks  `json:"_links"`
}

// handleSearch runs a free-text search. q and search are synonyms.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := strings.TrimSpace(query.Get("q"))
	if q == "" {
		q = strings.TrimSpace(query.Get("search"))
	}
	lang := core.NormalizeLang(query.Get("lang"))
	limit := min(parseIntParam(r, "limit", core.DefaultSearchLimit), core.MaxSearchLimit)

	res, err := s.service.Search(r.Context(), q, lang, limit)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	items := make([]searchItem, len(res.Items))
	for i, p := range res.Items {
		price := p.Offers.Price
		if price == "" {
			price = p.Offers.PricePerUnit
		}
		items[i] = searchItem{
			ID:            p.SKU,
			SKU:           p.SKU,
			Name:          p.Name,
			NameRU:        p.NameRU,
			Category:      p.Category,
			Section:       p.Section,
			Weight:        p.Weight,
			MeatType:      p.MeatType,
			Price:         json.Number(core.ToNumber(price).String()),
			PriceCurrency: string(core.RUB),
			Availability:  "InStock",
			URL:           s.site.ProductURL(p.SKU, core.LangRU),
		}
	}

	setCatalogHeaders(w)
	writeJSON(w, searchResponse{
		DateModified: res.Catalog.Built.UTC().Format(export.ISOTime),
		DataVersion:  dataVersion(res.Catalog.Built),
		Query:        q,
		Lang:         lang,
		TotalMatches: res.TotalMatches,
		Returned:     len(items),
		Items:        items,
		Links: searchLinks{
			Self:        fmt.Sprintf("/api/search?q=%s&lang=%s&limit=%d", url.QueryEscape(q), lang, limit),
			FullCatalog: "/api/products",
		},
	})
}

// handleStats reports visit analytics. Never cached.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-cache")
	writeJSON(w, s.visits.Stats())
}
