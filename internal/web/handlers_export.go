package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kazandelikates/catalog/internal/core"
	"github.com/kazandelikates/catalog/internal/export"
	"github.com/kazandelikates/catalog/internal/logging"
	"github.com/kazandelikates/catalog/internal/pages"
)

// handleExport downloads the price list.
//
// Query parameters:
//   - format: csv, xlsx (default) or xls
//   - lang: ru (default) or en
//   - currency: defaults to RUB for ru and USD for en
//   - vat: "false" quotes RUB prices excluding VAT
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	format, err := export.ParseFormat(query.Get("format"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	opts, err := export.ParseOptions(query.Get("lang"), query.Get("currency"), query.Get("vat"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	c, err := s.service.Products(r.Context(), core.Query{Lang: opts.Lang})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WritePriceList(&buf, format, c.Products, opts, s.now()); err != nil {
		s.respondError(w, r, fmt.Errorf("render %s: %w", format, err))
		return
	}

	filename := opts.Filename(format)
	logging.FromContext(r.Context()).Info("price list exported",
		"format", format,
		"currency", opts.Currency,
		"vat", opts.WithVAT,
		"products", len(c.Products),
	)

	w.Header().Set("Content-Disposition", attachment(filename))
	setCatalogHeaders(w)
	writeBody(w, r, format.ContentType(), &buf)
}

// handleStaticCatalog serves the products.json snapshot built live.
func (s *Server) handleStaticCatalog(w http.ResponseWriter, r *http.Request) {
	c, err := s.service.BuildCatalog(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(export.NewStaticCatalog(s.site, c.Products, c.Sections, c.Built)); err != nil {
		s.respondError(w, r, fmt.Errorf("encode catalog: %w", err))
		return
	}

	setCatalogHeaders(w)
	writeBody(w, r, "application/json; charset=utf-8", &buf)
}

// handleLLMSFull serves the markdown catalog for language models.
func (s *Server) handleLLMSFull(w http.ResponseWriter, r *http.Request) {
	s.handleFeed(export.WriteLLMSFull, "text/plain; charset=utf-8")(w, r)
}

// feedWriter renders a document over the whole Russian catalog.
type feedWriter func(w io.Writer, site export.Site, products []core.Product, now time.Time) error

// handleFeed returns a handler rendering write over a fresh catalog.
func (s *Server) handleFeed(write feedWriter, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := s.service.BuildCatalog(r.Context())
		if err != nil {
			s.respondError(w, r, err)
			return
		}

		var buf bytes.Buffer
		if err := write(&buf, s.site, c.Products, c.Built); err != nil {
			s.respondError(w, r, fmt.Errorf("render %s: %w", r.URL.Path, err))
			return
		}

		setCatalogHeaders(w)
		writeBody(w, r, contentType, &buf)
	}
}

// handleProductPage renders the HTML detail page of one product.
// A trailing ".html" in the SKU segment is accepted.
func (s *Server) handleProductPage(lang string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sku := strings.TrimSuffix(chi.URLParam(r, "sku"), ".html")

		// Pages localize on their own, so they start from the Russian source.
		p, _, err := s.service.Product(r.Context(), sku, core.LangRU)
		if err != nil {
			s.respondError(w, r, err)
			return
		}

		var buf bytes.Buffer
		if err := pages.ProductPage(s.site, p, lang).Render(r.Context(), &buf); err != nil {
			s.respondError(w, r, fmt.Errorf("render page %s: %w", sku, err))
			return
		}

		setCatalogHeaders(w)
		writeBody(w, r, "text/html; charset=utf-8", &buf)
	}
}
