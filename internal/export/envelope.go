package export

import (
	"strings"
	"time"

	"github.com/kazandelikates/catalog/internal/core"
)

// Site holds the public URLs products and feeds link to.
type Site struct {
	APIURL  string // e.g. https://api.pepperoni.tatar
	SiteURL string // storefront
}

// DefaultSite is the production deployment.
var DefaultSite = Site{
	APIURL:  "https://api.pepperoni.tatar",
	SiteURL: core.OfferURL,
}

// ProductURL is the RU or EN detail page of p.
func (s Site) ProductURL(sku, lang string) string {
	prefix := ""
	if core.NormalizeLang(lang) == core.LangEN {
		prefix = "/en"
	}
	return strings.TrimRight(s.APIURL, "/") + prefix + "/products/" + strings.ToLower(sku)
}

// URL joins path to the API base URL.
func (s Site) URL(path string) string {
	return strings.TrimRight(s.APIURL, "/") + path
}

// Company contact details.
const (
	CompanyName    = "Казанские Деликатесы"
	CompanyURL     = "https://kazandelikates.tatar"
	CompanyPhone   = "+79872170202"
	CompanyEmail   = "info@kazandelikates.tatar"
	CompanyAddress = "420061, Казань, ул Аграрная, 2, оф 7"
	FullAddress    = "420061, Республика Татарстан, г Казань, ул Аграрная, дом 2, офис 7"
	PublishedSheet = "https://docs.google.com/spreadsheets/d/e/2PACX-1vRWKnx70tXlapgtJsR4rw9WLeQlksXAaXCQzZP1RBh9G7H9lQK4rt0ga9DaJkV28F7q8GDgkRZM3Arj/pubhtml"
)

// ISOTime is the timestamp layout of dateModified fields.
const ISOTime = "2006-01-02T15:04:05.000Z07:00"

// Publisher is a schema.org Organization.
type Publisher struct {
	Type    string `json:"@type,omitempty"`
	Name    string `json:"name"`
	URL     string `json:"url"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// Filters echoes the applied query; absent filters encode as null.
type Filters struct {
	Search   *string `json:"search"`
	Section  *string `json:"section"`
	Category *string `json:"category"`
	SKU      *string `json:"sku"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Envelope is the schema.org DataCatalog served by /api/products.
type Envelope struct {
	Context       string         `json:"@context"`
	Type          string         `json:"@type"`
	Name          string         `json:"name"`
	URL           string         `json:"url"`
	Publisher     Publisher      `json:"publisher"`
	DateModified  string         `json:"dateModified"`
	Source        string         `json:"source"`
	Sections      []string       `json:"sections"`
	TotalProducts int            `json:"totalProducts"`
	Filters       Filters        `json:"filters"`
	Products      []core.Product `json:"products"`
}

// NewEnvelope wraps already filtered products with catalog metadata.
func NewEnvelope(site Site, products []core.Product, q core.Query, sections []string, now time.Time) Envelope {
	if products == nil {
		products = []core.Product{}
	}
	return Envelope{
		Context: "https://schema.org",
		Type:    "DataCatalog",
		Name:    "Полный каталог — " + CompanyName,
		URL:     site.URL("/api/products"),
		Publisher: Publisher{
			Type:    "Organization",
			Name:    CompanyName,
			URL:     CompanyURL,
			Address: CompanyAddress,
			Phone:   CompanyPhone,
			Email:   CompanyEmail,
		},
		DateModified:  now.UTC().Format(ISOTime),
		Source:        "Google Sheets (live sync — 3 sheets)",
		Sections:      sections,
		TotalProducts: len(products),
		Filters: Filters{
			Search:   optional(q.Search),
			Section:  optional(q.Section),
			Category: optional(q.Category),
			SKU:      optional(q.SKU),
		},
		Products: products,
	}
}

// StaticCatalog is the products.json snapshot written by catalogctl sync.
type StaticCatalog struct {
	Context       string         `json:"@context"`
	Source        string         `json:"source"`
	LiveEndpoint  string         `json:"liveEndpoint"`
	Publisher     Publisher      `json:"publisher"`
	LastSynced    string         `json:"lastSynced"`
	DeliveryTerms string         `json:"deliveryTerms"`
	Certification string         `json:"certification"`
	Sections      []string       `json:"sections"`
	TotalProducts int            `json:"totalProducts"`
	Products      []core.Product `json:"products"`
}

// NewStaticCatalog builds the products.json document.
func NewStaticCatalog(site Site, products []core.Product, sections []string, now time.Time) StaticCatalog {
	if products == nil {
		products = []core.Product{}
	}
	return StaticCatalog{
		Context:      "https://schema.org",
		Source:       PublishedSheet,
		LiveEndpoint: site.URL("/api/products"),
		Publisher: Publisher{
			Name:    CompanyName,
			URL:     CompanyURL,
			Address: FullAddress,
			Phone:   CompanyPhone,
			Email:   CompanyEmail,
		},
		LastSynced:    now.UTC().Format(time.DateOnly),
		DeliveryTerms: core.DeliveryTerms,
		Certification: core.Certification,
		Sections:      sections,
		TotalProducts: len(products),
		Products:      products,
	}
}
