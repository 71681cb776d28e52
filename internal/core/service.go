package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// SheetFetcher retrieves the raw published text of one sheet.
type SheetFetcher interface {
	FetchSheet(ctx context.Context, sheet Sheet) (string, error)
}

// Catalog is the result of one build: every product in sheet order.
type Catalog struct {
	BuildID  string
	Built    time.Time
	Sections []string
	Products []Product
	Sheets   []SheetResult
}

// Service builds catalogs from the configured sheets. It holds no parsed
// state between calls: every read fetches and parses the sheets again.
type Service struct {
	fetcher SheetFetcher
	sheets  []Sheet
	limiter *BuildLimiter
	now     func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithSheets overrides DefaultSheets.
func WithSheets(sheets []Sheet) ServiceOption {
	return func(s *Service) { s.sheets = sheets }
}

// WithBuildLimiter sets the limiter shared by all builds.
func WithBuildLimiter(l *BuildLimiter) ServiceOption {
	return func(s *Service) { s.limiter = l }
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

// NewService creates a Service reading sheets through fetcher.
func NewService(fetcher SheetFetcher, opts ...ServiceOption) *Service {
	s := &Service{
		fetcher: fetcher,
		sheets:  DefaultSheets,
		limiter: NewBuildLimiter(DefaultMaxConcurrentBuilds, DefaultBuildWait),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sheets returns the configured source sheets in processing order.
func (s *Service) Sheets() []Sheet {
	return s.sheets
}

// Limiter exposes the build limiter for health reporting and shutdown.
func (s *Service) Limiter() *BuildLimiter {
	return s.limiter
}

// BuildCatalog fetches all sheets concurrently and assembles them in
// declared order. The first fetch failure cancels the others and fails the
// whole build; no partial catalog is returned.
func (s *Service) BuildCatalog(ctx context.Context) (*Catalog, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	buildID := uuid.New().String()
	start := s.now()
	log := slog.With("build_id", buildID)

	texts := make([]string, len(s.sheets))
	g, gctx := errgroup.WithContext(ctx)
	for i, sheet := range s.sheets {
		g.Go(func() error {
			text, err := s.fetcher.FetchSheet(gctx, sheet)
			if err != nil {
				var sfe *SourceFetchError
				if errors.As(err, &sfe) {
					return err
				}
				return &SourceFetchError{Sheet: sheet.Section, Err: err}
			}
			texts[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("catalog build failed", "error", err)
		return nil, err
	}

	products, results, err := AssembleWithStats(texts, s.sheets)
	if err != nil {
		return nil, fmt.Errorf("assemble catalog: %w", err)
	}

	for _, r := range results {
		log.Debug("sheet parsed",
			"section", r.Sheet.Section,
			"rows", r.Rows,
			"products", r.Products,
			"categories", r.Categories,
			"noise", r.Noise,
		)
	}
	log.Info("catalog built",
		"products", len(products),
		"duration_ms", s.now().Sub(start).Milliseconds(),
	)

	return &Catalog{
		BuildID:  buildID,
		Built:    start,
		Sections: Sections(s.sheets),
		Products: products,
		Sheets:   results,
	}, nil
}

// Products builds the catalog, localizes it and applies q.
// Localization runs first so filters match the displayed language.
func (s *Service) Products(ctx context.Context, q Query) (*Catalog, error) {
	c, err := s.BuildCatalog(ctx)
	if err != nil {
		return nil, err
	}
	c.Products = Filter(Localize(c.Products, q.Lang), q)
	return c, nil
}

// Product returns a single product by exact SKU in the given language.
// A blank SKU is never found.
func (s *Service) Product(ctx context.Context, sku, lang string) (Product, *Catalog, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return Product{}, nil, fmt.Errorf("%w: %q", ErrProductNotFound, sku)
	}
	c, err := s.Products(ctx, Query{Lang: lang})
	if err != nil {
		return Product{}, nil, err
	}
	p, ok := FindBySKU(c.Products, sku)
	if !ok {
		return Product{}, c, fmt.Errorf("%w: %s", ErrProductNotFound, sku)
	}
	c.Products = []Product{p}
	return p, c, nil
}

// SearchResult is a page of search matches.
type SearchResult struct {
	Catalog      *Catalog
	TotalMatches int
	Items        []Product
}

// Search limits and default for free-text search.
const (
	DefaultSearchLimit = 10
	MaxSearchLimit     = 50
)

// Search runs a free-text query and returns at most limit matches.
// A non-positive limit uses DefaultSearchLimit; limits above MaxSearchLimit
// are capped.
func (s *Service) Search(ctx context.Context, q, lang string, limit int) (*SearchResult, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	limit = min(limit, MaxSearchLimit)

	c, err := s.Products(ctx, Query{Search: q, Lang: lang})
	if err != nil {
		return nil, err
	}

	items := c.Products
	if len(items) > limit {
		items = items[:limit]
	}
	return &SearchResult{
		Catalog:      c,
		TotalMatches: len(c.Products),
		Items:        items,
	}, nil
}
