// Package web provides the HTTP server for the catalog API, feeds and
// product pages.
package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kazandelikates/catalog/internal/analytics"
	"github.com/kazandelikates/catalog/internal/config"
	"github.com/kazandelikates/catalog/internal/core"
	"github.com/kazandelikates/catalog/internal/export"
	webmw "github.com/kazandelikates/catalog/internal/web/middleware"
)

// Server is the HTTP server for the catalog.
type Server struct {
	service *core.Service
	cfg     *config.Config
	site    export.Site
	visits  *analytics.VisitLog
	cache   ResponseCache
	now     func() time.Time

	router   *chi.Mux
	server   *http.Server
	limiters []*rateLimiter
}

// Option configures a Server.
type Option func(*Server)

// WithCache enables the response cache for catalog routes.
func WithCache(c ResponseCache) Option {
	return func(s *Server) { s.cache = c }
}

// WithVisitLog replaces the visit log sized from config.
func WithVisitLog(v *analytics.VisitLog) Option {
	return func(s *Server) { s.visits = v }
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// NewServer creates a new Server instance.
func NewServer(service *core.Service, cfg *config.Config, opts ...Option) *Server {
	s := &Server{
		service: service,
		cfg:     cfg,
		site:    export.Site{APIURL: cfg.Catalog.APIURL, SiteURL: cfg.Catalog.SiteURL},
		now:     time.Now,
		router:  chi.NewRouter(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.visits == nil {
		s.visits = analytics.NewVisitLog(cfg.Analytics.VisitLogSize)
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(webmw.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(webmw.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))
	s.router.Use(s.securityHeaders)

	if s.cfg.Rate.Enabled {
		s.router.Use(s.newRateLimiter(s.cfg.Rate.RequestsPerMinute, time.Minute).middleware)
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		r.Use(webmw.CORS(s.cfg.Security.AllowedOrigin))

		r.Get("/health", s.handleHealth)
		r.Get("/v1/health", s.handleHealthV1)
		r.Get("/stats", s.handleStats)

		r.Group(func(r chi.Router) {
			r.Use(s.trackVisits)
			r.Use(s.cached)

			r.Get("/products", s.handleProducts)
			r.Get("/v1/products", s.handleProducts)
			r.Get("/product/{sku}", s.handleProduct)
			r.Get("/search", s.handleSearch)

			exports := r.With()
			if s.cfg.Rate.Enabled {
				exports = r.With(s.newRateLimiter(s.cfg.Rate.ExportLimit, time.Minute).middleware)
			}
			exports.Get("/export", s.handleExport)
		})
	})

	s.router.Group(func(r chi.Router) {
		r.Use(s.cached)

		r.Get("/products.json", s.handleStaticCatalog)
		r.Get("/llms-full.txt", s.handleLLMSFull)
		r.Get("/sitemap.xml", s.handleFeed(export.WriteSitemap, "application/xml; charset=utf-8"))
		r.Get("/yml.xml", s.handleFeed(export.WriteYML, "application/xml; charset=utf-8"))
		r.Get("/rss.xml", s.handleFeed(export.WriteRSS, "application/rss+xml; charset=utf-8"))
		r.Get("/google-feed.xml", s.handleFeed(export.WriteGoogleFeed, "application/xml; charset=utf-8"))

		r.Get("/products/{sku}", s.handleProductPage(core.LangRU))
		r.Get("/en/products/{sku}", s.handleProductPage(core.LangEN))
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	slog.Info("starting server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server and its background cleanup.
func (s *Server) Shutdown(ctx context.Context) error {
	for _, l := range s.limiters {
		l.stop()
	}
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Visits returns the visit log behind /api/stats.
func (s *Server) Visits() *analytics.VisitLog {
	return s.visits
}

// securityHeaders adds security headers to all responses.
func (s *Server) securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")

		// Pages carry inline styles; JSON-LD blocks are data, not script.
		if s.cfg.Security.EnableCSP {
			h.Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data: https:; script-src 'self'; frame-ancestors 'none'")
		}

		next.ServeHTTP(w, r)
	})
}

// trackVisits records catalog API requests in the visit log. The client
// address is the one TrustedRealIP settled on.
func (s *Server) trackVisits(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.visits.Record(r, webmw.ClientIP(r))
		next.ServeHTTP(w, r)
	})
}

// rateLimiter implements a fixed-window request budget per client IP.
type rateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     int           // requests per window
	window   time.Duration // time window
	now      func() time.Time
	done     chan struct{}
	once     sync.Once

	onLimited func(http.ResponseWriter, *http.Request, error)
}

type visitor struct {
	tokens    int
	lastReset time.Time
}

// newRateLimiter creates a limiter owned by s; Shutdown stops its cleanup.
func (s *Server) newRateLimiter(rate int, window time.Duration) *rateLimiter {
	rl := &rateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate,
		window:   window,
		now:      s.now,
		done:     make(chan struct{}),
	}
	rl.onLimited = s.respondError
	s.limiters = append(s.limiters, rl)
	go rl.cleanup()
	return rl
}

// cleanup removes stale visitor entries every window until stopped.
func (rl *rateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
		}
		rl.mu.Lock()
		for ip, v := range rl.visitors {
			if rl.now().Sub(v.lastReset) > rl.window*2 {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}

func (rl *rateLimiter) stop() {
	rl.once.Do(func() { close(rl.done) })
}

// allow checks if the request should be allowed and consumes a token if so.
func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	v, exists := rl.visitors[ip]
	if !exists || now.Sub(v.lastReset) > rl.window {
		rl.visitors[ip] = &visitor{tokens: rl.rate - 1, lastReset: now}
		return true
	}

	if v.tokens <= 0 {
		return false
	}
	v.tokens--
	return true
}

// middleware returns an HTTP middleware that rate limits by client IP.
func (rl *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(webmw.ClientIP(r)) {
			rl.onLimited(w, r, errRateLimited)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeJSON encodes v as JSON and writes it to w.
// Logs encoding errors since headers are already sent.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
