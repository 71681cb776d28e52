package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kazandelikates/catalog/internal/logging"
)

// catalogCacheControl lets shared caches serve catalog responses for an
// hour and keep serving stale copies for a day while revalidating.
const catalogCacheControl = "s-maxage=3600, stale-while-revalidate=86400"

// maxCachedBody bounds the size of a single cached response.
const maxCachedBody = 8 << 20

// CachedResponse is a rendered 200 response.
type CachedResponse struct {
	ContentType        string `json:"contentType"`
	ContentDisposition string `json:"contentDisposition,omitempty"`
	Body               []byte `json:"body"`
}

// ResponseCache stores rendered responses by request key.
type ResponseCache interface {
	Get(ctx context.Context, key string) (CachedResponse, bool, error)
	Set(ctx context.Context, key string, resp CachedResponse, ttl time.Duration) error
}

// RedisCache is a ResponseCache backed by Redis.
type RedisCache struct {
	client redis.Cmdable
	prefix string
}

// NewRedisCache stores entries under "catalog:" keys in client.
func NewRedisCache(client redis.Cmdable) *RedisCache {
	return &RedisCache{client: client, prefix: "catalog:"}
}

// Get returns the entry for key; a miss is not an error.
func (c *RedisCache) Get(ctx context.Context, key string) (CachedResponse, bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return CachedResponse{}, false, nil
	}
	if err != nil {
		return CachedResponse{}, false, fmt.Errorf("cache get: %w", err)
	}

	var resp CachedResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return CachedResponse{}, false, fmt.Errorf("cache decode: %w", err)
	}
	return resp, true, nil
}

// Set stores resp for ttl.
func (c *RedisCache) Set(ctx context.Context, key string, resp CachedResponse, ttl time.Duration) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Set(ctx, c.prefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// cacheKey identifies a GET by path and normalized query.
func cacheKey(r *http.Request) string {
	key := r.URL.Path
	if q := r.URL.Query(); len(q) > 0 {
		key += "?" + q.Encode()
	}
	return key
}

// cached serves GET responses from s.cache and stores successful ones.
// Cache failures are logged and the request falls through to next.
func (s *Server) cached(next http.Handler) http.Handler {
	if s.cache == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		key := cacheKey(r)
		logger := logging.WithFields(ctx, "cache_key", key)

		resp, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			logger.Warn("response cache unavailable", "error", err)
		}
		if ok {
			h := w.Header()
			h.Set("Content-Type", resp.ContentType)
			if resp.ContentDisposition != "" {
				h.Set("Content-Disposition", resp.ContentDisposition)
			}
			h.Set("Cache-Control", catalogCacheControl)
			h.Set("X-Cache", "HIT")
			w.Write(resp.Body)
			return
		}

		w.Header().Set("X-Cache", "MISS")
		rec := &recordingWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		if rec.status != http.StatusOK || rec.overflow {
			return
		}
		entry := CachedResponse{
			ContentType:        w.Header().Get("Content-Type"),
			ContentDisposition: w.Header().Get("Content-Disposition"),
			Body:               rec.body.Bytes(),
		}
		setCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()
		if err := s.cache.Set(setCtx, key, entry, s.cfg.Cache.TTL); err != nil {
			logger.Warn("response cache store failed", "error", err)
		}
	})
}

// recordingWriter passes writes through while keeping a copy of the body.
type recordingWriter struct {
	http.ResponseWriter
	status   int
	body     bytes.Buffer
	overflow bool
}

func (w *recordingWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	if !w.overflow {
		if w.body.Len()+len(b) > maxCachedBody {
			w.overflow = true
			w.body.Reset()
		} else {
			w.body.Write(b)
		}
	}
	return w.ResponseWriter.Write(b)
}

func (w *recordingWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
