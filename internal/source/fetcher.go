// Package source fetches published sheet text from Google Sheets.
package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/kazandelikates/catalog/internal/config"
	"github.com/kazandelikates/catalog/internal/core"
)

// ErrTooLarge is returned when a sheet body exceeds the configured limit.
var ErrTooLarge = errors.New("source too large")

const bom = "\ufeff"

// HTTPFetcher downloads one published sheet per request.
type HTTPFetcher struct {
	client    *http.Client
	baseURL   string
	userAgent string
	maxBytes  int64
}

// NewHTTPFetcher creates a fetcher from the source configuration.
func NewHTTPFetcher(cfg config.SourceConfig) *HTTPFetcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &HTTPFetcher{
		client:    &http.Client{Timeout: timeout},
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBytes,
	}
}

// WithClient replaces the underlying HTTP client.
func (f *HTTPFetcher) WithClient(c *http.Client) *HTTPFetcher {
	f.client = c
	return f
}

// SheetURL is the CSV export URL of one published tab.
func (f *HTTPFetcher) SheetURL(sheet core.Sheet) string {
	sep := "&"
	if !strings.Contains(f.baseURL, "?") {
		sep = "?"
	}
	return f.baseURL + sep + "gid=" + sheet.GID
}

// FetchSheet implements core.SheetFetcher. Every failure is reported as a
// *core.SourceFetchError naming the sheet's section.
func (f *HTTPFetcher) FetchSheet(ctx context.Context, sheet core.Sheet) (string, error) {
	fail := func(status int, err error) (string, error) {
		return "", &core.SourceFetchError{Sheet: sheet.Section, StatusCode: status, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.SheetURL(sheet), nil)
	if err != nil {
		return fail(0, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "text/csv")
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return fail(0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fail(resp.StatusCode, fmt.Errorf("http %d", resp.StatusCode))
	}

	var body io.Reader = resp.Body
	if f.maxBytes > 0 {
		body = io.LimitReader(resp.Body, f.maxBytes+1)
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		return fail(0, fmt.Errorf("read body: %w", err))
	}
	if f.maxBytes > 0 && int64(len(raw)) > f.maxBytes {
		return fail(0, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, f.maxBytes))
	}

	decoded, err := charset.NewReader(bytes.NewReader(raw), resp.Header.Get("Content-Type"))
	if err != nil {
		return fail(0, fmt.Errorf("decode source: %w", err))
	}
	utf, err := io.ReadAll(decoded)
	if err != nil {
		return fail(0, fmt.Errorf("decode source: %w", err))
	}

	text := strings.TrimPrefix(string(utf), bom)
	return strings.ToValidUTF8(text, "\uFFFD"), nil
}
