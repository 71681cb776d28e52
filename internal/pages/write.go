package pages

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kazandelikates/catalog/internal/core"
	"github.com/kazandelikates/catalog/internal/export"
)

// Path is the file of p's page relative to the output root.
func Path(sku, lang string) string {
	name := strings.ToLower(sku) + ".html"
	if core.NormalizeLang(lang) == core.LangEN {
		return filepath.Join("en", "products", name)
	}
	return filepath.Join("products", name)
}

// WriteAll writes the RU and EN page of every product under dir and
// returns the number of files written.
func WriteAll(ctx context.Context, dir string, site export.Site, products []core.Product) (int, error) {
	for _, sub := range []string{"products", filepath.Join("en", "products")} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			return 0, fmt.Errorf("create %s: %w", sub, err)
		}
	}

	written := 0
	for _, p := range products {
		for _, lang := range []string{core.LangRU, core.LangEN} {
			if err := ctx.Err(); err != nil {
				return written, err
			}
			if err := writePage(ctx, filepath.Join(dir, Path(p.SKU, lang)), site, p, lang); err != nil {
				return written, err
			}
			written++
		}
	}
	return written, nil
}

func writePage(ctx context.Context, path string, site export.Site, p core.Product, lang string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create page: %w", err)
	}
	w := bufio.NewWriter(f)
	if err := ProductPage(site, p, lang).Render(ctx, w); err != nil {
		f.Close()
		return fmt.Errorf("render %s: %w", p.SKU, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
