package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/kazandelikates/catalog/internal/core"
	"github.com/kazandelikates/catalog/internal/export"
	"github.com/kazandelikates/catalog/internal/pages"
)

// runSync builds the catalog once and writes the static snapshot files
// into dir, returning their paths.
func runSync(ctx context.Context, svc *core.Service, site export.Site, dir string) ([]string, error) {
	c, err := svc.BuildCatalog(ctx)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}

	files := []struct {
		name  string
		write func(io.Writer) error
	}{
		{"products.json", func(w io.Writer) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(export.NewStaticCatalog(site, c.Products, c.Sections, c.Built))
		}},
		{"llms-full.txt", func(w io.Writer) error {
			return export.WriteLLMSFull(w, site, c.Products, c.Built)
		}},
		{"sitemap.xml", func(w io.Writer) error {
			return export.WriteSitemap(w, site, c.Products, c.Built)
		}},
	}

	var written []string
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := writeFile(path, f.write); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

// runPages writes every product page under dir.
func runPages(ctx context.Context, svc *core.Service, site export.Site, dir string) (int, error) {
	c, err := svc.BuildCatalog(ctx)
	if err != nil {
		return 0, err
	}
	return pages.WriteAll(ctx, dir, site, c.Products)
}

// runExport writes one price list to path ("-" for stdout) and returns
// the product count.
func runExport(ctx context.Context, svc *core.Service, f export.Format, opts export.Options, path string, stdout io.Writer) (int, error) {
	c, err := svc.Products(ctx, core.Query{Lang: opts.Lang})
	if err != nil {
		return 0, err
	}
	write := func(w io.Writer) error {
		return export.WritePriceList(w, f, c.Products, opts, time.Now())
	}
	if path == "-" {
		w := bufio.NewWriter(stdout)
		if err := write(w); err != nil {
			return 0, err
		}
		return len(c.Products), w.Flush()
	}
	return len(c.Products), writeFile(path, write)
}

// writeFile creates path and writes it through a buffer. A partially
// written file is removed on failure.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := bufio.NewWriter(f)
	err = write(w)
	if err == nil {
		err = w.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
