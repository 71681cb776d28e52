// Command catalogctl generates the static catalog artifacts from the
// published spreadsheet: products.json, llms-full.txt, sitemap.xml,
// product pages and downloadable price lists.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/kazandelikates/catalog/internal/config"
	"github.com/kazandelikates/catalog/internal/core"
	_ "github.com/kazandelikates/catalog/internal/core/layouts" // Register sheet layouts
	"github.com/kazandelikates/catalog/internal/export"
	"github.com/kazandelikates/catalog/internal/logging"
	"github.com/kazandelikates/catalog/internal/source"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	service *core.Service
	site    export.Site
	log     *slog.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// loadEnv overlays .env files onto the environment, as the server does.
// Missing files are not an error.
func loadEnv(filenames ...string) error {
	if err := godotenv.Overload(filenames...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var logLevel string

	root := &cobra.Command{
		Use:          "catalogctl",
		Short:        "Generate static catalog files from the published spreadsheet",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			envErr := loadEnv()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Logging.Level = logLevel
			}

			// Price lists may be written to stdout, so logs go to stderr.
			a.log = logging.New(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)
			slog.SetDefault(a.log)
			if envErr != nil {
				a.log.Warn("failed to load .env file", "error", envErr)
			}

			limiter := core.NewBuildLimiter(cfg.Catalog.MaxConcurrentBuilds, cfg.Catalog.BuildWait)
			a.service = core.NewService(source.NewHTTPFetcher(cfg.Source), core.WithBuildLimiter(limiter))
			a.site = export.Site{APIURL: cfg.Catalog.APIURL, SiteURL: cfg.Catalog.SiteURL}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")

	root.AddCommand(newSyncCmd(a), newPagesCmd(a), newExportCmd(a))
	return root
}

func newSyncCmd(a *app) *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Write products.json, llms-full.txt and sitemap.xml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := runSync(cmd.Context(), a.service, a.site, outDir)
			if err != nil {
				return err
			}
			for _, f := range files {
				a.log.Info("wrote", "file", f)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "public", "Output directory")
	return cmd
}

func newPagesCmd(a *app) *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "pages",
		Short: "Write RU and EN product detail pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := runPages(cmd.Context(), a.service, a.site, outDir)
			if err != nil {
				return err
			}
			a.log.Info("product pages written", "pages", n, "dir", outDir)
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "public", "Output directory")
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var (
		format, lang, currency, vat string
		outputPath                  string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a price list as csv, xlsx or xls",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			opts, err := export.ParseOptions(lang, currency, vat)
			if err != nil {
				return err
			}
			if outputPath == "" {
				outputPath = opts.Filename(f)
			}

			n, err := runExport(cmd.Context(), a.service, f, opts, outputPath, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			a.log.Info("price list written",
				"file", outputPath,
				"format", f,
				"currency", opts.Currency,
				"products", n,
			)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "xlsx", "Format: csv, xlsx or xls")
	cmd.Flags().StringVar(&lang, "lang", "ru", "Language: ru or en")
	cmd.Flags().StringVar(&currency, "currency", "", "Currency (default RUB for ru, USD for en)")
	cmd.Flags().StringVar(&vat, "vat", "true", `RUB prices include VAT unless "false"`)
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", `Output file, "-" for stdout (default: generated name)`)
	return cmd
}
