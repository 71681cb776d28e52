package export

import (
	"fmt"
	"io"
	"time"

	"github.com/kazandelikates/catalog/internal/core"
)

// WritePriceList renders products in format f.
func WritePriceList(w io.Writer, f Format, products []core.Product, o Options, now time.Time) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, products, o)
	case FormatXLSX:
		return WriteXLSX(w, products, o, now)
	case FormatXLS:
		return WriteSpreadsheetML(w, products, o, now)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}
