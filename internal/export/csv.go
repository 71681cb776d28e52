package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/kazandelikates/catalog/internal/core"
)

// WriteCSV writes a semicolon-separated price list with a UTF-8 BOM so
// spreadsheet applications detect the encoding.
func WriteCSV(w io.Writer, products []core.Product, o Options) error {
	if _, err := io.WriteString(w, "\ufeff"); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}

	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write(Header(o, false)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	record := make([]string, 0, 15)
	for _, p := range products {
		record = record[:0]
		for _, c := range Cells(p, o) {
			record = append(record, c.Value)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write %s: %w", p.SKU, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
