package export

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/kazandelikates/catalog/internal/core"
)

// Price list rows. The header follows the title, currency and blank rows.
const (
	titleRow  = 1
	infoRow   = 2
	headerRow = 4
)

// WriteXLSX writes an Office Open XML workbook with a styled header and
// numeric price cells.
func WriteXLSX(w io.Writer, products []core.Product, o Options, now time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := SheetName(o)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	if err != nil {
		return fmt.Errorf("create title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"1B7A3D"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Vertical: "center",
			WrapText: true,
		},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	numStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2}) // 0.00
	if err != nil {
		return fmt.Errorf("create number style: %w", err)
	}

	f.SetCellValue(sheet, cellName(1, titleRow), Title(o))
	f.SetCellStyle(sheet, cellName(1, titleRow), cellName(1, titleRow), titleStyle)
	f.SetCellValue(sheet, cellName(1, infoRow), currencyLine(o))
	f.SetCellValue(sheet, cellName(2, infoRow), dateLine(o, now.UTC().Format(time.DateOnly)))

	header := Header(o, true)
	for i, h := range header {
		f.SetCellValue(sheet, cellName(i+1, headerRow), h)
	}
	f.SetCellStyle(sheet, cellName(1, headerRow), cellName(len(header), headerRow), headerStyle)

	for r, p := range products {
		row := headerRow + 1 + r
		for c, cell := range Cells(p, o) {
			name := cellName(c+1, row)
			switch {
			case cell.Numeric && cell.Value != "":
				v, _ := cell.Number.Round(2).Float64()
				f.SetCellFloat(sheet, name, v, 2, 64)
				f.SetCellStyle(sheet, name, name, numStyle)
			case cell.Value != "":
				f.SetCellStr(sheet, name, cell.Value)
			}
		}
	}

	for i, width := range columnWidths(o) {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, width)
	}
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      headerRow,
		TopLeftCell: cellName(1, headerRow+1),
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func columnWidths(o Options) []float64 {
	widths := []float64{10, 45, 18, 24, 10, 16, 12, 12, 10, 14, 22, 14, 12, 10}
	if o.english() {
		widths = slices.Insert(widths, 2, 45) // Original (RU)
	}
	return widths
}
