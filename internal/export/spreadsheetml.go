package export

import (
	"bufio"
	"encoding/xml"
	"io"
	"strings"
	"time"

	"github.com/kazandelikates/catalog/internal/core"
)

const spreadsheetMLHead = `<?xml version="1.0" encoding="UTF-8"?>
<?mso-application progid="Excel.Sheet"?>
<Workbook xmlns="urn:schemas-microsoft-com:office:spreadsheet"
 xmlns:ss="urn:schemas-microsoft-com:office:spreadsheet">
<Styles>
 <Style ss:ID="header"><Font ss:Bold="1" ss:Size="11" ss:Color="#FFFFFF"/><Interior ss:Color="#1B7A3D" ss:Pattern="Solid"/></Style>
 <Style ss:ID="num"><NumberFormat ss:Format="0.00"/></Style>
 <Style ss:ID="title"><Font ss:Bold="1" ss:Size="14"/></Style>
</Styles>
`

// WriteSpreadsheetML writes an Excel 2003 XML workbook, served as .xls for
// clients that cannot open Office Open XML.
func WriteSpreadsheetML(w io.Writer, products []core.Product, o Options, now time.Time) error {
	bw := bufio.NewWriter(w)
	x := &xmlWriter{w: bw}

	x.raw(spreadsheetMLHead)
	x.raw(`<Worksheet ss:Name="`)
	x.escape(SheetName(o))
	x.raw("\">\n<Table>\n")

	x.raw(`<Row>`)
	x.stringCell(Title(o), "title")
	x.raw("</Row>\n<Row>")
	x.stringCell(currencyLine(o), "")
	x.stringCell(dateLine(o, now.UTC().Format(time.DateOnly)), "")
	x.raw("</Row>\n<Row></Row>\n<Row>")
	for _, h := range Header(o, true) {
		x.stringCell(h, "header")
	}
	x.raw("</Row>\n")

	for _, p := range products {
		x.raw("<Row>")
		for _, c := range Cells(p, o) {
			if c.Numeric && c.Value != "" {
				x.raw(`<Cell ss:StyleID="num"><Data ss:Type="Number">`)
				x.raw(c.Value)
				x.raw(`</Data></Cell>`)
				continue
			}
			x.stringCell(c.Value, "")
		}
		x.raw("</Row>\n")
	}

	x.raw("</Table>\n</Worksheet>\n</Workbook>")
	if x.err != nil {
		return x.err
	}
	return bw.Flush()
}

// xmlWriter keeps the first write error so the document can be emitted
// without checking every call.
type xmlWriter struct {
	w   *bufio.Writer
	err error
}

func (x *xmlWriter) raw(s string) {
	if x.err == nil {
		_, x.err = x.w.WriteString(s)
	}
}

func (x *xmlWriter) escape(s string) {
	if x.err == nil {
		x.err = xml.EscapeText(x.w, []byte(s))
	}
}

func (x *xmlWriter) stringCell(v, style string) {
	var b strings.Builder
	b.WriteString("<Cell")
	if style != "" {
		b.WriteString(` ss:StyleID="` + style + `"`)
	}
	b.WriteString(`><Data ss:Type="String">`)
	x.raw(b.String())
	x.escape(v)
	x.raw("</Data></Cell>")
}
