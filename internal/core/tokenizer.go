package core

import "strings"

// Tokenize splits published sheet text into rows of trimmed cells.
//
// Quoted fields may contain commas and newlines; a doubled quote inside a
// quoted field is a literal quote. Tokenizing never fails: an unterminated
// quote keeps the rest of the input inside the current cell. Blank lines
// become rows of empty strings and are left for the classifier to drop.
func Tokenize(text string) []Row {
	var (
		rows     []Row
		row      Row
		cell     strings.Builder
		inQuotes bool
	)

	flushCell := func() {
		row = append(row, strings.TrimSpace(cell.String()))
		cell.Reset()
	}

	for i := 0; i < len(text); i++ {
		ch := text[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(text) && text[i+1] == '"' {
				cell.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			flushCell()
		case ch == '\n' && !inQuotes:
			flushCell()
			rows = append(rows, row)
			row = nil
		default:
			cell.WriteByte(ch)
		}
	}

	if cell.Len() > 0 {
		flushCell()
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	return rows
}
