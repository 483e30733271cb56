// Package csvparser reads the CSV published by a spreadsheet into rows of
// fields.
//
// It is more forgiving than encoding/csv: it never fails, drops blank rows
// and accepts quotes opening in the middle of a field.
package csvparser

import (
	"strings"
)

const (
	quote     = '"'
	separator = ','
)

// Parse scans text once and returns its rows. A doubled quote inside a quoted
// field is a literal quote. Commas and line breaks (\n or \r\n) only split
// fields and rows outside quotes; a lone \r is kept as a regular character.
// Rows made only of blank fields are never returned. An unterminated quote
// swallows the rest of the input into the current field.
func Parse(text string) [][]string {
	rows := [][]string{}
	var row []string
	var cell strings.Builder
	insideQuotes := false
	flushRow := func() {
		row = append(row, cell.String())
		cell.Reset()
		if !isBlank(row) {
			rows = append(rows, row)
		}
		row = nil
	}
	for i := 0; i < len(text); i++ {
		c := text[i]
		var next byte
		if i+1 < len(text) {
			next = text[i+1]
		}
		if insideQuotes {
			if c == quote {
				if next == quote { // escaped quote
					cell.WriteByte(quote)
					i++
				} else {
					insideQuotes = false
				}
			} else {
				cell.WriteByte(c)
			}
			continue
		}
		switch {
		case c == quote:
			insideQuotes = true
		case c == separator:
			row = append(row, cell.String())
			cell.Reset()
		case c == '\n':
			flushRow()
		case c == '\r' && next == '\n':
			flushRow()
			i++
		default:
			cell.WriteByte(c)
		}
	}
	if cell.Len() > 0 || len(row) > 0 {
		flushRow()
	}
	return rows
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Quote returns field ready to be written in a CSV row. Fields holding
// separators, quotes, line breaks or surrounding spaces are wrapped in quotes
// with inner quotes doubled; anything else is returned as is.
func Quote(field string) string {
	if field == "" || (!strings.ContainsAny(field, "\",\r\n") && strings.TrimSpace(field) == field) {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// FormatRow joins fields into one CSV line, without the line break.
func FormatRow(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = Quote(f)
	}
	return strings.Join(quoted, ",")
}
