package models

import "strings"

// Dataset is a payout report as read from the uploaded file.
// Cells are kept as the raw strings found in the file.
type Dataset struct {
	Columns []string   // Header row, in file order
	Rows    [][]string // Data rows, each padded to len(Columns)
}

// ColumnIndex returns the position of the named column, or -1 if absent.
func (d *Dataset) ColumnIndex(name string) int {
	for i, c := range d.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Len returns the number of data rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// missingTokens are the cell values read as "no value" (pandas' default NA set).
var missingTokens = map[string]struct{}{
	"#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {},
	"N/A": {}, "NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {},
	"nan": {}, "null": {},
}

// IsMissing reports whether a raw cell holds no value: blank, whitespace
// only, or one of the usual NA markers.
func IsMissing(cell string) bool {
	v := strings.TrimSpace(cell)
	if v == "" {
		return true
	}
	_, ok := missingTokens[v]
	return ok
}
