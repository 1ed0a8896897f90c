package tables

import (
	"strings"

	"github.com/tsawler/layoutkit/model"
)

// column is one column of a table under structural repair. orig is the
// column's index in the input table.
type column struct {
	header string
	values []string
	orig   int
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// isPlaceholderHeader reports whether h is blank or a synthesized col_N name.
func isPlaceholderHeader(h string) bool {
	h = strings.TrimSpace(h)
	if h == "" {
		return true
	}
	if !strings.HasPrefix(h, "col_") {
		return false
	}
	return isDigits(h[len("col_"):])
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// disjoint reports whether no row has text in both columns.
func disjoint(a, b column) bool {
	for r := range a.values {
		if !blank(a.values[r]) && !blank(b.values[r]) {
			return false
		}
	}
	return true
}

// fillEmpty copies src values into the empty cells of dst.
func fillEmpty(dst, src *column) {
	for r := range dst.values {
		if blank(dst.values[r]) {
			dst.values[r] = src.values[r]
		}
	}
}

func removeColumn(cols []column, i int) []column {
	return append(cols[:i], cols[i+1:]...)
}

// rewriteOnce applies the first applicable adjacent-column rewrite and
// reports whether anything changed. Every rewrite removes one column.
func rewriteOnce(cols []column) ([]column, bool) {
	// placeholder bleeding into its right neighbor
	for i := 0; i+1 < len(cols); i++ {
		a, b := cols[i], cols[i+1]
		if isPlaceholderHeader(a.header) && !isPlaceholderHeader(b.header) && disjoint(a, b) {
			fillEmpty(&cols[i+1], &cols[i])
			return removeColumn(cols, i), true
		}
	}
	// placeholder bleeding into its left neighbor
	for i := 0; i+1 < len(cols); i++ {
		a, b := cols[i], cols[i+1]
		if !isPlaceholderHeader(a.header) && isPlaceholderHeader(b.header) && disjoint(a, b) {
			fillEmpty(&cols[i], &cols[i+1])
			return removeColumn(cols, i+1), true
		}
	}
	// adjacent columns sharing a name
	for i := 0; i+1 < len(cols); i++ {
		ha := strings.TrimSpace(cols[i].header)
		if ha != "" && ha == strings.TrimSpace(cols[i+1].header) {
			fillEmpty(&cols[i], &cols[i+1])
			return removeColumn(cols, i+1), true
		}
	}
	return cols, false
}

// NormalizeStructure repairs column-splitting artifacts: placeholder columns
// whose values bled out of a named neighbor, split duplicate headers and
// empty dedup-suffixed columns. The input is not modified. Running it on its
// own output changes nothing.
func NormalizeStructure(t *model.RawTable, config Config) *model.RawTable {
	out := t.Clone()
	if len(out.Headers) == 0 || len(out.Matrix) == 0 {
		return out
	}

	data := out.DataRows()
	cols := make([]column, len(out.Headers))
	for c, h := range out.Headers {
		vals := make([]string, len(data))
		for r, row := range data {
			if c < len(row) {
				vals[r] = row[c]
			}
		}
		cols[c] = column{header: h, values: vals, orig: c}
	}

	for pass := 0; pass <= len(out.Headers); pass++ {
		var changed bool
		if cols, changed = rewriteOnce(cols); !changed {
			break
		}
	}

	cols = collapseDuplicates(cols)
	cols = absorbPlaceholders(cols)
	if len(cols) == 0 {
		return emptyTable(out)
	}
	cols = dropEmptySuffixed(cols)

	rebuild(out, t, cols, config.DisableCasting)
	return out
}

// NormalizeStructureAll normalizes every table that has headers.
func NormalizeStructureAll(tables []*model.RawTable, config Config) []*model.RawTable {
	out := make([]*model.RawTable, len(tables))
	for i, t := range tables {
		out[i] = NormalizeStructure(t, config)
	}
	return out
}

// collapseDuplicates merges every later column named like an earlier named
// column into the first one.
func collapseDuplicates(cols []column) []column {
	first := make(map[string]int)
	out := make([]column, 0, len(cols))
	for _, c := range cols {
		h := strings.TrimSpace(c.header)
		if isPlaceholderHeader(h) {
			out = append(out, c)
			continue
		}
		if idx, ok := first[h]; ok {
			fillEmpty(&out[idx], &c)
			continue
		}
		first[h] = len(out)
		out = append(out, c)
	}
	return out
}

// absorbPlaceholders moves placeholder values into the empty cells of the
// nearest later named column, then drops every placeholder.
func absorbPlaceholders(cols []column) []column {
	for i := range cols {
		if !isPlaceholderHeader(cols[i].header) {
			continue
		}
		target := -1
		for j := i + 1; j < len(cols); j++ {
			if !isPlaceholderHeader(cols[j].header) {
				target = j
				break
			}
		}
		if target < 0 {
			continue
		}
		src, dst := &cols[i], &cols[target]
		for r := range src.values {
			if !blank(src.values[r]) && blank(dst.values[r]) {
				dst.values[r] = src.values[r]
				src.values[r] = ""
			}
		}
	}
	out := cols[:0]
	for _, c := range cols {
		if !isPlaceholderHeader(c.header) {
			out = append(out, c)
		}
	}
	return out
}

// suffixBase splits "name_12" into "name"; ok is false without a numeric suffix.
func suffixBase(h string) (string, bool) {
	i := strings.LastIndexByte(h, '_')
	if i < 0 || !isDigits(h[i+1:]) {
		return "", false
	}
	return h[:i], true
}

// dropEmptySuffixed drops base_N columns without any value when a column
// named base exists.
func dropEmptySuffixed(cols []column) []column {
	names := make(map[string]bool, len(cols))
	for _, c := range cols {
		names[c.header] = true
	}
	out := make([]column, 0, len(cols))
	for _, c := range cols {
		if base, ok := suffixBase(c.header); ok && names[base] && allBlank(c.values) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func allBlank(vals []string) bool {
	for _, v := range vals {
		if !blank(v) {
			return false
		}
	}
	return true
}

// emptyTable turns t into a placeholder table without columns.
func emptyTable(t *model.RawTable) *model.RawTable {
	t.Headers = nil
	t.Rows = nil
	t.Matrix = [][]string{{}}
	t.ColumnCenters = nil
	t.Cells = nil
	return t
}

// rebuild rewrites headers, matrix, rows, centers and cells of out from
// cols. src is the table before normalization and supplies centers and
// cell boxes by original column index.
func rebuild(out, src *model.RawTable, cols []column, disableCasting bool) {
	identity := len(cols) == len(src.Headers)
	for i, c := range cols {
		if c.orig != i {
			identity = false
		}
	}

	out.Headers = make([]string, len(cols))
	for i, c := range cols {
		out.Headers[i] = c.header
	}
	rowCount := 0
	if len(cols) > 0 {
		rowCount = len(cols[0].values)
	}
	out.Matrix = make([][]string, 0, rowCount+1)
	out.Matrix = append(out.Matrix, append([]string(nil), out.Headers...))
	for r := 0; r < rowCount; r++ {
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = c.values[r]
		}
		out.Matrix = append(out.Matrix, row)
	}
	out.RebuildRows(disableCasting)

	if len(src.ColumnCenters) > 0 {
		out.ColumnCenters = make([]float64, len(cols))
		for i, c := range cols {
			if c.orig < len(src.ColumnCenters) {
				out.ColumnCenters[i] = src.ColumnCenters[c.orig]
			}
		}
	}

	if len(src.Cells) > 0 && !identity {
		out.Cells = rebuildCells(src.Cells, out.Headers, out.DataRows(), cols)
	}
}

// rebuildCells regenerates cell detail for the surviving columns, keeping
// the boxes of the original cells.
func rebuildCells(orig [][]model.Cell, headers []string, data [][]string, cols []column) [][]model.Cell {
	boxAt := func(row, col int) *model.BBox {
		if row < len(orig) && col < len(orig[row]) && orig[row][col].BBox != nil {
			b := *orig[row][col].BBox
			return &b
		}
		return nil
	}

	cells := make([][]model.Cell, 0, len(data)+1)
	hdr := make([]model.Cell, len(cols))
	for i, c := range cols {
		hdr[i] = model.Cell{RowType: model.RowTypeHeader, Row: -1, Col: i, HeaderName: headers[i], Text: headers[i], BBox: boxAt(0, c.orig)}
	}
	cells = append(cells, hdr)
	for r, row := range data {
		rc := make([]model.Cell, len(cols))
		for i, c := range cols {
			rc[i] = model.Cell{RowType: model.RowTypeData, Row: r, Col: i, HeaderName: headers[i], Text: row[i], BBox: boxAt(r+1, c.orig)}
		}
		cells = append(cells, rc)
	}
	return cells
}
