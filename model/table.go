package model

import (
	"strconv"
	"strings"
)

// Origin records which detector produced a table
type Origin string

const (
	OriginText Origin = "text"
	OriginLine Origin = "line"
)

// RowType distinguishes header cells from data cells
type RowType string

const (
	RowTypeHeader RowType = "header"
	RowTypeData   RowType = "data"
)

// Cell is the per-cell detail recorded for grid tables. Row is the data row
// index and is -1 for header cells.
type Cell struct {
	RowType    RowType `json:"row_type"`
	Row        int     `json:"row"`
	Col        int     `json:"col"`
	HeaderName string  `json:"header_name"`
	Text       string  `json:"text"`
	BBox       *BBox   `json:"bbox,omitempty"`
}

// Banner is a short uppercase label row lifted out of a grid table.
type Banner struct {
	Page int    `json:"page"`
	Text string `json:"text"`
	BBox BBox   `json:"bbox"`
}

// RawTable is a detected table as it moves through the detection and
// normalization stages. Matrix holds the header row followed by the data
// rows as plain strings; Rows holds the same data rows cast to values.
type RawTable struct {
	Page          int
	Headers       []string
	Matrix        [][]string
	Rows          []Row
	ColumnCenters []float64
	RowBaselines  []float64
	BBox          BBox
	Origin        Origin
	Cells         [][]Cell
	Banners       []Banner
}

// ColCount returns the number of columns
func (t *RawTable) ColCount() int {
	return len(t.Headers)
}

// IsEmpty reports whether the table has no columns left
func (t *RawTable) IsEmpty() bool {
	return len(t.Headers) == 0
}

// DataRows returns the matrix without its header row
func (t *RawTable) DataRows() [][]string {
	if len(t.Matrix) <= 1 {
		return nil
	}
	return t.Matrix[1:]
}

// Clone returns a deep copy that shares no slices with t.
func (t *RawTable) Clone() *RawTable {
	out := &RawTable{
		Page:   t.Page,
		BBox:   t.BBox,
		Origin: t.Origin,
	}
	out.Headers = append([]string(nil), t.Headers...)
	out.ColumnCenters = append([]float64(nil), t.ColumnCenters...)
	out.RowBaselines = append([]float64(nil), t.RowBaselines...)
	if t.Matrix != nil {
		out.Matrix = make([][]string, len(t.Matrix))
		for i, r := range t.Matrix {
			out.Matrix[i] = append(make([]string, 0, len(r)), r...)
		}
	}
	if t.Rows != nil {
		out.Rows = make([]Row, len(t.Rows))
		for i, r := range t.Rows {
			out.Rows[i] = r.Clone()
		}
	}
	if t.Cells != nil {
		out.Cells = make([][]Cell, len(t.Cells))
		for i, r := range t.Cells {
			out.Cells[i] = make([]Cell, len(r))
			for j, c := range r {
				if c.BBox != nil {
					b := *c.BBox
					c.BBox = &b
				}
				out.Cells[i][j] = c
			}
		}
	}
	out.Banners = append([]Banner(nil), t.Banners...)
	return out
}

// RebuildRows recasts Rows from the data rows of Matrix.
func (t *RawTable) RebuildRows(disableCasting bool) {
	data := t.DataRows()
	t.Rows = make([]Row, 0, len(data))
	for _, cells := range data {
		t.Rows = append(t.Rows, NewRow(t.Headers, cells, disableCasting))
	}
}

// UniqueHeaders trims names, replaces blanks with col_N (N is the 1-based
// column position) and suffixes repeats with _2, _3 and so on.
func UniqueHeaders(names []string) []string {
	out := make([]string, len(names))
	used := make(map[string]bool, len(names))
	for i, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			n = "col_" + strconv.Itoa(i+1)
		}
		out[i] = UniqueName(n, used)
	}
	return out
}

// UniqueName returns name, or the first free name_K for K >= 2, and marks
// the result as used.
func UniqueName(name string, used map[string]bool) string {
	base := name
	for k := 2; used[name]; k++ {
		name = base + "_" + strconv.Itoa(k)
	}
	used[name] = true
	return name
}
