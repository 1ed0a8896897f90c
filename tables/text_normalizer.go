package tables

import (
	"strings"

	"github.com/tsawler/layoutkit/model"
)

// NormalizeTextTables prunes columns that never hold a value from text
// tables and repairs headers shifted one column to the right. Line tables
// pass through unchanged. Nothing happens when TextTableNormalize is off.
func NormalizeTextTables(tables []*model.RawTable, config Config) []*model.RawTable {
	out := make([]*model.RawTable, len(tables))
	for i, t := range tables {
		if !config.TextTableNormalize || t.Origin != model.OriginText {
			out[i] = t.Clone()
			continue
		}
		out[i] = normalizeTextTable(t, config.DisableCasting)
	}
	return out
}

func normalizeTextTable(t *model.RawTable, disableCasting bool) *model.RawTable {
	out := t.Clone()
	if len(out.Matrix) < 2 || len(out.Matrix[0]) == 0 {
		return out
	}
	headerRow := out.Matrix[0]
	data := out.DataRows()
	colCount := len(headerRow)

	counts := make([]int, colCount)
	for c := 0; c < colCount; c++ {
		for _, row := range data {
			if c < len(row) && !blank(row[c]) {
				counts[c]++
			}
		}
	}
	var keep []int
	for c, n := range counts {
		if n > 0 {
			keep = append(keep, c)
		}
	}
	if len(keep) == 0 {
		return out
	}

	used := make(map[string]bool, len(keep))
	next := 'a'
	headers := make([]string, len(keep))
	for k, c := range keep {
		h := strings.TrimSpace(headerRow[c])
		if h == "" && c+1 < colCount && counts[c+1] == 0 {
			// the header drifted over the empty column to the right
			h = strings.TrimSpace(headerRow[c+1])
		}
		if h == "" {
			for {
				h = string(next)
				next++
				if !used[h] {
					break
				}
			}
		}
		headers[k] = model.UniqueName(h, used)
	}

	matrix := make([][]string, 0, len(data)+1)
	matrix = append(matrix, headers)
	for _, row := range data {
		nr := make([]string, len(keep))
		for k, c := range keep {
			if c < len(row) {
				nr[k] = row[c]
			}
		}
		matrix = append(matrix, nr)
	}

	out.Headers = append([]string(nil), headers...)
	out.Matrix = matrix
	out.RebuildRows(disableCasting)
	if len(t.ColumnCenters) > 0 {
		out.ColumnCenters = make([]float64, len(keep))
		for k, c := range keep {
			if c < len(t.ColumnCenters) {
				out.ColumnCenters[k] = t.ColumnCenters[c]
			}
		}
	}
	return out
}
