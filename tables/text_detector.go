package tables

import (
	"math"
	"sort"
	"strings"

	"github.com/tsawler/layoutkit/model"
)

// Text table geometry constants.
const (
	// rowItemMergeFactor times the font size is the largest gap bridged when
	// rejoining split glyph runs within a row.
	rowItemMergeFactor = 0.6

	// textTableXPadding widens the bbox beyond the outer column centers.
	textTableXPadding = 3.0

	// textRowHeightFactor converts the average font size into a row height.
	textRowHeightFactor = 1.2

	// textTableTopPad and textTableBottomPad scale the row height added
	// above the first baseline and below the last one.
	textTableTopPad    = 1.0
	textTableBottomPad = 0.4

	defaultFontSize = 12.0
)

// TextDetector finds tables from column-aligned text alone. Rows are built
// by y proximity, columns by clustering item x positions across the page.
type TextDetector struct {
	config Config
}

// NewTextDetector creates a text table detector with default configuration.
func NewTextDetector() *TextDetector {
	return NewTextDetectorWithConfig(DefaultConfig())
}

// NewTextDetectorWithConfig creates a text table detector with the given configuration.
func NewTextDetectorWithConfig(config Config) *TextDetector {
	return &TextDetector{config: config}
}

// Name returns the detector's identifier ("text").
func (d *TextDetector) Name() string {
	return "text"
}

// Configure sets the detector configuration.
func (d *TextDetector) Configure(config Config) {
	d.config = config
}

// rowItem is a run of text inside a text row
type rowItem struct {
	text  string
	x     float64
	width float64
	size  float64
}

// textRow is a group of fragments sharing a baseline
type textRow struct {
	y     float64
	items []rowItem
}

// Detect returns the text tables found on one page.
func (d *TextDetector) Detect(page Page) []*model.RawTable {
	rows := d.groupRows(page.Fragments)
	if len(rows) == 0 {
		return nil
	}

	var xs []float64
	for _, r := range rows {
		for _, it := range r.items {
			xs = append(xs, it.x)
		}
	}
	clusters := mergeAdjacent(clusterValues(xs, d.config.XTolerance), d.config.ColMergeTolerance, d.config.MaxMergeSpan)
	centers := make([]float64, len(clusters))
	for i, c := range clusters {
		centers[i] = c.avg
	}
	sort.Float64s(centers)

	var tables []*model.RawTable
	for _, block := range d.candidateBlocks(rows, centers) {
		if t := d.buildTable(block, centers, page.Geometry.Page); t != nil {
			tables = append(tables, t)
		}
	}
	return tables
}

// groupRows clusters non-blank fragments into rows by baseline proximity.
func (d *TextDetector) groupRows(frags []model.TextFragment) []textRow {
	sorted := make([]model.TextFragment, 0, len(frags))
	for _, f := range frags {
		if strings.TrimSpace(f.Text) != "" {
			sorted = append(sorted, f)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var rows []textRow
	for _, f := range sorted {
		item := rowItem{text: f.Text, x: f.X, width: f.Width, size: f.FontSize}
		placed := false
		for i := range rows {
			if math.Abs(rows[i].y-f.Y) <= d.config.YTolerance {
				rows[i].items = append(rows[i].items, item)
				rows[i].y = (rows[i].y + f.Y) / 2
				placed = true
				break
			}
		}
		if !placed {
			rows = append(rows, textRow{y: f.Y, items: []rowItem{item}})
		}
	}

	for i := range rows {
		items := rows[i].items
		sort.SliceStable(items, func(a, b int) bool { return items[a].x < items[b].x })
		rows[i].items = mergeRowItems(items)
	}
	return rows
}

// mergeRowItems rejoins adjacent items separated by less than a fraction
// of the font size.
func mergeRowItems(items []rowItem) []rowItem {
	if len(items) == 0 {
		return items
	}
	out := make([]rowItem, 0, len(items))
	buf := items[0]
	for _, it := range items[1:] {
		gap := it.x - (buf.x + buf.width)
		if gap <= math.Max(1.0, buf.size*rowItemMergeFactor) {
			buf.text += it.text
			buf.width += it.width + gap
			continue
		}
		out = append(out, buf)
		buf = it
	}
	return append(out, buf)
}

// candidateBlocks returns maximal runs of at least two consecutive rows
// that touch two or more column clusters.
func (d *TextDetector) candidateBlocks(rows []textRow, centers []float64) [][]textRow {
	var blocks [][]textRow
	var cur []textRow
	for _, r := range rows {
		if d.columnsUsed(r, centers) >= 2 {
			cur = append(cur, r)
			continue
		}
		if len(cur) >= 2 {
			blocks = append(blocks, cur)
		}
		cur = nil
	}
	if len(cur) >= 2 {
		blocks = append(blocks, cur)
	}
	return blocks
}

func (d *TextDetector) columnsUsed(r textRow, centers []float64) int {
	used := make(map[int]bool)
	for _, it := range r.items {
		if ci := nearestCluster(it.x, centers, d.config.XTolerance); ci >= 0 {
			used[ci] = true
		}
	}
	return len(used)
}

// buildTable lays a block of rows over the column clusters. Clusters that
// never receive text are dropped; fewer than two surviving columns yields nil.
func (d *TextDetector) buildTable(block []textRow, centers []float64, page int) *model.RawTable {
	matrix := make([][]string, len(block))
	usage := make([]int, len(centers))
	for ri, r := range block {
		line := make([]string, len(centers))
		for _, it := range r.items {
			ci := nearestCluster(it.x, centers, d.config.XTolerance)
			if ci < 0 {
				continue
			}
			if line[ci] == "" {
				line[ci] = it.text
			} else {
				line[ci] += " " + it.text
			}
		}
		for ci, v := range line {
			if v != "" {
				usage[ci]++
			}
		}
		matrix[ri] = line
	}

	var keep []int
	for ci, n := range usage {
		if n > 0 {
			keep = append(keep, ci)
		}
	}
	if len(keep) < 2 {
		return nil
	}

	final := make([][]string, len(matrix))
	for ri, row := range matrix {
		out := make([]string, len(keep))
		for k, ci := range keep {
			out[k] = strings.TrimSpace(row[ci])
		}
		final[ri] = out
	}

	t := &model.RawTable{
		Page:    page,
		Headers: model.UniqueHeaders(final[0]),
		Matrix:  final,
		Origin:  model.OriginText,
	}
	t.RebuildRows(d.config.DisableCasting)

	t.ColumnCenters = make([]float64, len(keep))
	for k, ci := range keep {
		t.ColumnCenters[k] = centers[ci]
	}
	t.RowBaselines = make([]float64, len(block))
	for i, r := range block {
		t.RowBaselines[i] = r.y
	}

	var sizeSum float64
	var count int
	for _, r := range block {
		for _, it := range r.items {
			sizeSum += it.size
			count++
		}
	}
	fs := defaultFontSize
	if count > 0 && sizeSum > 0 {
		fs = sizeSum / float64(count)
	}
	rowH := fs * textRowHeightFactor

	t.BBox = model.BBox{
		X1: minOf(t.ColumnCenters) - textTableXPadding,
		Y1: minOf(t.RowBaselines) - rowH*textTableBottomPad,
		X2: maxOf(t.ColumnCenters) + textTableXPadding,
		Y2: maxOf(t.RowBaselines) + rowH*textTableTopPad,
	}
	return t
}

func minOf(vs []float64) float64 {
	m := math.Inf(1)
	for _, v := range vs {
		m = math.Min(m, v)
	}
	return m
}

func maxOf(vs []float64) float64 {
	m := math.Inf(-1)
	for _, v := range vs {
		m = math.Max(m, v)
	}
	return m
}
