package tables

import (
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tsawler/layoutkit/model"
)

// Line grid constants.
const (
	// borderSpanRatio and borderEdgeDistance identify page borders: a ruling
	// spanning at least this share of the page and lying this close to an
	// edge is not part of a table grid.
	borderSpanRatio    = 0.9
	borderEdgeDistance = 5.0

	// maxBannerRunes bounds the text of a banner row.
	maxBannerRunes = 6

	// bannerAttachDelta is how far below a banner's top a segment must
	// start to receive the banner.
	bannerAttachDelta = 2.0
)

// LineDetector finds tables from drawn vector grids. Column boundaries come
// from clustered vertical rulings, row boundaries from clustered horizontal
// ones; cell text is collected from fragments inside each grid cell.
type LineDetector struct {
	config Config
}

// NewLineDetector creates a line table detector with default configuration.
func NewLineDetector() *LineDetector {
	return NewLineDetectorWithConfig(DefaultConfig())
}

// NewLineDetectorWithConfig creates a line table detector with the given configuration.
func NewLineDetectorWithConfig(config Config) *LineDetector {
	return &LineDetector{config: config}
}

// Name returns the detector's identifier ("line").
func (d *LineDetector) Name() string {
	return "line"
}

// Configure sets the detector configuration.
func (d *LineDetector) Configure(config Config) {
	d.config = config
}

// gridRow is one row of the cell matrix. index is the row's position in the
// full grid, used to look up its top boundary.
type gridRow struct {
	cells []string
	boxes []model.BBox
	index int
}

func (r gridRow) top() float64 {
	return r.boxes[0].Y2
}

func (r gridRow) bottom() float64 {
	return r.boxes[0].Y1
}

func (r gridRow) isEmpty() bool {
	for _, c := range r.cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// gridSegment is a run of grid rows sharing one header row
type gridSegment struct {
	rows    []gridRow
	header  int
	banners []model.Banner
}

// Detect returns the grid tables found on one page.
func (d *LineDetector) Detect(page Page) []*model.RawTable {
	cfg := d.config
	pw, ph := page.Geometry.Width, page.Geometry.Height
	if pw <= 0 || ph <= 0 {
		pw, ph = model.DefaultPageWidth, model.DefaultPageHeight
	}

	var vs, hs []float64
	for _, l := range page.Lines {
		switch {
		case l.IsVertical() && l.Length >= cfg.MinVerticalLength:
			if l.Length >= borderSpanRatio*ph && (l.X1 < borderEdgeDistance || pw-math.Max(l.X1, l.X2) < borderEdgeDistance) {
				continue
			}
			vs = append(vs, l.CenterX())
		case l.IsHorizontal() && l.Length >= cfg.MinHorizontalLength:
			if l.Length >= borderSpanRatio*pw && (l.Y1 < borderEdgeDistance || ph-math.Max(l.Y1, l.Y2) < borderEdgeDistance) {
				continue
			}
			hs = append(hs, l.CenterY())
		}
	}
	if len(vs) < cfg.MinCols+1 || len(hs) < cfg.MinRows+1 {
		return nil
	}

	vx := clusterCenters(vs, cfg.LineXTolerance)
	hy := clusterCenters(hs, cfg.LineYTolerance)
	sort.Sort(sort.Reverse(sort.Float64Slice(hy)))
	// a grid needs two boundaries per axis whatever the minimums say
	if len(vx) < 2 || len(hy) < 2 || len(vx) < cfg.MinCols+1 || len(hy) < cfg.MinRows+1 {
		return nil
	}

	rows, filled := d.buildGrid(page, vx, hy)
	total := len(rows) * (len(vx) - 1)
	gridArea := (vx[len(vx)-1] - vx[0]) * (hy[0] - hy[len(hy)-1])
	if float64(filled) < cfg.MinFilledCellsRatio*float64(total) && gridArea > cfg.MaxPageAreaRatio*pw*ph {
		return nil
	}

	if cfg.StripEmptyRows {
		rows = stripEmptyRows(rows)
	}
	if len(rows) < 2 {
		return nil
	}

	rows, banners := extractBanners(rows, page.Geometry.Page)
	if len(rows) < 2 {
		return nil
	}

	headerIdx := -1
	for i, r := range rows {
		if !r.isEmpty() {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil
	}

	segments := splitByRepeatedHeader(rows, headerIdx)
	attachBanners(segments, banners)

	var tables []*model.RawTable
	for _, seg := range segments {
		if t := d.segmentTable(seg, vx, hy, page.Geometry.Page); t != nil {
			tables = append(tables, t)
		}
	}
	return tables
}

// buildGrid collects the text of every cell and counts the filled ones.
func (d *LineDetector) buildGrid(page Page, vx, hy []float64) ([]gridRow, int) {
	filled := 0
	rows := make([]gridRow, 0, len(hy)-1)
	for r := 0; r < len(hy)-1; r++ {
		row := gridRow{index: r}
		for c := 0; c < len(vx)-1; c++ {
			box := model.BBox{X1: vx[c], Y1: hy[r+1], X2: vx[c+1], Y2: hy[r]}
			txt := collectCellText(page.Fragments, box, d.config.CellCharGapFactor)
			if strings.TrimSpace(txt) != "" {
				filled++
			}
			row.cells = append(row.cells, txt)
			row.boxes = append(row.boxes, box)
		}
		rows = append(rows, row)
	}
	return rows, filled
}

// stripEmptyRows drops rows without text. A grid with no text at all is
// returned unchanged.
func stripEmptyRows(rows []gridRow) []gridRow {
	var out []gridRow
	for _, r := range rows {
		if !r.isEmpty() {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return rows
	}
	return out
}

// isBannerText reports whether s is a short all-uppercase label.
func isBannerText(s string) bool {
	if s == "" || utf8.RuneCountInString(s) > maxBannerRunes {
		return false
	}
	for _, r := range s {
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

// extractBanners removes rows holding a single short uppercase label and
// returns them as banners.
func extractBanners(rows []gridRow, page int) ([]gridRow, []model.Banner) {
	var kept []gridRow
	var banners []model.Banner
	for _, r := range rows {
		only := -1
		count := 0
		for ci, c := range r.cells {
			if strings.TrimSpace(c) != "" {
				only = ci
				count++
			}
		}
		if count == 1 {
			txt := strings.TrimSpace(r.cells[only])
			if isBannerText(txt) {
				banners = append(banners, model.Banner{Page: page, Text: txt, BBox: r.boxes[only]})
				continue
			}
		}
		kept = append(kept, r)
	}
	return kept, banners
}

func sameRow(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if strings.TrimSpace(a[i]) != strings.TrimSpace(b[i]) {
			return false
		}
	}
	return true
}

// splitByRepeatedHeader starts a new segment at every later row equal to
// the header row. Without repeats the whole grid is one segment.
func splitByRepeatedHeader(rows []gridRow, headerIdx int) []gridSegment {
	starts := []int{headerIdx}
	for i := headerIdx + 1; i < len(rows); i++ {
		if sameRow(rows[headerIdx].cells, rows[i].cells) {
			starts = append(starts, i)
		}
	}
	if len(starts) == 1 {
		return []gridSegment{{rows: rows, header: headerIdx}}
	}
	segments := make([]gridSegment, 0, len(starts))
	for s, start := range starts {
		end := len(rows)
		if s+1 < len(starts) {
			end = starts[s+1]
		}
		segments = append(segments, gridSegment{rows: rows[start:end], header: 0})
	}
	return segments
}

func (s gridSegment) top() float64 {
	top := math.Inf(-1)
	for _, r := range s.rows {
		top = math.Max(top, r.top())
	}
	return top
}

func (s gridSegment) bottom() float64 {
	bottom := math.Inf(1)
	for _, r := range s.rows {
		bottom = math.Min(bottom, r.bottom())
	}
	return bottom
}

// attachBanners gives each banner to the first segment starting clearly
// below it, else to the segment with the smallest non-negative gap, else
// to the last segment.
func attachBanners(segments []gridSegment, banners []model.Banner) {
	if len(segments) == 0 {
		return
	}
	tops := make([]float64, len(segments))
	for i, s := range segments {
		tops[i] = s.top()
	}
	for _, b := range banners {
		target := -1
		for i, top := range tops {
			if top < b.BBox.Y2-bannerAttachDelta {
				target = i
				break
			}
		}
		if target < 0 {
			bestDiff := math.Inf(1)
			for i, top := range tops {
				diff := b.BBox.Y2 - top
				if diff >= 0 && diff < bestDiff {
					target, bestDiff = i, diff
				}
			}
		}
		if target < 0 {
			target = len(segments) - 1
		}
		segments[target].banners = append(segments[target].banners, b)
	}
}

// segmentTable turns a segment into a table. Segments without data rows
// yield nil.
func (d *LineDetector) segmentTable(seg gridSegment, vx, hy []float64, page int) *model.RawTable {
	if len(seg.rows) < 2 || seg.header+1 >= len(seg.rows) {
		return nil
	}
	headerRow := seg.rows[seg.header]
	data := seg.rows[seg.header+1:]

	headers := model.UniqueHeaders(headerRow.cells)
	matrix := make([][]string, 0, len(data)+1)
	matrix = append(matrix, append([]string(nil), headerRow.cells...))
	for _, r := range data {
		matrix = append(matrix, append([]string(nil), r.cells...))
	}

	t := &model.RawTable{
		Page:    page,
		Headers: headers,
		Matrix:  matrix,
		Origin:  model.OriginLine,
		BBox: model.BBox{
			X1: vx[0],
			Y1: seg.bottom(),
			X2: vx[len(vx)-1],
			Y2: seg.top(),
		},
		Banners: seg.banners,
	}
	t.RebuildRows(d.config.DisableCasting)

	t.ColumnCenters = make([]float64, len(vx)-1)
	for i := range t.ColumnCenters {
		t.ColumnCenters[i] = (vx[i] + vx[i+1]) / 2
	}
	for _, r := range seg.rows {
		t.RowBaselines = append(t.RowBaselines, hy[r.index])
	}

	t.Cells = make([][]model.Cell, 0, len(data)+1)
	hdr := make([]model.Cell, len(headerRow.cells))
	for ci, txt := range headerRow.cells {
		box := headerRow.boxes[ci]
		hdr[ci] = model.Cell{RowType: model.RowTypeHeader, Row: -1, Col: ci, HeaderName: headers[ci], Text: txt, BBox: &box}
	}
	t.Cells = append(t.Cells, hdr)
	for ri, r := range data {
		rc := make([]model.Cell, len(r.cells))
		for ci, txt := range r.cells {
			box := r.boxes[ci]
			rc[ci] = model.Cell{RowType: model.RowTypeData, Row: ri, Col: ci, HeaderName: headers[ci], Text: txt, BBox: &box}
		}
		t.Cells = append(t.Cells, rc)
	}
	return t
}
