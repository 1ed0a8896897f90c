package tables

import (
	"testing"

	"github.com/tsawler/layoutkit/model"
)

func TestLineDetector_Name(t *testing.T) {
	if name := NewLineDetector().Name(); name != "line" {
		t.Errorf("Name() = %q, want 'line'", name)
	}
}

func itemGridPage() Page {
	return Page{
		Geometry: model.DefaultPageGeometry(1),
		Lines:    gridLines([]float64{100, 200, 300, 400}, []float64{700, 670, 640, 610}),
		Fragments: []model.TextFragment{
			frag("Item", 110, 680, 20),
			frag("Qty", 210, 680, 15),
			frag("Price", 310, 680, 25),
			frag("Apple", 110, 650, 25),
			frag("3", 210, 650, 5),
			frag("1,50", 310, 650, 20),
			frag("Pear", 110, 620, 20),
			frag("10", 210, 620, 10),
			frag("2.25", 310, 620, 20),
		},
	}
}

func TestLineDetector_Detect_Grid(t *testing.T) {
	tables := NewLineDetector().Detect(itemGridPage())
	if len(tables) != 1 {
		t.Fatalf("Detect() found %d tables, want 1", len(tables))
	}
	tbl := tables[0]

	if tbl.Origin != model.OriginLine {
		t.Errorf("Origin = %q, want line", tbl.Origin)
	}
	if !equalStrings(tbl.Headers, []string{"Item", "Qty", "Price"}) {
		t.Errorf("Headers = %v, want [Item Qty Price]", tbl.Headers)
	}
	if len(tbl.Rows) != 2 {
		t.Fatalf("len(Rows) = %d, want 2", len(tbl.Rows))
	}
	if v, _ := tbl.Rows[1].Get("Qty"); v.Kind != model.KindInt || v.Int != 10 {
		t.Errorf("Rows[1][Qty] = %+v, want int 10", v)
	}
	want := model.BBox{X1: 100, Y1: 610, X2: 400, Y2: 700}
	if tbl.BBox != want {
		t.Errorf("BBox = %+v, want %+v", tbl.BBox, want)
	}
	if len(tbl.ColumnCenters) != 3 || tbl.ColumnCenters[0] != 150 {
		t.Errorf("ColumnCenters = %v, want [150 250 350]", tbl.ColumnCenters)
	}
	if len(tbl.RowBaselines) != 3 || tbl.RowBaselines[2] != 640 {
		t.Errorf("RowBaselines = %v, want [700 670 640]", tbl.RowBaselines)
	}
	if len(tbl.Cells) != 3 || tbl.Cells[0][0].RowType != model.RowTypeHeader || tbl.Cells[1][2].HeaderName != "Price" {
		t.Errorf("Cells = %+v, want header row plus two data rows", tbl.Cells)
	}
	if tbl.Cells[1][0].BBox == nil || *tbl.Cells[1][0].BBox != (model.BBox{X1: 100, Y1: 640, X2: 200, Y2: 670}) {
		t.Errorf("Cells[1][0].BBox = %v, want {100 640 200 670}", tbl.Cells[1][0].BBox)
	}
}

func TestLineDetector_Detect_TooFewLines(t *testing.T) {
	page := Page{
		Geometry: model.DefaultPageGeometry(1),
		Lines:    gridLines([]float64{100, 200}, []float64{700, 670, 640}),
	}
	if tables := NewLineDetector().Detect(page); len(tables) != 0 {
		t.Errorf("Detect() found %d tables with one column, want 0", len(tables))
	}
}

func TestLineDetector_Detect_NonPositiveMinimums(t *testing.T) {
	tests := []struct {
		name    string
		minCols int
		minRows int
		lines   []model.LineSegment
	}{
		{"no verticals", -1, 2, []model.LineSegment{
			model.NewLineSegment(1, 100, 700, 400, 700),
			model.NewLineSegment(1, 100, 670, 400, 670),
			model.NewLineSegment(1, 100, 640, 400, 640),
		}},
		{"no horizontals", 2, -1, []model.LineSegment{
			model.NewLineSegment(1, 100, 640, 100, 700),
			model.NewLineSegment(1, 200, 640, 200, 700),
			model.NewLineSegment(1, 300, 640, 300, 700),
		}},
		{"no lines", -3, -3, nil},
		{"one vertical", 0, 0, gridLines([]float64{100}, []float64{700, 670})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			config.MinCols = tt.minCols
			config.MinRows = tt.minRows
			page := Page{
				Geometry:  model.DefaultPageGeometry(1),
				Lines:     tt.lines,
				Fragments: []model.TextFragment{frag("Item", 110, 680, 20)},
			}
			if tables := NewLineDetectorWithConfig(config).Detect(page); len(tables) != 0 {
				t.Errorf("Detect() found %d tables, want 0", len(tables))
			}
		})
	}
}

func TestLineDetector_Detect_IgnoresPageBorder(t *testing.T) {
	geom := model.DefaultPageGeometry(1)
	page := Page{
		Geometry: geom,
		Lines: []model.LineSegment{
			model.NewLineSegment(1, 2, 2, 2, geom.Height-2),
			model.NewLineSegment(1, geom.Width-2, 2, geom.Width-2, geom.Height-2),
			model.NewLineSegment(1, 2, 2, geom.Width-2, 2),
			model.NewLineSegment(1, 2, geom.Height-2, geom.Width-2, geom.Height-2),
			model.NewLineSegment(1, geom.Width/2, 2, geom.Width/2, geom.Height-2),
			model.NewLineSegment(1, 2, geom.Height/2, geom.Width-2, geom.Height/2),
		},
		Fragments: []model.TextFragment{frag("Hello", 100, 600, 20)},
	}
	if tables := NewLineDetector().Detect(page); len(tables) != 0 {
		t.Errorf("Detect() found %d tables in a page frame, want 0", len(tables))
	}
}

func TestLineDetector_Detect_DecorativeFrame(t *testing.T) {
	page := Page{
		Geometry:  model.DefaultPageGeometry(1),
		Lines:     gridLines([]float64{50, 173.75, 297.5, 421.25, 545}, []float64{750, 587.5, 425, 262.5, 100}),
		Fragments: []model.TextFragment{frag("Title", 60, 700, 30), frag("Body", 60, 500, 30)},
	}
	if tables := NewLineDetector().Detect(page); len(tables) != 0 {
		t.Errorf("Detect() found %d tables in a sparse frame, want 0", len(tables))
	}
}

func TestLineDetector_Detect_Banner(t *testing.T) {
	page := Page{
		Geometry: model.DefaultPageGeometry(1),
		Lines:    gridLines([]float64{100, 200, 300}, []float64{700, 670, 640, 610, 580}),
		Fragments: []model.TextFragment{
			frag("Name", 110, 680, 20),
			frag("Value", 210, 680, 25),
			frag("EU", 110, 650, 10),
			frag("alpha", 110, 620, 25),
			frag("1", 210, 620, 5),
			frag("beta", 110, 590, 20),
			frag("2", 210, 590, 5),
		},
	}
	tables := NewLineDetector().Detect(page)
	if len(tables) != 1 {
		t.Fatalf("Detect() found %d tables, want 1", len(tables))
	}
	tbl := tables[0]
	if len(tbl.Rows) != 2 {
		t.Errorf("len(Rows) = %d, want 2 (banner removed)", len(tbl.Rows))
	}
	if len(tbl.Banners) != 1 || tbl.Banners[0].Text != "EU" {
		t.Fatalf("Banners = %+v, want one EU banner", tbl.Banners)
	}
	if tbl.Banners[0].BBox != (model.BBox{X1: 100, Y1: 640, X2: 200, Y2: 670}) {
		t.Errorf("Banner bbox = %+v", tbl.Banners[0].BBox)
	}
}

func TestLineDetector_Detect_RepeatedHeader(t *testing.T) {
	page := Page{
		Geometry: model.DefaultPageGeometry(1),
		Lines:    gridLines([]float64{100, 200, 300}, []float64{700, 670, 640, 610, 580}),
		Fragments: []model.TextFragment{
			frag("Name", 110, 680, 20),
			frag("Value", 210, 680, 25),
			frag("alpha", 110, 650, 25),
			frag("1", 210, 650, 5),
			frag("Name", 110, 620, 20),
			frag("Value", 210, 620, 25),
			frag("beta", 110, 590, 20),
			frag("2", 210, 590, 5),
		},
	}
	tables := NewLineDetector().Detect(page)
	if len(tables) != 2 {
		t.Fatalf("Detect() found %d tables, want 2", len(tables))
	}
	if tables[0].BBox.Y2 != 700 || tables[0].BBox.Y1 != 640 {
		t.Errorf("first segment bbox = %+v, want y 640..700", tables[0].BBox)
	}
	if tables[1].BBox.Y2 != 640 || tables[1].BBox.Y1 != 580 {
		t.Errorf("second segment bbox = %+v, want y 580..640", tables[1].BBox)
	}
	if v, _ := tables[1].Rows[0].Get("Name"); v.Str != "beta" {
		t.Errorf("second segment Rows[0][Name] = %+v, want beta", v)
	}
}

func TestLineDetector_Detect_BannerBetweenSegments(t *testing.T) {
	page := Page{
		Geometry: model.DefaultPageGeometry(1),
		Lines:    gridLines([]float64{100, 200, 300}, []float64{700, 670, 640, 610, 580, 550}),
		Fragments: []model.TextFragment{
			frag("Name", 110, 680, 20),
			frag("Value", 210, 680, 25),
			frag("alpha", 110, 650, 25),
			frag("1", 210, 650, 5),
			frag("EU", 110, 620, 10),
			frag("Name", 110, 590, 20),
			frag("Value", 210, 590, 25),
			frag("beta", 110, 560, 20),
			frag("2", 210, 560, 5),
		},
	}
	tables := NewLineDetector().Detect(page)
	if len(tables) != 2 {
		t.Fatalf("Detect() found %d tables, want 2", len(tables))
	}
	if len(tables[0].Banners) != 0 {
		t.Errorf("first segment Banners = %+v, want none", tables[0].Banners)
	}
	if len(tables[1].Banners) != 1 || tables[1].Banners[0].Text != "EU" {
		t.Errorf("second segment Banners = %+v, want EU", tables[1].Banners)
	}
	if len(tables[0].Rows) != 1 || len(tables[1].Rows) != 1 {
		t.Errorf("rows = %d/%d, want 1/1 with the banner lifted out", len(tables[0].Rows), len(tables[1].Rows))
	}
}

func segmentAt(top, bottom float64) gridSegment {
	return gridSegment{rows: []gridRow{{
		cells: []string{"x"},
		boxes: []model.BBox{{X1: 100, Y1: bottom, X2: 200, Y2: top}},
	}}}
}

func TestAttachBanners(t *testing.T) {
	tests := []struct {
		name     string
		tops     []float64
		bannerY2 float64
		want     int
	}{
		{"first segment clearly below", []float64{700, 650}, 800, 0},
		{"skips segments starting above", []float64{700, 650}, 660, 1},
		{"smallest non-negative gap", []float64{700, 651, 650}, 652, 1},
		{"gap of zero", []float64{700, 650}, 650, 1},
		{"below every segment goes to the last", []float64{700, 650, 600}, 500, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var segments []gridSegment
			for _, top := range tt.tops {
				segments = append(segments, segmentAt(top, top-20))
			}
			banner := model.Banner{Page: 1, Text: "EU", BBox: model.BBox{X1: 100, Y1: tt.bannerY2 - 30, X2: 200, Y2: tt.bannerY2}}
			attachBanners(segments, []model.Banner{banner})
			for i, seg := range segments {
				want := 0
				if i == tt.want {
					want = 1
				}
				if len(seg.banners) != want {
					t.Errorf("segment %d has %d banners, want %d", i, len(seg.banners), want)
				}
			}
		})
	}
}

func TestAttachBanners_NoSegments(t *testing.T) {
	attachBanners(nil, []model.Banner{{Text: "EU"}})
}

func TestLineDetector_Detect_StripsEmptyRows(t *testing.T) {
	page := Page{
		Geometry: model.DefaultPageGeometry(1),
		Lines:    gridLines([]float64{100, 200, 300}, []float64{700, 670, 640, 610}),
		Fragments: []model.TextFragment{
			frag("A", 110, 650, 5),
			frag("B", 210, 650, 5),
			frag("x", 110, 620, 5),
			frag("y", 210, 620, 5),
		},
	}
	tables := NewLineDetector().Detect(page)
	if len(tables) != 1 {
		t.Fatalf("Detect() found %d tables, want 1", len(tables))
	}
	if !equalStrings(tables[0].Headers, []string{"A", "B"}) {
		t.Errorf("Headers = %v, want [A B]", tables[0].Headers)
	}
	if tables[0].BBox.Y2 != 670 {
		t.Errorf("BBox.Y2 = %v, want 670 after stripping the empty top row", tables[0].BBox.Y2)
	}
}

func TestCollectCellText(t *testing.T) {
	box := model.BBox{X1: 90, Y1: 0, X2: 300, Y2: 20}
	frags := []model.TextFragment{
		{Text: "World", X: 140, Y: 10, FontSize: 10, Width: 25},
		{Text: "Hel", X: 100, Y: 10, FontSize: 10, Width: 15},
		{Text: "lo", X: 115.5, Y: 10, FontSize: 10, Width: 10},
		{Text: "outside", X: 400, Y: 10, FontSize: 10, Width: 30},
	}
	if got := collectCellText(frags, box, 0.22); got != "Hello World" {
		t.Errorf("collectCellText() = %q, want %q", got, "Hello World")
	}
}

func TestJoinSingleCapitals(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"I B A N", "IBAN"},
		{"code I B A N here", "code IBAN here"},
		{"A Bc", "A Bc"},
		{"AB C", "AB C"},
		{"A B, C", "AB, C"},
		{"plain text", "plain text"},
	}
	for _, tt := range tests {
		if got := joinSingleCapitals(tt.in); got != tt.want {
			t.Errorf("joinSingleCapitals(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
