package tables

import "github.com/tsawler/layoutkit/model"

func frag(text string, x, y, width float64) model.TextFragment {
	return model.TextFragment{Page: 1, Text: text, X: x, Y: y, FontSize: 10, Width: width, Height: 12}
}

func newTable(origin model.Origin, headers []string, data ...[]string) *model.RawTable {
	t := &model.RawTable{
		Page:    1,
		Headers: append([]string(nil), headers...),
		Origin:  origin,
	}
	t.Matrix = append(t.Matrix, append([]string(nil), headers...))
	for _, r := range data {
		t.Matrix = append(t.Matrix, append([]string(nil), r...))
	}
	t.RebuildRows(false)
	return t
}

// gridLines draws a ruled grid with the given boundaries.
func gridLines(xs, ys []float64) []model.LineSegment {
	var out []model.LineSegment
	for _, x := range xs {
		out = append(out, model.NewLineSegment(1, x, ys[len(ys)-1], x, ys[0]))
	}
	for _, y := range ys {
		out = append(out, model.NewLineSegment(1, xs[0], y, xs[len(xs)-1], y))
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
