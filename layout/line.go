package layout

import (
	"math"
	"sort"

	"github.com/tsawler/layoutkit/model"
)

// Line vertical extent relative to the baseline, in font sizes.
const (
	lineAscent  = 0.3
	lineDescent = 0.8

	// fragments closer than this horizontally keep emission order
	sameXTolerance = 0.8
)

// Line represents a single reconstructed line of text on a page
type Line struct {
	// Page is the 1-based page number
	Page int

	// Baseline is the running mean baseline of the line's fragments
	Baseline float64

	// FontSize is the running mean font size of the line's fragments
	FontSize float64

	// Text is the assembled text content of the line
	Text string

	// BBox spans the line's tokens horizontally and the font box vertically
	BBox model.BBox

	// Fragments are the source fragments in reading order
	Fragments []model.FragmentRef
}

// lineGroup accumulates fragments that share a baseline.
type lineGroup struct {
	y, size float64
	count   int
	items   []model.TextFragment
}

func (g *lineGroup) add(f model.TextFragment, size float64) {
	n := float64(g.count)
	g.y = (g.y*n + f.Y) / (n + 1)
	g.size = (g.size*n + size) / (n + 1)
	g.count++
	g.items = append(g.items, f)
}

// sortFragments orders fragments top to bottom, then left to right, then by
// emission order.
func sortFragments(frags []model.TextFragment) {
	sort.SliceStable(frags, func(i, j int) bool {
		a, b := frags[i], frags[j]
		if math.Abs(b.Y-a.Y) > 1e-5 {
			return a.Y > b.Y
		}
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Seq < b.Seq
	})
}

// groupLines assigns each fragment to the first line whose running baseline
// lies within factor times the larger of the two font sizes.
func groupLines(frags []model.TextFragment, factor float64) []*lineGroup {
	var lines []*lineGroup
	for _, f := range frags {
		size := f.SizeOr(defaultFontSize)
		placed := false
		for _, ln := range lines {
			tol := factor * math.Max(ln.size, size)
			if math.Abs(ln.y-f.Y) <= tol {
				ln.add(f, size)
				placed = true
				break
			}
		}
		if !placed {
			lines = append(lines, &lineGroup{y: f.Y, size: size, count: 1, items: []model.TextFragment{f}})
		}
	}
	return lines
}

// buildLine assembles the text of one line group. ok is false when nothing
// printable remains.
func buildLine(page int, g *lineGroup, config Config) (Line, bool) {
	items := append([]model.TextFragment(nil), g.items...)
	sort.SliceStable(items, func(i, j int) bool {
		if math.Abs(items[i].X-items[j].X) > sameXTolerance {
			return items[i].X < items[j].X
		}
		return items[i].Seq < items[j].Seq
	})

	tokens := tokenize(items)
	if len(tokens) == 0 {
		return Line{}, false
	}
	tokens = reorderEmbeddedPrepositions(tokens)
	tokens = mergeTokens(tokens, config)
	if len(tokens) == 0 {
		return Line{}, false
	}
	tokens = combineUppercase(tokens)

	text := lineText(tokens, config)
	if text == "" {
		return Line{}, false
	}

	x1, x2 := tokens[0].x1, tokens[0].x2
	for _, t := range tokens[1:] {
		x1 = math.Min(x1, t.x1)
		x2 = math.Max(x2, t.x2)
	}

	refs := make([]model.FragmentRef, len(items))
	for i, it := range items {
		refs[i] = model.FragmentRef{Text: it.Text, X: it.X, Y: it.Y, Width: it.Width, Size: it.FontSize}
	}

	return Line{
		Page:     page,
		Baseline: g.y,
		FontSize: g.size,
		Text:     text,
		BBox: model.BBox{
			X1: x1,
			Y1: g.y - g.size*lineDescent,
			X2: x2,
			Y2: g.y + g.size*lineAscent,
		},
		Fragments: refs,
	}, true
}
