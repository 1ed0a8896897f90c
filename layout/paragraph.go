package layout

import (
	"math"
	"sort"
	"strings"

	"github.com/tsawler/layoutkit/model"
)

// lineHeightFactor converts the median font size into a line height.
const lineHeightFactor = 1.2

// Paragraph represents a logical paragraph of text
type Paragraph struct {
	// Page is the 1-based page number
	Page int

	// Text is the paragraph's lines joined by newlines
	Text string

	// BBox is the union of the line boxes
	BBox model.BBox

	// Lines are the lines of the paragraph, top to bottom
	Lines []Line

	// Fragments are the source fragments of all lines
	Fragments []model.FragmentRef
}

// LineCount returns the number of lines in the paragraph
func (p *Paragraph) LineCount() int {
	return len(p.Lines)
}

func newParagraph(ln Line) Paragraph {
	return Paragraph{
		Page:      ln.Page,
		BBox:      ln.BBox,
		Lines:     []Line{ln},
		Fragments: append([]model.FragmentRef(nil), ln.Fragments...),
	}
}

func (p *Paragraph) add(ln Line) {
	p.Lines = append(p.Lines, ln)
	p.Fragments = append(p.Fragments, ln.Fragments...)
	p.BBox = p.BBox.Union(ln.BBox)
}

func (p *Paragraph) finish() {
	texts := make([]string, len(p.Lines))
	for i, ln := range p.Lines {
		texts[i] = ln.Text
	}
	p.Text = strings.Join(texts, "\n")
}

// medianSize returns the upper median of the lines' font sizes.
func medianSize(lines []Line) float64 {
	sizes := make([]float64, len(lines))
	for i, ln := range lines {
		sizes[i] = ln.FontSize
	}
	sort.Float64s(sizes)
	if m := sizes[len(sizes)/2]; m != 0 {
		return m
	}
	return defaultFontSize
}

// groupParagraphs merges consecutive lines, ordered top to bottom, while the
// baseline gap stays below the paragraph gap and the left edges line up.
func groupParagraphs(lines []Line, config Config) []Paragraph {
	if len(lines) == 0 {
		return nil
	}
	paraGap := medianSize(lines) * lineHeightFactor * config.ParagraphGapFactor

	var out []Paragraph
	cur := newParagraph(lines[0])
	for _, ln := range lines[1:] {
		last := cur.Lines[len(cur.Lines)-1]
		vGap := last.Baseline - ln.Baseline
		xDiff := math.Abs(last.BBox.X1 - ln.BBox.X1)
		if vGap < paraGap-1e-6 && xDiff <= config.IndentTolerance {
			cur.add(ln)
			continue
		}
		cur.finish()
		out = append(out, cur)
		cur = newParagraph(ln)
	}
	cur.finish()
	return append(out, cur)
}
