package layout

import (
	"sort"
	"strings"

	"github.com/tsawler/layoutkit/model"
)

// Assembler rebuilds paragraphs from positioned text fragments.
type Assembler struct {
	config Config
}

// NewAssembler creates an assembler with default configuration
func NewAssembler() *Assembler {
	return &Assembler{config: DefaultConfig()}
}

// NewAssemblerWithConfig creates an assembler with custom configuration
func NewAssemblerWithConfig(config Config) *Assembler {
	return &Assembler{config: config}
}

// Config returns the configuration in use
func (a *Assembler) Config() Config {
	return a.config
}

// Assemble groups fragments into lines and lines into paragraphs, page by
// page. Paragraphs come back ordered by page, then top to bottom. Empty
// fragments are ignored and the input slice is not modified.
func (a *Assembler) Assemble(frags []model.TextFragment) []Paragraph {
	byPage := make(map[int][]model.TextFragment)
	for _, f := range frags {
		if f.Text == "" {
			continue
		}
		byPage[f.Page] = append(byPage[f.Page], f)
	}
	pages := make([]int, 0, len(byPage))
	for p := range byPage {
		pages = append(pages, p)
	}
	sort.Ints(pages)

	var out []Paragraph
	for _, page := range pages {
		out = append(out, a.assemblePage(page, byPage[page])...)
	}
	return out
}

func (a *Assembler) assemblePage(page int, frags []model.TextFragment) []Paragraph {
	sortFragments(frags)

	var lines []Line
	for _, g := range groupLines(frags, a.config.LineYToleranceFactor) {
		if ln, ok := buildLine(page, g, a.config); ok {
			lines = append(lines, ln)
		}
	}
	if len(lines) == 0 {
		return nil
	}
	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].Baseline > lines[j].Baseline
	})

	paragraphs := groupParagraphs(lines, a.config)
	out := paragraphs[:0]
	for _, p := range paragraphs {
		if strings.TrimSpace(p.Text) != "" {
			out = append(out, p)
		}
	}
	return out
}
