package source

import (
	"errors"
	"sort"

	"github.com/tsawler/layoutkit/model"
)

var (
	// ErrNoPages is returned when a document yields no pages at all.
	ErrNoPages = errors.New("document has no pages")

	// ErrUnknownFormat is returned for a dump format other than json or yaml.
	ErrUnknownFormat = errors.New("unknown dump format")
)

// Source supplies the positioned text and ruling lines of a document.
// Page numbers start at 1.
type Source interface {
	// Pages returns the geometry of every page, in page order
	Pages() []model.PageGeometry

	// Fragments returns all text fragments of the document
	Fragments() []model.TextFragment

	// Lines returns all drawn line segments of the document
	Lines() []model.LineSegment
}

// Document is an in-memory Source.
type Document struct {
	Geometry []model.PageGeometry
	Frags    []model.TextFragment
	Segments []model.LineSegment
}

// NewDocument builds a document and fills in geometry for pages that only
// appear in fragments or lines.
func NewDocument(geoms []model.PageGeometry, frags []model.TextFragment, lines []model.LineSegment) *Document {
	d := &Document{
		Geometry: append([]model.PageGeometry(nil), geoms...),
		Frags:    frags,
		Segments: lines,
	}
	d.fillGeometry()
	return d
}

// Pages implements Source
func (d *Document) Pages() []model.PageGeometry { return d.Geometry }

// Fragments implements Source
func (d *Document) Fragments() []model.TextFragment { return d.Frags }

// Lines implements Source
func (d *Document) Lines() []model.LineSegment { return d.Segments }

// PageCount returns the number of known pages
func (d *Document) PageCount() int { return len(d.Geometry) }

func (d *Document) fillGeometry() {
	known := make(map[int]bool, len(d.Geometry))
	for i, g := range d.Geometry {
		if g.Width <= 0 || g.Height <= 0 {
			d.Geometry[i] = model.DefaultPageGeometry(g.Page)
		}
		known[g.Page] = true
	}
	add := func(page int) {
		if !known[page] {
			known[page] = true
			d.Geometry = append(d.Geometry, model.DefaultPageGeometry(page))
		}
	}
	for _, f := range d.Frags {
		add(f.Page)
	}
	for _, l := range d.Segments {
		add(l.Page)
	}
	sort.SliceStable(d.Geometry, func(i, j int) bool {
		return d.Geometry[i].Page < d.Geometry[j].Page
	})
}
