package model

import "math"

// Point represents a 2D point
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// BBox is an axis-aligned rectangle in page space. (X1, Y1) is the lower-left
// corner and (X2, Y2) the upper-right one; y grows upward.
type BBox struct {
	X1 float64 `json:"x1" yaml:"x1"`
	Y1 float64 `json:"y1" yaml:"y1"`
	X2 float64 `json:"x2" yaml:"x2"`
	Y2 float64 `json:"y2" yaml:"y2"`
}

// NewBBox creates a normalized bounding box from two opposite corners
func NewBBox(x1, y1, x2, y2 float64) BBox {
	return BBox{
		X1: math.Min(x1, x2),
		Y1: math.Min(y1, y2),
		X2: math.Max(x1, x2),
		Y2: math.Max(y1, y2),
	}
}

// Width returns the horizontal extent
func (b BBox) Width() float64 {
	return b.X2 - b.X1
}

// Height returns the vertical extent
func (b BBox) Height() float64 {
	return b.Y2 - b.Y1
}

// Area returns the area of the bounding box
func (b BBox) Area() float64 {
	return b.Width() * b.Height()
}

// Center returns the center point
func (b BBox) Center() Point {
	return Point{X: (b.X1 + b.X2) / 2, Y: (b.Y1 + b.Y2) / 2}
}

// Contains checks if a point is inside the bounding box (edges included)
func (b BBox) Contains(p Point) bool {
	return p.X >= b.X1 && p.X <= b.X2 && p.Y >= b.Y1 && p.Y <= b.Y2
}

// Inside reports whether b lies within outer, allowing tol slack on every edge.
func (b BBox) Inside(outer BBox, tol float64) bool {
	return b.X1 >= outer.X1-tol &&
		b.X2 <= outer.X2+tol &&
		b.Y1 >= outer.Y1-tol &&
		b.Y2 <= outer.Y2+tol
}

// Intersection returns the overlapping rectangle. Disjoint boxes yield a
// zero-sized box.
func (b BBox) Intersection(other BBox) BBox {
	x1 := math.Max(b.X1, other.X1)
	y1 := math.Max(b.Y1, other.Y1)
	x2 := math.Min(b.X2, other.X2)
	y2 := math.Min(b.Y2, other.Y2)
	if x2 < x1 {
		x2 = x1
	}
	if y2 < y1 {
		y2 = y1
	}
	return BBox{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// Union returns the smallest box covering both boxes
func (b BBox) Union(other BBox) BBox {
	return BBox{
		X1: math.Min(b.X1, other.X1),
		Y1: math.Min(b.Y1, other.Y1),
		X2: math.Max(b.X2, other.X2),
		Y2: math.Max(b.Y2, other.Y2),
	}
}

// Expand expands the bounding box by a margin on all sides
func (b BBox) Expand(margin float64) BBox {
	return BBox{X1: b.X1 - margin, Y1: b.Y1 - margin, X2: b.X2 + margin, Y2: b.Y2 + margin}
}

// IsEmpty returns true if the bounding box has zero area
func (b BBox) IsEmpty() bool {
	return b.Width() <= 0 || b.Height() <= 0
}

// IoU returns intersection area over union area. Degenerate boxes score 0.
func (b BBox) IoU(other BBox) float64 {
	areaA := b.Area()
	areaB := other.Area()
	if areaA <= 0 || areaB <= 0 {
		return 0
	}
	inter := b.Intersection(other).Area()
	return inter / (areaA + areaB - inter + 1e-9)
}

// Containment returns the share of b's area covered by outer.
func (b BBox) Containment(outer BBox) float64 {
	area := b.Area()
	if area <= 0 {
		return 0
	}
	return b.Intersection(outer).Area() / area
}

// HorizontalCover returns the share of b's width overlapped by other.
func (b BBox) HorizontalCover(other BBox) float64 {
	w := math.Max(0, b.Width())
	if w == 0 {
		return 0
	}
	iw := math.Max(0, math.Min(b.X2, other.X2)-math.Max(b.X1, other.X1))
	return iw / w
}

// VerticalOverlap returns the share of b's height overlapped by other.
func (b BBox) VerticalOverlap(other BBox) float64 {
	h := math.Max(0, b.Height())
	if h == 0 {
		return 0
	}
	ih := math.Max(0, math.Min(b.Y2, other.Y2)-math.Max(b.Y1, other.Y1))
	return ih / h
}

// HorizontalOverlapRatio returns the horizontal overlap of two boxes divided
// by the narrower width. Widths below one unit count as one.
func (b BBox) HorizontalOverlapRatio(other BBox) float64 {
	l := math.Max(b.X1, other.X1)
	r := math.Min(b.X2, other.X2)
	if r <= l {
		return 0
	}
	wA := math.Max(1, b.Width())
	wB := math.Max(1, other.Width())
	return (r - l) / math.Min(wA, wB)
}

// PageGeometry describes the media box size of one page.
type PageGeometry struct {
	Page   int     `json:"page" yaml:"page"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Default page size (A4 in points) used when a page box cannot be read.
const (
	DefaultPageWidth  = 595.32
	DefaultPageHeight = 841.92
)

// DefaultPageGeometry returns the fallback geometry for the given page.
func DefaultPageGeometry(page int) PageGeometry {
	return PageGeometry{Page: page, Width: DefaultPageWidth, Height: DefaultPageHeight}
}
