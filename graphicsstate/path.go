package graphicsstate

import "github.com/tsawler/layoutkit/model"

// Path collects the points of the subpath under construction
type Path struct {
	points []model.Point
}

// MoveTo starts a new subpath (m operator)
func (p *Path) MoveTo(x, y float64) {
	p.points = append(p.points[:0], model.Point{X: x, Y: y})
}

// LineTo appends a point (l operator)
func (p *Path) LineTo(x, y float64) {
	p.points = append(p.points, model.Point{X: x, Y: y})
}

// Close returns to the subpath start (h operator)
func (p *Path) Close() {
	if len(p.points) < 2 {
		return
	}
	if first := p.points[0]; first != p.points[len(p.points)-1] {
		p.points = append(p.points, first)
	}
}

// Reset discards the path (n, f and F operators)
func (p *Path) Reset() {
	p.points = p.points[:0]
}

// Len returns the number of points in the path
func (p *Path) Len() int { return len(p.points) }

// Stroke returns the segments joining consecutive points and resets the
// path (S and s operators).
func (p *Path) Stroke(page int) []model.LineSegment {
	var out []model.LineSegment
	for i := 0; i+1 < len(p.points); i++ {
		a, b := p.points[i], p.points[i+1]
		out = append(out, model.NewLineSegment(page, a.X, a.Y, b.X, b.Y))
	}
	p.Reset()
	return out
}

// Rectangle returns the four edges of a re operator: bottom, right, top,
// left.
func Rectangle(page int, x, y, w, h float64) []model.LineSegment {
	return []model.LineSegment{
		model.NewLineSegment(page, x, y, x+w, y),
		model.NewLineSegment(page, x+w, y, x+w, y+h),
		model.NewLineSegment(page, x+w, y+h, x, y+h),
		model.NewLineSegment(page, x, y+h, x, y),
	}
}
