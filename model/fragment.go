package model

import "math"

// TextFragment is a positioned run of decoded text. X/Y is the baseline
// origin of the run.
type TextFragment struct {
	Page     int     `json:"page" yaml:"page"`
	Text     string  `json:"text" yaml:"text"`
	X        float64 `json:"x" yaml:"x"`
	Y        float64 `json:"y" yaml:"y"`
	FontName string  `json:"font,omitempty" yaml:"font,omitempty"`
	FontSize float64 `json:"size" yaml:"size"`
	Width    float64 `json:"width" yaml:"width"`
	Height   float64 `json:"height" yaml:"height"`
	Seq      int     `json:"seq" yaml:"seq"`
}

// Right returns the approximate right edge of the run
func (f TextFragment) Right() float64 {
	return f.X + f.Width
}

// SizeOr returns the font size, or def when the size is unknown.
func (f TextFragment) SizeOr(def float64) float64 {
	if f.FontSize == 0 {
		return def
	}
	return f.FontSize
}

// Orientation classifies a line segment
type Orientation int

const (
	OrientationOther Orientation = iota
	OrientationHorizontal
	OrientationVertical
)

// String returns the short name used in dumps
func (o Orientation) String() string {
	switch o {
	case OrientationHorizontal:
		return "h"
	case OrientationVertical:
		return "v"
	default:
		return "o"
	}
}

// ParseOrientation accepts the short and long spellings of an orientation.
func ParseOrientation(s string) Orientation {
	switch s {
	case "h", "horizontal":
		return OrientationHorizontal
	case "v", "vertical":
		return OrientationVertical
	default:
		return OrientationOther
	}
}

// orientationEpsilon is the endpoint delta under which a segment counts as
// axis-aligned.
const orientationEpsilon = 0.5

// LineSegment is a drawn straight line on a page
type LineSegment struct {
	Page        int
	X1, Y1      float64
	X2, Y2      float64
	Orientation Orientation
	Length      float64
}

// NewLineSegment builds a segment and derives its orientation and length.
func NewLineSegment(page int, x1, y1, x2, y2 float64) LineSegment {
	o := OrientationOther
	if math.Abs(y1-y2) < orientationEpsilon {
		o = OrientationHorizontal
	} else if math.Abs(x1-x2) < orientationEpsilon {
		o = OrientationVertical
	}
	return LineSegment{
		Page:        page,
		X1:          x1,
		Y1:          y1,
		X2:          x2,
		Y2:          y2,
		Orientation: o,
		Length:      math.Hypot(x2-x1, y2-y1),
	}
}

// IsHorizontal reports whether the segment is horizontal
func (l LineSegment) IsHorizontal() bool { return l.Orientation == OrientationHorizontal }

// IsVertical reports whether the segment is vertical
func (l LineSegment) IsVertical() bool { return l.Orientation == OrientationVertical }

// CenterX returns the mean x of the endpoints
func (l LineSegment) CenterX() float64 { return (l.X1 + l.X2) / 2 }

// CenterY returns the mean y of the endpoints
func (l LineSegment) CenterY() float64 { return (l.Y1 + l.Y2) / 2 }
