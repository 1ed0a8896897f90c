package graphicsstate

import "unicode/utf8"

const (
	// DefaultFontSize is the font size before any Tf operator
	DefaultFontSize = 12.0

	// LineHeightFactor scales the font size to the line height used by T*
	// and to the height of a fragment.
	LineHeightFactor = 1.2

	// AdvanceFactor is the assumed glyph width as a fraction of the font
	// size.
	AdvanceFactor = 0.5
)

// TextState tracks the text position as text operators move it. Positions
// are taken from the text matrix translation only; scaling and the CTM are
// not applied.
type TextState struct {
	FontName   string
	FontSize   float64
	X, Y       float64
	LineStartX float64
	LineHeight float64
}

// NewTextState returns the state at the start of a content stream
func NewTextState() TextState {
	return TextState{
		FontSize:   DefaultFontSize,
		LineHeight: DefaultFontSize * LineHeightFactor,
	}
}

// SetFont applies Tf. A zero size keeps the previous size.
func (ts *TextState) SetFont(name string, size float64) {
	ts.FontName = name
	if size != 0 {
		ts.FontSize = size
	}
	ts.LineHeight = ts.FontSize * LineHeightFactor
}

// SetMatrix applies Tm; only the translation e, f is used.
func (ts *TextState) SetMatrix(e, f float64) {
	ts.X, ts.Y = e, f
	ts.LineStartX = e
}

// Move applies Td and TD. The offset is relative to the start of the
// current line, not to the end of the text shown on it.
func (ts *TextState) Move(dx, dy float64) {
	ts.LineStartX += dx
	ts.X = ts.LineStartX
	ts.Y += dy
}

// NextLine applies T*
func (ts *TextState) NextLine() {
	ts.Y -= ts.LineHeight
	ts.X = ts.LineStartX
}

// Width returns the approximate width of text at the current size. Every
// string is at least one glyph wide.
func (ts *TextState) Width(text string) float64 {
	n := utf8.RuneCountInString(text)
	if n < 1 {
		n = 1
	}
	return float64(n) * ts.FontSize * AdvanceFactor
}

// Advance moves past shown text and returns its width
func (ts *TextState) Advance(text string) float64 {
	w := ts.Width(text)
	ts.X += w
	return w
}

// Adjust applies a TJ position adjustment, given in thousandths of a text
// space unit.
func (ts *TextState) Adjust(n float64) {
	ts.X -= n / 1000 * ts.FontSize
}
