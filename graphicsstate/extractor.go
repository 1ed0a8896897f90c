package graphicsstate

import (
	"unicode/utf8"

	"github.com/tsawler/layoutkit/contentstream"
	"github.com/tsawler/layoutkit/font"
	"github.com/tsawler/layoutkit/model"
)

// DecodeFunc turns a shown string operand into text for the named font
type DecodeFunc func(fontName string, s contentstream.Operand) string

// DefaultDecode reads literal strings byte-wise (as UTF-8 when valid,
// Latin-1 otherwise) and hex strings as two-byte codes with no mapping.
func DefaultDecode(_ string, s contentstream.Operand) string {
	if s.Kind == contentstream.KindHexString {
		return (*font.CMap)(nil).Decode([]byte(s.Str))
	}
	return Latin1(s.Str)
}

// Latin1 returns s unchanged when it is valid UTF-8 and otherwise maps
// each byte to the code point of the same value.
func Latin1(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	runes := make([]rune, len(s))
	for i := 0; i < len(s); i++ {
		runes[i] = rune(s[i])
	}
	return string(runes)
}

// Extractor walks the operations of one page and collects the text
// fragments and line segments they draw.
type Extractor struct {
	// Page is the page number stamped on every fragment and segment
	Page int

	// Seq is the emission number given to the next fragment
	Seq int

	Fragments []model.TextFragment
	Lines     []model.LineSegment

	decode DecodeFunc
	text   TextState
	path   Path
}

// NewExtractor creates an extractor for one page. A nil decode uses
// DefaultDecode.
func NewExtractor(page int, decode DecodeFunc) *Extractor {
	if decode == nil {
		decode = DefaultDecode
	}
	return &Extractor{Page: page, decode: decode, text: NewTextState()}
}

// Run processes operations in order. It may be called once per content
// stream of the page; text and path state carry over between calls.
func (e *Extractor) Run(ops []contentstream.Operation) {
	for _, op := range ops {
		e.apply(op)
	}
}

func (e *Extractor) apply(op contentstream.Operation) {
	args := op.Operands
	switch op.Operator {
	case "Tf":
		if len(args) >= 2 && args[len(args)-2].Kind == contentstream.KindName {
			if size, ok := args[len(args)-1].Number(); ok {
				e.text.SetFont(args[len(args)-2].Str, size)
			}
		}
	case "Tm":
		if len(args) >= 6 {
			if v, ok := op.Numbers(2); ok {
				e.text.SetMatrix(v[0], v[1])
			}
		}
	case "Td", "TD":
		if v, ok := op.Numbers(2); ok {
			e.text.Move(v[0], v[1])
		}
	case "T*":
		e.text.NextLine()
	case "Tj":
		if len(args) > 0 {
			e.show(args[len(args)-1])
		}
	case "'", "\"":
		e.text.NextLine()
		if len(args) > 0 {
			e.show(args[len(args)-1])
		}
	case "TJ":
		if len(args) > 0 && args[len(args)-1].Kind == contentstream.KindArray {
			for _, item := range args[len(args)-1].Array {
				if n, ok := item.Number(); ok {
					e.text.Adjust(n)
				} else {
					e.show(item)
				}
			}
		}

	case "m":
		if v, ok := op.Numbers(2); ok {
			e.path.MoveTo(v[0], v[1])
		}
	case "l":
		if v, ok := op.Numbers(2); ok {
			e.path.LineTo(v[0], v[1])
		}
	case "h":
		e.path.Close()
	case "re":
		if v, ok := op.Numbers(4); ok {
			e.Lines = append(e.Lines, Rectangle(e.Page, v[0], v[1], v[2], v[3])...)
		}
	case "S", "B", "B*":
		e.Lines = append(e.Lines, e.path.Stroke(e.Page)...)
	case "s", "b", "b*":
		e.path.Close()
		e.Lines = append(e.Lines, e.path.Stroke(e.Page)...)
	case "n", "f", "F", "f*":
		e.path.Reset()
	}
}

// show emits one fragment for a string operand and advances past it.
func (e *Extractor) show(s contentstream.Operand) {
	if !s.IsString() {
		return
	}
	text := e.decode(e.text.FontName, s)
	if text == "" {
		return
	}
	e.Fragments = append(e.Fragments, model.TextFragment{
		Page:     e.Page,
		Text:     text,
		X:        e.text.X,
		Y:        e.text.Y,
		FontName: e.text.FontName,
		FontSize: e.text.FontSize,
		Width:    e.text.Width(text),
		Height:   e.text.FontSize * LineHeightFactor,
		Seq:      e.Seq,
	})
	e.Seq++
	e.text.Advance(text)
}
