package graphicsstate

import (
	"testing"

	"github.com/tsawler/layoutkit/contentstream"
	"github.com/tsawler/layoutkit/model"
)

func run(t *testing.T, content string) *Extractor {
	t.Helper()
	ops, err := contentstream.Parse([]byte(content))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	ex := NewExtractor(3, nil)
	ex.Run(ops)
	return ex
}

func TestExtractor_Text(t *testing.T) {
	ex := run(t, `BT /F1 10 Tf 1 0 0 1 100 700 Tm (Item) Tj [(Q) -500 (ty)] TJ
0 -20 Td (Next) Tj T* (Third) Tj ET`)

	want := []struct {
		text string
		x, y float64
	}{
		{"Item", 100, 700},
		{"Q", 120, 700},
		{"ty", 130, 700},
		{"Next", 100, 680},
		{"Third", 100, 668},
	}
	if len(ex.Fragments) != len(want) {
		t.Fatalf("got %d fragments, want %d: %+v", len(ex.Fragments), len(want), ex.Fragments)
	}
	for i, w := range want {
		f := ex.Fragments[i]
		if f.Text != w.text || f.X != w.x || f.Y != w.y {
			t.Errorf("fragment %d = %q at (%v, %v), want %q at (%v, %v)", i, f.Text, f.X, f.Y, w.text, w.x, w.y)
		}
		if f.Seq != i || f.Page != 3 || f.FontName != "F1" || f.FontSize != 10 {
			t.Errorf("fragment %d = %+v", i, f)
		}
	}
	if f := ex.Fragments[0]; f.Width != 20 || f.Height != 12 {
		t.Errorf("Item width/height = %v/%v, want 20/12", f.Width, f.Height)
	}
}

func TestExtractor_FontSizeZeroKeepsSize(t *testing.T) {
	ex := run(t, `/F1 9 Tf /F2 0 Tf (a) Tj`)
	if ex.Fragments[0].FontSize != 9 || ex.Fragments[0].FontName != "F2" {
		t.Errorf("fragment = %+v, want F2 at size 9", ex.Fragments[0])
	}
}

func TestExtractor_HexWithoutMap(t *testing.T) {
	ex := run(t, `<00410042> Tj () Tj`)
	if len(ex.Fragments) != 1 || ex.Fragments[0].Text != "??" {
		t.Errorf("fragments = %+v, want one ?? fragment", ex.Fragments)
	}
}

func TestExtractor_CustomDecode(t *testing.T) {
	ops, _ := contentstream.Parse([]byte(`/F1 12 Tf <0041> Tj`))
	ex := NewExtractor(1, func(fontName string, s contentstream.Operand) string {
		return fontName + ":" + s.Kind.String()
	})
	ex.Seq = 40
	ex.Run(ops)
	if f := ex.Fragments[0]; f.Text != "F1:hexstring" || f.Seq != 40 {
		t.Errorf("fragment = %+v", f)
	}
	if ex.Seq != 41 {
		t.Errorf("Seq = %d, want 41", ex.Seq)
	}
}

func TestExtractor_Paths(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"stroked polyline", "10 10 m 100 10 l 100 50 l S", 2},
		{"closed and stroked", "10 10 m 100 10 l 100 50 l s", 3},
		{"close then stroke", "10 10 m 100 10 l 100 50 l h S", 3},
		{"filled", "10 10 m 100 10 l f", 0},
		{"no-op end", "10 10 m 100 10 l n S", 0},
		{"rectangle", "0 0 50 20 re n", 4},
		{"single point", "10 10 m S", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(run(t, tt.content).Lines); got != tt.want {
				t.Errorf("got %d lines, want %d", got, tt.want)
			}
		})
	}
}

func TestRectangle(t *testing.T) {
	got := Rectangle(2, 10, 20, 100, 50)
	want := []model.LineSegment{
		model.NewLineSegment(2, 10, 20, 110, 20),
		model.NewLineSegment(2, 110, 20, 110, 70),
		model.NewLineSegment(2, 110, 70, 10, 70),
		model.NewLineSegment(2, 10, 70, 10, 20),
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("edge %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if !got[0].IsHorizontal() || !got[1].IsVertical() {
		t.Errorf("orientations = %v, %v", got[0].Orientation, got[1].Orientation)
	}
}

func TestLatin1(t *testing.T) {
	if got := Latin1("Grüße"); got != "Grüße" {
		t.Errorf("Latin1(utf8) = %q", got)
	}
	if got := Latin1("caf\xe9"); got != "café" {
		t.Errorf("Latin1(latin1) = %q, want café", got)
	}
}
