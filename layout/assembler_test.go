package layout

import (
	"math"
	"testing"

	"github.com/tsawler/layoutkit/model"
)

func TestAssembler_Empty(t *testing.T) {
	a := NewAssembler()
	if got := a.Assemble(nil); len(got) != 0 {
		t.Errorf("Assemble(nil) returned %d paragraphs, want 0", len(got))
	}
	blank := []model.TextFragment{makeFragment("", 100, 700, 10), makeFragment("   ", 100, 680, 10)}
	if got := a.Assemble(blank); len(got) != 0 {
		t.Errorf("Assemble(blank) returned %d paragraphs, want 0", len(got))
	}
}

func TestAssembler_ParagraphMerge(t *testing.T) {
	// median size 10 gives a line height of 12
	frags := []model.TextFragment{
		makeFragment("Beta", 100, 688, 25),
		makeFragment("Alpha", 100, 700, 30),
	}
	got := NewAssembler().Assemble(frags)
	if len(got) != 1 {
		t.Fatalf("Assemble() returned %d paragraphs, want 1", len(got))
	}
	p := got[0]
	if p.Text != "Alpha\nBeta" {
		t.Errorf("Text = %q, want %q", p.Text, "Alpha\nBeta")
	}
	if p.LineCount() != 2 || len(p.Fragments) != 2 {
		t.Errorf("LineCount() = %d, fragments = %d, want 2 and 2", p.LineCount(), len(p.Fragments))
	}
	want := model.BBox{X1: 100, Y1: 680, X2: 130, Y2: 703}
	if math.Abs(p.BBox.X1-want.X1) > 1e-9 || math.Abs(p.BBox.Y1-want.Y1) > 1e-9 ||
		math.Abs(p.BBox.X2-want.X2) > 1e-9 || math.Abs(p.BBox.Y2-want.Y2) > 1e-9 {
		t.Errorf("BBox = %+v, want %+v", p.BBox, want)
	}
}

func TestAssembler_ParagraphSplit(t *testing.T) {
	tests := []struct {
		name string
		x2   float64
		y2   float64
	}{
		{"gap of 1.6 line heights", 100, 700 - 19.2},
		{"indented beyond tolerance", 120, 688},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frags := []model.TextFragment{
				makeFragment("Alpha", 100, 700, 30),
				makeFragment("Beta", tt.x2, tt.y2, 25),
			}
			got := NewAssembler().Assemble(frags)
			if len(got) != 2 {
				t.Fatalf("Assemble() returned %d paragraphs, want 2", len(got))
			}
			if got[0].Text != "Alpha" || got[1].Text != "Beta" {
				t.Errorf("paragraphs = %q, %q, want Alpha, Beta", got[0].Text, got[1].Text)
			}
		})
	}
}

func TestAssembler_IndentWithinTolerance(t *testing.T) {
	frags := []model.TextFragment{
		makeFragment("Alpha", 100, 700, 30),
		makeFragment("Beta", 110, 688, 25),
	}
	if got := NewAssembler().Assemble(frags); len(got) != 1 {
		t.Errorf("Assemble() returned %d paragraphs, want 1", len(got))
	}
}

func TestAssembler_PageOrder(t *testing.T) {
	second := makeFragment("Later", 100, 700, 25)
	second.Page = 2
	frags := []model.TextFragment{second, makeFragment("First", 100, 100, 25)}

	got := NewAssembler().Assemble(frags)
	if len(got) != 2 {
		t.Fatalf("Assemble() returned %d paragraphs, want 2", len(got))
	}
	if got[0].Page != 1 || got[1].Page != 2 {
		t.Errorf("pages = %d, %d, want 1, 2", got[0].Page, got[1].Page)
	}
	if frags[0].Page != 2 {
		t.Error("Assemble() reordered its input")
	}
}

func TestAssembler_Configured(t *testing.T) {
	config := DefaultConfig()
	config.ParagraphGapFactor = 3
	a := NewAssemblerWithConfig(config)
	if a.Config().ParagraphGapFactor != 3 {
		t.Errorf("ParagraphGapFactor = %v, want 3", a.Config().ParagraphGapFactor)
	}
	frags := []model.TextFragment{
		makeFragment("Alpha", 100, 700, 30),
		makeFragment("Beta", 100, 700-19.2, 25),
	}
	if got := a.Assemble(frags); len(got) != 1 {
		t.Errorf("Assemble() returned %d paragraphs, want 1 with a wider gap", len(got))
	}
}

func TestGroupLines_RunningMean(t *testing.T) {
	lines := groupLines([]model.TextFragment{
		makeFragment("a", 100, 700, 5),
		makeFragment("b", 110, 702, 5),
		makeFragment("c", 120, 705, 5),
		makeFragment("d", 100, 690, 5),
	}, 0.4)
	if len(lines) != 2 {
		t.Fatalf("groupLines() returned %d lines, want 2", len(lines))
	}
	if lines[0].count != 3 {
		t.Errorf("first line holds %d fragments, want 3", lines[0].count)
	}
	if math.Abs(lines[0].y-(700+702+705)/3.0) > 1e-9 {
		t.Errorf("first line y = %v, want running mean", lines[0].y)
	}
}

func TestBuildLine_EmissionOrderForOverlaps(t *testing.T) {
	b := makeFragment("b", 100, 700, 5)
	b.Seq = 2
	a := makeFragment("a", 100.5, 700, 5)
	a.Seq = 1

	frags := []model.TextFragment{b, a}
	sortFragments(frags)
	lines := groupLines(frags, 0.4)
	ln, ok := buildLine(1, lines[0], DefaultConfig())
	if !ok {
		t.Fatal("buildLine() returned no line")
	}
	if ln.Text != "ab" {
		t.Errorf("Text = %q, want %q", ln.Text, "ab")
	}
	if ln.BBox.Y2 != 703 || ln.BBox.Y1 != 692 {
		t.Errorf("BBox = %+v, want y 692..703", ln.BBox)
	}
}
