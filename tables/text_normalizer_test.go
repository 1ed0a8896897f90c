package tables

import (
	"testing"

	"github.com/tsawler/layoutkit/model"
)

func TestNormalizeTextTables_ShiftedHeader(t *testing.T) {
	in := newTable(model.OriginText, []string{"", "Qty", "Price"},
		[]string{"3", "", "1.50"},
		[]string{"10", "", "2.25"},
	)
	in.ColumnCenters = []float64{100, 150, 200}

	out := NormalizeTextTables([]*model.RawTable{in}, DefaultConfig())[0]

	if !equalStrings(out.Headers, []string{"Qty", "Price"}) {
		t.Fatalf("Headers = %v, want [Qty Price]", out.Headers)
	}
	if v, _ := out.Rows[1].Get("Qty"); v.Int != 10 {
		t.Errorf("Rows[1][Qty] = %+v, want 10", v)
	}
	if len(out.ColumnCenters) != 2 || out.ColumnCenters[1] != 200 {
		t.Errorf("ColumnCenters = %v, want [100 200]", out.ColumnCenters)
	}
	if len(in.Headers) != 3 {
		t.Error("NormalizeTextTables() modified its input")
	}
}

func TestNormalizeTextTables_LetterFallback(t *testing.T) {
	in := newTable(model.OriginText, []string{"", "B", "a"},
		[]string{"x", "y", "z"},
	)
	out := NormalizeTextTables([]*model.RawTable{in}, DefaultConfig())[0]
	if !equalStrings(out.Headers, []string{"a", "B", "a_2"}) {
		t.Errorf("Headers = %v, want [a B a_2]", out.Headers)
	}
}

func TestNormalizeTextTables_Passthrough(t *testing.T) {
	line := newTable(model.OriginLine, []string{"A", "B"}, []string{"1", ""})
	text := newTable(model.OriginText, []string{"A", "B"}, []string{"1", ""})

	out := NormalizeTextTables([]*model.RawTable{line}, DefaultConfig())
	if !equalStrings(out[0].Headers, []string{"A", "B"}) {
		t.Errorf("line table Headers = %v, want [A B]", out[0].Headers)
	}

	config := DefaultConfig()
	config.TextTableNormalize = false
	out = NormalizeTextTables([]*model.RawTable{text}, config)
	if !equalStrings(out[0].Headers, []string{"A", "B"}) {
		t.Errorf("disabled normalizer Headers = %v, want [A B]", out[0].Headers)
	}

	out = NormalizeTextTables([]*model.RawTable{text}, DefaultConfig())
	if !equalStrings(out[0].Headers, []string{"A"}) {
		t.Errorf("Headers = %v, want [A]", out[0].Headers)
	}
}
