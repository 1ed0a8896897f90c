package assemble

import (
	"encoding/json"
	"testing"

	"github.com/tsawler/layoutkit/model"
)

func produceRows() []model.Row {
	headers := []string{"Code", "Name", "Qty"}
	return []model.Row{
		model.NewRow(headers, []string{"A1", "Apple", "3"}, false),
		model.NewRow(headers, []string{"B2", "Pear", "10"}, false),
		model.NewRow(headers, []string{"A1", "Plum", "7"}, false),
	}
}

func marshal(t *testing.T, d model.TableData) string {
	t.Helper()
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	return string(b)
}

func TestReshape(t *testing.T) {
	tests := []struct {
		name  string
		mode  model.DataMode
		key   string
		value string
		want  string
	}{
		{"array", model.DataModeArray, "", "",
			`[{"Code":"A1","Name":"Apple","Qty":3},{"Code":"B2","Name":"Pear","Qty":10},{"Code":"A1","Name":"Plum","Qty":7}]`},
		{"map first column", model.DataModeMapFirstCol, "", "",
			`{"A1":{"Name":"Plum","Qty":7},"B2":{"Name":"Pear","Qty":10}}`},
		{"map first to last", model.DataModeMapFirstToLast, "", "",
			`{"A1":7,"B2":10}`},
		{"map key", model.DataModeMapKey, "Name", "",
			`{"Apple":{"Code":"A1","Qty":3},"Pear":{"Code":"B2","Qty":10},"Plum":{"Code":"A1","Qty":7}}`},
		{"map key with value", model.DataModeMapKey, "Name", "Qty",
			`{"Apple":3,"Pear":10,"Plum":7}`},
		{"map key with missing value", model.DataModeMapKey, "Name", "Price",
			`{}`},
		{"map key with missing key", model.DataModeMapKey, "Price", "",
			`{}`},
		{"map key without key", model.DataModeMapKey, "", "Qty",
			`[{"Code":"A1","Name":"Apple","Qty":3},{"Code":"B2","Name":"Pear","Qty":10},{"Code":"A1","Name":"Plum","Qty":7}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := marshal(t, Reshape(produceRows(), tt.mode, tt.key, tt.value))
			if got != tt.want {
				t.Errorf("Reshape() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestReshape_FirstToLastNeedsTwoColumns(t *testing.T) {
	rows := []model.Row{model.NewRow([]string{"Only"}, []string{"x"}, false)}
	if d := Reshape(rows, model.DataModeMapFirstToLast, "", ""); d.Len() != 0 {
		t.Errorf("Len() = %d, want 0", d.Len())
	}
}

func TestReshape_EmptyArray(t *testing.T) {
	if got := marshal(t, Reshape(nil, model.DataModeArray, "", "")); got != "[]" {
		t.Errorf("Reshape(nil) = %s, want []", got)
	}
}
