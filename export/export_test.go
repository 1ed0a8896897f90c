package export

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsawler/layoutkit/model"
)

func sampleComponents() []model.Component {
	headers := []string{"Item", "Qty"}
	rows := []model.Row{
		model.NewRow(headers, []string{"Apple", "3"}, false),
		model.NewRow(headers, []string{"Pipe|Fitting", "10"}, false),
	}
	return []model.Component{
		{
			Type: model.ComponentText,
			Page: 1,
			BBox: model.BBox{X1: 100, Y1: 740, X2: 150, Y2: 752},
			Text: &model.TextComponent{Text: "Price list\n<draft>"},
		},
		{
			Type: model.ComponentTable,
			Page: 1,
			BBox: model.BBox{X1: 100, Y1: 610, X2: 400, Y2: 700},
			Table: &model.TableComponent{
				Data:     model.TableData{Mode: model.DataModeArray, Rows: rows},
				Headers:  headers,
				Matrix:   [][]string{{"Item", "Qty"}, {"Apple", "3"}, {"Pipe|Fitting"}},
				Origin:   model.OriginLine,
				DataMode: model.DataModeArray,
			},
		},
	}
}

func exportString(t *testing.T, format Format) string {
	t.Helper()
	config := DefaultConfig()
	config.Format = format
	out, err := NewExporterWithConfig(config).ExportToString(sampleComponents())
	if err != nil {
		t.Fatalf("Export(%s) error = %v", format, err)
	}
	return out
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name string
		want Format
	}{
		{"json", FormatJSON},
		{"JSONL", FormatJSONL},
		{"md", FormatMarkdown},
		{"markdown", FormatMarkdown},
		{" html ", FormatHTML},
		{"csv", FormatCSV},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.name)
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, %v, want %v", tt.name, got, err, tt.want)
		}
		if got.String() == "unknown" || !strings.HasPrefix(got.FileExtension(), ".") {
			t.Errorf("%v has no name or extension", got)
		}
	}
	if _, err := ParseFormat("pdf"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("ParseFormat(pdf) error = %v, want ErrUnknownFormat", err)
	}
}

func TestExport_JSON(t *testing.T) {
	out := exportString(t, FormatJSON)
	var decoded []map[string]interface{}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(decoded) != 2 || decoded[0]["type"] != "text" || decoded[1]["type"] != "table" {
		t.Errorf("decoded = %v", decoded)
	}
}

func TestExport_JSONEmpty(t *testing.T) {
	out, err := NewExporter().ExportToString(nil)
	if err != nil || strings.TrimSpace(out) != "[]" {
		t.Errorf("Export(nil) = %q, %v, want []", out, err)
	}
}

func TestExport_JSONL(t *testing.T) {
	out := exportString(t, FormatJSONL)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for _, l := range lines {
		if !json.Valid([]byte(l)) {
			t.Errorf("line is not JSON: %s", l)
		}
	}
}

func TestExport_Markdown(t *testing.T) {
	want := "Price list  \n<draft>  \n" +
		"\n" +
		"| Item | Qty |\n" +
		"|---|---|\n" +
		"| Apple | 3 |\n" +
		`| Pipe\|Fitting |  |` + "\n"
	if got := exportString(t, FormatMarkdown); got != want {
		t.Errorf("markdown =\n%q\nwant\n%q", got, want)
	}
}

func TestExport_CSV(t *testing.T) {
	comps := append(sampleComponents(), sampleComponents()[1])
	out, err := NewExporterWithConfig(Config{Format: FormatCSV}).ExportToString(comps)
	if err != nil {
		t.Fatal(err)
	}
	table := "Item,Qty\nApple,3\nPipe|Fitting,\n"
	if want := table + "\n" + table; out != want {
		t.Errorf("csv =\n%q\nwant\n%q", out, want)
	}
}

func TestExport_HTML(t *testing.T) {
	out := exportString(t, FormatHTML)
	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>layoutkit</title>",
		`<p data-page="1">Price list<br/>&lt;draft&gt;</p>`,
		`<table data-page="1" data-origin="line">`,
		"<thead><tr><th>Item</th><th>Qty</th></tr></thead>",
		"<tr><td>Pipe|Fitting</td><td></td></tr>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("html output missing %q\n%s", want, out)
		}
	}
}

func TestExport_UnknownFormat(t *testing.T) {
	err := NewExporterWithConfig(Config{Format: Format(42)}).Export(nil, &strings.Builder{})
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Export() error = %v, want ErrUnknownFormat", err)
	}
}

func TestExportToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.md")
	exp := NewExporterWithConfig(Config{Format: FormatMarkdown})
	if err := exp.ExportToFile(sampleComponents(), path); err != nil {
		t.Fatalf("ExportToFile() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "Price list") {
		t.Errorf("file = %q", data)
	}
}
