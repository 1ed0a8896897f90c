package source

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsawler/layoutkit/model"
)

const yamlDump = `
pages:
  - {page: 2, width: 612, height: 792}
fragments:
  - {page: 1, text: Item, x: 110, y: 680, size: 10, width: 20}
  - {page: 2, text: Qty, x: 210, y: 680, size: 10, width: 15}
lines:
  - {page: 1, x1: 100, y1: 700, x2: 400, y2: 700}
  - {x1: 100, y1: 610, x2: 100, y2: 700}
`

func TestDecodeDump_YAML(t *testing.T) {
	doc, err := DecodeDump(strings.NewReader(yamlDump), FormatYAML)
	if err != nil {
		t.Fatalf("DecodeDump() error = %v", err)
	}

	pages := doc.Pages()
	if len(pages) != 2 {
		t.Fatalf("Pages() = %+v, want 2 pages", pages)
	}
	if pages[0] != model.DefaultPageGeometry(1) {
		t.Errorf("pages[0] = %+v, want default geometry for page 1", pages[0])
	}
	if pages[1].Width != 612 || pages[1].Height != 792 {
		t.Errorf("pages[1] = %+v, want 612x792", pages[1])
	}

	frags := doc.Fragments()
	if len(frags) != 2 || frags[1].Text != "Qty" || frags[1].Seq != 1 || frags[0].FontSize != 10 {
		t.Errorf("Fragments() = %+v", frags)
	}

	lines := doc.Lines()
	if len(lines) != 2 {
		t.Fatalf("Lines() = %+v, want 2", lines)
	}
	if !lines[0].IsHorizontal() || lines[0].Length != 300 {
		t.Errorf("lines[0] = %+v, want horizontal of length 300", lines[0])
	}
	if !lines[1].IsVertical() || lines[1].Page != 1 {
		t.Errorf("lines[1] = %+v, want vertical on page 1", lines[1])
	}
}

func TestDecodeDump_JSON(t *testing.T) {
	in := `{"fragments": [{"page": 3, "text": "x", "x": 1, "y": 2, "size": 9, "seq": 7}]}`
	doc, err := DecodeDump(strings.NewReader(in), FormatJSON)
	if err != nil {
		t.Fatalf("DecodeDump() error = %v", err)
	}
	if doc.PageCount() != 1 || doc.Pages()[0].Page != 3 {
		t.Errorf("Pages() = %+v, want page 3", doc.Pages())
	}
	if doc.Fragments()[0].Seq != 7 {
		t.Errorf("Seq = %d, want 7 kept", doc.Fragments()[0].Seq)
	}
}

func TestDecodeDump_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format string
		want   error
	}{
		{"unknown format", "{}", "xml", ErrUnknownFormat},
		{"empty document", "{}", FormatJSON, ErrNoPages},
		{"empty yaml", "pages: []\n", FormatYAML, ErrNoPages},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeDump(strings.NewReader(tt.input), tt.format)
			if !errors.Is(err, tt.want) {
				t.Errorf("DecodeDump() error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := DecodeDump(strings.NewReader("{"), FormatJSON); err == nil {
		t.Error("DecodeDump() of truncated json should fail")
	}
}

func TestFormatFor(t *testing.T) {
	tests := map[string]string{
		"a.yaml":     FormatYAML,
		"b.YML":      FormatYAML,
		"c.json":     FormatJSON,
		"no-ext":     FormatJSON,
		"d.dump.yml": FormatYAML,
	}
	for path, want := range tests {
		if got := FormatFor(path); got != want {
			t.Errorf("FormatFor(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestLoadDump(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.yml")
	if err := os.WriteFile(path, []byte(yamlDump), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := LoadDump(path)
	if err != nil {
		t.Fatalf("LoadDump() error = %v", err)
	}
	if len(doc.Fragments()) != 2 {
		t.Errorf("Fragments() = %d, want 2", len(doc.Fragments()))
	}

	if _, err := LoadDump(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadDump(missing) error = %v, want os.ErrNotExist", err)
	}
}

func TestEncodeDump_RoundTrip(t *testing.T) {
	src, err := DecodeDump(strings.NewReader(yamlDump), FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	for _, format := range []string{FormatJSON, FormatYAML} {
		var buf bytes.Buffer
		if err := EncodeDump(&buf, src, format); err != nil {
			t.Fatalf("EncodeDump(%s) error = %v", format, err)
		}
		back, err := DecodeDump(&buf, format)
		if err != nil {
			t.Fatalf("DecodeDump(%s) error = %v", format, err)
		}
		if len(back.Pages()) != 2 || len(back.Fragments()) != 2 || len(back.Lines()) != 2 {
			t.Errorf("%s round trip = %d pages, %d fragments, %d lines", format,
				len(back.Pages()), len(back.Fragments()), len(back.Lines()))
		}
	}

	if err := EncodeDump(&bytes.Buffer{}, src, "xml"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("EncodeDump(xml) error = %v, want ErrUnknownFormat", err)
	}
}
