package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/layoutkit/model"
)

// Dump formats accepted by DecodeDump
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// dump is the on-disk form of a document: page sizes, fragments and line
// segments as produced by an external extractor.
type dump struct {
	Pages     []model.PageGeometry `json:"pages" yaml:"pages"`
	Fragments []model.TextFragment `json:"fragments" yaml:"fragments"`
	Lines     []lineDump           `json:"lines" yaml:"lines"`
}

type lineDump struct {
	Page int     `json:"page" yaml:"page"`
	X1   float64 `json:"x1" yaml:"x1"`
	Y1   float64 `json:"y1" yaml:"y1"`
	X2   float64 `json:"x2" yaml:"x2"`
	Y2   float64 `json:"y2" yaml:"y2"`
}

// LoadDump reads a JSON or YAML dump. The format follows the file
// extension; anything other than .yaml or .yml is read as JSON.
func LoadDump(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dump: %w", err)
	}
	defer f.Close()

	doc, err := DecodeDump(f, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// FormatFor returns the dump format implied by a file name
func FormatFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// DecodeDump decodes a dump in the given format. Fragments without a
// sequence number get their position in the dump.
func DecodeDump(r io.Reader, format string) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read dump: %w", err)
	}

	var d dump
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode json dump: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("decode yaml dump: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	for i := range d.Fragments {
		if d.Fragments[i].Seq == 0 {
			d.Fragments[i].Seq = i
		}
		if d.Fragments[i].Page == 0 {
			d.Fragments[i].Page = 1
		}
	}
	lines := make([]model.LineSegment, 0, len(d.Lines))
	for _, l := range d.Lines {
		page := l.Page
		if page == 0 {
			page = 1
		}
		lines = append(lines, model.NewLineSegment(page, l.X1, l.Y1, l.X2, l.Y2))
	}

	doc := NewDocument(d.Pages, d.Fragments, lines)
	if doc.PageCount() == 0 {
		return nil, ErrNoPages
	}
	return doc, nil
}

// EncodeDump writes src as a dump in the given format.
func EncodeDump(w io.Writer, src Source, format string) error {
	d := dump{
		Pages:     src.Pages(),
		Fragments: src.Fragments(),
	}
	for _, l := range src.Lines() {
		d.Lines = append(d.Lines, lineDump{Page: l.Page, X1: l.X1, Y1: l.Y1, X2: l.X2, Y2: l.Y2})
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
