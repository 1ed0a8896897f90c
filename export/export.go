package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tsawler/layoutkit/model"
)

// Format defines the available export formats
type Format int

const (
	// FormatJSON exports the component list as one JSON array
	FormatJSON Format = iota
	// FormatJSONL exports one JSON component per line
	FormatJSONL
	// FormatMarkdown exports paragraphs and pipe tables
	FormatMarkdown
	// FormatHTML exports a standalone HTML document
	FormatHTML
	// FormatCSV exports the tables only, separated by blank lines
	FormatCSV
)

// ErrUnknownFormat is returned for a format name that is not recognized.
var ErrUnknownFormat = errors.New("unknown export format")

// String returns the format name
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatJSONL:
		return "jsonl"
	case FormatMarkdown:
		return "markdown"
	case FormatHTML:
		return "html"
	case FormatCSV:
		return "csv"
	default:
		return "unknown"
	}
}

// FileExtension returns the typical file extension for this format
func (f Format) FileExtension() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatJSONL:
		return ".jsonl"
	case FormatMarkdown:
		return ".md"
	case FormatHTML:
		return ".html"
	case FormatCSV:
		return ".csv"
	default:
		return ".txt"
	}
}

// ParseFormat returns the format with the given name. "md" is accepted
// for markdown.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "jsonl":
		return FormatJSONL, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	case "csv":
		return FormatCSV, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Config holds configuration options for export
type Config struct {
	// Format specifies the export format. Default: FormatJSON
	Format Format

	// PrettyPrint indents JSON output. Default: true
	PrettyPrint bool

	// CSVDelimiter separates CSV fields. Default: ','
	CSVDelimiter rune

	// Title is the HTML document title. Default: "layoutkit"
	Title string
}

// DefaultConfig returns sensible defaults for export configuration
func DefaultConfig() Config {
	return Config{
		Format:       FormatJSON,
		PrettyPrint:  true,
		CSVDelimiter: ',',
		Title:        "layoutkit",
	}
}

// Exporter writes components in one of the export formats
type Exporter struct {
	config Config
}

// NewExporter creates a new exporter with default configuration
func NewExporter() *Exporter {
	return &Exporter{config: DefaultConfig()}
}

// NewExporterWithConfig creates an exporter with custom configuration
func NewExporterWithConfig(config Config) *Exporter {
	return &Exporter{config: config}
}

// Export writes comps to w
func (e *Exporter) Export(comps []model.Component, w io.Writer) error {
	switch e.config.Format {
	case FormatJSON:
		return e.exportJSON(comps, w)
	case FormatJSONL:
		return e.exportJSONL(comps, w)
	case FormatMarkdown:
		return e.exportMarkdown(comps, w)
	case FormatHTML:
		return e.exportHTML(comps, w)
	case FormatCSV:
		return e.exportCSV(comps, w)
	default:
		return fmt.Errorf("%w: %v", ErrUnknownFormat, e.config.Format)
	}
}

// ExportToFile writes comps to a file
func (e *Exporter) ExportToFile(comps []model.Component, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	if err := e.Export(comps, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ExportToString returns comps rendered as a string
func (e *Exporter) ExportToString(comps []model.Component) (string, error) {
	var buf bytes.Buffer
	if err := e.Export(comps, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (e *Exporter) newEncoder(w io.Writer) *json.Encoder {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if e.config.PrettyPrint {
		enc.SetIndent("", "  ")
	}
	return enc
}

func (e *Exporter) exportJSON(comps []model.Component, w io.Writer) error {
	if comps == nil {
		comps = []model.Component{}
	}
	return e.newEncoder(w).Encode(comps)
}

func (e *Exporter) exportJSONL(comps []model.Component, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for i, c := range comps {
		if err := enc.Encode(c); err != nil {
			return fmt.Errorf("encoding component %d: %w", i, err)
		}
	}
	return nil
}

func (e *Exporter) exportCSV(comps []model.Component, w io.Writer) error {
	cw := csv.NewWriter(w)
	if e.config.CSVDelimiter != 0 {
		cw.Comma = e.config.CSVDelimiter
	}

	first := true
	for i, c := range comps {
		if c.Table == nil {
			continue
		}
		if !first {
			if err := cw.Write(nil); err != nil {
				return fmt.Errorf("writing CSV separator: %w", err)
			}
		}
		first = false
		for _, row := range tableRows(c.Table) {
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("writing CSV row of component %d: %w", i, err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// tableRows returns the header names followed by the data rows of the
// raw matrix, padded to the header width.
func tableRows(t *model.TableComponent) [][]string {
	if len(t.Headers) == 0 {
		return nil
	}
	rows := [][]string{t.Headers}
	if len(t.Matrix) <= 1 {
		return rows
	}
	for _, r := range t.Matrix[1:] {
		row := make([]string, len(t.Headers))
		copy(row, r)
		rows = append(rows, row)
	}
	return rows
}
