// Package format detects the input format of a document file.
package format

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
)

// Format is an input format the pipeline can read.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PDF indicates a PDF document.
	PDF
	// JSON indicates a JSON page dump.
	JSON
	// YAML indicates a YAML page dump.
	YAML
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PDF:
		return "PDF"
	case JSON:
		return "JSON"
	case YAML:
		return "YAML"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case PDF:
		return ".pdf"
	case JSON:
		return ".json"
	case YAML:
		return ".yaml"
	default:
		return ""
	}
}

// IsDump reports whether the format is a page dump
func (f Format) IsDump() bool {
	return f == JSON || f == YAML
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return PDF
	case ".json":
		return JSON
	case ".yaml", ".yml":
		return YAML
	default:
		return Unknown
	}
}

// DetectFromMagic checks the leading bytes of a file. A PDF header wins;
// otherwise a document opening with '{' is JSON and one opening with a
// YAML document marker or a "pages:" key is YAML.
func DetectFromMagic(data []byte) Format {
	if bytes.HasPrefix(data, []byte("%PDF")) {
		return PDF
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	switch {
	case len(trimmed) == 0:
		return Unknown
	case trimmed[0] == '{':
		return JSON
	case bytes.HasPrefix(trimmed, []byte("---")), bytes.HasPrefix(trimmed, []byte("pages:")):
		return YAML
	}
	return Unknown
}

// DetectFromReader sniffs the first bytes of r.
func DetectFromReader(r io.ReaderAt) (Format, error) {
	magic := make([]byte, 512)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	return DetectFromMagic(magic[:n]), nil
}
