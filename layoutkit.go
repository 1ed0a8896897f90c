// Package layoutkit turns the positioned text and ruling lines of a document
// into an ordered list of tables and paragraphs.
//
// Basic usage:
//
//	comps, warnings, err := layoutkit.Open("invoice.pdf").Components()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", layoutkit.FormatWarnings(warnings))
//	}
//
// With options:
//
//	comps, _, err := layoutkit.Open("report.pdf").
//	    Pages(1, 2).
//	    WithOption("table_data_mode", "map_first_col").
//	    WithOption("line_minCols", "3").
//	    Components()
//
// Page dumps in JSON or YAML produced by other extractors are read the
// same way. For documents already in memory use [FromSource], and for the
// bare pipeline without any I/O use [Process].
package layoutkit

import (
	"github.com/tsawler/layoutkit/config"
	"github.com/tsawler/layoutkit/source"
)

// Open returns an Extractor for the PDF or page dump at filename. Nothing
// is read until a terminal operation such as Components is called.
//
// Example:
//
//	comps, warnings, err := layoutkit.Open("document.pdf").Components()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  config.Default(),
	}
}

// FromSource creates an Extractor over an already loaded document.
//
// Example:
//
//	doc, err := source.LoadDump("page-dump.yaml")
//	if err != nil {
//	    // handle error
//	}
//	comps, _, err := layoutkit.FromSource(doc).Components()
func FromSource(src source.Source) *Extractor {
	return &Extractor{
		src:     src,
		options: config.Default(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := layoutkit.Must(layoutkit.Open("document.pdf").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustComponents wraps a call to Components and panics if the error is
// non-nil. Warnings are discarded.
//
// Example:
//
//	comps := layoutkit.MustComponents(layoutkit.Open("document.pdf").Components())
func MustComponents[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
