package layoutkit

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/tsawler/layoutkit/config"
	"github.com/tsawler/layoutkit/format"
	"github.com/tsawler/layoutkit/model"
	"github.com/tsawler/layoutkit/source"
	"github.com/tsawler/layoutkit/source/pdfsource"
)

// Extractor provides a fluent interface for extracting components from PDF
// files and page dumps. Each configuration method returns a new Extractor
// instance, making it safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source: a file name or an already loaded document
	filename string
	src      source.Source

	// Configuration
	options *config.Options
	pages   []int
	logger  *slog.Logger
	ctx     context.Context
	strict  bool

	// Accumulated error (fail-fast)
	err error

	// Warnings accumulated during configuration
	warnings []Warning
}

// clone creates a copy of the Extractor with a deep copy of options.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		src:      e.src,
		options:  cloneOptions(e.options),
		pages:    append([]int(nil), e.pages...),
		logger:   e.logger,
		ctx:      e.ctx,
		strict:   e.strict,
		err:      e.err,
		warnings: append([]Warning(nil), e.warnings...),
	}
}

func (e *Extractor) log() *slog.Logger {
	if e.logger != nil {
		return e.logger
	}
	return slog.Default()
}

func (e *Extractor) context() context.Context {
	if e.ctx != nil {
		return e.ctx
	}
	return context.Background()
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Components runs the pipeline and returns the document's tables and
// paragraphs ordered by page, then top to bottom. Warnings report options
// that were ignored and detectors that could not run.
//
// Example:
//
//	comps, warnings, err := layoutkit.Open("document.pdf").Components()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", layoutkit.FormatWarnings(warnings))
//	}
func (e *Extractor) Components() ([]model.Component, []Warning, error) {
	src, err := e.Source()
	if err != nil {
		return nil, nil, err
	}
	warnings := append([]Warning(nil), e.warnings...)
	if len(src.Fragments()) == 0 && len(src.Lines()) == 0 {
		warnings = append(warnings, Warning{Message: "document has no text or lines"})
	}

	comps, pw := NewPipeline(e.options, e.log()).Run(src)
	return comps, append(warnings, pw...), nil
}

// Source loads the document and applies the page selection.
func (e *Extractor) Source() (source.Source, error) {
	if e.err != nil {
		return nil, e.err
	}
	src := e.src
	if src == nil {
		var err error
		if src, err = e.load(); err != nil {
			return nil, err
		}
	}
	return selectPages(src, e.pages)
}

// PageCount returns the number of pages after page selection.
func (e *Extractor) PageCount() (int, error) {
	src, err := e.Source()
	if err != nil {
		return 0, err
	}
	return len(src.Pages()), nil
}

// load reads the file named by the extractor. The format follows the
// file extension and falls back to sniffing the content.
func (e *Extractor) load() (source.Source, error) {
	if e.filename == "" {
		return nil, fmt.Errorf("no filename specified")
	}
	f, err := os.Open(e.filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	kind := format.Detect(e.filename)
	if kind == format.Unknown {
		if kind, err = format.DetectFromReader(f); err != nil {
			return nil, fmt.Errorf("failed to detect format: %w", err)
		}
	}

	switch kind {
	case format.PDF:
		doc, err := pdfsource.Read(e.context(), f, pdfsource.Config{Logger: e.log(), Strict: e.strict})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.filename, err)
		}
		return doc, nil
	case format.JSON, format.YAML:
		name := source.FormatJSON
		if kind == format.YAML {
			name = source.FormatYAML
		}
		doc, err := source.DecodeDump(f, name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.filename, err)
		}
		return doc, nil
	default:
		return nil, fmt.Errorf("%w: %s", source.ErrUnknownFormat, e.filename)
	}
}

// selectPages keeps the requested pages of src. An empty selection keeps
// every page; a page outside the document is an error.
func selectPages(src source.Source, pages []int) (source.Source, error) {
	if len(pages) == 0 {
		return src, nil
	}
	geoms := src.Pages()
	known := make(map[int]bool, len(geoms))
	for _, g := range geoms {
		known[g.Page] = true
	}

	keep := make(map[int]bool, len(pages))
	for _, p := range pages {
		if !known[p] {
			return nil, fmt.Errorf("page %d out of range (1-%d)", p, len(geoms))
		}
		keep[p] = true
	}

	var sel []model.PageGeometry
	for _, g := range geoms {
		if keep[g.Page] {
			sel = append(sel, g)
		}
	}
	var frags []model.TextFragment
	for _, f := range src.Fragments() {
		if keep[f.Page] {
			frags = append(frags, f)
		}
	}
	var lines []model.LineSegment
	for _, l := range src.Lines() {
		if keep[l.Page] {
			lines = append(lines, l)
		}
	}
	sort.Slice(sel, func(i, j int) bool { return sel[i].Page < sel[j].Page })
	return source.NewDocument(sel, frags, lines), nil
}
