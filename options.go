package layoutkit

import (
	"context"
	"log/slog"

	"github.com/tsawler/layoutkit/config"
)

// cloneOptions returns a deep copy of opts.
func cloneOptions(opts *config.Options) *config.Options {
	if opts == nil {
		return config.Default()
	}
	c := *opts
	if opts.MergeLineMinColumnsAdvantage != nil {
		n := *opts.MergeLineMinColumnsAdvantage
		c.MergeLineMinColumnsAdvantage = &n
	}
	return &c
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Pages specifies which pages to extract from (1-indexed).
// Multiple calls are cumulative.
//
// Example:
//
//	comps, _, err := layoutkit.Open("doc.pdf").Pages(1, 3, 5).Components()
func (e *Extractor) Pages(pages ...int) *Extractor {
	newExt := e.clone()
	newExt.pages = append(newExt.pages, pages...)
	return newExt
}

// PageRange specifies a range of pages to extract (1-indexed, inclusive).
func (e *Extractor) PageRange(start, end int) *Extractor {
	newExt := e.clone()
	for i := start; i <= end; i++ {
		newExt.pages = append(newExt.pages, i)
	}
	return newExt
}

// WithOptions replaces the whole option set.
func (e *Extractor) WithOptions(opts *config.Options) *Extractor {
	newExt := e.clone()
	newExt.options = cloneOptions(opts)
	return newExt
}

// WithOption sets one option by its config name. A name or value that
// cannot be used is reported as a warning and the option keeps its value.
//
// Example:
//
//	comps, _, err := layoutkit.Open("doc.pdf").
//	    WithOption("table_data_mode", "map_key").
//	    WithOption("table_data_mode_key", "Code").
//	    Components()
func (e *Extractor) WithOption(name, value string) *Extractor {
	newExt := e.clone()
	for _, err := range newExt.options.FromMap(map[string]string{name: value}) {
		newExt.warnings = append(newExt.warnings, warningFrom(err))
	}
	return newExt
}

// WithConfigFile loads options from a YAML or JSON file over the defaults.
// An unreadable file makes every terminal operation fail.
func (e *Extractor) WithConfigFile(path string) *Extractor {
	newExt := e.clone()
	opts, warnings, err := config.Load(path)
	if err != nil {
		newExt.err = err
		return newExt
	}
	newExt.options = opts
	for _, w := range warnings {
		newExt.warnings = append(newExt.warnings, warningFrom(w))
	}
	return newExt
}

// WithLogger sets the logger receiving stage counts and reader warnings.
func (e *Extractor) WithLogger(logger *slog.Logger) *Extractor {
	newExt := e.clone()
	newExt.logger = logger
	return newExt
}

// Context sets the context used while reading the document.
func (e *Extractor) Context(ctx context.Context) *Extractor {
	newExt := e.clone()
	newExt.ctx = ctx
	return newExt
}

// Strict turns on strict PDF validation. Damaged files that the relaxed
// reader would accept then fail to open.
func (e *Extractor) Strict() *Extractor {
	newExt := e.clone()
	newExt.strict = true
	return newExt
}
