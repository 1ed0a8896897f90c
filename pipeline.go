package layoutkit

import (
	"log/slog"

	"github.com/tsawler/layoutkit/assemble"
	"github.com/tsawler/layoutkit/config"
	"github.com/tsawler/layoutkit/model"
	"github.com/tsawler/layoutkit/source"
	"github.com/tsawler/layoutkit/tables"
)

// Detector names run by a Pipeline, in order
const (
	DetectorText = "text"
	DetectorLine = "line"
)

// Pipeline runs detection, merging, normalization and final assembly over
// one document. It holds no per-document state and may be reused.
type Pipeline struct {
	options   *config.Options
	logger    *slog.Logger
	detectors []string
}

// NewPipeline creates a pipeline. A nil opts means the defaults and a nil
// logger means slog.Default().
func NewPipeline(opts *config.Options, logger *slog.Logger) *Pipeline {
	if opts == nil {
		opts = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		options:   opts,
		logger:    logger,
		detectors: []string{DetectorText, DetectorLine},
	}
}

// Process runs the default pipeline with opts over src.
func Process(src source.Source, opts *config.Options) []model.Component {
	comps, _ := NewPipeline(opts, nil).Run(src)
	return comps
}

// Run returns the ordered components of src. Detectors missing from the
// registry are skipped with a warning.
func (p *Pipeline) Run(src source.Source) ([]model.Component, []Warning) {
	tc := p.options.TableConfig()
	pages := tables.GroupPages(src.Pages(), src.Fragments(), src.Lines())

	var warnings []Warning
	var raw []*model.RawTable
	for _, name := range p.detectors {
		if name == DetectorText && tc.DisableTextTables {
			continue
		}
		d, err := tables.NewDetector(name, tc)
		if err != nil {
			warnings = append(warnings, warningFrom(err))
			continue
		}
		found := tables.DetectAll(d, pages)
		p.logger.Debug("tables detected", "detector", name, "count", len(found))
		raw = append(raw, found...)
	}

	merged := tables.NewMergerWithConfig(tc).Merge(raw)
	p.logger.Debug("tables merged", "before", len(raw), "after", len(merged))

	comps := assemble.NewBuilderWithConfig(p.options.AssembleConfig()).Build(merged, src.Fragments())
	p.logger.Debug("components built", "pages", len(pages), "components", len(comps))
	return comps, warnings
}
