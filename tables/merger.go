package tables

import "github.com/tsawler/layoutkit/model"

// Merger resolves conflicts between text and line tables. Line tables are
// never dropped; a text table is dropped when a line table on the same page
// covers it closely enough under one of the enabled rules.
type Merger struct {
	config Config
}

// NewMerger creates a merger with default configuration.
func NewMerger() *Merger {
	return NewMergerWithConfig(DefaultConfig())
}

// NewMergerWithConfig creates a merger with the given configuration.
func NewMergerWithConfig(config Config) *Merger {
	return &Merger{config: config}
}

// Merge returns the surviving tables in their original order.
func (m *Merger) Merge(tables []*model.RawTable) []*model.RawTable {
	if m.config.DisableTextTables {
		var out []*model.RawTable
		for _, t := range tables {
			if t.Origin == model.OriginLine {
				out = append(out, t.Clone())
			}
		}
		return out
	}

	var lines []*model.RawTable
	for _, t := range tables {
		if t.Origin == model.OriginLine {
			lines = append(lines, t)
		}
	}

	out := make([]*model.RawTable, 0, len(tables))
	for _, t := range tables {
		if m.config.PreferLineTables && t.Origin == model.OriginText && m.superseded(t, lines) {
			continue
		}
		out = append(out, t.Clone())
	}
	return out
}

// superseded reports whether any same-page line table wins over t.
func (m *Merger) superseded(t *model.RawTable, lines []*model.RawTable) bool {
	cfg := m.config
	tCols := t.ColCount()
	for _, l := range lines {
		if l.Page != t.Page {
			continue
		}
		lCols := l.ColCount()
		contain := t.BBox.Containment(l.BBox)
		hCover := t.BBox.HorizontalCover(l.BBox)
		vOverlap := t.BBox.VerticalOverlap(l.BBox)

		if cfg.DropTextIfLineContains && contain >= cfg.ContainmentRatio && lCols-tCols >= cfg.ContainColumnsAdvantage {
			return true
		}
		if cfg.DropTextIfLineMoreColumns && lCols-tCols >= cfg.MinColumnsAdvantage &&
			hCover >= cfg.HorizontalCoverThreshold && vOverlap >= cfg.VerticalOverlapThreshold {
			return true
		}
		if cfg.DropTextIfLineMoreColumns && lCols > tCols && t.BBox.IoU(l.BBox) >= cfg.IoUMin {
			return true
		}
		if cfg.DropNestedTextTables && contain >= cfg.NestedAreaRatio && vOverlap >= cfg.NestedRowOverlapRatio {
			return true
		}
	}
	return false
}
