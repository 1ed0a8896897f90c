package assemble

import (
	"sort"

	"github.com/tsawler/layoutkit/layout"
	"github.com/tsawler/layoutkit/model"
	"github.com/tsawler/layoutkit/tables"
)

// bannerFontSize is the font size given to banner texts re-emitted as
// fragments.
const bannerFontSize = 12.0

// Builder turns merged tables and the page fragments into the final,
// ordered component list.
type Builder struct {
	config    Config
	assembler *layout.Assembler
}

// NewBuilder creates a builder with default configuration
func NewBuilder() *Builder {
	return NewBuilderWithConfig(DefaultConfig())
}

// NewBuilderWithConfig creates a builder with custom configuration
func NewBuilderWithConfig(config Config) *Builder {
	return &Builder{
		config:    config,
		assembler: layout.NewAssemblerWithConfig(config.Layout),
	}
}

// Build normalizes the tables, reshapes their rows, assembles paragraphs
// from the fragments no table covers and returns all components ordered by
// page, then top to bottom. Inputs are not modified.
func (b *Builder) Build(ts []*model.RawTable, frags []model.TextFragment) []model.Component {
	ts = b.Tables(ts)

	comps := make([]model.Component, 0, len(ts))
	for _, t := range ts {
		comps = append(comps, b.tableComponent(t))
	}

	comps = append(comps, b.Texts(ts, frags)...)
	SortComponents(comps)
	return comps
}

// Tables runs both normalizers and drops text tables duplicating a line
// table.
func (b *Builder) Tables(ts []*model.RawTable) []*model.RawTable {
	ts = tables.NormalizeStructureAll(ts, b.config.Tables)
	ts = tables.NormalizeTextTables(ts, b.config.Tables)
	return dedupeTextVsLine(ts)
}

// Texts assembles text components from fragments outside every table plus
// the tables' banners.
func (b *Builder) Texts(ts []*model.RawTable, frags []model.TextFragment) []model.Component {
	outside := OutsideFragments(ts, frags)
	paragraphs := b.assembler.Assemble(outside)

	texts := make([]model.Component, 0, len(paragraphs))
	for _, p := range paragraphs {
		texts = append(texts, model.Component{
			Type: model.ComponentText,
			Page: p.Page,
			BBox: p.BBox,
			Text: &model.TextComponent{Text: p.Text, Fragments: p.Fragments},
		})
	}
	return dedupeLabels(texts)
}

func (b *Builder) tableComponent(t *model.RawTable) model.Component {
	mode := b.config.DataMode
	if mode == "" {
		mode = model.DataModeArray
	}
	return model.Component{
		Type: model.ComponentTable,
		Page: t.Page,
		BBox: t.BBox,
		Table: &model.TableComponent{
			Data:          Reshape(t.Rows, mode, b.config.DataModeKey, b.config.DataModeValue),
			Headers:       t.Headers,
			Matrix:        t.Matrix,
			ColumnCenters: t.ColumnCenters,
			RowBaselines:  t.RowBaselines,
			Origin:        t.Origin,
			DataMode:      mode,
			Cells:         t.Cells,
		},
	}
}

// BannerFragments re-emits detached banners as fragments anchored at the
// top-left corner of their cell.
func BannerFragments(ts []*model.RawTable) []model.TextFragment {
	var out []model.TextFragment
	for _, t := range ts {
		for _, bn := range t.Banners {
			out = append(out, model.TextFragment{
				Page:     bn.Page,
				Text:     bn.Text,
				X:        bn.BBox.X1,
				Y:        bn.BBox.Y2,
				Width:    bn.BBox.Width(),
				FontSize: bannerFontSize,
			})
		}
	}
	return out
}

// OutsideFragments returns the fragments whose origin lies in no table box
// on their page, followed by the banner fragments.
func OutsideFragments(ts []*model.RawTable, frags []model.TextFragment) []model.TextFragment {
	out := make([]model.TextFragment, 0, len(frags))
	for _, f := range frags {
		if !insideAnyTable(f, ts) {
			out = append(out, f)
		}
	}
	return append(out, BannerFragments(ts)...)
}

func insideAnyTable(f model.TextFragment, ts []*model.RawTable) bool {
	p := model.Point{X: f.X, Y: f.Y}
	for _, t := range ts {
		if t.Page == f.Page && t.BBox.Contains(p) {
			return true
		}
	}
	return false
}

// SortComponents orders components by ascending page, then descending top
// edge. Ties keep their relative order.
func SortComponents(comps []model.Component) {
	sort.SliceStable(comps, func(i, j int) bool {
		if comps[i].Page != comps[j].Page {
			return comps[i].Page < comps[j].Page
		}
		return comps[i].Top() > comps[j].Top()
	})
}
