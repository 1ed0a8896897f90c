package config

import (
	"github.com/tsawler/layoutkit/assemble"
	"github.com/tsawler/layoutkit/layout"
	"github.com/tsawler/layoutkit/model"
	"github.com/tsawler/layoutkit/tables"
)

// Options is the flat, user-facing option set. Field tags carry the option
// names accepted in config files and on the command line.
type Options struct {
	TableDataMode      string `yaml:"table_data_mode" json:"table_data_mode"`
	TableDataModeKey   string `yaml:"table_data_mode_key" json:"table_data_mode_key"`
	TableDataModeValue string `yaml:"table_data_mode_value" json:"table_data_mode_value"`

	TableYTolerance        float64 `yaml:"table_yTolerance" json:"table_yTolerance"`
	TableXTolerance        float64 `yaml:"table_xTolerance" json:"table_xTolerance"`
	TableColMergeTolerance float64 `yaml:"table_colMergeTolerance" json:"table_colMergeTolerance"`
	TableMaxMergeSpan      float64 `yaml:"table_maxMergeSpan" json:"table_maxMergeSpan"`

	LineXTolerance          float64 `yaml:"line_xTolerance" json:"line_xTolerance"`
	LineYTolerance          float64 `yaml:"line_yTolerance" json:"line_yTolerance"`
	LineMinVerticalLength   float64 `yaml:"line_minVerticalLength" json:"line_minVerticalLength"`
	LineMinHorizontalLength float64 `yaml:"line_minHorizontalLength" json:"line_minHorizontalLength"`
	LineMinCols             int     `yaml:"line_minCols" json:"line_minCols"`
	LineMinRows             int     `yaml:"line_minRows" json:"line_minRows"`
	LineMaxPageAreaRatio    float64 `yaml:"line_max_page_area_ratio" json:"line_max_page_area_ratio"`
	LineMinFilledCellsRatio float64 `yaml:"line_min_filled_cells_ratio" json:"line_min_filled_cells_ratio"`
	LineStripEmptyRows      bool    `yaml:"line_strip_empty_rows" json:"line_strip_empty_rows"`
	TableCellCharGapFactor  float64 `yaml:"table_cell_char_gap_factor" json:"table_cell_char_gap_factor"`

	DisableTextTables              bool    `yaml:"disable_text_tables" json:"disable_text_tables"`
	PreferLineTables               bool    `yaml:"prefer_line_tables" json:"prefer_line_tables"`
	MergeContainmentRatio          float64 `yaml:"merge_containment_ratio" json:"merge_containment_ratio"`
	MergeDropTextIfLineContains    bool    `yaml:"merge_drop_text_if_line_contains" json:"merge_drop_text_if_line_contains"`
	MergeDropTextIfLineMoreColumns bool    `yaml:"merge_drop_text_if_line_more_columns" json:"merge_drop_text_if_line_more_columns"`
	MergeLineMinColumnsAdvantage   *int    `yaml:"merge_line_min_columns_advantage" json:"merge_line_min_columns_advantage"`
	MergeHorizontalCoverThreshold  float64 `yaml:"merge_horizontal_cover_threshold" json:"merge_horizontal_cover_threshold"`
	MergeVerticalOverlapThreshold  float64 `yaml:"merge_vertical_overlap_threshold" json:"merge_vertical_overlap_threshold"`
	MergeIoUMin                    float64 `yaml:"merge_iou_min" json:"merge_iou_min"`
	MergeDropNestedTextTables      bool    `yaml:"merge_drop_nested_text_tables" json:"merge_drop_nested_text_tables"`
	NestedTextTableAreaRatio       float64 `yaml:"nested_text_table_area_ratio" json:"nested_text_table_area_ratio"`
	NestedTextTableRowOverlapRatio float64 `yaml:"nested_text_table_row_overlap_ratio" json:"nested_text_table_row_overlap_ratio"`
	TextTableNormalize             bool    `yaml:"text_table_normalize" json:"text_table_normalize"`

	TextLineYToleranceFactor     float64 `yaml:"text_line_y_tolerance_factor" json:"text_line_y_tolerance_factor"`
	TextCharGapFactor            float64 `yaml:"text_char_gap_factor" json:"text_char_gap_factor"`
	TextWordGapFactor            float64 `yaml:"text_word_gap_factor" json:"text_word_gap_factor"`
	TextParagraphGapFactor       float64 `yaml:"text_paragraph_gap_factor" json:"text_paragraph_gap_factor"`
	TextIndentTolerance          float64 `yaml:"text_indent_tolerance" json:"text_indent_tolerance"`
	TextTrimLineEdges            bool    `yaml:"text_trim_line_edges" json:"text_trim_line_edges"`
	TextPreserveMultipleSpaces   bool    `yaml:"text_preserve_multiple_spaces" json:"text_preserve_multiple_spaces"`
	TextForceSpaceIfPrevTrailing bool    `yaml:"text_force_space_if_prev_trailing" json:"text_force_space_if_prev_trailing"`
	TextJoinRemoveTrailingSpace  bool    `yaml:"text_join_remove_trailing_space" json:"text_join_remove_trailing_space"`

	DisableCasting bool `yaml:"disable_casting" json:"disable_casting"`
}

// Default returns the options with every default applied.
func Default() *Options {
	t := tables.DefaultConfig()
	l := layout.DefaultConfig()
	return &Options{
		TableDataMode: string(model.DataModeArray),

		TableYTolerance:        t.YTolerance,
		TableXTolerance:        t.XTolerance,
		TableColMergeTolerance: t.ColMergeTolerance,
		TableMaxMergeSpan:      t.MaxMergeSpan,

		LineXTolerance:          t.LineXTolerance,
		LineYTolerance:          t.LineYTolerance,
		LineMinVerticalLength:   t.MinVerticalLength,
		LineMinHorizontalLength: t.MinHorizontalLength,
		LineMinCols:             t.MinCols,
		LineMinRows:             t.MinRows,
		LineMaxPageAreaRatio:    t.MaxPageAreaRatio,
		LineMinFilledCellsRatio: t.MinFilledCellsRatio,
		LineStripEmptyRows:      t.StripEmptyRows,
		TableCellCharGapFactor:  t.CellCharGapFactor,

		DisableTextTables:              t.DisableTextTables,
		PreferLineTables:               t.PreferLineTables,
		MergeContainmentRatio:          t.ContainmentRatio,
		MergeDropTextIfLineContains:    t.DropTextIfLineContains,
		MergeDropTextIfLineMoreColumns: t.DropTextIfLineMoreColumns,
		MergeHorizontalCoverThreshold:  t.HorizontalCoverThreshold,
		MergeVerticalOverlapThreshold:  t.VerticalOverlapThreshold,
		MergeIoUMin:                    t.IoUMin,
		MergeDropNestedTextTables:      t.DropNestedTextTables,
		NestedTextTableAreaRatio:       t.NestedAreaRatio,
		NestedTextTableRowOverlapRatio: t.NestedRowOverlapRatio,
		TextTableNormalize:             t.TextTableNormalize,

		TextLineYToleranceFactor:     l.LineYToleranceFactor,
		TextCharGapFactor:            l.CharGapFactor,
		TextWordGapFactor:            l.WordGapFactor,
		TextParagraphGapFactor:       l.ParagraphGapFactor,
		TextIndentTolerance:          l.IndentTolerance,
		TextTrimLineEdges:            l.TrimLineEdges,
		TextPreserveMultipleSpaces:   l.PreserveMultipleSpaces,
		TextForceSpaceIfPrevTrailing: l.ForceSpaceIfPrevTrailing,
		TextJoinRemoveTrailingSpace:  l.JoinRemoveTrailingSpace,

		DisableCasting: t.DisableCasting,
	}
}

// TableConfig returns the detector, merger and normalizer configuration.
func (o *Options) TableConfig() tables.Config {
	t := tables.DefaultConfig()
	t.YTolerance = o.TableYTolerance
	t.XTolerance = o.TableXTolerance
	t.ColMergeTolerance = o.TableColMergeTolerance
	t.MaxMergeSpan = o.TableMaxMergeSpan

	t.LineXTolerance = o.LineXTolerance
	t.LineYTolerance = o.LineYTolerance
	t.MinVerticalLength = o.LineMinVerticalLength
	t.MinHorizontalLength = o.LineMinHorizontalLength
	t.MinCols = o.LineMinCols
	t.MinRows = o.LineMinRows
	t.MaxPageAreaRatio = o.LineMaxPageAreaRatio
	t.MinFilledCellsRatio = o.LineMinFilledCellsRatio
	t.StripEmptyRows = o.LineStripEmptyRows
	t.CellCharGapFactor = o.TableCellCharGapFactor

	t.DisableTextTables = o.DisableTextTables
	t.PreferLineTables = o.PreferLineTables
	t.ContainmentRatio = o.MergeContainmentRatio
	t.DropTextIfLineContains = o.MergeDropTextIfLineContains
	t.DropTextIfLineMoreColumns = o.MergeDropTextIfLineMoreColumns
	// one option drives both column-advantage rules when given
	if o.MergeLineMinColumnsAdvantage != nil {
		t.ContainColumnsAdvantage = *o.MergeLineMinColumnsAdvantage
		t.MinColumnsAdvantage = *o.MergeLineMinColumnsAdvantage
	}
	t.HorizontalCoverThreshold = o.MergeHorizontalCoverThreshold
	t.VerticalOverlapThreshold = o.MergeVerticalOverlapThreshold
	t.IoUMin = o.MergeIoUMin
	t.DropNestedTextTables = o.MergeDropNestedTextTables
	t.NestedAreaRatio = o.NestedTextTableAreaRatio
	t.NestedRowOverlapRatio = o.NestedTextTableRowOverlapRatio
	t.TextTableNormalize = o.TextTableNormalize

	t.DisableCasting = o.DisableCasting
	return t
}

// LayoutConfig returns the paragraph assembler configuration.
func (o *Options) LayoutConfig() layout.Config {
	return layout.Config{
		LineYToleranceFactor:     o.TextLineYToleranceFactor,
		CharGapFactor:            o.TextCharGapFactor,
		WordGapFactor:            o.TextWordGapFactor,
		ParagraphGapFactor:       o.TextParagraphGapFactor,
		IndentTolerance:          o.TextIndentTolerance,
		TrimLineEdges:            o.TextTrimLineEdges,
		PreserveMultipleSpaces:   o.TextPreserveMultipleSpaces,
		ForceSpaceIfPrevTrailing: o.TextForceSpaceIfPrevTrailing,
		JoinRemoveTrailingSpace:  o.TextJoinRemoveTrailingSpace,
	}
}

// AssembleConfig returns the component builder configuration.
func (o *Options) AssembleConfig() assemble.Config {
	return assemble.Config{
		Tables:        o.TableConfig(),
		Layout:        o.LayoutConfig(),
		DataMode:      model.ParseDataMode(o.TableDataMode),
		DataModeKey:   o.TableDataModeKey,
		DataModeValue: o.TableDataModeValue,
	}
}
