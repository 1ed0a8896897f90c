package model

import "encoding/json"

// ComponentType identifies the kind of a Component
type ComponentType string

const (
	ComponentTable ComponentType = "table"
	ComponentText  ComponentType = "text"
)

// Component is one unit of the final document model: a table or a
// paragraph. Exactly one of Table and Text is set, matching Type.
type Component struct {
	Type  ComponentType
	Page  int
	BBox  BBox
	Table *TableComponent
	Text  *TextComponent
}

// TableComponent carries the data and metadata of a table component.
type TableComponent struct {
	Data          TableData
	Headers       []string
	Matrix        [][]string
	ColumnCenters []float64
	RowBaselines  []float64
	Origin        Origin
	DataMode      DataMode
	Cells         [][]Cell
}

// TextComponent carries a paragraph and the fragments it was built from.
type TextComponent struct {
	Text      string
	Fragments []FragmentRef
}

// FragmentRef is the subset of a fragment kept in text component params.
type FragmentRef struct {
	Text  string  `json:"text"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Width float64 `json:"width"`
	Size  float64 `json:"size"`
}

// Top returns the upper edge of the component
func (c Component) Top() float64 {
	return c.BBox.Y2
}

// String returns the paragraph text for text components and an empty
// string for tables.
func (c Component) String() string {
	if c.Text != nil {
		return c.Text.Text
	}
	return ""
}

type tableParams struct {
	Page          int        `json:"page"`
	Headers       []string   `json:"headers"`
	RawMatrix     [][]string `json:"raw_matrix"`
	ColumnCenters []float64  `json:"column_centers"`
	RowBaselines  []float64  `json:"row_baselines"`
	BBox          BBox       `json:"bbox"`
	Origin        Origin     `json:"origin"`
	DataMode      DataMode   `json:"data_mode"`
	Cells         [][]Cell   `json:"cells,omitempty"`
}

type textParams struct {
	Page      int           `json:"page"`
	BBox      BBox          `json:"bbox"`
	Fragments []FragmentRef `json:"fragments"`
}

// Params returns the component's params object as it appears in the
// serialized form.
func (c Component) Params() interface{} {
	switch {
	case c.Table != nil:
		return tableParams{
			Page:          c.Page,
			Headers:       nonNilStrings(c.Table.Headers),
			RawMatrix:     c.Table.Matrix,
			ColumnCenters: nonNilFloats(c.Table.ColumnCenters),
			RowBaselines:  nonNilFloats(c.Table.RowBaselines),
			BBox:          c.BBox,
			Origin:        c.Table.Origin,
			DataMode:      c.Table.DataMode,
			Cells:         c.Table.Cells,
		}
	case c.Text != nil:
		frags := c.Text.Fragments
		if frags == nil {
			frags = []FragmentRef{}
		}
		return textParams{Page: c.Page, BBox: c.BBox, Fragments: frags}
	default:
		return map[string]interface{}{"page": c.Page, "bbox": c.BBox}
	}
}

// MarshalJSON encodes the component as {type, data, params}.
func (c Component) MarshalJSON() ([]byte, error) {
	var data interface{}
	switch {
	case c.Table != nil:
		data = c.Table.Data
	case c.Text != nil:
		data = c.Text.Text
	}
	return json.Marshal(struct {
		Type   ComponentType `json:"type"`
		Data   interface{}   `json:"data"`
		Params interface{}   `json:"params"`
	}{c.Type, data, c.Params()})
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilFloats(f []float64) []float64 {
	if f == nil {
		return []float64{}
	}
	return f
}
