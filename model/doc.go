// Package model defines the value types shared by every stage of layout
// reconstruction.
//
// # Inputs
//
// Extraction layers produce three streams per document:
//
//   - [TextFragment] - a positioned run of decoded text with font metadata
//   - [LineSegment] - a drawn straight line, classified by [Orientation]
//   - [PageGeometry] - the media box size of each page
//
// # Tables
//
// Detectors produce [RawTable] values. A raw table keeps the header row and
// data rows as plain strings in Matrix, and the same data cast to [Value] in
// Rows. Casting is lossless-or-string:
//
//	model.Cast("42")   // integer 42
//	model.Cast("3,14") // float 3.14
//	model.Cast("007")  // string "007"
//
// Every stage clones its input with [RawTable.Clone] and returns new tables.
//
// # Components
//
// The final output is an ordered list of [Component] values, each a table
// or a paragraph. Components serialize as {type, data, params}. Table data
// is a [TableData] whose shape depends on the [DataMode].
//
// # Geometry
//
// [BBox] uses page space with y growing upward: (X1, Y1) is the lower-left
// corner and (X2, Y2) the upper-right one.
package model
