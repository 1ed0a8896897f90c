// Package tables detects tables on a page and repairs their structure.
//
// Detection works from two independent signals and never needs machine
// learning or rendering.
//
// # Detectors
//
// Table detection is performed by types implementing the [Detector] interface.
// The package provides:
//
//   - [TextDetector] - finds tables from column-aligned text alone
//   - [LineDetector] - finds tables from drawn vector grids
//
// Detectors are registered globally and can be built by name:
//
//	detector, err := tables.NewDetector("line", tables.DefaultConfig())
//	found := tables.DetectAll(detector, tables.GroupPages(geoms, frags, lines))
//
// # Text Detection
//
// The [TextDetector] groups fragments into rows by baseline, rejoins split
// glyph runs, clusters item x positions into columns and keeps runs of at
// least two rows that use two or more columns.
//
// # Line Detection
//
// The [LineDetector] clusters vertical and horizontal rulings into grid
// boundaries, collects the text of each cell, rejects decorative page
// frames, lifts out short uppercase banner rows and splits grids whose
// header row repeats.
//
// # Conflict Resolution
//
// The [Merger] drops text tables that duplicate a line table on the same
// page. Line tables always win.
//
// # Normalization
//
// [NormalizeStructure] merges placeholder columns (blank or col_N headers)
// into their named neighbors and collapses duplicate headers. It is
// idempotent. [NormalizeTextTables] prunes empty columns of text tables and
// repairs shifted headers.
//
// # Configuration
//
// Every threshold lives in [Config]:
//
//	config := tables.DefaultConfig()
//	config.YTolerance = 4
//	detector := tables.NewTextDetectorWithConfig(config)
package tables
