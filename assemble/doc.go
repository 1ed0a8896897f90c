// Package assemble builds the final document model from detected tables and
// page fragments.
//
// The [Builder] normalizes tables, removes text tables that duplicate a
// ruled table, reshapes table rows, rebuilds paragraphs from the text no
// table covers and orders everything by page and vertical position:
//
//	b := assemble.NewBuilder()
//	components := b.Build(mergedTables, fragments)
//
// # Data Modes
//
// Table rows are emitted according to [Config].DataMode:
//
//   - array: one object per row
//   - map_first_col: keyed by the first column, which is removed from the row
//   - map_first_to_last: keyed by the first column, holding only the last column
//   - map_key: keyed by [Config].DataModeKey, holding the row without the key
//     or only [Config].DataModeValue when set
//
// Repeated keys overwrite earlier rows.
//
// # Labels
//
// Short uppercase labels printed several times on a page (watermarks,
// stamps, repeated section markers) are reduced to their topmost copy, and
// stray single capitals echoing such a label are dropped.
package assemble
