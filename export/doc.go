// Package export renders extracted components for consumers other than
// the JSON document model.
//
//	exp := export.NewExporterWithConfig(export.Config{Format: export.FormatMarkdown})
//	err := exp.Export(comps, os.Stdout)
//
// # Formats
//
//   - json: the component array, the default output of the command
//   - jsonl: one component per line
//   - markdown: paragraphs and pipe tables
//   - html: a standalone document, rendered with golang.org/x/net/html
//   - csv: every table as a header row plus data rows, tables separated
//     by an empty record; paragraphs are omitted
//
// Tables are written from their unique header names and the raw cell
// strings, so the rendering does not depend on the configured data mode.
package export
