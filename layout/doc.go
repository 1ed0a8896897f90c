// Package layout rebuilds readable paragraphs from text fragments that were
// not claimed by any table.
//
// # Assembly
//
// The [Assembler] works page by page:
//
//	a := layout.NewAssembler()
//	paragraphs := a.Assemble(fragments)
//
// Fragments are sorted top to bottom and grouped into lines by baseline
// proximity, scaled by font size. Each line is then tokenized and its
// tokens glued back together.
//
// # Token Joining
//
// PDF producers often split words into several runs, or emit one glyph at a
// time. For each adjacent pair of tokens the assembler decides between
// gluing them and separating them with one space, using the gap between
// them relative to the font size:
//
//   - whitespace in the source always separates
//   - a single-letter preposition glues only when the result is a known word
//   - an uppercase initial glues to a lowercase continuation
//   - short uppercase runs glue into one acronym
//   - letter runs glue within a small gap
//   - anything else glues only within a character gap
//
// Placeholder runs such as XXXX, 1234 or ABC are kept apart from their
// neighbors.
//
// # Paragraphs
//
// Consecutive lines stay in one paragraph while the baseline gap is below
// the median line height times [Config].ParagraphGapFactor and their left
// edges differ by at most [Config].IndentTolerance.
//
// # Configuration
//
//	config := layout.DefaultConfig()
//	config.ParagraphGapFactor = 2
//	a := layout.NewAssemblerWithConfig(config)
package layout
