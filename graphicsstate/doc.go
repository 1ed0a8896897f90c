// Package graphicsstate interprets the text and path operators of a page
// content stream.
//
// An [Extractor] walks parsed operations and collects positioned text
// fragments and drawn line segments:
//
//	ops, _ := contentstream.Parse(content)
//	ex := graphicsstate.NewExtractor(pageNr, decode)
//	ex.Run(ops)
//	frags, lines := ex.Fragments, ex.Lines
//
// # Text
//
// [TextState] follows Tf, Tm, Td, TD, T*, Tj, TJ and the quote operators.
// Only the text matrix translation is tracked. A fragment's width is
// estimated as half the font size per character and its height as 1.2
// times the font size.
//
// # Paths
//
// m, l and h build a [Path]; S, s, B and b turn it into segments, and n, f
// and F discard it. Each re operator yields its four edges immediately.
package graphicsstate
