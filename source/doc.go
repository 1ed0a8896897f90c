// Package source defines where the pipeline gets its input from.
//
// A [Source] supplies page sizes, positioned text fragments and drawn line
// segments. [Document] holds them in memory; [LoadDump] and [DecodeDump]
// read one from a JSON or YAML dump written by another extractor:
//
//	pages:
//	  - {page: 1, width: 595.32, height: 841.92}
//	fragments:
//	  - {page: 1, text: Item, x: 110, y: 680, size: 10, width: 20}
//	lines:
//	  - {page: 1, x1: 100, y1: 700, x2: 400, y2: 700}
//
// The pdfsource subpackage reads the same data directly from a PDF.
package source
