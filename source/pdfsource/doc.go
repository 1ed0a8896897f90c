// Package pdfsource reads text fragments and line segments straight from a
// PDF file.
//
// pdfcpu loads and validates the document and supplies page sizes, page
// content and font resources. Content streams are tokenized by the
// contentstream package and interpreted by graphicsstate; hex strings are
// decoded through each font's ToUnicode map (see package font), literal
// strings byte-wise. Decoded text is NFC normalized.
//
//	doc, err := pdfsource.Open(ctx, "invoice.pdf", pdfsource.Config{})
//	if err != nil {
//	    return err
//	}
//	comps, _, err := layoutkit.FromSource(doc).Components()
package pdfsource
