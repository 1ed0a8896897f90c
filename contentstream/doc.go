// Package contentstream tokenizes PDF content streams into operations.
//
// A content stream is a postfix sequence of operands followed by an
// operator. [Parse] returns the operations in order, each with the
// operands that preceded it:
//
//	ops, err := contentstream.Parse(data)
//	for _, op := range ops {
//	    if op.Operator == "Tm" {
//	        xy, ok := op.Numbers(2)
//	        ...
//	    }
//	}
//
// # Operands
//
// [Operand] is a tagged value: number, literal string, hex string, name,
// boolean, null, array or dictionary. Literal strings have their escapes
// resolved and hex strings are decoded to bytes; both keep raw bytes in
// Operand.Str.
//
// Comments are skipped and inline image data between ID and EI is
// passed over. On a syntax error the operations read so far are returned
// together with the error, so callers can keep the readable prefix.
//
// The same tokenizer reads ToUnicode CMaps, which share the syntax.
package contentstream
