// Package font decodes text shown with PDF fonts.
//
// A font's ToUnicode stream maps character codes to Unicode text. [ParseCMap]
// reads such a stream (bfchar and bfrange sections, including the array
// form of bfrange) and [CMap.Decode] turns a shown string into text:
//
//	cm := font.ParseCMap(decodedToUnicode)
//	text := cm.Decode(hexOperandBytes)
//
// Codes are read with the width of the first codespace range, two bytes
// when none is declared. Codes without a mapping, and all codes when no
// CMap is known, decode to [Missing].
package font
