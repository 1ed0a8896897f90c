package font

import (
	"strings"

	"golang.org/x/text/encoding/unicode"

	"github.com/tsawler/layoutkit/contentstream"
)

// Missing is substituted for a character code without a mapping.
const Missing = "?"

// defaultCodeLength is the byte width of a character code when a CMap
// declares no codespace range.
const defaultCodeLength = 2

// CMap maps character codes to Unicode text, as read from a ToUnicode
// stream.
type CMap struct {
	// CodeLength is the byte width of one character code
	CodeLength int

	chars  map[uint32]string
	ranges []cmapRange
}

type cmapRange struct {
	start, end uint32
	dst        uint32
}

// NewCMap creates an empty CMap with two-byte codes
func NewCMap() *CMap {
	return &CMap{CodeLength: defaultCodeLength, chars: make(map[uint32]string)}
}

var utf16 = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

// ParseCMap reads the bfchar, bfrange and codespacerange sections of a
// decoded ToUnicode stream. Malformed entries are skipped; whatever was
// read before a syntax error is kept.
func ParseCMap(data []byte) *CMap {
	cm := NewCMap()
	ops, _ := contentstream.Parse(data)

	codespaceSeen := false
	for _, op := range ops {
		switch op.Operator {
		case "endcodespacerange":
			if !codespaceSeen && len(op.Operands) >= 2 && op.Operands[0].Kind == contentstream.KindHexString {
				if n := len(op.Operands[0].Str); n > 0 && n <= 4 {
					cm.CodeLength = n
					codespaceSeen = true
				}
			}
		case "endbfchar":
			for i := 0; i+1 < len(op.Operands); i += 2 {
				src, dst := op.Operands[i], op.Operands[i+1]
				if src.Kind != contentstream.KindHexString || dst.Kind != contentstream.KindHexString {
					continue
				}
				cm.chars[code([]byte(src.Str))] = decodeUnicode([]byte(dst.Str))
			}
		case "endbfrange":
			cm.addRanges(op.Operands)
		}
	}
	return cm
}

// addRanges reads triples <start> <end> <dst> or <start> <end> [<d1> ...].
func (cm *CMap) addRanges(operands []contentstream.Operand) {
	for i := 0; i+2 < len(operands); i += 3 {
		lo, hi, dst := operands[i], operands[i+1], operands[i+2]
		if lo.Kind != contentstream.KindHexString || hi.Kind != contentstream.KindHexString {
			continue
		}
		start, end := code([]byte(lo.Str)), code([]byte(hi.Str))
		if end < start {
			continue
		}
		switch dst.Kind {
		case contentstream.KindHexString:
			cm.ranges = append(cm.ranges, cmapRange{start: start, end: end, dst: code([]byte(dst.Str))})
		case contentstream.KindArray:
			c := start
			for _, d := range dst.Array {
				if c > end {
					break
				}
				if d.Kind == contentstream.KindHexString {
					cm.chars[c] = decodeUnicode([]byte(d.Str))
				}
				c++
			}
		}
	}
}

// Lookup returns the text for a character code and whether it is mapped
func (cm *CMap) Lookup(c uint32) (string, bool) {
	if s, ok := cm.chars[c]; ok {
		return s, true
	}
	for _, r := range cm.ranges {
		if c >= r.start && c <= r.end {
			return string(rune(r.dst + c - r.start)), true
		}
	}
	return "", false
}

// Len returns the number of single mappings plus ranges
func (cm *CMap) Len() int {
	if cm == nil {
		return 0
	}
	return len(cm.chars) + len(cm.ranges)
}

// Decode converts a string of character codes to text. A nil CMap or an
// unmapped code yields Missing for each code unit.
func (cm *CMap) Decode(data []byte) string {
	n := defaultCodeLength
	if cm != nil && cm.CodeLength > 0 {
		n = cm.CodeLength
	}

	var b strings.Builder
	for i := 0; i < len(data); i += n {
		end := i + n
		if end > len(data) {
			end = len(data)
		}
		if cm == nil {
			b.WriteString(Missing)
			continue
		}
		if s, ok := cm.Lookup(code(data[i:end])); ok {
			b.WriteString(s)
		} else {
			b.WriteString(Missing)
		}
	}
	return b.String()
}

// code reads big-endian bytes as a character code
func code(b []byte) uint32 {
	var c uint32
	for _, x := range b {
		c = c<<8 | uint32(x)
	}
	return c
}

// decodeUnicode reads a destination string: UTF-16BE for two or more
// bytes, a single code point otherwise.
func decodeUnicode(b []byte) string {
	if len(b) == 1 {
		return string(rune(b[0]))
	}
	if len(b)%2 != 0 {
		b = append([]byte{0}, b...)
	}
	out, err := utf16.NewDecoder().Bytes(b)
	if err != nil {
		return Missing
	}
	return string(out)
}
