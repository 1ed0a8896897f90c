package contentstream

import "strconv"

// Kind identifies the type of an operand
type Kind int

const (
	KindNull Kind = iota
	KindNumber
	KindString
	KindHexString
	KindName
	KindBool
	KindArray
	KindDict
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindHexString:
		return "hexstring"
	case KindName:
		return "name"
	case KindBool:
		return "bool"
	case KindArray:
		return "array"
	case KindDict:
		return "dict"
	default:
		return "null"
	}
}

// Operand is one value preceding an operator. Only the field matching
// Kind is meaningful; strings keep their raw bytes in Str.
type Operand struct {
	Kind  Kind
	Num   float64
	Str   string
	Bool  bool
	Array []Operand
	Dict  map[string]Operand
}

// Number returns the numeric value of a number operand
func (o Operand) Number() (float64, bool) {
	if o.Kind != KindNumber {
		return 0, false
	}
	return o.Num, true
}

// IsString reports whether the operand is a literal or hex string
func (o Operand) IsString() bool {
	return o.Kind == KindString || o.Kind == KindHexString
}

// String renders the operand roughly as it appears in a content stream
func (o Operand) String() string {
	switch o.Kind {
	case KindNumber:
		return strconv.FormatFloat(o.Num, 'f', -1, 64)
	case KindString:
		return "(" + o.Str + ")"
	case KindHexString:
		return "<" + strconv.Quote(o.Str) + ">"
	case KindName:
		return "/" + o.Str
	case KindBool:
		return strconv.FormatBool(o.Bool)
	case KindArray:
		s := "["
		for i, a := range o.Array {
			if i > 0 {
				s += " "
			}
			s += a.String()
		}
		return s + "]"
	case KindDict:
		return "<<...>>"
	default:
		return "null"
	}
}

func number(v float64) Operand { return Operand{Kind: KindNumber, Num: v} }
