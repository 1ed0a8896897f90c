package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ValueKind tags the variant held by a Value
type ValueKind int

const (
	KindString ValueKind = iota
	KindInt
	KindFloat
)

// Value is a table cell value after casting. The zero value is the empty string.
type Value struct {
	Kind  ValueKind
	Str   string
	Int   int64
	Float float64
}

// StringValue wraps s without any casting
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }

// IntValue wraps an integer
func IntValue(i int64) Value { return Value{Kind: KindInt, Int: i} }

// FloatValue wraps a float
func FloatValue(f float64) Value { return Value{Kind: KindFloat, Float: f} }

// Casting limits. Integers with more digits than maxIntDigits and decimals
// with more digits than maxDecimalDigits stay strings.
const (
	maxIntDigits     = 18
	maxDecimalDigits = 30
)

// Cast converts raw cell text into a Value. Conversion only happens when it
// is exact: integers without a leading zero and at most 18 digits, and
// decimals written as digits, one '.' or ',' separator, and digits.
// Everything else is returned as the trimmed string.
func Cast(raw string) Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return StringValue("")
	}

	sign, body := splitSign(s)

	if isDigits(body) {
		if body == "0" {
			return IntValue(0)
		}
		if body[0] == '0' || len(body) > maxIntDigits {
			return StringValue(s)
		}
		n, err := strconv.ParseInt(sign+body, 10, 64)
		if err != nil {
			return StringValue(s)
		}
		return IntValue(n)
	}

	if sep := strings.IndexAny(body, ".,"); sep > 0 {
		intPart, fracPart := body[:sep], body[sep+1:]
		if isDigits(intPart) && isDigits(fracPart) {
			if len(intPart)+len(fracPart) > maxDecimalDigits {
				return StringValue(s)
			}
			f, err := strconv.ParseFloat(sign+intPart+"."+fracPart, 64)
			if err != nil {
				return StringValue(s)
			}
			return FloatValue(f)
		}
	}

	return StringValue(s)
}

// CastText is Cast with an escape hatch: when disabled is true the trimmed
// string is returned as-is.
func CastText(raw string, disabled bool) Value {
	if disabled {
		return StringValue(strings.TrimSpace(raw))
	}
	return Cast(raw)
}

func splitSign(s string) (string, string) {
	if s[0] == '+' || s[0] == '-' {
		if s[0] == '-' {
			return "-", s[1:]
		}
		return "", s[1:]
	}
	return "", s
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// IsEmpty reports whether the value is the empty string
func (v Value) IsEmpty() bool {
	return v.Kind == KindString && v.Str == ""
}

// String renders the value as text; used for keys in reshaped tables.
func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'f', -1, 64)
	default:
		return v.Str
	}
}

// Equal compares kind and payload
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindInt:
		return v.Int == other.Int
	case KindFloat:
		return v.Float == other.Float
	default:
		return v.Str == other.Str
	}
}

// MarshalJSON encodes the native scalar
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindInt:
		return []byte(strconv.FormatInt(v.Int, 10)), nil
	case KindFloat:
		return json.Marshal(v.Float)
	default:
		return json.Marshal(v.Str)
	}
}

// UnmarshalJSON accepts a JSON string or number
func (v *Value) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = StringValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if i, err := n.Int64(); err == nil {
		*v = IntValue(i)
		return nil
	}
	f, err := n.Float64()
	if err != nil {
		return err
	}
	*v = FloatValue(f)
	return nil
}
