package contentstream

import (
	"bytes"
	"fmt"
	"strconv"
)

// Operation is a single operator together with the operands that precede
// it.
type Operation struct {
	Operator string
	Operands []Operand
}

// Numbers returns the operands as floats. ok is false when there are fewer
// than n operands or one of the last n is not a number.
func (op Operation) Numbers(n int) ([]float64, bool) {
	if len(op.Operands) < n {
		return nil, false
	}
	out := make([]float64, n)
	for i, o := range op.Operands[len(op.Operands)-n:] {
		v, ok := o.Number()
		if !ok {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

// Parser parses PDF content streams into a sequence of operations.
type Parser struct {
	data  []byte
	pos   int
	ops   []Operation
	stack []Operand
}

// NewParser creates a new content stream parser for the given data.
func NewParser(data []byte) *Parser {
	return &Parser{data: data}
}

// Parse parses the content stream and returns all operations in order.
// On a syntax error the operations read so far are returned with the
// error.
func (p *Parser) Parse() ([]Operation, error) {
	for {
		p.skipSpaceAndComments()
		if p.pos >= len(p.data) {
			return p.ops, nil
		}
		if err := p.parseNext(); err != nil {
			return p.ops, err
		}
	}
}

// Parse is a shorthand for NewParser(data).Parse().
func Parse(data []byte) ([]Operation, error) {
	return NewParser(data).Parse()
}

// parseNext reads one token: an operand goes on the stack, an operator
// takes the stack with it.
func (p *Parser) parseNext() error {
	start := p.pos
	c := p.data[p.pos]
	if isLetter(c) || c == '\'' || c == '"' {
		if o, ok := p.keyword(); ok {
			p.stack = append(p.stack, o)
			return nil
		}
		return p.parseOperator()
	}

	o, err := p.parseOperand()
	if err != nil {
		return fmt.Errorf("at position %d: %w", start, err)
	}
	p.stack = append(p.stack, o)
	return nil
}

// keyword consumes true, false or null.
func (p *Parser) keyword() (Operand, bool) {
	end := p.pos
	for end < len(p.data) && isLetter(p.data[end]) {
		end++
	}
	var o Operand
	switch string(p.data[p.pos:end]) {
	case "true":
		o = Operand{Kind: KindBool, Bool: true}
	case "false":
		o = Operand{Kind: KindBool}
	case "null":
		o = Operand{Kind: KindNull}
	default:
		return Operand{}, false
	}
	p.pos = end
	return o, true
}

func (p *Parser) parseOperator() error {
	start := p.pos
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if !isLetter(c) && !isDigit(c) && c != '\'' && c != '"' && c != '*' {
			break
		}
		p.pos++
	}
	operator := string(p.data[start:p.pos])

	p.ops = append(p.ops, Operation{Operator: operator, Operands: p.stack})
	p.stack = nil

	if operator == "ID" {
		p.skipInlineImage()
	}
	return nil
}

// skipInlineImage skips the binary data of an inline image up to and
// including the EI operator.
func (p *Parser) skipInlineImage() {
	// one whitespace byte separates ID from the data
	p.pos++
	for p.pos+1 < len(p.data) {
		if p.data[p.pos] == 'E' && p.data[p.pos+1] == 'I' &&
			(p.pos == 0 || isWhitespace(p.data[p.pos-1])) &&
			(p.pos+2 >= len(p.data) || isWhitespace(p.data[p.pos+2]) || isDelimiter(p.data[p.pos+2])) {
			p.pos += 2
			p.ops = append(p.ops, Operation{Operator: "EI"})
			return
		}
		p.pos++
	}
	p.pos = len(p.data)
}

func (p *Parser) parseOperand() (Operand, error) {
	p.skipSpaceAndComments()
	if p.pos >= len(p.data) {
		return Operand{}, fmt.Errorf("unexpected end of stream")
	}

	c := p.data[p.pos]
	switch {
	case c == '-' || c == '+' || c == '.' || isDigit(c):
		return p.parseNumber()
	case c == '(':
		return p.parseString()
	case c == '<' && p.pos+1 < len(p.data) && p.data[p.pos+1] == '<':
		return p.parseDict()
	case c == '<':
		return p.parseHexString()
	case c == '/':
		return p.parseName(), nil
	case c == '[':
		return p.parseArray()
	case isLetter(c):
		if o, ok := p.keyword(); ok {
			return o, nil
		}
	}
	return Operand{}, fmt.Errorf("unexpected character %q", c)
}

func (p *Parser) parseNumber() (Operand, error) {
	start := p.pos
	if c := p.data[p.pos]; c == '+' || c == '-' {
		p.pos++
	}
	seenDot := false
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if isDigit(c) {
			p.pos++
		} else if c == '.' && !seenDot {
			seenDot = true
			p.pos++
		} else {
			break
		}
	}

	s := string(p.data[start:p.pos])
	switch s {
	case "+", "-", ".", "+.", "-.":
		// a lone sign or dot reads as zero
		return number(0), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Operand{}, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return number(v), nil
}

// parseString reads a literal string, resolving escapes.
func (p *Parser) parseString() (Operand, error) {
	p.pos++ // (
	var buf bytes.Buffer
	depth := 1

	for p.pos < len(p.data) {
		c := p.data[p.pos]
		p.pos++
		switch c {
		case '\\':
			p.parseEscape(&buf)
		case '(':
			depth++
			buf.WriteByte(c)
		case ')':
			depth--
			if depth == 0 {
				return Operand{Kind: KindString, Str: buf.String()}, nil
			}
			buf.WriteByte(c)
		default:
			buf.WriteByte(c)
		}
	}
	return Operand{}, fmt.Errorf("unclosed string")
}

func (p *Parser) parseEscape(buf *bytes.Buffer) {
	if p.pos >= len(p.data) {
		return
	}
	c := p.data[p.pos]
	p.pos++
	switch c {
	case 'n':
		buf.WriteByte('\n')
	case 'r':
		buf.WriteByte('\r')
	case 't':
		buf.WriteByte('\t')
	case 'b':
		buf.WriteByte('\b')
	case 'f':
		buf.WriteByte('\f')
	case '\r':
		// line continuation
		if p.pos < len(p.data) && p.data[p.pos] == '\n' {
			p.pos++
		}
	case '\n':
	case '0', '1', '2', '3', '4', '5', '6', '7':
		v := int(c - '0')
		for i := 0; i < 2 && p.pos < len(p.data); i++ {
			d := p.data[p.pos]
			if d < '0' || d > '7' {
				break
			}
			v = v*8 + int(d-'0')
			p.pos++
		}
		buf.WriteByte(byte(v))
	default:
		// covers \( \) \\ and unknown escapes
		buf.WriteByte(c)
	}
}

// parseHexString reads <...>. An odd trailing digit is padded with 0.
func (p *Parser) parseHexString() (Operand, error) {
	p.pos++ // <
	var buf bytes.Buffer
	var hi byte
	half := false

	for p.pos < len(p.data) {
		c := p.data[p.pos]
		p.pos++
		switch {
		case c == '>':
			if half {
				buf.WriteByte(hi << 4)
			}
			return Operand{Kind: KindHexString, Str: buf.String()}, nil
		case isWhitespace(c):
		case isHexDigit(c):
			if half {
				buf.WriteByte(hi<<4 | hexValue(c))
			} else {
				hi = hexValue(c)
			}
			half = !half
		default:
			return Operand{}, fmt.Errorf("invalid hex digit %q", c)
		}
	}
	return Operand{}, fmt.Errorf("unclosed hex string")
}

// parseName reads /Name, resolving #xx escapes.
func (p *Parser) parseName() Operand {
	p.pos++ // /
	var buf bytes.Buffer
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if isWhitespace(c) || isDelimiter(c) {
			break
		}
		if c == '#' && p.pos+2 < len(p.data) && isHexDigit(p.data[p.pos+1]) && isHexDigit(p.data[p.pos+2]) {
			buf.WriteByte(hexValue(p.data[p.pos+1])<<4 | hexValue(p.data[p.pos+2]))
			p.pos += 3
			continue
		}
		buf.WriteByte(c)
		p.pos++
	}
	return Operand{Kind: KindName, Str: buf.String()}
}

func (p *Parser) parseArray() (Operand, error) {
	p.pos++ // [
	arr := Operand{Kind: KindArray}
	for {
		p.skipSpaceAndComments()
		if p.pos >= len(p.data) {
			return Operand{}, fmt.Errorf("unclosed array")
		}
		if p.data[p.pos] == ']' {
			p.pos++
			return arr, nil
		}
		o, err := p.parseOperand()
		if err != nil {
			return Operand{}, err
		}
		arr.Array = append(arr.Array, o)
	}
}

// parseDict reads << ... >>, which appears in marked-content operands.
func (p *Parser) parseDict() (Operand, error) {
	p.pos += 2 // <<
	dict := Operand{Kind: KindDict, Dict: make(map[string]Operand)}
	for {
		p.skipSpaceAndComments()
		if p.pos+1 >= len(p.data) {
			return Operand{}, fmt.Errorf("unclosed dictionary")
		}
		if p.data[p.pos] == '>' && p.data[p.pos+1] == '>' {
			p.pos += 2
			return dict, nil
		}
		if p.data[p.pos] != '/' {
			return Operand{}, fmt.Errorf("dictionary key must be a name")
		}
		key := p.parseName()
		value, err := p.parseOperand()
		if err != nil {
			return Operand{}, err
		}
		dict.Dict[key.Str] = value
	}
}

func (p *Parser) skipSpaceAndComments() {
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if isWhitespace(c) {
			p.pos++
			continue
		}
		if c == '%' {
			for p.pos < len(p.data) && p.data[p.pos] != '\n' && p.data[p.pos] != '\r' {
				p.pos++
			}
			continue
		}
		return
	}
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == 0
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexValue(c byte) byte {
	switch {
	case isDigit(c):
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}
