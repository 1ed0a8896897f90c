package font

import "testing"

const toUnicode = `/CIDInit /ProcSet findresource begin
12 dict begin
begincmap
/CIDSystemInfo << /Registry (Adobe) /Ordering (UCS) /Supplement 0 >> def
/CMapName /Adobe-Identity-UCS def
1 begincodespacerange
<0000> <FFFF>
endcodespacerange
3 beginbfchar
<0003> <0020>
<0011> <0418>
<0020> <D83DDE00>
endbfchar
2 beginbfrange
<0024> <0026> <0041>
<0030> <0032> [<0061> <0062>]
endbfrange
endcmap
CMapName currentdict /CMap defineresource pop
end
end
`

func TestParseCMap(t *testing.T) {
	cm := ParseCMap([]byte(toUnicode))
	if cm.CodeLength != 2 {
		t.Errorf("CodeLength = %d, want 2", cm.CodeLength)
	}

	tests := []struct {
		code uint32
		want string
		ok   bool
	}{
		{0x0003, " ", true},
		{0x0011, "И", true},
		{0x0020, "😀", true},
		{0x0024, "A", true},
		{0x0026, "C", true},
		{0x0027, "", false},
		{0x0030, "a", true},
		{0x0031, "b", true},
		{0x0032, "", false},
	}
	for _, tt := range tests {
		got, ok := cm.Lookup(tt.code)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Lookup(%#04x) = %q, %v, want %q, %v", tt.code, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCMap_Decode(t *testing.T) {
	cm := ParseCMap([]byte(toUnicode))
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"mapped", []byte{0x00, 0x24, 0x00, 0x03, 0x00, 0x11}, "A И"},
		{"unmapped", []byte{0x00, 0x24, 0x01, 0x00}, "A?"},
		{"trailing byte", []byte{0x00, 0x25, 0x00}, "B?"},
		{"empty", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cm.Decode(tt.data); got != tt.want {
				t.Errorf("Decode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCMap_DecodeNil(t *testing.T) {
	var cm *CMap
	if got := cm.Decode([]byte{0x00, 0x41, 0x00, 0x42}); got != "??" {
		t.Errorf("Decode() = %q, want ??", got)
	}
	if cm.Len() != 0 {
		t.Errorf("Len() = %d, want 0", cm.Len())
	}
}

func TestParseCMap_SingleByteCodespace(t *testing.T) {
	cm := ParseCMap([]byte("1 begincodespacerange <00> <FF> endcodespacerange\n" +
		"1 beginbfrange <41> <5A> <0041> endbfrange\n"))
	if cm.CodeLength != 1 {
		t.Fatalf("CodeLength = %d, want 1", cm.CodeLength)
	}
	if got := cm.Decode([]byte("HI")); got != "HI" {
		t.Errorf("Decode(HI) = %q, want HI", got)
	}
	if cm.Len() != 1 {
		t.Errorf("Len() = %d, want 1", cm.Len())
	}
}

func TestParseCMap_Garbage(t *testing.T) {
	cm := ParseCMap([]byte("1 beginbfchar <0041> <0061> endbfchar ) trailing"))
	if s, ok := cm.Lookup(0x41); !ok || s != "a" {
		t.Errorf("Lookup(0x41) = %q, %v, want the entry read before the error", s, ok)
	}
}
