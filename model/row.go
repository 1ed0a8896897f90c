package model

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Row is an ordered mapping from header to value. Keys follow the table's
// header order.
type Row struct {
	Keys   []string
	Values []Value
}

// NewRow casts raw cell texts against headers. Missing cells become "".
func NewRow(headers []string, cells []string, disableCasting bool) Row {
	r := Row{
		Keys:   make([]string, len(headers)),
		Values: make([]Value, len(headers)),
	}
	copy(r.Keys, headers)
	for i := range headers {
		raw := ""
		if i < len(cells) {
			raw = cells[i]
		}
		r.Values[i] = CastText(raw, disableCasting)
	}
	return r
}

// Len returns the number of fields
func (r Row) Len() int { return len(r.Keys) }

// Get returns the value stored under key
func (r Row) Get(key string) (Value, bool) {
	for i, k := range r.Keys {
		if k == key {
			return r.Values[i], true
		}
	}
	return Value{}, false
}

// Without returns a copy of the row with key removed
func (r Row) Without(key string) Row {
	out := Row{
		Keys:   make([]string, 0, len(r.Keys)),
		Values: make([]Value, 0, len(r.Values)),
	}
	for i, k := range r.Keys {
		if k == key {
			continue
		}
		out.Keys = append(out.Keys, k)
		out.Values = append(out.Values, r.Values[i])
	}
	return out
}

// Clone returns a deep copy
func (r Row) Clone() Row {
	out := Row{
		Keys:   make([]string, len(r.Keys)),
		Values: make([]Value, len(r.Values)),
	}
	copy(out.Keys, r.Keys)
	copy(out.Values, r.Values)
	return out
}

// Equal reports whether both rows have the same keys, order and values
func (r Row) Equal(other Row) bool {
	if len(r.Keys) != len(other.Keys) {
		return false
	}
	for i := range r.Keys {
		if r.Keys[i] != other.Keys[i] || !r.Values[i].Equal(other.Values[i]) {
			return false
		}
	}
	return true
}

// Fingerprint returns a canonical string identifying the row's contents.
func (r Row) Fingerprint() string {
	var sb strings.Builder
	for i, k := range r.Keys {
		sb.WriteString(k)
		sb.WriteByte(0)
		v := r.Values[i]
		sb.WriteByte(byte('0' + v.Kind))
		sb.WriteString(v.String())
		sb.WriteByte(0)
	}
	return sb.String()
}

// MarshalJSON encodes the row as a JSON object preserving key order
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.Keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := r.Values[i].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// DataMode selects how table rows are reshaped for output
type DataMode string

const (
	DataModeArray          DataMode = "array"
	DataModeMapFirstCol    DataMode = "map_first_col"
	DataModeMapFirstToLast DataMode = "map_first_to_last"
	DataModeMapKey         DataMode = "map_key"
)

// ParseDataMode maps an option value to a DataMode; unknown values yield array.
func ParseDataMode(s string) DataMode {
	switch DataMode(s) {
	case DataModeMapFirstCol, DataModeMapFirstToLast, DataModeMapKey:
		return DataMode(s)
	default:
		return DataModeArray
	}
}

// Entry is one keyed element of reshaped table data. Scalar entries carry
// Value, the others carry Row.
type Entry struct {
	Key    string
	Row    Row
	Value  Value
	Scalar bool
}

// TableData holds reshaped table rows. Array mode uses Rows; keyed modes use
// Entries in first-insertion order. Entries are added through Set.
type TableData struct {
	Mode    DataMode
	Rows    []Row
	Entries []Entry

	// index maps keys to positions in Entries
	index map[string]int
}

// Keyed reports whether the data is a keyed mapping
func (d TableData) Keyed() bool {
	return d.Mode != "" && d.Mode != DataModeArray
}

// Len returns the number of rows or entries
func (d TableData) Len() int {
	if d.Keyed() {
		return len(d.Entries)
	}
	return len(d.Rows)
}

// Set inserts or replaces an entry. A repeated key keeps its original
// position and takes the new contents.
func (d *TableData) Set(e Entry) {
	if i, ok := d.position(e.Key); ok {
		d.Entries[i] = e
		return
	}
	d.Entries = append(d.Entries, e)
	d.index[e.Key] = len(d.Entries) - 1
}

// Lookup returns the entry stored under key
func (d TableData) Lookup(key string) (Entry, bool) {
	if i, ok := d.indexed(key); ok {
		return d.Entries[i], true
	}
	for _, e := range d.Entries {
		if e.Key == key {
			return e, true
		}
	}
	return Entry{}, false
}

// position returns the index of key in Entries. The key index is rebuilt
// when Entries was filled without Set.
func (d *TableData) position(key string) (int, bool) {
	if d.index == nil || len(d.index) != len(d.Entries) {
		d.index = make(map[string]int, len(d.Entries))
		for i, e := range d.Entries {
			d.index[e.Key] = i
		}
	}
	return d.indexed(key)
}

func (d TableData) indexed(key string) (int, bool) {
	i, ok := d.index[key]
	if !ok || i >= len(d.Entries) || d.Entries[i].Key != key {
		return 0, false
	}
	return i, true
}

// MarshalJSON encodes array data as a list and keyed data as an ordered object
func (d TableData) MarshalJSON() ([]byte, error) {
	if !d.Keyed() {
		if d.Rows == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(d.Rows)
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range d.Entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		var vb []byte
		if e.Scalar {
			vb, err = e.Value.MarshalJSON()
		} else {
			vb, err = e.Row.MarshalJSON()
		}
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
