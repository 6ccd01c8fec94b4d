// Package value defines the typed tree that yamlite decodes into and
// encodes from.
//
// A Value is one of Null, Bool, Int, Float, String, Sequence or *Mapping.
// The set is closed: code switching over a Value only has to handle these
// seven types. Values are immutable once constructed.
package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	yerrors "github.com/KimNorgaard/go-yamlite/errors"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	NullKind Kind = iota
	BoolKind
	IntKind
	FloatKind
	StringKind
	SequenceKind
	MappingKind
)

var kindNames = [...]string{
	NullKind:     "null",
	BoolKind:     "boolean",
	IntKind:      "integer",
	FloatKind:    "float",
	StringKind:   "string",
	SequenceKind: "sequence",
	MappingKind:  "mapping",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Value is the universal node type.
type Value interface {
	Kind() Kind
	// String returns a short human readable rendering, not the encoded form.
	String() string
	value()
}

// Null is the absent value, written as ~.
type Null struct{}

// Bool is a boolean scalar.
type Bool bool

// Int is an integer scalar.
type Int int64

// Float is a floating point scalar.
type Float float64

// String is a string scalar.
type String string

// Sequence is an ordered list of values.
type Sequence []Value

func (Null) Kind() Kind     { return NullKind }
func (Bool) Kind() Kind     { return BoolKind }
func (Int) Kind() Kind      { return IntKind }
func (Float) Kind() Kind    { return FloatKind }
func (String) Kind() Kind   { return StringKind }
func (Sequence) Kind() Kind { return SequenceKind }

func (Null) value()     {}
func (Bool) value()     {}
func (Int) value()      {}
func (Float) value()    {}
func (String) value()   {}
func (Sequence) value() {}

func (Null) String() string    { return "null" }
func (b Bool) String() string  { return strconv.FormatBool(bool(b)) }
func (i Int) String() string   { return strconv.FormatInt(int64(i), 10) }
func (f Float) String() string { return strconv.FormatFloat(float64(f), 'g', -1, 64) }
func (s String) String() string {
	return strconv.Quote(string(s))
}

func (s Sequence) String() string {
	parts := make([]string, len(s))
	for i, v := range s {
		parts[i] = stringOf(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// MarshalJSON encodes Null as JSON null.
func (Null) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

// Entry is one key/value pair of a Mapping.
type Entry struct {
	Key   string
	Value Value
}

// Mapping is an ordered mapping with unique string keys.
type Mapping struct {
	entries []Entry
	index   map[string]int
}

// NewMapping returns a mapping holding entries in the given order. It
// fails with errors.ErrDuplicateKey if a key repeats.
func NewMapping(entries ...Entry) (*Mapping, error) {
	m := &Mapping{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if _, dup := m.index[e.Key]; dup {
			return nil, fmt.Errorf("%w: %q", yerrors.ErrDuplicateKey, e.Key)
		}
		if e.Value == nil {
			e.Value = Null{}
		}
		m.index[e.Key] = len(m.entries)
		m.entries = append(m.entries, e)
	}
	return m, nil
}

// MustMapping is like NewMapping but panics on duplicate keys.
func MustMapping(entries ...Entry) *Mapping {
	m, err := NewMapping(entries...)
	if err != nil {
		panic(err)
	}
	return m
}

// Pair is shorthand for Entry{Key: key, Value: v}.
func Pair(key string, v Value) Entry {
	return Entry{Key: key, Value: v}
}

func (*Mapping) Kind() Kind { return MappingKind }
func (*Mapping) value()     {}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Get returns the value stored under key.
func (m *Mapping) Get(key string) (Value, bool) {
	if m == nil {
		return nil, false
	}
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.entries[i].Value, true
}

// Keys returns the keys in order.
func (m *Mapping) Keys() []string {
	keys := make([]string, 0, m.Len())
	for _, e := range m.Entries() {
		keys = append(keys, e.Key)
	}
	return keys
}

// Entries returns the entries in order. The returned slice must not be
// modified.
func (m *Mapping) Entries() []Entry {
	if m == nil {
		return nil
	}
	return m.entries
}

func (m *Mapping) String() string {
	parts := make([]string, 0, m.Len())
	for _, e := range m.Entries() {
		parts = append(parts, e.Key+": "+stringOf(e.Value))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// MarshalJSON encodes the mapping as a JSON object, keeping entry order.
func (m *Mapping) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m.Entries() {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func stringOf(v Value) string {
	if v == nil {
		return Null{}.String()
	}
	return v.String()
}

// Equal reports whether a and b are deeply equal. Mapping order is
// significant. A nil Value equals Null.
func Equal(a, b Value) bool {
	if a == nil {
		a = Null{}
	}
	if b == nil {
		b = Null{}
	}
	switch x := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		y, ok := b.(Bool)
		return ok && x == y
	case Int:
		y, ok := b.(Int)
		return ok && x == y
	case Float:
		y, ok := b.(Float)
		if !ok {
			return false
		}
		if math.IsNaN(float64(x)) && math.IsNaN(float64(y)) {
			return true
		}
		return x == y
	case String:
		y, ok := b.(String)
		return ok && x == y
	case Sequence:
		y, ok := b.(Sequence)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case *Mapping:
		y, ok := b.(*Mapping)
		if !ok || x.Len() != y.Len() {
			return false
		}
		ye := y.Entries()
		for i, e := range x.Entries() {
			if e.Key != ye[i].Key || !Equal(e.Value, ye[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

// ToGo converts v into plain Go values: nil, bool, int64, float64,
// string, []any and map[string]any.
func ToGo(v Value) any {
	switch x := v.(type) {
	case nil, Null:
		return nil
	case Bool:
		return bool(x)
	case Int:
		return int64(x)
	case Float:
		return float64(x)
	case String:
		return string(x)
	case Sequence:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = ToGo(item)
		}
		return out
	case *Mapping:
		out := make(map[string]any, x.Len())
		for _, e := range x.Entries() {
			out[e.Key] = ToGo(e.Value)
		}
		return out
	}
	return nil
}
