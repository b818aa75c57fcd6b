// Package value implements the JSON-like value type (V) that flows between
// Flowscript nodes: null, boolean, number, string, ordered array, or ordered
// object.
package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
)

// Kind discriminates the variant held by a V.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// V is the universal data carrier for node inputs and outputs.
type V struct {
	kind Kind
	b    bool
	n    float64
	s    string
	arr  []V
	obj  *Obj
}

// Null returns the JSON null value.
func Null() V { return V{kind: KindNull} }

// Bool wraps a boolean.
func Bool(b bool) V { return V{kind: KindBool, b: b} }

// Number wraps a 64-bit float.
func Number(n float64) V { return V{kind: KindNumber, n: n} }

// String wraps a string.
func String(s string) V { return V{kind: KindString, s: s} }

// Array wraps an ordered sequence of values.
func Array(items ...V) V {
	cp := make([]V, len(items))
	copy(cp, items)
	return V{kind: KindArray, arr: cp}
}

// Object wraps an ordered mapping, taking ownership of obj.
func Object(obj *Obj) V {
	if obj == nil {
		obj = NewObj()
	}
	return V{kind: KindObject, obj: obj}
}

// Kind returns the variant held.
func (v V) Kind() Kind { return v.kind }

func (v V) IsNull() bool   { return v.kind == KindNull }
func (v V) IsObject() bool { return v.kind == KindObject }
func (v V) IsArray() bool  { return v.kind == KindArray }

// Bool returns the boolean value, false if v is not a bool.
func (v V) Bool() bool { return v.b }

// Float64 returns the numeric value, 0 if v is not a number.
func (v V) Float64() float64 { return v.n }

// Str returns the string value, "" if v is not a string.
func (v V) Str() string { return v.s }

// Items returns the array elements, nil if v is not an array.
func (v V) Items() []V { return v.arr }

// Obj returns the underlying ordered object, nil if v is not an object.
func (v V) Obj() *Obj {
	if v.kind != KindObject {
		return nil
	}
	return v.obj
}

// Get looks up a top-level key. Only meaningful for objects.
func (v V) Get(key string) (V, bool) {
	if v.kind != KindObject || v.obj == nil {
		return Null(), false
	}
	return v.obj.Get(key)
}

// Clone produces a deep, independent copy of v.
func (v V) Clone() V {
	switch v.kind {
	case KindArray:
		items := make([]V, len(v.arr))
		for i, item := range v.arr {
			items[i] = item.Clone()
		}
		return V{kind: KindArray, arr: items}
	case KindObject:
		return V{kind: KindObject, obj: v.obj.Clone()}
	default:
		return v
	}
}

// Equal reports whether v and other are structurally equal. Numbers compare
// as float64; objects compare by key/value set, ignoring insertion order;
// arrays compare element-by-element in order.
func Equal(a, b V) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindNumber:
		return a.n == b.n
	case KindString:
		return a.s == b.s
	case KindArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		return a.obj.equal(b.obj)
	default:
		return false
	}
}

// Obj is an ordered string-keyed mapping of V values. Iteration follows
// insertion order; re-setting an existing key keeps its original position.
type Obj struct {
	keys []string
	vals map[string]V
}

// NewObj returns an empty ordered object.
func NewObj() *Obj {
	return &Obj{vals: make(map[string]V)}
}

// Set inserts or updates key with value, later-wins on repeated calls.
func (o *Obj) Set(key string, v V) {
	if _, exists := o.vals[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = v
}

// Get looks up key.
func (o *Obj) Get(key string) (V, bool) {
	if o == nil {
		return Null(), false
	}
	v, ok := o.vals[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (o *Obj) Keys() []string {
	if o == nil {
		return nil
	}
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Len returns the number of entries.
func (o *Obj) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Clone deep-copies the object.
func (o *Obj) Clone() *Obj {
	if o == nil {
		return NewObj()
	}
	cp := &Obj{
		keys: append([]string(nil), o.keys...),
		vals: make(map[string]V, len(o.vals)),
	}
	for k, v := range o.vals {
		cp.vals[k] = v.Clone()
	}
	return cp
}

// MergeFrom copies every key from other into o, later-wins (other's values
// overwrite o's on key collision), preserving o's key order for shared keys
// and appending other's new keys in other's order.
func (o *Obj) MergeFrom(other *Obj) {
	if other == nil {
		return
	}
	for _, k := range other.keys {
		o.Set(k, other.vals[k])
	}
}

func (o *Obj) equal(other *Obj) bool {
	if o.Len() != other.Len() {
		return false
	}
	for _, k := range o.keys {
		ov, ok := other.Get(k)
		if !ok || !Equal(o.vals[k], ov) {
			return false
		}
	}
	return true
}

// AsObject coerces v to an object: returns v's object if it is one,
// otherwise a fresh empty object (the input is not mutated).
func AsObject(v V) *Obj {
	if v.kind == KindObject {
		return v.obj
	}
	return NewObj()
}

// MarshalJSON implements json.Marshaler, preserving object key order.
func (v V) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		if v.b {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case KindNumber:
		if math.IsNaN(v.n) || math.IsInf(v.n, 0) {
			return nil, fmt.Errorf("value: cannot marshal non-finite number %v", v.n)
		}
		return json.Marshal(v.n)
	case KindString:
		return json.Marshal(v.s)
	case KindArray:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, item := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := item.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case KindObject:
		var buf bytes.Buffer
		buf.WriteByte('{')
		keys := v.obj.Keys()
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return nil, err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			val, _ := v.obj.Get(k)
			vb, err := val.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(vb)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("value: unknown kind %v", v.kind)
	}
}

// UnmarshalJSON implements json.Unmarshaler, preserving object key order as
// it appears in the source text.
func (v *V) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	val, err := decodeValue(dec)
	if err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("value: unexpected data after JSON value")
	}
	*v = val
	return nil
}

func decodeValue(dec *json.Decoder) (V, error) {
	tok, err := dec.Token()
	if err != nil {
		return Null(), err
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (V, error) {
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Null(), err
		}
		return Number(f), nil
	case string:
		return String(t), nil
	case json.Delim:
		switch t {
		case '[':
			var items []V
			for dec.More() {
				item, err := decodeValue(dec)
				if err != nil {
					return Null(), err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return Null(), err
			}
			return Array(items...), nil
		case '{':
			obj := NewObj()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Null(), err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Null(), fmt.Errorf("value: expected object key, got %v", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return Null(), err
				}
				obj.Set(key, val)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return Null(), err
			}
			return Object(obj), nil
		}
	}
	return Null(), fmt.Errorf("value: unexpected token %v", tok)
}

// Parse decodes a single JSON text into a V.
func Parse(text string) (V, error) {
	var v V
	if err := v.UnmarshalJSON([]byte(text)); err != nil {
		return Null(), err
	}
	return v, nil
}

// MustParse is Parse but panics on error; useful for building literals in
// tests and examples.
func MustParse(text string) V {
	v, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return v
}
