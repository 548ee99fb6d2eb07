package mapper

import (
	"bytes"
	"encoding/json"
	"slices"
)

// Object is an output record whose keys keep insertion order when encoded
type Object struct {
	keys []string
	vals []any
}

// Set adds k or replaces its value in place
func (o *Object) Set(k string, v any) {
	if i := slices.Index(o.keys, k); i >= 0 {
		o.vals[i] = v
		return
	}
	o.keys = append(o.keys, k)
	o.vals = append(o.vals, v)
}

// Get returns the value stored under k
func (o Object) Get(k string) (any, bool) {
	if i := slices.Index(o.keys, k); i >= 0 {
		return o.vals[i], true
	}
	return nil, false
}

// Keys returns the keys in output order
func (o Object) Keys() []string { return slices.Clone(o.keys) }

// Len is the number of keys
func (o Object) Len() int { return len(o.keys) }

// MarshalJSON encodes the object with keys in insertion order
func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(o.vals[i])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
