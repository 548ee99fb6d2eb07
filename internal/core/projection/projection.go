// Package projection maps requested output field names to the storage columns needed to produce them
package projection

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Type tells the result mapper how to render a field
type Type uint8

const (
	TypeInt Type = iota + 1
	TypeString
	TypeBool
	TypeAccount   // account id column, rendered as {alias, address}
	TypeLevel     // block height
	TypeTimestamp // derived from the level column
	TypeQuote     // derived from the level column
	TypeParameter // entrypoint + raw value columns
	TypeTime      // native timestamp column
	TypeStatus    // operation status code, rendered as its name
)

// Field is one output field of a kind
// A field with Subs accepts dotted requests (x.sub) that reuse its columns.
type Field struct {
	Name    string
	Columns []string
	Type    Type
	Subs    []string
}

// HasSub reports whether sub is a valid dotted component of f
func (f Field) HasSub(sub string) bool {
	for _, s := range f.Subs {
		if fold(s) == fold(sub) {
			return true
		}
	}
	return false
}

// Schema is the immutable field table of one kind
type Schema struct {
	fields []Field
	byName map[string]int
}

// NewSchema indexes fields by folded name; duplicate names are a programming error
func NewSchema(fields ...Field) *Schema {
	s := &Schema{fields: fields, byName: make(map[string]int, len(fields))}
	for i, f := range fields {
		k := fold(f.Name)
		if _, dup := s.byName[k]; dup {
			panic(fmt.Sprintf("projection: duplicate field %q", f.Name))
		}
		if len(f.Columns) == 0 {
			panic(fmt.Sprintf("projection: field %q has no columns", f.Name))
		}
		s.byName[k] = i
	}
	return s
}

// Fields returns the schema fields in declaration order
func (s *Schema) Fields() []Field { return s.fields }

// Lookup finds a top-level field by name, ignoring case
func (s *Schema) Lookup(name string) (Field, bool) {
	i, ok := s.byName[fold(name)]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Column returns the first storage column of a field, used for predicates and sorting
func (s *Schema) Column(name string) (string, bool) {
	f, ok := s.Lookup(name)
	if !ok {
		return "", false
	}
	return f.Columns[0], true
}

// Spec is an ordered list of requested field names
type Spec []string

// Fields builds a Spec, splitting comma separated entries
func Fields(names ...string) Spec {
	var out Spec
	for _, n := range names {
		for _, p := range strings.Split(n, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// Selected is one resolved output field
type Selected struct {
	Name  string // output key as requested
	Field Field
	Sub   string // dotted component, empty for the whole field
}

// Selection is the resolved projection: output fields and the deduplicated column set
type Selection struct {
	Fields  []Selected
	Columns []string
}

// Empty reports whether nothing resolved
func (s Selection) Empty() bool { return len(s.Columns) == 0 }

// Resolve maps spec onto the schema
// Unknown names and unknown dotted components are dropped. Resolution is idempotent:
// a name requested twice yields one output field, and shared columns appear once.
func (s *Schema) Resolve(spec Spec) Selection {
	var sel Selection
	seenField := map[string]bool{}
	seenCol := map[string]bool{}

	for _, raw := range spec {
		name := strings.TrimSpace(raw)
		base, sub, dotted := strings.Cut(name, ".")
		f, ok := s.Lookup(base)
		if !ok {
			continue
		}
		if dotted && !f.HasSub(sub) {
			continue
		}
		key := fold(name)
		if seenField[key] {
			continue
		}
		seenField[key] = true
		sel.Fields = append(sel.Fields, Selected{Name: name, Field: f, Sub: sub})
		for _, c := range f.Columns {
			if !seenCol[c] {
				seenCol[c] = true
				sel.Columns = append(sel.Columns, c)
			}
		}
	}
	return sel
}

// Native resolves every field of the schema, the kind's full row shape
func (s *Schema) Native() Selection {
	spec := make(Spec, len(s.fields))
	for i, f := range s.fields {
		spec[i] = f.Name
	}
	return s.Resolve(spec)
}

// fold applies Unicode case folding; a Caser is not safe for concurrent use so one is built per call
func fold(s string) string { return cases.Fold().String(s) }
