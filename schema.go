package confmt

import (
	"fmt"
	"strings"
)

// Field is one named entry of a [Record].
type Field struct {
	Name   string
	Value  Value
	Usage  string // one-line help text, used by the command-line overlay
	Hidden bool   // excluded from output and unreachable by overlays
}

// visible reports whether the field participates in output and overlays.
// Names carrying the internal "_" prefix are treated as hidden even without
// the explicit flag, so records assembled from schemas that use the marker
// convention never leak those fields.
func (f Field) visible() bool {
	return !f.Hidden && !strings.HasPrefix(f.Name, internalPrefix)
}

// Record is an ordered set of named fields with kinds fixed at declaration.
// Field declaration order is stable and defines output order. A Record must
// not be mutated while it is being formatted.
type Record struct {
	fields []Field
	index  map[string]int
}

// NewRecord builds a Record from fields in declaration order. Names are
// expected to be unique; if one is duplicated, Lookup and Set address the
// first occurrence while formatting emits every occurrence in order.
func NewRecord(fields ...Field) *Record {
	r := &Record{
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		r.Append(f)
	}
	return r
}

// Append adds a field after the existing ones.
func (r *Record) Append(f Field) {
	if r.index == nil {
		r.index = make(map[string]int)
	}
	if _, ok := r.index[f.Name]; !ok {
		r.index[f.Name] = len(r.fields)
	}
	r.fields = append(r.fields, f)
}

// Len returns the number of fields, hidden ones included.
func (r *Record) Len() int { return len(r.fields) }

// Fields returns a copy of the fields in declaration order.
func (r *Record) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// Lookup returns the current value of the named field.
func (r *Record) Lookup(name string) (Value, bool) {
	i, ok := r.index[name]
	if !ok {
		return Value{}, false
	}
	return r.fields[i].Value, true
}

// Set replaces the named field's value with v. The replacement must keep
// the field's declared kind; a field's kind never changes after
// declaration. Unlike the overlays, Set reaches hidden fields too.
func (r *Record) Set(name string, v Value) error {
	i, ok := r.index[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	cur := r.fields[i].Value
	if v.kind != cur.kind {
		return fmt.Errorf("%w: field %q is %s, not %s", ErrInvalidValue, name, cur.kind, v.kind)
	}
	r.fields[i].Value = v
	return nil
}
