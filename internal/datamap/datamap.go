package datamap

import (
	"errors"
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// ErrAbsent is wrapped by extractors that find a nested attribute missing.
var ErrAbsent = errors.New("attribute absent")

// Absent returns an error reporting that the named attribute is missing.
func Absent(attr string) error {
	return fmt.Errorf("%w: %s", ErrAbsent, attr)
}

// Extractor derives one scalar field value from a source entity.
type Extractor[T any] func(src T) (cty.Value, error)

// Field pairs an output field name with its extractor.
type Field[T any] struct {
	Name    string
	Extract Extractor[T]
}

// F is shorthand for declaring a Field.
func F[T any](name string, extract Extractor[T]) Field[T] {
	return Field[T]{Name: name, Extract: extract}
}

// Placeholder declares a field the caller fills in after mapping. It
// extracts a null value.
func Placeholder[T any]() Extractor[T] {
	return func(T) (cty.Value, error) {
		return cty.NullVal(cty.DynamicPseudoType), nil
	}
}

// Const declares a field whose value is the same for every entity.
func Const[T any](v cty.Value) Extractor[T] {
	return func(T) (cty.Value, error) { return v, nil }
}

// Table is an ordered set of fields for one kind of source entity.
type Table[T any] struct {
	name   string
	fields []Field[T]
	header *Header
}

// NewTable declares a table. It panics on duplicate or empty field names,
// since tables are declared by the program, not read from input.
func NewTable[T any](name string, fields ...Field[T]) *Table[T] {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return &Table[T]{name: name, fields: fields, header: NewHeader(names...)}
}

// Header returns the table's field list.
func (t *Table[T]) Header() *Header { return t.header }

// Apply runs every extractor against src. loc identifies src in errors.
// The first failing extractor aborts the mapping with an
// *ExtractionFieldError.
func (t *Table[T]) Apply(src T, loc Location) (*Record, error) {
	values := make([]cty.Value, len(t.fields))
	for i, f := range t.fields {
		v, err := f.Extract(src)
		if err != nil {
			return nil, &ExtractionFieldError{Table: t.name, Field: f.Name, Location: loc, Err: err}
		}
		values[i] = v
	}
	return &Record{header: t.header, values: values}, nil
}

// Header is an immutable, ordered list of field names.
type Header struct {
	names []string
	index map[string]int
}

// NewHeader builds a header from field names. It panics on duplicate or
// empty names.
func NewHeader(names ...string) *Header {
	h := &Header{names: names, index: make(map[string]int, len(names))}
	for i, n := range names {
		if n == "" {
			panic("datamap: empty field name")
		}
		if _, dup := h.index[n]; dup {
			panic(fmt.Sprintf("datamap: duplicate field %q", n))
		}
		h.index[n] = i
	}
	return h
}

// Names returns a copy of the field names in order.
func (h *Header) Names() []string {
	return append([]string(nil), h.names...)
}

// Index returns the position of a field, or -1.
func (h *Header) Index(name string) int {
	if i, ok := h.index[name]; ok {
		return i
	}
	return -1
}

// Record is one mapped entity.
type Record struct {
	header *Header
	values []cty.Value
}

// NewRecord builds a record directly from values in header order.
func NewRecord(h *Header, values ...cty.Value) *Record {
	if len(values) != len(h.names) {
		panic(fmt.Sprintf("datamap: %d values for %d fields", len(values), len(h.names)))
	}
	return &Record{header: h, values: values}
}

// Header returns the record's field list.
func (r *Record) Header() *Header { return r.header }

// Get returns the value of a field. It panics if the field is not declared.
func (r *Record) Get(name string) cty.Value {
	return r.values[r.mustIndex(name)]
}

// Set overwrites the value of a declared field. It panics if the field is
// not declared.
func (r *Record) Set(name string, v cty.Value) {
	r.values[r.mustIndex(name)] = v
}

// Values returns a copy of the values in header order.
func (r *Record) Values() []cty.Value {
	return append([]cty.Value(nil), r.values...)
}

func (r *Record) mustIndex(name string) int {
	i := r.header.Index(name)
	if i < 0 {
		panic(fmt.Sprintf("datamap: field %q is not declared", name))
	}
	return i
}
