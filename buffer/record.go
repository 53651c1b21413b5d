package buffer

import "slices"

// Field is one attribute entry of a Record.
type Field struct {
	// Name is the attribute name.
	Name string
	// Values holds the component values in order.
	Values []int64

	scalar bool
}

// Scalar returns a single-value field. It is only accepted for attributes with exactly
// one component.
func Scalar(name string, v int64) Field {
	return Field{Name: name, Values: []int64{v}, scalar: true}
}

// Vector returns a field holding a sequence of component values. The sequence length must
// equal the attribute's component count.
func Vector(name string, values ...int64) Field {
	return Field{Name: name, Values: values}
}

// IsScalar reports whether f was created by Scalar.
func (f Field) IsScalar() bool {
	return f.scalar
}

// Record is an ordered list of attribute values.
//
// Attributes left out of a record written with Append or Set keep whatever bytes the
// region held at their position; they are not zeroed.
type Record []Field

// NewRecord builds a record from fields.
func NewRecord(fields ...Field) Record {
	return Record(fields)
}

// Field returns the last field named name.
func (r Record) Field(name string) (Field, bool) {
	for i := len(r) - 1; i >= 0; i-- {
		if r[i].Name == name {
			return r[i], true
		}
	}

	return Field{}, false
}

// Values returns the component values of name, or nil when absent.
func (r Record) Values(name string) []int64 {
	f, ok := r.Field(name)
	if !ok {
		return nil
	}

	return f.Values
}

// Names returns the field names in record order.
func (r Record) Names() []string {
	names := make([]string, len(r))
	for i, f := range r {
		names[i] = f.Name
	}

	return names
}

// Equal reports whether r and other hold the same names and values in the same order.
// Scalar and single-element vector fields compare equal.
func (r Record) Equal(other Record) bool {
	return slices.EqualFunc(r, other, func(a, b Field) bool {
		return a.Name == b.Name && slices.Equal(a.Values, b.Values)
	})
}
