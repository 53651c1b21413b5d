package buffer

import "github.com/arloliu/packbuf/format"

// AttributeLayout describes where one attribute lives inside a record.
type AttributeLayout struct {
	Name       string
	Components int
	Type       format.ScalarType
	Offset     int
}

// Layout is the vertex layout a GPU binding adapter needs to describe a buffer to a shader
// stage.
type Layout struct {
	// Stride is the byte distance between consecutive records.
	Stride     int
	Attributes []AttributeLayout
}

// Attribute returns the layout entry named name.
func (l Layout) Attribute(name string) (AttributeLayout, bool) {
	for _, a := range l.Attributes {
		if a.Name == name {
			return a, true
		}
	}

	return AttributeLayout{}, false
}
