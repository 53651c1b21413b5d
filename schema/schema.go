// Package schema normalizes attribute declarations into a fixed per-record layout.
//
// A Schema is built once from an ordered list of declarations and never changes. Each
// attribute receives a byte offset inside a record, assigned in declaration order, and
// the record stride is the total attribute size rounded up to the schema alignment:
//
//	s, err := schema.New(schema.VertexAlignment,
//	    schema.Attr("pos", schema.Components(2), schema.Type(format.Short)),
//	    schema.Attr("extrude", schema.Components(2), schema.Type(format.Byte)),
//	)
//	// pos: offset 0, 4 bytes; extrude: offset 4, 2 bytes; stride 8
package schema

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/arloliu/packbuf/errs"
	"github.com/arloliu/packbuf/format"
	"github.com/arloliu/packbuf/internal/collision"
	"github.com/arloliu/packbuf/internal/hash"
	"github.com/arloliu/packbuf/internal/options"
)

const (
	// VertexAlignment is the record alignment GPUs expect for vertex attributes.
	VertexAlignment = 4
	// IndexAlignment is the record alignment used for index (element) buffers.
	IndexAlignment = 1

	// MaxComponents is the largest component count one attribute may declare.
	MaxComponents = 255
	// MaxNameLength is the longest attribute name in bytes.
	MaxNameLength = 255
	// MaxAttributes is the largest number of attributes in one schema.
	MaxAttributes = math.MaxUint16
	// MaxAlignment is the largest supported record alignment.
	MaxAlignment = 255
)

// Attribute is a normalized attribute of a Schema.
type Attribute struct {
	// Name identifies the attribute inside a record.
	Name string
	// ID is the xxHash64 of Name.
	ID uint64
	// Components is the number of scalar components, at least 1.
	Components int
	// Type is the scalar type of every component.
	Type format.ScalarType
	// Offset is the byte offset of the attribute inside one record.
	Offset int
	// Size is Components * Type.Width().
	Size int
}

// ComponentOffset returns the byte offset of component inside one record.
func (a Attribute) ComponentOffset(component int) int {
	return a.Offset + component*a.Type.Width()
}

// Decl is an attribute declaration handed to New.
type Decl struct {
	name string
	opts []AttrOption
}

type declConfig struct {
	name       string
	components int
	typ        format.ScalarType
}

// AttrOption configures one attribute declaration.
type AttrOption = options.Option[*declConfig]

// Attr declares an attribute. Without options it has one UnsignedByte component.
func Attr(name string, opts ...AttrOption) Decl {
	return Decl{name: name, opts: opts}
}

// Components sets the component count of an attribute. It must be in [1, MaxComponents].
func Components(n int) AttrOption {
	return options.New(func(c *declConfig) error {
		if n < 1 || n > MaxComponents {
			return fmt.Errorf("%w: attribute %q has %d components", errs.ErrInvalidSchema, c.name, n)
		}
		c.components = n

		return nil
	})
}

// Type sets the scalar type of an attribute.
func Type(t format.ScalarType) AttrOption {
	return options.New(func(c *declConfig) error {
		if !t.IsValid() {
			return fmt.Errorf("%w: attribute %q has unknown scalar type %d", errs.ErrInvalidSchema, c.name, uint8(t))
		}
		c.typ = t

		return nil
	})
}

// Schema is an immutable record layout.
type Schema struct {
	attrs       []Attribute
	byName      map[string]int
	byID        map[uint64]int
	alignment   int
	stride      int
	fingerprint uint64
}

// New builds a schema from decls in declaration order.
//
// It fails with errs.ErrInvalidSchema when alignment is outside [1, MaxAlignment], no
// attribute is declared, or any declaration is rejected.
func New(alignment int, decls ...Decl) (*Schema, error) {
	if alignment < 1 || alignment > MaxAlignment {
		return nil, fmt.Errorf("%w: alignment %d", errs.ErrInvalidSchema, alignment)
	}
	if len(decls) == 0 {
		return nil, fmt.Errorf("%w: no attributes declared", errs.ErrInvalidSchema)
	}
	if len(decls) > MaxAttributes {
		return nil, fmt.Errorf("%w: %d attributes exceeds maximum %d", errs.ErrInvalidSchema, len(decls), MaxAttributes)
	}

	s := &Schema{
		attrs:     make([]Attribute, 0, len(decls)),
		byName:    make(map[string]int, len(decls)),
		byID:      make(map[uint64]int, len(decls)),
		alignment: alignment,
	}

	tracker := collision.NewTracker()
	cursor := 0
	for _, d := range decls {
		attr, err := normalize(d)
		if err != nil {
			return nil, err
		}
		if err := tracker.Track(attr.Name, attr.ID); err != nil {
			return nil, err
		}

		attr.Offset = cursor
		cursor += attr.Size

		s.byName[attr.Name] = len(s.attrs)
		s.byID[attr.ID] = len(s.attrs)
		s.attrs = append(s.attrs, attr)
	}
	if tracker.HasCollision() {
		pair := tracker.Collisions()[0]
		return nil, fmt.Errorf("%w: attributes %q and %q share an id", errs.ErrInvalidSchema, pair[0], pair[1])
	}

	s.stride = AlignUp(cursor, alignment)
	s.fingerprint = s.computeFingerprint()

	return s, nil
}

// MustNew is like New but panics on error. It is intended for package-level layouts.
func MustNew(alignment int, decls ...Decl) *Schema {
	s, err := New(alignment, decls...)
	if err != nil {
		panic(err)
	}

	return s
}

func normalize(d Decl) (Attribute, error) {
	if d.name == "" {
		return Attribute{}, fmt.Errorf("%w: empty attribute name", errs.ErrInvalidSchema)
	}
	if len(d.name) > MaxNameLength {
		return Attribute{}, fmt.Errorf("%w: attribute name of %d bytes exceeds maximum %d",
			errs.ErrInvalidSchema, len(d.name), MaxNameLength)
	}

	cfg := &declConfig{name: d.name, components: 1, typ: format.UnsignedByte}
	if err := options.Apply(cfg, d.opts...); err != nil {
		return Attribute{}, err
	}

	return Attribute{
		Name:       cfg.name,
		ID:         hash.ID(cfg.name),
		Components: cfg.components,
		Type:       cfg.typ,
		Size:       cfg.components * cfg.typ.Width(),
	}, nil
}

func (s *Schema) computeFingerprint() uint64 {
	f := hash.NewFingerprint()
	f.WriteUint64(uint64(s.alignment)) //nolint:gosec
	for _, a := range s.attrs {
		f.WriteString(a.Name)
		f.WriteUint64(uint64(a.Components)) //nolint:gosec
		f.WriteUint64(uint64(a.Type))
	}

	return f.Sum64()
}

// AlignUp rounds n up to the next multiple of alignment. Alignment must be positive.
func AlignUp(n, alignment int) int {
	if rem := n % alignment; rem != 0 {
		return n + alignment - rem
	}

	return n
}

// Stride returns the aligned size of one record in bytes.
func (s *Schema) Stride() int {
	return s.stride
}

// Alignment returns the record alignment.
func (s *Schema) Alignment() int {
	return s.alignment
}

// PackedSize returns the unaligned sum of all attribute sizes.
func (s *Schema) PackedSize() int {
	if len(s.attrs) == 0 {
		return 0
	}
	last := s.attrs[len(s.attrs)-1]

	return last.Offset + last.Size
}

// Len returns the number of attributes.
func (s *Schema) Len() int {
	return len(s.attrs)
}

// At returns the i-th attribute in declaration order.
func (s *Schema) At(i int) Attribute {
	return s.attrs[i]
}

// Attributes returns a copy of all attributes in declaration order.
func (s *Schema) Attributes() []Attribute {
	return slices.Clone(s.attrs)
}

// Lookup returns the attribute with the given name.
func (s *Schema) Lookup(name string) (Attribute, bool) {
	i, ok := s.byName[name]
	if !ok {
		return Attribute{}, false
	}

	return s.attrs[i], true
}

// LookupID returns the attribute whose ID is id. IDs are unique within a schema.
func (s *Schema) LookupID(id uint64) (Attribute, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Attribute{}, false
	}

	return s.attrs[i], true
}

// Index returns the declaration position of name, or -1.
func (s *Schema) Index(name string) int {
	if i, ok := s.byName[name]; ok {
		return i
	}

	return -1
}

// Fingerprint returns an xxHash64 over the alignment and every attribute's name,
// component count and type. Two schemas with equal fingerprints have the same layout.
func (s *Schema) Fingerprint() uint64 {
	return s.fingerprint
}

// Equal reports whether s and other describe the same layout.
func (s *Schema) Equal(other *Schema) bool {
	if s == nil || other == nil {
		return s == other
	}

	return s.fingerprint == other.fingerprint &&
		s.stride == other.stride &&
		slices.Equal(s.attrs, other.attrs)
}

// String formats the layout as "name:TYPEx2@0 ... stride=8".
func (s *Schema) String() string {
	var sb strings.Builder
	for i, a := range s.attrs {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%s:%sx%d@%d", a.Name, a.Type, a.Components, a.Offset)
	}
	fmt.Fprintf(&sb, " stride=%d", s.stride)

	return sb.String()
}
