package schema

import (
	"strings"
	"testing"

	"github.com/arloliu/packbuf/errs"
	"github.com/arloliu/packbuf/format"
	"github.com/stretchr/testify/require"
)

func TestNew_Offsets(t *testing.T) {
	s, err := New(VertexAlignment,
		Attr("pos", Components(2), Type(format.Short)),
		Attr("extrude", Components(2), Type(format.Byte)),
		Attr("data", Components(3), Type(format.UnsignedByte)),
	)
	require.NoError(t, err)

	require.Equal(t, 3, s.Len())
	require.Equal(t, VertexAlignment, s.Alignment())

	pos, ok := s.Lookup("pos")
	require.True(t, ok)
	require.Equal(t, 0, pos.Offset)
	require.Equal(t, 4, pos.Size)

	extrude, ok := s.Lookup("extrude")
	require.True(t, ok)
	require.Equal(t, 4, extrude.Offset)
	require.Equal(t, 2, extrude.Size)

	data, ok := s.Lookup("data")
	require.True(t, ok)
	require.Equal(t, 6, data.Offset)
	require.Equal(t, 3, data.Size)

	require.Equal(t, 9, s.PackedSize())
	require.Equal(t, 12, s.Stride())
}

func TestNew_Defaults(t *testing.T) {
	s, err := New(IndexAlignment, Attr("flag"))
	require.NoError(t, err)

	attr := s.At(0)
	require.Equal(t, 1, attr.Components)
	require.Equal(t, format.UnsignedByte, attr.Type)
	require.Equal(t, 1, attr.Size)
	require.Equal(t, 1, s.Stride())
}

func TestNew_SingleShortPair(t *testing.T) {
	s, err := New(VertexAlignment, Attr("position", Components(2), Type(format.Short)))
	require.NoError(t, err)

	pos, ok := s.Lookup("position")
	require.True(t, ok)
	require.Equal(t, 0, pos.Offset)
	require.Equal(t, 4, s.Stride())
}

func TestNew_IndexLayout(t *testing.T) {
	s, err := New(IndexAlignment, Attr("vertices", Components(3), Type(format.UnsignedShort)))
	require.NoError(t, err)
	require.Equal(t, 6, s.Stride())

	// the same layout under vertex alignment pads to 8
	v, err := New(VertexAlignment, Attr("vertices", Components(3), Type(format.UnsignedShort)))
	require.NoError(t, err)
	require.Equal(t, 8, v.Stride())
	require.NotEqual(t, s.Fingerprint(), v.Fingerprint())
}

func TestNew_InvalidSchema(t *testing.T) {
	tests := []struct {
		name      string
		alignment int
		decls     []Decl
	}{
		{"empty name", VertexAlignment, []Decl{Attr("")}},
		{"duplicate name", VertexAlignment, []Decl{Attr("a"), Attr("b"), Attr("a")}},
		{"zero components", VertexAlignment, []Decl{Attr("a", Components(0))}},
		{"negative components", VertexAlignment, []Decl{Attr("a", Components(-2))}},
		{"too many components", VertexAlignment, []Decl{Attr("a", Components(MaxComponents+1))}},
		{"unknown type", VertexAlignment, []Decl{Attr("a", Type(format.ScalarType(0x42)))}},
		{"zero alignment", 0, []Decl{Attr("a")}},
		{"huge alignment", MaxAlignment + 1, []Decl{Attr("a")}},
		{"no attributes", VertexAlignment, nil},
		{"name too long", VertexAlignment, []Decl{Attr(strings.Repeat("x", MaxNameLength+1))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.alignment, tt.decls...)
			require.ErrorIs(t, err, errs.ErrInvalidSchema)
			require.Nil(t, s)
		})
	}
}

func TestMustNew(t *testing.T) {
	require.NotPanics(t, func() { MustNew(VertexAlignment, Attr("a")) })
	require.Panics(t, func() { MustNew(VertexAlignment, Attr("")) })
}

func TestStrideInvariants(t *testing.T) {
	types := format.ScalarTypes()
	for _, alignment := range []int{1, 2, 4, 8, 16} {
		for count := 1; count <= 6; count++ {
			decls := make([]Decl, 0, count)
			for i := range count {
				typ := types[i%len(types)]
				decls = append(decls, Attr(string(rune('a'+i)), Components(i%4+1), Type(typ)))
			}

			s, err := New(alignment, decls...)
			require.NoError(t, err)

			sum := 0
			for _, a := range s.Attributes() {
				sum += a.Size
			}
			require.Zero(t, s.Stride()%alignment, "stride %d not aligned to %d", s.Stride(), alignment)
			require.GreaterOrEqual(t, s.Stride(), sum)
			require.Less(t, s.Stride()-sum, alignment)
		}
	}
}

func TestSchema_Lookup(t *testing.T) {
	s := MustNew(VertexAlignment, Attr("a"), Attr("b", Components(2)))

	require.Equal(t, 0, s.Index("a"))
	require.Equal(t, 1, s.Index("b"))
	require.Equal(t, -1, s.Index("missing"))

	_, ok := s.Lookup("missing")
	require.False(t, ok)

	b, _ := s.Lookup("b")
	require.Equal(t, 1, b.ComponentOffset(0))
	require.Equal(t, 2, b.ComponentOffset(1))
	require.NotZero(t, b.ID)

	byID, ok := s.LookupID(b.ID)
	require.True(t, ok)
	require.Equal(t, b, byID)

	_, ok = s.LookupID(b.ID + 1)
	require.False(t, ok)
}

func TestSchema_AttributesIsCopy(t *testing.T) {
	s := MustNew(VertexAlignment, Attr("a"))
	attrs := s.Attributes()
	attrs[0].Name = "mutated"

	require.Equal(t, "a", s.At(0).Name)
}

func TestSchema_Equal(t *testing.T) {
	a := MustNew(VertexAlignment, Attr("pos", Components(2), Type(format.Short)))
	b := MustNew(VertexAlignment, Attr("pos", Components(2), Type(format.Short)))
	c := MustNew(VertexAlignment, Attr("pos", Components(2), Type(format.UnsignedShort)))

	require.True(t, a.Equal(b))
	require.Equal(t, a.Fingerprint(), b.Fingerprint())
	require.False(t, a.Equal(c))
	require.False(t, a.Equal(nil))
}

func TestSchema_String(t *testing.T) {
	s := MustNew(VertexAlignment,
		Attr("pos", Components(2), Type(format.Short)),
		Attr("color", Components(4)),
	)

	require.Equal(t, "pos:SHORTx2@0 color:UNSIGNED_BYTEx4@4 stride=8", s.String())
}

func TestAlignUp(t *testing.T) {
	tests := []struct{ n, alignment, want int }{
		{0, 4, 0},
		{1, 4, 4},
		{4, 4, 4},
		{5, 4, 8},
		{7, 1, 7},
		{13, 8, 16},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, AlignUp(tt.n, tt.alignment))
	}
}
