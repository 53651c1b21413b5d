package format

import (
	"testing"

	"github.com/arloliu/packbuf/errs"
	"github.com/stretchr/testify/require"
)

func TestScalarType_Width(t *testing.T) {
	tests := []struct {
		typ    ScalarType
		width  int
		signed bool
		name   string
	}{
		{Byte, 1, true, "BYTE"},
		{UnsignedByte, 1, false, "UNSIGNED_BYTE"},
		{Short, 2, true, "SHORT"},
		{UnsignedShort, 2, false, "UNSIGNED_SHORT"},
		{Int, 4, true, "INT"},
		{UnsignedInt, 4, false, "UNSIGNED_INT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.True(t, tt.typ.IsValid())
			require.Equal(t, tt.width, tt.typ.Width())
			require.Equal(t, tt.signed, tt.typ.Signed())
			require.Equal(t, tt.name, tt.typ.String())
		})
	}
}

func TestScalarType_Invalid(t *testing.T) {
	for _, typ := range []ScalarType{0, MaxScalarType + 1, 0xFF} {
		require.False(t, typ.IsValid())
		require.Equal(t, 0, typ.Width())
		require.Equal(t, "Unknown", typ.String())
	}
}

func TestParseScalarType(t *testing.T) {
	typ, err := ParseScalarType("unsigned_short")
	require.NoError(t, err)
	require.Equal(t, UnsignedShort, typ)

	typ, err = ParseScalarType(" BYTE ")
	require.NoError(t, err)
	require.Equal(t, Byte, typ)

	_, err = ParseScalarType("FLOAT")
	require.ErrorIs(t, err, errs.ErrUnsupportedFormat)
}

func TestCompressionType_String(t *testing.T) {
	require.Equal(t, "None", CompressionNone.String())
	require.Equal(t, "Zstd", CompressionZstd.String())
	require.Equal(t, "S2", CompressionS2.String())
	require.Equal(t, "LZ4", CompressionLZ4.String())
	require.Equal(t, "Unknown", CompressionType(0).String())
}
