package buffer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecord(t *testing.T) {
	rec := NewRecord(Vector("pos", 1, 2), Scalar("flag", 1), Vector("pos", 3, 4))

	require.Equal(t, []string{"pos", "flag", "pos"}, rec.Names())
	require.Equal(t, []int64{3, 4}, rec.Values("pos"), "last field with a name wins")
	require.Nil(t, rec.Values("missing"))

	f, ok := rec.Field("flag")
	require.True(t, ok)
	require.True(t, f.IsScalar())
	require.False(t, rec[0].IsScalar())
}

func TestRecord_Equal(t *testing.T) {
	a := NewRecord(Scalar("flag", 1), Vector("pos", 1, 2))
	b := NewRecord(Vector("flag", 1), Vector("pos", 1, 2))
	c := NewRecord(Vector("pos", 1, 2), Vector("flag", 1))

	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
	require.False(t, a.Equal(NewRecord()))
}
