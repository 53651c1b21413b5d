package collision

import (
	"testing"

	"github.com/arloliu/packbuf/errs"
	"github.com/arloliu/packbuf/internal/hash"
	"github.com/stretchr/testify/require"
)

func TestTracker_Track(t *testing.T) {
	tr := NewTracker()

	require.NoError(t, tr.Track("pos", hash.ID("pos")))
	require.NoError(t, tr.Track("color", hash.ID("color")))
	require.False(t, tr.HasCollision())
	require.Empty(t, tr.Collisions())
}

func TestTracker_Errors(t *testing.T) {
	tr := NewTracker()

	require.ErrorIs(t, tr.Track("", 1), errs.ErrInvalidSchema)

	require.NoError(t, tr.Track("pos", hash.ID("pos")))
	err := tr.Track("pos", hash.ID("pos"))
	require.ErrorIs(t, err, errs.ErrInvalidSchema)
	require.ErrorContains(t, err, "duplicate")
	require.False(t, tr.HasCollision())
}

func TestTracker_Collision(t *testing.T) {
	tr := NewTracker()

	// ids are supplied directly to force a collision
	require.NoError(t, tr.Track("a", 42))
	require.NoError(t, tr.Track("b", 42))
	require.NoError(t, tr.Track("c", 7))

	require.True(t, tr.HasCollision())
	require.Equal(t, [][2]string{{"a", "b"}}, tr.Collisions())

	require.ErrorIs(t, tr.Track("a", 42), errs.ErrInvalidSchema)
	require.ErrorIs(t, tr.Track("b", 42), errs.ErrInvalidSchema)
}
