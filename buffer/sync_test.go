package buffer

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSynchronized_ConcurrentAppendAndRead(t *testing.T) {
	buf, err := New(positionSchema(t), WithInitialCapacity(4))
	require.NoError(t, err)
	sb := NewSynchronized(buf)

	const writers = 8
	const perWriter = 200

	var wg sync.WaitGroup
	for w := range writers {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := range perWriter {
				_, err := sb.Append(NewRecord(Vector("position", int64(id), int64(i))))
				if err != nil {
					t.Errorf("append: %v", err)
					return
				}
			}
		}(w)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for range perWriter {
			n := sb.Len()
			if n == 0 {
				continue
			}
			rec, err := sb.Get(n - 1)
			if err != nil {
				t.Errorf("get: %v", err)
				return
			}
			if len(rec.Values("position")) != 2 {
				t.Errorf("unexpected record %v", rec)
				return
			}
		}
	}()
	wg.Wait()

	require.Equal(t, writers*perWriter, sb.Len())
	require.Equal(t, writers*perWriter*4, sb.ByteLength())
	require.Len(t, sb.CopyBytes(), writers*perWriter*4)

	// every writer's records appear in its own order
	next := make([]int64, writers)
	for i := range sb.Len() {
		rec, err := sb.Get(i)
		require.NoError(t, err)
		values := rec.Values("position")
		require.Equal(t, next[values[0]], values[1])
		next[values[0]]++
	}
}

func TestSynchronized_UpdateAndView(t *testing.T) {
	buf, err := New(positionSchema(t))
	require.NoError(t, err)
	sb := NewSynchronized(buf)

	err = sb.Update(func(b *Buffer) error {
		if _, err := b.Append(NewRecord(Vector("position", 1, 2))); err != nil {
			return err
		}

		return b.SetAttribute(0, "position", 1, 3)
	})
	require.NoError(t, err)

	require.NoError(t, sb.Set(0, NewRecord(Vector("position", 4, 5))))
	require.NoError(t, sb.SetAttribute(0, "position", 0, 6))

	v, err := sb.GetAttribute(0, "position", 0)
	require.NoError(t, err)
	require.Equal(t, int64(6), v)

	err = sb.View(func(b *Buffer) error {
		require.Equal(t, 1, b.Len())
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 4, sb.Layout().Stride)

	sb.Release()
	require.True(t, buf.Released())
}
