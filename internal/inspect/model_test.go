package inspect

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arloliu/packbuf/buffer"
	"github.com/arloliu/packbuf/endian"
	"github.com/arloliu/packbuf/format"
	"github.com/arloliu/packbuf/schema"
	"github.com/arloliu/packbuf/snapshot"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func sampleBuffer(t *testing.T) *buffer.Buffer {
	t.Helper()

	s, err := schema.New(schema.VertexAlignment,
		schema.Attr("pos", schema.Components(2), schema.Type(format.Short)),
		schema.Attr("color", schema.Components(3)),
	)
	require.NoError(t, err)

	buf, err := buffer.New(s, buffer.WithLittleEndian())
	require.NoError(t, err)
	_, err = buf.Append(buffer.NewRecord(buffer.Vector("pos", 1, -2), buffer.Vector("color", 255, 0, 16)))
	require.NoError(t, err)
	_, err = buf.Append(buffer.NewRecord(buffer.Vector("pos", 300, 4), buffer.Vector("color", 1, 2, 3)))
	require.NoError(t, err)

	return buf
}

func TestRowsAndColumns(t *testing.T) {
	buf := sampleBuffer(t)
	defer buf.Release()

	cols := columns(buf.Layout())
	require.Len(t, cols, 3)
	require.Equal(t, "#", cols[0].Title)
	require.Equal(t, "pos SHORTx2", cols[1].Title)
	require.Equal(t, "color UNSIGNED_BYTEx3", cols[2].Title)

	trows, err := rows(buf)
	require.NoError(t, err)
	require.Len(t, trows, 2)
	require.Equal(t, []string{"0", "1 -2", "255 0 16"}, []string(trows[0]))
	require.Equal(t, []string{"1", "300 4", "1 2 3"}, []string(trows[1]))
}

func TestRecordHex(t *testing.T) {
	buf := sampleBuffer(t)
	defer buf.Release()

	// the trailing padding byte is unspecified
	require.True(t, strings.HasPrefix(recordHex(buf, 0), "0100feff ff0010 ("))
	require.True(t, strings.HasPrefix(recordHex(buf, 1), "2c010400 010203 ("))
	require.Empty(t, recordHex(buf, 2))
	require.Empty(t, recordHex(buf, -1))
}

func TestModel(t *testing.T) {
	buf := sampleBuffer(t)
	m := New(buf, Source{Name: "sample"})

	require.Contains(t, m.Summary(), "records=2")
	require.Contains(t, m.Summary(), "stride=8")
	require.Contains(t, m.Summary(), "little-endian")
	if endian.CompareNativeEndian(endian.GetLittleEndianEngine()) {
		require.Contains(t, m.Summary(), "little-endian (host)")
	} else {
		require.Contains(t, m.Summary(), "little-endian (swapped)")
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)
	require.Contains(t, m.View(), "packview")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	m = next.(Model)
	require.True(t, m.showHex)
	require.Contains(t, m.View(), "hex: 0100feff")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	require.True(t, buf.Released())
}

func TestNewWithPath(t *testing.T) {
	buf := sampleBuffer(t)
	defer buf.Release()

	data, err := snapshot.Encode(buf)
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "sample.pbs")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	m := NewWithPath(path)
	require.NoError(t, m.err)
	require.Contains(t, m.Summary(), "sample.pbs")
	require.Contains(t, m.Summary(), "compression=Zstd")

	bad := NewWithPath(filepath.Join(dir, "missing.pbs"))
	require.Error(t, bad.err)
	require.Contains(t, bad.View(), "missing.pbs")

	corrupt := filepath.Join(dir, "corrupt.pbs")
	require.NoError(t, os.WriteFile(corrupt, data[:10], 0o600))
	require.Error(t, NewWithPath(corrupt).err)
}

func TestModelRelease(t *testing.T) {
	s, err := schema.New(schema.VertexAlignment,
		schema.Attr("pos", schema.Components(2), schema.Type(format.Short)),
	)
	require.NoError(t, err)
	buf, err := buffer.New(s, buffer.WithBigEndian())
	require.NoError(t, err)

	m := New(buf, Source{Name: "swapped"})
	if endian.CompareNativeEndian(endian.GetBigEndianEngine()) {
		require.Contains(t, m.Summary(), "big-endian (host)")
	} else {
		require.Contains(t, m.Summary(), "big-endian (swapped)")
	}

	m.Release()
	require.True(t, buf.Released())
	m.Release()

	// a model that failed to load holds no buffer
	NewWithPath(filepath.Join(t.TempDir(), "missing.pbs")).Release()
}
