package snapshot

import (
	"fmt"

	"github.com/arloliu/packbuf/errs"
	"github.com/arloliu/packbuf/internal/encoding"
	"github.com/arloliu/packbuf/internal/pool"
	"github.com/arloliu/packbuf/schema"
)

func layoutEntries(s *schema.Schema) []encoding.LayoutEntry {
	entries := make([]encoding.LayoutEntry, s.Len())
	for i := range entries {
		a := s.At(i)
		entries[i] = encoding.LayoutEntry{Name: a.Name, Components: a.Components, Type: a.Type}
	}

	return entries
}

// writeLayout appends the layout table of s to bb.
func writeLayout(bb *pool.ByteBuffer, s *schema.Schema) error {
	entries := layoutEntries(s)
	bb.Grow(encoding.LayoutTableSize(entries))

	b, err := encoding.AppendLayoutTable(bb.B, entries)
	if err != nil {
		return err
	}
	bb.B = b

	return nil
}

// readLayout decodes count layout entries from data and rebuilds the schema with
// alignment. It returns the schema and the number of bytes consumed.
func readLayout(data []byte, count int, alignment int) (*schema.Schema, int, error) {
	entries, n, err := encoding.DecodeLayoutTable(data, count)
	if err != nil {
		return nil, 0, err
	}

	decls := make([]schema.Decl, len(entries))
	for i, e := range entries {
		decls[i] = schema.Attr(e.Name, schema.Components(e.Components), schema.Type(e.Type))
	}

	s, err := schema.New(alignment, decls...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", errs.ErrLayoutMismatch, err)
	}

	return s, n, nil
}
