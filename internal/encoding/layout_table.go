// Package encoding implements the binary layout table stored in snapshots.
//
// A layout table lists the attributes of a schema in declaration order:
//
//	[NameLen: uint8][Name: UTF-8][Components: uint8][Type: uint8] ...
//
// The entry count is stored by the caller, so the table itself has no count prefix.
// Offsets are not stored; they are re-derived from the entries.
package encoding

import (
	"fmt"

	"github.com/arloliu/packbuf/errs"
	"github.com/arloliu/packbuf/format"
)

const (
	// MaxEntryNameLength is the longest name a uint8 length prefix can describe.
	MaxEntryNameLength = 255
	// MaxEntryComponents is the largest component count a uint8 can describe.
	MaxEntryComponents = 255
)

// LayoutEntry is one attribute of a layout table.
type LayoutEntry struct {
	Name       string
	Components int
	Type       format.ScalarType
}

// LayoutTableSize returns the encoded size of entries in bytes.
func LayoutTableSize(entries []LayoutEntry) int {
	size := 0
	for _, e := range entries {
		size += 3 + len(e.Name)
	}

	return size
}

// AppendLayoutTable appends the encoded entries to dst and returns the extended slice.
//
// It fails with errs.ErrInvalidSchema when a name or component count does not fit its
// uint8 field.
func AppendLayoutTable(dst []byte, entries []LayoutEntry) ([]byte, error) {
	for i, e := range entries {
		if len(e.Name) == 0 || len(e.Name) > MaxEntryNameLength {
			return nil, fmt.Errorf("%w: entry %d name length %d outside [1, %d]",
				errs.ErrInvalidSchema, i, len(e.Name), MaxEntryNameLength)
		}
		if e.Components < 1 || e.Components > MaxEntryComponents {
			return nil, fmt.Errorf("%w: entry %q component count %d outside [1, %d]",
				errs.ErrInvalidSchema, e.Name, e.Components, MaxEntryComponents)
		}
	}

	for _, e := range entries {
		dst = append(dst, uint8(len(e.Name))) //nolint:gosec
		dst = append(dst, e.Name...)
		dst = append(dst, uint8(e.Components), byte(e.Type)) //nolint:gosec
	}

	return dst, nil
}

// DecodeLayoutTable decodes count entries from the start of data.
//
// Returns the entries and the number of bytes consumed. Truncated data fails with
// errs.ErrInvalidPayload. Scalar types are not validated here.
func DecodeLayoutTable(data []byte, count int) ([]LayoutEntry, int, error) {
	entries := make([]LayoutEntry, count)
	offset := 0

	for i := range count {
		if len(data) < offset+1 {
			return nil, 0, fmt.Errorf("%w: cannot read name length of layout entry %d (offset %d, have %d)",
				errs.ErrInvalidPayload, i, offset, len(data))
		}
		nameLen := int(data[offset])
		offset++

		if len(data) < offset+nameLen+2 {
			return nil, 0, fmt.Errorf("%w: layout entry %d needs %d bytes at offset %d, have %d",
				errs.ErrInvalidPayload, i, nameLen+2, offset, len(data))
		}

		entries[i] = LayoutEntry{
			Name:       string(data[offset : offset+nameLen]),
			Components: int(data[offset+nameLen]),
			Type:       format.ScalarType(data[offset+nameLen+1]),
		}
		offset += nameLen + 2
	}

	return entries, offset, nil
}
