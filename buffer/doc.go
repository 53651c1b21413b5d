// Package buffer implements the packed record buffer: a contiguous, growable byte region
// holding fixed-layout records with attribute-level addressing.
//
// # Layout
//
// A Buffer is created from a schema.Schema, which fixes the byte offset of every
// attribute inside a record and the record stride. Record i occupies bytes
// [i*stride, (i+1)*stride) of the region. Component c of attribute a in record i lives at
//
//	i*stride + a.Offset + c*a.Type.Width()
//
// # Writing
//
// Records are appended at the write frontier (index Len()) or overwritten in place:
//
//	s := schema.MustNew(schema.VertexAlignment,
//	    schema.Attr("pos", schema.Components(2), schema.Type(format.Short)),
//	)
//	buf, _ := buffer.New(s)
//	buf.Append(buffer.NewRecord(buffer.Vector("pos", 10, 20)))
//	buf.Set(0, buffer.NewRecord(buffer.Vector("pos", 11, 21)))
//	buf.SetAttribute(0, "pos", 1, 22)
//
// Values are stored wrapped to the attribute's scalar width and signedness: storing 300
// into an UnsignedByte reads back as 44. Attributes a record leaves out keep whatever
// bytes the region held; they are not zeroed.
//
// # Growth
//
// When a write needs more room the region grows geometrically (1.5x by default), rounded
// up to the size alignment, always strictly larger than before. Growth copies every
// existing byte and swaps the region and its typed views in one step.
//
// # Errors
//
// All failures are returned as errors wrapping a sentinel from package errs:
//   - errs.ErrUnknownAttribute, errs.ErrComponentCountMismatch: the record is rejected
//     before anything is written.
//   - errs.ErrIndexOutOfRange: the index is past the frontier (writes) or outside the
//     region (reads). This is a caller bug; indices are never clamped.
//   - errs.ErrBufferReleased: the buffer was released.
//
// # Concurrency
//
// A Buffer has a single owner and is not safe for concurrent use. Wrap it in a
// Synchronized to share it between goroutines.
package buffer
