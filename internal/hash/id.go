package hash

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Checksum returns the low 32 bits of the xxHash64 of data.
func Checksum(data []byte) uint32 {
	return uint32(xxhash.Sum64(data)) //nolint:gosec
}

// Fingerprint accumulates a stable xxHash64 over a sequence of layout fields.
//
// Strings are length-prefixed so that ("ab", "c") and ("a", "bc") hash differently.
type Fingerprint struct {
	digest  *xxhash.Digest
	scratch [8]byte
}

// NewFingerprint returns an empty fingerprint.
func NewFingerprint() *Fingerprint {
	return &Fingerprint{digest: xxhash.New()}
}

// WriteUint64 mixes v into the fingerprint.
func (f *Fingerprint) WriteUint64(v uint64) {
	binary.LittleEndian.PutUint64(f.scratch[:], v)
	_, _ = f.digest.Write(f.scratch[:])
}

// WriteString mixes a length-prefixed s into the fingerprint.
func (f *Fingerprint) WriteString(s string) {
	f.WriteUint64(uint64(len(s)))
	_, _ = f.digest.WriteString(s)
}

// Sum64 returns the current fingerprint value.
func (f *Fingerprint) Sum64() uint64 {
	return f.digest.Sum64()
}
