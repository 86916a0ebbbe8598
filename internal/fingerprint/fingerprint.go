// Package fingerprint computes 128-bit content identities for values and
// expression nodes. Two objects with the same fingerprint are treated as
// interchangeable by the serialization engine.
package fingerprint

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/zeebo/xxh3"
)

// A Fingerprint is a 128-bit content hash.
type Fingerprint [16]byte

func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:])
}

// Bytes returns the fingerprint of a raw byte slice.
func Bytes(b []byte) Fingerprint {
	return fromUint128(xxh3.Hash128(b))
}

// A Hasher accumulates tokens and produces a fingerprint over all of them.
// Variable-length tokens are length-prefixed so that token boundaries
// contribute to the hash: Write("ab"), Write("c") and Write("a"), Write("bc")
// yield different fingerprints.
type Hasher struct {
	buf []byte
}

func NewHasher() *Hasher {
	return &Hasher{}
}

func (h *Hasher) WriteBytes(p []byte) *Hasher {
	h.buf = binary.AppendUvarint(h.buf, uint64(len(p)))
	h.buf = append(h.buf, p...)
	return h
}

func (h *Hasher) WriteString(s string) *Hasher {
	h.buf = binary.AppendUvarint(h.buf, uint64(len(s)))
	h.buf = append(h.buf, s...)
	return h
}

// WriteTag appends a single discriminator byte, typically a kind tag.
func (h *Hasher) WriteTag(b byte) *Hasher {
	h.buf = append(h.buf, b)
	return h
}

func (h *Hasher) WriteUint64(n uint64) *Hasher {
	h.buf = binary.BigEndian.AppendUint64(h.buf, n)
	return h
}

func (h *Hasher) WriteFingerprint(f Fingerprint) *Hasher {
	h.buf = append(h.buf, f[:]...)
	return h
}

func (h *Hasher) Done() Fingerprint {
	return fromUint128(xxh3.Hash128(h.buf))
}

func fromUint128(u xxh3.Uint128) Fingerprint {
	var f Fingerprint
	binary.BigEndian.PutUint64(f[:8], u.Hi)
	binary.BigEndian.PutUint64(f[8:], u.Lo)
	return f
}
