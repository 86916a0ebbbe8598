package types

import (
	"fmt"

	"github.com/riffleml/riffle/internal/fingerprint"
)

var _ Value = NewBytesValue(nil)

type BytesValue []byte

// NewBytesValue returns a BYTES value.
func NewBytesValue(x []byte) BytesValue {
	return BytesValue(x)
}

func (v BytesValue) V() any {
	return []byte(v)
}

func (v BytesValue) Type() Type {
	return TypeBytes
}

func (v BytesValue) Fingerprint() fingerprint.Fingerprint {
	return fingerprint.NewHasher().
		WriteTag(byte(TypeBytes)).
		WriteBytes([]byte(v)).
		Done()
}

func (v BytesValue) String() string {
	return fmt.Sprintf("b%q", string(v))
}
