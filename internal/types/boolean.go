package types

import (
	"strconv"

	"github.com/riffleml/riffle/internal/fingerprint"
)

var _ Value = NewBooleanValue(false)

type BooleanValue bool

// NewBooleanValue returns a BOOLEAN value.
func NewBooleanValue(x bool) BooleanValue {
	return BooleanValue(x)
}

func (v BooleanValue) V() any {
	return bool(v)
}

func (v BooleanValue) Type() Type {
	return TypeBoolean
}

func (v BooleanValue) Fingerprint() fingerprint.Fingerprint {
	h := fingerprint.NewHasher().WriteTag(byte(TypeBoolean))
	if v {
		h.WriteTag(1)
	} else {
		h.WriteTag(0)
	}
	return h.Done()
}

func (v BooleanValue) String() string {
	return strconv.FormatBool(bool(v))
}
