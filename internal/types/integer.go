package types

import (
	"strconv"

	"github.com/riffleml/riffle/internal/fingerprint"
)

var _ Value = NewInt32Value(0)

type Int32Value int32

// NewInt32Value returns an INT32 value.
func NewInt32Value(x int32) Int32Value {
	return Int32Value(x)
}

func (v Int32Value) V() any {
	return int32(v)
}

func (v Int32Value) Type() Type {
	return TypeInt32
}

func (v Int32Value) Fingerprint() fingerprint.Fingerprint {
	return fingerprint.NewHasher().
		WriteTag(byte(TypeInt32)).
		WriteUint64(uint64(uint32(v))).
		Done()
}

func (v Int32Value) String() string {
	return strconv.FormatInt(int64(v), 10)
}

var _ Value = NewInt64Value(0)

type Int64Value int64

// NewInt64Value returns an INT64 value.
func NewInt64Value(x int64) Int64Value {
	return Int64Value(x)
}

func (v Int64Value) V() any {
	return int64(v)
}

func (v Int64Value) Type() Type {
	return TypeInt64
}

func (v Int64Value) Fingerprint() fingerprint.Fingerprint {
	return fingerprint.NewHasher().
		WriteTag(byte(TypeInt64)).
		WriteUint64(uint64(v)).
		Done()
}

func (v Int64Value) String() string {
	return strconv.FormatInt(int64(v), 10)
}
