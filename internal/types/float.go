package types

import (
	"math"
	"strconv"

	"github.com/riffleml/riffle/internal/fingerprint"
)

var _ Value = NewFloat32Value(0)

type Float32Value float32

// NewFloat32Value returns a FLOAT32 value.
func NewFloat32Value(x float32) Float32Value {
	return Float32Value(x)
}

func (v Float32Value) V() any {
	return float32(v)
}

func (v Float32Value) Type() Type {
	return TypeFloat32
}

func (v Float32Value) Fingerprint() fingerprint.Fingerprint {
	return fingerprint.NewHasher().
		WriteTag(byte(TypeFloat32)).
		WriteUint64(uint64(math.Float32bits(float32(v)))).
		Done()
}

func (v Float32Value) String() string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

var _ Value = NewFloat64Value(0)

type Float64Value float64

// NewFloat64Value returns a FLOAT64 value.
func NewFloat64Value(x float64) Float64Value {
	return Float64Value(x)
}

func (v Float64Value) V() any {
	return float64(v)
}

func (v Float64Value) Type() Type {
	return TypeFloat64
}

func (v Float64Value) Fingerprint() fingerprint.Fingerprint {
	return fingerprint.NewHasher().
		WriteTag(byte(TypeFloat64)).
		WriteUint64(math.Float64bits(float64(v))).
		Done()
}

func (v Float64Value) String() string {
	return strconv.FormatFloat(float64(v), 'g', -1, 64)
}
