// Package encoding implements the tagged binary format used for codec
// payloads. Every encoded payload starts with a tag byte followed by a
// fixed-width or length-prefixed body.
package encoding

import (
	"encoding/binary"
	"math"

	"github.com/cockroachdb/errors"
)

var errShortPayload = errors.New("payload is too short")

func EncodeBoolean(dst []byte, x bool) []byte {
	if x {
		return append(dst, TrueValue)
	}

	return append(dst, FalseValue)
}

func DecodeBoolean(b []byte) (bool, error) {
	if len(b) < 1 {
		return false, errShortPayload
	}

	switch b[0] {
	case TrueValue:
		return true, nil
	case FalseValue:
		return false, nil
	}

	return false, errors.Newf("expected boolean tag, got 0x%x", b[0])
}

func EncodeInt32(dst []byte, n int32) []byte {
	return write4(dst, Int32Value, uint32(n))
}

func DecodeInt32(b []byte) (int32, error) {
	if len(b) < 5 {
		return 0, errShortPayload
	}

	return int32(read4(b[1:])), nil
}

func EncodeInt64(dst []byte, n int64) []byte {
	return write8(dst, Int64Value, uint64(n))
}

func DecodeInt64(b []byte) (int64, error) {
	if len(b) < 9 {
		return 0, errShortPayload
	}

	return int64(read8(b[1:])), nil
}

func EncodeFloat32(dst []byte, x float32) []byte {
	return write4(dst, Float32Value, math.Float32bits(x))
}

func DecodeFloat32(b []byte) (float32, error) {
	if len(b) < 5 {
		return 0, errShortPayload
	}

	return math.Float32frombits(read4(b[1:])), nil
}

func EncodeFloat64(dst []byte, x float64) []byte {
	return write8(dst, Float64Value, math.Float64bits(x))
}

func DecodeFloat64(b []byte) (float64, error) {
	if len(b) < 9 {
		return 0, errShortPayload
	}

	return math.Float64frombits(read8(b[1:])), nil
}

func EncodeText(dst []byte, s string) []byte {
	dst = append(dst, TextValue)
	dst = binary.AppendUvarint(dst, uint64(len(s)))
	return append(dst, s...)
}

func DecodeText(b []byte) (string, error) {
	d, err := decodeBlob(b)
	if err != nil {
		return "", err
	}

	return string(d), nil
}

func EncodeBytes(dst []byte, p []byte) []byte {
	dst = append(dst, BytesValue)
	dst = binary.AppendUvarint(dst, uint64(len(p)))
	return append(dst, p...)
}

func DecodeBytes(b []byte) ([]byte, error) {
	d, err := decodeBlob(b)
	if err != nil {
		return nil, err
	}

	out := make([]byte, len(d))
	copy(out, d)
	return out, nil
}

func decodeBlob(b []byte) ([]byte, error) {
	if len(b) < 1 {
		return nil, errShortPayload
	}

	l, n := binary.Uvarint(b[1:])
	if n <= 0 {
		return nil, errors.New("malformed payload length")
	}

	body := b[1+n:]
	if uint64(len(body)) < l {
		return nil, errShortPayload
	}

	return body[:l], nil
}
