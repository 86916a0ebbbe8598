// Package types implements the typed, type-erased value container moved
// through the serialization engine. Every value knows its type, its raw
// content and its content fingerprint.
package types

import (
	"fmt"

	"github.com/riffleml/riffle/internal/fingerprint"
)

// Type represents a value type supported by the engine.
type Type uint8

// List of supported types.
const (
	// TypeInvalid denotes the absence of type.
	TypeInvalid Type = iota
	TypeBoolean
	TypeInt32
	TypeInt64
	TypeFloat32
	TypeFloat64
	TypeText
	TypeBytes
	TypeTuple
	TypeExprOperator
	TypeExprQuote
)

// String returns the wire name of the type. These names appear verbatim in
// decoding error messages.
func (t Type) String() string {
	switch t {
	case TypeBoolean:
		return "BOOLEAN"
	case TypeInt32:
		return "INT32"
	case TypeInt64:
		return "INT64"
	case TypeFloat32:
		return "FLOAT32"
	case TypeFloat64:
		return "FLOAT64"
	case TypeText:
		return "TEXT"
	case TypeBytes:
		return "BYTES"
	case TypeTuple:
		return "TUPLE"
	case TypeExprOperator:
		return "EXPR_OPERATOR"
	case TypeExprQuote:
		return "EXPR_QUOTE"
	}

	return fmt.Sprintf("INVALID(%d)", uint8(t))
}

// IsScalar reports whether values of this type are self-contained, with no
// references to other values or expressions.
func (t Type) IsScalar() bool {
	switch t {
	case TypeBoolean, TypeInt32, TypeInt64, TypeFloat32, TypeFloat64, TypeText, TypeBytes:
		return true
	}

	return false
}

// Value is a typed, immutable unit of data.
type Value interface {
	Type() Type
	V() any
	Fingerprint() fingerprint.Fingerprint
	String() string
}

// Equal reports whether two values have the same content, by fingerprint.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == b
	}

	return a.Fingerprint() == b.Fingerprint()
}
