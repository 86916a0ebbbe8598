package types

import (
	"strings"

	"github.com/riffleml/riffle/internal/fingerprint"
)

var _ Value = NewTupleValue()

// A TupleValue is an ordered, immutable list of values. It is the one
// composite kind: serializing a tuple serializes every element first.
type TupleValue struct {
	elems []Value
	fp    fingerprint.Fingerprint
}

// NewTupleValue returns a TUPLE value holding the given elements.
func NewTupleValue(elems ...Value) *TupleValue {
	h := fingerprint.NewHasher().WriteTag(byte(TypeTuple))
	for _, e := range elems {
		h.WriteFingerprint(e.Fingerprint())
	}

	return &TupleValue{
		elems: elems,
		fp:    h.Done(),
	}
}

func (v *TupleValue) V() any {
	return v.elems
}

func (v *TupleValue) Type() Type {
	return TypeTuple
}

func (v *TupleValue) Fingerprint() fingerprint.Fingerprint {
	return v.fp
}

// Elements returns the tuple's elements. The returned slice must not be
// modified.
func (v *TupleValue) Elements() []Value {
	return v.elems
}

func (v *TupleValue) Len() int {
	return len(v.elems)
}

func (v *TupleValue) String() string {
	var b strings.Builder
	b.WriteString("(")
	for i, e := range v.elems {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.String())
	}
	b.WriteString(")")
	return b.String()
}
