package types

import (
	"strconv"

	"github.com/riffleml/riffle/internal/fingerprint"
)

var _ Value = NewTextValue("")

type TextValue string

// NewTextValue returns a TEXT value.
func NewTextValue(x string) TextValue {
	return TextValue(x)
}

func (v TextValue) V() any {
	return string(v)
}

func (v TextValue) Type() Type {
	return TypeText
}

func (v TextValue) Fingerprint() fingerprint.Fingerprint {
	return fingerprint.NewHasher().
		WriteTag(byte(TypeText)).
		WriteString(string(v)).
		Done()
}

func (v TextValue) String() string {
	return strconv.Quote(string(v))
}
