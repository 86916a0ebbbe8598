package serialize

import (
	"github.com/cockroachdb/errors"
	"github.com/fxamacker/cbor/v2"
)

// The container wire format is CBOR with deterministic encoding (RFC 8949
// §4.2): the same container always marshals to identical bytes.
var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("serialize: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("serialize: CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes the container to its wire representation.
func Marshal(c *Container) ([]byte, error) {
	b, err := encMode.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal container")
	}

	return b, nil
}

// Unmarshal decodes a container from its wire representation. It does not
// check the container version: Decode does, so that hand-built and
// unmarshaled containers go through the same gate.
func Unmarshal(data []byte) (*Container, error) {
	var c Container
	if err := decMode.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal container")
	}

	return &c, nil
}
