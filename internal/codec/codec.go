// Package codec implements the pluggable value codecs and their registry. A
// codec owns some subset of value kinds; the registry resolves codec names
// for the decoder and provides the single global encoding strategy for the
// encoder.
package codec

import (
	"github.com/cockroachdb/errors"
	"github.com/riffleml/riffle/internal/expr"
	"github.com/riffleml/riffle/internal/serialize"
	"github.com/riffleml/riffle/internal/types"
)

// A Codec is a named, stateless plugin able to (de)serialize some subset of
// value kinds.
type Codec interface {
	Name() string

	// CanEncode reports whether this codec owns values of v's kind.
	CanEncode(v types.Value) bool

	// Encode produces the payload of v's VALUE step. Nested content is
	// emitted through e and referenced from the payload's input index
	// lists.
	Encode(v types.Value, e *serialize.Encoder) (serialize.ValuePayload, error)

	// Decode rebuilds a value from a payload and its resolved inputs. It
	// returns an error wrapping serialize.ErrNoExtension when the payload
	// is not one of its kinds.
	Decode(payload []byte, values []types.Value, exprs []*expr.Node) (types.Value, error)
}

// A Registry is an ordered, immutable set of codecs. Build it once during
// process initialization and share it by reference across concurrent
// encode/decode operations.
type Registry struct {
	ordered []Codec
	byName  map[string]Codec
}

// NewRegistry returns a registry holding the given codecs, in order. The
// order matters: it is the probing order for VALUE steps with no declared
// codec.
func NewRegistry(codecs ...Codec) (*Registry, error) {
	byName := make(map[string]Codec, len(codecs))
	for _, c := range codecs {
		if _, ok := byName[c.Name()]; ok {
			return nil, errors.Newf("duplicate codec: %q", c.Name())
		}
		byName[c.Name()] = c
	}

	return &Registry{
		ordered: codecs,
		byName:  byName,
	}, nil
}

// Lookup resolves a codec name to its decode function. It satisfies
// serialize.CodecLookupFn.
func (r *Registry) Lookup(name string) (serialize.CodecFn, error) {
	c, ok := r.byName[name]
	if !ok {
		return nil, serialize.WithKind(errors.Newf("unknown codec: %q", name), serialize.ErrInvalidArgument)
	}

	return c.Decode, nil
}

// ValueEncoder returns the global value encoding strategy: dispatch to the
// first codec that owns the value's kind, declaring the codec on first use.
func (r *Registry) ValueEncoder() serialize.ValueEncoderFn {
	return func(v types.Value, e *serialize.Encoder) (serialize.ValuePayload, error) {
		for _, c := range r.ordered {
			if !c.CanEncode(v) {
				continue
			}

			idx := e.EncodeCodec(c.Name())
			payload, err := c.Encode(v, e)
			if err != nil {
				return serialize.ValuePayload{}, err
			}
			payload.CodecIndex = &idx
			return payload, nil
		}

		return serialize.ValuePayload{}, serialize.WithKind(
			errors.Newf("no codec supports values of type %s", v.Type()),
			serialize.ErrInvalidArgument)
	}
}

// DefaultRegistry returns a registry with the builtin codecs, resolving
// operators against ops.
func DefaultRegistry(ops *expr.Registry) *Registry {
	r, err := NewRegistry(
		ScalarCodec{},
		TupleCodec{},
		OperatorCodec{Operators: ops},
		QuoteCodec{},
	)
	if err != nil {
		panic(err)
	}

	return r
}
