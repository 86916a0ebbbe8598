package codec

import (
	"github.com/cockroachdb/errors"
	"github.com/riffleml/riffle/internal/encoding"
	"github.com/riffleml/riffle/internal/expr"
	"github.com/riffleml/riffle/internal/serialize"
	"github.com/riffleml/riffle/internal/types"
)

var _ Codec = TupleCodec{}

// TupleCodec handles TUPLE values. Elements are serialized as separate
// steps and referenced through the VALUE step's value inputs; the payload
// itself is just the tuple tag.
type TupleCodec struct{}

func (TupleCodec) Name() string {
	return "riffle.tuple"
}

func (TupleCodec) CanEncode(v types.Value) bool {
	return v.Type() == types.TypeTuple
}

func (TupleCodec) Encode(v types.Value, e *serialize.Encoder) (serialize.ValuePayload, error) {
	elems := types.AsTuple(v)

	inputs := make([]int64, len(elems))
	for i, el := range elems {
		idx, err := e.EncodeValue(el)
		if err != nil {
			return serialize.ValuePayload{}, err
		}
		inputs[i] = idx
	}

	return serialize.ValuePayload{
		Data:        []byte{encoding.TupleValue},
		ValueInputs: inputs,
	}, nil
}

func (TupleCodec) Decode(payload []byte, values []types.Value, exprs []*expr.Node) (types.Value, error) {
	if len(payload) != 1 || payload[0] != encoding.TupleValue {
		return nil, serialize.ErrNoExtension
	}
	if len(exprs) > 0 {
		return nil, errors.Newf("tuple codec expects no expression inputs, got %d", len(exprs))
	}

	return types.NewTupleValue(values...), nil
}
