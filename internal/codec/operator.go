package codec

import (
	"github.com/riffleml/riffle/internal/encoding"
	"github.com/riffleml/riffle/internal/expr"
	"github.com/riffleml/riffle/internal/serialize"
	"github.com/riffleml/riffle/internal/types"
)

var _ Codec = OperatorCodec{}

// OperatorCodec handles EXPR_OPERATOR values. Operators are serialized by
// name and resolved against the operator registry on decode, so both sides
// must agree on the registered operators.
type OperatorCodec struct {
	Operators *expr.Registry
}

func (OperatorCodec) Name() string {
	return "riffle.operator"
}

func (OperatorCodec) CanEncode(v types.Value) bool {
	return v.Type() == types.TypeExprOperator
}

func (OperatorCodec) Encode(v types.Value, _ *serialize.Encoder) (serialize.ValuePayload, error) {
	op, _ := expr.AsOperator(v)
	data := append([]byte{encoding.OperatorValue}, op.Name()...)
	return serialize.ValuePayload{Data: data}, nil
}

func (c OperatorCodec) Decode(payload []byte, _ []types.Value, _ []*expr.Node) (types.Value, error) {
	if len(payload) < 1 || payload[0] != encoding.OperatorValue {
		return nil, serialize.ErrNoExtension
	}

	op, err := c.Operators.Lookup(string(payload[1:]))
	if err != nil {
		return nil, err
	}

	return op, nil
}
