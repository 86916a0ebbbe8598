package codec

import (
	"github.com/cockroachdb/errors"
	"github.com/riffleml/riffle/internal/encoding"
	"github.com/riffleml/riffle/internal/expr"
	"github.com/riffleml/riffle/internal/serialize"
	"github.com/riffleml/riffle/internal/types"
)

var _ Codec = QuoteCodec{}

// QuoteCodec handles EXPR_QUOTE values. The wrapped expression is
// serialized as regular node steps and referenced through the VALUE step's
// single expression input.
type QuoteCodec struct{}

func (QuoteCodec) Name() string {
	return "riffle.quote"
}

func (QuoteCodec) CanEncode(v types.Value) bool {
	return v.Type() == types.TypeExprQuote
}

func (QuoteCodec) Encode(v types.Value, e *serialize.Encoder) (serialize.ValuePayload, error) {
	q := v.(*expr.QuotedExpr)

	idx, err := e.EncodeExpr(q.Node())
	if err != nil {
		return serialize.ValuePayload{}, err
	}

	return serialize.ValuePayload{
		Data:       []byte{encoding.QuoteValue},
		ExprInputs: []int64{idx},
	}, nil
}

func (QuoteCodec) Decode(payload []byte, _ []types.Value, exprs []*expr.Node) (types.Value, error) {
	if len(payload) != 1 || payload[0] != encoding.QuoteValue {
		return nil, serialize.ErrNoExtension
	}
	if len(exprs) != 1 {
		return nil, errors.Newf("quote codec expects exactly one expression input, got %d", len(exprs))
	}

	return expr.NewQuotedExpr(exprs[0]), nil
}
