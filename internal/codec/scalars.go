package codec

import (
	"github.com/cockroachdb/errors"
	"github.com/riffleml/riffle/internal/encoding"
	"github.com/riffleml/riffle/internal/expr"
	"github.com/riffleml/riffle/internal/serialize"
	"github.com/riffleml/riffle/internal/types"
)

var _ Codec = ScalarCodec{}

// ScalarCodec handles every scalar kind. Payloads are self-describing: one
// tag byte followed by the raw content.
type ScalarCodec struct{}

func (ScalarCodec) Name() string {
	return "riffle.scalars"
}

func (ScalarCodec) CanEncode(v types.Value) bool {
	return v.Type().IsScalar()
}

func (ScalarCodec) Encode(v types.Value, e *serialize.Encoder) (serialize.ValuePayload, error) {
	var data []byte
	switch v.Type() {
	case types.TypeBoolean:
		data = encoding.EncodeBoolean(nil, types.AsBool(v))
	case types.TypeInt32:
		data = encoding.EncodeInt32(nil, types.AsInt32(v))
	case types.TypeInt64:
		data = encoding.EncodeInt64(nil, types.AsInt64(v))
	case types.TypeFloat32:
		data = encoding.EncodeFloat32(nil, types.AsFloat32(v))
	case types.TypeFloat64:
		data = encoding.EncodeFloat64(nil, types.AsFloat64(v))
	case types.TypeText:
		data = encoding.EncodeText(nil, types.AsString(v))
	case types.TypeBytes:
		data = encoding.EncodeBytes(nil, types.AsByteSlice(v))
	default:
		return serialize.ValuePayload{}, errors.Newf("scalar codec cannot encode values of type %s", v.Type())
	}

	return serialize.ValuePayload{Data: data}, nil
}

func (ScalarCodec) Decode(payload []byte, _ []types.Value, _ []*expr.Node) (types.Value, error) {
	if len(payload) == 0 {
		return nil, serialize.ErrNoExtension
	}

	switch payload[0] {
	case encoding.FalseValue, encoding.TrueValue:
		x, err := encoding.DecodeBoolean(payload)
		if err != nil {
			return nil, err
		}
		return types.NewBooleanValue(x), nil
	case encoding.Int32Value:
		x, err := encoding.DecodeInt32(payload)
		if err != nil {
			return nil, err
		}
		return types.NewInt32Value(x), nil
	case encoding.Int64Value:
		x, err := encoding.DecodeInt64(payload)
		if err != nil {
			return nil, err
		}
		return types.NewInt64Value(x), nil
	case encoding.Float32Value:
		x, err := encoding.DecodeFloat32(payload)
		if err != nil {
			return nil, err
		}
		return types.NewFloat32Value(x), nil
	case encoding.Float64Value:
		x, err := encoding.DecodeFloat64(payload)
		if err != nil {
			return nil, err
		}
		return types.NewFloat64Value(x), nil
	case encoding.TextValue:
		x, err := encoding.DecodeText(payload)
		if err != nil {
			return nil, err
		}
		return types.NewTextValue(x), nil
	case encoding.BytesValue:
		x, err := encoding.DecodeBytes(payload)
		if err != nil {
			return nil, err
		}
		return types.NewBytesValue(x), nil
	}

	return nil, serialize.ErrNoExtension
}
