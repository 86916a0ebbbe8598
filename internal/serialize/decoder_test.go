package serialize_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/riffleml/riffle/internal/codec"
	"github.com/riffleml/riffle/internal/encoding"
	"github.com/riffleml/riffle/internal/expr"
	"github.com/riffleml/riffle/internal/serialize"
	"github.com/riffleml/riffle/internal/types"
	"github.com/stretchr/testify/require"
)

func defaultLookup(t testing.TB) serialize.CodecLookupFn {
	t.Helper()
	return codec.DefaultRegistry(expr.DefaultRegistry()).Lookup
}

func codecIndex(i int64) *int64 {
	return &i
}

func float32Step(x float32, ci int64) serialize.Step {
	return serialize.Step{
		Kind:       serialize.StepValue,
		Payload:    encoding.EncodeFloat32(nil, x),
		CodecIndex: codecIndex(ci),
	}
}

func TestDecodeVersionGate(t *testing.T) {
	_, err := serialize.Decode(&serialize.Container{}, defaultLookup(t), serialize.DefaultOptions())
	require.ErrorIs(t, err, serialize.ErrInvalidArgument)
	require.EqualError(t, err, "expected container version 1, got 0")

	_, err = serialize.Decode(&serialize.Container{Version: 2}, defaultLookup(t), serialize.DefaultOptions())
	require.EqualError(t, err, "expected container version 1, got 2")
}

func TestDecodeStepSequencing(t *testing.T) {
	d := serialize.NewDecoder(defaultLookup(t), serialize.DefaultOptions())

	err := d.OnStep(1, serialize.LeafNodeStep("x"))
	require.ErrorIs(t, err, serialize.ErrInvalidArgument)
	require.ErrorContains(t, err, "encountered unexpected decoding_step_index=1, indicating missing step 0")
	require.ErrorContains(t, err, "decoding_step.type=LEAF_NODE")
}

func TestDecoderUnusableAfterError(t *testing.T) {
	d := serialize.NewDecoder(defaultLookup(t), serialize.DefaultOptions())

	require.Error(t, d.OnStep(3, serialize.LeafNodeStep("x")))

	err := d.OnStep(0, serialize.LeafNodeStep("x"))
	require.ErrorIs(t, err, serialize.ErrFailedPrecondition)

	_, err = d.Finish()
	require.ErrorIs(t, err, serialize.ErrFailedPrecondition)
}

func TestDecodeUnknownCodec(t *testing.T) {
	c := &serialize.Container{
		Version: serialize.ContainerVersion,
		Steps:   []serialize.Step{serialize.CodecStep("nope")},
	}

	_, err := serialize.Decode(c, defaultLookup(t), serialize.DefaultOptions())
	require.ErrorIs(t, err, serialize.ErrInvalidArgument)
	require.EqualError(t, err, `unknown codec: "nope"; decoding_step.type=CODEC; while handling decoding_steps[0]`)
}

func TestDecodeMissingCodecName(t *testing.T) {
	c := &serialize.Container{
		Version: serialize.ContainerVersion,
		Steps:   []serialize.Step{{Kind: serialize.StepCodec}},
	}

	_, err := serialize.Decode(c, defaultLookup(t), serialize.DefaultOptions())
	require.ErrorContains(t, err, "missing codec name")
}

func TestDecodeForwardReference(t *testing.T) {
	c := &serialize.Container{
		Version: serialize.ContainerVersion,
		Steps:   []serialize.Step{serialize.LiteralNodeStep(5)},
	}

	_, err := serialize.Decode(c, defaultLookup(t), serialize.DefaultOptions())
	require.ErrorIs(t, err, serialize.ErrInvalidArgument)
	require.ErrorContains(t, err, "value index is out of range: 5")
	require.ErrorContains(t, err, "decoding_step.type=LITERAL_NODE")
	require.ErrorContains(t, err, "while handling decoding_steps[0]")
}

func TestDecodeSelfReference(t *testing.T) {
	c := &serialize.Container{
		Version: serialize.ContainerVersion,
		Steps:   []serialize.Step{serialize.LiteralNodeStep(0)},
	}

	_, err := serialize.Decode(c, defaultLookup(t), serialize.DefaultOptions())
	require.ErrorIs(t, err, serialize.ErrInvalidArgument)
	require.ErrorContains(t, err, "no value found in decoding_step_results[0]")
}

func TestDecodeCodecIndexOutOfRange(t *testing.T) {
	c := &serialize.Container{
		Version: serialize.ContainerVersion,
		Steps:   []serialize.Step{float32Step(1.0, 3)},
	}

	_, err := serialize.Decode(c, defaultLookup(t), serialize.DefaultOptions())
	require.ErrorIs(t, err, serialize.ErrInvalidArgument)
	require.ErrorContains(t, err, "codec index is out of range: 3")
	require.ErrorContains(t, err, "decoding_step.type=VALUE")
}

func TestDecodeNoExtension(t *testing.T) {
	// the scalars codec does not recognize a tuple-tagged payload
	c := &serialize.Container{
		Version: serialize.ContainerVersion,
		Steps: []serialize.Step{
			serialize.CodecStep("riffle.scalars"),
			{
				Kind:       serialize.StepValue,
				Payload:    []byte{encoding.TupleValue},
				CodecIndex: codecIndex(0),
			},
		},
	}

	_, err := serialize.Decode(c, defaultLookup(t), serialize.DefaultOptions())
	require.ErrorIs(t, err, serialize.ErrNotFound)
	require.ErrorContains(t, err, "no extension found; codecs[0]=riffle.scalars")
	require.ErrorContains(t, err, "while handling decoding_steps[1]")
}

func TestDecodeCodecFallbackOrder(t *testing.T) {
	// three codecs, only the third recognizes the payload: probing stops
	// there, in declaration order
	var calls []string
	mkCodec := func(name string, match bool) serialize.CodecFn {
		return func(payload []byte, _ []types.Value, _ []*expr.Node) (types.Value, error) {
			calls = append(calls, name)
			if !match {
				return nil, serialize.ErrNoExtension
			}
			return types.NewTextValue(name), nil
		}
	}
	fns := map[string]serialize.CodecFn{
		"a": mkCodec("a", false),
		"b": mkCodec("b", false),
		"c": mkCodec("c", true),
	}
	lookup := func(name string) (serialize.CodecFn, error) {
		fn, ok := fns[name]
		if !ok {
			return nil, errors.Newf("unknown codec: %q", name)
		}
		return fn, nil
	}

	c := &serialize.Container{
		Version: serialize.ContainerVersion,
		Steps: []serialize.Step{
			serialize.CodecStep("a"),
			serialize.CodecStep("b"),
			serialize.CodecStep("c"),
			{Kind: serialize.StepValue, Payload: []byte{0xFF}},
		},
		OutputValueIndexes: []int64{3},
	}

	res, err := serialize.Decode(c, lookup, serialize.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, calls)
	require.Len(t, res.Values, 1)
	require.Equal(t, "c", types.AsString(res.Values[0]))
}

func TestDecodeUnableToDetectCodec(t *testing.T) {
	c := &serialize.Container{
		Version: serialize.ContainerVersion,
		Steps: []serialize.Step{
			serialize.CodecStep("riffle.scalars"),
			{Kind: serialize.StepValue, Payload: []byte{0xFF}},
		},
	}

	_, err := serialize.Decode(c, defaultLookup(t), serialize.DefaultOptions())
	require.ErrorIs(t, err, serialize.ErrInvalidArgument)
	require.ErrorContains(t, err, "unable to detect codec")
}

func TestDecodeOperatorTypeMismatch(t *testing.T) {
	// an OPERATOR_NODE step whose operator value decoded to a FLOAT32
	c := &serialize.Container{
		Version: serialize.ContainerVersion,
		Steps: []serialize.Step{
			serialize.CodecStep("riffle.scalars"),
			float32Step(1.0, 0),
			serialize.OperatorNodeStep(1),
		},
	}

	_, err := serialize.Decode(c, defaultLookup(t), serialize.DefaultOptions())
	require.ErrorIs(t, err, serialize.ErrInvalidArgument)
	require.ErrorContains(t, err, "expected a value of EXPR_OPERATOR type in decoding_step_results[1], got FLOAT32")
	require.ErrorContains(t, err, "decoding_step.type=OPERATOR_NODE")
	require.ErrorContains(t, err, "while handling decoding_steps[2]")
}

func TestDecodeOutputValueIndexOutOfRange(t *testing.T) {
	c := &serialize.Container{
		Version:            serialize.ContainerVersion,
		Steps:              []serialize.Step{serialize.LeafNodeStep("x")},
		OutputValueIndexes: []int64{-1},
	}

	_, err := serialize.Decode(c, defaultLookup(t), serialize.DefaultOptions())
	require.ErrorIs(t, err, serialize.ErrInvalidArgument)
	require.EqualError(t, err, "value index is out of range: -1; while loading output values")
}

func TestDecodeOutputKindMismatch(t *testing.T) {
	c := &serialize.Container{
		Version:           serialize.ContainerVersion,
		Steps:             []serialize.Step{serialize.CodecStep("riffle.scalars"), float32Step(1.0, 0)},
		OutputExprIndexes: []int64{1},
	}

	_, err := serialize.Decode(c, defaultLookup(t), serialize.DefaultOptions())
	require.ErrorContains(t, err, "expected an expression in decoding_step_results[1], got a value")
	require.ErrorContains(t, err, "while loading output expressions")
}

func TestDecodeMissingKey(t *testing.T) {
	for _, step := range []serialize.Step{
		serialize.LeafNodeStep(""),
		serialize.PlaceholderNodeStep(""),
	} {
		c := &serialize.Container{
			Version: serialize.ContainerVersion,
			Steps:   []serialize.Step{step},
		}

		_, err := serialize.Decode(c, defaultLookup(t), serialize.DefaultOptions())
		require.ErrorIs(t, err, serialize.ErrInvalidArgument)
		require.ErrorContains(t, err, "missing key")
	}
}

func TestDecodeUnknownStepKind(t *testing.T) {
	c := &serialize.Container{
		Version: serialize.ContainerVersion,
		Steps:   []serialize.Step{{Kind: serialize.StepKind(42)}},
	}

	_, err := serialize.Decode(c, defaultLookup(t), serialize.DefaultOptions())
	require.ErrorIs(t, err, serialize.ErrInvalidArgument)
	require.ErrorContains(t, err, "missing or unsupported decoding_step.type=42")
	require.ErrorContains(t, err, "decoding_step.type=UNKNOWN(42)")
}

func TestDecodeOperatorArity(t *testing.T) {
	opStep := func() []serialize.Step {
		return []serialize.Step{
			serialize.CodecStep("riffle.operator"),
			{
				Kind:       serialize.StepValue,
				Payload:    append([]byte{encoding.OperatorValue}, "math.add"...),
				CodecIndex: codecIndex(0),
			},
			serialize.LeafNodeStep("x"),
			serialize.OperatorNodeStep(1, 2), // math.add with a single dependency
		}
	}

	// safe mode rejects the wrong dependency count
	c := &serialize.Container{Version: serialize.ContainerVersion, Steps: opStep()}
	_, err := serialize.Decode(c, defaultLookup(t), serialize.DefaultOptions())
	require.ErrorContains(t, err,
		"incorrect number of dependencies passed to an operator node: expected 2 but got 1; while calling math.add with args {L.x}")
	require.ErrorContains(t, err, "decoding_step.type=OPERATOR_NODE")

	// unsafe mode assembles the node as-is
	c = &serialize.Container{
		Version:           serialize.ContainerVersion,
		Steps:             opStep(),
		OutputExprIndexes: []int64{3},
	}
	res, err := serialize.Decode(c, defaultLookup(t), serialize.Options{})
	require.NoError(t, err)
	require.Len(t, res.Exprs, 1)
	require.Equal(t, "math.add(L.x)", res.Exprs[0].String())
	require.Equal(t, types.TypeInvalid, res.Exprs[0].Attr().Type)
}

func TestDecodeValueInputKindMismatch(t *testing.T) {
	// a VALUE step whose value input names an expression
	c := &serialize.Container{
		Version: serialize.ContainerVersion,
		Steps: []serialize.Step{
			serialize.CodecStep("riffle.tuple"),
			serialize.LeafNodeStep("x"),
			{
				Kind:        serialize.StepValue,
				Payload:     []byte{encoding.TupleValue},
				CodecIndex:  codecIndex(0),
				ValueInputs: []int64{1},
			},
		},
	}

	_, err := serialize.Decode(c, defaultLookup(t), serialize.DefaultOptions())
	require.ErrorContains(t, err, "expected a value in decoding_step_results[1], got an expression")
	require.ErrorContains(t, err, "decoding_step.type=VALUE")
}

func TestIncrementalMatchesBulk(t *testing.T) {
	// the incremental front-end with output marker steps yields the same
	// results as the bulk front-end with trailing output index arrays
	reg := codec.DefaultRegistry(expr.DefaultRegistry())
	enc := serialize.NewEncoder(reg.ValueEncoder())

	add := expr.NewOperator("math.add", "x", "y")
	root, err := expr.MakeOperatorNode(add, []*expr.Node{
		expr.NewLeaf("x"),
		expr.NewLiteral(types.NewFloat32Value(2.0)),
	})
	require.NoError(t, err)

	vals := []types.Value{types.NewTupleValue(types.NewInt32Value(7), types.NewTextValue("t"))}
	c, err := enc.Encode(vals, []*expr.Node{root})
	require.NoError(t, err)

	bulk, err := serialize.Decode(c, reg.Lookup, serialize.DefaultOptions())
	require.NoError(t, err)

	d := serialize.NewDecoder(reg.Lookup, serialize.DefaultOptions())
	next := int64(0)
	for i := range c.Steps {
		require.NoError(t, d.OnStep(int64(i), c.Steps[i]))
		next++
	}
	for _, idx := range c.OutputValueIndexes {
		require.NoError(t, d.OnStep(next, serialize.OutputValueIndexStep(idx)))
		next++
	}
	for _, idx := range c.OutputExprIndexes {
		require.NoError(t, d.OnStep(next, serialize.OutputExprIndexStep(idx)))
		next++
	}

	incr, err := d.Finish()
	require.NoError(t, err)

	require.Len(t, incr.Values, len(bulk.Values))
	for i := range bulk.Values {
		require.True(t, types.Equal(bulk.Values[i], incr.Values[i]))
	}
	require.Len(t, incr.Exprs, len(bulk.Exprs))
	for i := range bulk.Exprs {
		require.True(t, expr.Equal(bulk.Exprs[i], incr.Exprs[i]))
	}
}
