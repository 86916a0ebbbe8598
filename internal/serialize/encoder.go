package serialize

import (
	"github.com/riffleml/riffle/internal/expr"
	"github.com/riffleml/riffle/internal/fingerprint"
	"github.com/riffleml/riffle/internal/types"
)

// A ValuePayload is the content of the final VALUE step of one value:
// opaque data plus references to the already-emitted steps it depends on.
type ValuePayload struct {
	Data        []byte
	CodecIndex  *int64
	ValueInputs []int64
	ExprInputs  []int64
}

// A ValueEncoderFn produces the payload of the last assembly step of v. The
// callback may recurse into the encoder (EncodeCodec, EncodeValue,
// EncodeExpr) for nested content; those calls are folded into earlier
// steps.
type ValueEncoderFn func(v types.Value, e *Encoder) (ValuePayload, error)

// An Encoder flattens values and expressions into a causally ordered,
// fingerprint-deduplicated step sequence. It is a purely synchronous state
// machine: not safe for concurrent use, and must be discarded if any call
// fails.
type Encoder struct {
	encodeValue ValueEncoderFn

	steps        []Step
	codecIndexes map[string]int64
	valueIndexes map[fingerprint.Fingerprint]int64
	exprIndexes  map[fingerprint.Fingerprint]int64
}

// NewEncoder returns an encoder using encodeValue as the global value
// encoding strategy.
func NewEncoder(encodeValue ValueEncoderFn) *Encoder {
	return &Encoder{
		encodeValue:  encodeValue,
		codecIndexes: make(map[string]int64),
		valueIndexes: make(map[fingerprint.Fingerprint]int64),
		exprIndexes:  make(map[fingerprint.Fingerprint]int64),
	}
}

// Steps returns the steps emitted so far. The returned slice must not be
// modified.
func (e *Encoder) Steps() []Step {
	return e.steps
}

// EncodeCodec declares a codec and returns its slot index. Declaring the
// same name twice returns the existing slot without a new step.
func (e *Encoder) EncodeCodec(name string) int64 {
	if idx, ok := e.codecIndexes[name]; ok {
		return idx
	}

	idx := int64(len(e.codecIndexes))
	e.codecIndexes[name] = idx
	e.steps = append(e.steps, CodecStep(name))
	return idx
}

// EncodeValue emits the steps assembling v and returns the index of its
// VALUE step. Values already emitted are deduplicated by fingerprint.
func (e *Encoder) EncodeValue(v types.Value) (int64, error) {
	fp := v.Fingerprint()
	if idx, ok := e.valueIndexes[fp]; ok {
		return idx, nil
	}

	payload, err := e.encodeValue(v, e)
	if err != nil {
		return 0, annotatef(err, "while encoding value of type %s", v.Type())
	}

	idx := int64(len(e.steps))
	e.steps = append(e.steps, Step{
		Kind:        StepValue,
		Payload:     payload.Data,
		CodecIndex:  payload.CodecIndex,
		ValueInputs: payload.ValueInputs,
		ExprInputs:  payload.ExprInputs,
	})
	e.valueIndexes[fp] = idx
	return idx, nil
}

// EncodeExpr emits the steps assembling n and every not-yet-emitted node it
// depends on, dependencies first, and returns the index of n's step.
func (e *Encoder) EncodeExpr(n *expr.Node) (int64, error) {
	for _, node := range expr.PostOrder(n) {
		fp := node.Fingerprint()
		if _, ok := e.exprIndexes[fp]; ok {
			continue
		}

		var step Step
		switch node.Kind() {
		case expr.KindLiteral:
			vi, err := e.EncodeValue(node.Value())
			if err != nil {
				return 0, err
			}
			step = LiteralNodeStep(vi)

		case expr.KindLeaf:
			step = LeafNodeStep(node.Key())

		case expr.KindPlaceholder:
			step = PlaceholderNodeStep(node.Key())

		case expr.KindOperator:
			oi, err := e.EncodeValue(node.Value())
			if err != nil {
				return 0, err
			}

			deps := node.Deps()
			inputs := make([]int64, len(deps))
			for i, d := range deps {
				di, ok := e.exprIndexes[d.Fingerprint()]
				if !ok {
					// Traversal order guarantees dependencies are emitted
					// first; a miss here is a bug, not a user error.
					return 0, failedPreconditionf("node dependency is not serialized yet: %s", d)
				}
				inputs[i] = di
			}
			step = OperatorNodeStep(oi, inputs...)

		default:
			return 0, failedPreconditionf("unexpected node kind: %s", node.Kind())
		}

		e.steps = append(e.steps, step)
		e.exprIndexes[fp] = int64(len(e.steps) - 1)
	}

	return e.exprIndexes[n.Fingerprint()], nil
}

// Encode flattens the given roots and returns the finished container. The
// resulting output index arrays parallel the inputs, in order.
func (e *Encoder) Encode(values []types.Value, exprs []*expr.Node) (*Container, error) {
	valueIndexes := make([]int64, 0, len(values))
	for _, v := range values {
		idx, err := e.EncodeValue(v)
		if err != nil {
			return nil, err
		}
		valueIndexes = append(valueIndexes, idx)
	}

	exprIndexes := make([]int64, 0, len(exprs))
	for _, n := range exprs {
		idx, err := e.EncodeExpr(n)
		if err != nil {
			return nil, err
		}
		exprIndexes = append(exprIndexes, idx)
	}

	return &Container{
		Version:            ContainerVersion,
		Steps:              e.steps,
		OutputValueIndexes: valueIndexes,
		OutputExprIndexes:  exprIndexes,
	}, nil
}
