package serialize

import (
	"github.com/cockroachdb/errors"
	"github.com/riffleml/riffle/internal/expr"
	"github.com/riffleml/riffle/internal/types"
)

// A CodecFn decodes one codec's payloads. values and exprs are the resolved
// inputs of the VALUE step being decoded. A CodecFn signals "this payload is
// not mine" by returning an error wrapping ErrNoExtension.
type CodecFn func(payload []byte, values []types.Value, exprs []*expr.Node) (types.Value, error)

// A CodecLookupFn resolves a codec name declared by a CODEC step.
type CodecLookupFn func(name string) (CodecFn, error)

// Options configures a Decoder.
type Options struct {
	// SafeOperatorNodes routes OPERATOR_NODE steps through the validating
	// node constructor, which checks the dependency count against the
	// operator's signature.
	SafeOperatorNodes bool

	// InferAttributes recomputes attribute metadata on operator nodes
	// assembled without validation. Ignored when SafeOperatorNodes is set:
	// the validating constructor always infers.
	InferAttributes bool
}

// DefaultOptions returns the options used by the package-level Decode calls.
func DefaultOptions() Options {
	return Options{
		SafeOperatorNodes: true,
		InferAttributes:   true,
	}
}

// A Result holds the caller-visible output of a decode operation.
type Result struct {
	Values []types.Value
	Exprs  []*expr.Node
}

// stepResult is one slot of the decoding step table. At most one of the two
// fields is set; both nil means the step produced no referenceable result
// (CODEC and output marker steps).
type stepResult struct {
	value types.Value
	expr  *expr.Node
}

// A Decoder replays a step sequence, one step at a time. It is a purely
// synchronous state machine: not safe for concurrent use, and unusable
// after the first error.
type Decoder struct {
	lookup CodecLookupFn
	opts   Options

	codecs     []CodecFn
	codecNames []string
	results    []stepResult

	outValues []types.Value
	outExprs  []*expr.Node

	nsteps int64
	failed bool
}

// NewDecoder returns a decoder resolving codec names through lookup.
func NewDecoder(lookup CodecLookupFn, opts Options) *Decoder {
	return &Decoder{
		lookup: lookup,
		opts:   opts,
	}
}

// OnStep processes exactly one step. index must equal the number of steps
// already processed. The first error is terminal: every subsequent call
// fails.
func (d *Decoder) OnStep(index int64, step Step) error {
	if d.failed {
		return failedPreconditionf("decoder is unusable after an error")
	}

	err := d.onStep(index, step)
	if err != nil {
		d.failed = true
		return annotatef(err, "decoding_step.type=%s", step.Kind)
	}

	return nil
}

// Finish returns everything collected through OUTPUT_VALUE_INDEX and
// OUTPUT_EXPR_INDEX steps, in the order the markers were seen.
func (d *Decoder) Finish() (Result, error) {
	if d.failed {
		return Result{}, failedPreconditionf("decoder is unusable after an error")
	}

	return Result{
		Values: d.outValues,
		Exprs:  d.outExprs,
	}, nil
}

// Decode replays every step of the container in array order, then resolves
// the trailing output index arrays.
func Decode(c *Container, lookup CodecLookupFn, opts Options) (Result, error) {
	if c.Version != ContainerVersion {
		return Result{}, invalidArgumentf("expected container version %d, got %d", ContainerVersion, c.Version)
	}

	d := NewDecoder(lookup, opts)
	for i := range c.Steps {
		if err := d.OnStep(int64(i), c.Steps[i]); err != nil {
			return Result{}, annotatef(err, "while handling decoding_steps[%d]", i)
		}
	}

	res, err := d.Finish()
	if err != nil {
		return Result{}, err
	}

	for _, idx := range c.OutputValueIndexes {
		v, err := d.resolveValue(idx)
		if err != nil {
			return Result{}, annotatef(err, "while loading output values")
		}
		res.Values = append(res.Values, v)
	}
	for _, idx := range c.OutputExprIndexes {
		e, err := d.resolveExpr(idx)
		if err != nil {
			return Result{}, annotatef(err, "while loading output expressions")
		}
		res.Exprs = append(res.Exprs, e)
	}

	return res, nil
}

func (d *Decoder) onStep(index int64, step Step) error {
	if index != d.nsteps {
		return invalidArgumentf("encountered unexpected decoding_step_index=%d, indicating missing step %d", index, d.nsteps)
	}

	// Extend the step table first: a step's own slot must exist before its
	// result is stored, and steps without results still occupy a position.
	d.results = append(d.results, stepResult{})
	d.nsteps++

	switch step.Kind {
	case StepCodec:
		return d.onCodecStep(step)
	case StepValue:
		return d.onValueStep(index, step)
	case StepLiteralNode:
		return d.onLiteralNodeStep(index, step)
	case StepLeafNode, StepPlaceholderNode:
		return d.onKeyedNodeStep(index, step)
	case StepOperatorNode:
		return d.onOperatorNodeStep(index, step)
	case StepOutputValueIndex:
		v, err := d.resolveValue(step.Index)
		if err != nil {
			return err
		}
		d.outValues = append(d.outValues, v)
		return nil
	case StepOutputExprIndex:
		e, err := d.resolveExpr(step.Index)
		if err != nil {
			return err
		}
		d.outExprs = append(d.outExprs, e)
		return nil
	}

	return invalidArgumentf("missing or unsupported decoding_step.type=%d", uint8(step.Kind))
}

func (d *Decoder) onCodecStep(step Step) error {
	if step.Name == "" {
		return invalidArgumentf("missing codec name")
	}

	fn, err := d.lookup(step.Name)
	if err != nil {
		return err
	}

	d.codecs = append(d.codecs, fn)
	d.codecNames = append(d.codecNames, step.Name)
	return nil
}

func (d *Decoder) onValueStep(index int64, step Step) error {
	vals, err := d.resolveValues(step.ValueInputs)
	if err != nil {
		return err
	}
	exprs, err := d.resolveExprs(step.ExprInputs)
	if err != nil {
		return err
	}

	var v types.Value
	if step.CodecIndex != nil {
		ci := *step.CodecIndex
		if ci < 0 || ci >= int64(len(d.codecs)) {
			return invalidArgumentf("codec index is out of range: %d", ci)
		}

		v, err = d.codecs[ci](step.Payload, vals, exprs)
		if err != nil {
			if errors.Is(err, ErrNoExtension) {
				return notFoundf("no extension found; codecs[%d]=%s", ci, d.codecNames[ci])
			}
			return err
		}
	} else {
		// No codec declared: probe every declared codec in declaration
		// order and keep the first match.
		for _, fn := range d.codecs {
			w, werr := fn(step.Payload, vals, exprs)
			if werr == nil {
				v = w
				break
			}
			if !errors.Is(werr, ErrNoExtension) {
				return werr
			}
		}
		if v == nil {
			return invalidArgumentf("unable to detect codec")
		}
	}

	return d.setValue(index, v)
}

func (d *Decoder) onLiteralNodeStep(index int64, step Step) error {
	v, err := d.resolveValue(step.ValueIndex)
	if err != nil {
		return err
	}

	return d.setExpr(index, expr.NewLiteral(v))
}

func (d *Decoder) onKeyedNodeStep(index int64, step Step) error {
	if step.Key == "" {
		return invalidArgumentf("missing key")
	}

	if step.Kind == StepLeafNode {
		return d.setExpr(index, expr.NewLeaf(step.Key))
	}
	return d.setExpr(index, expr.NewPlaceholder(step.Key))
}

func (d *Decoder) onOperatorNodeStep(index int64, step Step) error {
	v, err := d.resolveValue(step.ValueIndex)
	if err != nil {
		return err
	}

	op, ok := expr.AsOperator(v)
	if !ok {
		return invalidArgumentf("expected a value of EXPR_OPERATOR type in decoding_step_results[%d], got %s", step.ValueIndex, v.Type())
	}

	deps, err := d.resolveExprs(step.ExprInputs)
	if err != nil {
		return err
	}

	if d.opts.SafeOperatorNodes {
		n, err := expr.MakeOperatorNode(op, deps)
		if err != nil {
			return err
		}
		return d.setExpr(index, n)
	}

	return d.setExpr(index, expr.UnsafeMakeOperatorNode(op, deps, d.opts.InferAttributes))
}

func (d *Decoder) resolveValue(i int64) (types.Value, error) {
	if i < 0 || i >= int64(len(d.results)) {
		return nil, invalidArgumentf("value index is out of range: %d", i)
	}

	r := d.results[i]
	if r.expr != nil {
		return nil, invalidArgumentf("expected a value in decoding_step_results[%d], got an expression", i)
	}
	if r.value == nil {
		return nil, invalidArgumentf("no value found in decoding_step_results[%d]", i)
	}

	return r.value, nil
}

func (d *Decoder) resolveValues(indexes []int64) ([]types.Value, error) {
	if len(indexes) == 0 {
		return nil, nil
	}

	vals := make([]types.Value, len(indexes))
	for i, idx := range indexes {
		v, err := d.resolveValue(idx)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}

	return vals, nil
}

func (d *Decoder) resolveExpr(i int64) (*expr.Node, error) {
	if i < 0 || i >= int64(len(d.results)) {
		return nil, invalidArgumentf("expression index is out of range: %d", i)
	}

	r := d.results[i]
	if r.value != nil {
		return nil, invalidArgumentf("expected an expression in decoding_step_results[%d], got a value", i)
	}
	if r.expr == nil {
		return nil, invalidArgumentf("no expression found in decoding_step_results[%d]", i)
	}

	return r.expr, nil
}

func (d *Decoder) resolveExprs(indexes []int64) ([]*expr.Node, error) {
	if len(indexes) == 0 {
		return nil, nil
	}

	exprs := make([]*expr.Node, len(indexes))
	for i, idx := range indexes {
		e, err := d.resolveExpr(idx)
		if err != nil {
			return nil, err
		}
		exprs[i] = e
	}

	return exprs, nil
}

func (d *Decoder) setValue(index int64, v types.Value) error {
	r := &d.results[index]
	if r.value != nil {
		return failedPreconditionf("value_index collision")
	}
	if r.expr != nil {
		return failedPreconditionf("expr_index collision")
	}

	r.value = v
	return nil
}

func (d *Decoder) setExpr(index int64, e *expr.Node) error {
	r := &d.results[index]
	if r.expr != nil {
		return failedPreconditionf("expr_index collision")
	}
	if r.value != nil {
		return failedPreconditionf("value_index collision")
	}

	r.expr = e
	return nil
}
