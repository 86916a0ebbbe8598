package riffle

import (
	"github.com/riffleml/riffle/internal/codec"
	"github.com/riffleml/riffle/internal/expr"
	"github.com/riffleml/riffle/internal/serialize"
	"github.com/riffleml/riffle/internal/types"
)

// Core types, re-exported so callers never import the internal packages.
type (
	// Value is an immutable typed datum.
	Value = types.Value

	// Node is an immutable expression node.
	Node = expr.Node

	// Operator is a named operator value usable in operator nodes.
	Operator = expr.Operator

	// Operators is a registry of known operators.
	Operators = expr.Registry

	// Registry is an ordered set of value codecs.
	Registry = codec.Registry

	// Codec serializes some subset of value kinds.
	Codec = codec.Codec

	// Container is the serialized form of a set of values and expressions.
	Container = serialize.Container

	// Step is a single entry of a container's step list.
	Step = serialize.Step

	// StepKind discriminates the step variants.
	StepKind = serialize.StepKind

	// Options tunes decoding behavior.
	Options = serialize.Options

	// Result holds the decoded output values and expressions.
	Result = serialize.Result

	// Decoder consumes container steps one at a time.
	Decoder = serialize.Decoder
)

// Step kinds of a container's step list.
const (
	StepCodec            = serialize.StepCodec
	StepValue            = serialize.StepValue
	StepLiteralNode      = serialize.StepLiteralNode
	StepLeafNode         = serialize.StepLeafNode
	StepPlaceholderNode  = serialize.StepPlaceholderNode
	StepOperatorNode     = serialize.StepOperatorNode
	StepOutputValueIndex = serialize.StepOutputValueIndex
	StepOutputExprIndex  = serialize.StepOutputExprIndex
)

// ContainerVersion is the only supported container version.
const ContainerVersion = serialize.ContainerVersion

// DefaultOptions returns the decoding defaults: operator arity checking and
// attribute inference both enabled.
func DefaultOptions() Options {
	return serialize.DefaultOptions()
}

// Value constructors.

func Bool(x bool) Value          { return types.NewBooleanValue(x) }
func Int32(x int32) Value        { return types.NewInt32Value(x) }
func Int64(x int64) Value        { return types.NewInt64Value(x) }
func Float32(x float32) Value    { return types.NewFloat32Value(x) }
func Float64(x float64) Value    { return types.NewFloat64Value(x) }
func Text(x string) Value        { return types.NewTextValue(x) }
func Bytes(x []byte) Value       { return types.NewBytesValue(x) }
func Tuple(elems ...Value) Value { return types.NewTupleValue(elems...) }

// Quote wraps an expression as a value, so expressions can appear inside
// literals and tuples.
func Quote(n *Node) Value { return expr.NewQuotedExpr(n) }

// Node constructors.

// Literal returns a literal node wrapping v.
func Literal(v Value) *Node { return expr.NewLiteral(v) }

// Leaf returns a leaf node bound to key at evaluation time.
func Leaf(key string) *Node { return expr.NewLeaf(key) }

// Placeholder returns a placeholder node substituted by key before
// evaluation.
func Placeholder(key string) *Node { return expr.NewPlaceholder(key) }

// NewOperator returns an operator taking the given parameters.
func NewOperator(name string, params ...string) *Operator {
	return expr.NewOperator(name, params...)
}

// MakeOperatorNode returns an operator node applying op to deps, after
// checking that len(deps) matches the operator's arity.
func MakeOperatorNode(op *Operator, deps []*Node) (*Node, error) {
	return expr.MakeOperatorNode(op, deps)
}

// LeafKeys returns the sorted, deduplicated leaf keys reachable from the
// given expressions.
func LeafKeys(nodes ...*Node) []string { return expr.GetLeafKeys(nodes...) }

// PlaceholderKeys returns the sorted, deduplicated placeholder keys
// reachable from the given expressions.
func PlaceholderKeys(nodes ...*Node) []string { return expr.GetPlaceholderKeys(nodes...) }

// NewOperators returns an operator registry holding the given operators.
func NewOperators(ops ...*Operator) (*Operators, error) {
	return expr.NewRegistry(ops...)
}

// DefaultOperators returns the builtin operator registry.
func DefaultOperators() *Operators {
	return expr.DefaultRegistry()
}

// NewRegistry returns a codec registry holding the given codecs, probed in
// order.
func NewRegistry(codecs ...Codec) (*Registry, error) {
	return codec.NewRegistry(codecs...)
}

// DefaultRegistry returns a registry with the builtin codecs, resolving
// operator values against ops.
func DefaultRegistry(ops *Operators) *Registry {
	return codec.DefaultRegistry(ops)
}

// Encode serializes the given values and expressions into a container,
// using reg's codecs. Output order follows argument order; shared
// subobjects are emitted once.
func Encode(reg *Registry, values []Value, exprs []*Node) (*Container, error) {
	return serialize.NewEncoder(reg.ValueEncoder()).Encode(values, exprs)
}

// Decode deserializes a container using reg's codecs.
func Decode(reg *Registry, c *Container, opts Options) (Result, error) {
	return serialize.Decode(c, reg.Lookup, opts)
}

// NewDecoder returns an incremental decoder resolving codec names through
// reg. Feed it steps in order with OnStep, then call Finish.
func NewDecoder(reg *Registry, opts Options) *Decoder {
	return serialize.NewDecoder(reg.Lookup, opts)
}

// Marshal serializes a container to its deterministic wire form.
func Marshal(c *Container) ([]byte, error) {
	return serialize.Marshal(c)
}

// Unmarshal parses a container from its wire form.
func Unmarshal(data []byte) (*Container, error) {
	return serialize.Unmarshal(data)
}
