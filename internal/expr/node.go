// Package expr implements the expression node model: immutable DAG nodes
// wrapping literal values, named inputs, named placeholders and operator
// applications. Nodes are deduplicated by content fingerprint.
package expr

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/riffleml/riffle/internal/fingerprint"
	"github.com/riffleml/riffle/internal/types"
)

// NodeKind discriminates the expression node variants.
type NodeKind uint8

const (
	KindLiteral NodeKind = iota + 1
	KindLeaf
	KindPlaceholder
	KindOperator
)

func (k NodeKind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindLeaf:
		return "leaf"
	case KindPlaceholder:
		return "placeholder"
	case KindOperator:
		return "operator"
	}

	return "invalid"
}

// Attr carries metadata inferred at node construction time. It is advisory:
// a node built without inference has a zero Attr.
type Attr struct {
	// Type is the inferred output type of the node, or TypeInvalid when
	// unknown.
	Type types.Type
}

// A Node is one vertex of an expression DAG. Nodes are immutable; their
// fingerprint is computed once at construction.
type Node struct {
	kind  NodeKind
	value types.Value // literal value, or operator value for operator nodes
	key   string      // leaf and placeholder name
	deps  []*Node
	attr  Attr
	fp    fingerprint.Fingerprint
}

func (n *Node) Kind() NodeKind {
	return n.kind
}

// Value returns the wrapped value of a literal node, or the operator value
// of an operator node. It is nil for leaves and placeholders.
func (n *Node) Value() types.Value {
	return n.value
}

// Key returns the name of a leaf or placeholder node.
func (n *Node) Key() string {
	return n.key
}

// Deps returns the node's ordered dependencies. The returned slice must not
// be modified.
func (n *Node) Deps() []*Node {
	return n.deps
}

func (n *Node) Attr() Attr {
	return n.attr
}

func (n *Node) Fingerprint() fingerprint.Fingerprint {
	return n.fp
}

// Equal reports whether two nodes are structurally equal.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}

	return a.fp == b.fp
}

// NewLiteral returns a literal node wrapping v.
func NewLiteral(v types.Value) *Node {
	return &Node{
		kind:  KindLiteral,
		value: v,
		attr:  Attr{Type: v.Type()},
		fp: fingerprint.NewHasher().
			WriteTag(byte(KindLiteral)).
			WriteFingerprint(v.Fingerprint()).
			Done(),
	}
}

// NewLeaf returns a leaf node: a named external input.
func NewLeaf(key string) *Node {
	return &Node{
		kind: KindLeaf,
		key:  key,
		fp: fingerprint.NewHasher().
			WriteTag(byte(KindLeaf)).
			WriteString(key).
			Done(),
	}
}

// NewPlaceholder returns a placeholder node: a named substitution slot.
func NewPlaceholder(key string) *Node {
	return &Node{
		kind: KindPlaceholder,
		key:  key,
		fp: fingerprint.NewHasher().
			WriteTag(byte(KindPlaceholder)).
			WriteString(key).
			Done(),
	}
}

// MakeOperatorNode builds an operator node, validating the dependency count
// against the operator's signature and inferring the node's attributes.
func MakeOperatorNode(op *Operator, deps []*Node) (*Node, error) {
	if len(deps) != op.Arity() {
		return nil, errors.Newf(
			"incorrect number of dependencies passed to an operator node: expected %d but got %d; while calling %s with args {%s}",
			op.Arity(), len(deps), op.Name(), renderArgs(deps))
	}

	return newOperatorNode(op, deps, true), nil
}

// UnsafeMakeOperatorNode builds an operator node without validating the
// dependency count. Attributes are inferred only when inferAttr is set.
func UnsafeMakeOperatorNode(op *Operator, deps []*Node, inferAttr bool) *Node {
	return newOperatorNode(op, deps, inferAttr)
}

func newOperatorNode(op *Operator, deps []*Node, inferAttr bool) *Node {
	h := fingerprint.NewHasher().
		WriteTag(byte(KindOperator)).
		WriteFingerprint(op.Fingerprint())
	for _, d := range deps {
		h.WriteFingerprint(d.Fingerprint())
	}

	n := &Node{
		kind:  KindOperator,
		value: op,
		deps:  deps,
		fp:    h.Done(),
	}
	if inferAttr {
		n.attr = op.InferAttr(deps)
	}

	return n
}

func (n *Node) String() string {
	switch n.kind {
	case KindLiteral:
		return n.value.String()
	case KindLeaf:
		return "L." + n.key
	case KindPlaceholder:
		return "P." + n.key
	case KindOperator:
		var b strings.Builder
		b.WriteString(n.value.String())
		b.WriteString("(")
		for i, d := range n.deps {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(d.String())
		}
		b.WriteString(")")
		return b.String()
	}

	return "<invalid>"
}

func renderArgs(deps []*Node) string {
	parts := make([]string, len(deps))
	for i, d := range deps {
		parts[i] = d.String()
	}
	return strings.Join(parts, ", ")
}
