package expr_test

import (
	"testing"

	"github.com/riffleml/riffle/internal/expr"
	"github.com/riffleml/riffle/internal/types"
	"github.com/stretchr/testify/require"
)

func TestNewLiteral(t *testing.T) {
	n := expr.NewLiteral(types.NewFloat32Value(1.0))
	require.Equal(t, expr.KindLiteral, n.Kind())
	require.Equal(t, types.TypeFloat32, n.Attr().Type)
	require.Equal(t, "1", n.String())
	require.Empty(t, n.Deps())

	require.True(t, expr.Equal(n, expr.NewLiteral(types.NewFloat32Value(1.0))))
	require.False(t, expr.Equal(n, expr.NewLiteral(types.NewFloat64Value(1.0))))
}

func TestNewLeafAndPlaceholder(t *testing.T) {
	l := expr.NewLeaf("x")
	p := expr.NewPlaceholder("x")

	require.Equal(t, "L.x", l.String())
	require.Equal(t, "P.x", p.String())
	require.Equal(t, "x", l.Key())
	require.Equal(t, "x", p.Key())

	// same key, different kind
	require.False(t, expr.Equal(l, p))
	require.True(t, expr.Equal(l, expr.NewLeaf("x")))
}

func TestMakeOperatorNode(t *testing.T) {
	add := expr.NewOperator("math.add", "x", "y")

	n, err := expr.MakeOperatorNode(add, []*expr.Node{expr.NewLeaf("x"), expr.NewLeaf("y")})
	require.NoError(t, err)
	require.Equal(t, expr.KindOperator, n.Kind())
	require.Equal(t, "math.add(L.x, L.y)", n.String())
	require.Len(t, n.Deps(), 2)

	op, ok := expr.AsOperator(n.Value())
	require.True(t, ok)
	require.Equal(t, "math.add", op.Name())
}

func TestMakeOperatorNodeArityMismatch(t *testing.T) {
	add := expr.NewOperator("math.add", "x", "y")

	_, err := expr.MakeOperatorNode(add, []*expr.Node{expr.NewLeaf("x")})
	require.Error(t, err)
	require.EqualError(t, err,
		"incorrect number of dependencies passed to an operator node: expected 2 but got 1; while calling math.add with args {L.x}")
}

func TestUnsafeMakeOperatorNode(t *testing.T) {
	add := expr.NewOperator("math.add", "x", "y")

	// wrong arity is accepted
	n := expr.UnsafeMakeOperatorNode(add, []*expr.Node{expr.NewLeaf("x")}, false)
	require.Equal(t, expr.KindOperator, n.Kind())
	require.Equal(t, types.TypeInvalid, n.Attr().Type)

	// same structure, same fingerprint regardless of inference
	m := expr.UnsafeMakeOperatorNode(add, []*expr.Node{expr.NewLeaf("x")}, true)
	require.True(t, expr.Equal(n, m))
}

func TestAttrInference(t *testing.T) {
	add := expr.NewOperator("math.add", "x", "y")

	lit := func(x float32) *expr.Node { return expr.NewLiteral(types.NewFloat32Value(x)) }

	n, err := expr.MakeOperatorNode(add, []*expr.Node{lit(1), lit(2)})
	require.NoError(t, err)
	require.Equal(t, types.TypeFloat32, n.Attr().Type)

	// mixed types: unknown
	m, err := expr.MakeOperatorNode(add, []*expr.Node{lit(1), expr.NewLiteral(types.NewInt32Value(2))})
	require.NoError(t, err)
	require.Equal(t, types.TypeInvalid, m.Attr().Type)

	// leaves carry no type information
	u, err := expr.MakeOperatorNode(add, []*expr.Node{expr.NewLeaf("x"), expr.NewLeaf("y")})
	require.NoError(t, err)
	require.Equal(t, types.TypeInvalid, u.Attr().Type)
}

func TestOperatorValue(t *testing.T) {
	add := expr.NewOperator("math.add", "x", "y")
	require.Equal(t, types.TypeExprOperator, add.Type())
	require.Equal(t, 2, add.Arity())
	require.Equal(t, "math.add", add.String())

	// signature participates in identity
	require.False(t, types.Equal(add, expr.NewOperator("math.add", "x")))
	require.True(t, types.Equal(add, expr.NewOperator("math.add", "x", "y")))
}

func TestPostOrder(t *testing.T) {
	add := expr.NewOperator("math.add", "x", "y")
	x := expr.NewLeaf("x")
	y := expr.NewLeaf("y")

	inner, err := expr.MakeOperatorNode(add, []*expr.Node{x, y})
	require.NoError(t, err)
	root, err := expr.MakeOperatorNode(add, []*expr.Node{inner, x})
	require.NoError(t, err)

	nodes := expr.PostOrder(root)
	require.Len(t, nodes, 4) // x, y, inner, root; x visited once

	pos := make(map[string]int)
	for i, n := range nodes {
		pos[n.String()] = i
	}
	require.Less(t, pos["L.x"], pos["math.add(L.x, L.y)"])
	require.Less(t, pos["L.y"], pos["math.add(L.x, L.y)"])
	require.Equal(t, len(nodes)-1, pos[root.String()])
}

func TestPostOrderSharedSubtree(t *testing.T) {
	add := expr.NewOperator("math.add", "x", "y")

	// two structurally identical but pointer-distinct children
	a, err := expr.MakeOperatorNode(add, []*expr.Node{expr.NewLeaf("x"), expr.NewLeaf("x")})
	require.NoError(t, err)

	nodes := expr.PostOrder(a)
	require.Len(t, nodes, 2) // L.x once, then the operator node
}

func TestGetKeys(t *testing.T) {
	add := expr.NewOperator("math.add", "x", "y")

	n, err := expr.MakeOperatorNode(add, []*expr.Node{expr.NewLeaf("b"), expr.NewPlaceholder("p")})
	require.NoError(t, err)
	m, err := expr.MakeOperatorNode(add, []*expr.Node{expr.NewLeaf("a"), expr.NewLeaf("b")})
	require.NoError(t, err)

	require.Equal(t, []string{"a", "b"}, expr.GetLeafKeys(n, m))
	require.Equal(t, []string{"p"}, expr.GetPlaceholderKeys(n, m))
	require.Empty(t, expr.GetPlaceholderKeys(m))
}

func TestRegistry(t *testing.T) {
	r := expr.DefaultRegistry()

	op, err := r.Lookup("math.add")
	require.NoError(t, err)
	require.Equal(t, 2, op.Arity())

	_, err = r.Lookup("math.nope")
	require.EqualError(t, err, `no such operator: "math.nope"`)

	require.Contains(t, r.Names(), "math.neg")

	_, err = expr.NewRegistry(expr.NewOperator("a", "x"), expr.NewOperator("a", "y"))
	require.Error(t, err)
}

func TestQuotedExpr(t *testing.T) {
	n := expr.NewLeaf("x")
	q := expr.NewQuotedExpr(n)

	require.Equal(t, types.TypeExprQuote, q.Type())
	require.Equal(t, "quote(L.x)", q.String())
	require.True(t, expr.Equal(n, q.Node()))

	require.True(t, types.Equal(q, expr.NewQuotedExpr(expr.NewLeaf("x"))))
	require.False(t, types.Equal(q, expr.NewQuotedExpr(expr.NewLeaf("y"))))
}
