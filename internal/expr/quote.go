package expr

import (
	"github.com/riffleml/riffle/internal/fingerprint"
	"github.com/riffleml/riffle/internal/types"
)

var _ types.Value = (*QuotedExpr)(nil)

// A QuotedExpr is an expression lifted into a value: the wrapped node is
// carried as data instead of being evaluated. Serializing a quoted
// expression serializes the wrapped node first.
type QuotedExpr struct {
	node *Node
	fp   fingerprint.Fingerprint
}

// NewQuotedExpr returns an EXPR_QUOTE value wrapping n.
func NewQuotedExpr(n *Node) *QuotedExpr {
	return &QuotedExpr{
		node: n,
		fp: fingerprint.NewHasher().
			WriteTag(byte(types.TypeExprQuote)).
			WriteFingerprint(n.Fingerprint()).
			Done(),
	}
}

func (q *QuotedExpr) Node() *Node {
	return q.node
}

func (q *QuotedExpr) V() any {
	return q.node
}

func (q *QuotedExpr) Type() types.Type {
	return types.TypeExprQuote
}

func (q *QuotedExpr) Fingerprint() fingerprint.Fingerprint {
	return q.fp
}

func (q *QuotedExpr) String() string {
	return "quote(" + q.node.String() + ")"
}
