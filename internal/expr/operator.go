package expr

import (
	"github.com/riffleml/riffle/internal/fingerprint"
	"github.com/riffleml/riffle/internal/types"
)

var _ types.Value = (*Operator)(nil)

// An Operator is a named operator with a fixed parameter list. Operators are
// themselves values (of EXPR_OPERATOR type) so that operator nodes can
// reference them through the regular value machinery.
type Operator struct {
	name   string
	params []string
	fp     fingerprint.Fingerprint
}

// NewOperator returns an operator with the given name and parameter names.
func NewOperator(name string, params ...string) *Operator {
	h := fingerprint.NewHasher().
		WriteTag(byte(types.TypeExprOperator)).
		WriteString(name)
	for _, p := range params {
		h.WriteString(p)
	}

	return &Operator{
		name:   name,
		params: params,
		fp:     h.Done(),
	}
}

func (op *Operator) Name() string {
	return op.name
}

// Params returns the operator's parameter names. The returned slice must not
// be modified.
func (op *Operator) Params() []string {
	return op.params
}

// Arity returns the expected number of dependencies of an operator node.
func (op *Operator) Arity() int {
	return len(op.params)
}

// InferAttr infers the output attributes of a node applying this operator to
// deps: if every dependency has the same known type, the output is assumed
// to have that type too.
func (op *Operator) InferAttr(deps []*Node) Attr {
	if len(deps) == 0 {
		return Attr{}
	}

	t := deps[0].Attr().Type
	if t == types.TypeInvalid {
		return Attr{}
	}
	for _, d := range deps[1:] {
		if d.Attr().Type != t {
			return Attr{}
		}
	}

	return Attr{Type: t}
}

func (op *Operator) V() any {
	return op
}

func (op *Operator) Type() types.Type {
	return types.TypeExprOperator
}

func (op *Operator) Fingerprint() fingerprint.Fingerprint {
	return op.fp
}

func (op *Operator) String() string {
	return op.name
}

// AsOperator returns v as an operator, if it is one.
func AsOperator(v types.Value) (*Operator, bool) {
	op, ok := v.(*Operator)
	return op, ok
}
