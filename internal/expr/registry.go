package expr

import (
	"sort"

	"github.com/cockroachdb/errors"
)

// A Registry holds operators indexed by name. It is immutable after
// construction: build it once during process initialization and share it by
// reference across concurrent encode/decode operations.
type Registry struct {
	ops map[string]*Operator
}

// NewRegistry returns a registry holding the given operators.
func NewRegistry(ops ...*Operator) (*Registry, error) {
	m := make(map[string]*Operator, len(ops))
	for _, op := range ops {
		if _, ok := m[op.Name()]; ok {
			return nil, errors.Newf("duplicate operator: %q", op.Name())
		}
		m[op.Name()] = op
	}

	return &Registry{ops: m}, nil
}

// Lookup returns the operator registered under name.
func (r *Registry) Lookup(name string) (*Operator, error) {
	op, ok := r.ops[name]
	if !ok {
		return nil, errors.Newf("no such operator: %q", name)
	}

	return op, nil
}

// Names returns the sorted names of all registered operators.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.ops))
	for name := range r.ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry returns a registry with the builtin arithmetic operators.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(
		NewOperator("math.add", "x", "y"),
		NewOperator("math.subtract", "x", "y"),
		NewOperator("math.multiply", "x", "y"),
		NewOperator("math.neg", "x"),
		NewOperator("core.identity", "x"),
	)
	if err != nil {
		panic(err)
	}

	return r
}
