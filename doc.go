/*
Package riffle serializes expression graphs and typed values into a compact,
deterministic container format.

# Values and expressions

Riffle works with two families of objects. A Value is an immutable typed
datum: scalars (booleans, integers, floats, text, bytes), tuples of values,
operators, and quoted expressions. A Node is an immutable expression node:
a literal wrapping a value, a keyed leaf or placeholder, or an operator
application over other nodes. Every value and node carries a 128-bit
structural fingerprint; equal fingerprints mean equal content, and the
serializer uses them to emit each shared subobject exactly once.

# Containers and codecs

Encoding produces a Container: a flat list of steps where each step may only
reference the results of earlier steps, plus index lists selecting the
encoded outputs. Value payloads are produced by named codecs; the decoder
resolves codec names through a Registry, so both sides must agree on the
registered codecs (and, for operator values, on the registered operators).
The builtin codecs cover every value kind this package defines.

Containers marshal to deterministic CBOR via Marshal and Unmarshal, and can
be kept in a named on-disk catalog via the store package.

Basic usage:

	ops := riffle.DefaultOperators()
	reg := riffle.DefaultRegistry(ops)

	add, _ := ops.Lookup("math.add")
	node, _ := riffle.MakeOperatorNode(add, []*riffle.Node{
		riffle.Leaf("x"),
		riffle.Literal(riffle.Float32(1.0)),
	})

	container, _ := riffle.Encode(reg, nil, []*riffle.Node{node})
	data, _ := riffle.Marshal(container)

	container, _ = riffle.Unmarshal(data)
	res, _ := riffle.Decode(reg, container, riffle.DefaultOptions())
*/
package riffle
