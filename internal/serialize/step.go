// Package serialize implements the container format for expression DAGs and
// typed values: an Encoder that flattens roots into a deduplicated,
// causally ordered step sequence, and a Decoder that replays such a
// sequence. The Decoder is a single state machine with two front-ends: the
// incremental OnStep entry point and the bulk Decode function, which is a
// thin loop over OnStep.
package serialize

import "fmt"

// ContainerVersion is the only supported container version.
const ContainerVersion int64 = 1

// StepKind discriminates the decoding step variants.
type StepKind uint8

const (
	StepInvalid StepKind = iota
	StepCodec
	StepValue
	StepLiteralNode
	StepLeafNode
	StepPlaceholderNode
	StepOperatorNode
	StepOutputValueIndex
	StepOutputExprIndex
)

// String returns the wire name of the step kind, as used in error context
// suffixes.
func (k StepKind) String() string {
	switch k {
	case StepCodec:
		return "CODEC"
	case StepValue:
		return "VALUE"
	case StepLiteralNode:
		return "LITERAL_NODE"
	case StepLeafNode:
		return "LEAF_NODE"
	case StepPlaceholderNode:
		return "PLACEHOLDER_NODE"
	case StepOperatorNode:
		return "OPERATOR_NODE"
	case StepOutputValueIndex:
		return "OUTPUT_VALUE_INDEX"
	case StepOutputExprIndex:
		return "OUTPUT_EXPR_INDEX"
	}

	return fmt.Sprintf("UNKNOWN(%d)", uint8(k))
}

// A Step is one instruction of a container. Which fields are meaningful
// depends on Kind; every index field must reference a step at a strictly
// smaller position.
type Step struct {
	Kind StepKind `cbor:"1,keyasint"`

	// Name is the codec name of a CODEC step.
	Name string `cbor:"2,keyasint,omitempty"`

	// Payload is the codec-specific content of a VALUE step.
	Payload []byte `cbor:"3,keyasint,omitempty"`

	// CodecIndex is the codec slot of a VALUE step. When nil, the decoder
	// probes every declared codec in declaration order.
	CodecIndex *int64 `cbor:"4,keyasint,omitempty"`

	// ValueInputs and ExprInputs are the step indexes of the values and
	// expressions a VALUE or OPERATOR_NODE step depends on.
	ValueInputs []int64 `cbor:"5,keyasint,omitempty"`
	ExprInputs  []int64 `cbor:"6,keyasint,omitempty"`

	// Key is the name of a LEAF_NODE or PLACEHOLDER_NODE step.
	Key string `cbor:"7,keyasint,omitempty"`

	// ValueIndex is the wrapped value of a LITERAL_NODE step or the
	// operator value of an OPERATOR_NODE step.
	ValueIndex int64 `cbor:"8,keyasint,omitempty"`

	// Index is the referenced step of an OUTPUT_VALUE_INDEX or
	// OUTPUT_EXPR_INDEX step.
	Index int64 `cbor:"9,keyasint,omitempty"`
}

// A Container is the complete serialized representation of a set of root
// values and expressions. It is immutable once produced.
type Container struct {
	Version            int64   `cbor:"1,keyasint"`
	Steps              []Step  `cbor:"2,keyasint,omitempty"`
	OutputValueIndexes []int64 `cbor:"3,keyasint,omitempty"`
	OutputExprIndexes  []int64 `cbor:"4,keyasint,omitempty"`
}

func CodecStep(name string) Step {
	return Step{Kind: StepCodec, Name: name}
}

func LiteralNodeStep(valueIndex int64) Step {
	return Step{Kind: StepLiteralNode, ValueIndex: valueIndex}
}

func LeafNodeStep(key string) Step {
	return Step{Kind: StepLeafNode, Key: key}
}

func PlaceholderNodeStep(key string) Step {
	return Step{Kind: StepPlaceholderNode, Key: key}
}

func OperatorNodeStep(operatorValueIndex int64, exprInputs ...int64) Step {
	return Step{Kind: StepOperatorNode, ValueIndex: operatorValueIndex, ExprInputs: exprInputs}
}

func OutputValueIndexStep(index int64) Step {
	return Step{Kind: StepOutputValueIndex, Index: index}
}

func OutputExprIndexStep(index int64) Step {
	return Step{Kind: StepOutputExprIndex, Index: index}
}
