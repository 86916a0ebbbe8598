package encoding

// Tags used to encode payloads. Each payload starts with 1 tag byte
// describing the kind of the content that follows.
// Gaps are left between each tag to allow adding new kinds in the future.
const (
	// Booleans
	FalseValue byte = 5
	TrueValue  byte = 6

	// Integers
	Int32Value byte = 12
	Int64Value byte = 13

	// Floating point numbers
	Float32Value byte = 20
	Float64Value byte = 21

	// Text
	TextValue byte = 30

	// Binary
	BytesValue byte = 35

	// Composites
	TupleValue byte = 40

	// Expression-related kinds
	OperatorValue byte = 50
	QuoteValue    byte = 51
)
