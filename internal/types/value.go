package types

// Typed accessors. They panic when applied to a value of the wrong type,
// like any failed type assertion.

func AsBool(v Value) bool {
	return bool(v.(BooleanValue))
}

func AsInt32(v Value) int32 {
	return int32(v.(Int32Value))
}

func AsInt64(v Value) int64 {
	return int64(v.(Int64Value))
}

func AsFloat32(v Value) float32 {
	return float32(v.(Float32Value))
}

func AsFloat64(v Value) float64 {
	return float64(v.(Float64Value))
}

func AsString(v Value) string {
	return string(v.(TextValue))
}

func AsByteSlice(v Value) []byte {
	return []byte(v.(BytesValue))
}

func AsTuple(v Value) []Value {
	return v.(*TupleValue).Elements()
}
