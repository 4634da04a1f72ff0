package datatype

// JsonSchemaValueType names the six JSON value shapes a constraint can
// constrain against, mirroring the data type document's `type` keyword
// and used to report type-mismatch errors before any variant-specific
// rule is evaluated.
type JsonSchemaValueType int

const (
	ValueTypeNull JsonSchemaValueType = iota
	ValueTypeBoolean
	ValueTypeNumber
	ValueTypeString
	ValueTypeArray
	ValueTypeObject
)

// String renders the JSON Schema keyword spelling of the type, e.g. "null".
func (t JsonSchemaValueType) String() string {
	switch t {
	case ValueTypeNull:
		return "null"
	case ValueTypeBoolean:
		return "boolean"
	case ValueTypeNumber:
		return "number"
	case ValueTypeString:
		return "string"
	case ValueTypeArray:
		return "array"
	case ValueTypeObject:
		return "object"
	default:
		return "unknown"
	}
}

// valueTypeOf classifies a decoded JSON value (as produced by this module's
// strict decoders: nil, bool, float64, string, []any, map[string]any).
func valueTypeOf(v any) JsonSchemaValueType {
	switch v.(type) {
	case nil:
		return ValueTypeNull
	case bool:
		return ValueTypeBoolean
	case float64:
		return ValueTypeNumber
	case string:
		return ValueTypeString
	case []any:
		return ValueTypeArray
	case map[string]any:
		return ValueTypeObject
	default:
		return ValueTypeObject
	}
}
