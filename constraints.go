package datatype

import (
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// SingleValueKind names the six JSON-kind-scoped constraint shapes a
// SingleValueConstraints can hold.
type SingleValueKind int

const (
	KindNull SingleValueKind = iota
	KindBoolean
	KindObject
	KindNumber
	KindString
	KindArray
)

// SingleValueConstraints is constrained to exactly one JSON value kind.
// Null, Boolean, and Object carry no payload beyond their Kind; Number,
// String, and Array delegate to their dedicated schema types.
type SingleValueConstraints struct {
	Kind   SingleValueKind
	Number *NumberSchema
	String *StringSchema
	Array  *ArraySchema
}

// Validate dispatches value to the schema matching Kind, reporting a type
// mismatch before any kind-specific rule is evaluated (§4.2).
func (c *SingleValueConstraints) Validate(value any) *ConstraintReport {
	return c.validateWith(value, stringFormats, false)
}

// validateWith is Validate generalized over a caller-supplied format
// registry, used by Validator to honor RegisterFormat-style overrides.
func (c *SingleValueConstraints) validateWith(value any, formats map[string]func(string) bool, strictUnknown bool) *ConstraintReport {
	actual := valueTypeOf(value)

	switch c.Kind {
	case KindNull:
		if actual != ValueTypeNull {
			return typeMismatchReport(ValueTypeNull, actual)
		}
		return nil
	case KindBoolean:
		if actual != ValueTypeBoolean {
			return typeMismatchReport(ValueTypeBoolean, actual)
		}
		return nil
	case KindObject:
		if actual != ValueTypeObject {
			return typeMismatchReport(ValueTypeObject, actual)
		}
		return nil
	case KindNumber:
		if actual != ValueTypeNumber {
			return typeMismatchReport(ValueTypeNumber, actual)
		}
		return c.Number.Validate(value.(float64))
	case KindString:
		if actual != ValueTypeString {
			return typeMismatchReport(ValueTypeString, actual)
		}
		return c.String.validateWith(value.(string), formats, strictUnknown)
	case KindArray:
		if actual != ValueTypeArray {
			return typeMismatchReport(ValueTypeArray, actual)
		}
		return c.Array.validateWith(value.([]any), formats, strictUnknown)
	default:
		return nil
	}
}

func typeMismatchReport(expected, actual JsonSchemaValueType) *ConstraintReport {
	report := NewConstraintReport("")
	report.AddError(NewConstraintError("type", "type_mismatch", "expected {expected}, got {actual}", map[string]any{
		"expected": expected.String(),
		"actual":   actual.String(),
	}))
	return report
}

// ValueConstraints is the top-level tagged union bound to a DataType: either
// a single JSON-kind constraint, or a disjunction of them.
type ValueConstraints struct {
	Typed *SingleValueConstraints
	AnyOf []*SingleValueConstraints
}

// Validate dispatches to Typed or aggregates across AnyOf members,
// collecting every branch failure into Details when none match (§4.2).
func (c *ValueConstraints) Validate(value any) *ConstraintReport {
	if c.Typed != nil {
		return c.Typed.Validate(value)
	}

	report := NewConstraintReport("")
	for _, member := range c.AnyOf {
		branch := member.Validate(value)
		if branch == nil {
			return nil
		}
		report.AddDetail(branch)
	}
	report.AddError(NewConstraintError("anyOf", "any_of_mismatch", "value does not match any anyOf member"))
	return report
}

var anyOfKnownFields = map[string]struct{}{"anyOf": {}}

// decodeValueConstraints dispatches on the trigger table in §4.1: fields
// must already have every DataType metadata key stripped by the caller.
func decodeValueConstraints(fields map[string]jsontext.Value) (*ValueConstraints, error) {
	if anyOfRaw, ok := fields["anyOf"]; ok {
		if err := rejectUnknownFields(fields, anyOfKnownFields, ""); err != nil {
			return nil, err
		}
		var members []map[string]jsontext.Value
		if err := json.Unmarshal(anyOfRaw, &members); err != nil {
			return nil, NewParseError("/anyOf", "anyOf must be an array of schema objects", ErrNoVariantMatched)
		}
		if len(members) == 0 {
			return nil, NewParseError("/anyOf", "anyOf must have at least one member", ErrEmptyAnyOf)
		}
		parsed := make([]*SingleValueConstraints, 0, len(members))
		for _, m := range members {
			single, err := decodeSingleValueConstraints(m)
			if err != nil {
				return nil, err
			}
			parsed = append(parsed, single)
		}
		return &ValueConstraints{AnyOf: parsed}, nil
	}

	single, err := decodeSingleValueConstraints(fields)
	if err != nil {
		return nil, err
	}
	return &ValueConstraints{Typed: single}, nil
}

// marshalValueConstraints renders c back into the flattened wire form
// decodeValueConstraints consumes.
func marshalValueConstraints(c *ValueConstraints) ([]byte, error) {
	if c.Typed != nil {
		fields, err := marshalSingleValueConstraints(c.Typed)
		if err != nil {
			return nil, err
		}
		return json.Marshal(fields, json.Deterministic(true))
	}

	members := make([]map[string]any, 0, len(c.AnyOf))
	for _, m := range c.AnyOf {
		fields, err := marshalSingleValueConstraints(m)
		if err != nil {
			return nil, err
		}
		members = append(members, fields)
	}
	return json.Marshal(map[string]any{"anyOf": members}, json.Deterministic(true))
}

func marshalSingleValueConstraints(c *SingleValueConstraints) (map[string]any, error) {
	switch c.Kind {
	case KindNull:
		return map[string]any{"type": "null"}, nil
	case KindBoolean:
		return map[string]any{"type": "boolean"}, nil
	case KindObject:
		return map[string]any{"type": "object"}, nil
	case KindNumber:
		fields := c.Number.fieldsMap()
		fields["type"] = "number"
		return fields, nil
	case KindString:
		fields := c.String.fieldsMap()
		fields["type"] = "string"
		return fields, nil
	case KindArray:
		fields, err := c.Array.fieldsMap()
		if err != nil {
			return nil, err
		}
		fields["type"] = "array"
		return fields, nil
	default:
		return nil, NewParseError("", "unrecognized constraint kind", ErrNoVariantMatched)
	}
}

func decodeSingleValueConstraints(fields map[string]jsontext.Value) (*SingleValueConstraints, error) {
	typeRaw, ok := fields["type"]
	if !ok {
		return nil, NewParseError("", "schema is missing a type and is not an anyOf", ErrNoVariantMatched)
	}
	var kind string
	if err := json.Unmarshal(typeRaw, &kind); err != nil {
		return nil, NewParseError("/type", "type must be a JSON string", ErrNoVariantMatched)
	}

	rest := make(map[string]json.RawMessage, len(fields)-1)
	for key, value := range fields {
		if key == "type" {
			continue
		}
		rest[key] = json.RawMessage(value)
	}

	switch kind {
	case "null":
		if err := rejectUnknownRaw(rest, map[string]struct{}{}); err != nil {
			return nil, err
		}
		return &SingleValueConstraints{Kind: KindNull}, nil
	case "boolean":
		if err := rejectUnknownRaw(rest, map[string]struct{}{}); err != nil {
			return nil, err
		}
		return &SingleValueConstraints{Kind: KindBoolean}, nil
	case "object":
		if err := rejectUnknownRaw(rest, map[string]struct{}{}); err != nil {
			return nil, err
		}
		return &SingleValueConstraints{Kind: KindObject}, nil
	case "number":
		number, err := decodeNumberSchema(rest)
		if err != nil {
			return nil, err
		}
		return &SingleValueConstraints{Kind: KindNumber, Number: number}, nil
	case "string":
		str, err := decodeStringSchema(rest)
		if err != nil {
			return nil, err
		}
		return &SingleValueConstraints{Kind: KindString, String: str}, nil
	case "array":
		arr, err := decodeArraySchema(rest)
		if err != nil {
			return nil, err
		}
		return &SingleValueConstraints{Kind: KindArray, Array: arr}, nil
	default:
		return nil, NewParseError("/type", "unrecognized type "+kind, ErrNoVariantMatched)
	}
}
