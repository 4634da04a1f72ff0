package datatype

import (
	"math"

	"github.com/go-json-experiment/json"
)

// NumberSchemaKind discriminates the three ways a number constraint can be
// expressed: range-style bounds, a single literal, or a closed set of
// literals.
type NumberSchemaKind int

const (
	NumberConstrained NumberSchemaKind = iota
	NumberConst
	NumberEnum
)

// NumberSchema constrains a JSON number, matching exactly one of the three
// variants the trigger table in §4.1 dispatches to.
type NumberSchema struct {
	Kind NumberSchemaKind

	// Constrained fields, all optional, only meaningful when Kind == NumberConstrained.
	Minimum          *float64
	Maximum          *float64
	ExclusiveMinimum *float64
	ExclusiveMaximum *float64
	MultipleOf       *float64

	// Const is set when Kind == NumberConst.
	Const float64

	// Enum is set, non-empty, when Kind == NumberEnum.
	Enum []float64
}

var numberConstrainedFields = map[string]struct{}{
	"minimum": {}, "maximum": {}, "exclusiveMinimum": {}, "exclusiveMaximum": {}, "multipleOf": {},
}
var numberConstFields = map[string]struct{}{"const": {}}
var numberEnumFields = map[string]struct{}{"enum": {}}

// decodeNumberSchema builds a NumberSchema from the constraint fields
// remaining after "type" has been consumed by the caller, dispatching on
// the presence of const/enum exactly as the trigger table in §4.1 requires.
func decodeNumberSchema(fields map[string]json.RawMessage) (*NumberSchema, error) {
	if _, ok := fields["const"]; ok {
		if err := rejectUnknownRaw(fields, numberConstFields); err != nil {
			return nil, err
		}
		var v float64
		if err := json.Unmarshal(fields["const"], &v); err != nil {
			return nil, NewParseError("", "number const must be a JSON number", ErrNoVariantMatched)
		}
		return &NumberSchema{Kind: NumberConst, Const: v}, nil
	}

	if _, ok := fields["enum"]; ok {
		if err := rejectUnknownRaw(fields, numberEnumFields); err != nil {
			return nil, err
		}
		var values []float64
		if err := json.Unmarshal(fields["enum"], &values); err != nil {
			return nil, NewParseError("", "number enum must be an array of JSON numbers", ErrNoVariantMatched)
		}
		if len(values) == 0 {
			return nil, NewParseError("", "number enum must not be empty", ErrEmptyEnum)
		}
		return &NumberSchema{Kind: NumberEnum, Enum: values}, nil
	}

	if err := rejectUnknownRaw(fields, numberConstrainedFields); err != nil {
		return nil, err
	}
	s := &NumberSchema{Kind: NumberConstrained}
	for key, dst := range map[string]**float64{
		"minimum": &s.Minimum, "maximum": &s.Maximum,
		"exclusiveMinimum": &s.ExclusiveMinimum, "exclusiveMaximum": &s.ExclusiveMaximum,
		"multipleOf": &s.MultipleOf,
	} {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		var v float64
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, NewParseError("", key+" must be a JSON number", ErrNoVariantMatched)
		}
		*dst = &v
	}
	if s.MultipleOf != nil && *s.MultipleOf <= 0 {
		return nil, NewParseError("/multipleOf", "multipleOf must be strictly positive", ErrNonPositiveMultipleOf)
	}
	return s, nil
}

// fieldsMap renders the schema's own flattened fields (excluding "type",
// added by the caller), mirroring the shape decodeNumberSchema consumes.
func (s *NumberSchema) fieldsMap() map[string]any {
	m := map[string]any{}
	switch s.Kind {
	case NumberConst:
		m["const"] = s.Const
	case NumberEnum:
		m["enum"] = s.Enum
	case NumberConstrained:
		if s.Minimum != nil {
			m["minimum"] = *s.Minimum
		}
		if s.Maximum != nil {
			m["maximum"] = *s.Maximum
		}
		if s.ExclusiveMinimum != nil {
			m["exclusiveMinimum"] = *s.ExclusiveMinimum
		}
		if s.ExclusiveMaximum != nil {
			m["exclusiveMaximum"] = *s.ExclusiveMaximum
		}
		if s.MultipleOf != nil {
			m["multipleOf"] = *s.MultipleOf
		}
	}
	return m
}

// multipleOfTolerance bounds the relative error `multipleOf` allows between
// a value and its nearest exact multiple, since IEEE-754 doubles cannot
// represent every decimal multiple exactly (spec §7).
const multipleOfTolerance = 1e-9

// Validate checks value against the schema, aggregating every failing rule
// into a single report rather than stopping at the first one (§4.2).
func (s *NumberSchema) Validate(value float64) *ConstraintReport {
	report := NewConstraintReport("")

	switch s.Kind {
	case NumberConst:
		if !floatEquals(value, s.Const) {
			report.AddError(NewConstraintError("const", "number_const_mismatch", "value does not match the constant {const}", map[string]any{"const": s.Const}))
		}
	case NumberEnum:
		matched := false
		for _, v := range s.Enum {
			if floatEquals(value, v) {
				matched = true
				break
			}
		}
		if !matched {
			report.AddError(NewConstraintError("enum", "number_not_in_enum", "value does not match any enum member"))
		}
	case NumberConstrained:
		if s.Minimum != nil && value < *s.Minimum {
			report.AddError(NewConstraintError("minimum", "value_below_minimum", "{value} should be at least {minimum}", map[string]any{"value": value, "minimum": *s.Minimum}))
		}
		if s.Maximum != nil && value > *s.Maximum {
			report.AddError(NewConstraintError("maximum", "value_above_maximum", "{value} should be at most {maximum}", map[string]any{"value": value, "maximum": *s.Maximum}))
		}
		if s.ExclusiveMinimum != nil && value <= *s.ExclusiveMinimum {
			report.AddError(NewConstraintError("exclusiveMinimum", "exclusive_minimum_mismatch", "{value} should be greater than {exclusiveMinimum}", map[string]any{"value": value, "exclusiveMinimum": *s.ExclusiveMinimum}))
		}
		if s.ExclusiveMaximum != nil && value >= *s.ExclusiveMaximum {
			report.AddError(NewConstraintError("exclusiveMaximum", "exclusive_maximum_mismatch", "{value} should be less than {exclusiveMaximum}", map[string]any{"value": value, "exclusiveMaximum": *s.ExclusiveMaximum}))
		}
		if s.MultipleOf != nil {
			quotient := value / *s.MultipleOf
			if math.Abs(quotient-math.Round(quotient)) > multipleOfTolerance {
				report.AddError(NewConstraintError("multipleOf", "not_multiple_of", "{value} should be a multiple of {multipleOf}", map[string]any{"value": value, "multipleOf": *s.MultipleOf}))
			}
		}
	}

	return reportOrNil(report)
}
