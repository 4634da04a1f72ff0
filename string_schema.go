package datatype

import (
	"regexp"

	"github.com/go-json-experiment/json"
)

// StringSchemaKind discriminates the three ways a string constraint can be
// expressed, mirroring NumberSchemaKind.
type StringSchemaKind int

const (
	StringConstrained StringSchemaKind = iota
	StringConst
	StringEnum
)

// StringSchema constrains a JSON string.
type StringSchema struct {
	Kind StringSchemaKind

	MinLength *uint32
	MaxLength *uint32
	Pattern   *string
	Format    *string

	Const string

	// Enum preserves input order, a convenience over the Rust side's
	// HashSet<String> representation (see SPEC_FULL.md §3).
	Enum []string

	compiledPattern *regexp.Regexp
}

var stringConstrainedFields = map[string]struct{}{
	"minLength": {}, "maxLength": {}, "pattern": {}, "format": {},
}
var stringConstFields = map[string]struct{}{"const": {}}
var stringEnumFields = map[string]struct{}{"enum": {}}

func decodeStringSchema(fields map[string]json.RawMessage) (*StringSchema, error) {
	if _, ok := fields["const"]; ok {
		if err := rejectUnknownRaw(fields, stringConstFields); err != nil {
			return nil, err
		}
		var v string
		if err := json.Unmarshal(fields["const"], &v); err != nil {
			return nil, NewParseError("", "string const must be a JSON string", ErrNoVariantMatched)
		}
		return &StringSchema{Kind: StringConst, Const: v}, nil
	}

	if _, ok := fields["enum"]; ok {
		if err := rejectUnknownRaw(fields, stringEnumFields); err != nil {
			return nil, err
		}
		var values []string
		if err := json.Unmarshal(fields["enum"], &values); err != nil {
			return nil, NewParseError("", "string enum must be an array of JSON strings", ErrNoVariantMatched)
		}
		if len(values) == 0 {
			return nil, NewParseError("", "string enum must not be empty", ErrEmptyEnum)
		}
		return &StringSchema{Kind: StringEnum, Enum: values}, nil
	}

	if err := rejectUnknownRaw(fields, stringConstrainedFields); err != nil {
		return nil, err
	}
	s := &StringSchema{Kind: StringConstrained}
	if raw, ok := fields["minLength"]; ok {
		var v uint32
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, NewParseError("", "minLength must be a non-negative integer", ErrNoVariantMatched)
		}
		s.MinLength = &v
	}
	if raw, ok := fields["maxLength"]; ok {
		var v uint32
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, NewParseError("", "maxLength must be a non-negative integer", ErrNoVariantMatched)
		}
		s.MaxLength = &v
	}
	if raw, ok := fields["pattern"]; ok {
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, NewParseError("", "pattern must be a JSON string", ErrNoVariantMatched)
		}
		compiled, err := regexp.Compile(v)
		if err != nil {
			return nil, NewParseError("/pattern", "invalid regular expression pattern", ErrNoVariantMatched)
		}
		s.Pattern = &v
		s.compiledPattern = compiled
	}
	if raw, ok := fields["format"]; ok {
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, NewParseError("", "format must be a JSON string", ErrNoVariantMatched)
		}
		s.Format = &v
	}
	return s, nil
}

// fieldsMap renders the schema's own flattened fields (excluding "type").
func (s *StringSchema) fieldsMap() map[string]any {
	m := map[string]any{}
	switch s.Kind {
	case StringConst:
		m["const"] = s.Const
	case StringEnum:
		m["enum"] = s.Enum
	case StringConstrained:
		if s.MinLength != nil {
			m["minLength"] = *s.MinLength
		}
		if s.MaxLength != nil {
			m["maxLength"] = *s.MaxLength
		}
		if s.Pattern != nil {
			m["pattern"] = *s.Pattern
		}
		if s.Format != nil {
			m["format"] = *s.Format
		}
	}
	return m
}

// Validate checks value against the schema, aggregating every failing rule
// rather than stopping at the first.
func (s *StringSchema) Validate(value string) *ConstraintReport {
	return s.validateWith(value, stringFormats, false)
}

// validateWith is Validate generalized over a caller-supplied format
// registry, used by Validator (validator.go) to honor RegisterFormat-style
// overrides and strict unknown-format handling.
func (s *StringSchema) validateWith(value string, formats map[string]func(string) bool, strictUnknown bool) *ConstraintReport {
	report := NewConstraintReport("")

	switch s.Kind {
	case StringConst:
		if value != s.Const {
			report.AddError(NewConstraintError("const", "string_const_mismatch", "value does not match the constant {const}", map[string]any{"const": s.Const}))
		}
	case StringEnum:
		matched := false
		for _, v := range s.Enum {
			if value == v {
				matched = true
				break
			}
		}
		if !matched {
			report.AddError(NewConstraintError("enum", "string_not_in_enum", "value does not match any enum member"))
		}
	case StringConstrained:
		length := runeLength(value)
		if s.MinLength != nil && length < int(*s.MinLength) {
			report.AddError(NewConstraintError("minLength", "string_too_short", "value should be at least {minLength} characters", map[string]any{"minLength": *s.MinLength, "length": length}))
		}
		if s.MaxLength != nil && length > int(*s.MaxLength) {
			report.AddError(NewConstraintError("maxLength", "string_too_long", "value should be at most {maxLength} characters", map[string]any{"maxLength": *s.MaxLength, "length": length}))
		}
		if s.compiledPattern != nil && !s.compiledPattern.MatchString(value) {
			report.AddError(NewConstraintError("pattern", "pattern_mismatch", "value does not match the required pattern {pattern}", map[string]any{"pattern": *s.Pattern}))
		}
		if s.Format != nil {
			if err := evaluateFormatWith(formats, strictUnknown, *s.Format, value); err != nil {
				report.AddError(err)
			}
		}
	}

	return reportOrNil(report)
}
