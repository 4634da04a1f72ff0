package datatype

import (
	"strconv"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/kaptinlin/jsonpointer"
)

// ArraySchemaKind discriminates the three array constraint shapes.
type ArraySchemaKind int

const (
	ArrayConstrained ArraySchemaKind = iota
	ArrayTuple
	ArrayConst
)

// ArraySchema constrains a JSON array.
type ArraySchema struct {
	Kind ArraySchemaKind

	// Constrained fields.
	Items    *SingleValueConstraints
	MinItems *uint32
	MaxItems *uint32

	// Tuple fields: ordered per-position schemas; trailing elements are
	// always rejected (items:false is required on the wire, not stored).
	PrefixItems []*SingleValueConstraints
}

var arrayConstrainedFields = map[string]struct{}{"items": {}, "minItems": {}, "maxItems": {}}
var arrayTupleFields = map[string]struct{}{"prefixItems": {}, "items": {}}
var arrayConstFields = map[string]struct{}{"const": {}}

func decodeArraySchema(fields map[string]json.RawMessage) (*ArraySchema, error) {
	if rawConst, ok := fields["const"]; ok {
		if err := rejectUnknownRaw(fields, arrayConstFields); err != nil {
			return nil, err
		}
		var values []any
		if err := json.Unmarshal(rawConst, &values); err != nil {
			return nil, NewParseError("/const", "array const must be a JSON array", ErrNoVariantMatched)
		}
		if len(values) != 0 {
			return nil, NewParseError("/const", "array const only accepts the empty array literal", ErrArrayConstNotEmpty)
		}
		return &ArraySchema{Kind: ArrayConst}, nil
	}

	if rawPrefix, ok := fields["prefixItems"]; ok {
		if err := rejectUnknownRaw(fields, arrayTupleFields); err != nil {
			return nil, err
		}
		itemsRaw, ok := fields["items"]
		if !ok {
			return nil, NewParseError("/items", "tuple array schema requires items: false", ErrTupleTrailingItems)
		}
		var itemsFalse bool
		if err := json.Unmarshal(itemsRaw, &itemsFalse); err != nil || itemsFalse {
			return nil, NewParseError("/items", "tuple array schema must set items to false", ErrTupleTrailingItems)
		}

		var rawMembers []map[string]jsontext.Value
		if err := json.Unmarshal(rawPrefix, &rawMembers); err != nil {
			return nil, NewParseError("/prefixItems", "prefixItems must be an array of schema objects", ErrNoVariantMatched)
		}
		members := make([]*SingleValueConstraints, 0, len(rawMembers))
		for _, m := range rawMembers {
			single, err := decodeSingleValueConstraints(m)
			if err != nil {
				return nil, err
			}
			members = append(members, single)
		}
		return &ArraySchema{Kind: ArrayTuple, PrefixItems: members}, nil
	}

	if err := rejectUnknownRaw(fields, arrayConstrainedFields); err != nil {
		return nil, err
	}
	s := &ArraySchema{Kind: ArrayConstrained}
	if rawItems, ok := fields["items"]; ok {
		var itemFields map[string]jsontext.Value
		if err := json.Unmarshal(rawItems, &itemFields); err != nil {
			return nil, NewParseError("/items", "items must be a schema object", ErrNoVariantMatched)
		}
		single, err := decodeSingleValueConstraints(itemFields)
		if err != nil {
			return nil, err
		}
		s.Items = single
	}
	if raw, ok := fields["minItems"]; ok {
		var v uint32
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, NewParseError("/minItems", "minItems must be a non-negative integer", ErrNoVariantMatched)
		}
		s.MinItems = &v
	}
	if raw, ok := fields["maxItems"]; ok {
		var v uint32
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, NewParseError("/maxItems", "maxItems must be a non-negative integer", ErrNoVariantMatched)
		}
		s.MaxItems = &v
	}
	return s, nil
}

// fieldsMap renders the schema's own flattened fields (excluding "type"),
// recursively marshaling any nested item/prefix schemas.
func (s *ArraySchema) fieldsMap() (map[string]any, error) {
	m := map[string]any{}
	switch s.Kind {
	case ArrayConst:
		m["const"] = []any{}
	case ArrayTuple:
		prefixes := make([]map[string]any, 0, len(s.PrefixItems))
		for _, p := range s.PrefixItems {
			fields, err := marshalSingleValueConstraints(p)
			if err != nil {
				return nil, err
			}
			prefixes = append(prefixes, fields)
		}
		m["prefixItems"] = prefixes
		m["items"] = false
	case ArrayConstrained:
		if s.Items != nil {
			fields, err := marshalSingleValueConstraints(s.Items)
			if err != nil {
				return nil, err
			}
			m["items"] = fields
		}
		if s.MinItems != nil {
			m["minItems"] = *s.MinItems
		}
		if s.MaxItems != nil {
			m["maxItems"] = *s.MaxItems
		}
	}
	return m, nil
}

// Validate checks value (a decoded JSON array) against the schema.
func (s *ArraySchema) Validate(value []any) *ConstraintReport {
	return s.validateWith(value, stringFormats, false)
}

// validateWith is Validate generalized over a caller-supplied format
// registry, threaded down into element/prefix schemas so a Validator's
// RegisterFormat-style overrides reach strings nested inside arrays/tuples.
func (s *ArraySchema) validateWith(value []any, formats map[string]func(string) bool, strictUnknown bool) *ConstraintReport {
	report := NewConstraintReport("")

	switch s.Kind {
	case ArrayConst:
		if len(value) != 0 {
			report.AddError(NewConstraintError("const", "array_const_mismatch", "value must be the empty array"))
		}
	case ArrayTuple:
		if len(value) != len(s.PrefixItems) {
			report.AddError(NewConstraintError("prefixItems", "array_length_mismatch", "expected exactly {length} elements, got {actual}", map[string]any{
				"length": len(s.PrefixItems), "actual": len(value),
			}))
			return reportOrNil(report)
		}
		for i, item := range value {
			if sub := s.PrefixItems[i].validateWith(item, formats, strictUnknown); sub != nil {
				sub.InstanceLocation = elementPointer(i) + sub.InstanceLocation
				report.AddDetail(sub)
			}
		}
	case ArrayConstrained:
		if s.MinItems != nil && len(value) < int(*s.MinItems) {
			report.AddError(NewConstraintError("minItems", "array_too_short", "expected at least {minItems} elements, got {actual}", map[string]any{
				"minItems": *s.MinItems, "actual": len(value),
			}))
		}
		if s.MaxItems != nil && len(value) > int(*s.MaxItems) {
			report.AddError(NewConstraintError("maxItems", "array_too_long", "expected at most {maxItems} elements, got {actual}", map[string]any{
				"maxItems": *s.MaxItems, "actual": len(value),
			}))
		}
		if s.Items != nil {
			for i, item := range value {
				if sub := s.Items.validateWith(item, formats, strictUnknown); sub != nil {
					sub.InstanceLocation = elementPointer(i) + sub.InstanceLocation
					report.AddDetail(sub)
				}
			}
		}
	}

	return reportOrNil(report)
}

// elementPointer renders the JSON Pointer segment for array index i, reusing
// the teacher's jsonpointer.Format (grounded on schema.go's Location-building
// idiom) instead of hand-formatting "/"+strconv.Itoa(i).
func elementPointer(i int) string {
	return jsonpointer.Format(strconv.Itoa(i))
}
