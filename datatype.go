package datatype

import (
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// dataTypeSchemaURL is the only accepted $schema value for a data type document.
const dataTypeSchemaURL = "https://blockprotocol.org/types/modules/graph/0.3/schema/data-type"

// dataTypeKindLiteral is the only accepted kind value for a data type document.
const dataTypeKindLiteral = "dataType"

// DataType is a versioned, identifiable schema describing the permissible
// shape of a JSON value, optionally composed via inheritance (AllOf) and
// bound to ValueConstraints.
type DataType struct {
	ID          VersionedURL
	Title       string
	TitlePlural *string
	Description *string
	Label       ValueLabel
	AllOf       []DataTypeReference
	Abstract    bool
	Constraints *ValueConstraints
}

var dataTypeMetaFields = map[string]struct{}{
	"$schema": {}, "kind": {}, "$id": {}, "title": {}, "titlePlural": {},
	"description": {}, "label": {}, "allOf": {}, "abstract": {},
}

// dataTypeWireMeta mirrors the document's metadata envelope for marshaling;
// constraint fields are merged in separately since ValueConstraints owns
// its own flattened (de)serialization.
type dataTypeWireMeta struct {
	Schema      string               `json:"$schema"`
	Kind        string               `json:"kind"`
	ID          VersionedURL         `json:"$id"`
	Title       string               `json:"title"`
	TitlePlural *string              `json:"titlePlural,omitempty"`
	Description *string              `json:"description,omitempty"`
	Label       *ValueLabel          `json:"label,omitempty"`
	AllOf       []DataTypeReference  `json:"allOf,omitempty"`
	Abstract    bool                 `json:"abstract"`
}

// MarshalJSON renders the metadata envelope and the flattened constraint
// fields as a single JSON object, round-trip safe: optional fields absent
// on parse stay absent on the wire.
func (d *DataType) MarshalJSON() ([]byte, error) {
	meta := dataTypeWireMeta{
		Schema:      dataTypeSchemaURL,
		Kind:        dataTypeKindLiteral,
		ID:          d.ID,
		Title:       d.Title,
		TitlePlural: d.TitlePlural,
		Description: d.Description,
		Abstract:    d.Abstract,
	}
	if !d.Label.IsEmpty() {
		meta.Label = &d.Label
	}
	if len(d.AllOf) > 0 {
		meta.AllOf = d.AllOf
	}

	metaBytes, err := json.Marshal(meta)
	if err != nil {
		return nil, err
	}
	var result map[string]jsontext.Value
	if err := json.Unmarshal(metaBytes, &result); err != nil {
		return nil, err
	}

	constraintBytes, err := marshalValueConstraints(d.Constraints)
	if err != nil {
		return nil, err
	}
	var constraintFields map[string]jsontext.Value
	if err := json.Unmarshal(constraintBytes, &constraintFields); err != nil {
		return nil, err
	}
	for key, value := range constraintFields {
		result[key] = value
	}

	return json.Marshal(result, json.Deterministic(true))
}

// UnmarshalJSON requires strict conformance to §4.1: the metadata envelope
// validates first, then every remaining sibling is handed to ValueConstraints
// for trigger-table dispatch; anything left over there is a parse failure.
func (d *DataType) UnmarshalJSON(data []byte) error {
	var fields map[string]jsontext.Value
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	schemaRaw, ok := fields["$schema"]
	if !ok {
		return NewParseError("/$schema", "missing $schema", ErrMissingSchema)
	}
	var schema string
	if err := json.Unmarshal(schemaRaw, &schema); err != nil || schema != dataTypeSchemaURL {
		return NewParseError("/$schema", "unrecognized $schema", ErrMissingSchema)
	}

	kindRaw, ok := fields["kind"]
	if !ok {
		return NewParseError("/kind", "missing kind", ErrMissingKind)
	}
	var kind string
	if err := json.Unmarshal(kindRaw, &kind); err != nil || kind != dataTypeKindLiteral {
		return NewParseError("/kind", "unrecognized kind", ErrMissingKind)
	}

	idRaw, ok := fields["$id"]
	if !ok {
		return NewParseError("/$id", "missing $id", ErrInvalidVersionedURL)
	}
	var id VersionedURL
	if err := json.Unmarshal(idRaw, &id); err != nil {
		return err
	}

	titleRaw, ok := fields["title"]
	if !ok {
		return NewParseError("/title", "missing title", ErrUnknownField)
	}
	var title string
	if err := json.Unmarshal(titleRaw, &title); err != nil {
		return err
	}

	dt := &DataType{ID: id, Title: title}

	if raw, ok := fields["titlePlural"]; ok {
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		dt.TitlePlural = &v
	}
	if raw, ok := fields["description"]; ok {
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		dt.Description = &v
	}
	if raw, ok := fields["label"]; ok {
		var v ValueLabel
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		dt.Label = v
	}
	if raw, ok := fields["allOf"]; ok {
		var refs []DataTypeReference
		if err := json.Unmarshal(raw, &refs); err != nil {
			return err
		}
		dt.AllOf = refs
	}
	if raw, ok := fields["abstract"]; ok {
		var v bool
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		dt.Abstract = v
	}

	constraintFields := make(map[string]jsontext.Value, len(fields))
	for key, value := range fields {
		if _, known := dataTypeMetaFields[key]; known {
			continue
		}
		constraintFields[key] = value
	}

	constraints, err := decodeValueConstraints(constraintFields)
	if err != nil {
		return err
	}
	dt.Constraints = constraints

	*d = *dt
	return nil
}

// Validate checks structural invariants that a syntactically valid document
// can still violate: self-reference and duplicate entries in allOf.
func (d *DataType) Validate() error {
	seen := make(map[string]struct{}, len(d.AllOf))
	for _, ref := range d.AllOf {
		url := ref.URL.String()
		if ref.URL.Equal(d.ID) {
			return &ValidateDataTypeError{ID: d.ID, Err: ErrSelfReferentialAllOf}
		}
		if _, dup := seen[url]; dup {
			return &ValidateDataTypeError{ID: d.ID, Err: ErrDuplicateAllOf}
		}
		seen[url] = struct{}{}
	}
	return nil
}
