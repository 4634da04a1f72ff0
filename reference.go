package datatype

import (
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// DataTypeReference wraps a VersionedURL occurring inside an allOf element,
// giving the parent reference its own strict {"$ref": "<versioned-url>"}
// (de)serialization instead of a bare string, mirroring the original
// ontology type-system's `DataTypeReference`.
type DataTypeReference struct {
	URL VersionedURL
}

type dataTypeReferenceWire struct {
	Ref VersionedURL `json:"$ref"`
}

// MarshalJSON renders the reference as {"$ref": "<versioned-url>"}.
func (r DataTypeReference) MarshalJSON() ([]byte, error) {
	return json.Marshal(dataTypeReferenceWire{Ref: r.URL})
}

var refKnownFields = map[string]struct{}{"$ref": {}}

// UnmarshalJSON parses {"$ref": "<versioned-url>"}, rejecting unknown siblings,
// mirroring the strict-field checking idiom used throughout this module's
// decoders (see rejectUnknownFields in utils.go).
func (r *DataTypeReference) UnmarshalJSON(data []byte) error {
	var fields map[string]jsontext.Value
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if err := rejectUnknownFields(fields, refKnownFields, ""); err != nil {
		return err
	}

	raw, ok := fields["$ref"]
	if !ok {
		return NewParseError("", "data type reference requires $ref", ErrUnknownField)
	}
	var u VersionedURL
	if err := json.Unmarshal(raw, &u); err != nil {
		return err
	}
	r.URL = u
	return nil
}
