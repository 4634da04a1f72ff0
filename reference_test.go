package datatype

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDataTypeReferenceRoundTrip(t *testing.T) {
	raw := `{"$ref":"https://blockprotocol.org/@alice/types/data-type/length/v/1"}`

	var ref DataTypeReference
	assert.NoError(t, json.Unmarshal([]byte(raw), &ref))
	assert.Equal(t, uint32(1), ref.URL.Version())

	out, err := json.Marshal(ref)
	assert.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
}

func TestDataTypeReferenceRejectsUnknownField(t *testing.T) {
	raw := `{"$ref":"https://blockprotocol.org/@alice/types/data-type/length/v/1","extra":true}`

	var ref DataTypeReference
	err := json.Unmarshal([]byte(raw), &ref)
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestDataTypeReferenceRequiresRef(t *testing.T) {
	var ref DataTypeReference
	err := json.Unmarshal([]byte(`{}`), &ref)
	assert.Error(t, err)
}
