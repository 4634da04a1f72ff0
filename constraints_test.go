package datatype

import (
	"testing"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/stretchr/testify/assert"
)

func decodeConstraintValueFields(t *testing.T, raw string) map[string]jsontext.Value {
	t.Helper()
	var fields map[string]jsontext.Value
	assert.NoError(t, json.Unmarshal([]byte(raw), &fields))
	return fields
}

func TestDecodeSingleValueConstraintsNullBooleanObject(t *testing.T) {
	for _, kind := range []string{"null", "boolean", "object"} {
		fields := decodeConstraintValueFields(t, `{"type":"`+kind+`"}`)
		c, err := decodeSingleValueConstraints(fields)
		assert.NoError(t, err)
		assert.NotNil(t, c)
	}
}

func TestDecodeSingleValueConstraintsRejectsSiblingsOnBareKinds(t *testing.T) {
	fields := decodeConstraintValueFields(t, `{"type":"null","extra":true}`)
	_, err := decodeSingleValueConstraints(fields)
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestDecodeSingleValueConstraintsRequiresType(t *testing.T) {
	fields := decodeConstraintValueFields(t, `{"minimum":0}`)
	_, err := decodeSingleValueConstraints(fields)
	assert.ErrorIs(t, err, ErrNoVariantMatched)
}

func TestValueConstraintsAnyOf(t *testing.T) {
	fields := decodeConstraintValueFields(t, `{"anyOf":[{"type":"number"},{"type":"string"}]}`)
	vc, err := decodeValueConstraints(fields)
	assert.NoError(t, err)

	assert.Nil(t, vc.Validate(1.0))
	assert.Nil(t, vc.Validate("x"))

	report := vc.Validate(true)
	assert.False(t, report.IsValid())
	assert.Len(t, report.Details, 2)
	assert.Contains(t, report.Errors, "anyOf")
}

func TestValueConstraintsAnyOfRequiresNonEmpty(t *testing.T) {
	fields := decodeConstraintValueFields(t, `{"anyOf":[]}`)
	_, err := decodeValueConstraints(fields)
	assert.ErrorIs(t, err, ErrEmptyAnyOf)
}

func TestValueConstraintsAnyOfRejectsSiblingKeys(t *testing.T) {
	fields := decodeConstraintValueFields(t, `{"anyOf":[{"type":"number"}],"additional":false}`)
	_, err := decodeValueConstraints(fields)
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestMarshalValueConstraintsRoundTrip(t *testing.T) {
	fields := decodeConstraintValueFields(t, `{"type":"number","minimum":0,"maximum":10}`)
	vc, err := decodeValueConstraints(fields)
	assert.NoError(t, err)

	out, err := marshalValueConstraints(vc)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"type":"number","minimum":0,"maximum":10}`, string(out))
}
