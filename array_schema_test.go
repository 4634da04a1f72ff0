package datatype

import (
	"testing"

	"github.com/go-json-experiment/json"
	"github.com/stretchr/testify/assert"
)

func decodeArrayFields(t *testing.T, raw string) map[string]json.RawMessage {
	t.Helper()
	var fields map[string]json.RawMessage
	assert.NoError(t, json.Unmarshal([]byte(raw), &fields))
	return fields
}

func TestDecodeArraySchemaConstrained(t *testing.T) {
	fields := decodeArrayFields(t, `{"items":{"type":"number"},"minItems":1,"maxItems":3}`)
	s, err := decodeArraySchema(fields)
	assert.NoError(t, err)
	assert.Equal(t, ArrayConstrained, s.Kind)

	assert.Nil(t, s.Validate([]any{1.0, 2.0}))
	assert.False(t, s.Validate([]any{}).IsValid())
	assert.False(t, s.Validate([]any{1.0, 2.0, 3.0, 4.0}).IsValid())

	report := s.Validate([]any{1.0, "two"})
	assert.False(t, report.IsValid())
	assert.Len(t, report.Details, 1)
	assert.Equal(t, "/1", report.Details[0].InstanceLocation)
}

func TestDecodeArraySchemaTuple(t *testing.T) {
	fields := decodeArrayFields(t, `{"prefixItems":[{"type":"number"},{"type":"string"}],"items":false}`)
	s, err := decodeArraySchema(fields)
	assert.NoError(t, err)
	assert.Equal(t, ArrayTuple, s.Kind)

	assert.Nil(t, s.Validate([]any{1.0, "meters"}))
	assert.False(t, s.Validate([]any{1.0}).IsValid())
	assert.False(t, s.Validate([]any{1.0, "meters", "extra"}).IsValid())
}

func TestDecodeArraySchemaTupleRequiresItemsFalse(t *testing.T) {
	fields := decodeArrayFields(t, `{"prefixItems":[{"type":"number"}]}`)
	_, err := decodeArraySchema(fields)
	assert.ErrorIs(t, err, ErrTupleTrailingItems)

	fields = decodeArrayFields(t, `{"prefixItems":[{"type":"number"}],"items":true}`)
	_, err = decodeArraySchema(fields)
	assert.ErrorIs(t, err, ErrTupleTrailingItems)
}

func TestDecodeArraySchemaConst(t *testing.T) {
	fields := decodeArrayFields(t, `{"const":[]}`)
	s, err := decodeArraySchema(fields)
	assert.NoError(t, err)
	assert.Equal(t, ArrayConst, s.Kind)
	assert.Nil(t, s.Validate([]any{}))
	assert.False(t, s.Validate([]any{1.0}).IsValid())
}

func TestDecodeArraySchemaConstNotEmptyRejected(t *testing.T) {
	fields := decodeArrayFields(t, `{"const":[1,2]}`)
	_, err := decodeArraySchema(fields)
	assert.ErrorIs(t, err, ErrArrayConstNotEmpty)
}
