package datatype

import (
	"testing"

	"github.com/go-json-experiment/json"
	"github.com/stretchr/testify/assert"
)

func decodeStringFields(t *testing.T, raw string) map[string]json.RawMessage {
	t.Helper()
	var fields map[string]json.RawMessage
	assert.NoError(t, json.Unmarshal([]byte(raw), &fields))
	return fields
}

func TestDecodeStringSchemaConstrained(t *testing.T) {
	fields := decodeStringFields(t, `{"minLength":2,"maxLength":5,"pattern":"^[a-z]+$"}`)
	s, err := decodeStringSchema(fields)
	assert.NoError(t, err)

	assert.Nil(t, s.Validate("abc"))
	assert.False(t, s.Validate("a").IsValid())
	assert.False(t, s.Validate("abcdefgh").IsValid())
	assert.False(t, s.Validate("ABC").IsValid())
}

func TestDecodeStringSchemaRuneLength(t *testing.T) {
	fields := decodeStringFields(t, `{"minLength":2}`)
	s, err := decodeStringSchema(fields)
	assert.NoError(t, err)
	// "é" as a single precomposed rune counts as length 1, not 2 bytes.
	assert.False(t, s.Validate("é").IsValid())
	assert.Nil(t, s.Validate("éé"))
}

func TestDecodeStringSchemaFormat(t *testing.T) {
	fields := decodeStringFields(t, `{"format":"email"}`)
	s, err := decodeStringSchema(fields)
	assert.NoError(t, err)
	assert.Nil(t, s.Validate("a@example.com"))
	assert.False(t, s.Validate("not-an-email").IsValid())
}

func TestDecodeStringSchemaUnrecognizedFormatAccepted(t *testing.T) {
	fields := decodeStringFields(t, `{"format":"made-up-format"}`)
	s, err := decodeStringSchema(fields)
	assert.NoError(t, err)
	assert.Nil(t, s.Validate("anything at all"))
}

func TestDecodeStringSchemaInvalidPatternRejected(t *testing.T) {
	fields := decodeStringFields(t, `{"pattern":"("}`)
	_, err := decodeStringSchema(fields)
	assert.Error(t, err)
}

func TestDecodeStringSchemaConst(t *testing.T) {
	fields := decodeStringFields(t, `{"const":"meters"}`)
	s, err := decodeStringSchema(fields)
	assert.NoError(t, err)
	assert.Equal(t, StringConst, s.Kind)
	assert.Nil(t, s.Validate("meters"))
	assert.False(t, s.Validate("feet").IsValid())
}

func TestDecodeStringSchemaEnum(t *testing.T) {
	fields := decodeStringFields(t, `{"enum":["a","b"]}`)
	s, err := decodeStringSchema(fields)
	assert.NoError(t, err)
	assert.Equal(t, StringEnum, s.Kind)
	assert.Nil(t, s.Validate("a"))
	assert.False(t, s.Validate("c").IsValid())
}
