package datatype

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConversionExpressionLeafRoundTrip(t *testing.T) {
	var e ConversionExpression
	assert.NoError(t, json.Unmarshal([]byte(`{"const":1.5}`), &e))
	assert.NoError(t, e.Validate())
	assert.InDelta(t, 1.5, e.Evaluate(0), 1e-12)

	out, err := json.Marshal(&e)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"const":1.5}`, string(out))
}

func TestConversionExpressionVariableLeaf(t *testing.T) {
	var e ConversionExpression
	assert.NoError(t, json.Unmarshal([]byte(`{"variable":"self"}`), &e))
	assert.Equal(t, 7.0, e.Evaluate(7))
}

func TestConversionExpressionUnknownVariableRejected(t *testing.T) {
	var e ConversionExpression
	err := json.Unmarshal([]byte(`{"variable":"other"}`), &e)
	assert.ErrorIs(t, err, ErrUnknownVariable)
}

func TestConversionExpressionOperatorTree(t *testing.T) {
	// (self * 9/5) + 32, Celsius to Fahrenheit
	raw := `{
		"operator": "+",
		"left": {
			"operator": "*",
			"left": {"variable": "self"},
			"right": {"const": 1.8}
		},
		"right": {"const": 32}
	}`
	var e ConversionExpression
	assert.NoError(t, json.Unmarshal([]byte(raw), &e))
	assert.NoError(t, e.Validate())
	assert.InDelta(t, 212.0, e.Evaluate(100), 1e-9)
}

func TestConversionExpressionDivisionByZeroYieldsInf(t *testing.T) {
	e := &ConversionExpression{
		Op:  opPtr(OpDivide),
		LHS: &ConversionExpression{Leaf: &Value{Const: 1}},
		RHS: &ConversionExpression{Leaf: &Value{Const: 0}},
	}
	assert.NoError(t, e.Validate())
	result := e.Evaluate(0)
	assert.True(t, result > 0 && result*2 == result) // +Inf
}

func TestConversionExpressionUnknownOperatorRejected(t *testing.T) {
	var e ConversionExpression
	err := json.Unmarshal([]byte(`{"operator":"%","left":{"const":1},"right":{"const":2}}`), &e)
	assert.ErrorIs(t, err, ErrUnknownOperator)
}

func TestConversionExpressionValidateRejectsMissingOperands(t *testing.T) {
	e := &ConversionExpression{Op: opPtr(OpAdd), LHS: &ConversionExpression{Leaf: &Value{Const: 1}}}
	assert.ErrorIs(t, e.Validate(), ErrEmptyOperands)
}

func TestConversionDefinitionValidate(t *testing.T) {
	def := &ConversionDefinition{
		From: &ConversionExpression{Leaf: &Value{IsVariable: true}},
		To:   &ConversionExpression{Leaf: &Value{Const: 1}},
	}
	assert.NoError(t, def.Validate())
}

func opPtr(op Operator) *Operator {
	return &op
}
