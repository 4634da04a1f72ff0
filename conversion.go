package datatype

import (
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Operator names a binary arithmetic node in a ConversionExpression tree.
type Operator int

const (
	OpAdd Operator = iota
	OpSubtract
	OpMultiply
	OpDivide
)

func (op Operator) apply(lhs, rhs float64) float64 {
	switch op {
	case OpAdd:
		return lhs + rhs
	case OpSubtract:
		return lhs - rhs
	case OpMultiply:
		return lhs * rhs
	case OpDivide:
		return lhs / rhs // IEEE-754 semantics: division by zero yields ±Inf or NaN, not an error.
	default:
		return 0
	}
}

// Value is a leaf of a ConversionExpression: either a literal constant or
// the bound variable "self".
type Value struct {
	IsVariable bool
	Const      float64
}

// ConversionExpression is a small arithmetic tree over a single free
// variable "self", used to convert between related numeric data types.
type ConversionExpression struct {
	// Leaf holds the value when this node has no operator children.
	Leaf *Value

	// Operator nodes recurse into exactly two operands.
	Op   *Operator
	LHS  *ConversionExpression
	RHS  *ConversionExpression
}

// Validate rejects structurally malformed trees before evaluation is ever
// attempted, so a bad document fails at parse/validate time rather than
// panicking inside Evaluate.
func (e *ConversionExpression) Validate() error {
	if e == nil {
		return ErrEmptyOperands
	}
	if e.Leaf != nil {
		if e.Op != nil || e.LHS != nil || e.RHS != nil {
			return ErrUnknownOperator
		}
		return nil
	}
	if e.Op == nil {
		return ErrUnknownOperator
	}
	if e.LHS == nil || e.RHS == nil {
		return ErrEmptyOperands
	}
	if err := e.LHS.Validate(); err != nil {
		return err
	}
	return e.RHS.Validate()
}

// Evaluate recursively computes the tree with self bound to the variable
// leaf. Validate should be called once up front; Evaluate assumes a
// structurally sound tree.
func (e *ConversionExpression) Evaluate(self float64) float64 {
	if e.Leaf != nil {
		if e.Leaf.IsVariable {
			return self
		}
		return e.Leaf.Const
	}
	return e.Op.apply(e.LHS.Evaluate(self), e.RHS.Evaluate(self))
}

type conversionExpressionWire struct {
	Const    *float64                `json:"const,omitempty"`
	Variable *string                 `json:"variable,omitempty"`
	Operator *string                 `json:"operator,omitempty"`
	Left     *ConversionExpression   `json:"left,omitempty"`
	Right    *ConversionExpression   `json:"right,omitempty"`
}

var operatorSymbols = map[string]Operator{"+": OpAdd, "-": OpSubtract, "*": OpMultiply, "/": OpDivide}
var operatorNames = map[Operator]string{OpAdd: "+", OpSubtract: "-", OpMultiply: "*", OpDivide: "/"}

// MarshalJSON renders a leaf as {"const": n} or {"variable": "self"}, and an
// operator node as {"operator": "+", "left": ..., "right": ...}.
func (e *ConversionExpression) MarshalJSON() ([]byte, error) {
	wire := conversionExpressionWire{}
	if e.Leaf != nil {
		if e.Leaf.IsVariable {
			self := "self"
			wire.Variable = &self
		} else {
			wire.Const = &e.Leaf.Const
		}
		return json.Marshal(wire)
	}
	symbol := operatorNames[*e.Op]
	wire.Operator = &symbol
	wire.Left = e.LHS
	wire.Right = e.RHS
	return json.Marshal(wire)
}

// UnmarshalJSON parses either leaf shape or an operator node, rejecting
// unknown variable names and operator tags immediately.
func (e *ConversionExpression) UnmarshalJSON(data []byte) error {
	var fields map[string]jsontext.Value
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	if raw, ok := fields["variable"]; ok {
		var name string
		if err := json.Unmarshal(raw, &name); err != nil {
			return err
		}
		if name != "self" {
			return NewParseError("/variable", "unknown variable "+name, ErrUnknownVariable)
		}
		e.Leaf = &Value{IsVariable: true}
		return nil
	}

	if raw, ok := fields["const"]; ok {
		var v float64
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		e.Leaf = &Value{Const: v}
		return nil
	}

	opRaw, ok := fields["operator"]
	if !ok {
		return NewParseError("", "conversion expression requires const, variable, or operator", ErrUnknownOperator)
	}
	var symbol string
	if err := json.Unmarshal(opRaw, &symbol); err != nil {
		return err
	}
	op, ok := operatorSymbols[symbol]
	if !ok {
		return NewParseError("/operator", "unknown operator "+symbol, ErrUnknownOperator)
	}

	leftRaw, ok := fields["left"]
	if !ok {
		return NewParseError("/left", "operator node is missing left operand", ErrEmptyOperands)
	}
	rightRaw, ok := fields["right"]
	if !ok {
		return NewParseError("/right", "operator node is missing right operand", ErrEmptyOperands)
	}

	var left, right ConversionExpression
	if err := json.Unmarshal(leftRaw, &left); err != nil {
		return err
	}
	if err := json.Unmarshal(rightRaw, &right); err != nil {
		return err
	}

	e.Op = &op
	e.LHS = &left
	e.RHS = &right
	return nil
}

// ConversionDefinition is a from/to pair of expressions converting a value
// between two related numeric data types.
type ConversionDefinition struct {
	From *ConversionExpression `json:"from"`
	To   *ConversionExpression `json:"to"`
}

// Validate checks both directions are structurally sound.
func (c *ConversionDefinition) Validate() error {
	if err := c.From.Validate(); err != nil {
		return err
	}
	return c.To.Validate()
}

// Conversions bundles the named conversions attached to a data type, keyed
// by the target data type's Versioned URL, mirroring the Rust original's
// `Conversions` map re-exported from the `conversion` submodule.
type Conversions map[string]*ConversionDefinition
