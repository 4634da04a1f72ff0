// Package datatype implements the data type layer of the graph ontology
// type system: parsing and strict validation of data type documents,
// closure resolution across allOf inheritance chains, and value
// constraint checking against a data type's own constraints (constraints
// of allOf ancestors are not applied).
package datatype
