package datatype

import "errors"

// === Versioned URL errors ===
var (
	// ErrInvalidVersionedURL is returned when a string does not conform to the
	// `<absolute-url>/v/<positive-integer>` grammar.
	ErrInvalidVersionedURL = errors.New("invalid versioned url")

	// ErrInvalidVersionSegment is returned when the trailing `/v/<N>` segment
	// is missing, non-numeric, zero, negative, or has a leading zero.
	ErrInvalidVersionSegment = errors.New("invalid version segment")

	// ErrTrailingSlash is returned when a versioned URL ends with a trailing slash.
	ErrTrailingSlash = errors.New("versioned url must not have a trailing slash")
)

// === Parse errors ===
var (
	// ErrUnknownField is returned when a data type document carries a sibling
	// key that does not belong to any constraint variant.
	ErrUnknownField = errors.New("unrecognized field in data type document")

	// ErrNoVariantMatched is returned when the (type, const, enum, anyOf)
	// dispatch in the data type document does not select any known variant.
	ErrNoVariantMatched = errors.New("data type document did not match any known variant")

	// ErrMissingSchema is returned when `$schema` is absent or not the graph-0.3 data-type URL.
	ErrMissingSchema = errors.New("missing or unrecognized $schema")

	// ErrMissingKind is returned when `kind` is absent or not "dataType".
	ErrMissingKind = errors.New("missing or unrecognized kind")

	// ErrEmptyAnyOf is returned when an `anyOf` constraint has no members.
	ErrEmptyAnyOf = errors.New("anyOf must have at least one member")

	// ErrEmptyEnum is returned when an `enum` constraint has no members.
	ErrEmptyEnum = errors.New("enum must have at least one member")

	// ErrNonPositiveMultipleOf is returned when `multipleOf` is not strictly positive.
	ErrNonPositiveMultipleOf = errors.New("multipleOf must be strictly greater than 0")

	// ErrTupleTrailingItems is returned when a tuple array schema declares `items`
	// as anything other than `false`.
	ErrTupleTrailingItems = errors.New("tuple array schema must set items to false")

	// ErrArrayConstNotEmpty is returned when an array const schema's literal is not `[]`.
	ErrArrayConstNotEmpty = errors.New("array const schema only accepts the empty array literal")
)

// === String format errors ===
var (
	// ErrIPv6AddressFormat is returned when a URL's IPv6 literal host isn't bracketed.
	ErrIPv6AddressFormat = errors.New("ipv6 address format error")

	// ErrInvalidIPv6 is returned when a URL's bracketed host fails IPv6 parsing.
	ErrInvalidIPv6 = errors.New("invalid ipv6 address")
)

// === Conversion expression errors ===
var (
	// ErrEmptyOperands is returned when a binary operator node has a nil operand.
	ErrEmptyOperands = errors.New("operator node is missing an operand")

	// ErrUnknownVariable is returned when a variable leaf does not name "self".
	ErrUnknownVariable = errors.New("unknown variable in conversion expression")

	// ErrUnknownOperator is returned when an operator tag is not one of + - * /.
	ErrUnknownOperator = errors.New("unknown operator in conversion expression")
)

// === Document validation errors ===
var (
	// ErrSelfReferentialAllOf is returned when a data type's allOf lists its own $id.
	ErrSelfReferentialAllOf = errors.New("data type must not list itself in allOf")

	// ErrDuplicateAllOf is returned when a data type's allOf lists the same URL twice.
	ErrDuplicateAllOf = errors.New("data type must not list the same allOf reference twice")
)

// ParseError is returned by document-level decoding when a data type document
// is malformed, has an unrecognized sibling field, or does not match any
// known constraint variant. It always wraps one of the sentinel errors above.
type ParseError struct {
	// Path is a JSON Pointer to the offending location, empty at the document root.
	Path string
	// Reason is a short human-readable explanation.
	Reason string
	// Err is the underlying sentinel error, suitable for errors.Is.
	Err error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return e.Reason
	}
	return e.Path + ": " + e.Reason
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError constructs a ParseError rooted at path with the given reason,
// wrapping the sentinel err for errors.Is/errors.As matching.
func NewParseError(path, reason string, err error) *ParseError {
	return &ParseError{Path: path, Reason: reason, Err: err}
}

// ValidateDataTypeError is returned by DataType.Validate for a document that
// decoded successfully but is structurally invalid in a way JSON decoding
// alone can't catch, mirroring the original's re-exported
// validation::ValidateDataTypeError (distinct from ParseError, which covers
// decode-time failures).
type ValidateDataTypeError struct {
	ID  VersionedURL
	Err error
}

func (e *ValidateDataTypeError) Error() string {
	return e.ID.String() + ": " + e.Err.Error()
}

func (e *ValidateDataTypeError) Unwrap() error {
	return e.Err
}

// DataTypeResolveErrorKind discriminates the two ways closure resolution can fail.
type DataTypeResolveErrorKind int

const (
	// MissingSchemas indicates references were encountered that are absent from the cache.
	MissingSchemas DataTypeResolveErrorKind = iota
	// MissingClosedDataType indicates a closed form was requested before metadata was resolved.
	MissingClosedDataType
)

// DataTypeResolveError is returned by Resolver operations that fail to
// produce closure information, mirroring the two-variant error enum of the
// original ontology resolver.
type DataTypeResolveError struct {
	Kind DataTypeResolveErrorKind
	// Schemas holds the offending URLs when Kind == MissingSchemas.
	Schemas []VersionedURL
	// ID holds the offending URL when Kind == MissingClosedDataType.
	ID VersionedURL
}

func (e *DataTypeResolveError) Error() string {
	switch e.Kind {
	case MissingSchemas:
		return "the data types have unresolved references: " + joinURLs(e.Schemas)
	case MissingClosedDataType:
		return "the closed data type metadata for `" + e.ID.String() + "` is missing"
	default:
		return "data type resolve error"
	}
}

func joinURLs(urls []VersionedURL) string {
	s := ""
	for i, u := range urls {
		if i > 0 {
			s += ", "
		}
		s += u.String()
	}
	return s
}
