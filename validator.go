package datatype

import "github.com/go-json-experiment/json"

// Validator is the document-level facade: parse a data type document, then
// check arbitrary JSON values against its constraints. It owns the
// format-checker registry so callers can widen or override `format` tags
// without touching the package-level defaults, mirroring the Compiler's
// customFormats/RegisterFormat pattern in the teacher library.
type Validator struct {
	formats       map[string]func(string) bool
	strictUnknown bool // true: reject formats absent from the registry instead of accepting them
}

// ValidatorOption configures a Validator at construction time.
type ValidatorOption func(*Validator)

// WithFormat registers or overrides a named string-format checker.
func WithFormat(name string, check func(string) bool) ValidatorOption {
	return func(v *Validator) {
		v.formats[name] = check
	}
}

// WithStrictUnknownFormats makes ValidateConstraints fail closed on a
// `format` tag absent from the registry, instead of the default
// accept-anything behavior spec.md §4.2 mandates.
func WithStrictUnknownFormats() ValidatorOption {
	return func(v *Validator) {
		v.strictUnknown = true
	}
}

// NewValidator builds a Validator seeded with the package's default format
// registry, then applies opts.
func NewValidator(opts ...ValidatorOption) *Validator {
	v := &Validator{formats: make(map[string]func(string) bool, len(stringFormats))}
	for name, check := range stringFormats {
		v.formats[name] = check
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// ValidateDataType parses and structurally validates a data type document:
// envelope and constraint-variant failures surface as errors wrapping a
// *ParseError (malformed JSON and wrongly typed metadata values surface as
// the JSON decoder's own error), and structural violations JSON decoding
// alone can't catch (self-reference, duplicate allOf entries) surface as
// *ValidateDataTypeError.
func (v *Validator) ValidateDataType(doc []byte) (*DataType, error) {
	var dt DataType
	if err := json.Unmarshal(doc, &dt); err != nil {
		return nil, err
	}
	if err := dt.Validate(); err != nil {
		return nil, err
	}
	return &dt, nil
}

// ValidateConstraints checks value against dt's constraints, using this
// Validator's format registry instead of the package defaults.
func (v *Validator) ValidateConstraints(dt *DataType, value any) *ConstraintReport {
	c := dt.Constraints
	if c.Typed != nil {
		return c.Typed.validateWith(value, v.formats, v.strictUnknown)
	}

	report := NewConstraintReport("")
	for _, member := range c.AnyOf {
		branch := member.validateWith(value, v.formats, v.strictUnknown)
		if branch == nil {
			return nil
		}
		report.AddDetail(branch)
	}
	report.AddError(NewConstraintError("anyOf", "any_of_mismatch", "value does not match any anyOf member"))
	return report
}
