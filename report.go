package datatype

import "github.com/kaptinlin/go-i18n"

// ConstraintError is a single rule failure, mirroring the teacher's
// EvaluationError shape (keyword + code + message + params) so it can be
// localized the same way.
type ConstraintError struct {
	Keyword string         `json:"keyword"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Params  map[string]any `json:"params,omitempty"`
}

// NewConstraintError constructs a ConstraintError, optionally carrying
// template params for localization.
func NewConstraintError(keyword, code, message string, params ...map[string]any) *ConstraintError {
	e := &ConstraintError{Keyword: keyword, Code: code, Message: message}
	if len(params) > 0 {
		e.Params = params[0]
	}
	return e
}

func (e *ConstraintError) Error() string {
	return replace(e.Message, e.Params)
}

// Localize renders the error through localizer when non-nil, falling back
// to the default English message otherwise.
func (e *ConstraintError) Localize(localizer *i18n.Localizer) string {
	if localizer != nil {
		return localizer.Get(e.Code, i18n.Vars(e.Params))
	}
	return e.Error()
}

// ConstraintReport aggregates every rule failure encountered while
// validating a single JSON value against a single constraint schema.
// Type mismatches are reported alone (§4.2: type error precludes
// evaluating the rest); sibling rule failures on a matching type are all
// collected together. AnyOf and per-element array failures nest via
// Details, mirroring EvaluationResult.Errors/.Details in the teacher.
type ConstraintReport struct {
	InstanceLocation string                      `json:"instanceLocation"`
	Errors           map[string]*ConstraintError `json:"errors,omitempty"`
	Details          []*ConstraintReport         `json:"details,omitempty"`
}

// NewConstraintReport creates an empty, valid report rooted at location.
func NewConstraintReport(instanceLocation string) *ConstraintReport {
	return &ConstraintReport{InstanceLocation: instanceLocation}
}

func (r *ConstraintReport) Error() string {
	return "constraint validation failed"
}

// IsValid reports whether no rule failures (own or nested) were recorded.
func (r *ConstraintReport) IsValid() bool {
	if r == nil {
		return true
	}
	if len(r.Errors) > 0 {
		return false
	}
	for _, d := range r.Details {
		if !d.IsValid() {
			return false
		}
	}
	return true
}

// AddError records a rule failure keyed by its keyword (e.g. "minimum").
func (r *ConstraintReport) AddError(err *ConstraintError) *ConstraintReport {
	if r.Errors == nil {
		r.Errors = make(map[string]*ConstraintError)
	}
	r.Errors[err.Keyword] = err
	return r
}

// AddDetail appends a nested report, e.g. one per anyOf member or array element.
func (r *ConstraintReport) AddDetail(detail *ConstraintReport) *ConstraintReport {
	if detail == nil {
		return r
	}
	r.Details = append(r.Details, detail)
	return r
}

// reportOrNil returns r if it carries any failure, or nil otherwise —
// mirroring the teacher convention that evaluateXxx functions return nil
// on success (see format.go's evaluateFormat).
func reportOrNil(r *ConstraintReport) *ConstraintReport {
	if r.IsValid() {
		return nil
	}
	return r
}
