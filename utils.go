package datatype

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// replace substitutes {key} placeholders in template with values from
// params, mirroring the teacher's message-templating helper in utils.go.
func replace(template string, params map[string]any) string {
	for key, value := range params {
		template = strings.ReplaceAll(template, "{"+key+"}", fmt.Sprint(value))
	}
	return template
}

// rejectUnknownFields errors if fields carries any key outside known,
// mirroring schema.go's knownSchemaFields/collectExtraFields idiom in the
// teacher library, inverted: the teacher collects unrecognized siblings
// into an Extra bag, this module treats them as a hard parse failure since
// the wire format is a strict untagged union (see raw::DataType in the
// original Rust source, which derives deny_unknown_fields).
func rejectUnknownFields(fields map[string]jsontext.Value, known map[string]struct{}, path string) error {
	var extra []string
	for key := range fields {
		if _, ok := known[key]; !ok {
			extra = append(extra, key)
		}
	}
	if len(extra) == 0 {
		return nil
	}
	sort.Strings(extra)
	return NewParseError(path, "unrecognized field(s): "+strings.Join(extra, ", "), ErrUnknownField)
}

// rejectUnknownRaw is rejectUnknownFields's counterpart for the
// map[string]json.RawMessage views used once a variant has been chosen by
// decodeSingleValueConstraints, after "type" has already been removed by the
// caller; each variant's known set lists its own trigger key
// ("const"/"enum"/"prefixItems") alongside its other fields.
func rejectUnknownRaw(fields map[string]json.RawMessage, known map[string]struct{}) error {
	var extra []string
	for key := range fields {
		if _, ok := known[key]; !ok {
			extra = append(extra, key)
		}
	}
	if len(extra) == 0 {
		return nil
	}
	sort.Strings(extra)
	return NewParseError("", "unrecognized field(s): "+strings.Join(extra, ", "), ErrUnknownField)
}

// runeLength counts Unicode scalar values rather than bytes, matching
// spec.md §8's requirement that minLength/maxLength count scalar values
// (e.g. "é" has length 2), mirroring minlength.go's utf8.RuneCountInString use.
func runeLength(s string) int {
	return utf8.RuneCountInString(s)
}

// floatEquals is plain IEEE-754 equality for Const/Enum matching: NaN never
// equals anything, including itself, and -0.0 equals 0.0, per spec.md §4.2.
func floatEquals(a, b float64) bool {
	return a == b
}
