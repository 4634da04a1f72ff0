package datatype

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/go-json-experiment/json"
)

// VersionedURL is the identity of a data type: an absolute URL with a
// trailing `/v/<N>` segment, where N is a positive integer version.
// Equality is structural on the parsed base and version, not on the
// original string.
type VersionedURL struct {
	base    string
	version uint32
}

// NewVersionedURL validates and constructs a VersionedURL from a base URL
// string and a version number. The base must already be absolute and must
// not end in a slash.
func NewVersionedURL(base string, version uint32) (VersionedURL, error) {
	if version == 0 {
		return VersionedURL{}, ErrInvalidVersionSegment
	}
	if strings.HasSuffix(base, "/") {
		return VersionedURL{}, ErrTrailingSlash
	}
	u, err := url.Parse(base)
	if err != nil || !u.IsAbs() {
		return VersionedURL{}, ErrInvalidVersionedURL
	}
	return VersionedURL{base: base, version: version}, nil
}

// ParseVersionedURL parses the `<absolute-url>/v/<N>` grammar described in
// spec.md §3 and §6: the base must be an absolute URL, the trailing slash
// is forbidden, and the version must parse as an unsigned integer without a
// leading zero (except "0" itself, which is invalid since versions start at 1).
func ParseVersionedURL(s string) (VersionedURL, error) {
	if strings.HasSuffix(s, "/") {
		return VersionedURL{}, ErrTrailingSlash
	}

	idx := strings.LastIndex(s, "/v/")
	if idx < 0 {
		return VersionedURL{}, ErrInvalidVersionedURL
	}
	base, versionPart := s[:idx], s[idx+len("/v/"):]

	if versionPart == "" || (len(versionPart) > 1 && versionPart[0] == '0') {
		return VersionedURL{}, ErrInvalidVersionSegment
	}
	version, err := strconv.ParseUint(versionPart, 10, 32)
	if err != nil || version == 0 {
		return VersionedURL{}, ErrInvalidVersionSegment
	}

	u, err := url.Parse(base)
	if err != nil || !u.IsAbs() || base == "" {
		return VersionedURL{}, ErrInvalidVersionedURL
	}

	return VersionedURL{base: base, version: uint32(version)}, nil
}

// MustParseVersionedURL is a convenience wrapper for tests and literal
// construction; it panics on malformed input.
func MustParseVersionedURL(s string) VersionedURL {
	u, err := ParseVersionedURL(s)
	if err != nil {
		panic(err)
	}
	return u
}

// Base returns the URL without its trailing version segment.
func (u VersionedURL) Base() string { return u.base }

// Version returns the trailing positive integer version.
func (u VersionedURL) Version() uint32 { return u.version }

// String renders the canonical `<base>/v/<N>` form.
func (u VersionedURL) String() string {
	if u.base == "" {
		return ""
	}
	return u.base + "/v/" + strconv.FormatUint(uint64(u.version), 10)
}

// Equal reports structural equality: same base and same version.
func (u VersionedURL) Equal(other VersionedURL) bool {
	return u.base == other.base && u.version == other.version
}

// IsZero reports whether u is the zero value (never a valid parsed URL).
func (u VersionedURL) IsZero() bool {
	return u.base == "" && u.version == 0
}

// MarshalJSON renders the VersionedURL as its canonical string form.
func (u VersionedURL) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}

// UnmarshalJSON parses a JSON string using the versioned URL grammar.
func (u *VersionedURL) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseVersionedURL(s)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
