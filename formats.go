package datatype

import (
	"net"
	"net/mail"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// stringFormats is a registry of string-format checkers, one entry per
// recognized `format` tag. A format absent from this table matches any
// string, per spec: unrecognized formats parse successfully but constrain
// nothing.
var stringFormats = map[string]func(string) bool{
	"uri":           isURI,
	"uri-reference": isURIReference,
	"uri-template":  isURITemplate,
	"email":         isEmail,
	"hostname":      isHostname,
	"date-time":     isDateTime,
	"date":          isDate,
	"time":          isTime,
	"uuid":          isUUID,
	"regex":         isRegexFormat,
	"ipv4":          isIPV4,
	"ipv6":          isIPV6,
}

// evaluateFormat checks s against the named format using the package's
// default registry and returns a ConstraintError on failure, or nil on
// success/unknown-format.
func evaluateFormat(format, s string) *ConstraintError {
	return evaluateFormatWith(stringFormats, false, format, s)
}

// evaluateFormatWith is evaluateFormat generalized over a caller-supplied
// format registry, used by Validator to support RegisterFormat-style
// overrides and strict unknown-format handling (SPEC_FULL.md §4.5).
func evaluateFormatWith(formats map[string]func(string) bool, strictUnknown bool, format, s string) *ConstraintError {
	check, ok := formats[format]
	if !ok {
		if strictUnknown {
			return NewConstraintError("format", "unknown_format", "unrecognized format {format}", map[string]any{"format": format})
		}
		return nil
	}
	if check(s) {
		return nil
	}
	return NewConstraintError("format", "string_format", "string does not match format {format}", map[string]any{"format": format})
}

func isDateTime(s string) bool {
	if len(s) < 20 { // yyyy-mm-ddThh:mm:ssZ
		return false
	}
	if s[10] != 'T' && s[10] != 't' {
		return false
	}
	return isDate(s[:10]) && isTime(s[11:])
}

func isDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func isTime(str string) bool {
	// golang time package does not support leap seconds, so this is
	// parsed by hand, mirroring the teacher's IsTime.
	if len(str) < 9 || str[2] != ':' || str[5] != ':' {
		return false
	}
	isInRange := func(str string, min, max int) (int, bool) {
		n, err := strconv.Atoi(str)
		if err != nil {
			return 0, false
		}
		if n < min || n > max {
			return 0, false
		}
		return n, true
	}
	var h, m, s int
	var ok bool
	if h, ok = isInRange(str[0:2], 0, 23); !ok {
		return false
	}
	if m, ok = isInRange(str[3:5], 0, 59); !ok {
		return false
	}
	if s, ok = isInRange(str[6:8], 0, 60); !ok {
		return false
	}
	str = str[8:]

	if str[0] == '.' {
		str = str[1:]
		var numDigits int
		for str != "" {
			if str[0] < '0' || str[0] > '9' {
				break
			}
			numDigits++
			str = str[1:]
		}
		if numDigits == 0 {
			return false
		}
	}

	if len(str) == 0 {
		return false
	}

	if str[0] == 'z' || str[0] == 'Z' {
		if len(str) != 1 {
			return false
		}
	} else {
		if len(str) != 6 || str[3] != ':' {
			return false
		}
		var sign int
		switch str[0] {
		case '+':
			sign = -1
		case '-':
			sign = +1
		default:
			return false
		}
		var zh, zm int
		if zh, ok = isInRange(str[1:3], 0, 23); !ok {
			return false
		}
		if zm, ok = isInRange(str[4:6], 0, 59); !ok {
			return false
		}
		hm := (h*60 + m) + sign*(zh*60+zm)
		if hm < 0 {
			hm += 24 * 60
		}
		h, m = hm/60, hm%60
	}

	if s == 60 { // leap second
		if h != 23 || m != 59 {
			return false
		}
	}
	return true
}

func isHostname(s string) bool {
	s = strings.TrimSuffix(s, ".")
	if len(s) > 253 {
		return false
	}
	for _, label := range strings.Split(s, ".") {
		if labelLen := len(label); labelLen < 1 || labelLen > 63 {
			return false
		}
		if first := s[0]; first == '-' {
			return false
		}
		if label[len(label)-1] == '-' {
			return false
		}
		for _, c := range label {
			if valid := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || (c == '-'); !valid {
				return false
			}
		}
	}
	return true
}

func isEmail(s string) bool {
	if len(s) > 254 {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	if at == -1 {
		return false
	}
	local := s[0:at]
	domain := s[at+1:]
	if len(local) > 64 {
		return false
	}
	if len(domain) >= 2 && domain[0] == '[' && domain[len(domain)-1] == ']' {
		ip := domain[1 : len(domain)-1]
		if strings.HasPrefix(ip, "IPv6:") {
			return isIPV6(strings.TrimPrefix(ip, "IPv6:"))
		}
		return isIPV4(ip)
	}
	if !isHostname(domain) {
		return false
	}
	_, err := mail.ParseAddress(s)
	return err == nil
}

func isIPV4(s string) bool {
	groups := strings.Split(s, ".")
	if len(groups) != 4 {
		return false
	}
	for _, group := range groups {
		n, err := strconv.Atoi(group)
		if err != nil {
			return false
		}
		if n < 0 || n > 255 {
			return false
		}
		if n != 0 && group[0] == '0' {
			return false
		}
	}
	return true
}

func isIPV6(s string) bool {
	if !strings.Contains(s, ":") {
		return false
	}
	return net.ParseIP(s) != nil
}

func parseFormatURL(s string) (*url.URL, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, err
	}
	hostname := u.Hostname()
	if strings.IndexByte(hostname, ':') != -1 {
		if strings.IndexByte(u.Host, '[') == -1 || strings.IndexByte(u.Host, ']') == -1 {
			return nil, ErrIPv6AddressFormat
		}
		if !isIPV6(hostname) {
			return nil, ErrInvalidIPv6
		}
	}
	return u, nil
}

func isURI(s string) bool {
	u, err := parseFormatURL(s)
	return err == nil && u.IsAbs()
}

func isURIReference(s string) bool {
	_, err := parseFormatURL(s)
	return err == nil && !strings.Contains(s, `\`)
}

func isURITemplate(s string) bool {
	u, err := parseFormatURL(s)
	if err != nil {
		return false
	}
	for _, item := range strings.Split(u.RawPath, "/") {
		depth := 0
		for _, ch := range item {
			switch ch {
			case '{':
				depth++
				if depth != 1 {
					return false
				}
			case '}':
				depth--
				if depth != 0 {
					return false
				}
			}
		}
		if depth != 0 {
			return false
		}
	}
	return true
}

func isUUID(s string) bool {
	parseHex := func(n int) bool {
		for n > 0 {
			if len(s) == 0 {
				return false
			}
			hex := (s[0] >= '0' && s[0] <= '9') || (s[0] >= 'a' && s[0] <= 'f') || (s[0] >= 'A' && s[0] <= 'F')
			if !hex {
				return false
			}
			s = s[1:]
			n--
		}
		return true
	}
	groups := []int{8, 4, 4, 4, 12}
	for i, numDigits := range groups {
		if !parseHex(numDigits) {
			return false
		}
		if i == len(groups)-1 {
			break
		}
		if len(s) == 0 || s[0] != '-' {
			return false
		}
		s = s[1:]
	}
	return len(s) == 0
}

func isRegexFormat(pattern string) bool {
	_, err := regexp.Compile(pattern)
	return err == nil
}
