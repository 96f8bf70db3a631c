package utils

import (
	"bytes"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Number is an optional numeric value decoded from either a JSON number or a
// numeric-looking string. Anything else leaves it unset.
type Number struct {
	Value float64
	Valid bool
}

// ParseNumber converts a free-form string. Empty, non-numeric or non-finite
// input (NaN, Inf) is unset.
func ParseNumber(s string) Number {
	s = strings.TrimSpace(s)
	if s == "" {
		return Number{}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Number{}
	}
	return Number{Value: f, Valid: true}
}

// UnmarshalJSON never fails so a bad numeric field cannot reject a whole object.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = Number{}
		return nil
	}
	if data[0] == '"' {
		unquoted, err := strconv.Unquote(string(data))
		if err != nil {
			*n = Number{}
			return nil
		}
		*n = ParseNumber(unquoted)
		return nil
	}
	*n = ParseNumber(string(data))
	return nil
}

// Float returns a pointer to the value, or nil when unset.
func (n Number) Float() *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}

// Int returns a pointer to the truncated value, or nil when unset or outside
// the int range.
func (n Number) Int() *int {
	if !n.Valid || n.Value >= math.MaxInt || n.Value < math.MinInt {
		return nil
	}
	v := int(n.Value)
	return &v
}

// Bool is an optional boolean decoded from a JSON bool or a string such as "yes".
type Bool struct {
	Value bool
	Valid bool
}

// UnmarshalJSON never fails; unrecognized input leaves the value unset.
func (b *Bool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("true")):
		*b = Bool{Value: true, Valid: true}
	case bytes.Equal(data, []byte("false")):
		*b = Bool{Value: false, Valid: true}
	case len(data) > 0 && data[0] == '"':
		s, err := strconv.Unquote(string(data))
		if err != nil || strings.TrimSpace(s) == "" {
			*b = Bool{}
			return nil
		}
		*b = Bool{Value: ToBool(s), Valid: true}
	default:
		*b = Bool{}
	}
	return nil
}

// Ptr returns a pointer to the value, or nil when unset.
func (b Bool) Ptr() *bool {
	if !b.Valid {
		return nil
	}
	v := b.Value
	return &v
}

// ToBool converts a form value to bool. "1", "true", "yes" and "on" are true.
func ToBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

var (
	scriptBlock = regexp.MustCompile(`(?is)<\s*script[^>]*>.*?<\s*/\s*script\s*>`)
	scriptTag   = regexp.MustCompile(`(?i)<\s*/?\s*script[^>]*>`)
)

// SanitizeText strips script blocks and stray script tags, then trims whitespace.
func SanitizeText(s string) string {
	s = scriptBlock.ReplaceAllString(s, "")
	s = scriptTag.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
