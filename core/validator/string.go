package validator

import (
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

// RequiredString fails on empty or whitespace-only values.
func RequiredString(field, value string) Rule {
	return Rule{
		Check: func() bool { return strings.TrimSpace(value) != "" },
		Error: newError(field, "field is required", "validation.required", nil),
	}
}

// MinLenString fails when value has fewer than n runes.
func MinLenString(field, value string, n int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) >= n },
		Error: newError(field, fmt.Sprintf("must be at least %d characters long", n), "validation.min_length", map[string]any{"min": n}),
	}
}

// MaxLenString fails when value has more than n runes.
func MaxLenString(field, value string, n int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) <= n },
		Error: newError(field, fmt.Sprintf("must be at most %d characters long", n), "validation.max_length", map[string]any{"max": n}),
	}
}

// MatchesRegex fails when value does not match pattern. description names the
// expected format in the default message.
func MatchesRegex(field, value string, pattern *regexp.Regexp, description string) Rule {
	return Rule{
		Check: func() bool { return pattern.MatchString(value) },
		Error: newError(field, "must match "+description, "validation.regex", map[string]any{"pattern": description}),
	}
}

// EmailRX accepts the address shapes browsers accept for <input type="email">,
// with at least one dot in the domain.
var EmailRX = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+$`)

// IsEmail reports whether s looks like a deliverable address.
func IsEmail(s string) bool {
	return len(s) <= 254 && EmailRX.MatchString(s)
}

// ValidEmail fails when value is not an email address.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool { return IsEmail(value) },
		Error: newError(field, "must be a valid email address", "validation.email", nil),
	}
}

// IsURL reports whether s is an absolute http or https URL with a host.
func IsURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// ValidURL fails when value is not an absolute http(s) URL.
func ValidURL(field, value string) Rule {
	return Rule{
		Check: func() bool { return IsURL(value) },
		Error: newError(field, "must be a valid URL", "validation.url", nil),
	}
}

// InList fails when value is not one of allowed.
func InList(field, value string, allowed ...string) Rule {
	return Rule{
		Check: func() bool { return slices.Contains(allowed, value) },
		Error: newError(field, "must be one of: "+strings.Join(allowed, ", "), "validation.in", map[string]any{"values": allowed}),
	}
}

// EqualStrings fails when value differs from other.
func EqualStrings(field, value, other string) Rule {
	return Rule{
		Check: func() bool { return value == other },
		Error: newError(field, "values do not match", "validation.equal", nil),
	}
}
