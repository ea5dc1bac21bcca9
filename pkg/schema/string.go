package schema

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

// emailRX follows the WHATWG HTML definition of a valid email address.
var emailRX = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+$`)

type stringStep struct {
	transform func(string) string
	check     func(string) bool
	code      Code
	message   string
}

// StringSchema accepts Go strings. Steps run in declaration order: a
// transform rewrites the value seen by later checks, a failing check
// records an issue and parsing continues.
type StringSchema struct {
	typeMessage string
	steps       []stringStep
}

// String returns a schema accepting any string.
func String() *StringSchema {
	return &StringSchema{typeMessage: "Expected string"}
}

// TypeMessage replaces the message reported for non-string input.
func (s *StringSchema) TypeMessage(msg string) *StringSchema {
	s.typeMessage = msg
	return s
}

func (s *StringSchema) addCheck(code Code, msg string, check func(string) bool) *StringSchema {
	s.steps = append(s.steps, stringStep{check: check, code: code, message: msg})
	return s
}

// Transform rewrites the value for every later step and for the result.
func (s *StringSchema) Transform(fn func(string) string) *StringSchema {
	s.steps = append(s.steps, stringStep{transform: fn})
	return s
}

// Trim strips leading and trailing whitespace.
func (s *StringSchema) Trim() *StringSchema {
	return s.Transform(strings.TrimSpace)
}

// ToLower lowercases the value.
func (s *StringSchema) ToLower() *StringSchema {
	return s.Transform(strings.ToLower)
}

// Min requires at least n characters.
func (s *StringSchema) Min(n int, msg string) *StringSchema {
	if msg == "" {
		msg = fmt.Sprintf("String must contain at least %d character(s)", n)
	}
	return s.addCheck(CodeTooSmall, msg, func(v string) bool { return utf8.RuneCountInString(v) >= n })
}

// Max allows at most n characters.
func (s *StringSchema) Max(n int, msg string) *StringSchema {
	if msg == "" {
		msg = fmt.Sprintf("String must contain at most %d character(s)", n)
	}
	return s.addCheck(CodeTooBig, msg, func(v string) bool { return utf8.RuneCountInString(v) <= n })
}

// NonEmpty rejects the empty string.
func (s *StringSchema) NonEmpty(msg string) *StringSchema {
	if msg == "" {
		msg = "String must not be empty"
	}
	return s.addCheck(CodeTooSmall, msg, func(v string) bool { return v != "" })
}

// Regex requires a match against rx.
func (s *StringSchema) Regex(rx *regexp.Regexp, msg string) *StringSchema {
	if msg == "" {
		msg = "Invalid string: must match pattern " + rx.String()
	}
	return s.addCheck(CodeInvalidFormat, msg, rx.MatchString)
}

// Email requires a syntactically valid address of at most 254 bytes.
func (s *StringSchema) Email(msg string) *StringSchema {
	if msg == "" {
		msg = "Invalid email address"
	}
	return s.addCheck(CodeInvalidFormat, msg, func(v string) bool {
		return len(v) <= 254 && emailRX.MatchString(v)
	})
}

// URL requires an absolute http or https URL with a host.
func (s *StringSchema) URL(msg string) *StringSchema {
	if msg == "" {
		msg = "Invalid URL"
	}
	return s.addCheck(CodeInvalidFormat, msg, func(v string) bool {
		u, err := url.Parse(v)
		if err != nil || u.Host == "" {
			return false
		}
		return u.Scheme == "http" || u.Scheme == "https"
	})
}

// Refine adds a custom check.
func (s *StringSchema) Refine(check func(string) bool, msg string) *StringSchema {
	return s.addCheck(CodeCustom, msg, check)
}

func (s *StringSchema) run(input any) (string, Issues) {
	v, ok := input.(string)
	if !ok {
		return "", Issues{issue(CodeInvalidType, s.typeMessage)}
	}
	var issues Issues
	for _, step := range s.steps {
		if step.transform != nil {
			v = step.transform(v)
			continue
		}
		if !step.check(v) {
			issues = append(issues, issue(step.code, step.message))
		}
	}
	return v, issues
}

func (s *StringSchema) SafeParse(input any) Result[string] { return safeParse[string](s, input) }
func (s *StringSchema) Parse(input any) (string, error)    { return parse[string](s, input) }

func (s *StringSchema) parseField(path []string, input any) (any, Issues) {
	return parseField[string](s, path, input)
}
