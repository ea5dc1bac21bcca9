package schema

import (
	"strings"
)

// Code classifies an Issue.
type Code string

const (
	CodeInvalidType   Code = "invalid_type"
	CodeTooSmall      Code = "too_small"
	CodeTooBig        Code = "too_big"
	CodeInvalidFormat Code = "invalid_format"
	CodeInvalidValue  Code = "invalid_value"
	CodeCustom        Code = "custom"
)

// Issue is one validation failure. Path holds object keys from the root,
// empty for issues about the value as a whole.
type Issue struct {
	Code    Code     `json:"code"`
	Path    []string `json:"path"`
	Message string   `json:"message"`
}

// Issues is the ordered list of failures from one parse. It implements error.
type Issues []Issue

func (is Issues) Error() string {
	var b strings.Builder
	for i, issue := range is {
		if i > 0 {
			b.WriteString("; ")
		}
		if len(issue.Path) > 0 {
			b.WriteString(strings.Join(issue.Path, "."))
			b.WriteString(": ")
		}
		b.WriteString(issue.Message)
	}
	return b.String()
}

// Messages returns every message in parse order.
func (is Issues) Messages() []string {
	msgs := make([]string, len(is))
	for i, issue := range is {
		msgs[i] = issue.Message
	}
	return msgs
}

// Flattened groups issues by their top-level key.
type Flattened struct {
	FormErrors  []string            `json:"formErrors"`
	FieldErrors map[string][]string `json:"fieldErrors"`
}

// Flatten groups messages by the first path element. Issues without a path
// land in FormErrors. Message order within a field is parse order.
func (is Issues) Flatten() Flattened {
	out := Flattened{
		FormErrors:  []string{},
		FieldErrors: make(map[string][]string),
	}
	for _, issue := range is {
		if len(issue.Path) == 0 {
			out.FormErrors = append(out.FormErrors, issue.Message)
			continue
		}
		key := issue.Path[0]
		out.FieldErrors[key] = append(out.FieldErrors[key], issue.Message)
	}
	return out
}

// at prefixes every issue path with prefix.
func (is Issues) at(prefix []string) Issues {
	if len(prefix) == 0 {
		return is
	}
	for i := range is {
		is[i].Path = append(append([]string(nil), prefix...), is[i].Path...)
	}
	return is
}

func issue(code Code, msg string) Issue {
	return Issue{Code: code, Message: msg}
}
