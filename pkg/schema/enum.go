package schema

import (
	"slices"
	"strings"
)

// EnumSchema accepts one of a fixed set of strings, compared exactly.
type EnumSchema struct {
	values  []string
	message string
}

// Enum returns a schema accepting exactly one of values.
func Enum(values ...string) *EnumSchema {
	return &EnumSchema{
		values:  values,
		message: "Invalid option: expected one of " + strings.Join(values, "|"),
	}
}

// Message replaces the message reported for any rejected input.
func (s *EnumSchema) Message(msg string) *EnumSchema {
	s.message = msg
	return s
}

// Options returns the accepted values in declaration order.
func (s *EnumSchema) Options() []string {
	return slices.Clone(s.values)
}

func (s *EnumSchema) run(input any) (string, Issues) {
	v, ok := input.(string)
	if !ok {
		return "", Issues{issue(CodeInvalidType, s.message)}
	}
	if !slices.Contains(s.values, v) {
		return "", Issues{issue(CodeInvalidValue, s.message)}
	}
	return v, nil
}

func (s *EnumSchema) SafeParse(input any) Result[string] { return safeParse[string](s, input) }
func (s *EnumSchema) Parse(input any) (string, error)    { return parse[string](s, input) }

func (s *EnumSchema) parseField(path []string, input any) (any, Issues) {
	return parseField[string](s, path, input)
}
