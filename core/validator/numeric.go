package validator

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseInt parses a base 10 integer, ignoring surrounding whitespace.
func ParseInt(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	return n, err == nil
}

// ValidIntegerString fails when value is not a base 10 integer.
func ValidIntegerString(field, value string) Rule {
	return Rule{
		Check: func() bool {
			_, ok := ParseInt(value)
			return ok
		},
		Error: newError(field, "must be a whole number", "validation.integer", nil),
	}
}

// IntStringBetween fails unless value parses to an integer in [min, max].
func IntStringBetween(field, value string, min, max int) Rule {
	return Rule{
		Check: func() bool {
			n, ok := ParseInt(value)
			return ok && n >= min && n <= max
		},
		Error: newError(field, fmt.Sprintf("must be between %d and %d", min, max), "validation.between", map[string]any{"min": min, "max": max}),
	}
}

// IsTrue fails unless value is true.
func IsTrue(field string, value bool) Rule {
	return Rule{
		Check: func() bool { return value },
		Error: newError(field, "must be accepted", "validation.accepted", nil),
	}
}
