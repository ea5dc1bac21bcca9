package schema

import "fmt"

// IntSchema accepts Go ints. Checks run in order and all report.
type IntSchema struct {
	typeMessage string
	checks      []intCheck
}

type intCheck struct {
	check   func(int) bool
	code    Code
	message string
}

// Int returns a schema accepting any int.
func Int() *IntSchema {
	return &IntSchema{typeMessage: "Expected number"}
}

// TypeMessage replaces the message reported for non-int input.
func (s *IntSchema) TypeMessage(msg string) *IntSchema {
	s.typeMessage = msg
	return s
}

// Min requires v >= n.
func (s *IntSchema) Min(n int, msg string) *IntSchema {
	if msg == "" {
		msg = fmt.Sprintf("Number must be greater than or equal to %d", n)
	}
	s.checks = append(s.checks, intCheck{func(v int) bool { return v >= n }, CodeTooSmall, msg})
	return s
}

// Max requires v <= n.
func (s *IntSchema) Max(n int, msg string) *IntSchema {
	if msg == "" {
		msg = fmt.Sprintf("Number must be less than or equal to %d", n)
	}
	s.checks = append(s.checks, intCheck{func(v int) bool { return v <= n }, CodeTooBig, msg})
	return s
}

// Between requires lo <= v <= hi and reports a single issue otherwise.
func (s *IntSchema) Between(lo, hi int, msg string) *IntSchema {
	if msg == "" {
		msg = fmt.Sprintf("Number must be between %d and %d", lo, hi)
	}
	s.checks = append(s.checks, intCheck{func(v int) bool { return v >= lo && v <= hi }, CodeInvalidValue, msg})
	return s
}

// Refine adds a custom check.
func (s *IntSchema) Refine(check func(int) bool, msg string) *IntSchema {
	s.checks = append(s.checks, intCheck{check, CodeCustom, msg})
	return s
}

func (s *IntSchema) run(input any) (int, Issues) {
	v, ok := input.(int)
	if !ok {
		return 0, Issues{issue(CodeInvalidType, s.typeMessage)}
	}
	var issues Issues
	for _, c := range s.checks {
		if !c.check(v) {
			issues = append(issues, issue(c.code, c.message))
		}
	}
	return v, issues
}

func (s *IntSchema) SafeParse(input any) Result[int] { return safeParse[int](s, input) }
func (s *IntSchema) Parse(input any) (int, error)    { return parse[int](s, input) }

func (s *IntSchema) parseField(path []string, input any) (any, Issues) {
	return parseField[int](s, path, input)
}
