// Package schema is a small declarative validation library.
//
// A schema describes the accepted shape of a value once and parses input
// against it, returning either typed data or a list of issues:
//
//	user := schema.Object(schema.Shape{
//		"username": schema.String().Min(3, "Username must be at least 3 characters"),
//		"email":    schema.String().NonEmpty("Email is required").Email("Invalid email format"),
//		"age":      schema.Pipe[int, int](schema.ParseInt(schema.String(), "Age must be a number"), schema.Int().Between(18, 120, "")),
//	})
//
//	res := user.SafeParse(map[string]any{"username": "ada", "email": "ada@example.com", "age": "36"})
//	if !res.Success {
//		fmt.Println(res.Error.Flatten().FieldErrors)
//	}
//
// Checks on a schema run in declaration order and all of them report, so
// callers that show one message per field display the first.
package schema

import "errors"

// Field is any schema usable inside an Object shape.
type Field interface {
	parseField(path []string, input any) (any, Issues)
}

// Schema parses input into T.
type Schema[T any] interface {
	Field
	// SafeParse never panics and never returns a Go error: failures are in Result.Error.
	SafeParse(input any) Result[T]
	// Parse returns Issues as the error on failure.
	Parse(input any) (T, error)
	run(input any) (T, Issues)
}

// Result is the outcome of SafeParse.
type Result[T any] struct {
	Success bool
	Data    T
	Error   Issues
}

// IsIssues reports whether err came from Parse, and returns the issues.
func IsIssues(err error) (Issues, bool) {
	var is Issues
	ok := errors.As(err, &is)
	return is, ok
}

func safeParse[T any](s Schema[T], input any) Result[T] {
	data, issues := s.run(input)
	if len(issues) > 0 {
		var zero T
		return Result[T]{Error: issues, Data: zero}
	}
	return Result[T]{Success: true, Data: data}
}

func parse[T any](s Schema[T], input any) (T, error) {
	data, issues := s.run(input)
	if len(issues) > 0 {
		var zero T
		return zero, issues
	}
	return data, nil
}

func parseField[T any](s Schema[T], path []string, input any) (any, Issues) {
	data, issues := s.run(input)
	return data, issues.at(path)
}

// missing marks an absent object key.
type missing struct{}

func isMissing(v any) bool {
	_, ok := v.(missing)
	return ok || v == nil
}
