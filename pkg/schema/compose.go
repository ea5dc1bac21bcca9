package schema

import (
	"strconv"
	"strings"
)

type optional[T any] struct{ inner Schema[T] }

// Optional accepts a missing or nil value as the zero value of T.
func Optional[T any](s Schema[T]) Schema[T] {
	return &optional[T]{inner: s}
}

func (o *optional[T]) run(input any) (T, Issues) {
	if isMissing(input) {
		var zero T
		return zero, nil
	}
	return o.inner.run(input)
}

func (o *optional[T]) SafeParse(input any) Result[T] { return safeParse[T](o, input) }
func (o *optional[T]) Parse(input any) (T, error)    { return parse[T](o, input) }
func (o *optional[T]) parseField(path []string, input any) (any, Issues) {
	return parseField[T](o, path, input)
}

type orEmpty struct{ inner Schema[string] }

// OrEmpty accepts the empty string as is and otherwise defers to s.
// It suits optional form inputs that always submit a value.
func OrEmpty(s Schema[string]) Schema[string] {
	return &orEmpty{inner: s}
}

func (o *orEmpty) run(input any) (string, Issues) {
	if v, ok := input.(string); ok && v == "" {
		return "", nil
	}
	if isMissing(input) {
		return "", nil
	}
	return o.inner.run(input)
}

func (o *orEmpty) SafeParse(input any) Result[string] { return safeParse[string](o, input) }
func (o *orEmpty) Parse(input any) (string, error)    { return parse[string](o, input) }
func (o *orEmpty) parseField(path []string, input any) (any, Issues) {
	return parseField[string](o, path, input)
}

type transform[A, B any] struct {
	inner   Schema[A]
	fn      func(A) (B, error)
	message string
}

// Transform parses with s and maps the result through fn. A non-nil error
// from fn is reported with msg, or with the error text when msg is empty.
// fn is not called when s reports issues.
func Transform[A, B any](s Schema[A], fn func(A) (B, error), msg string) Schema[B] {
	return &transform[A, B]{inner: s, fn: fn, message: msg}
}

func (t *transform[A, B]) run(input any) (B, Issues) {
	var zero B
	a, issues := t.inner.run(input)
	if len(issues) > 0 {
		return zero, issues
	}
	b, err := t.fn(a)
	if err != nil {
		msg := t.message
		if msg == "" {
			msg = err.Error()
		}
		return zero, Issues{issue(CodeCustom, msg)}
	}
	return b, nil
}

func (t *transform[A, B]) SafeParse(input any) Result[B] { return safeParse[B](t, input) }
func (t *transform[A, B]) Parse(input any) (B, error)    { return parse[B](t, input) }
func (t *transform[A, B]) parseField(path []string, input any) (any, Issues) {
	return parseField[B](t, path, input)
}

type pipe[A, B any] struct {
	first Schema[A]
	next  Schema[B]
}

// Pipe feeds the output of first into next. next only runs when first
// succeeds, so issues come from one stage at a time.
func Pipe[A, B any](first Schema[A], next Schema[B]) Schema[B] {
	return &pipe[A, B]{first: first, next: next}
}

func (p *pipe[A, B]) run(input any) (B, Issues) {
	a, issues := p.first.run(input)
	if len(issues) > 0 {
		var zero B
		return zero, issues
	}
	return p.next.run(a)
}

func (p *pipe[A, B]) SafeParse(input any) Result[B] { return safeParse[B](p, input) }
func (p *pipe[A, B]) Parse(input any) (B, error)    { return parse[B](p, input) }
func (p *pipe[A, B]) parseField(path []string, input any) (any, Issues) {
	return parseField[B](p, path, input)
}

// ParseInt converts the output of s to a base-10 int, ignoring
// surrounding whitespace. msg is reported when the text is not an integer.
func ParseInt(s Schema[string], msg string) Schema[int] {
	if msg == "" {
		msg = "Expected integer string"
	}
	return Transform(s, func(v string) (int, error) {
		return strconv.Atoi(strings.TrimSpace(v))
	}, msg)
}
