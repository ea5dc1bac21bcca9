package schema

import (
	"fmt"
	"maps"
	"slices"
)

// Shape maps object keys to their schemas.
type Shape map[string]Field

// Values is the parsed data of an object. It holds only keys that parsed
// without issues.
type Values map[string]any

// String returns the value at key, or "" when absent or not a string.
func (v Values) String(key string) string {
	s, _ := v[key].(string)
	return s
}

// Int returns the value at key, or 0 when absent or not an int.
func (v Values) Int(key string) int {
	n, _ := v[key].(int)
	return n
}

// Bool returns the value at key, or false when absent or not a bool.
func (v Values) Bool(key string) bool {
	b, _ := v[key].(bool)
	return b
}

// Has reports whether key parsed.
func (v Values) Has(key string) bool {
	_, ok := v[key]
	return ok
}

type refinement struct {
	check   func(Values) bool
	message string
	path    []string
	deps    []string
}

// RefineOption configures an object refinement.
type RefineOption func(*refinement)

// At attaches the refinement's issue to path instead of the object itself.
func At(path ...string) RefineOption {
	return func(r *refinement) { r.path = path }
}

// When runs the refinement as soon as the listed keys parsed cleanly,
// regardless of issues elsewhere in the object. Without When a refinement
// runs only when every key parsed.
func When(keys ...string) RefineOption {
	return func(r *refinement) { r.deps = keys }
}

// ObjectSchema parses maps keyed by string. Keys are parsed in sorted
// order so issue order is stable. Unknown keys are dropped unless the
// schema is Strict.
type ObjectSchema struct {
	shape       Shape
	keys        []string
	refinements []refinement
	strict      bool
	typeMessage string
}

// Object returns a schema for shape.
func Object(shape Shape) *ObjectSchema {
	shape = maps.Clone(shape)
	return &ObjectSchema{
		shape:       shape,
		keys:        slices.Sorted(maps.Keys(shape)),
		typeMessage: "Expected object",
	}
}

// Shape returns a copy of the object's shape.
func (o *ObjectSchema) Shape() Shape {
	return maps.Clone(o.shape)
}

// Keys returns the object keys in parse order.
func (o *ObjectSchema) Keys() []string {
	return slices.Clone(o.keys)
}

// Strict reports an object-level issue for every unknown key.
func (o *ObjectSchema) Strict() *ObjectSchema {
	o.strict = true
	return o
}

// Refine adds a cross-key check. Refinements run after every key, in
// declaration order, and their issues follow the key issues.
func (o *ObjectSchema) Refine(check func(Values) bool, msg string, opts ...RefineOption) *ObjectSchema {
	r := refinement{check: check, message: msg}
	for _, opt := range opts {
		opt(&r)
	}
	o.refinements = append(o.refinements, r)
	return o
}

// Extend returns a new schema with the keys of o and shape, shape winning
// on conflicts. Refinements of o are kept.
func (o *ObjectSchema) Extend(shape Shape) *ObjectSchema {
	merged := maps.Clone(o.shape)
	maps.Copy(merged, shape)
	out := Object(merged)
	out.refinements = slices.Clone(o.refinements)
	out.strict = o.strict
	return out
}

// Pick returns a new schema with only keys. Refinements are not carried
// over since they may read dropped keys.
func (o *ObjectSchema) Pick(keys ...string) *ObjectSchema {
	picked := make(Shape, len(keys))
	for _, k := range keys {
		if f, ok := o.shape[k]; ok {
			picked[k] = f
		}
	}
	return Object(picked)
}

// Omit returns a new schema without keys. Refinements are not carried over.
func (o *ObjectSchema) Omit(keys ...string) *ObjectSchema {
	rest := maps.Clone(o.shape)
	for _, k := range keys {
		delete(rest, k)
	}
	return Object(rest)
}

func toMap(input any) (map[string]any, bool) {
	switch v := input.(type) {
	case map[string]any:
		return v, true
	case Values:
		return v, true
	case map[string]string:
		out := make(map[string]any, len(v))
		for k, s := range v {
			out[k] = s
		}
		return out, true
	}
	return nil, false
}

func (o *ObjectSchema) run(input any) (Values, Issues) {
	in, ok := toMap(input)
	if !ok {
		return nil, Issues{issue(CodeInvalidType, o.typeMessage)}
	}

	var issues Issues
	out := make(Values, len(o.keys))
	failed := make(map[string]bool)
	for _, key := range o.keys {
		raw, present := in[key]
		if !present {
			raw = missing{}
		}
		v, fieldIssues := o.shape[key].parseField([]string{key}, raw)
		if len(fieldIssues) > 0 {
			failed[key] = true
			issues = append(issues, fieldIssues...)
			continue
		}
		out[key] = v
	}

	if o.strict {
		for _, key := range slices.Sorted(maps.Keys(in)) {
			if _, known := o.shape[key]; !known {
				issues = append(issues, issue(CodeInvalidValue, fmt.Sprintf("Unrecognized key: %q", key)))
			}
		}
	}

	clean := len(issues) == 0
	for _, r := range o.refinements {
		if !o.ready(r, clean, failed) {
			continue
		}
		if !r.check(out) {
			iss := issue(CodeCustom, r.message)
			iss.Path = slices.Clone(r.path)
			issues = append(issues, iss)
		}
	}

	if len(issues) > 0 {
		return out, issues
	}
	return out, nil
}

func (o *ObjectSchema) ready(r refinement, clean bool, failed map[string]bool) bool {
	if r.deps == nil {
		return clean
	}
	for _, dep := range r.deps {
		if failed[dep] {
			return false
		}
		if _, known := o.shape[dep]; !known {
			return false
		}
	}
	return true
}

// SafeParse parses input. Data holds the keys that parsed even on failure.
func (o *ObjectSchema) SafeParse(input any) Result[Values] {
	data, issues := o.run(input)
	return Result[Values]{Success: len(issues) == 0, Data: data, Error: issues}
}

func (o *ObjectSchema) Parse(input any) (Values, error) { return parse[Values](o, input) }

func (o *ObjectSchema) parseField(path []string, input any) (any, Issues) {
	return parseField[Values](o, path, input)
}
