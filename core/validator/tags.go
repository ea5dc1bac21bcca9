package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// ErrInvalidTarget is returned when ValidateStruct gets anything but a struct pointer.
var ErrInvalidTarget = errors.New("validator: must pass a pointer to struct")

// TagFunc builds a Rule for a tagged field. params are the comma separated
// values after the colon, e.g. "in:Personal,Business".
type TagFunc func(field string, value reflect.Value, params []string) Rule

var (
	tagRegistryMu sync.RWMutex
	tagRegistry   = map[string]TagFunc{
		"required": requiredTag,
		"min":      minTag,
		"max":      maxTag,
		"email":    stringTag(ValidEmail),
		"url":      stringTag(ValidURL),
		"in":       inTag,
	}
)

// RegisterTag adds or replaces a tag rule.
func RegisterTag(name string, fn TagFunc) {
	tagRegistryMu.Lock()
	defer tagRegistryMu.Unlock()
	tagRegistry[name] = fn
}

// ValidateStruct checks fields tagged `validate:"required;min:3;in:a,b"`.
// Rules are separated by semicolons; the error field is the `form` or
// `json` tag name when present, else the Go field name.
func ValidateStruct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrInvalidTarget
	}
	rv = rv.Elem()
	rt := rv.Type()

	var rules []Rule
	tagRegistryMu.RLock()
	for i := range rv.NumField() {
		sf := rt.Field(i)
		tag := sf.Tag.Get("validate")
		if tag == "" || tag == "-" || !sf.IsExported() {
			continue
		}
		name := fieldName(sf)
		for part := range strings.SplitSeq(tag, ";") {
			ruleName, rawParams, _ := strings.Cut(strings.TrimSpace(part), ":")
			fn, ok := tagRegistry[ruleName]
			if !ok {
				continue
			}
			var params []string
			if rawParams != "" {
				params = strings.Split(rawParams, ",")
			}
			rules = append(rules, fn(name, rv.Field(i), params))
		}
	}
	tagRegistryMu.RUnlock()

	return Apply(rules...)
}

func fieldName(sf reflect.StructField) string {
	for _, key := range []string{"form", "json"} {
		if name, _, _ := strings.Cut(sf.Tag.Get(key), ","); name != "" && name != "-" {
			return name
		}
	}
	return sf.Name
}

func pass() Rule {
	return Rule{Check: func() bool { return true }}
}

func requiredTag(field string, value reflect.Value, _ []string) Rule {
	if value.Kind() == reflect.String {
		return RequiredString(field, value.String())
	}
	return Rule{
		Check: func() bool { return !value.IsZero() },
		Error: newError(field, "field is required", "validation.required", nil),
	}
}

func intParam(params []string) (int, bool) {
	if len(params) == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(params[0]))
	return n, err == nil
}

func minTag(field string, value reflect.Value, params []string) Rule {
	n, ok := intParam(params)
	if !ok {
		return pass()
	}
	switch value.Kind() {
	case reflect.String:
		return MinLenString(field, value.String(), n)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Rule{
			Check: func() bool { return value.Int() >= int64(n) },
			Error: newError(field, fmt.Sprintf("must be at least %d", n), "validation.min", map[string]any{"min": n}),
		}
	}
	return pass()
}

func maxTag(field string, value reflect.Value, params []string) Rule {
	n, ok := intParam(params)
	if !ok {
		return pass()
	}
	switch value.Kind() {
	case reflect.String:
		return MaxLenString(field, value.String(), n)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Rule{
			Check: func() bool { return value.Int() <= int64(n) },
			Error: newError(field, fmt.Sprintf("must be at most %d", n), "validation.max", map[string]any{"max": n}),
		}
	}
	return pass()
}

func inTag(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String {
		return pass()
	}
	return InList(field, value.String(), params...)
}

// stringTag adapts a string rule constructor. Empty strings pass so that
// optional fields only need "required" when they are mandatory.
func stringTag(fn func(field, value string) Rule) TagFunc {
	return func(field string, value reflect.Value, _ []string) Rule {
		if value.Kind() != reflect.String || value.String() == "" {
			return pass()
		}
		return fn(field, value.String())
	}
}
