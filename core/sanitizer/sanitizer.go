// Package sanitizer normalizes user input before validation.
//
// Struct fields opt in with a `sanitize` tag listing registered sanitizers in
// the order they run:
//
//	type Signup struct {
//		Email   string `sanitize:"trim,lower"`
//		Company string `sanitize:"strip_html,nfc,whitespace,max:120"`
//	}
package sanitizer

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// ErrUnknownSanitizer is returned for tag entries that are not registered.
var ErrUnknownSanitizer = errors.New("sanitizer: unknown sanitizer")

// ErrInvalidTarget is returned when SanitizeStruct gets anything but a struct pointer.
var ErrInvalidTarget = errors.New("sanitizer: must pass a pointer to struct")

var (
	registryMu sync.RWMutex
	registry   = map[string]func(string) string{
		"trim":        Trim,
		"lower":       ToLower,
		"upper":       ToUpper,
		"title":       ToTitle,
		"nfc":         NormalizeUnicode,
		"single_line": SingleLine,
		"whitespace":  CollapseWhitespace,
		"strip_html":  StripHTML,
		"no_null":     RemoveNullBytes,
		"no_control":  RemoveControlChars,
		"email":       NormalizeEmail,
		"url":         Trim,
	}
)

// Register adds or replaces a named sanitizer.
func Register(name string, fn func(string) string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = fn
}

// SanitizeStruct applies sanitize tags to the string fields of the struct
// pointed to by v, recursing into nested structs and pointers.
func SanitizeStruct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrInvalidTarget
	}
	return sanitizeStruct(rv.Elem())
}

func sanitizeStruct(rv reflect.Value) error {
	rt := rv.Type()
	for i := range rv.NumField() {
		field := rv.Field(i)
		if !field.CanSet() {
			continue
		}
		tag := rt.Field(i).Tag.Get("sanitize")
		if tag == "-" {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			if tag == "" {
				continue
			}
			out, err := Apply(field.String(), tag)
			if err != nil {
				return fmt.Errorf("field %s: %w", rt.Field(i).Name, err)
			}
			field.SetString(out)
		case reflect.Struct:
			if err := sanitizeStruct(field); err != nil {
				return err
			}
		case reflect.Pointer:
			if !field.IsNil() && field.Elem().Kind() == reflect.Struct {
				if err := sanitizeStruct(field.Elem()); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Apply runs the comma separated sanitizers in tag over value.
// "max:N" truncates to N runes.
func Apply(value, tag string) (string, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for name := range strings.SplitSeq(tag, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if limit, ok := strings.CutPrefix(name, "max:"); ok {
			n, err := strconv.Atoi(limit)
			if err != nil || n < 0 {
				return "", fmt.Errorf("%w: %q", ErrUnknownSanitizer, name)
			}
			value = MaxLength(value, n)
			continue
		}
		fn, ok := registry[name]
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrUnknownSanitizer, name)
		}
		value = fn(value)
	}
	return value, nil
}
