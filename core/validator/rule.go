// Package validator provides programmatic validation rules and a small
// struct tag front end.
//
// A Rule couples a deferred check with the error reported when it fails.
// Apply evaluates rules in order and collects every failure:
//
//	err := validator.Apply(
//		validator.MinLenString("username", in.Username, 3),
//		validator.ValidEmail("email", in.Email).WithMessage("Invalid email format"),
//	)
//	if errs := validator.ExtractValidationErrors(err); errs != nil {
//		// errs.ByField()
//	}
package validator

// Rule is a single check and the error to report when it fails.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// WithMessage returns a copy of r reporting msg instead of the default message.
func (r Rule) WithMessage(msg string) Rule {
	r.Error.Message = msg
	return r
}

// Apply evaluates rules in order and returns ValidationErrors for the
// failures, or nil when every rule passed.
func Apply(rules ...Rule) error {
	var errs ValidationErrors
	for _, rule := range rules {
		if rule.Check == nil || rule.Check() {
			continue
		}
		errs.Add(rule.Error)
	}
	if errs.IsEmpty() {
		return nil
	}
	return errs
}

// When returns rules unchanged if cond holds, and rules that always pass otherwise.
func When(cond bool, rules ...Rule) []Rule {
	if cond {
		return rules
	}
	return nil
}

// Custom wraps an arbitrary check.
func Custom(field string, check func() bool, msg string) Rule {
	return Rule{
		Check: check,
		Error: ValidationError{
			Field:          field,
			Message:        msg,
			TranslationKey: "validation.custom",
		},
	}
}

func newError(field, msg, key string, values map[string]any) ValidationError {
	if values == nil {
		values = map[string]any{}
	}
	values["field"] = field
	return ValidationError{
		Field:             field,
		Message:           msg,
		TranslationKey:    key,
		TranslationValues: values,
	}
}
