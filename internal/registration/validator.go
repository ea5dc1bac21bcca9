package registration

import "regexp"

// Kind selects one of the registration form implementations.
type Kind string

const (
	// KindVanilla validates with hand-written rules.
	KindVanilla Kind = "vanilla"
	// KindSchema validates with a declarative schema.
	KindSchema Kind = "schema"
)

// Kinds lists every form kind in menu order.
var Kinds = []Kind{KindVanilla, KindSchema}

// Result is the outcome of one validation pass. Exactly one of Data and
// Errors is set.
type Result struct {
	Data   *Registration
	Errors FieldErrors
}

// OK reports whether validation passed.
func (r Result) OK() bool {
	return len(r.Errors) == 0
}

// Validator checks a full snapshot of the registration form.
// Implementations are stateless and safe for concurrent use.
type Validator interface {
	Kind() Kind
	// Validate runs every rule against v.
	Validate(v FormValues) Result
	// ValidateField returns the messages of f alone, including cross-field
	// and conditional rules targeting f.
	ValidateField(v FormValues, f Field) []string
}

// NewValidator returns the validator for kind.
func NewValidator(kind Kind) (Validator, error) {
	switch kind {
	case KindVanilla:
		return NewManualValidator(), nil
	case KindSchema:
		return NewSchemaValidator(), nil
	}
	return nil, ErrUnknownKind
}

const (
	usernameMin = 3
	usernameMax = 20
	passwordMin = 8
	companyMin  = 2
	ageMin      = 18
	ageMax      = 120
)

var usernameRX = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// strongPassword reports whether s has an ASCII upper case letter, lower
// case letter and digit.
func strongPassword(s string) bool {
	var upper, lower, digit bool
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	return upper && lower && digit
}

func fieldOnly(res Result, f Field) []string {
	return res.Errors[f]
}
