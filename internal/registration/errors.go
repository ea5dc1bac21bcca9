package registration

import (
	"errors"
	"maps"
	"slices"
)

var (
	// ErrUnknownField is returned for names outside the registration form.
	ErrUnknownField = errors.New("registration: unknown field")
	// ErrUnknownKind is returned for form kinds without a validator.
	ErrUnknownKind = errors.New("registration: unknown form kind")
)

// Messages shared by both validators.
const (
	MsgUsernameTooShort = "Username must be at least 3 characters"
	MsgUsernameTooLong  = "Username must be at most 20 characters"
	MsgUsernameCharset  = "Username can only contain letters, numbers, and underscores"
	MsgEmailRequired    = "Email is required"
	MsgEmailInvalid     = "Invalid email format"
	MsgPasswordTooShort = "Password must be at least 8 characters"
	MsgPasswordWeak     = "Password must contain uppercase, lowercase, and number"
	MsgConfirmRequired  = "Please confirm your password"
	MsgPasswordMismatch = "Passwords do not match"
	MsgAccountType      = "Account type is required"
	MsgCompanyRequired  = "Company name is required for business accounts and must be at least 2 characters"
	MsgAgeRequired      = "Age is required"
	MsgAgeNotNumber     = "Age must be a number"
	MsgAgeRange         = "Age must be between 18 and 120"
	MsgWebsiteInvalid   = "Website must be a valid URL"
	MsgTermsRequired    = "You must accept the terms and conditions"
)

// FieldError is a single validation failure.
type FieldError struct {
	Field   Field  `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return string(e.Field) + ": " + e.Message
}

// FieldErrors maps each invalid field to its messages in rule order.
type FieldErrors map[Field][]string

// Add appends msg to the messages of f.
func (e FieldErrors) Add(f Field, msg string) {
	e[f] = append(e[f], msg)
}

// First returns the message shown for f, or "".
func (e FieldErrors) First(f Field) string {
	if msgs := e[f]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Has reports whether f failed.
func (e FieldErrors) Has(f Field) bool {
	return len(e[f]) > 0
}

// List returns the displayed error of each failing field in form order.
func (e FieldErrors) List() []FieldError {
	var out []FieldError
	for _, f := range fields {
		if msg := e.First(f); msg != "" {
			out = append(out, FieldError{Field: f, Message: msg})
		}
	}
	return out
}

// Strings returns a copy keyed by input name.
func (e FieldErrors) Strings() map[string][]string {
	out := make(map[string][]string, len(e))
	for f, msgs := range e {
		out[string(f)] = slices.Clone(msgs)
	}
	return out
}

// Clone returns a deep copy.
func (e FieldErrors) Clone() FieldErrors {
	out := maps.Clone(e)
	if out == nil {
		return FieldErrors{}
	}
	for f, msgs := range out {
		out[f] = slices.Clone(msgs)
	}
	return out
}
