package registration

// State holds one form's values and the errors of its last validation.
// A State belongs to a single request and is not safe for concurrent use.
type State struct {
	values FormValues
	errors FieldErrors
}

// NewState returns a State for values with no errors.
func NewState(values FormValues) *State {
	return &State{values: values, errors: FieldErrors{}}
}

// Values returns the current snapshot.
func (s *State) Values() FormValues {
	return s.values
}

// Set replaces the value of f and clears its error. It does not validate.
// In the browser the same rule runs on input (app/assets/deck.js clears the
// field's error slot as the user types); Set is its server-side form for
// callers that edit a State between submits.
func (s *State) Set(f Field, value string) error {
	if !s.values.set(f, value) {
		return ErrUnknownField
	}
	delete(s.errors, f)
	return nil
}

// Errors returns a copy of the current errors.
func (s *State) Errors() FieldErrors {
	return s.errors.Clone()
}

// Error returns the message displayed for f.
func (s *State) Error(f Field) string {
	return s.errors.First(f)
}

// SetErrors replaces every error with errs.
func (s *State) SetErrors(errs FieldErrors) {
	s.errors = errs.Clone()
}

// SetFieldErrors replaces the errors of f alone. Empty msgs clears them.
func (s *State) SetFieldErrors(f Field, msgs []string) {
	if len(msgs) == 0 {
		delete(s.errors, f)
		return
	}
	s.errors[f] = append([]string(nil), msgs...)
}

// ClearErrors drops every error.
func (s *State) ClearErrors() {
	s.errors = FieldErrors{}
}

// Valid reports whether no field currently has an error.
func (s *State) Valid() bool {
	return len(s.errors) == 0
}
