package schema

// BoolSchema accepts Go bools.
type BoolSchema struct {
	typeMessage string
	mustBeTrue  string
}

// Bool returns a schema accepting true or false.
func Bool() *BoolSchema {
	return &BoolSchema{typeMessage: "Expected boolean"}
}

// TypeMessage replaces the message reported for non-bool input.
func (s *BoolSchema) TypeMessage(msg string) *BoolSchema {
	s.typeMessage = msg
	return s
}

// True accepts only true, reporting msg for false.
func (s *BoolSchema) True(msg string) *BoolSchema {
	if msg == "" {
		msg = "Expected true"
	}
	s.mustBeTrue = msg
	return s
}

func (s *BoolSchema) run(input any) (bool, Issues) {
	v, ok := input.(bool)
	if !ok {
		if s.mustBeTrue != "" {
			return false, Issues{issue(CodeInvalidType, s.mustBeTrue)}
		}
		return false, Issues{issue(CodeInvalidType, s.typeMessage)}
	}
	if !v && s.mustBeTrue != "" {
		return v, Issues{issue(CodeInvalidValue, s.mustBeTrue)}
	}
	return v, nil
}

func (s *BoolSchema) SafeParse(input any) Result[bool] { return safeParse[bool](s, input) }
func (s *BoolSchema) Parse(input any) (bool, error)    { return parse[bool](s, input) }

func (s *BoolSchema) parseField(path []string, input any) (any, Issues) {
	return parseField[bool](s, path, input)
}
