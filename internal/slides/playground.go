package slides

import (
	"strings"

	"github.com/dmitrymomot/schemadeck/pkg/schema"
)

const (
	// PlaygroundMinMessage is reported for input shorter than three characters.
	PlaygroundMinMessage = "String must be at least 3 characters long."
	// PlaygroundValid is shown when the input passes.
	PlaygroundValid = "Valid!"
)

// PlaygroundSchema is the schema the core concepts slide lets visitors try.
var PlaygroundSchema = schema.String().Min(3, PlaygroundMinMessage)

// PlaygroundResult is what the playground displays.
type PlaygroundResult struct {
	Valid   bool
	Message string
}

// RunPlayground validates input with PlaygroundSchema. Failures list every
// issue message joined by ", ".
func RunPlayground(input string) PlaygroundResult {
	res := PlaygroundSchema.SafeParse(input)
	if res.Success {
		return PlaygroundResult{Valid: true, Message: PlaygroundValid}
	}
	return PlaygroundResult{Message: strings.Join(res.Error.Messages(), ", ")}
}
