package export

import "errors"

// ErrGenerationInProgress is returned when a document is requested while
// another one is still being generated.
var ErrGenerationInProgress = errors.New("document generation already in progress")

// GenerationMessage is the only failure text shown to users
const GenerationMessage = "could not generate document"

// GenerationError reports a failed document generation. The message is
// always generic; the underlying cause is kept for logs.
type GenerationError struct {
	Cause error
}

func (e *GenerationError) Error() string {
	return GenerationMessage
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}
