package docx

import "fmt"

// WriteError represents a failure serializing a document package
type WriteError struct {
	Message string
	Cause   error
}

func (e *WriteError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("docx write error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("docx write error: %s", e.Message)
}

func (e *WriteError) Unwrap() error {
	return e.Cause
}
