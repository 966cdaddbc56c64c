// Package rendering turns a canonical resume record into a styled document
// tree and an HTML preview.
package rendering

import "fmt"

// Render targets named in errors
const (
	targetDocument = "document"
	targetPreview  = "preview"
)

// TemplateError reports a preview template that failed to parse or execute
type TemplateError struct {
	Template string
	Message  string
	Cause    error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("template %s: %s: %v", e.Template, e.Message, e.Cause)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError reports a failure producing one render target
type RenderError struct {
	Target string // "document" or "preview"
	Cause  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("failed to render %s: %v", e.Target, e.Cause)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
