package rendering

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"sync"

	"github.com/jonathan/resume-formatter/internal/types"
)

//go:embed templates/preview.html.tmpl
var templateFS embed.FS

const previewTemplateName = "preview.html.tmpl"

var (
	previewOnce sync.Once
	previewTmpl *template.Template
	previewErr  error
)

// parsePreviewTemplate parses the embedded preview template once
func parsePreviewTemplate() (*template.Template, error) {
	previewOnce.Do(func() {
		tmpl, err := template.ParseFS(templateFS, "templates/"+previewTemplateName)
		if err != nil {
			previewErr = &TemplateError{Template: previewTemplateName, Message: "parse failed", Cause: err}
			return
		}
		previewTmpl = tmpl
	})
	return previewTmpl, previewErr
}

// RenderPreviewHTML writes the HTML preview of a record to w. Nothing is
// written when template execution fails.
func RenderPreviewHTML(w io.Writer, record types.ResumeRecord) error {
	tmpl, err := parsePreviewTemplate()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, BuildPreview(record)); err != nil {
		return &TemplateError{Template: previewTemplateName, Message: "execution failed", Cause: err}
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return &RenderError{Target: targetPreview, Cause: err}
	}
	return nil
}

// PreviewHTML returns the HTML preview of a record
func PreviewHTML(record types.ResumeRecord) ([]byte, error) {
	var buf bytes.Buffer
	if err := RenderPreviewHTML(&buf, record); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
