package rendering

import (
	"fmt"

	"github.com/jonathan/resume-formatter/internal/document"
	"github.com/jonathan/resume-formatter/internal/types"
)

// Section headings and labels
const (
	HeadingEducation      = "Education"
	HeadingCertifications = "Certifications"
	HeadingEmployment     = "Employment History"
	HeadingSummary        = "Professional Summary"
	HeadingSkills         = "Technical Skills"

	LabelTitle            = "Title/Role:"
	LabelRequisition      = "Requisition Number:"
	LabelKeyTechnologies  = "Key Technologies:"
	LabelResponsibilities = "Responsibilities"
	NoSkillsMessage       = "No skills provided"
	fallbackDocumentTitle = "Resume"
)

// RenderDocument builds the document tree for a record. The same record
// always yields the same tree, and the record is never modified.
func RenderDocument(record types.ResumeRecord) *document.Document {
	title := record.Name
	if isBlank(title) {
		title = fallbackDocumentTitle
	}

	doc := &document.Document{Title: title}
	doc.Append(renderHeader(record)...)
	doc.Append(renderEducation(record.Education)...)
	doc.Append(renderCertifications(record.Certifications)...)
	doc.Append(renderEmployment(record.EmploymentHistory)...)
	doc.Append(renderSummary(record.ProfessionalSummary, record.SummarySections)...)
	doc.Append(renderSkills(record.TechnicalSkills, record.SkillCategories)...)
	return doc
}

// SafeRenderDocument is RenderDocument with panics converted into a *RenderError
func SafeRenderDocument(record types.ResumeRecord) (doc *document.Document, err error) {
	return safeRender(record, RenderDocument)
}

func safeRender(record types.ResumeRecord, render func(types.ResumeRecord) *document.Document) (doc *document.Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = &RenderError{Target: targetDocument, Cause: fmt.Errorf("panic: %v", r)}
		}
	}()
	return render(record), nil
}
