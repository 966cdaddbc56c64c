package rendering

import (
	"github.com/jonathan/resume-formatter/internal/document"
	"github.com/jonathan/resume-formatter/internal/types"
)

func renderEmployment(history []types.EmploymentEntry) []document.Block {
	blocks := []document.Block{heading(HeadingEmployment)}
	for i, job := range history {
		if i > 0 {
			blocks = append(blocks, spacer())
		}
		blocks = append(blocks, renderJob(job)...)
	}
	return blocks
}

func renderJob(job types.EmploymentEntry) []document.Block {
	blocks := []document.Block{&document.Table{
		Widths:  []int{contentWidth * 2 / 3, contentWidth / 3},
		Borders: false,
		Rows: []document.Row{
			pairRow(brandRun(job.CompanyName), brandRun(job.WorkPeriod)),
			pairRow(brandRun(job.RoleName), brandRun(job.Location)),
		},
	}}

	for _, project := range job.Projects {
		blocks = append(blocks, renderProject(project)...)
	}

	blocks = append(blocks, responsibilities(job.Responsibilities)...)
	for _, sub := range job.Subsections {
		blocks = append(blocks, renderSubsection(sub)...)
	}
	if !isBlank(job.KeyTechnologies) {
		blocks = append(blocks, labelValue(LabelKeyTechnologies+" ", job.KeyTechnologies))
	}
	return blocks
}

func renderProject(project types.Project) []document.Block {
	title := project.ProjectName
	if !isBlank(project.ProjectLocation) {
		title += " - " + project.ProjectLocation
	}

	left, right := boldRun(title), boldRun(project.Period)
	left.Italic, right.Italic = true, true

	blocks := []document.Block{&document.Table{
		Widths:  []int{contentWidth * 2 / 3, contentWidth / 3},
		Borders: false,
		Rows:    []document.Row{pairRow(left, right)},
	}}

	blocks = append(blocks, responsibilities(project.ProjectResponsibilities)...)
	if !isBlank(project.KeyTechnologies) {
		blocks = append(blocks, labelValue(LabelKeyTechnologies+" ", project.KeyTechnologies))
	}
	return blocks
}

// responsibilities emits the sub-heading and one bullet per non-blank item,
// or nothing when every item is blank.
func responsibilities(items []string) []document.Block {
	list := bullets(items)
	if len(list) == 0 {
		return nil
	}
	return append([]document.Block{subheading(LabelResponsibilities)}, list...)
}

// renderSubsection emits a bold title line followed by its bullets. The title
// line is always rendered, even when blank or without bullets.
func renderSubsection(sub types.Subsection) []document.Block {
	blocks := []document.Block{paragraph(document.AlignLeft, boldRun(sub.Title))}
	return append(blocks, bullets(sub.Content)...)
}

// pairRow is a two-cell row with the right cell right-aligned
func pairRow(left, right document.Run) document.Row {
	return document.Row{Cells: []document.Cell{
		{Paragraphs: []*document.Paragraph{paragraph(document.AlignLeft, left)}},
		{Paragraphs: []*document.Paragraph{paragraph(document.AlignRight, right)}},
	}}
}
