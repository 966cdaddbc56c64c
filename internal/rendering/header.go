package rendering

import (
	"github.com/jonathan/resume-formatter/internal/document"
	"github.com/jonathan/resume-formatter/internal/types"
)

// renderHeader emits the centered name followed by a borderless two-cell
// table: title on the left, requisition number on the right.
func renderHeader(record types.ResumeRecord) []document.Block {
	nameRun := boldRun(record.Name)
	nameRun.Size = nameSize
	name := &document.Paragraph{
		Style: document.StyleTitle,
		Align: document.AlignCenter,
		Runs:  []document.Run{nameRun},
	}

	left := document.Cell{Paragraphs: []*document.Paragraph{
		labelValue(LabelTitle+" ", record.Title),
	}}
	right := document.Cell{Paragraphs: []*document.Paragraph{
		paragraph(document.AlignRight, boldRun(LabelRequisition)),
		paragraph(document.AlignLeft, run(record.RequisitionNumber)),
	}}

	table := &document.Table{
		Widths:  columns(2),
		Borders: false,
		Rows:    []document.Row{{Cells: []document.Cell{left, right}}},
	}

	return []document.Block{name, table}
}
