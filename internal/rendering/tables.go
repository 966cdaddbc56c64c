package rendering

import (
	"github.com/jonathan/resume-formatter/internal/document"
	"github.com/jonathan/resume-formatter/internal/types"
)

// Column headers of the fixed tables
var (
	EducationColumns     = []string{"Degree", "Area of Study", "School", "Location", "Was Awarded?", "Date"}
	CertificationColumns = []string{"Certification", "Issued By", "Date Obtained", "Certification Number", "Expiration Date"}
)

func renderEducation(entries []types.EducationEntry) []document.Block {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Degree, e.AreaOfStudy, e.School, e.Location, yesNo(e.WasAwarded), e.Date})
	}
	return []document.Block{heading(HeadingEducation), gridTable(EducationColumns, rows)}
}

func renderCertifications(entries []types.CertificationEntry) []document.Block {
	rows := make([][]string, 0, len(entries))
	for _, c := range entries {
		rows = append(rows, []string{c.Name, c.IssuedBy, c.DateObtained, c.CertificationNumber, c.ExpirationDate})
	}
	return []document.Block{heading(HeadingCertifications), gridTable(CertificationColumns, rows)}
}

// gridTable builds a bordered table with a shaded header row. A table with
// no data gets a single placeholder row so it never renders empty.
func gridTable(columnNames []string, data [][]string) *document.Table {
	table := &document.Table{Widths: columns(len(columnNames)), Borders: true}

	header := document.Row{Header: true}
	for _, name := range columnNames {
		header.Cells = append(header.Cells, document.Cell{
			Shading:    HeaderShading,
			Paragraphs: []*document.Paragraph{paragraph(document.AlignCenter, boldRun(name))},
		})
	}
	table.Rows = append(table.Rows, header)

	if len(data) == 0 {
		filler := make([]string, len(columnNames))
		for i := range filler {
			filler[i] = placeholder
		}
		data = [][]string{filler}
	}

	for _, values := range data {
		row := document.Row{}
		for _, v := range values {
			row.Cells = append(row.Cells, document.Cell{
				Paragraphs: []*document.Paragraph{paragraph(document.AlignCenter, run(v))},
			})
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
