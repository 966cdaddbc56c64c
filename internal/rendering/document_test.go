package rendering

import (
	"encoding/json"
	"testing"

	"github.com/jonathan/resume-formatter/internal/document"
	"github.com/jonathan/resume-formatter/internal/parsing"
	"github.com/jonathan/resume-formatter/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sectionBlocks returns the body blocks between the given heading and the next heading
func sectionBlocks(t *testing.T, doc *document.Document, title string) []document.Block {
	t.Helper()
	start := -1
	for i, block := range doc.Body {
		p, ok := block.(*document.Paragraph)
		if !ok || p.Style != document.StyleHeading {
			continue
		}
		if start >= 0 {
			return doc.Body[start:i]
		}
		if p.Text() == title {
			start = i + 1
		}
	}
	require.GreaterOrEqual(t, start, 0, "heading %q not found", title)
	return doc.Body[start:]
}

func texts(blocks []document.Block) []string {
	var out []string
	for _, block := range blocks {
		if p, ok := block.(*document.Paragraph); ok {
			out = append(out, p.Text())
		}
	}
	return out
}

func firstTable(t *testing.T, blocks []document.Block) *document.Table {
	t.Helper()
	for _, block := range blocks {
		if table, ok := block.(*document.Table); ok {
			return table
		}
	}
	require.Fail(t, "no table in section")
	return nil
}

func fullRecord() types.ResumeRecord {
	return parsing.NormalizeJSON([]byte(`{
		"name": "Ada Lovelace",
		"title": "Staff Engineer",
		"requisitionNumber": "REQ-42",
		"professionalSummary": ["Built analytical engines", "  "],
		"summarySections": [
			{"title": "Highlights", "content": ["First program"]},
			{"title": "Empty", "content": []}
		],
		"employmentHistory": [
			{
				"companyName": "Acme",
				"roleName": "Engineer",
				"workPeriod": "Jan 2020 - Till Date",
				"location": "London, UK",
				"keyTechnologies": "Go, Postgres",
				"responsibilities": ["Led team", ""],
				"projects": [
					{"projectName": "X", "projectLocation": "Remote", "period": "2021",
					 "keyTechnologies": "Rust", "projectResponsibilities": ["Built Y"]}
				],
				"subsections": [{"title": "Awards", "content": ["Hero award"]}]
			},
			{"companyName": "Initech", "roleName": "Intern"}
		],
		"education": [{"degree": "BS", "areaOfStudy": "Math", "school": "UCL", "wasAwarded": false}],
		"certifications": [{"name": "CKA", "issuedBy": "CNCF"}],
		"technicalSkills": {"Languages": ["Go", "Rust"]},
		"skillCategories": [{"categoryName": "Cloud", "skills": ["AWS"],
			"subCategories": [{"name": "Compute", "skills": ["EC2", "Lambda"]}]}]
	}`))
}

func TestRenderDocument_SectionOrder(t *testing.T) {
	doc := RenderDocument(fullRecord())

	var headings []string
	for _, p := range doc.Paragraphs() {
		if p.Style == document.StyleHeading {
			headings = append(headings, p.Text())
		}
	}

	assert.Equal(t, []string{
		HeadingEducation, HeadingCertifications, HeadingEmployment, HeadingSummary, HeadingSkills,
	}, headings)
	assert.Equal(t, "Ada Lovelace", doc.Title)
}

func TestRenderDocument_Header(t *testing.T) {
	doc := RenderDocument(fullRecord())

	name, ok := doc.Body[0].(*document.Paragraph)
	require.True(t, ok)
	assert.Equal(t, "Ada Lovelace", name.Text())
	assert.Equal(t, document.AlignCenter, name.Align)
	assert.True(t, name.Runs[0].Bold)

	table, ok := doc.Body[1].(*document.Table)
	require.True(t, ok)
	assert.False(t, table.Borders)
	require.Len(t, table.Rows, 1)
	require.Len(t, table.Rows[0].Cells, 2)

	assert.Equal(t, "Title/Role: Staff Engineer", table.Rows[0].Cells[0].Text())

	right := table.Rows[0].Cells[1].Paragraphs
	require.Len(t, right, 2)
	assert.Equal(t, LabelRequisition, right[0].Text())
	assert.Equal(t, document.AlignRight, right[0].Align)
	assert.Equal(t, "REQ-42", right[1].Text())
	assert.Equal(t, document.AlignLeft, right[1].Align)
}

func TestRenderDocument_EmptyTablesGetPlaceholderRow(t *testing.T) {
	record := parsing.Normalize(map[string]any{"name": "Ada", "education": "not an array"})
	doc := RenderDocument(record)

	for title, width := range map[string]int{HeadingEducation: 6, HeadingCertifications: 5} {
		t.Run(title, func(t *testing.T) {
			table := firstTable(t, sectionBlocks(t, doc, title))

			assert.True(t, table.Rows[0].Header)
			rows := table.DataRows()
			require.Len(t, rows, 1)
			require.Len(t, rows[0].Cells, width)
			for _, cell := range rows[0].Cells {
				assert.Equal(t, "-", cell.Text())
			}
		})
	}
}

func TestRenderDocument_EducationTable(t *testing.T) {
	doc := RenderDocument(fullRecord())
	table := firstTable(t, sectionBlocks(t, doc, HeadingEducation))

	assert.True(t, table.Borders)
	require.Len(t, table.Rows, 2)

	header := table.Rows[0]
	for i, cell := range header.Cells {
		assert.Equal(t, EducationColumns[i], cell.Text())
		assert.Equal(t, HeaderShading, cell.Shading)
	}

	row := table.Rows[1]
	assert.Equal(t, "BS", row.Cells[0].Text())
	assert.Equal(t, "No", row.Cells[4].Text())
	for _, cell := range row.Cells {
		assert.Equal(t, document.AlignCenter, cell.Paragraphs[0].Align)
	}
}

func TestRenderDocument_AwardDefaultRendersYes(t *testing.T) {
	record := parsing.Normalize(map[string]any{"education": []any{map[string]any{"degree": "MS"}}})
	table := firstTable(t, sectionBlocks(t, RenderDocument(record), HeadingEducation))

	assert.Equal(t, "Yes", table.DataRows()[0].Cells[4].Text())
}

func TestRenderDocument_ProjectBlankResponsibilitiesSkipped(t *testing.T) {
	record := parsing.Normalize(map[string]any{
		"employmentHistory": []any{map[string]any{
			"companyName": "Acme",
			"projects": []any{map[string]any{
				"projectName":             "X",
				"projectResponsibilities": []any{"", "  ", "Built Y"},
			}},
		}},
	})

	doc := RenderDocument(record)
	assert.Equal(t, []string{"Built Y"}, doc.Bullets())

	blocks := sectionBlocks(t, doc, HeadingEmployment)
	require.Len(t, blocks, 4)

	projectTable, ok := blocks[1].(*document.Table)
	require.True(t, ok)
	assert.Equal(t, "X", projectTable.Rows[0].Cells[0].Text())

	sub, ok := blocks[2].(*document.Paragraph)
	require.True(t, ok)
	assert.Equal(t, LabelResponsibilities, sub.Text())
	assert.Equal(t, document.StyleSubheading, sub.Style)

	item, ok := blocks[3].(*document.Paragraph)
	require.True(t, ok)
	assert.True(t, item.Bullet)
	assert.Equal(t, "Built Y", item.Text())
}

func TestRenderDocument_WhitespaceOnlyListsProduceNoBullets(t *testing.T) {
	record := parsing.Normalize(map[string]any{
		"professionalSummary": []any{" ", "\t"},
		"employmentHistory": []any{map[string]any{
			"responsibilities": []any{"", "   "},
			"projects":         []any{map[string]any{"projectResponsibilities": []any{" "}}},
			"subsections":      []any{map[string]any{"title": "Notes", "content": []any{"  "}}},
		}},
	})

	doc := RenderDocument(record)

	assert.Empty(t, doc.Bullets())
	for _, p := range doc.Paragraphs() {
		assert.NotEqual(t, LabelResponsibilities, p.Text())
	}
	assert.Contains(t, texts(sectionBlocks(t, doc, HeadingEmployment)), "Notes")
}

func TestRenderDocument_Employment(t *testing.T) {
	doc := RenderDocument(fullRecord())
	blocks := sectionBlocks(t, doc, HeadingEmployment)

	jobTable, ok := blocks[0].(*document.Table)
	require.True(t, ok)
	assert.False(t, jobTable.Borders)
	require.Len(t, jobTable.Rows, 2)
	assert.Equal(t, "Acme", jobTable.Rows[0].Cells[0].Text())
	assert.Equal(t, "Jan 2020 - Till Date", jobTable.Rows[0].Cells[1].Text())
	assert.Equal(t, "Engineer", jobTable.Rows[1].Cells[0].Text())
	assert.Equal(t, "London, UK", jobTable.Rows[1].Cells[1].Text())

	company := jobTable.Rows[0].Cells[0].Paragraphs[0].Runs[0]
	assert.True(t, company.Bold)
	assert.Equal(t, BrandColor, company.Color)
	assert.Equal(t, document.AlignRight, jobTable.Rows[0].Cells[1].Paragraphs[0].Align)

	projectTable, ok := blocks[1].(*document.Table)
	require.True(t, ok)
	assert.Equal(t, "X - Remote", projectTable.Rows[0].Cells[0].Text())
	assert.Equal(t, "2021", projectTable.Rows[0].Cells[1].Text())

	assert.Equal(t, []string{
		LabelResponsibilities, "Built Y", "Key Technologies: Rust",
		LabelResponsibilities, "Led team",
		"Awards", "Hero award",
		"Key Technologies: Go, Postgres",
		"",
	}, texts(blocks[2:11]))

	second, ok := blocks[11].(*document.Table)
	require.True(t, ok)
	assert.Equal(t, "Initech", second.Rows[0].Cells[0].Text())
	assert.Len(t, blocks, 12)
}

func TestRenderDocument_SummaryKeepsTitleWithoutContent(t *testing.T) {
	doc := RenderDocument(fullRecord())
	blocks := sectionBlocks(t, doc, HeadingSummary)

	assert.Equal(t, []string{"Built analytical engines", "Highlights", "First program", "Empty"}, texts(blocks))
	assert.True(t, blocks[0].(*document.Paragraph).Bullet)
	assert.True(t, blocks[1].(*document.Paragraph).Runs[0].Bold)
	assert.False(t, blocks[3].(*document.Paragraph).Bullet)
}

func TestRenderDocument_LegacySkillsOnly(t *testing.T) {
	record := parsing.NormalizeJSON([]byte(`{"technicalSkills": {"Languages": ["Go","Rust"]}, "skillCategories": []}`))
	blocks := sectionBlocks(t, RenderDocument(record), HeadingSkills)

	require.Len(t, blocks, 1)
	line := blocks[0].(*document.Paragraph)
	assert.Equal(t, "Languages: Go, Rust", line.Text())
	assert.True(t, line.Runs[0].Bold)
	assert.Equal(t, "Languages: ", line.Runs[0].Text)
}

func TestRenderDocument_EmptySkillListKeepsLabelForm(t *testing.T) {
	record := parsing.NormalizeJSON([]byte(`{"technicalSkills": {"Languages": []},
		"skillCategories": [{"categoryName": "Cloud", "skills": [], "subCategories": [{"name": "Compute", "skills": [" "]}]}]}`))
	blocks := sectionBlocks(t, RenderDocument(record), HeadingSkills)

	assert.Equal(t, []string{"Languages: ", "Cloud: ", "Compute: "}, texts(blocks))
	for _, block := range blocks {
		p := block.(*document.Paragraph)
		require.Len(t, p.Runs, 1)
		assert.True(t, p.Runs[0].Bold)
	}
}

func TestRenderDocument_BlankSubsectionTitleStillRendered(t *testing.T) {
	record := parsing.Normalize(map[string]any{
		"summarySections": []any{map[string]any{"title": "  ", "content": []any{"Kept"}}},
	})
	blocks := sectionBlocks(t, RenderDocument(record), HeadingSummary)

	require.Len(t, blocks, 2)
	title := blocks[0].(*document.Paragraph)
	assert.False(t, title.Bullet)
	assert.True(t, title.Runs[0].Bold)
	assert.Equal(t, "Kept", blocks[1].(*document.Paragraph).Text())
	assert.True(t, blocks[1].(*document.Paragraph).Bullet)
}

func TestRenderDocument_BothSkillForms(t *testing.T) {
	blocks := sectionBlocks(t, RenderDocument(fullRecord()), HeadingSkills)

	assert.Equal(t, []string{"Languages: Go, Rust", "Cloud: AWS", "Compute: EC2, Lambda"}, texts(blocks))
	assert.Equal(t, 0, blocks[1].(*document.Paragraph).Indent)
	assert.Greater(t, blocks[2].(*document.Paragraph).Indent, 0)
}

func TestRenderDocument_EmptyInput(t *testing.T) {
	record := parsing.Normalize(map[string]any{})
	doc := RenderDocument(record)

	assert.Equal(t, "Resume", doc.Title)
	assert.Equal(t, []string{NoSkillsMessage}, texts(sectionBlocks(t, doc, HeadingSkills)))
	assert.Empty(t, doc.Bullets())
}

func TestRenderDocument_DeterministicAndPure(t *testing.T) {
	record := fullRecord()
	before, err := json.Marshal(record)
	require.NoError(t, err)

	first := RenderDocument(record)
	second := RenderDocument(record)
	assert.Equal(t, first, second)

	after, err := json.Marshal(record)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestSafeRenderDocument(t *testing.T) {
	doc, err := SafeRenderDocument(fullRecord())
	require.NoError(t, err)
	assert.NotNil(t, doc)
}

func TestSafeRender_RecoversPanic(t *testing.T) {
	doc, err := safeRender(types.NewResumeRecord(), func(types.ResumeRecord) *document.Document {
		panic("boom")
	})

	assert.Nil(t, doc)
	require.Error(t, err)
	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Contains(t, err.Error(), "boom")
}
