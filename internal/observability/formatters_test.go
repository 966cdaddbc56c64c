package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jonathan/resume-formatter/internal/parsing"
	"github.com/jonathan/resume-formatter/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintResumeSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	record := types.NewResumeRecord()
	record.Name = "Ada Lovelace"
	record.Title = "Analyst"
	record.ProfessionalSummary = []string{"One", "Two"}
	record.EmploymentHistory = []types.EmploymentEntry{
		{CompanyName: "Analytical Engines Ltd", WorkPeriod: "1842 - 1843", Projects: []types.Project{{ProjectName: "Notes"}}},
		{CompanyName: ""},
	}

	p.PrintResumeSummary(&record)
	output := buf.String()

	assert.Contains(t, output, "NORMALIZED RESUME")
	assert.Contains(t, output, "Ada Lovelace")
	assert.Contains(t, output, "Analyst")
	assert.Contains(t, output, "Summary bullets:  2")
	assert.Contains(t, output, "Analytical Engines Ltd (1842 - 1843)")
	assert.Contains(t, output, "1 projects")
	assert.Contains(t, output, "• -")
	assert.NotContains(t, output, "Req #")
}

func TestPrintResumeSummary_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintResumeSummary(nil)
	assert.Empty(t, buf.String())
}

func TestPrintResumeSummary_TruncatesEmployment(t *testing.T) {
	var buf bytes.Buffer
	record := types.NewResumeRecord()
	for i := 0; i < 7; i++ {
		record.EmploymentHistory = append(record.EmploymentHistory, types.EmploymentEntry{CompanyName: "Co"})
	}

	NewPrinter(&buf).PrintResumeSummary(&record)
	assert.Contains(t, buf.String(), "... and 2 more")
}

func TestPrintDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintDiagnostics(parsing.Diagnostics{
		{Path: "education", Message: "expected array, got string"},
		{Path: "technicalSkills.Languages", Message: "dropped non-string item"},
	})
	output := buf.String()

	assert.Contains(t, output, "NORMALIZATION DIAGNOSTICS")
	assert.Contains(t, output, "Applied 2 coercions")
	assert.Contains(t, output, "⚠ education")
	assert.Contains(t, output, "expected array, got string")
}

func TestPrintDiagnostics_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintDiagnostics(nil)
	assert.Contains(t, buf.String(), "ALREADY CANONICAL")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).printBox("TITLE", strings.Repeat("x", 200))

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
	assert.Contains(t, buf.String(), "...")
}

func TestPrintArtifact(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintArtifact("docx", "out/Ada.docx", 1234)
	assert.Contains(t, buf.String(), "WROTE DOCX")
	assert.Contains(t, buf.String(), "1234 bytes")
}
