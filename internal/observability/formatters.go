// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-formatter/internal/parsing"
	"github.com/jonathan/resume-formatter/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// PrintResumeSummary outputs a human-readable overview of a normalized record.
func (p *Printer) PrintResumeSummary(record *types.ResumeRecord) {
	if record == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", orDash(record.Name)))
	sb.WriteString(fmt.Sprintf("Title:    %s\n", orDash(record.Title)))
	if record.RequisitionNumber != "" {
		sb.WriteString(fmt.Sprintf("Req #:    %s\n", record.RequisitionNumber))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Summary bullets:  %d\n", len(record.ProfessionalSummary)))
	sb.WriteString(fmt.Sprintf("Education:        %d\n", len(record.Education)))
	sb.WriteString(fmt.Sprintf("Certifications:   %d\n", len(record.Certifications)))
	sb.WriteString(fmt.Sprintf("Skill groups:     %d\n", len(record.TechnicalSkills)+len(record.SkillCategories)))

	if len(record.EmploymentHistory) > 0 {
		sb.WriteString("\nEmployment:\n")
		count := min(len(record.EmploymentHistory), maxItemsToShow)
		for i := 0; i < count; i++ {
			job := record.EmploymentHistory[i]
			sb.WriteString(fmt.Sprintf("  • %s", orDash(job.CompanyName)))
			if job.WorkPeriod != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", job.WorkPeriod))
			}
			sb.WriteString("\n")
			if len(job.Projects) > 0 {
				sb.WriteString(fmt.Sprintf("    %d projects\n", len(job.Projects)))
			}
		}
		if len(record.EmploymentHistory) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(record.EmploymentHistory)-maxItemsToShow))
		}
	}

	p.printBox("NORMALIZED RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDiagnostics outputs the coercions applied while normalizing.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintDiagnostics(diags parsing.Diagnostics) {
	if len(diags) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ INPUT WAS ALREADY CANONICAL")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Applied %d coercions:\n\n", len(diags)))

	for i, d := range diags {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", d.Path))
		sb.WriteString(fmt.Sprintf("  %s\n", d.Message))
		if i < len(diags)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("NORMALIZATION DIAGNOSTICS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintArtifact reports a file written by a render command.
func (p *Printer) PrintArtifact(kind, path string, size int) {
	p.printBox("WROTE "+strings.ToUpper(kind), fmt.Sprintf("Path:  %s\nSize:  %d bytes", path, size))
}
