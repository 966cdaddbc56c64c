package rendering

import (
	"strings"

	"github.com/jonathan/resume-formatter/internal/document"
)

// Visual constants of the generated document
const (
	BrandColor    = "1F4E79"
	HeaderShading = "D9E2F3"
	BodyFont      = "Calibri"

	nameSize    = 20
	headingSize = 13
	bodySize    = 10

	// contentWidth is the usable page width in twips (A4 with 0.75in margins)
	contentWidth = 9746
	bulletIndent = 360

	placeholder = "-"
)

func run(text string) document.Run {
	return document.Run{Text: text, Font: BodyFont, Size: bodySize}
}

func boldRun(text string) document.Run {
	r := run(text)
	r.Bold = true
	return r
}

func brandRun(text string) document.Run {
	r := boldRun(text)
	r.Color = BrandColor
	return r
}

func paragraph(align document.Alignment, runs ...document.Run) *document.Paragraph {
	return &document.Paragraph{Style: document.StyleNormal, Align: align, Runs: runs}
}

func heading(text string) *document.Paragraph {
	r := brandRun(text)
	r.Size = headingSize
	return &document.Paragraph{Style: document.StyleHeading, Runs: []document.Run{r}}
}

func subheading(text string) *document.Paragraph {
	return &document.Paragraph{Style: document.StyleSubheading, Runs: []document.Run{boldRun(text)}}
}

func bullet(text string) *document.Paragraph {
	return &document.Paragraph{
		Style:  document.StyleListBullet,
		Align:  document.AlignJustify,
		Indent: bulletIndent,
		Bullet: true,
		Runs:   []document.Run{run(text)},
	}
}

// labelValue renders a bold label followed by plain text on one line
func labelValue(label, value string) *document.Paragraph {
	return paragraph(document.AlignLeft, boldRun(label), run(value))
}

func spacer() *document.Paragraph {
	return paragraph(document.AlignLeft)
}

// columns splits the content width into n equal columns
func columns(n int) []int {
	widths := make([]int, n)
	for i := range widths {
		widths[i] = contentWidth / n
	}
	return widths
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// nonBlank returns the entries that contain visible text, in order
func nonBlank(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if !isBlank(item) {
			out = append(out, item)
		}
	}
	return out
}

func bullets(items []string) []document.Block {
	var blocks []document.Block
	for _, item := range nonBlank(items) {
		blocks = append(blocks, bullet(item))
	}
	return blocks
}

func joinSkills(skills []string) string {
	return strings.Join(nonBlank(skills), ", ")
}
