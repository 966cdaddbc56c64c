package rendering

import (
	"github.com/jonathan/resume-formatter/internal/document"
	"github.com/jonathan/resume-formatter/internal/types"
)

// renderSkills emits the legacy flat groups first, then the nested taxonomy.
func renderSkills(legacy types.TechnicalSkills, nested []types.SkillCategory) []document.Block {
	blocks := []document.Block{heading(HeadingSkills)}

	if len(legacy) == 0 && len(nested) == 0 {
		msg := run(NoSkillsMessage)
		msg.Italic = true
		return append(blocks, paragraph(document.AlignLeft, msg))
	}

	for _, group := range legacy {
		blocks = append(blocks, skillLine(group.Category, group.Skills, 0))
	}

	for _, category := range nested {
		blocks = append(blocks, skillLine(category.CategoryName, category.Skills, 0))
		for _, sub := range category.SubCategories {
			blocks = append(blocks, skillLine(sub.Name, sub.Skills, bulletIndent))
		}
	}
	return blocks
}

// skillLine renders "Label: a, b" with the label in bold. A label without
// skills keeps its "Label: " form.
func skillLine(label string, skills []string, indent int) *document.Paragraph {
	p := paragraph(document.AlignLeft, boldRun(label+": "))
	if joined := joinSkills(skills); joined != "" {
		p.Runs = append(p.Runs, run(joined))
	}
	p.Indent = indent
	return p
}
