package rendering

import (
	"github.com/jonathan/resume-formatter/internal/document"
	"github.com/jonathan/resume-formatter/internal/types"
)

func renderSummary(summary []string, sections []types.Subsection) []document.Block {
	blocks := []document.Block{heading(HeadingSummary)}
	blocks = append(blocks, bullets(summary)...)
	for _, section := range sections {
		blocks = append(blocks, renderSubsection(section)...)
	}
	return blocks
}
