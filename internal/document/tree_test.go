package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() *Document {
	doc := &Document{Title: "Sample"}
	doc.Append(
		&Paragraph{Style: StyleTitle, Runs: []Run{{Text: "Ada "}, {Text: "Lovelace", Bold: true}}},
		&Table{
			Widths: []int{100, 100},
			Rows: []Row{
				{Header: true, Cells: []Cell{
					{Paragraphs: []*Paragraph{{Runs: []Run{{Text: "H1"}}}}},
					{Paragraphs: []*Paragraph{{Runs: []Run{{Text: "H2"}}}}},
				}},
				{Cells: []Cell{
					{Paragraphs: []*Paragraph{{Runs: []Run{{Text: "a"}}}, {Runs: []Run{{Text: "b"}}}}},
					{Paragraphs: []*Paragraph{{Bullet: true, Runs: []Run{{Text: "cell bullet"}}}}},
				}},
			},
		},
		&Paragraph{Bullet: true, Runs: []Run{{Text: "body bullet"}}},
	)
	return doc
}

func TestParagraph_Text(t *testing.T) {
	p := &Paragraph{Runs: []Run{{Text: "Key Technologies: "}, {Text: "Go"}}}
	assert.Equal(t, "Key Technologies: Go", p.Text())
	assert.Equal(t, "", (&Paragraph{}).Text())
}

func TestCell_Text(t *testing.T) {
	doc := sampleDocument()
	table := doc.Tables()[0]
	assert.Equal(t, "a\nb", table.Rows[1].Cells[0].Text())
}

func TestTable_DataRows(t *testing.T) {
	doc := sampleDocument()
	rows := doc.Tables()[0].DataRows()
	require.Len(t, rows, 1)
	assert.False(t, rows[0].Header)
}

func TestDocument_Walk(t *testing.T) {
	doc := sampleDocument()

	var texts []string
	var inTable []bool
	doc.Walk(func(p *Paragraph, table bool) {
		texts = append(texts, p.Text())
		inTable = append(inTable, table)
	})

	assert.Equal(t, []string{"Ada Lovelace", "H1", "H2", "a", "b", "cell bullet", "body bullet"}, texts)
	assert.Equal(t, []bool{false, true, true, true, true, true, false}, inTable)
}

func TestDocument_ParagraphsAndTables(t *testing.T) {
	doc := sampleDocument()
	assert.Len(t, doc.Paragraphs(), 2)
	assert.Len(t, doc.Tables(), 1)
}

func TestDocument_Bullets(t *testing.T) {
	doc := sampleDocument()
	assert.Equal(t, []string{"cell bullet", "body bullet"}, doc.Bullets())
}

func TestAlignment_String(t *testing.T) {
	assert.Equal(t, "left", AlignLeft.String())
	assert.Equal(t, "center", AlignCenter.String())
	assert.Equal(t, "right", AlignRight.String())
	assert.Equal(t, "both", AlignJustify.String())
}
