// Package document defines the styled document tree produced by the renderer
// and consumed by the serializers.
package document

import "strings"

// Alignment is the horizontal alignment of a paragraph
type Alignment int

// Paragraph alignments
const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
	AlignJustify
)

func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignJustify:
		return "both"
	default:
		return "left"
	}
}

// Style names a paragraph style defined by the serializer
type Style string

// Paragraph styles
const (
	StyleNormal     Style = "Normal"
	StyleTitle      Style = "Title"
	StyleHeading    Style = "Heading1"
	StyleSubheading Style = "Heading2"
	StyleListBullet Style = "ListBullet"
)

// Document is the root of a rendered resume
type Document struct {
	Title string
	Body  []Block
}

// Block is a top-level body element: *Paragraph or *Table
type Block interface {
	isBlock()
}

// Paragraph is a run of styled text
type Paragraph struct {
	Style  Style
	Align  Alignment
	Indent int // left indent in twips
	Bullet bool
	Runs   []Run
}

// Run is a span of text sharing one character style
type Run struct {
	Text   string
	Bold   bool
	Italic bool
	Color  string // hex RGB without '#'
	Size   int    // points, 0 means inherit
	Font   string
}

// Table is a fixed-width grid
type Table struct {
	Widths  []int // column widths in twips
	Borders bool
	Rows    []Row
}

// Row is one table row
type Row struct {
	Header bool
	Cells  []Cell
}

// Cell holds one or more paragraphs
type Cell struct {
	Shading    string // hex RGB fill, empty for none
	Paragraphs []*Paragraph
}

func (*Paragraph) isBlock() {}
func (*Table) isBlock()     {}

// Text concatenates the text of all runs
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Text joins the text of every paragraph in the cell with newlines
func (c Cell) Text() string {
	lines := make([]string, len(c.Paragraphs))
	for i, p := range c.Paragraphs {
		lines[i] = p.Text()
	}
	return strings.Join(lines, "\n")
}

// DataRows returns the rows that are not header rows
func (t *Table) DataRows() []Row {
	rows := make([]Row, 0, len(t.Rows))
	for _, r := range t.Rows {
		if !r.Header {
			rows = append(rows, r)
		}
	}
	return rows
}

// Append adds blocks to the end of the body
func (d *Document) Append(blocks ...Block) {
	d.Body = append(d.Body, blocks...)
}

// Walk visits every paragraph in document order, descending into table
// cells. inTable is true for paragraphs found inside a table.
func (d *Document) Walk(fn func(p *Paragraph, inTable bool)) {
	for _, block := range d.Body {
		switch b := block.(type) {
		case *Paragraph:
			fn(b, false)
		case *Table:
			for _, row := range b.Rows {
				for _, cell := range row.Cells {
					for _, p := range cell.Paragraphs {
						fn(p, true)
					}
				}
			}
		}
	}
}

// Paragraphs returns the top-level body paragraphs, skipping tables
func (d *Document) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, block := range d.Body {
		if p, ok := block.(*Paragraph); ok {
			out = append(out, p)
		}
	}
	return out
}

// Tables returns the top-level tables in body order
func (d *Document) Tables() []*Table {
	var out []*Table
	for _, block := range d.Body {
		if t, ok := block.(*Table); ok {
			out = append(out, t)
		}
	}
	return out
}

// Bullets returns the text of every bulleted paragraph in document order
func (d *Document) Bullets() []string {
	var out []string
	d.Walk(func(p *Paragraph, _ bool) {
		if p.Bullet {
			out = append(out, p.Text())
		}
	})
	return out
}
