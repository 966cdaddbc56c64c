// Package docx serializes a document tree into a WordprocessingML (.docx)
// package.
package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonathan/resume-formatter/internal/document"
)

// ContentType is the MIME type of a .docx file
const ContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Extension is the file extension of a .docx file, without the dot
const Extension = "docx"

// modTime is stamped on every zip entry so equal trees give equal bytes
var modTime = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

const wordNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// Write serializes doc as a .docx package to w
func Write(w io.Writer, doc *document.Document) error {
	if doc == nil {
		return &WriteError{Message: "document is nil"}
	}

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", packageRelsXML},
		{"word/document.xml", documentXML(doc)},
		{"word/styles.xml", stylesXML},
		{"word/numbering.xml", numberingXML},
		{"word/_rels/document.xml.rels", documentRelsXML},
		{"docProps/core.xml", coreXML(doc.Title)},
	}

	zw := zip.NewWriter(w)
	for _, part := range parts {
		header := &zip.FileHeader{
			Name:     part.name,
			Method:   zip.Deflate,
			Modified: modTime,
		}
		fw, err := zw.CreateHeader(header)
		if err != nil {
			return &WriteError{Message: fmt.Sprintf("failed to create %s", part.name), Cause: err}
		}
		if _, err := io.WriteString(fw, part.content); err != nil {
			return &WriteError{Message: fmt.Sprintf("failed to write %s", part.name), Cause: err}
		}
	}
	if err := zw.Close(); err != nil {
		return &WriteError{Message: "failed to finalize package", Cause: err}
	}
	return nil
}

// Bytes serializes doc and returns the package bytes
func Bytes(doc *document.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func documentXML(doc *document.Document) string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	sb.WriteString(`<w:document xmlns:w="` + wordNamespace + `"><w:body>`)

	for _, block := range doc.Body {
		switch b := block.(type) {
		case *document.Paragraph:
			writeParagraph(&sb, b)
		case *document.Table:
			writeTable(&sb, b)
		}
	}

	fmt.Fprintf(&sb, `<w:sectPr><w:pgSz w:w="%d" w:h="%d"/><w:pgMar w:top="%d" w:right="%d" w:bottom="%d" w:left="%d" w:header="720" w:footer="720" w:gutter="0"/></w:sectPr>`,
		pageWidth, pageHeight, pageMargin, pageMargin, pageMargin, pageMargin)
	sb.WriteString(`</w:body></w:document>`)
	return sb.String()
}

func writeParagraph(sb *strings.Builder, p *document.Paragraph) {
	sb.WriteString("<w:p><w:pPr>")
	if p.Style != "" {
		fmt.Fprintf(sb, `<w:pStyle w:val="%s"/>`, EscapeXML(string(p.Style)))
	}
	if p.Bullet {
		fmt.Fprintf(sb, `<w:numPr><w:ilvl w:val="0"/><w:numId w:val="%d"/></w:numPr>`, bulletNumID)
	}
	if p.Indent > 0 {
		if p.Bullet {
			fmt.Fprintf(sb, `<w:ind w:left="%d" w:hanging="360"/>`, p.Indent)
		} else {
			fmt.Fprintf(sb, `<w:ind w:left="%d"/>`, p.Indent)
		}
	}
	fmt.Fprintf(sb, `<w:jc w:val="%s"/>`, p.Align)
	sb.WriteString("</w:pPr>")

	for _, r := range p.Runs {
		writeRun(sb, r)
	}
	sb.WriteString("</w:p>")
}

func writeRun(sb *strings.Builder, r document.Run) {
	sb.WriteString("<w:r><w:rPr>")
	if r.Font != "" {
		font := EscapeXML(r.Font)
		fmt.Fprintf(sb, `<w:rFonts w:ascii="%s" w:hAnsi="%s" w:cs="%s"/>`, font, font, font)
	}
	if r.Bold {
		sb.WriteString("<w:b/><w:bCs/>")
	}
	if r.Italic {
		sb.WriteString("<w:i/><w:iCs/>")
	}
	if r.Color != "" {
		fmt.Fprintf(sb, `<w:color w:val="%s"/>`, EscapeXML(r.Color))
	}
	if r.Size > 0 {
		// sizes are stored in half-points
		fmt.Fprintf(sb, `<w:sz w:val="%d"/><w:szCs w:val="%d"/>`, r.Size*2, r.Size*2)
	}
	sb.WriteString("</w:rPr>")

	lines := strings.Split(r.Text, "\n")
	for i, line := range lines {
		if i > 0 {
			sb.WriteString("<w:br/>")
		}
		fmt.Fprintf(sb, `<w:t xml:space="preserve">%s</w:t>`, EscapeXML(line))
	}
	sb.WriteString("</w:r>")
}

func writeTable(sb *strings.Builder, t *document.Table) {
	total := 0
	for _, w := range t.Widths {
		total += w
	}

	sb.WriteString("<w:tbl><w:tblPr>")
	fmt.Fprintf(sb, `<w:tblW w:w="%d" w:type="dxa"/>`, total)
	border := "nil"
	if t.Borders {
		border = "single"
	}
	sb.WriteString("<w:tblBorders>")
	for _, side := range []string{"top", "left", "bottom", "right", "insideH", "insideV"} {
		if t.Borders {
			fmt.Fprintf(sb, `<w:%s w:val="%s" w:sz="4" w:space="0" w:color="808080"/>`, side, border)
		} else {
			fmt.Fprintf(sb, `<w:%s w:val="%s"/>`, side, border)
		}
	}
	// tblLayout follows tblBorders in CT_TblPr
	sb.WriteString(`</w:tblBorders><w:tblLayout w:type="fixed"/></w:tblPr><w:tblGrid>`)
	for _, w := range t.Widths {
		fmt.Fprintf(sb, `<w:gridCol w:w="%d"/>`, w)
	}
	sb.WriteString("</w:tblGrid>")

	for _, row := range t.Rows {
		sb.WriteString("<w:tr>")
		if row.Header {
			sb.WriteString("<w:trPr><w:tblHeader/></w:trPr>")
		}
		for i, cell := range row.Cells {
			sb.WriteString("<w:tc><w:tcPr>")
			if i < len(t.Widths) {
				fmt.Fprintf(sb, `<w:tcW w:w="%d" w:type="dxa"/>`, t.Widths[i])
			}
			if cell.Shading != "" {
				fmt.Fprintf(sb, `<w:shd w:val="clear" w:color="auto" w:fill="%s"/>`, EscapeXML(cell.Shading))
			}
			sb.WriteString("</w:tcPr>")
			if len(cell.Paragraphs) == 0 {
				// a cell must hold at least one paragraph
				sb.WriteString("<w:p/>")
			}
			for _, p := range cell.Paragraphs {
				writeParagraph(sb, p)
			}
			sb.WriteString("</w:tc>")
		}
		sb.WriteString("</w:tr>")
	}
	sb.WriteString("</w:tbl>")
}
