package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/jonathan/resume-formatter/internal/document"
	"github.com/jonathan/resume-formatter/internal/parsing"
	"github.com/jonathan/resume-formatter/internal/rendering"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readPackage(t *testing.T, data []byte) (names []string, parts map[string]string) {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	parts = make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())

		names = append(names, f.Name)
		parts[f.Name] = string(content)
	}
	return names, parts
}

func assertWellFormed(t *testing.T, name, content string) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(content))
	for {
		_, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return
		}
		require.NoError(t, err, "part %s is not well-formed", name)
	}
}

func sampleDocument() *document.Document {
	record := parsing.NormalizeJSON([]byte(`{
		"name": "Ada & Co <Ltd>",
		"title": "Engineer",
		"employmentHistory": [{"companyName": "Acme", "projects": [{"projectName": "X",
			"projectResponsibilities": ["", "  ", "Built Y"]}]}],
		"technicalSkills": {"Languages": ["Go", "Rust"]}
	}`))
	return rendering.RenderDocument(record)
}

func TestWrite_PackageLayout(t *testing.T) {
	data, err := Bytes(sampleDocument())
	require.NoError(t, err)

	names, parts := readPackage(t, data)
	assert.Equal(t, []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"word/document.xml",
		"word/styles.xml",
		"word/numbering.xml",
		"word/_rels/document.xml.rels",
		"docProps/core.xml",
	}, names)

	for name, content := range parts {
		assertWellFormed(t, name, content)
	}
}

func TestWrite_DocumentContent(t *testing.T) {
	data, err := Bytes(sampleDocument())
	require.NoError(t, err)

	_, parts := readPackage(t, data)
	body := parts["word/document.xml"]

	assert.Contains(t, body, "Ada &amp; Co &lt;Ltd&gt;")
	assert.Contains(t, body, `<w:t xml:space="preserve">Built Y</w:t>`)
	assert.Contains(t, body, `<w:t xml:space="preserve">Languages: </w:t>`)
	assert.Contains(t, body, `<w:jc w:val="center"/>`)
	assert.Contains(t, body, `<w:shd w:val="clear" w:color="auto" w:fill="D9E2F3"/>`)
	assert.Contains(t, body, "<w:tblHeader/>")
	assert.Contains(t, body, `<w:color w:val="1F4E79"/>`)
	assert.Contains(t, body, `<w:sz w:val="20"/>`)

	// one bullet: the single non-blank project responsibility
	assert.Equal(t, 1, strings.Count(body, "<w:numPr>"))
	// one placeholder row per fixed table
	assert.Equal(t, 11, strings.Count(body, `<w:t xml:space="preserve">-</w:t>`))

	assert.Contains(t, parts["docProps/core.xml"], "<dc:title>Ada &amp; Co &lt;Ltd&gt;</dc:title>")
}

func TestWrite_Deterministic(t *testing.T) {
	first, err := Bytes(sampleDocument())
	require.NoError(t, err)
	second, err := Bytes(sampleDocument())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestWrite_BordersAndEmptyCells(t *testing.T) {
	doc := &document.Document{Title: "t"}
	doc.Append(
		&document.Table{Widths: []int{100}, Borders: false, Rows: []document.Row{{Cells: []document.Cell{{}}}}},
		&document.Table{Widths: []int{100}, Borders: true, Rows: []document.Row{{Cells: []document.Cell{{}}}}},
	)

	data, err := Bytes(doc)
	require.NoError(t, err)
	_, parts := readPackage(t, data)
	body := parts["word/document.xml"]

	assert.Contains(t, body, `<w:top w:val="nil"/>`)
	assert.Contains(t, body, `<w:top w:val="single" w:sz="4" w:space="0" w:color="808080"/>`)
	assert.Equal(t, 2, strings.Count(body, "<w:tc><w:tcPr><w:tcW w:w=\"100\" w:type=\"dxa\"/></w:tcPr><w:p/></w:tc>"))
	assertWellFormed(t, "word/document.xml", body)
}

// childElements returns the local names of the direct children of the first
// <w:parent> element found after marker in content.
func childElements(t *testing.T, content, marker, parent string) []string {
	t.Helper()
	start := strings.Index(content, marker)
	require.GreaterOrEqual(t, start, 0, "marker %q not found", marker)
	open := strings.Index(content[start:], "<w:"+parent+">")
	require.GreaterOrEqual(t, open, 0, "<w:%s> not found", parent)
	fragment := content[start+open:]
	closing := strings.Index(fragment, "</w:"+parent+">")
	require.GreaterOrEqual(t, closing, 0)
	fragment = fragment[:closing+len("</w:"+parent+">")]

	var names []string
	depth := 0
	dec := xml.NewDecoder(strings.NewReader(fragment))
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return names
		}
		require.NoError(t, err)
		switch el := tok.(type) {
		case xml.StartElement:
			if depth == 1 {
				names = append(names, el.Name.Local)
			}
			depth++
		case xml.EndElement:
			depth--
		}
	}
}

func TestWrite_PropertyElementOrder(t *testing.T) {
	data, err := Bytes(sampleDocument())
	require.NoError(t, err)
	_, parts := readPackage(t, data)

	assert.Equal(t, []string{"tblW", "tblBorders", "tblLayout"},
		childElements(t, parts["word/document.xml"], "<w:tbl>", "tblPr"))
	assert.Equal(t, []string{"keepNext", "pBdr", "spacing", "outlineLvl"},
		childElements(t, parts["word/styles.xml"], `w:styleId="Heading1"`, "pPr"))
	assert.Equal(t, []string{"keepNext", "spacing", "outlineLvl"},
		childElements(t, parts["word/styles.xml"], `w:styleId="Heading2"`, "pPr"))
}

func TestWrite_MultilineRunUsesBreaks(t *testing.T) {
	doc := &document.Document{}
	doc.Append(&document.Paragraph{Runs: []document.Run{{Text: "a\nb"}}})

	data, err := Bytes(doc)
	require.NoError(t, err)
	_, parts := readPackage(t, data)

	assert.Contains(t, parts["word/document.xml"],
		`<w:t xml:space="preserve">a</w:t><w:br/><w:t xml:space="preserve">b</w:t>`)
}

func TestWrite_NilDocument(t *testing.T) {
	_, err := Bytes(nil)
	require.Error(t, err)

	var writeErr *WriteError
	assert.ErrorAs(t, err, &writeErr)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWrite_WriterFailure(t *testing.T) {
	err := Write(failingWriter{}, sampleDocument())
	require.Error(t, err)

	var writeErr *WriteError
	assert.ErrorAs(t, err, &writeErr)
}

func TestEscapeXML(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"plain", "plain"},
		{`a & b < c > d "e" 'f'`, "a &amp; b &lt; c &gt; d &quot;e&quot; &apos;f&apos;"},
		{"tab\tkept", "tab\tkept"},
		{"bell\x07dropped", "belldropped"},
		{"naïve café", "naïve café"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, EscapeXML(tt.input))
		})
	}
}
