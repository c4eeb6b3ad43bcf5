// Package docxtest builds small in-memory .docx files for tests.
package docxtest

import (
	"archive/zip"
	"bytes"
	"html"
	"strings"
)

const (
	docOpen  = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:m="http://schemas.openxmlformats.org/officeDocument/2006/math"><w:body>`
	docClose = `<w:sectPr/></w:body></w:document>`

	rootRels = `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`
)

// Run renders a w:r element. Text is XML-escaped.
func Run(text string, bold, underline bool) string {
	var b strings.Builder
	b.WriteString("<w:r>")
	if bold || underline {
		b.WriteString("<w:rPr>")
		if bold {
			b.WriteString("<w:b/><w:bCs/>")
		}
		if underline {
			b.WriteString(`<w:u w:val="single"/>`)
		}
		b.WriteString("</w:rPr>")
	}
	b.WriteString(`<w:t xml:space="preserve">`)
	b.WriteString(html.EscapeString(text))
	b.WriteString("</w:t></w:r>")
	return b.String()
}

func Plain(text string) string     { return Run(text, false, false) }
func Bold(text string) string      { return Run(text, true, false) }
func Underline(text string) string { return Run(text, false, true) }

// Para wraps runs in a w:p element with a typical paragraph property block.
func Para(runs ...string) string {
	return `<w:p w:rsidR="00A1"><w:pPr><w:spacing w:after="0"/><w:rPr><w:b/></w:rPr></w:pPr>` + strings.Join(runs, "") + "</w:p>"
}

// Document wraps paragraphs in the document/body envelope.
func Document(paras ...string) string {
	return docOpen + strings.Join(paras, "") + docClose
}

// Zip packs entries (name → content) into a zip archive.
func Zip(entries map[string]string) []byte {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range entries {
		w, err := zw.Create(name)
		if err != nil {
			panic(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			panic(err)
		}
	}
	if err := zw.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// Docx builds a minimal valid .docx whose body holds paras.
func Docx(paras ...string) []byte {
	return Zip(map[string]string{
		"[Content_Types].xml": `<?xml version="1.0"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`,
		"_rels/.rels":         rootRels,
		"word/document.xml":   Document(paras...),
	})
}
