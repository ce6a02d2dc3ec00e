package testsupport

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`

const rootRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`

// DocumentXML wraps body markup in a WordprocessingML document part.
func DocumentXML(body ...string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		strings.Join(body, "") +
		`<w:sectPr/></w:body></w:document>`
}

// ParagraphXML renders a paragraph with one run per line of text.
func ParagraphXML(text string) string {
	var b strings.Builder
	b.WriteString("<w:p>")
	for _, run := range strings.Split(text, "\n") {
		b.WriteString(`<w:r><w:t xml:space="preserve">`)
		b.WriteString(escape(run))
		b.WriteString("</w:t></w:r>")
	}
	b.WriteString("</w:p>")
	return b.String()
}

// TableXML renders a table where each cell string becomes one paragraph per
// line.
func TableXML(rows ...[]string) string {
	var b strings.Builder
	b.WriteString("<w:tbl><w:tblPr/>")
	for _, row := range rows {
		b.WriteString("<w:tr>")
		for _, cell := range row {
			b.WriteString("<w:tc><w:tcPr/>")
			for _, line := range strings.Split(cell, "\n") {
				b.WriteString(ParagraphXML(line))
			}
			b.WriteString("</w:tc>")
		}
		b.WriteString("</w:tr>")
	}
	b.WriteString("</w:tbl>")
	return b.String()
}

// CheckBoxXML renders a paragraph holding a legacy checkbox form field.
func CheckBoxXML(name string, checked bool) string {
	state := ""
	if checked {
		state = `<w:checked/>`
	}
	return `<w:p><w:r><w:fldChar w:fldCharType="begin"><w:ffData><w:name w:val="` + escape(name) +
		`"/><w:enabled/><w:calcOnExit w:val="0"/><w:checkBox><w:sizeAuto/><w:default w:val="0"/>` + state +
		`</w:checkBox></w:ffData></w:fldChar></w:r><w:r><w:instrText xml:space="preserve"> FORMCHECKBOX </w:instrText></w:r>` +
		`<w:r><w:fldChar w:fldCharType="end"/></w:r><w:r><w:t xml:space="preserve"> ` + escape(name) + `</w:t></w:r></w:p>`
}

// TextInputXML renders a paragraph holding a legacy text form field.
func TextInputXML(name string) string {
	return `<w:p><w:r><w:fldChar w:fldCharType="begin"><w:ffData><w:name w:val="` + escape(name) +
		`"/><w:enabled/><w:textInput/></w:ffData></w:fldChar></w:r><w:r><w:instrText xml:space="preserve"> FORMTEXT </w:instrText></w:r>` +
		`<w:r><w:fldChar w:fldCharType="end"/></w:r></w:p>`
}

// BuildDocx assembles a minimal .docx package around the given body markup.
func BuildDocx(t testing.TB, body ...string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	parts := []struct{ name, data string }{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", rootRelsXML},
		{"word/document.xml", DocumentXML(body...)},
	}
	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			t.Fatalf("create %s: %v", part.name, err)
		}
		if _, err := w.Write([]byte(part.data)); err != nil {
			t.Fatalf("write %s: %v", part.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close docx: %v", err)
	}
	return buf.Bytes()
}

// WriteDocx writes a fixture package to path on fsys.
func WriteDocx(t testing.TB, fsys afero.Fs, path string, body ...string) {
	t.Helper()
	if err := afero.WriteFile(fsys, path, BuildDocx(t, body...), 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", path, err)
	}
}

// ReadPart returns one part of a .docx package stored on fsys.
func ReadPart(t testing.TB, fsys afero.Fs, path, part string) string {
	t.Helper()

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open zip %s: %v", path, err)
	}
	for _, f := range zr.File {
		if f.Name != part {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open part %s: %v", part, err)
		}
		defer rc.Close()
		var out bytes.Buffer
		if _, err := out.ReadFrom(rc); err != nil {
			t.Fatalf("read part %s: %v", part, err)
		}
		return out.String()
	}
	t.Fatalf("part %s not found in %s", part, path)
	return ""
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

func escape(s string) string {
	var b strings.Builder
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		panic(fmt.Sprintf("testsupport: escape %q: %v", s, err))
	}
	return b.String()
}
