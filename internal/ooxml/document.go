package ooxml

import (
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"

	"github.com/goliatone/go-formfill/pkg/document"
)

// MainNamespace is the WordprocessingML main namespace URI.
const MainNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// Document is an editable WordprocessingML main part plus the rest of its
// package.
type Document struct {
	pkg  *pkg
	main *part
	xml  *etree.Document
	body *etree.Element
	ns   string
}

var _ document.Document = (*Document)(nil)

func newDocument(p *pkg, main *part) (*Document, error) {
	tree := etree.NewDocument()
	if err := tree.ReadFromBytes(main.data); err != nil {
		return nil, fmt.Errorf("ooxml: parse %s: %w", main.name, err)
	}
	root := tree.Root()
	if root == nil {
		return nil, fmt.Errorf("ooxml: %s has no root element", main.name)
	}
	d := &Document{pkg: p, main: main, xml: tree, ns: mainPrefix(root)}
	d.body = d.child(root, "body")
	if d.body == nil {
		return nil, fmt.Errorf("ooxml: %s has no body", main.name)
	}
	return d, nil
}

// mainPrefix finds the prefix bound to the main namespace, defaulting to "w".
func mainPrefix(root *etree.Element) string {
	for _, attr := range root.Attr {
		if attr.Value != MainNamespace {
			continue
		}
		if attr.Space == "xmlns" {
			return attr.Key
		}
		if attr.Space == "" && attr.Key == "xmlns" {
			return ""
		}
	}
	return "w"
}

func (d *Document) name(local string) string {
	if d.ns == "" {
		return local
	}
	return d.ns + ":" + local
}

func (d *Document) is(el *etree.Element, local string) bool {
	return el != nil && el.Space == d.ns && el.Tag == local
}

func (d *Document) child(el *etree.Element, local string) *etree.Element {
	for _, c := range el.ChildElements() {
		if d.is(c, local) {
			return c
		}
	}
	return nil
}

func (d *Document) children(el *etree.Element, local string) []*etree.Element {
	var out []*etree.Element
	for _, c := range el.ChildElements() {
		if d.is(c, local) {
			out = append(out, c)
		}
	}
	return out
}

func (d *Document) val(el *etree.Element) string {
	return el.SelectAttrValue(d.name("val"), "")
}

// Tables returns the body-level tables. Nested tables are reachable only
// through their own cells and are not listed.
func (d *Document) Tables() []document.Table {
	var out []document.Table
	for _, el := range d.children(d.body, "tbl") {
		out = append(out, &table{d: d, el: el})
	}
	return out
}

// Paragraphs returns the body-level paragraphs.
func (d *Document) Paragraphs() []document.Paragraph {
	return d.paragraphsOf(d.body)
}

func (d *Document) paragraphsOf(el *etree.Element) []document.Paragraph {
	var out []document.Paragraph
	for _, p := range d.children(el, "p") {
		out = append(out, &paragraph{d: d, el: p})
	}
	return out
}

// WriteTo serialises the package with the edited main part.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	data, err := d.xml.WriteToBytes()
	if err != nil {
		return 0, fmt.Errorf("ooxml: serialise %s: %w", d.main.name, err)
	}
	d.main.data = data
	return d.pkg.writeTo(w)
}

type table struct {
	d  *Document
	el *etree.Element
}

func (t *table) Rows() []document.Row {
	var out []document.Row
	for _, tr := range t.d.children(t.el, "tr") {
		out = append(out, &row{d: t.d, el: tr})
	}
	return out
}

type row struct {
	d  *Document
	el *etree.Element
}

func (r *row) Cells() []document.Cell {
	var out []document.Cell
	for _, tc := range r.d.children(r.el, "tc") {
		out = append(out, &cell{d: r.d, el: tc})
	}
	return out
}

type cell struct {
	d  *Document
	el *etree.Element
}

func (c *cell) Text() string {
	paragraphs := c.d.children(c.el, "p")
	lines := make([]string, len(paragraphs))
	for i, p := range paragraphs {
		lines[i] = (&paragraph{d: c.d, el: p}).Text()
	}
	return strings.Join(lines, "\n")
}

// SetText drops everything but the cell properties and writes text into a
// fresh paragraph with a single run.
func (c *cell) SetText(text string) {
	for _, child := range c.el.ChildElements() {
		if c.d.is(child, "tcPr") {
			continue
		}
		c.el.RemoveChild(child)
	}
	p := c.AddParagraph()
	p.AddRun(text)
}

func (c *cell) Paragraphs() []document.Paragraph {
	return c.d.paragraphsOf(c.el)
}

func (c *cell) AddParagraph() document.Paragraph {
	p := c.el.CreateElement(c.d.name("p"))
	return &paragraph{d: c.d, el: p}
}

type paragraph struct {
	d  *Document
	el *etree.Element
}

// runContainers hold runs that still belong to the paragraph's visible text.
var runContainers = map[string]bool{"hyperlink": true, "ins": true, "smartTag": true}

func (p *paragraph) runElements() []*etree.Element {
	var out []*etree.Element
	for _, child := range p.el.ChildElements() {
		switch {
		case p.d.is(child, "r"):
			out = append(out, child)
		case child.Space == p.d.ns && runContainers[child.Tag]:
			out = append(out, p.d.children(child, "r")...)
		}
	}
	return out
}

func (p *paragraph) Text() string {
	var b strings.Builder
	for _, r := range p.runElements() {
		b.WriteString((&run{d: p.d, el: r}).Text())
	}
	return b.String()
}

func (p *paragraph) Runs() []document.Run {
	var out []document.Run
	for _, r := range p.runElements() {
		out = append(out, &run{d: p.d, el: r})
	}
	return out
}

// AddRun appends a run. Tabs and newlines become w:tab and w:br elements.
func (p *paragraph) AddRun(text string) document.Run {
	r := p.el.CreateElement(p.d.name("r"))
	rn := &run{d: p.d, el: r}
	rn.appendText(text)
	return rn
}

// Clear removes all content except the paragraph properties.
func (p *paragraph) Clear() {
	for _, child := range p.el.ChildElements() {
		if p.d.is(child, "pPr") {
			continue
		}
		p.el.RemoveChild(child)
	}
}

type run struct {
	d  *Document
	el *etree.Element
}

func (r *run) Text() string {
	var b strings.Builder
	for _, child := range r.el.ChildElements() {
		if child.Space != r.d.ns {
			continue
		}
		switch child.Tag {
		case "t":
			b.WriteString(child.Text())
		case "tab":
			b.WriteByte('\t')
		case "br", "cr":
			b.WriteByte('\n')
		case "noBreakHyphen":
			b.WriteByte('-')
		}
	}
	return b.String()
}

func (r *run) appendText(text string) {
	var pending strings.Builder
	flush := func() {
		if pending.Len() == 0 {
			return
		}
		t := r.el.CreateElement(r.d.name("t"))
		t.CreateAttr("xml:space", "preserve")
		t.SetText(pending.String())
		pending.Reset()
	}
	for _, ch := range text {
		switch ch {
		case '\t':
			flush()
			r.el.CreateElement(r.d.name("tab"))
		case '\n':
			flush()
			r.el.CreateElement(r.d.name("br"))
		case '\r':
		default:
			pending.WriteRune(ch)
		}
	}
	flush()
}
