// Package document describes the table/paragraph/run tree that field
// resolution mutates. The engine never creates cells; it only edits the
// contents of cells supplied by an implementation such as internal/ooxml.
package document

import (
	"context"
	"io"
)

// Document exposes the body-level tables and paragraphs of an open document.
type Document interface {
	Tables() []Table
	Paragraphs() []Paragraph
	// WriteTo serialises the document in its native container format.
	WriteTo(w io.Writer) (int64, error)
}

// Table is an ordered list of rows.
type Table interface {
	Rows() []Row
}

// Row is an ordered list of cells. Merged cells appear once.
type Row interface {
	Cells() []Cell
}

// Cell is a mutable text container holding paragraphs.
type Cell interface {
	// Text joins the paragraph texts with newlines.
	Text() string
	// SetText replaces the whole cell content with a single paragraph holding
	// a single run.
	SetText(text string)
	Paragraphs() []Paragraph
	AddParagraph() Paragraph
}

// Paragraph is an ordered list of runs.
type Paragraph interface {
	Text() string
	Runs() []Run
	AddRun(text string) Run
	// Clear removes every run while keeping paragraph properties.
	Clear()
}

// Run is a span of text sharing one set of character properties.
type Run interface {
	Text() string
	FontName() string
	SetFontName(name string)
	Bold() bool
	SetBold(bold bool)
	// Size reports the explicit font size in points, or 0 when inherited.
	Size() float64
	SetSize(points float64)
}

// Opener loads a document from a path.
type Opener interface {
	Open(ctx context.Context, path string) (Document, error)
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(ctx context.Context, path string) (Document, error)

// Open calls f.
func (f OpenerFunc) Open(ctx context.Context, path string) (Document, error) {
	return f(ctx, path)
}

// Walk visits every paragraph of doc: body paragraphs first, then the
// paragraphs of every table cell in row order.
func Walk(doc Document, fn func(Paragraph)) {
	if doc == nil || fn == nil {
		return
	}
	for _, p := range doc.Paragraphs() {
		fn(p)
	}
	for _, table := range doc.Tables() {
		for _, row := range table.Rows() {
			for _, cell := range row.Cells() {
				for _, p := range cell.Paragraphs() {
					fn(p)
				}
			}
		}
	}
}
