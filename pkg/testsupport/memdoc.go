package testsupport

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/goliatone/go-formfill/pkg/document"
)

// MemDocument is an in-memory document.Document used by tests that do not
// need a real .docx container.
type MemDocument struct {
	Body      []*MemParagraph
	TableList []*MemTable
}

// MemTable is an in-memory table.
type MemTable struct {
	RowList []*MemRow
}

// MemRow is an in-memory table row.
type MemRow struct {
	CellList []*MemCell
}

// MemCell is an in-memory table cell.
type MemCell struct {
	Paras []*MemParagraph
}

// MemParagraph is an in-memory paragraph.
type MemParagraph struct {
	RunList []*MemRun
}

// MemRun is an in-memory run.
type MemRun struct {
	Value  string  `json:"text"`
	Font   string  `json:"font,omitempty"`
	IsBold bool    `json:"bold,omitempty"`
	Points float64 `json:"size,omitempty"`
}

var (
	_ document.Document  = (*MemDocument)(nil)
	_ document.Cell      = (*MemCell)(nil)
	_ document.Paragraph = (*MemParagraph)(nil)
	_ document.Run       = (*MemRun)(nil)
)

// NewMemDocument builds a document with one table per grid. Each cell
// string becomes a cell whose lines are paragraphs of a single run.
func NewMemDocument(grids ...[][]string) *MemDocument {
	doc := &MemDocument{}
	for _, grid := range grids {
		table := &MemTable{}
		for _, cells := range grid {
			row := &MemRow{}
			for _, text := range cells {
				row.CellList = append(row.CellList, NewMemCell(text))
			}
			table.RowList = append(table.RowList, row)
		}
		doc.TableList = append(doc.TableList, table)
	}
	return doc
}

// NewMemCell builds a cell from newline separated paragraph text.
func NewMemCell(text string) *MemCell {
	cell := &MemCell{}
	for _, line := range strings.Split(text, "\n") {
		p := &MemParagraph{}
		p.AddRun(line)
		cell.Paras = append(cell.Paras, p)
	}
	return cell
}

// Cell returns the cell at the given zero-based coordinates.
func (d *MemDocument) Cell(table, row, col int) *MemCell {
	return d.TableList[table].RowList[row].CellList[col]
}

func (d *MemDocument) Tables() []document.Table {
	out := make([]document.Table, len(d.TableList))
	for i, t := range d.TableList {
		out[i] = t
	}
	return out
}

func (d *MemDocument) Paragraphs() []document.Paragraph {
	return paragraphs(d.Body)
}

// WriteTo encodes the document tree as JSON.
func (d *MemDocument) WriteTo(w io.Writer) (int64, error) {
	payload, err := json.Marshal(d.snapshot())
	if err != nil {
		return 0, err
	}
	n, err := w.Write(payload)
	return int64(n), err
}

func (d *MemDocument) snapshot() map[string]any {
	tables := make([][][]string, 0, len(d.TableList))
	for _, t := range d.TableList {
		rows := make([][]string, 0, len(t.RowList))
		for _, r := range t.RowList {
			cells := make([]string, 0, len(r.CellList))
			for _, c := range r.CellList {
				cells = append(cells, c.Text())
			}
			rows = append(rows, cells)
		}
		tables = append(tables, rows)
	}
	body := make([]string, 0, len(d.Body))
	for _, p := range d.Body {
		body = append(body, p.Text())
	}
	return map[string]any{"body": body, "tables": tables}
}

func (t *MemTable) Rows() []document.Row {
	out := make([]document.Row, len(t.RowList))
	for i, r := range t.RowList {
		out[i] = r
	}
	return out
}

func (r *MemRow) Cells() []document.Cell {
	out := make([]document.Cell, len(r.CellList))
	for i, c := range r.CellList {
		out[i] = c
	}
	return out
}

func (c *MemCell) Text() string {
	lines := make([]string, len(c.Paras))
	for i, p := range c.Paras {
		lines[i] = p.Text()
	}
	return strings.Join(lines, "\n")
}

func (c *MemCell) SetText(text string) {
	p := &MemParagraph{}
	p.AddRun(text)
	c.Paras = []*MemParagraph{p}
}

func (c *MemCell) Paragraphs() []document.Paragraph {
	return paragraphs(c.Paras)
}

func (c *MemCell) AddParagraph() document.Paragraph {
	p := &MemParagraph{}
	c.Paras = append(c.Paras, p)
	return p
}

// Lines returns the text of every paragraph in the cell.
func (c *MemCell) Lines() []string {
	lines := make([]string, len(c.Paras))
	for i, p := range c.Paras {
		lines[i] = p.Text()
	}
	return lines
}

func (p *MemParagraph) Text() string {
	var b strings.Builder
	for _, r := range p.RunList {
		b.WriteString(r.Value)
	}
	return b.String()
}

func (p *MemParagraph) Runs() []document.Run {
	out := make([]document.Run, len(p.RunList))
	for i, r := range p.RunList {
		out[i] = r
	}
	return out
}

func (p *MemParagraph) AddRun(text string) document.Run {
	r := &MemRun{Value: text}
	p.RunList = append(p.RunList, r)
	return r
}

func (p *MemParagraph) Clear() {
	p.RunList = nil
}

func (r *MemRun) Text() string            { return r.Value }
func (r *MemRun) FontName() string        { return r.Font }
func (r *MemRun) SetFontName(name string) { r.Font = name }
func (r *MemRun) Bold() bool              { return r.IsBold }
func (r *MemRun) SetBold(bold bool)       { r.IsBold = bold }
func (r *MemRun) Size() float64           { return r.Points }
func (r *MemRun) SetSize(points float64)  { r.Points = points }

func paragraphs(in []*MemParagraph) []document.Paragraph {
	out := make([]document.Paragraph, len(in))
	for i, p := range in {
		out[i] = p
	}
	return out
}
