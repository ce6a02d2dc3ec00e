package fields

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formfill/pkg/document"
)

// Writer performs the cell edits shared by rule actions. Every run it
// creates gets the configured typeface.
type Writer struct {
	Font string
}

// SetCellText replaces the cell content and styles the single resulting run.
func (w *Writer) SetCellText(cell document.Cell, text string, bold bool) error {
	cell.SetText(text)
	paragraphs := cell.Paragraphs()
	if len(paragraphs) == 0 {
		return fmt.Errorf("fields: cell has no paragraph after writing %q", text)
	}
	runs := paragraphs[0].Runs()
	if len(runs) == 0 {
		return fmt.Errorf("fields: cell has no run after writing %q", text)
	}
	w.style(runs[0], bold, 0)
	return nil
}

// AddParagraph appends a paragraph holding one styled run.
func (w *Writer) AddParagraph(cell document.Cell, text string, bold bool) {
	run := cell.AddParagraph().AddRun(text)
	w.style(run, bold, 0)
}

// ReplaceParagraph clears the first paragraph of cell containing key and
// writes one PlaceholderSize run per text.
func (w *Writer) ReplaceParagraph(cell document.Cell, key string, texts ...string) error {
	for _, p := range cell.Paragraphs() {
		if !strings.Contains(p.Text(), key) {
			continue
		}
		p.Clear()
		for _, text := range texts {
			w.style(p.AddRun(text), false, PlaceholderSize)
		}
		return nil
	}
	return fmt.Errorf("fields: no paragraph contains %q", key)
}

func (w *Writer) style(run document.Run, bold bool, size float64) {
	if w.Font != "" {
		run.SetFontName(w.Font)
	}
	run.SetBold(bold)
	if size > 0 {
		run.SetSize(size)
	}
}
