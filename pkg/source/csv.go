package source

import (
	"context"
	"encoding/csv"
	"fmt"

	"github.com/spf13/afero"
)

// CSVReader reads comma-separated exports of the source sheet.
type CSVReader struct {
	Fs    afero.Fs
	Comma rune
}

// NewCSVReader returns a comma-separated reader over fsys.
func NewCSVReader(fsys afero.Fs) *CSVReader {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &CSVReader{Fs: fsys, Comma: ','}
}

func (c *CSVReader) Read(ctx context.Context, path string, skipHeaderRows int) (Grid, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fh, err := c.Fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("source: open %s: %w", path, err)
	}
	defer fh.Close()

	r := csv.NewReader(fh)
	if c.Comma != 0 {
		r.Comma = c.Comma
	}
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("source: parse csv %s: %w", path, err)
	}
	return finish(rows, skipHeaderRows)
}
