package source

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"github.com/xuri/excelize/v2"
)

// XLSXReader reads Excel workbooks through excelize.
type XLSXReader struct {
	Fs afero.Fs
	// Sheet selects a worksheet by name; empty means the first sheet.
	Sheet string
}

// NewXLSXReader returns a reader over fsys, defaulting to the OS filesystem.
func NewXLSXReader(fsys afero.Fs, sheet string) *XLSXReader {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &XLSXReader{Fs: fsys, Sheet: sheet}
}

func (x *XLSXReader) Read(ctx context.Context, path string, skipHeaderRows int) (Grid, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fh, err := x.Fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("source: open %s: %w", path, err)
	}
	defer fh.Close()

	book, err := excelize.OpenReader(fh)
	if err != nil {
		return nil, fmt.Errorf("source: parse workbook %s: %w", path, err)
	}
	defer book.Close()

	sheet := x.Sheet
	if sheet == "" {
		sheets := book.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("source: workbook %s has no sheets", path)
		}
		sheet = sheets[0]
	}
	rows, err := book.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("source: read sheet %q of %s: %w", sheet, path, err)
	}
	return finish(rows, skipHeaderRows)
}
