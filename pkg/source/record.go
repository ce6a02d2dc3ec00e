package source

import (
	"errors"
	"fmt"
)

var (
	// ErrRowOutOfRange is returned when the configured row is missing.
	ErrRowOutOfRange = errors.New("source: row out of range")
	// ErrColumnOutOfRange is returned when a configured column is missing.
	ErrColumnOutOfRange = errors.New("source: column out of range")
)

// Record holds the raw values consumed by one fill run.
type Record struct {
	Location     string
	Intersection string
}

// Columns locates a Record inside a Grid.
type Columns struct {
	Row          int
	Location     int
	Intersection int
}

// DefaultColumns reads row 1, location from column B and intersection from
// column C.
func DefaultColumns() Columns {
	return Columns{Row: 1, Location: 1, Intersection: 2}
}

// ExtractRecord returns the Record at cols.Row.
func ExtractRecord(grid Grid, cols Columns) (Record, error) {
	if cols.Row < 0 || cols.Row >= len(grid) {
		return Record{}, fmt.Errorf("%w: row %d of %d", ErrRowOutOfRange, cols.Row, len(grid))
	}
	location, ok := grid.Cell(cols.Row, cols.Location)
	if !ok {
		return Record{}, fmt.Errorf("%w: location column %d in row %d", ErrColumnOutOfRange, cols.Location, cols.Row)
	}
	intersection, ok := grid.Cell(cols.Row, cols.Intersection)
	if !ok {
		return Record{}, fmt.Errorf("%w: intersection column %d in row %d", ErrColumnOutOfRange, cols.Intersection, cols.Row)
	}
	return Record{Location: location, Intersection: intersection}, nil
}
