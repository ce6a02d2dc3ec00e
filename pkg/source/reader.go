package source

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// ErrUnsupportedFormat is returned when no reader handles a file extension.
var ErrUnsupportedFormat = errors.New("source: unsupported format")

// Grid is a zero-based (row, column) table of cell strings. Rows may be
// ragged.
type Grid [][]string

// Cell returns the value at (row, col) and whether it exists.
func (g Grid) Cell(row, col int) (string, bool) {
	if row < 0 || row >= len(g) {
		return "", false
	}
	if col < 0 || col >= len(g[row]) {
		return "", false
	}
	return g[row][col], true
}

// Reader loads a file into a Grid after dropping skipHeaderRows leading rows.
type Reader interface {
	Read(ctx context.Context, path string, skipHeaderRows int) (Grid, error)
}

// ReaderFunc adapts a function to Reader.
type ReaderFunc func(ctx context.Context, path string, skipHeaderRows int) (Grid, error)

// Read calls f.
func (f ReaderFunc) Read(ctx context.Context, path string, skipHeaderRows int) (Grid, error) {
	return f(ctx, path, skipHeaderRows)
}

// Registry stores readers by lower-case file extension (".xlsx").
type Registry struct {
	mu      sync.RWMutex
	readers map[string]Reader
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		readers: make(map[string]Reader),
	}
}

// Register adds a reader for ext. Duplicate extensions return an error.
func (r *Registry) Register(ext string, reader Reader) error {
	if reader == nil {
		return fmt.Errorf("source: reader is required")
	}
	ext = normalizeExt(ext)
	if ext == "" {
		return fmt.Errorf("source: extension is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.readers[ext]; exists {
		return fmt.Errorf("source: reader for %q already registered", ext)
	}
	r.readers[ext] = reader
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(ext string, reader Reader) {
	if err := r.Register(ext, reader); err != nil {
		panic(err)
	}
}

// Lookup returns the reader for the extension of path.
func (r *Registry) Lookup(path string) (Reader, error) {
	ext := normalizeExt(filepath.Ext(path))

	r.mu.RLock()
	defer r.mu.RUnlock()

	reader, ok := r.readers[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q (%s)", ErrUnsupportedFormat, ext, path)
	}
	return reader, nil
}

// Read dispatches to the reader registered for path.
func (r *Registry) Read(ctx context.Context, path string, skipHeaderRows int) (Grid, error) {
	reader, err := r.Lookup(path)
	if err != nil {
		return nil, err
	}
	return reader.Read(ctx, path, skipHeaderRows)
}

// Extensions returns a sorted list of registered extensions.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]string, 0, len(r.readers))
	for ext := range r.readers {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// finish sanitises every cell and drops the header rows.
func finish(rows [][]string, skipHeaderRows int) (Grid, error) {
	if skipHeaderRows < 0 {
		return nil, fmt.Errorf("source: skip header rows must be >= 0, got %d", skipHeaderRows)
	}
	if skipHeaderRows >= len(rows) {
		return Grid{}, nil
	}
	rows = rows[skipHeaderRows:]
	grid := make(Grid, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row))
		for j, value := range row {
			cells[j] = CleanCell(value)
		}
		grid[i] = cells
	}
	return grid, nil
}
