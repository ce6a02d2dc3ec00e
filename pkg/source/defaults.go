package source

import "github.com/spf13/afero"

// DefaultRegistry wires the workbook and CSV readers over fsys.
func DefaultRegistry(fsys afero.Fs, sheet string) *Registry {
	registry := NewRegistry()
	xlsx := NewXLSXReader(fsys, sheet)
	registry.MustRegister(".xlsx", xlsx)
	registry.MustRegister(".xlsm", xlsx)
	registry.MustRegister(".csv", NewCSVReader(fsys))
	return registry
}
