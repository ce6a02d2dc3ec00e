// Package source reads the tabular input that feeds a fill run. Readers turn
// a spreadsheet or CSV file into a Grid of trimmed, markup-free strings and a
// Registry picks the reader from the file extension. ExtractRecord pulls the
// location and intersection values out of one row.
package source
