// Package normalize holds the pure string transformations applied to raw
// spreadsheet values before they reach a document: street-name casing with a
// fixed abbreviation table, decomposition of compound location codes such as
// "12.34 (Block A) Oak Rd" into a number and descriptive text, and filename
// sanitisation for output paths. Inputs are NFC-normalised first so
// decomposed accents behave like their composed forms.
package normalize
