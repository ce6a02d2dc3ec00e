// Package fields resolves the labelled cells of a fixed-layout form and
// writes values next to them.
//
// Resolution is driven by an ordered rule table. Every table cell is tested
// against the rules in order and the first rule whose label key is contained
// in the trimmed cell text fills it; later rules never see that cell. The
// table is chosen by Mode, which selects how the location, intersection and
// placeholder labels of a template are handled.
package fields
