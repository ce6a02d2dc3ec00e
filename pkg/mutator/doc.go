// Package mutator finishes a filled document: it applies the typeface
// policy to every run, derives the output path from the location value and
// writes the result.
package mutator
