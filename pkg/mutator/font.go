package mutator

import "github.com/goliatone/go-formfill/pkg/document"

// FontPolicy is the typeface applied to every run. Size is in points and is
// left alone when zero.
type FontPolicy struct {
	Name string
	Size float64
}

// ApplyFontPolicy forces policy onto every run of the body paragraphs and of
// every table cell. It returns the number of runs visited.
func ApplyFontPolicy(doc document.Document, policy FontPolicy) int {
	runs := 0
	document.Walk(doc, func(p document.Paragraph) {
		for _, run := range p.Runs() {
			runs++
			if policy.Name != "" {
				run.SetFontName(policy.Name)
			}
			if policy.Size > 0 {
				run.SetSize(policy.Size)
			}
		}
	})
	return runs
}
