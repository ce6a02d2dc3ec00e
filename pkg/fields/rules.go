package fields

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formfill/pkg/document"
	"github.com/goliatone/go-formfill/pkg/normalize"
)

// Label keys as they appear in the template.
const (
	LabelDesignConsultant = "Design Consultant:"
	LabelDesignEngineer   = "Design Engineer:"
	LabelPhoneNumber      = "Phone Number:"
	LabelCurbRampLocation = "Curb Ramp Location:"
	LabelIntersection     = "Intersection:"
	LabelProjectName      = "Project Name:"
	LabelProjectNumber    = "Project #:"
	LabelCRLocation       = "CR location"
	LabelILocation        = "I location"
)

// PlaceholderSize is the point size of runs written into placeholder
// paragraphs.
const PlaceholderSize = 12

// Values carries everything a rule can write.
type Values struct {
	DesignConsultant string
	DesignEngineer   string
	Phone            string
	Email            string
	ProjectName      string
	ProjectNumber    string

	// Location is the formatted location ("45 Main St").
	Location string
	// ShortLocation is the street text used by placeholder templates.
	ShortLocation string
	// Intersection is the raw intersection value from the source row.
	Intersection string
}

// Action fills a matched cell.
type Action func(w *Writer, cell document.Cell, values Values) error

// Rule binds a label key to an action.
type Rule struct {
	Key   string
	Match func(cellText string) bool
	Apply Action
}

// Contains returns a case-sensitive substring predicate.
func Contains(key string) func(string) bool {
	return func(text string) bool {
		return strings.Contains(text, key)
	}
}

func rule(key string, apply Action) Rule {
	return Rule{Key: key, Match: Contains(key), Apply: apply}
}

// Table returns the ordered rules for mode.
func Table(mode Mode) ([]Rule, error) {
	static := func(label string, pick func(Values) string, bold bool) Rule {
		return rule(label, func(w *Writer, cell document.Cell, v Values) error {
			return w.SetCellText(cell, label+" "+pick(v), bold)
		})
	}
	consultant := static(LabelDesignConsultant, func(v Values) string { return v.DesignConsultant }, true)
	engineer := static(LabelDesignEngineer, func(v Values) string { return v.DesignEngineer }, true)
	projectName := static(LabelProjectName, func(v Values) string { return v.ProjectName }, false)
	projectNumber := static(LabelProjectNumber, func(v Values) string { return v.ProjectNumber }, false)
	phone := rule(LabelPhoneNumber, func(w *Writer, cell document.Cell, v Values) error {
		if err := w.SetCellText(cell, LabelPhoneNumber+" "+v.Phone, false); err != nil {
			return err
		}
		w.AddParagraph(cell, "Email: "+v.Email, false)
		return nil
	})

	switch mode {
	case ModeCombined:
		return []Rule{
			consultant, engineer, phone,
			rule(LabelCurbRampLocation, func(w *Writer, cell document.Cell, v Values) error {
				if err := w.SetCellText(cell, LabelCurbRampLocation, false); err != nil {
					return err
				}
				w.AddParagraph(cell, v.Location, false)
				w.AddParagraph(cell, LabelIntersection+" "+v.Intersection, false)
				return nil
			}),
			projectName, projectNumber,
		}, nil
	case ModeSplit:
		return []Rule{
			consultant, engineer, phone,
			rule(LabelCurbRampLocation, func(w *Writer, cell document.Cell, v Values) error {
				if err := w.SetCellText(cell, LabelCurbRampLocation, false); err != nil {
					return err
				}
				w.AddParagraph(cell, v.Location, false)
				return nil
			}),
			rule(LabelIntersection, func(w *Writer, cell document.Cell, v Values) error {
				if err := w.SetCellText(cell, LabelIntersection, false); err != nil {
					return err
				}
				w.AddParagraph(cell, normalize.FormatStreetName(v.Intersection), false)
				w.AddParagraph(cell, "Return position:", false)
				return nil
			}),
			projectName, projectNumber,
		}, nil
	case ModePlaceholder:
		return []Rule{
			consultant, engineer, phone, projectName, projectNumber,
			rule(LabelCRLocation, func(w *Writer, cell document.Cell, v Values) error {
				return w.ReplaceParagraph(cell, LabelCRLocation, v.ShortLocation)
			}),
			rule(LabelILocation, func(w *Writer, cell document.Cell, v Values) error {
				return w.ReplaceParagraph(cell, LabelILocation, LabelIntersection+" ", v.Intersection)
			}),
		}, nil
	default:
		return nil, fmt.Errorf("fields: unknown mode %q", mode)
	}
}
