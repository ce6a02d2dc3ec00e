package mutator

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-formfill/pkg/normalize"
)

const (
	// DefaultFilenameTemplate names outputs after the cleaned location.
	DefaultFilenameTemplate = "Filled_Form_Location_{{ location }}.docx"
	// FixedFilename is used by templates whose output is not content named.
	FixedFilename = "Filled_Form.docx"
)

// Output is the folder and file name a filled document is written to.
type Output struct {
	Folder   string
	Filename string
}

// Path joins Folder and Filename.
func (o Output) Path() string {
	return filepath.Join(o.Folder, o.Filename)
}

// NameData is exposed to filename templates.
type NameData struct {
	// Location is the raw or formatted location value; templates see it
	// cleaned as "location" and untouched as "raw_location".
	Location     string
	Number       string
	Street       string
	Intersection string
}

var registerFiltersOnce sync.Once

func registerFilters() {
	registerFiltersOnce.Do(func() {
		if pongo2.FilterExists("clean_filename") {
			return
		}
		_ = pongo2.RegisterFilter("clean_filename", func(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
			return pongo2.AsValue(normalize.CleanFilename(in.String())), nil
		})
	})
}

// Namer renders output file names from a pongo2 template.
type Namer struct {
	source string
	tmpl   *pongo2.Template
}

// NewNamer compiles source; empty uses DefaultFilenameTemplate.
func NewNamer(source string) (*Namer, error) {
	registerFilters()
	if strings.TrimSpace(source) == "" {
		source = DefaultFilenameTemplate
	}
	tmpl, err := pongo2.FromString("{% autoescape off %}" + source + "{% endautoescape %}")
	if err != nil {
		return nil, fmt.Errorf("mutator: parse filename template %q: %w", source, err)
	}
	return &Namer{source: source, tmpl: tmpl}, nil
}

// Name renders the file name for data. The result must be a bare file name.
func (n *Namer) Name(data NameData) (string, error) {
	if n == nil || n.tmpl == nil {
		return "", errors.New("mutator: namer is nil")
	}
	name, err := n.tmpl.Execute(pongo2.Context{
		"location":     normalize.CleanFilename(data.Location),
		"raw_location": data.Location,
		"number":       data.Number,
		"street":       data.Street,
		"intersection": data.Intersection,
	})
	if err != nil {
		return "", fmt.Errorf("mutator: render filename template %q: %w", n.source, err)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("mutator: filename template %q rendered an empty name", n.source)
	}
	if strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("mutator: filename %q contains a path separator", name)
	}
	return name, nil
}
