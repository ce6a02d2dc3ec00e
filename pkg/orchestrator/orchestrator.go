package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/afero"

	"github.com/goliatone/go-formfill/internal/logger"
	"github.com/goliatone/go-formfill/internal/ooxml"
	"github.com/goliatone/go-formfill/pkg/checkbox"
	"github.com/goliatone/go-formfill/pkg/document"
	"github.com/goliatone/go-formfill/pkg/fields"
	"github.com/goliatone/go-formfill/pkg/mutator"
	"github.com/goliatone/go-formfill/pkg/normalize"
	"github.com/goliatone/go-formfill/pkg/profile"
	"github.com/goliatone/go-formfill/pkg/source"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithFs sets the filesystem used by the default reader, opener, saver and
// checkbox backend.
func WithFs(fsys afero.Fs) Option {
	return func(o *Orchestrator) {
		o.fs = fsys
	}
}

// WithOpener injects a custom document opener.
func WithOpener(opener document.Opener) Option {
	return func(o *Orchestrator) {
		o.opener = opener
	}
}

// WithSources injects a tabular reader registry.
func WithSources(registry *source.Registry) Option {
	return func(o *Orchestrator) {
		o.sources = registry
	}
}

// WithLauncher injects the checkbox automation backend.
func WithLauncher(launcher checkbox.Launcher) Option {
	return func(o *Orchestrator) {
		o.launcher = launcher
	}
}

// WithLogger overrides the pipeline logger.
func WithLogger(l logger.Logger) Option {
	return func(o *Orchestrator) {
		o.log = l
	}
}

// WithProfileFS supplies an fs.FS holding profile documents. Pass nil to
// disable the embedded defaults.
func WithProfileFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.profileFS = fsys
		o.profileSpecified = true
	}
}

// Orchestrator coordinates a fill run from source row to marked document.
type Orchestrator struct {
	fs               afero.Fs
	opener           document.Opener
	sources          *source.Registry
	launcher         checkbox.Launcher
	log              logger.Logger
	profileFS        fs.FS
	profileSpecified bool
	profiles         *profile.Store
	initialiseErr    error
	defaultsApplied  bool
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies get the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one fill run.
type Request struct {
	Mode fields.Mode

	TemplatePath   string
	SourcePath     string
	SkipHeaderRows int
	Columns        source.Columns

	OutputFolder     string
	FilenameTemplate string
	Font             mutator.FontPolicy

	// Profile names the static values and checkbox targets; empty selects
	// profile.DefaultName.
	Profile string

	MarkCheckboxes bool
}

// Result reports what a run produced.
type Result struct {
	OutputPath string
	Record     source.Record
	Location   normalize.Location
	Fields     fields.Report

	Checkboxes checkbox.Report
	// CheckboxErr holds a marking failure. The saved document is still
	// valid output when it is set.
	CheckboxErr error
}

// Fill reads the source row, fills the template, saves it and marks the
// profile's checkboxes. Substitution failures abort before anything is
// saved; checkbox failures are logged and reported in Result.CheckboxErr.
func (o *Orchestrator) Fill(ctx context.Context, req Request) (Result, error) {
	var result Result
	if ctx == nil {
		return result, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}
	if !o.defaultsApplied {
		o.applyDefaults()
	}
	if err := o.initialiseErr; err != nil {
		return result, err
	}
	if req.TemplatePath == "" {
		return result, errors.New("orchestrator: template path is required")
	}
	if req.SourcePath == "" {
		return result, errors.New("orchestrator: source path is required")
	}

	mode := req.Mode
	if mode == "" {
		mode = fields.DefaultMode
	}
	prof, err := o.profile(req.Profile)
	if err != nil {
		return result, err
	}

	grid, err := o.sources.Read(ctx, req.SourcePath, req.SkipHeaderRows)
	if err != nil {
		return result, fmt.Errorf("orchestrator: read source: %w", err)
	}
	record, err := source.ExtractRecord(grid, req.Columns)
	if err != nil {
		return result, fmt.Errorf("orchestrator: %s: %w", req.SourcePath, err)
	}
	result.Record = record
	result.Location = normalize.ExtractAndFormatLocation(record.Location)
	o.log.Info("source row loaded",
		"path", req.SourcePath, "row", req.Columns.Row, "location", result.Location.String(), "intersection", record.Intersection)

	doc, err := o.opener.Open(ctx, req.TemplatePath)
	if err != nil {
		return result, fmt.Errorf("orchestrator: open template: %w", err)
	}

	matcher, err := fields.NewMatcher(mode, fields.WithFont(req.Font.Name), fields.WithLogger(o.log))
	if err != nil {
		return result, fmt.Errorf("orchestrator: %w", err)
	}
	result.Fields, err = matcher.Apply(ctx, doc, valuesFor(prof, record, result.Location))
	if err != nil {
		return result, fmt.Errorf("orchestrator: fill fields: %w", err)
	}
	if result.Fields.Filled() == 0 {
		o.log.Warn("no labelled cells matched", "template", req.TemplatePath, "mode", mode)
	}
	mutator.ApplyFontPolicy(doc, req.Font)

	namer, err := mutator.NewNamer(req.FilenameTemplate)
	if err != nil {
		return result, fmt.Errorf("orchestrator: %w", err)
	}
	filename, err := namer.Name(mutator.NameData{
		Location:     result.Location.String(),
		Number:       result.Location.Number,
		Street:       result.Location.Text,
		Intersection: record.Intersection,
	})
	if err != nil {
		return result, fmt.Errorf("orchestrator: %w", err)
	}

	result.OutputPath, err = mutator.NewSaver(o.fs, o.log).Save(ctx, doc, mutator.Output{
		Folder:   req.OutputFolder,
		Filename: filename,
	})
	if err != nil {
		return result, fmt.Errorf("orchestrator: save: %w", err)
	}

	if req.MarkCheckboxes && len(prof.Checkboxes) > 0 {
		marker := checkbox.NewMarker(o.launcher, checkbox.WithLogger(o.log))
		result.Checkboxes, result.CheckboxErr = marker.Mark(ctx, result.OutputPath, prof.Checkboxes)
		if result.CheckboxErr != nil {
			o.log.Error("checkbox marking abandoned", "path", result.OutputPath, "err", result.CheckboxErr)
		}
	}
	return result, nil
}

// Profiles lists the available profile names.
func (o *Orchestrator) Profiles() ([]string, error) {
	if o.initialiseErr != nil {
		return nil, o.initialiseErr
	}
	return o.profiles.Names(), nil
}

func (o *Orchestrator) profile(name string) (profile.Profile, error) {
	if name == "" {
		name = profile.DefaultName
	}
	p, ok := o.profiles.Profile(name)
	if !ok {
		return profile.Profile{}, fmt.Errorf("orchestrator: profile %q not found (have %v)", name, o.profiles.Names())
	}
	return p, nil
}

func valuesFor(p profile.Profile, record source.Record, loc normalize.Location) fields.Values {
	return fields.Values{
		DesignConsultant: p.Values.DesignConsultant,
		DesignEngineer:   p.Values.DesignEngineer,
		Phone:            p.Values.Phone,
		Email:            p.Values.Email,
		ProjectName:      p.Values.ProjectName,
		ProjectNumber:    p.Values.ProjectNumber,
		Location:         loc.String(),
		ShortLocation:    normalize.FormatLocationShort(record.Location),
		Intersection:     record.Intersection,
	}
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.fs == nil {
		o.fs = afero.NewOsFs()
	}
	if o.log == nil {
		o.log = logger.GetDefault()
	}
	if o.opener == nil {
		o.opener = ooxml.NewOpener(o.fs)
	}
	if o.sources == nil {
		o.sources = source.DefaultRegistry(o.fs, "")
	}
	if o.launcher == nil {
		o.launcher = ooxml.NewAutomation(o.fs)
	}
	if !o.profileSpecified && o.profileFS == nil {
		o.profileFS = profile.EmbeddedFS()
	}

	store, err := profile.LoadFS(o.profileFS)
	if err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: load profiles: %w", err)
		store, _ = profile.LoadFS(nil)
	}
	o.profiles = store

	o.defaultsApplied = true
}
