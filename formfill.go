// Package formfill fills a fixed-layout .docx form from one spreadsheet row.
// It re-exports the orchestrator and configuration types so callers can
// drive a run with a single import.
package formfill

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/goliatone/go-formfill/internal/config"
	"github.com/goliatone/go-formfill/internal/logger"
	"github.com/goliatone/go-formfill/internal/wordole"
	"github.com/goliatone/go-formfill/pkg/mutator"
	"github.com/goliatone/go-formfill/pkg/orchestrator"
	"github.com/goliatone/go-formfill/pkg/source"
)

// Config is the layered run configuration.
type Config = config.Config

// Request describes one fill run.
type Request = orchestrator.Request

// Result reports the saved path and per-stage reports of a run.
type Result = orchestrator.Result

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// LoadConfig layers defaults, file, FORMFILL_* environment and overrides.
func LoadConfig(ctx context.Context, file string, overrides map[string]any) (*Config, error) {
	return config.NewLoader().Load(ctx, file, overrides)
}

// RequestFromConfig maps a resolved configuration onto a Request.
func RequestFromConfig(cfg *Config) Request {
	return Request{
		Mode:           cfg.Mode,
		TemplatePath:   cfg.Template.Path,
		SourcePath:     cfg.Source.Path,
		SkipHeaderRows: cfg.Source.SkipHeaderRows,
		Columns: source.Columns{
			Row:          cfg.Source.Row,
			Location:     cfg.Source.LocationColumn,
			Intersection: cfg.Source.IntersectionColumn,
		},
		OutputFolder:     cfg.Output.Folder,
		FilenameTemplate: cfg.Output.FilenameTemplate,
		Font:             mutator.FontPolicy{Name: cfg.Font.Name, Size: cfg.Font.Size},
		Profile:          cfg.Profile.Name,
		MarkCheckboxes:   cfg.Checkbox.Enabled,
	}
}

// OptionsFromConfig builds the orchestrator options implied by cfg: the
// worksheet, the profile directory and the checkbox backend.
func OptionsFromConfig(cfg *Config, fsys afero.Fs) []orchestrator.Option {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	options := []orchestrator.Option{
		orchestrator.WithFs(fsys),
		orchestrator.WithSources(source.DefaultRegistry(fsys, cfg.Source.Sheet)),
	}
	if cfg.Profile.Dir != "" {
		options = append(options, orchestrator.WithProfileFS(os.DirFS(cfg.Profile.Dir)))
	}
	if cfg.Checkbox.Backend == config.BackendWord {
		options = append(options, orchestrator.WithLauncher(wordole.NewLauncher()))
	}
	return options
}

// Fill runs the pipeline for cfg on the OS filesystem. Extra options are
// applied after the ones derived from cfg.
func Fill(ctx context.Context, cfg *Config, options ...orchestrator.Option) (Result, error) {
	if cfg == nil {
		return Result{}, fmt.Errorf("formfill: config is required")
	}
	all := append(OptionsFromConfig(cfg, nil), options...)
	all = append(all, orchestrator.WithLogger(logger.GetDefault()))
	return orchestrator.New(all...).Fill(ctx, RequestFromConfig(cfg))
}
