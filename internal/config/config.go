package config

import (
	"github.com/goliatone/go-formfill/pkg/fields"
	"github.com/goliatone/go-formfill/pkg/mutator"
	"github.com/goliatone/go-formfill/pkg/profile"
)

// Unset marks a row or header count that follows the mode default.
const Unset = -1

// Config is the complete configuration of one fill run.
type Config struct {
	Mode     fields.Mode    `koanf:"mode"     validate:"oneof=combined split placeholder"`
	Template TemplateConfig `koanf:"template"`
	Source   SourceConfig   `koanf:"source"`
	Output   OutputConfig   `koanf:"output"`
	Font     FontConfig     `koanf:"font"`
	Profile  ProfileConfig  `koanf:"profile"`
	Checkbox CheckboxConfig `koanf:"checkbox"`
	Log      LogConfig      `koanf:"log"`
}

// TemplateConfig locates the .docx template.
type TemplateConfig struct {
	Path string `koanf:"path" validate:"required"`
}

// SourceConfig locates the source row.
type SourceConfig struct {
	Path               string `koanf:"path"                validate:"required"`
	Sheet              string `koanf:"sheet"`
	SkipHeaderRows     int    `koanf:"skip_header_rows"    validate:"min=-1"`
	Row                int    `koanf:"row"                 validate:"min=-1"`
	LocationColumn     int    `koanf:"location_column"     validate:"min=0"`
	IntersectionColumn int    `koanf:"intersection_column" validate:"min=0"`
}

// OutputConfig controls where the filled document is written.
type OutputConfig struct {
	Folder           string `koanf:"folder"            validate:"required"`
	FilenameTemplate string `koanf:"filename_template"`
}

// FontConfig is the typeface policy. Size 0 keeps inherited sizes.
type FontConfig struct {
	Name string  `koanf:"name" validate:"required"`
	Size float64 `koanf:"size" validate:"min=0"`
}

// ProfileConfig selects the static values and checkbox targets.
type ProfileConfig struct {
	Name string `koanf:"name" validate:"required"`
	// Dir replaces the embedded profiles when set.
	Dir string `koanf:"dir"`
}

// Checkbox backends.
const (
	BackendOOXML = "ooxml"
	BackendWord  = "word"
)

// CheckboxConfig controls the checkbox marking step.
type CheckboxConfig struct {
	Enabled bool   `koanf:"enabled"`
	Backend string `koanf:"backend" validate:"oneof=ooxml word"`
}

// LogConfig configures internal/logger.
type LogConfig struct {
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `koanf:"json"`
}

// Default returns the baseline configuration.
func Default() *Config {
	return &Config{
		Mode: fields.DefaultMode,
		Source: SourceConfig{
			SkipHeaderRows:     Unset,
			Row:                Unset,
			LocationColumn:     1,
			IntersectionColumn: 2,
		},
		Output: OutputConfig{
			Folder: "Exemption Memos",
		},
		Font: FontConfig{
			Name: fields.DefaultFont,
		},
		Profile: ProfileConfig{
			Name: profile.DefaultName,
		},
		Checkbox: CheckboxConfig{
			Enabled: true,
			Backend: BackendOOXML,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ApplyModeDefaults fills the settings left to the mode: header rows, row
// index and output file name. Every mode drops the column header row.
// Combined and placeholder then read the second data row (sheet row 3);
// split reads the first data row (sheet row 2).
func (c *Config) ApplyModeDefaults() {
	skip, row := 1, 1
	if c.Mode == fields.ModeSplit {
		row = 0
	}
	if c.Source.SkipHeaderRows == Unset {
		c.Source.SkipHeaderRows = skip
	}
	if c.Source.Row == Unset {
		c.Source.Row = row
	}
	if c.Output.FilenameTemplate == "" {
		c.Output.FilenameTemplate = mutator.DefaultFilenameTemplate
		if c.Mode == fields.ModePlaceholder {
			c.Output.FilenameTemplate = mutator.FixedFilename
		}
	}
}
