package config

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formfill/pkg/fields"
	"github.com/goliatone/go-formfill/pkg/mutator"
)

func required() map[string]any {
	return map[string]any{
		"template.path": "form.docx",
		"source.path":   "ramps.xlsx",
	}
}

func TestLoader_Load(t *testing.T) {
	t.Run("Should resolve combined mode defaults", func(t *testing.T) {
		cfg, err := NewLoader(WithoutEnv()).Load(context.Background(), "", required())
		require.NoError(t, err)

		assert.Equal(t, fields.ModeCombined, cfg.Mode)
		assert.Equal(t, 1, cfg.Source.SkipHeaderRows)
		assert.Equal(t, 1, cfg.Source.Row)
		assert.Equal(t, 1, cfg.Source.LocationColumn)
		assert.Equal(t, 2, cfg.Source.IntersectionColumn)
		assert.Equal(t, mutator.DefaultFilenameTemplate, cfg.Output.FilenameTemplate)
		assert.Equal(t, fields.DefaultFont, cfg.Font.Name)
		assert.Equal(t, BackendOOXML, cfg.Checkbox.Backend)
		assert.True(t, cfg.Checkbox.Enabled)
	})

	t.Run("Should resolve split and placeholder defaults", func(t *testing.T) {
		overrides := required()
		overrides["mode"] = "SPLIT"
		cfg, err := NewLoader(WithoutEnv()).Load(context.Background(), "", overrides)
		require.NoError(t, err)
		assert.Equal(t, fields.ModeSplit, cfg.Mode)
		assert.Equal(t, 1, cfg.Source.SkipHeaderRows)
		assert.Equal(t, 0, cfg.Source.Row)

		overrides["mode"] = "placeholder"
		cfg, err = NewLoader(WithoutEnv()).Load(context.Background(), "", overrides)
		require.NoError(t, err)
		assert.Equal(t, mutator.FixedFilename, cfg.Output.FilenameTemplate)
		assert.Equal(t, 1, cfg.Source.SkipHeaderRows)
		assert.Equal(t, 1, cfg.Source.Row)
	})

	t.Run("Should layer file, environment and overrides", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsys, "formfill.yaml", []byte(`
mode: split
template:
  path: from-file.docx
source:
  path: from-file.xlsx
  row: 4
output:
  folder: memos
font:
  size: 11
`), 0o644))
		t.Setenv("FORMFILL_SOURCE_ROW", "7")
		t.Setenv("FORMFILL_LOG_LEVEL", "debug")

		cfg, err := NewLoader(WithFs(fsys)).Load(context.Background(), "formfill.yaml", map[string]any{
			"template.path": "from-flag.docx",
		})
		require.NoError(t, err)

		assert.Equal(t, "from-flag.docx", cfg.Template.Path)
		assert.Equal(t, "from-file.xlsx", cfg.Source.Path)
		assert.Equal(t, 7, cfg.Source.Row)
		assert.Equal(t, 1, cfg.Source.SkipHeaderRows)
		assert.Equal(t, "memos", cfg.Output.Folder)
		assert.Equal(t, 11.0, cfg.Font.Size)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("Should reject unknown mode", func(t *testing.T) {
		overrides := required()
		overrides["mode"] = "legacy"
		_, err := NewLoader(WithoutEnv()).Load(context.Background(), "", overrides)
		require.Error(t, err)
	})

	t.Run("Should reject unknown checkbox backend", func(t *testing.T) {
		overrides := required()
		overrides["checkbox.backend"] = "libreoffice"
		_, err := NewLoader(WithoutEnv()).Load(context.Background(), "", overrides)
		require.Error(t, err)
	})

	t.Run("Should require paths unless deferred", func(t *testing.T) {
		_, err := NewLoader(WithoutEnv()).Load(context.Background(), "", nil)
		require.Error(t, err)

		loader := NewLoader(WithoutEnv(), WithDeferredPaths())
		cfg, err := loader.Load(context.Background(), "", nil)
		require.NoError(t, err)
		require.Error(t, loader.Validate(cfg))

		cfg.Template.Path = "form.docx"
		cfg.Source.Path = "ramps.csv"
		assert.NoError(t, loader.Validate(cfg))
	})

	t.Run("Should fail on missing config file", func(t *testing.T) {
		_, err := NewLoader(WithFs(afero.NewMemMapFs()), WithoutEnv()).Load(context.Background(), "nope.yaml", required())
		require.Error(t, err)
	})
}

func TestTransformEnv(t *testing.T) {
	t.Run("Should map section and key", func(t *testing.T) {
		key, value := transformEnv("FORMFILL_SOURCE_SKIP_HEADER_ROWS", "2")
		assert.Equal(t, "source.skip_header_rows", key)
		assert.Equal(t, "2", value)
	})

	t.Run("Should map top level keys", func(t *testing.T) {
		key, _ := transformEnv("FORMFILL_MODE", "split")
		assert.Equal(t, "mode", key)
	})

	t.Run("Should map output filename template", func(t *testing.T) {
		key, _ := transformEnv("FORMFILL_OUTPUT_FILENAME_TEMPLATE", "x")
		assert.Equal(t, "output.filename_template", key)
	})
}
