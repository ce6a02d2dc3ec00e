// Package prompt asks for the run settings that configuration left open or
// that the user wants to change before filling a form.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/afero"

	"github.com/goliatone/go-formfill/internal/config"
	"github.com/goliatone/go-formfill/pkg/fields"
)

// Collector fills a Config through a Driver.
type Collector struct {
	driver Driver
	fs     afero.Fs
}

// NewCollector returns a Collector checking paths against fsys.
func NewCollector(driver Driver, fsys afero.Fs) *Collector {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Collector{driver: driver, fs: fsys}
}

// Collect asks for the template, source, output folder and mode, pre-filled
// from cfg, then whether to mark checkboxes. Mode defaults are re-applied
// when the mode changes.
func (c *Collector) Collect(ctx context.Context, cfg *config.Config) error {
	if c.driver == nil {
		return errors.New("prompt: driver is nil")
	}
	if cfg == nil {
		return errors.New("prompt: config is nil")
	}

	template, err := c.driver.Input(ctx, InputConfig{
		Message:   "Template (.docx)",
		Default:   cfg.Template.Path,
		Validator: c.existingFile,
	})
	if err != nil {
		return err
	}
	source, err := c.driver.Input(ctx, InputConfig{
		Message:   "Source spreadsheet",
		Default:   cfg.Source.Path,
		Validator: c.existingFile,
	})
	if err != nil {
		return err
	}
	folder, err := c.driver.Input(ctx, InputConfig{
		Message:   "Output folder",
		Default:   cfg.Output.Folder,
		Validator: notBlank,
	})
	if err != nil {
		return err
	}

	modes := fields.Modes()
	options := make([]string, len(modes))
	current := 0
	for i, mode := range modes {
		options[i] = mode.String()
		if mode == cfg.Mode {
			current = i
		}
	}
	choice, err := c.driver.Select(ctx, SelectConfig{
		Message:      "Template variant",
		Options:      options,
		DefaultIndex: current,
	})
	if err != nil {
		return err
	}
	if choice < 0 || choice >= len(modes) {
		return fmt.Errorf("prompt: invalid mode selection %d", choice)
	}

	mark, err := c.driver.Confirm(ctx, ConfirmConfig{
		Message: "Mark checkboxes after saving?",
		Default: cfg.Checkbox.Enabled,
	})
	if err != nil {
		return err
	}

	cfg.Template.Path = strings.TrimSpace(template)
	cfg.Source.Path = strings.TrimSpace(source)
	cfg.Output.Folder = strings.TrimSpace(folder)
	cfg.Checkbox.Enabled = mark
	if modes[choice] != cfg.Mode {
		cfg.Mode = modes[choice]
		cfg.Source.SkipHeaderRows = config.Unset
		cfg.Source.Row = config.Unset
		cfg.Output.FilenameTemplate = ""
		cfg.ApplyModeDefaults()
	}
	return nil
}

func (c *Collector) existingFile(value string) error {
	path := strings.TrimSpace(value)
	if path == "" {
		return errors.New("a path is required")
	}
	ok, err := afero.Exists(c.fs, path)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s does not exist", path)
	}
	return nil
}

func notBlank(value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New("a value is required")
	}
	return nil
}
