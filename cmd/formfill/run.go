package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	formfill "github.com/goliatone/go-formfill"
	"github.com/goliatone/go-formfill/internal/config"
	"github.com/goliatone/go-formfill/internal/logger"
	"github.com/goliatone/go-formfill/internal/prompt"
	"github.com/goliatone/go-formfill/pkg/orchestrator"
)

// flagKeys maps command flags onto config keys. Only flags set on the
// command line become overrides.
var flagKeys = map[string]string{
	"mode":        "mode",
	"template":    "template.path",
	"source":      "source.path",
	"sheet":       "source.sheet",
	"row":         "source.row",
	"output":      "output.folder",
	"filename":    "output.filename_template",
	"font":        "font.name",
	"profile":     "profile.name",
	"profile-dir": "profile.dir",
	"backend":     "checkbox.backend",
	"log-level":   "log.level",
	"log-json":    "log.json",
}

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fill the template and save the output document",
		RunE:  runFill,
	}

	flags := cmd.Flags()
	flags.String("mode", "", "Fill mode (combined, split, placeholder)")
	flags.String("template", "", "Path to the .docx template")
	flags.String("source", "", "Path to the spreadsheet (.xlsx, .xlsm, .csv)")
	flags.String("sheet", "", "Worksheet name, defaults to the first sheet")
	flags.Int("row", config.Unset, "Zero-based data row after header rows are skipped")
	flags.String("output", "", "Output folder")
	flags.String("filename", "", "Output file name template")
	flags.String("font", "", "Font applied to every run")
	flags.String("profile", "", "Static value profile")
	flags.String("profile-dir", "", "Directory holding extra profile files")
	flags.String("backend", "", "Checkbox backend (ooxml, word)")
	flags.Bool("no-checkbox", false, "Skip checkbox marking")
	flags.BoolP("interactive", "i", false, "Prompt for missing paths and mode")
	return cmd
}

func runFill(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	file, _ := cmd.Flags().GetString("config")
	interactive, _ := cmd.Flags().GetBool("interactive")

	overrides, err := collectOverrides(cmd)
	if err != nil {
		return err
	}

	var options []config.Option
	if interactive {
		options = append(options, config.WithDeferredPaths())
	}
	loader := config.NewLoader(options...)
	cfg, err := loader.Load(ctx, file, overrides)
	if err != nil {
		return err
	}

	if interactive {
		collector := prompt.NewCollector(prompt.NewSurveyDriver(), afero.NewOsFs())
		if err := collector.Collect(ctx, cfg); err != nil {
			return err
		}
		if err := loader.Validate(cfg); err != nil {
			return err
		}
	}
	logger.Setup(cfg.Log.Level, cfg.Log.JSON)

	result, err := formfill.Fill(ctx, cfg)
	if err != nil {
		return err
	}
	if result.CheckboxErr != nil {
		logger.Warn("checkboxes were not marked", "err", result.CheckboxErr)
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.OutputPath)
	return nil
}

func collectOverrides(cmd *cobra.Command) (map[string]any, error) {
	overrides := make(map[string]any)
	var firstErr error
	for name, key := range flagKeys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil || !flag.Changed {
			continue
		}
		var (
			value any
			err   error
		)
		switch flag.Value.Type() {
		case "bool":
			value, err = cmd.Flags().GetBool(name)
		case "int":
			value, err = cmd.Flags().GetInt(name)
		default:
			value = flag.Value.String()
		}
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("flag --%s: %w", name, err)
		}
		overrides[key] = value
	}
	if noCheckbox, _ := cmd.Flags().GetBool("no-checkbox"); noCheckbox {
		overrides["checkbox.enabled"] = false
	}
	return overrides, firstErr
}

func profilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List the available value profiles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, _ := cmd.Flags().GetString("profile-dir")
			cfg := config.Default()
			cfg.Profile.Dir = dir
			names, err := orchestrator.New(formfill.OptionsFromConfig(cfg, nil)...).Profiles()
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
	cmd.Flags().String("profile-dir", "", "Directory holding profile files")
	return cmd
}
