package config

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formfill/pkg/fields"
)

// EnvPrefix prefixes every environment override (FORMFILL_SOURCE_PATH).
const EnvPrefix = "FORMFILL_"

// deferredPaths may stay empty until interactive prompts have run.
var deferredPaths = []string{"Template.Path", "Source.Path"}

// Option customises a Loader.
type Option func(*Loader)

// WithFs sets the filesystem the config file is read from.
func WithFs(fsys afero.Fs) Option {
	return func(l *Loader) {
		if fsys != nil {
			l.fs = fsys
		}
	}
}

// WithoutEnv disables environment overrides.
func WithoutEnv() Option {
	return func(l *Loader) {
		l.env = false
	}
}

// WithDeferredPaths skips the required checks on template and source paths
// so they can be collected later.
func WithDeferredPaths() Option {
	return func(l *Loader) {
		l.deferPaths = true
	}
}

// Loader layers defaults, a YAML file, FORMFILL_* environment variables and
// flag overrides, in that order of precedence.
type Loader struct {
	fs         afero.Fs
	env        bool
	deferPaths bool
	validator  *validator.Validate
}

// NewLoader constructs a Loader reading from the OS filesystem.
func NewLoader(options ...Option) *Loader {
	l := &Loader{fs: afero.NewOsFs(), env: true, validator: validator.New()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(l)
	}
	return l
}

// Load builds the configuration. file may be empty; overrides are keyed by
// dotted paths such as "source.path".
func (l *Loader) Load(ctx context.Context, file string, overrides map[string]any) (*Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}

	if file != "" {
		data, err := l.readFile(file)
		if err != nil {
			return nil, err
		}
		if err := k.Load(rawMap(data), nil); err != nil {
			return nil, fmt.Errorf("config: apply %s: %w", file, err)
		}
	}

	if l.env {
		if err := k.Load(env.Provider(".", env.Opt{
			Prefix:        EnvPrefix,
			TransformFunc: transformEnv,
		}), nil); err != nil {
			return nil, fmt.Errorf("config: load environment: %w", err)
		}
	}

	for key, value := range overrides {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("config: set %s: %w", key, err)
		}
	}

	cfg, err := l.unmarshal(k)
	if err != nil {
		return nil, err
	}
	cfg.ApplyModeDefaults()

	if err := l.validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate runs every check, including the deferred path requirements.
func (l *Loader) Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: configuration cannot be nil")
	}
	if err := l.validator.Struct(cfg); err != nil {
		return fmt.Errorf("config: validation failed: %w", err)
	}
	return nil
}

func (l *Loader) validate(cfg *Config) error {
	if !l.deferPaths {
		return l.Validate(cfg)
	}
	if err := l.validator.StructExcept(cfg, deferredPaths...); err != nil {
		return fmt.Errorf("config: validation failed: %w", err)
	}
	return nil
}

func (l *Loader) readFile(path string) (map[string]any, error) {
	raw, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	data := make(map[string]any)
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return data, nil
}

func (l *Loader) unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &cfg,
			TagName:          "koanf",
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				modeDecodeHook,
				trimStringHook,
			),
		},
	}); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return &cfg, nil
}

// transformEnv maps FORMFILL_SOURCE_SKIP_HEADER_ROWS to
// source.skip_header_rows: the first segment is the section, the rest the
// key.
func transformEnv(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	parts := strings.FieldsFunc(key, func(r rune) bool {
		return r == '_'
	})
	switch len(parts) {
	case 0:
		return "", nil
	case 1:
		return parts[0], value
	default:
		return parts[0] + "." + strings.Join(parts[1:], "_"), value
	}
}

func modeDecodeHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(fields.Mode("")) {
		return data, nil
	}
	s, ok := data.(string)
	if !ok {
		return data, nil
	}
	return fields.Mode(strings.ToLower(strings.TrimSpace(s))), nil
}

func trimStringHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.String {
		return data, nil
	}
	if s, ok := data.(string); ok {
		return strings.TrimSpace(s), nil
	}
	return data, nil
}

// rawMap is a koanf.Provider adapter for map[string]any data.
type rawMap map[string]any

func (r rawMap) Read() (map[string]any, error) {
	return r, nil
}

func (r rawMap) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("ReadBytes not implemented")
}
