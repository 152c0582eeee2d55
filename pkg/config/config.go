package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/pricecalc/pkg/display"
	"github.com/arthur-debert/pricecalc/pkg/errors"
	"github.com/arthur-debert/pricecalc/pkg/logging"
	"github.com/arthur-debert/pricecalc/pkg/markup"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read as configuration.
const EnvPrefix = "PRICECALC_"

// Config is the complete pricecalc configuration.
type Config struct {
	Calculation Calculation `koanf:"calculation"`
	Markup      Markup      `koanf:"markup"`
	Output      Output      `koanf:"output"`
}

// Calculation holds settings for applying rules.
type Calculation struct {
	PercentFirst bool `koanf:"percent_first"`
}

// Markup holds settings for writing model documents.
type Markup struct {
	Indent int `koanf:"indent"`
}

// IndentWidth returns the indent to pass to the markup writer; an indent of
// 0 means compact output.
func (m Markup) IndentWidth() int {
	if m.Indent == 0 {
		return markup.Compact
	}
	return m.Indent
}

// Output holds settings for command output.
type Output struct {
	Format display.Format `koanf:"format"`
}

// Options selects the sources Load reads on top of the defaults.
type Options struct {
	// Path is an explicit config file. It must exist when set. When empty
	// the file at DefaultPath is read if present.
	Path string

	// Overrides are applied last, keyed by dotted path such as
	// "output.format".
	Overrides map[string]interface{}
}

// DefaultPath returns the user config file location.
func DefaultPath() string {
	xdg.Reload()
	return filepath.Join(xdg.ConfigHome, "pricecalc", "config.toml")
}

// Default returns the configuration built from the embedded defaults only.
func Default() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}
	return unmarshal(k)
}

// Load builds the configuration from all sources.
func Load(opts Options) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config file
	path, err := resolvePath(opts.Path)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded config file")
	}

	// 3. Environment, PRICECALC_SECTION_KEY -> section.key
	err = k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Caller overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Bool("percentFirst", cfg.Calculation.PercentFirst).
		Int("indent", cfg.Markup.Indent).
		Str("format", cfg.Output.Format.String()).
		Msg("Configuration loaded")
	return cfg, nil
}

func resolvePath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "cannot read config file %s", explicit).
				WithDetail("path", explicit)
		}
		return explicit, nil
	}

	path := DefaultPath()
	if _, err := os.Stat(path); err != nil {
		return "", nil
	}
	return path, nil
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.TextUnmarshallerHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if cfg.Markup.Indent < 0 {
		return nil, errors.Newf(errors.ErrConfigParse, "markup.indent must not be negative, got %d", cfg.Markup.Indent)
	}
	return &cfg, nil
}
