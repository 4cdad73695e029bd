// Package configs loads irwindow settings from defaults, an optional YAML
// file and IRWINDOW_* environment variables.
package configs

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-windowing/dsp/transform"
	"github.com/cwbudde/algo-windowing/dsp/window"
	"github.com/cwbudde/algo-windowing/measure/windowing"
)

// EnvPrefix prefixes environment overrides, e.g. IRWINDOW_WINDOWING_MODE.
const EnvPrefix = "IRWINDOW"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("configs: invalid configuration")

// Config represents the application configuration
type Config struct {
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`

	Windowing WindowingConfig `mapstructure:"windowing" yaml:"windowing"`
	Transform TransformConfig `mapstructure:"transform" yaml:"transform"`
	Output    OutputConfig    `mapstructure:"output" yaml:"output"`
}

// WindowingConfig holds the engine parameters by name.
type WindowingConfig struct {
	Mode         string  `mapstructure:"mode" yaml:"mode"`
	Domain       string  `mapstructure:"domain" yaml:"domain"`
	Wide         float64 `mapstructure:"wide" yaml:"wide"`
	Offset       float64 `mapstructure:"offset" yaml:"offset"`
	MinFrequency float64 `mapstructure:"min_frequency" yaml:"min_frequency"`
	MaxFrequency float64 `mapstructure:"max_frequency" yaml:"max_frequency"`
	Window       string  `mapstructure:"window" yaml:"window"`
}

// TransformConfig selects the FFT backend.
type TransformConfig struct {
	Backend string `mapstructure:"backend" yaml:"backend"`
}

// OutputConfig contains output formatting settings
type OutputConfig struct {
	Format    string `mapstructure:"format" yaml:"format"`
	Precision int    `mapstructure:"precision" yaml:"precision"`
	Impulse   bool   `mapstructure:"impulse" yaml:"impulse"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	d := windowing.DefaultValues()

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	v.SetDefault("windowing.mode", d.Mode.String())
	v.SetDefault("windowing.domain", d.Domain.String())
	v.SetDefault("windowing.wide", d.Wide)
	v.SetDefault("windowing.offset", d.Offset)
	v.SetDefault("windowing.min_frequency", d.MinFrequency)
	v.SetDefault("windowing.max_frequency", d.MaxFrequency)
	v.SetDefault("windowing.window", d.Window.String())

	v.SetDefault("transform.backend", transform.BackendAlgoFFT.String())

	v.SetDefault("output.format", "table")
	v.SetDefault("output.precision", 4)
	v.SetDefault("output.impulse", false)
}

// New returns a viper instance with defaults and environment overrides.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the optional YAML file at path on top of defaults and
// environment overrides, then validates the result.
func Load(path string) (*Config, error) {
	v := New()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("configs: failed to read %s: %w", path, err)
		}
	}

	return LoadFrom(v)
}

// LoadFrom decodes and validates the configuration held by v.
func LoadFrom(v *viper.Viper) (*Config, error) {
	config := &Config{}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("configs: unable to decode configuration: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: log level %q", ErrInvalid, c.LogLevel)
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log format %q", ErrInvalid, c.LogFormat)
	}

	if _, err := c.Windowing.Values(); err != nil {
		return err
	}

	if _, err := transform.ParseBackend(c.Transform.Backend); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	switch strings.ToLower(c.Output.Format) {
	case "table", "csv", "yaml":
	default:
		return fmt.Errorf("%w: output format %q", ErrInvalid, c.Output.Format)
	}

	if c.Output.Precision < 0 || c.Output.Precision > 15 {
		return fmt.Errorf("%w: output precision %d", ErrInvalid, c.Output.Precision)
	}

	return nil
}

// Values resolves the named parameters.
func (w WindowingConfig) Values() (windowing.Values, error) {
	mode, err := windowing.ParseMode(w.Mode)
	if err != nil {
		return windowing.Values{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	domain, err := windowing.ParseDomain(w.Domain)
	if err != nil {
		return windowing.Values{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	typ, err := window.ParseType(w.Window)
	if err != nil {
		return windowing.Values{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	if w.Wide <= 0 {
		return windowing.Values{}, fmt.Errorf("%w: wide must be positive, got %v", ErrInvalid, w.Wide)
	}

	if w.MinFrequency < 0 || w.MaxFrequency < w.MinFrequency {
		return windowing.Values{}, fmt.Errorf("%w: frequency band [%v, %v]", ErrInvalid, w.MinFrequency, w.MaxFrequency)
	}

	return windowing.Values{
		Mode:         mode,
		Domain:       domain,
		Wide:         w.Wide,
		Offset:       w.Offset,
		MinFrequency: w.MinFrequency,
		MaxFrequency: w.MaxFrequency,
		Window:       typ,
	}, nil
}

// Apply sets every parameter on p. The mode is applied first so an
// automatic wide adjustment is overridden by the configured wide.
func (w WindowingConfig) Apply(p windowing.Parameters) error {
	v, err := w.Values()
	if err != nil {
		return err
	}

	p.SetMode(v.Mode)
	p.SetDomain(v.Domain)
	p.SetWide(v.Wide)
	p.SetOffset(v.Offset)
	p.SetMinFrequency(v.MinFrequency)
	p.SetMaxFrequency(v.MaxFrequency)
	p.SetWindowFunctionType(v.Window)

	return nil
}

// BackendValue resolves the configured FFT backend.
func (t TransformConfig) BackendValue() (transform.Backend, error) {
	b, err := transform.ParseBackend(t.Backend)
	if err != nil {
		return b, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return b, nil
}

// WriteYAML encodes c as YAML.
func WriteYAML(w io.Writer, c *Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("configs: failed to encode configuration: %w", err)
	}

	return enc.Close()
}
