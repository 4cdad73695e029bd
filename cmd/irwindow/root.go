package main

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cwbudde/algo-windowing/configs"
	"github.com/cwbudde/algo-windowing/dsp/transform"
	"github.com/cwbudde/algo-windowing/internal/logging"
	"github.com/cwbudde/algo-windowing/measure/windowing"
)

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"log-level":     "log_level",
	"log-format":    "log_format",
	"mode":          "windowing.mode",
	"domain":        "windowing.domain",
	"wide":          "windowing.wide",
	"offset":        "windowing.offset",
	"min-frequency": "windowing.min_frequency",
	"max-frequency": "windowing.max_frequency",
	"window":        "windowing.window",
	"backend":       "transform.backend",
	"format":        "output.format",
	"precision":     "output.precision",
	"impulse":       "output.impulse",
}

type app struct {
	v          *viper.Viper
	cfg        *configs.Config
	log        *logrus.Logger
	stdout     io.Writer
	stderr     io.Writer
	configFile string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{v: configs.New(), stdout: stdout, stderr: stderr}
	d := windowing.DefaultValues()

	root := &cobra.Command{
		Use:   "irwindow",
		Short: "Window measured impulse responses",
		Long: `irwindow applies a time or frequency window to a measured impulse response
and transforms the result with a fixed-size FFT or a logarithmic transform.

Settings come from flags, IRWINDOW_* environment variables and an optional
YAML file, in that order of precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initialize(cmd)
		},
	}

	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "YAML config file")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-format", "text", "log format (text, json)")
	pf.String("mode", d.Mode.String(), "transform mode (FFT8..FFT16, LTW1..LTW3)")
	pf.String("domain", d.Domain.String(), "windowing domain (time, frequency)")
	pf.Float64("wide", d.Wide, "time window width in ms")
	pf.Float64("offset", d.Offset, "time window centre offset in ms")
	pf.Float64("min-frequency", d.MinFrequency, "lower band edge in Hz")
	pf.Float64("max-frequency", d.MaxFrequency, "upper band edge in Hz")
	pf.String("window", d.Window.String(), "window function applied to the extracted segment")
	pf.String("backend", transform.BackendAlgoFFT.String(), "FFT backend (algo-fft, gonum)")
	pf.StringP("format", "o", "table", "output format (table, csv, yaml)")
	pf.Int("precision", 4, "decimal places in table and csv output")
	pf.Bool("impulse", false, "also print the windowed impulse response")

	root.AddCommand(a.applyCmd(), a.modesCmd(), a.windowsCmd(), a.configCmd())

	return root
}

// initialize binds flags, reads the config file and builds the logger once
// flags are parsed.
func (a *app) initialize(cmd *cobra.Command) error {
	if err := bindFlags(cmd, a.v); err != nil {
		return err
	}

	if a.configFile != "" {
		a.v.SetConfigFile(a.configFile)
		a.v.SetConfigType("yaml")

		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg, err := configs.LoadFrom(a.v)
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat, a.stderr)
	if err != nil {
		return err
	}

	a.cfg, a.log = cfg, log

	if used := a.v.ConfigFileUsed(); used != "" {
		log.WithField("file", used).Debug("using config file")
	}

	return nil
}

// bindFlags binds each known cobra flag to its configuration key.
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var lastErr error

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok {
			return
		}

		if err := v.BindPFlag(key, f); err != nil {
			lastErr = err
		}
	})

	return lastErr
}

func (a *app) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return configs.WriteYAML(a.stdout, a.cfg)
		},
	}
}
