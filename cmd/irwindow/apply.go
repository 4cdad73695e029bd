package main

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-windowing/measure/source"
	"github.com/cwbudde/algo-windowing/measure/windowing"
)

// ErrInactive is returned when the settings leave the engine without output.
var ErrInactive = errors.New("irwindow: log transforms require the time domain")

func (a *app) applyCmd() *cobra.Command {
	var (
		rate    float64
		channel int
	)

	cmd := &cobra.Command{
		Use:   "apply <file>",
		Short: "Window an impulse response and print the resulting spectrum",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.apply(args[0], rate, channel)
		},
	}

	cmd.Flags().Float64Var(&rate, "rate", 48000, "sample rate of text input in Hz")
	cmd.Flags().IntVar(&channel, "channel", 0, "WAV channel to read")

	return cmd
}

func (a *app) apply(path string, rate float64, channel int) error {
	ir, err := readImpulse(path, rate, channel)
	if err != nil {
		return err
	}

	src, err := source.FromImpulse(ir.name, ir.samples, ir.rate)
	if err != nil {
		return fmt.Errorf("irwindow: %s: %w", path, err)
	}

	backend, err := a.cfg.Transform.BackendValue()
	if err != nil {
		return err
	}

	w := windowing.New(
		windowing.WithLogger(a.log),
		windowing.WithBackend(backend),
		windowing.WithName("irwindow"),
	)
	defer w.Close()

	if err := a.cfg.Windowing.Apply(w); err != nil {
		return err
	}

	w.SetSource(src)

	if !w.Active() {
		return ErrInactive
	}

	stored := w.Store()

	a.log.WithFields(logrus.Fields{
		"source": ir.name,
		"mode":   w.Mode().String(),
		"rate":   w.SampleRate(),
		"bins":   stored.Size(),
		"label":  w.TipName(),
	}).Info("windowing applied")

	return writeReport(a.stdout, a.cfg.Output, stored)
}
