package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-windowing/dsp/window"
	"github.com/cwbudde/algo-windowing/measure/windowing"
)

func (a *app) modesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modes",
		Short: "List transform modes",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return printModes(a.stdout)
		},
	}
}

func (a *app) windowsCmd() *cobra.Command {
	var size int

	cmd := &cobra.Command{
		Use:   "windows",
		Short: "Print normalisation properties of the window functions",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if size < 1 {
				return fmt.Errorf("irwindow: window size must be positive, got %d", size)
			}

			return printWindows(a.stdout, size)
		},
	}

	cmd.Flags().IntVar(&size, "size", 1024, "window length in samples")

	return cmd
}

func printModes(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Mode\tSize\tTransform\tDenominator\n"); err != nil {
		return fmt.Errorf("failed to write output header: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "----\t----\t---------\t-----------\n"); err != nil {
		return fmt.Errorf("failed to write output header: %w", err)
	}

	for _, m := range windowing.Modes() {
		kind, den := "fft", "-"
		if m.Log() {
			kind = "log"
			den = strconv.FormatFloat(m.LogDenominator(), 'g', -1, 64)
		}

		if _, err := fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", m, m.Size(), kind, den); err != nil {
			return fmt.Errorf("failed to write output row: %w", err)
		}
	}

	return tw.Flush()
}

func printWindows(w io.Writer, size int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Window\tSize\tCoherent Gain\tGain\tNorm\tENBW [bins]\n"); err != nil {
		return fmt.Errorf("failed to write output header: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "------\t----\t-------------\t----\t----\t-----------\n"); err != nil {
		return fmt.Errorf("failed to write output header: %w", err)
	}

	for _, t := range window.Types() {
		f := window.New(t, size)

		coherent := 0.0
		if f.Gain() != 0 {
			coherent = 1 / f.Gain()
		}

		if _, err := fmt.Fprintf(tw, "%s\t%d\t%.6f\t%.4f\t%.4f\t%.4f\n",
			t, size, coherent, f.Gain(), f.Norm(), f.ENBW(),
		); err != nil {
			return fmt.Errorf("failed to write output row: %w", err)
		}
	}

	return tw.Flush()
}
