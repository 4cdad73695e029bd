package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"math/cmplx"
	"strconv"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-windowing/configs"
	"github.com/cwbudde/algo-windowing/dsp/core"
	"github.com/cwbudde/algo-windowing/measure/source"
)

var titleCaser = cases.Title(language.English)

var (
	frequencyColumns = []string{"frequency", "magnitude", "level", "phase", "coherence"}
	impulseColumns   = []string{"time", "value"}
)

type report struct {
	Name      string         `yaml:"name"`
	Notes     string         `yaml:"notes"`
	Frequency []frequencyRow `yaml:"frequency"`
	Impulse   []impulseRow   `yaml:"impulse,omitempty"`
}

// frequencyRow holds one output bin; Level is in dB, Phase in degrees.
type frequencyRow struct {
	Frequency float64 `yaml:"frequency"`
	Magnitude float64 `yaml:"magnitude"`
	Level     float64 `yaml:"level"`
	Phase     float64 `yaml:"phase"`
	Coherence float64 `yaml:"coherence"`
}

type impulseRow struct {
	Time  float64 `yaml:"time"`
	Value float64 `yaml:"value"`
}

// levelFloorDB replaces -Inf for silent bins.
const levelFloorDB = -300.0

func newReport(d *source.Data, withImpulse bool) report {
	r := report{Name: d.Name(), Notes: d.Notes()}

	for _, p := range d.FrequencyPoints() {
		r.Frequency = append(r.Frequency, frequencyRow{
			Frequency: p.Frequency,
			Magnitude: p.Magnitude,
			Level:     core.LinearToDB(p.Magnitude, levelFloorDB),
			Phase:     cmplx.Phase(p.Phase) * 180 / math.Pi,
			Coherence: p.Coherence,
		})
	}

	if withImpulse {
		for _, p := range d.ImpulsePoints() {
			r.Impulse = append(r.Impulse, impulseRow{Time: p.Time, Value: p.Value})
		}
	}

	return r
}

func writeReport(w io.Writer, out configs.OutputConfig, d *source.Data) error {
	r := newReport(d, out.Impulse)

	switch strings.ToLower(out.Format) {
	case "csv":
		return writeCSV(w, r, out.Precision)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("irwindow: failed to encode report: %w", err)
		}

		return enc.Close()
	default:
		return writeTable(w, r, out.Precision)
	}
}

func (f frequencyRow) fields(prec int) []string {
	return []string{
		formatFloat(f.Frequency, prec),
		formatFloat(f.Magnitude, prec),
		formatFloat(f.Level, 2),
		formatFloat(f.Phase, 2),
		formatFloat(f.Coherence, prec),
	}
}

func (i impulseRow) fields(prec int) []string {
	return []string{formatFloat(i.Time, prec), formatFloat(i.Value, prec)}
}

func formatFloat(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

func writeCSV(w io.Writer, r report, prec int) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(frequencyColumns); err != nil {
		return err
	}

	for _, row := range r.Frequency {
		if err := cw.Write(row.fields(prec)); err != nil {
			return err
		}
	}

	if len(r.Impulse) > 0 {
		if err := cw.Write(impulseColumns); err != nil {
			return err
		}

		for _, row := range r.Impulse {
			if err := cw.Write(row.fields(prec)); err != nil {
				return err
			}
		}
	}

	cw.Flush()

	return cw.Error()
}

func writeTable(w io.Writer, r report, prec int) error {
	if _, err := fmt.Fprintf(w, "%s\n\n", r.Notes); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	if err := tableHeader(tw, frequencyColumns); err != nil {
		return err
	}

	for _, row := range r.Frequency {
		if _, err := fmt.Fprintf(tw, "%s\t\n", strings.Join(row.fields(prec), "\t")); err != nil {
			return err
		}
	}

	if len(r.Impulse) > 0 {
		if _, err := fmt.Fprintln(tw); err != nil {
			return err
		}

		if err := tableHeader(tw, impulseColumns); err != nil {
			return err
		}

		for _, row := range r.Impulse {
			if _, err := fmt.Fprintf(tw, "%s\t\n", strings.Join(row.fields(prec), "\t")); err != nil {
				return err
			}
		}
	}

	return tw.Flush()
}

func tableHeader(w io.Writer, columns []string) error {
	titles := make([]string, len(columns))
	rules := make([]string, len(columns))

	for i, c := range columns {
		titles[i] = titleCaser.String(c)
		rules[i] = strings.Repeat("-", len(c))
	}

	if _, err := fmt.Fprintf(w, "%s\t\n", strings.Join(titles, "\t")); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "%s\t\n", strings.Join(rules, "\t"))

	return err
}
