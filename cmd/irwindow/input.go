package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

var (
	ErrInvalidWAV = errors.New("irwindow: invalid WAV file")
	ErrChannel    = errors.New("irwindow: channel out of range")
)

type impulse struct {
	name    string
	samples []float64
	rate    float64
}

// readImpulse loads a WAV or text impulse response. rate applies to text
// input only; channel to WAV input only.
func readImpulse(path string, rate float64, channel int) (*impulse, error) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("irwindow: could not open file: %w", err)
	}
	defer file.Close()

	if strings.EqualFold(filepath.Ext(path), ".wav") {
		samples, r, err := readWAV(file, channel)
		if err != nil {
			return nil, err
		}

		return &impulse{name: name, samples: samples, rate: r}, nil
	}

	samples, err := readText(file)
	if err != nil {
		return nil, err
	}

	return &impulse{name: name, samples: samples, rate: rate}, nil
}

func readWAV(r io.ReadSeeker, channel int) ([]float64, float64, error) {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		return nil, 0, ErrInvalidWAV
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("irwindow: could not read PCM buffer: %w", err)
	}

	samples, err := pcmChannel(buf, channel)
	if err != nil {
		return nil, 0, err
	}

	return samples, float64(buf.Format.SampleRate), nil
}

// pcmChannel extracts one channel scaled to [-1, 1).
func pcmChannel(buf *audio.IntBuffer, channel int) ([]float64, error) {
	channels := 1
	if buf.Format != nil && buf.Format.NumChannels > 0 {
		channels = buf.Format.NumChannels
	}

	if channel < 0 || channel >= channels {
		return nil, fmt.Errorf("%w: %d of %d", ErrChannel, channel, channels)
	}

	depth := buf.SourceBitDepth
	if depth <= 0 {
		depth = 16
	}

	scale := 1 / float64(int64(1)<<(depth-1))

	// 8-bit PCM is unsigned.
	bias := 0
	if depth == 8 {
		bias = 128
	}

	out := make([]float64, len(buf.Data)/channels)
	for i := range out {
		out[i] = float64(buf.Data[i*channels+channel]-bias) * scale
	}

	return out, nil
}

// readText parses one sample per line. Blank lines and lines starting with
// '#' or ';' are skipped.
func readText(r io.Reader) ([]float64, error) {
	var samples []float64

	scanner := bufio.NewScanner(r)
	line := 0

	for scanner.Scan() {
		line++

		text := strings.TrimSpace(scanner.Text())
		if text == "" || text[0] == '#' || text[0] == ';' {
			continue
		}

		fields := strings.FieldsFunc(text, func(c rune) bool {
			return c == ' ' || c == '\t' || c == ',' || c == ';'
		})
		if len(fields) == 0 {
			continue
		}

		v, err := strconv.ParseFloat(fields[len(fields)-1], 64)
		if err != nil {
			return nil, fmt.Errorf("irwindow: line %d: %w", line, err)
		}

		samples = append(samples, v)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("irwindow: %w", err)
	}

	return samples, nil
}
