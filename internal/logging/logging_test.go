package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		log, err := New(level, "text", &bytes.Buffer{})
		if err != nil {
			t.Fatalf("New(%q): %v", level, err)
		}

		want, _ := logrus.ParseLevel(level)
		if log.GetLevel() != want {
			t.Fatalf("level = %v, want %v", log.GetLevel(), want)
		}
	}

	if _, err := New("chatty", "text", nil); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer

	log, err := New("info", "json", &buf)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	log.WithField("mode", "FFT10").Info("resized")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}

	if entry["msg"] != "resized" || entry["mode"] != "FFT10" {
		t.Fatalf("entry = %v", entry)
	}
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer

	log, err := New("warn", "text", &buf)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	log.Info("hidden")
	log.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Fatalf("output = %q", out)
	}
}

func TestUnknownFormat(t *testing.T) {
	if _, err := New("info", "xml", nil); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("err = %v, want ErrUnknownFormat", err)
	}
}

func TestDiscard(t *testing.T) {
	log := Discard()
	log.Error("dropped")

	if log.GetLevel() != logrus.InfoLevel {
		t.Fatalf("level = %v", log.GetLevel())
	}
}
