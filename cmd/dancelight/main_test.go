package main

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"github.com/wesen/dancelight/internal/posescript"
)

func TestPrintFrame(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"--print", "--frame", "12"}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 64 {
		t.Fatalf("expected 64 rows, got %d", len(lines))
	}
	if !strings.Contains(out.String(), "#") {
		t.Error("the dancer should light some cells")
	}
}

func TestPNGExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := run([]string{"--png", path, "--scale", "2"}, &bytes.Buffer{}); err != nil {
		t.Fatalf("run: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 128 || b.Dy() != 128 {
		t.Errorf("expected 128x128, got %v", b)
	}
}

func TestCustomScriptAndLogFile(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "still.js")
	if err := os.WriteFile(script, []byte(`function pose(f) { return {Head: [0, 0, 2]}; }`), 0o644); err != nil {
		t.Fatal(err)
	}
	logPath := filepath.Join(dir, "dancelight.log")

	var out bytes.Buffer
	err := run([]string{"--print", "--script", script, "--log-file", logPath, "--verbose"}, &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := strings.Count(out.String(), "#"); got != 61 {
		t.Errorf("expected a lone radius-4 head (61 cells), got %d", got)
	}
	logged, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"compositor ready", "phase=draw-torso"} {
		if !strings.Contains(string(logged), want) {
			t.Errorf("log missing %q", want)
		}
	}
}

func TestErrors(t *testing.T) {
	dir := t.TempDir()
	noPose := filepath.Join(dir, "nopose.js")
	os.WriteFile(noPose, []byte("var x = 1;"), 0o644)

	if err := run([]string{"--print", "--script", noPose}, &bytes.Buffer{}); !errors.Is(err, posescript.ErrNoPoseFunc) {
		t.Errorf("expected ErrNoPoseFunc, got %v", err)
	}
	if err := run([]string{"--print", "--config", filepath.Join(dir, "missing.yaml")}, &bytes.Buffer{}); err == nil {
		t.Error("expected an error for a missing config file")
	}
	if err := run([]string{"--bogus"}, &bytes.Buffer{}); err == nil {
		t.Error("expected a flag error")
	}
	if err := run([]string{"--help"}, &bytes.Buffer{}); !errors.Is(err, pflag.ErrHelp) {
		t.Errorf("expected ErrHelp, got %v", err)
	}
}
