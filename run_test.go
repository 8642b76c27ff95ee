// Copyright 2019 Fabian Wenzelmann
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ssimosaic

import (
	"bytes"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func testEntry() *log.Entry {
	logger := log.New()
	logger.Out = io.Discard
	return log.NewEntry(logger)
}

func TestRun(t *testing.T) {
	palette := paletteDir(t,
		solidImage(4, 4, red),
		solidImage(4, 4, green),
		solidImage(4, 4, blue),
		solidImage(4, 4, white),
	)
	inputDir := t.TempDir()
	input := filepath.Join(inputDir, "test.png")
	writePNG(t, input, quadrantImage(4, blue, white, red, green))
	outDir := filepath.Join(t.TempDir(), "output", "nested")

	cfg := DefaultConfig()
	cfg.NumRoutines = 2
	cfg.InputPath = input
	cfg.PaletteDir = palette
	cfg.PaletteSize = 4
	cfg.TargetSize = 8
	cfg.OutputDir = outDir
	cfg.OutputLabel = "test"

	path, err := Run(cfg, testEntry(), true)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(outDir, "test_pal_f8-p4_0.png"); path != want {
		t.Errorf("expected output %s, got %s", want, path)
	}
	img, loadErr := LoadImage(path)
	if loadErr != nil {
		t.Fatal(loadErr)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 8, 8) {
		t.Fatalf("expected 8x8 mosaic, got %v", got)
	}
	expected := ConvertImage(quadrantImage(4, blue, white, red, green))
	res := ConvertImage(img)
	for i := range expected.Pix {
		if res.Pix[i] != expected.Pix[i] {
			t.Fatalf("pixel %d: expected %v, got %v", i, expected.Pix[i], res.Pix[i])
		}
	}

	second, err := Run(cfg, nil, false)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(outDir, "test_pal_f8-p4_1.png"); second != want {
		t.Errorf("expected output %s, got %s", want, second)
	}
}

func TestRunErrors(t *testing.T) {
	palette := paletteDir(t, solidImage(4, 4, red))
	input := filepath.Join(t.TempDir(), "small.png")
	writePNG(t, input, solidImage(8, 8, red))
	outDir := filepath.Join(t.TempDir(), "output")

	cfg := DefaultConfig()
	cfg.InputPath = input
	cfg.PaletteDir = palette
	cfg.OutputDir = outDir
	cfg.OutputLabel = "test"

	invalid := cfg
	invalid.PaletteSize = 2
	if _, err := Run(invalid, testEntry(), false); errors.Cause(err) != ErrConfig {
		t.Errorf("expected ErrConfig, got %v", err)
	}

	// palette tiles (4 x 8) are higher than the scaled target (8 x 4)
	tall := cfg
	tall.PaletteDir = paletteDir(t, solidImage(2, 4, red))
	tall.PaletteSize = 8
	tall.TargetSize = 8
	tallInput := filepath.Join(t.TempDir(), "wide.png")
	writePNG(t, tallInput, solidImage(8, 4, red))
	tall.InputPath = tallInput
	if _, err := Run(tall, testEntry(), false); errors.Cause(err) != ErrTargetTooSmall {
		t.Errorf("expected ErrTargetTooSmall, got %v", err)
	}

	missing := cfg
	missing.InputPath = filepath.Join(filepath.Dir(input), "missing.png")
	missing.PaletteSize = 4
	missing.TargetSize = 8
	if _, err := Run(missing, testEntry(), false); err == nil {
		t.Error("expected error for missing input")
	}

	if _, statErr := os.Stat(outDir); !os.IsNotExist(statErr) {
		t.Error("no output must be written on errors")
	}
}

func TestRunLogsWithEntry(t *testing.T) {
	palette := paletteDir(t, solidImage(4, 4, red), solidImage(4, 4, blue))
	input := filepath.Join(t.TempDir(), "test.png")
	writePNG(t, input, quadrantImage(4, blue, red, red, blue))

	cfg := DefaultConfig()
	cfg.NumRoutines = 2
	cfg.InputPath = input
	cfg.PaletteDir = palette
	cfg.PaletteSize = 4
	cfg.TargetSize = 8
	cfg.OutputDir = t.TempDir()
	cfg.OutputLabel = "test"
	cfg.Formats = "jpg-png"
	cfg.Resizer = "imaging"
	cfg.Quality = 2
	var progress bytes.Buffer
	cfg.ProgressOut = &progress

	logger, hook := test.NewNullLogger()
	logger.SetLevel(log.DebugLevel)
	if _, err := Run(cfg, logger.WithField("run", "r1"), false); err != nil {
		t.Fatal(err)
	}
	messages := make(map[string]int)
	for _, entry := range hook.AllEntries() {
		if entry.Data["run"] != "r1" {
			t.Errorf("record %q misses the run field", entry.Message)
		}
		messages[entry.Message]++
	}
	if messages["Assembling palette in memory"] != 1 {
		t.Error("expected palette to be logged once")
	}
	if messages["Selected tile"] != 4 {
		t.Errorf("expected 4 selected tiles, got %d", messages["Selected tile"])
	}
	for _, entry := range hook.AllEntries() {
		if entry.Message != "Mosaic similarity" {
			continue
		}
		if ssim, ok := entry.Data["ssim"].(float64); !ok || ssim < 0.999 {
			t.Errorf("expected similarity of exact mosaic to be 1, got %v", entry.Data["ssim"])
		}
	}
	if messages["Mosaic similarity"] != 1 {
		t.Error("expected similarity to be logged once")
	}
	if messages["Finished"] != 1 {
		t.Error("expected run to finish")
	}
	if !strings.Contains(progress.String(), "Computing mosaic: 4 of 4 (100.0%)") {
		t.Errorf("progress not written: %q", progress.String())
	}
}

func TestRunProgress(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.ProgressOut = &buf
	runProgress(cfg, true, "Stage", 2)(2)
	if got := buf.String(); got != "Stage: 2 of 2 (100.0%)\n" {
		t.Errorf("unexpected progress %q", got)
	}
	cfg.ProgressOut = nil
	// must not panic
	runProgress(cfg, false, "Stage", 2)(1)
	runProgress(cfg, true, "Stage", 2)(1)
}
