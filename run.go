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
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Run creates a mosaic as described by the config and writes it to a new file
// in the output directory. It returns the path of the written file.
//
// Any error aborts the run, no partial mosaic is written.
// Progress is written to cfg.ProgressOut if set, otherwise it is logged if
// verbose is true.
func Run(cfg Config, entry *log.Entry, verbose bool) (string, error) {
	if entry == nil {
		entry = log.NewEntry(log.StandardLogger())
	}
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	factory, _ := GetMatcher(cfg.Matcher)
	resizer, _ := GetResizer(cfg.Resizer, cfg.Quality)
	filter, _ := GetImageFormats(cfg.Formats)
	start := time.Now()

	if inExt, ext := filepath.Ext(cfg.InputPath), OutputExt(cfg.InputPath); inExt != "" && inExt[1:] != ext {
		entry.WithFields(log.Fields{
			"input": cfg.InputPath,
			"ext":   ext,
		}).Warn("Can't encode the format of the input, using default output format")
	}

	pool := NewWorkerPool(cfg.NumRoutines)
	defer pool.Close()

	builder := NewPaletteBuilder(pool)
	builder.Resizer = resizer
	builder.Filter = filter
	builder.Entry = entry
	palette, paletteErr := builder.Build(cfg.PaletteDir, cfg.PaletteSize)
	if paletteErr != nil {
		return "", paletteErr
	}

	img, imgErr := LoadImage(cfg.InputPath)
	if imgErr != nil {
		return "", imgErr
	}
	target, targetErr := PrepareTarget(img, cfg.TargetSize, resizer)
	if targetErr != nil {
		return "", targetErr
	}

	gen := NewGenerator(palette, factory(palette.TileWidth, palette.TileHeight,
		Scale(palette.TileWidth, target.Width)), pool)
	gen.Entry = entry
	numWindows := gen.NumWindows(target)
	gen.Progress = runProgress(cfg, verbose, "Computing mosaic", numWindows)
	entry.WithFields(log.Fields{
		"input":   cfg.InputPath,
		"palette": cfg.PaletteDir,
		"tiles":   palette.Len(),
		"windows": numWindows,
		"matcher": cfg.Matcher,
	}).Info("Computing mosaic")
	canvas, composeErr := gen.Compose(target)
	if composeErr != nil {
		return "", composeErr
	}

	if covered, cropErr := target.Crop(canvas.Bounds()); cropErr == nil {
		entry.WithFields(log.Fields{
			"ssim":  SSIM(covered, canvas.FloatImage).Product(),
			"color": ColorCovariance(covered, canvas.FloatImage).Structure,
		}).Info("Mosaic similarity")
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return "", errors.Wrap(err, cfg.OutputDir)
	}
	path, pathErr := OutputPath(cfg.OutputDir, cfg.OutputLabel, cfg.PaletteDir,
		cfg.InputPath, cfg.TargetSize, cfg.PaletteSize)
	if pathErr != nil {
		return "", pathErr
	}
	if err := SaveImage(canvas.NRGBA(), path); err != nil {
		return "", err
	}

	usage, usageErr := palette.UsageStats()
	if usageErr != nil {
		entry.WithError(usageErr).Warn("Can't compute tile usage")
	} else {
		entry.WithFields(log.Fields{
			"used":      usage.Used,
			"tiles":     usage.Tiles,
			"median":    usage.Median,
			"max":       usage.Max,
			"stddev":    usage.StdDev,
			"most-used": usage.MostUsed,
		}).Info("Tile usage")
	}
	entry.WithFields(log.Fields{
		"output":   path,
		"duration": time.Since(start),
	}).Info("Finished")
	return path, nil
}

// runProgress returns the progress function for a stage with max steps:
// messages are written to cfg.ProgressOut if set, logged in verbose mode and
// ignored otherwise.
func runProgress(cfg Config, verbose bool, prefix string, max int) ProgressFunc {
	step := IntMax(max/20, 1)
	switch {
	case cfg.ProgressOut != nil:
		return StdProgressFunc(cfg.ProgressOut, prefix, max, step)
	case verbose:
		return LoggerProgressFunc(prefix, max, step)
	default:
		return ProgressIgnore
	}
}
