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
	"io"
	"math"

	"github.com/pkg/errors"
)

const (
	// MinPaletteSize is the smallest allowed palette tile size.
	MinPaletteSize = 4
	// MaxPaletteSize is the upper (exclusive) bound of the palette tile size.
	MaxPaletteSize = 128
	// DefaultPaletteSize is the palette tile size used if none is given.
	DefaultPaletteSize = 16
	// DefaultMosaicSize divided by the palette tile size is the default target
	// size.
	DefaultMosaicSize = 8192
	// DefaultOutputDir is the directory mosaics are written to.
	DefaultOutputDir = "output"
)

// Config contains all options of a mosaic run.
type Config struct {
	// NumRoutines is the number of go routines used for palette creation and
	// tile selection.
	NumRoutines int

	// InputPath is the image the mosaic is created from.
	InputPath string

	// PaletteDir is the directory containing the palette images.
	PaletteDir string

	// PaletteSize is the size of the larger side of palette tiles,
	// in [MinPaletteSize, MaxPaletteSize).
	PaletteSize int

	// TargetSize is the size of the larger side of the input after scaling,
	// in [PaletteSize, MaxUint32 / PaletteSize).
	TargetSize int

	// OutputDir is the directory the mosaic is written to.
	OutputDir string

	// OutputLabel is the first part of the output file name.
	OutputLabel string

	// Matcher is the name of a registered matcher, see GetMatcher.
	Matcher string

	// Resizer is the name of the resizer, see GetResizer.
	Resizer string

	// Quality selects the interpolation of the resizer, see GetInterP.
	Quality uint

	// Formats is the name of the image filter for palette directories, see
	// GetImageFormats.
	Formats string

	// ProgressOut receives progress messages (see StdProgressFunc) if not nil.
	// Otherwise progress is logged in verbose mode.
	ProgressOut io.Writer
}

// DefaultConfig returns a config with the default values, paths are empty.
func DefaultConfig() Config {
	return Config{
		NumRoutines: DefaultNumRoutines(),
		PaletteSize: DefaultPaletteSize,
		TargetSize:  DefaultTargetSize(DefaultPaletteSize),
		OutputDir:   DefaultOutputDir,
		Matcher:     DefaultMatcher,
		Resizer:     "nfnt",
		Quality:     DefaultQuality,
		Formats:     "all",
	}
}

// DefaultTargetSize returns the default target size for a palette tile size.
func DefaultTargetSize(paletteSize int) int {
	if paletteSize <= 0 {
		return DefaultMosaicSize
	}
	return DefaultMosaicSize / paletteSize
}

// TargetSizeBounds returns the range [min, max) of valid target sizes.
func TargetSizeBounds(paletteSize int) (int, int) {
	if paletteSize <= 0 {
		return 0, 0
	}
	return paletteSize, int(math.MaxUint32 / uint64(paletteSize))
}

// Validate checks all values of the config, the error wraps ErrConfig.
func (c Config) Validate() error {
	if c.NumRoutines <= 0 {
		return errors.Wrapf(ErrConfig, "number of routines must be positive, got %d", c.NumRoutines)
	}
	if c.InputPath == "" {
		return errors.Wrap(ErrConfig, "no input image given")
	}
	if c.PaletteDir == "" {
		return errors.Wrap(ErrConfig, "no palette directory given")
	}
	if c.PaletteSize < MinPaletteSize || c.PaletteSize >= MaxPaletteSize {
		return errors.Wrapf(ErrConfig, "palette size must be in [%d, %d), got %d",
			MinPaletteSize, MaxPaletteSize, c.PaletteSize)
	}
	lo, hi := TargetSizeBounds(c.PaletteSize)
	if c.TargetSize < lo || c.TargetSize >= hi {
		return errors.Wrapf(ErrConfig, "target size must be in [%d, %d), got %d",
			lo, hi, c.TargetSize)
	}
	if _, err := GetMatcher(c.Matcher); err != nil {
		return err
	}
	if _, err := GetResizer(c.Resizer, c.Quality); err != nil {
		return err
	}
	if _, err := GetImageFormats(c.Formats); err != nil {
		return err
	}
	return nil
}
