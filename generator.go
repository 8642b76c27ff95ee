// Copyright 2018 Fabian Wenzelmann
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
	"image"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// PrepareTarget scales img s.t. its larger side is targetSize (retaining the
// ratio) and converts it to a float image.
func PrepareTarget(img image.Image, targetSize int, resizer ImageResizer) (*FloatImage, error) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, errors.Wrap(ErrTargetTooSmall, "empty target image")
	}
	if resizer == nil {
		resizer = DefaultResizer
	}
	w, h := ResizeDims(bounds.Dx(), bounds.Dy(), targetSize)
	return ConvertImage(resizer.Resize(uint(w), uint(h), img)), nil
}

// Scale returns the ratio between the palette tile width and the width of the
// scaled target, the value the SSIM matcher uses to weight local structure
// against global color.
func Scale(tileWidth, targetWidth int) float64 {
	if targetWidth <= 0 {
		return 1
	}
	return float64(tileWidth) / float64(targetWidth)
}

// Generator composes mosaics from a palette.
//
// Windows are processed one after another: for each window the best tile is
// selected (concurrently on Pool), its usage counter is incremented and the
// tile is stamped into the canvas before the next window is considered.
type Generator struct {
	Palette  *Palette
	Matcher  Matcher
	Pool     *WorkerPool
	Progress ProgressFunc
	Entry    *log.Entry
}

// NewGenerator returns a new generator that ignores progress and logs to the
// standard logger.
func NewGenerator(palette *Palette, matcher Matcher, pool *WorkerPool) *Generator {
	return &Generator{
		Palette:  palette,
		Matcher:  matcher,
		Pool:     pool,
		Progress: ProgressIgnore,
		Entry:    log.NewEntry(log.StandardLogger()),
	}
}

// NumWindows returns the number of windows of the target.
func (g *Generator) NumWindows(target *FloatImage) int {
	cols, rows := GridDims(target.Width, target.Height, g.Palette.TileWidth, g.Palette.TileHeight)
	return cols * rows
}

// Compose replaces each window of target by the best matching tile.
// target must already be scaled, see PrepareTarget.
func (g *Generator) Compose(target *FloatImage) (*Canvas, error) {
	if g.Palette == nil || g.Palette.Len() == 0 {
		return nil, ErrEmptyPalette
	}
	pw, ph := g.Palette.TileWidth, g.Palette.TileHeight
	cols, rows := GridDims(target.Width, target.Height, pw, ph)
	if cols == 0 || rows == 0 {
		return nil, errors.Wrapf(ErrTargetTooSmall, "target %dx%d, tiles %dx%d",
			target.Width, target.Height, pw, ph)
	}
	division := NewWindowDivider(pw, ph).Divide(target.Bounds())
	canvas := NewCanvas(cols, rows, pw, ph)
	selector := NewTileSelector(g.Palette, g.Matcher, g.Pool)
	numDone := 0
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			window, cropErr := target.Crop(division.Get(j, i))
			if cropErr != nil {
				return nil, cropErr
			}
			desc := Describe(window)
			id, score := selector.Select(desc)
			if id == NoTileID {
				return nil, ErrEmptyPalette
			}
			// only place where tiles are modified, all workers are done
			g.Palette.Increment(id)
			if stampErr := canvas.Stamp(g.Palette.Tile(id).Image, j, i, desc.MeanColor); stampErr != nil {
				return nil, stampErr
			}
			g.Entry.WithFields(log.Fields{
				"row":   i,
				"col":   j,
				"tile":  id,
				"score": score,
			}).Debug("Selected tile")
			numDone++
			g.Progress(numDone)
		}
	}
	return canvas, nil
}
