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
	"image"
	"sync/atomic"

	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Tile is a palette image scaled to the palette tile size together with its
// descriptors.
//
// Usage counts how often the tile was placed in the mosaic, it is only
// modified by Palette.Increment.
type Tile struct {
	Descriptors
	ID    TileID
	Path  string
	Usage uint64
}

// Palette is the ordered collection of tiles used to compose a mosaic.
// All tiles have the size TileWidth x TileHeight and the tile at position i has
// ID i.
type Palette struct {
	TileWidth, TileHeight int
	Tiles                 []*Tile
}

// Len returns the number of tiles.
func (p *Palette) Len() int {
	return len(p.Tiles)
}

// Tile returns the tile with the given id.
func (p *Palette) Tile(id TileID) *Tile {
	return p.Tiles[id]
}

// Increment increases the usage counter of the tile. It must not be called
// concurrently with Select on the same palette.
func (p *Palette) Increment(id TileID) {
	p.Tiles[id].Usage++
}

// UsageStats summarizes how often the tiles of a palette were used.
type UsageStats struct {
	Tiles, Used    int
	Total          uint64
	Mean, Median   float64
	Max            float64
	StdDev         float64
	MostUsed       TileID
	MostUsedCounts uint64
}

// UsageStats computes statistics about the usage counters.
func (p *Palette) UsageStats() (UsageStats, error) {
	res := UsageStats{Tiles: p.Len(), MostUsed: NoTileID}
	if p.Len() == 0 {
		return res, nil
	}
	counts := make(stats.Float64Data, p.Len())
	for i, tile := range p.Tiles {
		counts[i] = float64(tile.Usage)
		res.Total += tile.Usage
		if tile.Usage > 0 {
			res.Used++
		}
		if res.MostUsed == NoTileID || tile.Usage > res.MostUsedCounts {
			res.MostUsed, res.MostUsedCounts = tile.ID, tile.Usage
		}
	}
	var err error
	if res.Mean, err = counts.Mean(); err != nil {
		return res, errors.Wrap(err, "mean usage")
	}
	if res.Median, err = counts.Median(); err != nil {
		return res, errors.Wrap(err, "median usage")
	}
	if res.Max, err = counts.Max(); err != nil {
		return res, errors.Wrap(err, "max usage")
	}
	if res.StdDev, err = counts.StandardDeviationPopulation(); err != nil {
		return res, errors.Wrap(err, "usage deviation")
	}
	return res, nil
}

// PaletteBuilder creates palettes from directories or images. Images are
// loaded, scaled and described concurrently on Pool; each job writes only
// its own tile.
type PaletteBuilder struct {
	Filter   SupportedImageFunc
	Resizer  ImageResizer
	Pool     *WorkerPool
	Progress ProgressFunc
	Entry    *log.Entry
}

// NewPaletteBuilder returns a builder with the default filter and resizer.
// Progress is ignored and messages are logged to the standard logger.
func NewPaletteBuilder(pool *WorkerPool) *PaletteBuilder {
	return &PaletteBuilder{
		Filter:   DefaultImageFormats,
		Resizer:  DefaultResizer,
		Pool:     pool,
		Progress: ProgressIgnore,
		Entry:    log.NewEntry(log.StandardLogger()),
	}
}

// PaletteTileSize returns the size of the tiles created from the images in
// paths: the size of the first image scaled s.t. its larger side is maxSize.
func PaletteTileSize(paths []string, maxSize int) (int, int, error) {
	if len(paths) == 0 {
		return 0, 0, ErrEmptyPalette
	}
	config, err := LoadConfig(paths[0])
	if err != nil {
		return 0, 0, err
	}
	if config.Width <= 0 || config.Height <= 0 {
		return 0, 0, errors.Wrapf(ErrDecode, "%s: empty image", paths[0])
	}
	w, h := ResizeDims(config.Width, config.Height, maxSize)
	return w, h, nil
}

// Build creates a palette from all images in dir. Files not accepted by the
// filter are skipped and don't consume an id. The tile size is computed with
// PaletteTileSize.
func (b *PaletteBuilder) Build(dir string, maxSize int) (*Palette, error) {
	paths, listErr := ListImages(dir, b.Filter)
	if listErr != nil {
		return nil, listErr
	}
	if len(paths) == 0 {
		return nil, errors.Wrap(ErrEmptyPalette, dir)
	}
	w, h, sizeErr := PaletteTileSize(paths, maxSize)
	if sizeErr != nil {
		return nil, sizeErr
	}
	b.Entry.WithFields(log.Fields{
		"dir":    dir,
		"images": len(paths),
		"width":  w,
		"height": h,
	}).Info("Assembling palette in memory")
	load := func(i int) (image.Image, error) {
		return LoadImage(paths[i])
	}
	palette, err := b.build(len(paths), w, h, load)
	if err != nil {
		return nil, err
	}
	for i, tile := range palette.Tiles {
		tile.Path = paths[i]
	}
	return palette, nil
}

func (b *PaletteBuilder) build(n, w, h int, load func(i int) (image.Image, error)) (*Palette, error) {
	if w <= 0 || h <= 0 {
		return nil, errors.Wrapf(ErrConfig, "invalid tile size %dx%d", w, h)
	}
	resizer := b.Resizer
	if resizer == nil {
		resizer = DefaultResizer
	}
	palette := &Palette{
		TileWidth:  w,
		TileHeight: h,
		Tiles:      make([]*Tile, n),
	}
	var numDone int64
	err := b.Pool.Run(n, func(i int) error {
		img, imgErr := load(i)
		if imgErr != nil {
			return imgErr
		}
		scaled := ConvertImage(resizer.Resize(uint(w), uint(h), img))
		if scaled.Width != w || scaled.Height != h {
			return errors.Errorf("resizer returned %dx%d tile, expected %dx%d",
				scaled.Width, scaled.Height, w, h)
		}
		palette.Tiles[i] = &Tile{
			Descriptors: Describe(scaled),
			ID:          TileID(i),
		}
		b.Progress(int(atomic.AddInt64(&numDone, 1)))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return palette, nil
}
