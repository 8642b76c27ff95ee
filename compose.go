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
	"github.com/pkg/errors"
)

const (
	// AlphaThreshold is the alpha value below which a tile pixel is considered
	// transparent and replaced by the luma of the window.
	AlphaThreshold = 0.5
)

// Canvas is the image a mosaic is composed on. It consists of Cols x Rows
// blocks, each of size TileWidth x TileHeight.
type Canvas struct {
	*FloatImage
	Cols, Rows            int
	TileWidth, TileHeight int
}

// NewCanvas returns an empty canvas of size
// (cols * tileWidth) x (rows * tileHeight).
func NewCanvas(cols, rows, tileWidth, tileHeight int) *Canvas {
	return &Canvas{
		FloatImage: NewFloatImage(cols*tileWidth, rows*tileHeight),
		Cols:       cols,
		Rows:       rows,
		TileWidth:  tileWidth,
		TileHeight: tileHeight,
	}
}

// Stamp writes the tile into the block in column col and row row.
// Pixels of the tile with an alpha value below AlphaThreshold are replaced by
// the luma of windowMean (in r, g and b), the alpha of each written pixel is
// the alpha of windowMean.
func (canvas *Canvas) Stamp(tile *FloatImage, col, row int, windowMean Color) error {
	if tile.Width != canvas.TileWidth || tile.Height != canvas.TileHeight {
		return errors.Errorf("tile of size %dx%d doesn't fit into block of size %dx%d",
			tile.Width, tile.Height, canvas.TileWidth, canvas.TileHeight)
	}
	if col < 0 || col >= canvas.Cols || row < 0 || row >= canvas.Rows {
		return errors.Errorf("block (%d, %d) outside of canvas with %dx%d blocks",
			col, row, canvas.Cols, canvas.Rows)
	}
	luma := windowMean.Luma()
	offsetX, offsetY := col*canvas.TileWidth, row*canvas.TileHeight
	for oy := 0; oy < tile.Height; oy++ {
		for ox := 0; ox < tile.Width; ox++ {
			px := tile.At(ox, oy)
			if px[3] < AlphaThreshold {
				px = Color{luma, luma, luma, luma}
			}
			px[3] = windowMean[3]
			canvas.Set(offsetX+ox, offsetY+oy, px)
		}
	}
	return nil
}
