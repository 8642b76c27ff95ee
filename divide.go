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
)

// TileDivision represents the division of an image into windows.
//
// Windows are not stored in the fashion (x, y) but (y, x). That means each
// entry in the division describes one row of the image.
// The get method does this correctly.
type TileDivision [][]image.Rectangle

// Get returns the rectangle at position div[y][x], that is the rectangle
// in row y and column x.
func (div TileDivision) Get(x, y int) image.Rectangle {
	return div[y][x]
}

// NumWindows returns the number of rectangles in the division.
func (div TileDivision) NumWindows() int {
	res := 0
	for _, row := range div {
		res += len(row)
	}
	return res
}

// gridSize returns ceil((dim - tileDim + 1) / tileDim), the number of
// windows of size tileDim that fit into dim with stride tileDim.
func gridSize(dim, tileDim int) int {
	if tileDim <= 0 {
		return 0
	}
	n := dim - tileDim + 1
	if n <= 0 {
		return 0
	}
	return (n + tileDim - 1) / tileDim
}

// GridDims returns the number of window columns and rows in an image of size
// width x height for windows of size tileWidth x tileHeight.
// Remaining pixels at the right and bottom border are not covered.
func GridDims(width, height, tileWidth, tileHeight int) (cols, rows int) {
	return gridSize(width, tileWidth), gridSize(height, tileHeight)
}

// WindowDivider divides an image into windows where each window has the
// given width and height. Windows never overlap the border of the image,
// remaining pixels are discarded.
type WindowDivider struct {
	Width, Height int
}

// NewWindowDivider returns a new WindowDivider.
func NewWindowDivider(width, height int) WindowDivider {
	return WindowDivider{Width: width, Height: height}
}

// Divide returns the windows of the image with the given bounds, row by row.
func (divider WindowDivider) Divide(bounds image.Rectangle) TileDivision {
	// no division possible if bounds are empty
	if bounds.Empty() {
		return nil
	}
	numCols, numRows := GridDims(bounds.Dx(), bounds.Dy(), divider.Width, divider.Height)
	res := make(TileDivision, numRows)
	for i := 0; i < numRows; i++ {
		res[i] = make([]image.Rectangle, numCols)
		for j := 0; j < numCols; j++ {
			x0 := bounds.Min.X + j*divider.Width
			y0 := bounds.Min.Y + i*divider.Height
			res[i][j] = image.Rect(x0, y0, x0+divider.Width, y0+divider.Height)
		}
	}
	return res
}
