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
	"image/color"

	"github.com/pkg/errors"
)

// Color is a color with four float components R, G, B and A.
// Colors read from images are normalized to [0, 1].
type Color [4]float64

// White is the color with value 1 in every channel (including alpha).
var White = Color{1, 1, 1, 1}

// Luma returns the average of the r, g and b components.
func (c Color) Luma() float64 {
	return (c[0] + c[1] + c[2]) / 3.0
}

// FloatImage is a rectangular buffer of float colors, the origin is always
// (0, 0). Pixels are stored row by row.
type FloatImage struct {
	Width, Height int
	Pix           []Color
}

// NewFloatImage returns a black, fully transparent image of the given size.
func NewFloatImage(width, height int) *FloatImage {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &FloatImage{
		Width:  width,
		Height: height,
		Pix:    make([]Color, width*height),
	}
}

// ConvertImage converts an image into a float image, each channel is
// normalized to [0, 1]. Colors are not premultiplied.
func ConvertImage(img image.Image) *FloatImage {
	bounds := img.Bounds()
	res := NewFloatImage(bounds.Dx(), bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			res.Pix[(y-bounds.Min.Y)*res.Width+(x-bounds.Min.X)] = Color{
				float64(c.R) / 255.0,
				float64(c.G) / 255.0,
				float64(c.B) / 255.0,
				float64(c.A) / 255.0,
			}
		}
	}
	return res
}

// Bounds returns the rectangle (0, 0, Width, Height).
func (img *FloatImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, img.Width, img.Height)
}

// At returns the color at (x, y), the point must be inside the image.
func (img *FloatImage) At(x, y int) Color {
	return img.Pix[y*img.Width+x]
}

// Set sets the color at (x, y), the point must be inside the image.
func (img *FloatImage) Set(x, y int, c Color) {
	img.Pix[y*img.Width+x] = c
}

// clampedAt returns the color at (x, y) where coordinates outside of the image
// are replaced by the coordinates of (cx, cy).
func (img *FloatImage) clampedAt(x, y, cx, cy int) Color {
	if x < 0 || x >= img.Width {
		x = cx
	}
	if y < 0 || y >= img.Height {
		y = cy
	}
	return img.At(x, y)
}

// Crop returns a copy of the area r, r must be contained in the bounds of the
// image.
func (img *FloatImage) Crop(r image.Rectangle) (*FloatImage, error) {
	if !r.In(img.Bounds()) {
		return nil, errors.Errorf("crop area %v not inside image bounds %v", r, img.Bounds())
	}
	res := NewFloatImage(r.Dx(), r.Dy())
	for y := 0; y < res.Height; y++ {
		srcStart := (r.Min.Y+y)*img.Width + r.Min.X
		copy(res.Pix[y*res.Width:(y+1)*res.Width], img.Pix[srcStart:srcStart+res.Width])
	}
	return res, nil
}

// Mul returns a new image where each pixel is multiplied (in all four
// channels) by the corresponding weight. weights must have exactly
// Width * Height entries.
func (img *FloatImage) Mul(weights []float64) *FloatImage {
	res := NewFloatImage(img.Width, img.Height)
	for i, c := range img.Pix {
		w := weights[i]
		res.Pix[i] = Color{c[0] * w, c[1] * w, c[2] * w, c[3] * w}
	}
	return res
}

// Channel returns all values of channel ch (0 = R, ..., 3 = A).
func (img *FloatImage) Channel(ch int) []float64 {
	res := make([]float64, len(img.Pix))
	for i, c := range img.Pix {
		res[i] = c[ch]
	}
	return res
}

func clampUnit(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// NRGBA converts the image to an image.NRGBA, values are clamped to [0, 1]
// before they're scaled to 8 bit.
func (img *FloatImage) NRGBA() *image.NRGBA {
	res := image.NewNRGBA(img.Bounds())
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			c := img.At(x, y)
			res.SetNRGBA(x, y, color.NRGBA{
				R: uint8(clampUnit(c[0])*255.0 + 0.5),
				G: uint8(clampUnit(c[1])*255.0 + 0.5),
				B: uint8(clampUnit(c[2])*255.0 + 0.5),
				A: uint8(clampUnit(c[3])*255.0 + 0.5),
			})
		}
	}
	return res
}
