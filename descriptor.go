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
	"math"
)

// Descriptors are the values computed for a tile or a window that are used to
// compare them. All images have the same size as the described image.
type Descriptors struct {
	Image       *FloatImage
	MeanColor   Color
	Edges       *FloatImage
	Orientation *FloatImage
}

// Describe computes all descriptors of img.
func Describe(img *FloatImage) Descriptors {
	return Descriptors{
		Image:       img,
		MeanColor:   MeanColor(img),
		Edges:       EdgeMap(img),
		Orientation: OrientationMap(img),
	}
}

// MeanColor computes the average of each channel over all pixels.
// An empty image has the zero color as mean.
func MeanColor(img *FloatImage) Color {
	var res Color
	numPixels := len(img.Pix)
	// don't do anything for empty images
	if numPixels == 0 {
		return res
	}
	for _, c := range img.Pix {
		for ch := 0; ch < 4; ch++ {
			res[ch] += c[ch]
		}
	}
	for ch := 0; ch < 4; ch++ {
		res[ch] /= float64(numPixels)
	}
	return res
}

// EdgeMap computes the discrete laplacian 4p - left - right - up - down for
// each pixel and channel. Neighbours outside of the image are replaced by the
// pixel itself, so an image of a single color has an edge map that is zero
// everywhere.
func EdgeMap(img *FloatImage) *FloatImage {
	res := NewFloatImage(img.Width, img.Height)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			p := img.At(x, y)
			left := img.clampedAt(x-1, y, x, y)
			right := img.clampedAt(x+1, y, x, y)
			up := img.clampedAt(x, y-1, x, y)
			down := img.clampedAt(x, y+1, x, y)
			var c Color
			for ch := 0; ch < 4; ch++ {
				c[ch] = 4*p[ch] - left[ch] - right[ch] - up[ch] - down[ch]
			}
			res.Set(x, y, c)
		}
	}
	return res
}

// OrientationMap computes the direction of the gradient for each pixel and
// channel: atan2(down - up, right - left) normalized by π/2 and subtracted
// from White. Neighbours are clamped as in EdgeMap, thus a flat region maps
// to all ones.
func OrientationMap(img *FloatImage) *FloatImage {
	res := NewFloatImage(img.Width, img.Height)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			left := img.clampedAt(x-1, y, x, y)
			right := img.clampedAt(x+1, y, x, y)
			up := img.clampedAt(x, y-1, x, y)
			down := img.clampedAt(x, y+1, x, y)
			var c Color
			for ch := 0; ch < 4; ch++ {
				angle := math.Atan2(down[ch]-up[ch], right[ch]-left[ch])
				c[ch] = White[ch] - angle/(math.Pi/2)
			}
			res.Set(x, y, c)
		}
	}
	return res
}
