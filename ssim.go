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
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/stat"
)

const (
	// ssimC1 and ssimC2 are the stabilization constants of SSIM for a dynamic
	// range of 1.
	ssimC1 = 0.01 * 0.01
	ssimC2 = 0.03 * 0.03
	ssimC3 = ssimC2 / 2
)

// Components are the three parts of the structural similarity index. Each
// value is 1 for identical inputs and usually between 0 and 1.
type Components struct {
	Structure, Contrast, Luminance float64
}

// Product returns Structure * Contrast * Luminance, the classic SSIM value.
func (c Components) Product() float64 {
	return c.Structure * c.Contrast * c.Luminance
}

// moments returns means, variances and the covariance of x and y.
// Inputs with less than two values have no variance.
func moments(x, y []float64) (mx, my, vx, vy, cxy float64) {
	if len(x) < 2 {
		return stat.Mean(x, nil), stat.Mean(y, nil), 0, 0, 0
	}
	// all second moments are computed the same way, for x == y the covariance
	// then equals the variances
	mx, my = stat.Mean(x, nil), stat.Mean(y, nil)
	vx = stat.Covariance(x, x, nil)
	vy = stat.Covariance(y, y, nil)
	cxy = stat.Covariance(x, y, nil)
	return mx, my, math.Max(vx, 0), math.Max(vy, 0), cxy
}

// compareChannel computes the SSIM components of two equally long value
// lists.
func compareChannel(x, y []float64) Components {
	mx, my, vx, vy, cxy := moments(x, y)
	sx, sy := math.Sqrt(vx), math.Sqrt(vy)
	return Components{
		Structure: (cxy + ssimC3) / (sx*sy + ssimC3),
		Contrast:  (2*sx*sy + ssimC2) / (vx + vy + ssimC2),
		Luminance: (2*mx*my + ssimC1) / (mx*mx + my*my + ssimC1),
	}
}

// compareChannels computes the components for each channel pair and returns
// the channel average.
func compareChannels(xs, ys [][]float64) Components {
	var res Components
	if len(xs) == 0 {
		return res
	}
	for i, x := range xs {
		c := compareChannel(x, ys[i])
		res.Structure += c.Structure
		res.Contrast += c.Contrast
		res.Luminance += c.Luminance
	}
	n := float64(len(xs))
	res.Structure /= n
	res.Contrast /= n
	res.Luminance /= n
	return res
}

func rgbaChannels(img *FloatImage) [][]float64 {
	res := make([][]float64, 4)
	for ch := range res {
		res[ch] = img.Channel(ch)
	}
	return res
}

// SSIM compares two images of the same size with the structural similarity
// index. The image is treated as a single window, the components are
// computed for each of the four channels and averaged.
func SSIM(x, y *FloatImage) Components {
	return compareChannels(rgbaChannels(x), rgbaChannels(y))
}

// lchChannels converts the rgb part of img to CIE LCh, hue is scaled to
// [0, 1]. The alpha channel is ignored.
func lchChannels(img *FloatImage) [][]float64 {
	n := len(img.Pix)
	l, c, h := make([]float64, n), make([]float64, n), make([]float64, n)
	for i, p := range img.Pix {
		col := colorful.Color{R: clampUnit(p[0]), G: clampUnit(p[1]), B: clampUnit(p[2])}
		hue, chroma, lum := col.Hcl()
		l[i], c[i], h[i] = lum, chroma, hue/360.0
	}
	return [][]float64{l, c, h}
}

// ColorCovariance compares the two images in the perceptually uniform CIE
// LCh space. The Structure component is the normalized covariance of the
// channels and thus describes how the colors of the images vary together.
func ColorCovariance(x, y *FloatImage) Components {
	return compareChannels(lchChannels(x), lchChannels(y))
}
