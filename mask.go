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
)

// RadialMasks are two complementary weight fields for a window.
// Inner grows with the distance from the center and Outer = hypot(w, h) -
// Inner, so Inner[i] + Outer[i] is the same for every pixel.
//
// Local structure (edges, orientation) is weighted with Inner and the global
// color with Outer.
type RadialMasks struct {
	Width, Height int
	Inner, Outer  []float64
}

// NewRadialMasks computes the masks for a window of the given size.
// The center is (w/2, h/2) in integer coordinates.
func NewRadialMasks(width, height int) *RadialMasks {
	n := width * height
	res := &RadialMasks{
		Width:  width,
		Height: height,
		Inner:  make([]float64, n),
		Outer:  make([]float64, n),
	}
	cx, cy := float64(width/2), float64(height/2)
	diag := math.Hypot(float64(width), float64(height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			d := math.Hypot(float64(x)-cx, float64(y)-cy)
			res.Inner[y*width+x] = d
			res.Outer[y*width+x] = diag - d
		}
	}
	return res
}
