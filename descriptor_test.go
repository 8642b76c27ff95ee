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
	"image/color"
	"math"
	"testing"
)

func TestMeanColor(t *testing.T) {
	img := NewFloatImage(2, 1)
	img.Set(0, 0, Color{1, 0, 0.5, 1})
	img.Set(1, 0, Color{0, 1, 0.5, 0})
	got := MeanColor(img)
	want := Color{0.5, 0.5, 0.5, 0.5}
	if got != want {
		t.Errorf("expected mean %v, got %v", want, got)
	}
	if empty := MeanColor(NewFloatImage(0, 0)); empty != (Color{}) {
		t.Errorf("expected zero mean for empty image, got %v", empty)
	}
}

func TestEdgeMapUniform(t *testing.T) {
	colors := []color.NRGBA{red, green, blue, white, {R: 12, G: 200, B: 99, A: 17}}
	for _, c := range colors {
		edges := EdgeMap(ConvertImage(solidImage(5, 3, c)))
		for i, px := range edges.Pix {
			if math.Abs(px[0])+math.Abs(px[1])+math.Abs(px[2])+math.Abs(px[3]) > 1e-12 {
				t.Errorf("color %v: expected zero edge at pixel %d, got %v", c, i, px)
			}
		}
	}
}

func TestEdgeMapPoint(t *testing.T) {
	img := NewFloatImage(3, 3)
	img.Set(1, 1, Color{1, 1, 1, 1})
	edges := EdgeMap(img)
	if got := edges.At(1, 1); got != (Color{4, 4, 4, 4}) {
		t.Errorf("expected 4 in the center, got %v", got)
	}
	if got := edges.At(0, 1); got != (Color{-1, -1, -1, -1}) {
		t.Errorf("expected -1 left of center, got %v", got)
	}
	if got := edges.At(0, 0); got != (Color{}) {
		t.Errorf("expected 0 in the corner, got %v", got)
	}
}

func TestEdgeMapBorderClamped(t *testing.T) {
	// 1 x 2 image: the missing neighbours are replaced by the pixel itself
	img := NewFloatImage(2, 1)
	img.Set(0, 0, Color{1, 0, 0, 0})
	edges := EdgeMap(img)
	if got := edges.At(0, 0)[0]; got != 1 {
		t.Errorf("expected 1 at (0, 0), got %v", got)
	}
	if got := edges.At(1, 0)[0]; got != -1 {
		t.Errorf("expected -1 at (1, 0), got %v", got)
	}
}

func TestOrientationMapFlat(t *testing.T) {
	orientation := OrientationMap(ConvertImage(solidImage(4, 4, blue)))
	for i, px := range orientation.Pix {
		if px != White {
			t.Errorf("expected white at pixel %d, got %v", i, px)
		}
	}
}

func TestOrientationMapGradient(t *testing.T) {
	// horizontal ramp: dx > 0, dy = 0 => angle 0 => value 1
	// vertical ramp: dx = 0, dy > 0 => angle π/2 => value 0
	horizontal := NewFloatImage(3, 3)
	vertical := NewFloatImage(3, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			v := float64(x) / 2
			horizontal.Set(x, y, Color{v, v, v, v})
			v = float64(y) / 2
			vertical.Set(x, y, Color{v, v, v, v})
		}
	}
	if got := OrientationMap(horizontal).At(1, 1)[0]; math.Abs(got-1) > 1e-12 {
		t.Errorf("expected 1 for horizontal gradient, got %v", got)
	}
	if got := OrientationMap(vertical).At(1, 1)[0]; math.Abs(got) > 1e-12 {
		t.Errorf("expected 0 for vertical gradient, got %v", got)
	}
}

func TestDescribe(t *testing.T) {
	img := ConvertImage(solidImage(3, 2, green))
	desc := Describe(img)
	if desc.Image != img {
		t.Error("expected descriptors to reference the image")
	}
	if desc.MeanColor != (Color{0, 1, 0, 1}) {
		t.Errorf("unexpected mean color %v", desc.MeanColor)
	}
	if desc.Edges.Width != 3 || desc.Edges.Height != 2 ||
		desc.Orientation.Width != 3 || desc.Orientation.Height != 2 {
		t.Error("descriptor maps must have the size of the image")
	}
}
