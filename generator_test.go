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
	"testing"

	"github.com/pkg/errors"
)

func fourColorPalette(t *testing.T, pool *WorkerPool, size int) *Palette {
	t.Helper()
	images := []image.Image{
		solidImage(size, size, red),
		solidImage(size, size, green),
		solidImage(size, size, blue),
		solidImage(size, size, white),
	}
	palette, err := NewPaletteBuilder(pool).fromImages(images, size, size)
	if err != nil {
		t.Fatal(err)
	}
	return palette
}

func TestComposeFourColors(t *testing.T) {
	for _, numRoutines := range []int{1, 3} {
		pool := testPool(t, numRoutines)
		palette := fourColorPalette(t, pool, 2)
		target := ConvertImage(quadrantImage(2, red, green, blue, white))
		factory, err := GetMatcher("")
		if err != nil {
			t.Fatal(err)
		}
		gen := NewGenerator(palette, factory(2, 2, Scale(2, target.Width)), pool)
		numDone := 0
		gen.Progress = func(num int) { numDone = num }
		canvas, composeErr := gen.Compose(target)
		if composeErr != nil {
			t.Fatal(composeErr)
		}
		if canvas.Cols != 2 || canvas.Rows != 2 {
			t.Fatalf("expected 2x2 blocks, got %dx%d", canvas.Cols, canvas.Rows)
		}
		res := canvas.NRGBA()
		expected := quadrantImage(2, red, green, blue, white)
		for y := 0; y < 4; y++ {
			for x := 0; x < 4; x++ {
				if got, want := res.NRGBAAt(x, y), expected.NRGBAAt(x, y); got != want {
					t.Errorf("%d routines: pixel (%d, %d): expected %v, got %v",
						numRoutines, x, y, want, got)
				}
			}
		}
		for _, tile := range palette.Tiles {
			if tile.Usage != 1 {
				t.Errorf("%d routines: expected tile %d to be used once, got %d",
					numRoutines, tile.ID, tile.Usage)
			}
		}
		if numDone != 4 {
			t.Errorf("expected progress to reach 4, got %d", numDone)
		}
	}
}

func TestComposeUsageSum(t *testing.T) {
	pool := testPool(t, 2)
	palette := fourColorPalette(t, pool, 4)
	// 13 x 9 pixels: 3 x 2 windows, remaining pixels are discarded
	target := ConvertImage(solidImage(13, 9, red))
	gen := NewGenerator(palette, NewSSIMMatcher(4, 4, Scale(4, target.Width)), pool)
	if gen.Progress == nil || gen.Entry == nil {
		t.Fatal("generator must ignore progress and log to the standard logger by default")
	}
	if n := gen.NumWindows(target); n != 6 {
		t.Fatalf("expected 6 windows, got %d", n)
	}
	canvas, err := gen.Compose(target)
	if err != nil {
		t.Fatal(err)
	}
	if canvas.Width != 12 || canvas.Height != 8 {
		t.Errorf("expected canvas of size 12x8, got %dx%d", canvas.Width, canvas.Height)
	}
	stats, statsErr := palette.UsageStats()
	if statsErr != nil {
		t.Fatal(statsErr)
	}
	if stats.Total != 6 {
		t.Errorf("expected total usage 6, got %d", stats.Total)
	}
	if stats.MostUsed != 0 || stats.MostUsedCounts != 6 || stats.Used != 1 {
		t.Errorf("expected only the red tile to be used, got %+v", stats)
	}
}

func TestComposeTargetTooSmall(t *testing.T) {
	pool := testPool(t, 1)
	palette := fourColorPalette(t, pool, 4)
	gen := NewGenerator(palette, NewSSIMMatcher(4, 4, 1), pool)
	_, err := gen.Compose(NewFloatImage(3, 8))
	if errors.Cause(err) != ErrTargetTooSmall {
		t.Errorf("expected ErrTargetTooSmall, got %v", err)
	}
	for _, tile := range palette.Tiles {
		if tile.Usage != 0 {
			t.Errorf("tile %d was used", tile.ID)
		}
	}
}

func TestComposeEmptyPalette(t *testing.T) {
	pool := testPool(t, 1)
	gen := NewGenerator(&Palette{TileWidth: 2, TileHeight: 2}, NewSSIMMatcher(2, 2, 1), pool)
	if _, err := gen.Compose(NewFloatImage(4, 4)); errors.Cause(err) != ErrEmptyPalette {
		t.Errorf("expected ErrEmptyPalette, got %v", err)
	}
}

func TestPrepareTarget(t *testing.T) {
	target, err := PrepareTarget(solidImage(40, 20, blue), 10, nil)
	if err != nil {
		t.Fatal(err)
	}
	if target.Width != 10 || target.Height != 5 {
		t.Errorf("expected target of size 10x5, got %dx%d", target.Width, target.Height)
	}
	if _, err := PrepareTarget(image.NewNRGBA(image.Rectangle{}), 10, nil); errors.Cause(err) != ErrTargetTooSmall {
		t.Errorf("expected ErrTargetTooSmall, got %v", err)
	}
}

func TestScale(t *testing.T) {
	if got := Scale(2, 4); got != 0.5 {
		t.Errorf("expected 0.5, got %v", got)
	}
	if got := Scale(16, 0); got != 1 {
		t.Errorf("expected 1 for empty target, got %v", got)
	}
}
