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
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

var (
	red   = color.NRGBA{R: 255, A: 255}
	green = color.NRGBA{G: 255, A: 255}
	blue  = color.NRGBA{B: 255, A: 255}
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// quadrantImage returns an image of size 2*cell x 2*cell where the four
// quadrants have the colors tl, tr, bl and br.
func quadrantImage(cell int, tl, tr, bl, br color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2*cell, 2*cell))
	for y := 0; y < 2*cell; y++ {
		for x := 0; x < 2*cell; x++ {
			var c color.NRGBA
			switch {
			case x < cell && y < cell:
				c = tl
			case y < cell:
				c = tr
			case x < cell:
				c = bl
			default:
				c = br
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// paletteDir creates a directory with one png file for each image.
func paletteDir(t *testing.T, images ...image.Image) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "pal")
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatal(err)
	}
	for i, img := range images {
		writePNG(t, filepath.Join(dir, string(rune('a'+i))+".png"), img)
	}
	return dir
}

func testPool(t *testing.T, n int) *WorkerPool {
	t.Helper()
	pool := NewWorkerPool(n)
	t.Cleanup(pool.Close)
	return pool
}

// uniformImage returns an image where each pixel has color c.
func uniformImage(width, height int, c Color) *FloatImage {
	res := NewFloatImage(width, height)
	for i := range res.Pix {
		res.Pix[i] = c
	}
	return res
}

// fromImages creates a palette with tiles of size w x h from images already
// in memory. The tile ids are the positions in images.
func (b *PaletteBuilder) fromImages(images []image.Image, w, h int) (*Palette, error) {
	if len(images) == 0 {
		return nil, ErrEmptyPalette
	}
	return b.build(len(images), w, h, func(i int) (image.Image, error) {
		return images[i], nil
	})
}
