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
	"strings"

	// Registers decoders for formats not handled by the standard library.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

// SupportedImageFunc is a function that takes a file extension and decides if
// this file extension is supported. It is used to decide which entries of a
// palette directory are images and which are skipped.
//
// The extension passed to this function could be for example ".txt" or ".jpg".
type SupportedImageFunc func(ext string) bool

// JPGAndPNG is an implementation of SupportedImageFunc accepting jpg and png
// file extensions.
func JPGAndPNG(ext string) bool {
	ext = strings.ToLower(ext)
	switch ext {
	case ".jpg", ".jpeg", ".png":
		return true
	default:
		return false
	}
}

// GetImageFormats returns a SupportedImageFunc by name: "all" (or the empty
// string) for DefaultImageFormats and "jpg-png" for JPGAndPNG.
func GetImageFormats(name string) (SupportedImageFunc, error) {
	switch strings.ToLower(name) {
	case "", "all":
		return DefaultImageFormats, nil
	case "jpg-png":
		return JPGAndPNG, nil
	default:
		return nil, errors.Wrapf(ErrConfig, "unknown image formats %q", name)
	}
}

// DefaultImageFormats accepts all extensions a decoder is registered for,
// that is png, jpg, gif (standard library) and bmp, tiff and webp.
func DefaultImageFormats(ext string) bool {
	ext = strings.ToLower(ext)
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tif", ".tiff", ".webp":
		return true
	default:
		return false
	}
}

// ImageResizer resizes an image to the given width and height.
type ImageResizer interface {
	Resize(width, height uint, img image.Image) image.Image
}

// NfntResizer uses the nfnt/resize package to resize an image.
type NfntResizer struct {
	// InterP is the interpolation function to use.
	InterP resize.InterpolationFunction
}

// NewNfntResizer returns a new resizer given the interpolation function.
func NewNfntResizer(interP resize.InterpolationFunction) NfntResizer {
	return NfntResizer{interP}
}

// GetInterP returns an interpolation function given a desired quality.
// The higher the quality the better the interpolation should be, but execution
// time is higher. Currently supported are values between 0 and 4, each
// selecting a different interpolation function. Values greater than 4 select
// Lanczos3.
func GetInterP(quality uint) resize.InterpolationFunction {
	switch quality {
	case 0:
		return resize.NearestNeighbor
	case 1:
		return resize.Bilinear
	case 2:
		return resize.Bicubic
	case 3:
		return resize.MitchellNetravali
	case 4:
		return resize.Lanczos2
	default:
		return resize.Lanczos3
	}
}

// DefaultQuality is the resize quality used if none is given, it selects
// Lanczos3 for nfnt and Lanczos for imaging.
const DefaultQuality uint = 5

var (
	// DefaultResizer is the resizer that is used by default. Tiles and target
	// images are scaled with a Lanczos3 filter.
	DefaultResizer = NewNfntResizer(GetInterP(DefaultQuality))
)

// Resize calls nfnt/resize methods. Images that already have the requested
// size are returned unchanged.
func (resizer NfntResizer) Resize(width, height uint, img image.Image) image.Image {
	if sameSize(img, width, height) {
		return img
	}
	return resize.Resize(width, height, img, resizer.InterP)
}

// ImagingResizer resizes images with the disintegration/imaging package.
type ImagingResizer struct {
	Filter imaging.ResampleFilter
}

// NewImagingResizer returns a resizer using the given resample filter.
func NewImagingResizer(filter imaging.ResampleFilter) ImagingResizer {
	return ImagingResizer{Filter: filter}
}

// Resize calls imaging.Resize. Images that already have the requested size are
// returned unchanged.
func (resizer ImagingResizer) Resize(width, height uint, img image.Image) image.Image {
	if sameSize(img, width, height) {
		return img
	}
	return imaging.Resize(img, int(width), int(height), resizer.Filter)
}

// GetFilter returns the imaging resample filter for a quality, it works as
// GetInterP: 0 is nearest neighbour, values greater than 3 select Lanczos.
func GetFilter(quality uint) imaging.ResampleFilter {
	switch quality {
	case 0:
		return imaging.NearestNeighbor
	case 1:
		return imaging.Linear
	case 2:
		return imaging.CatmullRom
	case 3:
		return imaging.MitchellNetravali
	default:
		return imaging.Lanczos
	}
}

// GetResizer returns a resizer by name, "nfnt" or "imaging", with the
// interpolation selected by quality (see GetInterP and GetFilter).
func GetResizer(name string, quality uint) (ImageResizer, error) {
	switch strings.ToLower(name) {
	case "", "nfnt":
		return NewNfntResizer(GetInterP(quality)), nil
	case "imaging":
		return NewImagingResizer(GetFilter(quality)), nil
	default:
		return nil, errors.Wrapf(ErrConfig, "unknown resizer %q", name)
	}
}

func sameSize(img image.Image, width, height uint) bool {
	bounds := img.Bounds()
	return bounds.Dx() == int(width) && bounds.Dy() == int(height)
}

// ResizeDims scales (w, h) s.t. the larger of the two becomes maxSize while
// the ratio is retained. Values are truncated but never drop below 1.
// w and h must be > 0.
func ResizeDims(w, h, maxSize int) (int, int) {
	maxDim := float64(IntMax(w, h))
	factor := float64(maxSize) / maxDim
	newW := int(float64(w) * factor)
	newH := int(float64(h) * factor)
	return IntMax(newW, 1), IntMax(newH, 1)
}

// TileID is used to unambiguously identify a tile in a palette.
type TileID int

const (
	// NoTileID is used to signal that no tile was selected.
	NoTileID TileID = -1
)

// LoadImage opens and decodes the image file at path.
func LoadImage(path string) (image.Image, error) {
	r, openErr := openFile(path)
	if openErr != nil {
		return nil, openErr
	}
	defer r.Close()
	img, decodeErr := imaging.Decode(r)
	if decodeErr != nil {
		return nil, errors.Wrapf(ErrDecode, "%s: %v", path, decodeErr)
	}
	return img, nil
}

// LoadConfig decodes only the header of the image at path.
func LoadConfig(path string) (image.Config, error) {
	r, openErr := openFile(path)
	if openErr != nil {
		return image.Config{}, openErr
	}
	defer r.Close()
	config, _, decodeErr := image.DecodeConfig(r)
	if decodeErr != nil {
		return image.Config{}, errors.Wrapf(ErrDecode, "%s: %v", path, decodeErr)
	}
	return config, nil
}

// SaveImage encodes img to path, the format is chosen by the extension of
// path.
func SaveImage(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return errors.Wrap(err, path)
	}
	return nil
}
