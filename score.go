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

// TileScorer returns the score of a palette tile for a fixed window. The
// higher the score the better the tile matches.
//
// TileScorers are called concurrently for different tiles and must not modify
// the tile.
type TileScorer func(tile *Tile) float64

// Matcher is used to compare target windows with palette tiles.
//
// Init is called once with the palette before any window is prepared, it can
// precompute values that depend only on the tiles. Prepare is called once for
// each window and returns the scorer for this window, this way values that
// depend only on the window are computed only once.
type Matcher interface {
	Init(palette *Palette)
	Prepare(window Descriptors) TileScorer
}

// maskedTile are the values of a tile the SSIMMatcher compares, they don't
// depend on the window.
type maskedTile struct {
	source      *Tile
	orientation *FloatImage
	edges       *FloatImage
	scaled      *FloatImage
	lch         [][]float64
}

// SSIMMatcher implements Matcher by combining structural similarity of the
// orientation and edge maps (weighted towards the center of the window), of
// the image itself (weighted towards the border) and the color covariance in
// LCh space.
//
// Scale controls the balance between the local structure term and the global
// color term: The structure term is raised to the power of Scale, the color
// term to 1 / Scale.
type SSIMMatcher struct {
	Masks *RadialMasks
	Scale float64
	tiles []maskedTile
}

// NewSSIMMatcher returns a matcher for windows of the given size.
func NewSSIMMatcher(width, height int, scale float64) *SSIMMatcher {
	return &SSIMMatcher{
		Masks: NewRadialMasks(width, height),
		Scale: scale,
	}
}

func (m *SSIMMatcher) mask(tile *Tile) maskedTile {
	return maskedTile{
		source:      tile,
		orientation: tile.Orientation.Mul(m.Masks.Inner),
		edges:       tile.Edges.Mul(m.Masks.Inner),
		scaled:      tile.Image.Mul(m.Masks.Outer),
		lch:         lchChannels(tile.Image),
	}
}

// Init implements Matcher, the masked descriptors of all tiles are computed
// once and reused for every window.
func (m *SSIMMatcher) Init(palette *Palette) {
	m.tiles = make([]maskedTile, palette.Len())
	for i, tile := range palette.Tiles {
		m.tiles[i] = m.mask(tile)
	}
}

// lookup returns the masked values of the tile, tiles not passed to Init are
// computed on the fly.
func (m *SSIMMatcher) lookup(tile *Tile) maskedTile {
	id := int(tile.ID)
	if id >= 0 && id < len(m.tiles) && m.tiles[id].source == tile {
		return m.tiles[id]
	}
	return m.mask(tile)
}

// Prepare implements Matcher.
func (m *SSIMMatcher) Prepare(window Descriptors) TileScorer {
	inner, outer := m.Masks.Inner, m.Masks.Outer
	orientation := window.Orientation.Mul(inner)
	edges := window.Edges.Mul(inner)
	scaled := window.Image.Mul(outer)
	lch := lchChannels(window.Image)
	return func(tile *Tile) float64 {
		masked := m.lookup(tile)
		metricO := SSIM(orientation, masked.orientation)
		metricM := SSIM(edges, masked.edges)
		ssim := SSIM(scaled, masked.scaled)
		cov := compareChannels(lch, masked.lch)
		return CombineScore(metricO, metricM, ssim, cov, m.Scale)
	}
}

// CombineScore combines the components into a single value:
//
//	|((o.s * m.s + s.s²) * sqrt(m.c * o.c) * sqrt(m.l * o.l))^scale * (s.s * s.c * s.l)^(1/scale)|
//
// plus 1 - |1 - cov.s|, the agreement of the color covariance. The result is
// NaN if one of the square roots is taken from a negative number.
func CombineScore(orientation, edges, ssim, cov Components, scale float64) float64 {
	local := (orientation.Structure*edges.Structure + ssim.Structure*ssim.Structure) *
		math.Sqrt(edges.Contrast*orientation.Contrast) *
		math.Sqrt(edges.Luminance*orientation.Luminance)
	global := ssim.Product()
	base := math.Abs(math.Pow(local, scale) * math.Pow(global, 1/scale))
	return base + (1 - math.Abs(1-cov.Structure))
}

// MeanColorMatcher is the simple matcher: it only compares the mean colors of
// window and tile with a VectorMetric. The score is the negated distance.
type MeanColorMatcher struct {
	Metric VectorMetric
}

// NewMeanColorMatcher returns a new matcher for the given metric.
func NewMeanColorMatcher(metric VectorMetric) *MeanColorMatcher {
	return &MeanColorMatcher{Metric: metric}
}

// Init implements Matcher, mean colors are part of the tile descriptors.
func (m *MeanColorMatcher) Init(palette *Palette) {}

// Prepare implements Matcher.
func (m *MeanColorMatcher) Prepare(window Descriptors) TileScorer {
	mean := window.MeanColor
	v1 := mean[:]
	return func(tile *Tile) float64 {
		return -m.Metric(v1, tile.MeanColor[:])
	}
}

// Better reports whether the candidate (score a, id idA) ranks before
// (score b, id idB). The order is total: NaN ranks below every number, a
// higher score wins and equal scores are decided by the smaller id.
func Better(a float64, idA TileID, b float64, idB TileID) bool {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return idA < idB
	case aNaN:
		return false
	case bNaN:
		return true
	case a != b:
		return a > b
	default:
		return idA < idB
	}
}
