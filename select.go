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

// TileSelector selects the best matching palette tile for a window.
//
// The palette is divided into one contiguous range of tiles per worker of the
// pool, each worker finds the best tile in its range and the results are
// merged afterwards. Candidates are ranked with Better, so the result does not
// depend on the number of workers: equal scores are always decided in favour
// of the smallest tile id.
//
// Selecting never modifies the palette.
type TileSelector struct {
	Palette *Palette
	Matcher Matcher
	Pool    *WorkerPool
}

// NewTileSelector returns a new selector, the matcher is initialized with the
// palette.
func NewTileSelector(palette *Palette, matcher Matcher, pool *WorkerPool) *TileSelector {
	matcher.Init(palette)
	return &TileSelector{
		Palette: palette,
		Matcher: matcher,
		Pool:    pool,
	}
}

// Select returns the id and the score of the best tile for the window.
// If the palette is empty NoTileID is returned.
func (s *TileSelector) Select(window Descriptors) (TileID, float64) {
	scorer := s.Matcher.Prepare(window)
	ranges := chunks(s.Palette.Len(), s.Pool.NumRoutines)
	bestIDs := make([]TileID, len(ranges))
	bestValues := make([]float64, len(ranges))
	// jobs never fail
	_ = s.Pool.Run(len(ranges), func(i int) error {
		bestIDs[i], bestValues[i] = bestInRange(s.Palette, scorer, ranges[i][0], ranges[i][1])
		return nil
	})
	bestID, bestValue := NoTileID, math.NaN()
	for i, id := range bestIDs {
		if bestID == NoTileID || Better(bestValues[i], id, bestValue, bestID) {
			bestID, bestValue = id, bestValues[i]
		}
	}
	return bestID, bestValue
}

// bestInRange scores the tiles in [start, end) sequentially.
func bestInRange(palette *Palette, scorer TileScorer, start, end int) (TileID, float64) {
	bestID, bestValue := NoTileID, math.NaN()
	for i := start; i < end; i++ {
		tile := palette.Tiles[i]
		value := scorer(tile)
		if bestID == NoTileID || Better(value, tile.ID, bestValue, bestID) {
			bestID, bestValue = tile.ID, value
		}
	}
	return bestID, bestValue
}
