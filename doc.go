// Package ssimosaic generates photo-mosaics: each window of a target image is
// replaced by the tile of a palette (a directory of small images) that
// resembles it most.
//
// Windows and tiles are compared by their structure (edge and gradient
// orientation maps, weighted towards the center), their colors (weighted
// towards the border) and the covariance of their colors in CIE LCh space.
// A simpler matcher comparing only mean colors is available as well, see
// GetMatcher.
//
// It ships with an executable program in cmd/mosaic.
package ssimosaic
