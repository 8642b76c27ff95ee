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
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// VectorMetric is a function that takes two vectors of the same length and
// returns a metric value ("distance") of the two.
//
// Vector metrics are used to compare the mean colors of windows and tiles.
type VectorMetric func(p, q []float64) float64

// Manhattan returns the manhattan distance of two vectors, that is
// |p1 - q1| + ... + |pn - qn|.
func Manhattan(p, q []float64) float64 {
	var result float64
	for i, e1 := range p {
		result += math.Abs(e1 - q[i])
	}
	return result
}

// EuclideanDistance returns the euclidean distance of two
// vectors, that is sqrt( (p1 - q1)² + ... + (pn - qn)² ).
func EuclideanDistance(p, q []float64) float64 {
	var sum float64
	for i, e1 := range p {
		e2 := q[i]
		diff := (e1 - e2)
		sum += (diff * diff)
	}
	return math.Sqrt(sum)
}

// MinDistance returns 1 - ( min(p1, q1) + ... + min(pn, qn) ).
func MinDistance(p, q []float64) float64 {
	var sum float64
	for i, e1 := range p {
		e2 := q[i]
		sum += math.Min(e1, e2)
	}
	return 1.0 - sum
}

// CosineSimilarity returns 1 - cos(∡(p, q)). The result is between 0 and 2,
// as special case is that the length of p or q is 0, in this case the result
// is 2.1
func CosineSimilarity(p, q []float64) float64 {
	var dotProduct, lengthP, lengthQ float64
	for i, e1 := range p {
		e2 := q[i]
		dotProduct += (e1 * e2)
		lengthP += (e1 * e1)
		lengthQ += (e2 * e2)
	}
	if lengthP == 0.0 || lengthQ == 0.0 {
		// a black mean color has no direction, return a value bigger than
		// any other cosine distance
		return 2.1
	}
	lengthP = math.Sqrt(lengthP)
	lengthQ = math.Sqrt(lengthQ)
	return 1.0 - (dotProduct / (lengthP * lengthQ))
}

// ChessboardDistance is the max over all absolute distances,
// see https://reference.wolfram.com/language/ref/ChessboardDistance.html
func ChessboardDistance(p, q []float64) float64 {
	res := 0.0
	for i, e1 := range p {
		e2 := q[i]
		res = math.Max(res, math.Abs(e1-e2))
	}
	return res
}

// CanberraDistance is a weighted version of the manhattan
// distance, see https://en.wikipedia.org/wiki/Canberra_distance
// Components where both values are zero contribute nothing.
func CanberraDistance(p, q []float64) float64 {
	res := 0.0
	for i, e1 := range p {
		e2 := q[i]
		denominator := math.Abs(e1) + math.Abs(e2)
		if denominator == 0 {
			continue
		}
		res += (math.Abs(e1-e2) / denominator)
	}
	return res
}

// MatcherFactory creates a matcher for windows of the given size. scale is the
// ratio of the palette tile size and the target size.
type MatcherFactory func(tileWidth, tileHeight int, scale float64) Matcher

const (
	// DefaultMatcher is the name of the matcher used if none is given.
	DefaultMatcher = "ssim"

	// MeanMatcherPrefix is the prefix of all mean color matchers, for example
	// "mean-euclid".
	MeanMatcherPrefix = "mean-"
)

// The following variables are used for registering named
// matchers.

var (
	matchers map[string]MatcherFactory
)

// RegisterMatcher is used to register a named matcher. It will only add the
// matcher if the name does not exist yet. The result is true if the matcher
// was successfully registered and false otherwise.
// All names must be lowercase strings, the register and get methods will
// always transform a string to lowercase.
//
// All matchers should be registered by an init method.
func RegisterMatcher(name string, factory MatcherFactory) bool {
	name = strings.ToLower(name)
	if _, has := matchers[name]; has {
		return false
	}
	matchers[name] = factory
	return true
}

// RegisterMeanMatcher registers a MeanColorMatcher under the name
// "mean-" + name.
func RegisterMeanMatcher(name string, metric VectorMetric) bool {
	return RegisterMatcher(MeanMatcherPrefix+name, func(int, int, float64) Matcher {
		return NewMeanColorMatcher(metric)
	})
}

// GetMatcherNames returns a sorted list of all registered matcher names.
func GetMatcherNames() []string {
	res := make([]string, 0, len(matchers))
	for key := range matchers {
		res = append(res, key)
	}
	sort.Strings(res)
	return res
}

// GetMatcher returns a registered matcher factory. An empty name selects
// DefaultMatcher.
func GetMatcher(name string) (MatcherFactory, error) {
	if name == "" {
		name = DefaultMatcher
	}
	name = strings.ToLower(name)
	if factory, has := matchers[name]; has {
		return factory, nil
	}
	return nil, errors.Wrapf(ErrConfig, "unknown matcher %q, valid are %s",
		name, strings.Join(GetMatcherNames(), ", "))
}

func init() {
	matchers = make(map[string]MatcherFactory)
	RegisterMatcher(DefaultMatcher, func(w, h int, scale float64) Matcher {
		return NewSSIMMatcher(w, h, scale)
	})
	RegisterMeanMatcher("manhattan", Manhattan)
	RegisterMeanMatcher("euclid", EuclideanDistance)
	RegisterMeanMatcher("min", MinDistance)
	RegisterMeanMatcher("cosine", CosineSimilarity)
	RegisterMeanMatcher("chessboard", ChessboardDistance)
	RegisterMeanMatcher("canberra", CanberraDistance)
}
