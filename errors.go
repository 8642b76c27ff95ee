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
	"github.com/pkg/errors"
)

// All errors returned by this package wrap one of the following errors (or an
// error from the os package), use errors.Cause to retrieve it.
var (
	// ErrDecode is returned if a file can't be parsed as an image.
	ErrDecode = errors.New("can't decode image")

	// ErrConfig is returned for invalid options, for example sizes out of range.
	ErrConfig = errors.New("invalid configuration")

	// ErrEmptyPalette is returned if a palette directory contains no images.
	ErrEmptyPalette = errors.New("palette is empty")

	// ErrTargetTooSmall is returned if the resized target image can't hold a
	// single window.
	ErrTargetTooSmall = errors.New("target image too small for palette tiles")
)
