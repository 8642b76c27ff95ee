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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// DefaultOutputExt is the extension used if the input has none or if imaging
// can't encode the format of the input.
const DefaultOutputExt = "png"

// OutputExt returns the extension (without the dot) of the output file for the
// given input: the input's own extension if imaging can encode that format and
// DefaultOutputExt otherwise.
func OutputExt(inputPath string) string {
	ext := strings.TrimPrefix(filepath.Ext(inputPath), ".")
	if ext == "" {
		return DefaultOutputExt
	}
	if _, err := imaging.FormatFromFilename(inputPath); err != nil {
		return DefaultOutputExt
	}
	return ext
}

// OutputName returns the file name
// "<label>_<palette>_f<targetSize>-p<paletteSize>_<i>.<ext>".
func OutputName(label, palette string, targetSize, paletteSize, i int, ext string) string {
	return fmt.Sprintf("%s_%s_f%d-p%d_%d.%s", label, palette, targetSize, paletteSize, i, ext)
}

// OutputPath returns the first path in dir of the form given by OutputName
// that does not exist yet, starting with suffix 0. The palette name is the
// base name of paletteDir and the extension is chosen by OutputExt.
func OutputPath(dir, label, paletteDir, inputPath string, targetSize, paletteSize int) (string, error) {
	palette := filepath.Base(filepath.Clean(paletteDir))
	ext := OutputExt(inputPath)
	for i := 0; ; i++ {
		path := filepath.Join(dir, OutputName(label, palette, targetSize, paletteSize, i, ext))
		_, statErr := os.Stat(path)
		switch {
		case os.IsNotExist(statErr):
			return path, nil
		case statErr != nil:
			return "", errors.Wrap(statErr, path)
		}
	}
}
