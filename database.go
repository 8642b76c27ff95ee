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
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// EntryKind selects which entries of a directory are listed.
type EntryKind int

const (
	// FileEntry selects regular files.
	FileEntry EntryKind = iota
	// DirEntry selects directories.
	DirEntry
)

func (kind EntryKind) String() string {
	switch kind {
	case FileEntry:
		return "FileEntry"
	case DirEntry:
		return "DirEntry"
	default:
		return fmt.Sprintf("EntryKind(%d)", kind)
	}
}

func (kind EntryKind) matches(entry os.DirEntry) bool {
	switch kind {
	case FileEntry:
		return entry.Type().IsRegular()
	case DirEntry:
		return entry.IsDir()
	default:
		return false
	}
}

// ListEntries returns the paths (joined with dir) of all entries of the given
// kind in dir, sorted by name. It does not descend into sub-directories.
func ListEntries(dir string, kind EntryKind) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, dir)
	}
	var res []string
	for _, entry := range entries {
		if kind.matches(entry) {
			res = append(res, filepath.Join(dir, entry.Name()))
		}
	}
	return res, nil
}

// ListImages returns all files in dir accepted by filter (by extension),
// sorted by name. If filter is nil DefaultImageFormats is used.
// Other files are skipped, the position of a path in the result is the id of
// the tile created from it.
func ListImages(dir string, filter SupportedImageFunc) ([]string, error) {
	if filter == nil {
		filter = DefaultImageFormats
	}
	files, err := ListEntries(dir, FileEntry)
	if err != nil {
		return nil, err
	}
	res := make([]string, 0, len(files))
	for _, file := range files {
		if filter(filepath.Ext(file)) {
			res = append(res, file)
		}
	}
	return res, nil
}

func openFile(path string) (*os.File, error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return r, nil
}
