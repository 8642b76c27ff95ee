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
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
)

// NoDefault can be passed to PromptNumber if there is no default value.
const NoDefault = -1

// Prompter asks the user for values. Questions are written to Out, answers are
// read line by line from In.
type Prompter struct {
	In  *bufio.Scanner
	Out io.Writer
}

// NewPrompter returns a prompter reading from in and writing to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{In: bufio.NewScanner(in), Out: out}
}

func (p *Prompter) readLine() (string, error) {
	if !p.In.Scan() {
		if scanErr := p.In.Err(); scanErr != nil {
			return "", errors.Wrap(scanErr, "reading input")
		}
		return "", errors.Wrap(io.ErrUnexpectedEOF, "reading input")
	}
	return strings.TrimSpace(p.In.Text()), nil
}

// PromptNumber asks for a number in [lo, hi). If message is not empty it is
// printed together with the range. An empty answer selects def, unless def is
// NoDefault (or any other negative value). Malformed or out of range answers
// are asked again.
func (p *Prompter) PromptNumber(lo, hi int, message string, def int) (int, error) {
	if message != "" {
		if def >= 0 {
			fmt.Fprintf(p.Out, "%s in the range [%d:%d] (default: %d)\n", message, lo, hi-1, def)
		} else {
			fmt.Fprintf(p.Out, "%s in the range [%d:%d]\n", message, lo, hi-1)
		}
	}
	for {
		line, err := p.readLine()
		if err != nil {
			return 0, err
		}
		if line == "" && def >= 0 {
			return def, nil
		}
		value, parseErr := strconv.Atoi(line)
		if parseErr == nil && value >= lo && value < hi {
			return value, nil
		}
		fmt.Fprintf(p.Out, "Please enter a number in the range [%d:%d]\n", lo, hi-1)
	}
}

// PromptEntry lists all entries of the given kind in dir and asks the user to
// pick one by its index.
func (p *Prompter) PromptEntry(dir string, kind EntryKind, message string) (string, error) {
	entries, err := ListEntries(dir, kind)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", errors.Wrapf(ErrConfig, "nothing to choose from in %s", dir)
	}
	if message != "" {
		fmt.Fprintln(p.Out, message)
	}
	for i, entry := range entries {
		fmt.Fprintf(p.Out, "%d: %s\n", i, entry)
	}
	index, promptErr := p.PromptNumber(0, len(entries), "", NoDefault)
	if promptErr != nil {
		return "", promptErr
	}
	return entries[index], nil
}

// PromptLine prints the message and returns the next non-empty line.
func (p *Prompter) PromptLine(message string) (string, error) {
	fmt.Fprintln(p.Out, message)
	for {
		line, err := p.readLine()
		if err != nil {
			return "", err
		}
		if line != "" {
			return line, nil
		}
	}
}

// ExpandPath returns the absolute path of path, a leading ~ is replaced by
// the home directory of the user.
func ExpandPath(path string) (string, error) {
	res, pathErr := homedir.Expand(path)
	if pathErr != nil {
		return "", errors.Wrap(pathErr, path)
	}
	res, pathErr = filepath.Abs(res)
	if pathErr != nil {
		return "", errors.Wrap(pathErr, path)
	}
	return res, nil
}
