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

package main

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"github.com/FabianWe/ssimosaic"
)

const (
	inputDir        = "input"
	palettesDir     = "palettes"
	defaultInput    = "input/test.jpg"
	defaultPalette  = "palettes/emoji"
	defaultLabel    = "mosaic"
	usagePositional = "[PALETTE_SIZE] [TARGET_SIZE]"
)

type options struct {
	cfg      ssimosaic.Config
	yes      bool
	verbose  bool
	progress bool
}

func parseFlags() (*options, error) {
	opts := &options{cfg: ssimosaic.DefaultConfig()}
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] %s\n", os.Args[0], usagePositional)
		flag.PrintDefaults()
	}
	flag.IntVarP(&opts.cfg.NumRoutines, "threads", "t", 0, "Number of go routines (0 = ask or 30% of the CPUs).")
	flag.StringVarP(&opts.cfg.InputPath, "file", "f", "", "Input image.")
	flag.StringVarP(&opts.cfg.PaletteDir, "palette", "p", "", "Directory containing the palette images.")
	flag.StringVarP(&opts.cfg.OutputDir, "output-dir", "o", ssimosaic.DefaultOutputDir, "Directory the mosaic is written to.")
	flag.StringVarP(&opts.cfg.OutputLabel, "name", "n", "", "Output name, first part of the file name.")
	flag.StringVarP(&opts.cfg.Matcher, "matcher", "m", ssimosaic.DefaultMatcher, "Matcher used to compare tiles and windows.")
	flag.StringVar(&opts.cfg.Resizer, "resizer", "nfnt", "Resizer, \"nfnt\" or \"imaging\".")
	flag.UintVarP(&opts.cfg.Quality, "quality", "q", ssimosaic.DefaultQuality,
		"Resize quality from 0 (nearest neighbour) to 5 (Lanczos).")
	flag.StringVar(&opts.cfg.Formats, "formats", "all", "Palette image formats, \"all\" or \"jpg-png\".")
	flag.BoolVar(&opts.progress, "progress", false, "Print progress to stderr.")
	flag.BoolVarP(&opts.yes, "yes", "y", false, "Don't ask for missing values, use defaults.")
	flag.BoolVarP(&opts.verbose, "verbose", "v", false, "Log progress and debug output.")
	flag.Parse()

	opts.cfg.PaletteSize, opts.cfg.TargetSize = 0, 0
	args := flag.Args()
	if len(args) > 2 {
		return nil, fmt.Errorf("too many arguments, expected %s", usagePositional)
	}
	var err error
	if len(args) > 0 {
		if opts.cfg.PaletteSize, err = strconv.Atoi(args[0]); err != nil {
			return nil, fmt.Errorf("invalid palette size %q", args[0])
		}
	}
	if len(args) > 1 {
		if opts.cfg.TargetSize, err = strconv.Atoi(args[1]); err != nil {
			return nil, fmt.Errorf("invalid target size %q", args[1])
		}
	}
	return opts, nil
}

// complete fills in all values that were not given on the command line,
// either by asking or with defaults.
func complete(opts *options, prompter *ssimosaic.Prompter) error {
	cfg := &opts.cfg
	ask := !opts.yes
	var err error

	if cfg.NumRoutines <= 0 {
		cfg.NumRoutines = ssimosaic.DefaultNumRoutines()
		if ask {
			cfg.NumRoutines, err = prompter.PromptNumber(1, runtime.NumCPU()+1,
				"\nEnter the number of threads to use\nChoose a value", cfg.NumRoutines)
			if err != nil {
				return err
			}
		}
	}

	if cfg.InputPath == "" {
		cfg.InputPath = defaultInput
		if ask {
			if cfg.InputPath, err = prompter.PromptEntry(inputDir, ssimosaic.FileEntry,
				"\nChoose the input image"); err != nil {
				return err
			}
		}
	}

	if cfg.PaletteDir == "" {
		cfg.PaletteDir = defaultPalette
		if ask {
			if cfg.PaletteDir, err = prompter.PromptEntry(palettesDir, ssimosaic.DirEntry,
				"\nChoose the palette"); err != nil {
				return err
			}
		}
	}

	if cfg.PaletteSize == 0 {
		cfg.PaletteSize = ssimosaic.DefaultPaletteSize
		if ask {
			if cfg.PaletteSize, err = prompter.PromptNumber(ssimosaic.MinPaletteSize,
				ssimosaic.MaxPaletteSize, "\nEnter a palette size\nChoose a value",
				ssimosaic.DefaultPaletteSize); err != nil {
				return err
			}
		}
	}

	lo, hi := ssimosaic.TargetSizeBounds(cfg.PaletteSize)
	if cfg.TargetSize < lo || cfg.TargetSize >= hi {
		cfg.TargetSize = ssimosaic.DefaultTargetSize(cfg.PaletteSize)
		if ask {
			if cfg.TargetSize, err = prompter.PromptNumber(lo, hi,
				"\nEnter a image size\nChoose a value", cfg.TargetSize); err != nil {
				return err
			}
		}
	}

	if cfg.OutputLabel == "" {
		cfg.OutputLabel = defaultLabel
		if ask {
			if cfg.OutputLabel, err = prompter.PromptLine("\nPlease enter the output name"); err != nil {
				return err
			}
		}
	}

	if cfg.InputPath, err = ssimosaic.ExpandPath(cfg.InputPath); err != nil {
		return err
	}
	if cfg.PaletteDir, err = ssimosaic.ExpandPath(cfg.PaletteDir); err != nil {
		return err
	}
	cfg.OutputDir, err = ssimosaic.ExpandPath(cfg.OutputDir)
	return err
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		flag.Usage()
		os.Exit(2)
	}
	if opts.verbose {
		log.SetLevel(log.DebugLevel)
	}
	if opts.progress {
		opts.cfg.ProgressOut = os.Stderr
	}
	entry := log.WithField("run", uuid.New().String())

	if err := complete(opts, ssimosaic.NewPrompter(os.Stdin, os.Stdout)); err != nil {
		entry.WithError(err).Fatal("Invalid options")
	}
	entry.WithFields(log.Fields{
		"input":        opts.cfg.InputPath,
		"palette":      opts.cfg.PaletteDir,
		"target-size":  opts.cfg.TargetSize,
		"palette-size": opts.cfg.PaletteSize,
		"routines":     opts.cfg.NumRoutines,
	}).Info("Processing")
	if _, err := ssimosaic.Run(opts.cfg, entry, opts.verbose); err != nil {
		entry.WithError(err).Fatal("Can't create mosaic")
	}
}
