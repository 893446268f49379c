// Seqview
// Copyright (c) 2026 The Seqview Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Seqview.
//
// Seqview is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Seqview is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Seqview.  If not, see <http://www.gnu.org/licenses/>.

package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/seqview/seqview/pkg/config"
	"github.com/seqview/seqview/pkg/helpers"
)

type Flags struct {
	set      *flag.FlagSet
	Version  *bool
	Headless *bool
	Debug    *bool
	Config   *string
}

// SetupFlags defines the viewer's flags on fs. A nil fs uses the process
// command line.
func SetupFlags(fs *flag.FlagSet) *Flags {
	if fs == nil {
		fs = flag.CommandLine
	}
	return &Flags{
		set: fs,
		Version: fs.Bool(
			"version",
			false,
			"print version and exit",
		),
		Headless: fs.Bool(
			"headless",
			false,
			"run without the text ui, logging player status to stderr",
		),
		Debug: fs.Bool(
			"debug",
			false,
			"enable debug logging",
		),
		Config: fs.String(
			"config",
			"",
			"path to config file",
		),
	}
}

// Pre parses args and actions the flags that need no setup. Returns true
// when the process should exit.
func (f *Flags) Pre(args []string, out io.Writer) (bool, error) {
	if err := f.set.Parse(args); err != nil {
		return false, fmt.Errorf("failed to parse flags: %w", err)
	}

	if *f.Version {
		_, _ = fmt.Fprintf(out, "Seqview v%s\n", config.AppVersion)
		return true, nil
	}

	return false, nil
}

// Args returns the positional viewer arguments left after flag parsing.
func (f *Flags) Args() []string {
	return f.set.Args()
}

// Setup creates the user directories, starts logging and loads the config.
//
//nolint:gocritic // config struct copied for immutability
func Setup(
	f *Flags,
	paths helpers.Paths,
	defaultConfig config.Values,
	writers []io.Writer,
) (*config.Instance, error) {
	if err := helpers.EnsureDirectories(paths); err != nil {
		return nil, fmt.Errorf("error creating directories: %w", err)
	}

	if err := helpers.InitLogging(paths.LogDir, writers); err != nil {
		return nil, fmt.Errorf("error initializing logging: %w", err)
	}

	var (
		cfg *config.Instance
		err error
	)
	if *f.Config != "" {
		cfg, err = config.NewConfigAt(*f.Config, defaultConfig)
	} else {
		cfg, err = config.NewConfig(paths.ConfigDir, defaultConfig)
	}
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	if *f.Debug {
		cfg.SetDebugLogging(true)
	} else if cfg.DebugLogging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	return cfg, nil
}

// LogWriters returns the extra log writers: stderr in headless mode.
func (f *Flags) LogWriters() []io.Writer {
	if *f.Headless {
		return []io.Writer{os.Stderr}
	}
	return nil
}
