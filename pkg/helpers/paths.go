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

package helpers

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/seqview/seqview/pkg/config"
)

const LogsDir = "logs"

// Paths are the per-user directories the viewer reads and writes.
type Paths struct {
	ConfigDir string
	DataDir   string
	LogDir    string
}

// DefaultPaths follows the XDG base directory layout.
func DefaultPaths() Paths {
	dataDir := filepath.Join(xdg.DataHome, config.AppName)
	return Paths{
		ConfigDir: filepath.Join(xdg.ConfigHome, config.AppName),
		DataDir:   dataDir,
		LogDir:    filepath.Join(dataDir, LogsDir),
	}
}

// EnsureDirectories creates the config and log directories if missing.
func EnsureDirectories(p Paths) error {
	for _, dir := range []string{p.ConfigDir, p.LogDir} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
