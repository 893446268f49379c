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
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
)

// FSHelper builds image sequence fixtures on a filesystem for tests.
type FSHelper struct {
	Fs afero.Fs
}

// NewMemoryFS creates a helper over a new in-memory filesystem.
func NewMemoryFS() *FSHelper {
	return &FSHelper{
		Fs: afero.NewMemMapFs(),
	}
}

// NewOSFS creates a helper over the real filesystem, for tests that need
// fsnotify.
func NewOSFS() *FSHelper {
	return &FSHelper{
		Fs: afero.NewOsFs(),
	}
}

// CreateSequence writes n empty frames named <prefix>.0001.png onwards into
// dir and returns the glob matching them.
func (h *FSHelper) CreateSequence(dir, prefix string, n int) (string, error) {
	if err := h.Fs.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create sequence directory %s: %w", dir, err)
	}

	for i := range n {
		framePath := filepath.Join(dir, fmt.Sprintf("%s.%04d.png", prefix, i+1))
		if err := afero.WriteFile(h.Fs, framePath, []byte{}, 0o644); err != nil {
			return "", fmt.Errorf("failed to create frame %s: %w", framePath, err)
		}
	}

	return filepath.Join(dir, prefix+".*.png"), nil
}

// CreateConfigFile writes cfg as TOML to path.
func (h *FSHelper) CreateConfigFile(path string, cfg map[string]any) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config to TOML: %w", err)
	}

	if err := h.Fs.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create directory for config file: %w", err)
	}

	if err := afero.WriteFile(h.Fs, path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// FileExists checks if a file exists.
func (h *FSHelper) FileExists(path string) bool {
	exists, err := afero.Exists(h.Fs, path)
	if err != nil {
		return false
	}
	return exists
}

// RemoveFrames deletes frames from..to, inclusive, of a sequence.
func (h *FSHelper) RemoveFrames(dir, prefix string, from, to int) error {
	for i := from; i <= to; i++ {
		framePath := filepath.Join(dir, fmt.Sprintf("%s.%04d.png", prefix, i))
		if err := h.Fs.Remove(framePath); err != nil {
			return fmt.Errorf("failed to remove frame %s: %w", framePath, err)
		}
	}
	return nil
}
