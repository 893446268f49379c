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

// Package sequences keeps the image sequences given to the viewer. A
// sequence is a file glob expanded into a sorted list of frames and belongs
// to one player slot. Players query the registry for the lengths attached
// to their slot; they never hold sequences themselves.
package sequences

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/seqview/seqview/pkg/helpers/syncutil"
	"github.com/spf13/afero"
)

var ErrNoMatches = errors.New("pattern matched no files")

// Sequence is one expanded glob. Frame 1 is Files[0].
type Sequence struct {
	Pattern string
	Files   []string
	Player  int
}

// Len is the number of frames in the sequence.
func (s Sequence) Len() int {
	return len(s.Files)
}

// File returns the file shown for a 1-based frame.
func (s Sequence) File(frame int) (string, bool) {
	if frame < 1 || frame > len(s.Files) {
		return "", false
	}
	return s.Files[frame-1], true
}

// Expand resolves a glob against fs into sorted file names. A pattern with
// no glob metacharacters matches itself if the file exists.
func Expand(fs afero.Fs, pattern string) ([]string, error) {
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("expanding %q: %w", pattern, err)
	}
	matches, err := afero.Glob(fs, pattern)
	if err != nil {
		return nil, fmt.Errorf("expanding %q: %w", pattern, err)
	}

	files := make([]string, 0, len(matches))
	for _, m := range matches {
		info, statErr := fs.Stat(m)
		if statErr != nil || info.IsDir() {
			continue
		}
		files = append(files, m)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("expanding %q: %w", pattern, ErrNoMatches)
	}
	slices.Sort(files)
	return files, nil
}

// Registry holds every sequence of the session. It is safe for concurrent
// use by the host and the watcher.
type Registry struct {
	fs   afero.Fs
	seqs []Sequence
	mu   syncutil.RWMutex
}

// NewRegistry creates an empty registry reading from fs. A nil fs reads
// from the OS filesystem.
func NewRegistry(fs afero.Fs) *Registry {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Registry{fs: fs}
}

// Fs is the filesystem patterns are expanded against.
func (r *Registry) Fs() afero.Fs {
	return r.fs
}

// Attach expands pattern and attaches the result to a player slot. A
// pattern that matches nothing is still registered, so files created later
// are picked up by Reload, and the returned error wraps ErrNoMatches.
func (r *Registry) Attach(player int, pattern string) (Sequence, error) {
	files, err := Expand(r.fs, pattern)
	if err != nil && !errors.Is(err, ErrNoMatches) {
		return Sequence{}, err
	}

	seq := Sequence{Pattern: pattern, Files: files, Player: player}

	r.mu.Lock()
	r.seqs = append(r.seqs, seq)
	r.mu.Unlock()

	log.Debug().
		Str("pattern", pattern).
		Int("player", player).
		Int("frames", seq.Len()).
		Msg("sequences: attached")

	return seq, err
}

// Lengths returns the frame counts of the sequences attached to a player
// slot, in attach order.
func (r *Registry) Lengths(player int) []int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var lengths []int
	for _, s := range r.seqs {
		if s.Player == player {
			lengths = append(lengths, s.Len())
		}
	}
	return lengths
}

// Sequences returns copies of the sequences attached to a player slot.
func (r *Registry) Sequences(player int) []Sequence {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Sequence
	for _, s := range r.seqs {
		if s.Player == player {
			s.Files = slices.Clone(s.Files)
			out = append(out, s)
		}
	}
	return out
}

// Len returns the number of registered sequences.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.seqs)
}

// Dirs returns the sorted, unique directories the patterns live in. A
// directory part holding glob metacharacters is expanded to the directories
// it matches now; directories created later are not picked up.
func (r *Registry) Dirs() []string {
	r.mu.RLock()
	patterns := make([]string, 0, len(r.seqs))
	for _, s := range r.seqs {
		patterns = append(patterns, filepath.Dir(s.Pattern))
	}
	r.mu.RUnlock()

	dirs := make([]string, 0, len(patterns))
	for _, dir := range patterns {
		if !hasMeta(dir) {
			dirs = append(dirs, dir)
			continue
		}
		matches, err := afero.Glob(r.fs, dir)
		if err != nil {
			log.Warn().Err(err).Str("dir", dir).Msg("cannot expand sequence directory")
			continue
		}
		for _, m := range matches {
			if ok, err := afero.IsDir(r.fs, m); err == nil && ok {
				dirs = append(dirs, m)
			}
		}
	}
	slices.Sort(dirs)
	return slices.Compact(dirs)
}

func hasMeta(path string) bool {
	return strings.ContainsAny(path, `*?[\`)
}

// Reload expands every pattern again and reports whether any sequence
// changed. Expansion errors other than an empty match keep the previous
// files and are returned joined.
func (r *Registry) Reload() (bool, error) {
	r.mu.RLock()
	patterns := make([]string, len(r.seqs))
	for i, s := range r.seqs {
		patterns[i] = s.Pattern
	}
	r.mu.RUnlock()

	expanded := make([][]string, len(patterns))
	failed := make([]bool, len(patterns))
	var errs []error
	for i, pattern := range patterns {
		files, err := Expand(r.fs, pattern)
		switch {
		case errors.Is(err, ErrNoMatches):
		case err != nil:
			failed[i] = true
			errs = append(errs, err)
		default:
			expanded[i] = files
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	changed := false
	// sequences are only ever appended, so indexes below len(patterns)
	// still refer to the same pattern
	for i := range patterns {
		if failed[i] || slices.Equal(r.seqs[i].Files, expanded[i]) {
			continue
		}
		log.Debug().
			Str("pattern", patterns[i]).
			Int("before", r.seqs[i].Len()).
			Int("after", len(expanded[i])).
			Msg("sequences: changed on reload")
		r.seqs[i].Files = expanded[i]
		changed = true
	}

	return changed, errors.Join(errs...)
}
