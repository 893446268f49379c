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
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/seqview/seqview/pkg/player"
	"github.com/seqview/seqview/pkg/sequences"
	"github.com/spf13/afero"
)

// NewPlayerArg starts a new player; the following options and sequences
// go to it.
const NewPlayerArg = "np"

// ApplyArgs routes positional viewer arguments, left to right, to the
// players in pool. It returns the arguments nothing claimed. Player bounds
// are reconciled once all sequences are attached.
func ApplyArgs(pool *player.Pool, registry *sequences.Registry, args []string) ([]string, error) {
	var (
		current   *player.Player
		unclaimed []string
		errs      []error
	)

	// ensure returns the current player, creating one if none exists yet.
	ensure := func() *player.Player {
		if current != nil {
			return current
		}
		pl, err := pool.Add()
		if err != nil {
			errs = append(errs, err)
			current = pool.Last()
			return current
		}
		current = pl
		return current
	}

	for _, arg := range args {
		switch {
		case arg == NewPlayerArg:
			pl, err := pool.Add()
			if err != nil {
				log.Warn().Err(err).Msg("ignoring new player argument")
				errs = append(errs, err)
				continue
			}
			current = pl
		case player.IsOption(arg):
			pl := ensure()
			if pl == nil {
				unclaimed = append(unclaimed, arg)
				continue
			}
			if !pl.ApplyOption(arg) {
				log.Warn().Str("player", pl.ID()).Str("option", arg).Msg("unrecognized player option")
				unclaimed = append(unclaimed, arg)
			}
		case isSequenceArg(registry.Fs(), arg):
			pl := ensure()
			if pl == nil {
				unclaimed = append(unclaimed, arg)
				continue
			}
			_, err := registry.Attach(pl.Index(), arg)
			switch {
			case errors.Is(err, sequences.ErrNoMatches):
				log.Warn().Str("pattern", arg).Msg("sequence matched no files")
			case err != nil:
				errs = append(errs, fmt.Errorf("attaching sequence to %s: %w", pl.ID(), err))
			}
		default:
			unclaimed = append(unclaimed, arg)
		}
	}

	pool.ReconcileAll(registry)

	return unclaimed, errors.Join(errs...)
}

// isSequenceArg reports whether arg names frames: a glob, or an existing
// file.
func isSequenceArg(fs afero.Fs, arg string) bool {
	if strings.ContainsAny(arg, "*?[") {
		return true
	}
	info, err := fs.Stat(arg)
	return err == nil && !info.IsDir()
}
