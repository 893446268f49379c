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

package player

import (
	"math"
	"strconv"
	"strings"
)

// OptionPrefix namespaces player options among other viewer arguments.
const OptionPrefix = "p:"

const (
	optionPlay    = "play"
	optionFPS     = "fps:"
	optionLooping = "looping:"
)

// IsOption reports whether arg is addressed to a player.
func IsOption(arg string) bool {
	return strings.HasPrefix(arg, OptionPrefix)
}

// ApplyOption applies one configuration option, with or without the "p:"
// prefix:
//
//	fps:<float>    sets the frame rate
//	play           starts playback
//	looping:<int>  enables looping when non-zero
//
// It returns true only when the option was recognized and its value parsed.
// A malformed value leaves the player unchanged.
func (p *Player) ApplyOption(arg string) bool {
	opt := strings.TrimPrefix(arg, OptionPrefix)

	switch {
	case opt == optionPlay:
		p.playing = true
	case strings.HasPrefix(opt, optionFPS):
		fps, err := strconv.ParseFloat(strings.TrimPrefix(opt, optionFPS), 64)
		if err != nil || math.IsNaN(fps) || math.IsInf(fps, 0) {
			return false
		}
		p.fps = fps
	case strings.HasPrefix(opt, optionLooping):
		v, err := strconv.Atoi(strings.TrimPrefix(opt, optionLooping))
		if err != nil {
			return false
		}
		p.looping = v != 0
	default:
		return false
	}

	p.CheckBounds()
	return true
}
