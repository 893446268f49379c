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

	"github.com/rs/zerolog/log"
)

// Unbounded is the upper bound of a player with nothing attached. It stays
// one below math.MaxInt so a unit step past it cannot overflow.
const Unbounded = math.MaxInt - 1

// Collections reports the lengths of the collections attached to a player
// slot. Sequences reference their player by index; players never hold them.
type Collections interface {
	Lengths(player int) []int
}

// CheckBounds restores the bounds ordering and brings the frame back into
// the sub-range. The clamp order is fixed: parents are clamped to the
// absolute bounds before being clamped against each other.
func (p *Player) CheckBounds() {
	p.currentMaxFrame = min(p.currentMaxFrame, p.maxFrame)
	p.currentMinFrame = max(p.currentMinFrame, p.minFrame)
	p.currentMaxFrame = max(p.currentMaxFrame, p.currentMinFrame)
	p.currentMinFrame = min(p.currentMinFrame, p.currentMaxFrame)

	if p.frame > p.currentMaxFrame {
		if p.looping {
			p.frame = p.currentMinFrame
		} else {
			p.frame = p.currentMaxFrame
		}
	}
	if p.frame < p.currentMinFrame {
		if p.looping {
			p.frame = p.currentMaxFrame
		} else {
			p.frame = p.currentMinFrame
		}
	}
}

// ReconcileBounds recomputes the absolute bounds from the collections
// attached to this player and resets the sub-range to cover all of them.
// It must be called again whenever an attached collection changes length.
func (p *Player) ReconcileBounds(c Collections) {
	p.minFrame = 1
	p.maxFrame = 0
	p.currentMinFrame = p.minFrame
	p.currentMaxFrame = Unbounded

	if c != nil {
		for _, n := range c.Lengths(p.index) {
			p.maxFrame = max(p.maxFrame, n)
		}
	}
	// an empty player still shows its first frame
	p.maxFrame = min(max(p.maxFrame, p.minFrame), Unbounded)

	p.CheckBounds()

	log.Debug().
		Str("player", p.id).
		Int("maxFrame", p.maxFrame).
		Int("frame", p.frame).
		Msg("player: bounds reconciled")
}

// SetRange edits the playable sub-range the way a range drag control does:
// both ends are limited to the absolute bounds, then an inverted pair is
// resolved by CheckBounds.
func (p *Player) SetRange(currentMin, currentMax int) {
	p.currentMinFrame = min(max(currentMin, p.minFrame), p.maxFrame)
	p.currentMaxFrame = min(max(currentMax, p.minFrame), p.maxFrame)
	p.CheckBounds()
}
