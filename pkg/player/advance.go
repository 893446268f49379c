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

import "math"

// maxCatchUpSteps is the most unit steps a single Advance iterates. Larger
// backlogs are resolved arithmetically by catchUp.
const maxCatchUpSteps = 1024

// Update advances the player by the time elapsed since its previous Update.
func (p *Player) Update() {
	p.Advance(p.clock.Elapsed(&p.frameClock))
}

// Advance moves the frame forward by every whole frame period contained in
// deltaMs plus the time already banked. A paused player banks nothing.
func (p *Player) Advance(deltaMs float64) {
	if deltaMs > 0 {
		p.frameAccumulator += deltaMs
		if math.IsInf(p.frameAccumulator, 1) {
			p.frameAccumulator = math.MaxFloat64
		}
	}

	if !p.bouncy {
		p.direction = 1
	}

	if !p.playing {
		p.frameAccumulator = 0
		return
	}

	period, ok := p.framePeriod()
	if !ok {
		return
	}

	if p.frameAccumulator/period > maxCatchUpSteps {
		p.catchUp(period)
	}

	for p.frameAccumulator >= period {
		p.frameAccumulator -= period
		p.step()
	}
}

// framePeriod returns the milliseconds owed per frame. A zero or non-finite
// rate has no period and playback makes no progress.
func (p *Player) framePeriod() (float64, bool) {
	if p.fps == 0 || math.IsNaN(p.fps) || math.IsInf(p.fps, 0) {
		return 0, false
	}
	period := 1000 / math.Abs(p.fps)
	if math.IsInf(period, 0) || period <= 0 {
		return 0, false
	}
	return period, true
}

func (p *Player) effectiveDirection() int {
	if p.fps < 0 {
		return -p.direction
	}
	return p.direction
}

// step moves one frame in the effective direction. In bounce mode an
// overshoot snaps one frame back inside the sub-range and reverses, it does
// not reflect by the overshoot distance.
func (p *Player) step() {
	p.frame += p.effectiveDirection()
	if p.bouncy {
		if p.frame < p.currentMinFrame {
			p.frame = p.currentMinFrame + 1
			p.direction = -p.direction
		}
		if p.frame > p.currentMaxFrame {
			p.frame = p.currentMaxFrame - 1
			p.direction = -p.direction
		}
	}
	p.CheckBounds()
}

// span is the number of frames in the sub-range, at least 1 once bounds
// have been checked.
func (p *Player) span() int {
	return p.currentMaxFrame - p.currentMinFrame + 1
}

// catchUp resolves all but the last owed step without iterating each of
// them, then leaves exactly one period plus the remainder for the regular
// loop to consume.
func (p *Player) catchUp(period float64) {
	owed := math.Floor(p.frameAccumulator / period)
	rem := math.Mod(p.frameAccumulator, period)
	p.frameAccumulator = period + rem

	skipped := owed - 1
	if skipped <= 0 {
		return
	}

	switch {
	case p.bouncy:
		p.bounceBy(skipped)
	case p.looping:
		p.wrapBy(skipped)
	default:
		p.clampBy(skipped)
	}
}

// reduce returns n modulo m for a non-negative whole n.
func reduce(n float64, m uint64) uint64 {
	if n < math.MaxUint64 {
		return uint64(n) % m
	}
	return uint64(math.Mod(n, float64(m))) % m
}

// bounceBy is n bounce steps, n >= 1. A bouncing player traces a triangle
// wave over the sub-range with period 2*(span-1). Its phase counts up from
// the lower edge and back down, and both edges are reached with the
// direction the step loop would leave there.
func (p *Player) bounceBy(n float64) {
	dir := -1
	if p.fps < 0 {
		dir = 1
	}

	span := uint64(p.span())
	if span < 2 {
		// a single frame settles moving down
		p.frame = p.currentMinFrame
		p.direction = dir
		p.CheckBounds()
		return
	}
	top := span - 1
	cycle := 2 * top

	offset := uint64(p.frame - p.currentMinFrame)
	phase := offset
	if p.effectiveDirection() < 0 && offset > 0 {
		phase = cycle - offset
	}

	k := reduce(n, cycle)
	if k >= cycle-phase {
		phase = k - (cycle - phase)
	} else {
		phase += k
	}

	if phase > 0 && phase <= top {
		dir = -dir
	}
	if phase > top {
		offset = cycle - phase
	} else {
		offset = phase
	}

	p.frame = p.currentMinFrame + int(offset)
	p.direction = dir
	p.CheckBounds()
}

// wrapBy is n looping steps: modular arithmetic over the sub-range.
func (p *Player) wrapBy(n float64) {
	span := p.span()
	k := int(reduce(n, uint64(span)))

	offset := p.frame - p.currentMinFrame
	if p.effectiveDirection() > 0 {
		if k >= span-offset {
			offset = k - (span - offset)
		} else {
			offset += k
		}
	} else {
		if k > offset {
			offset = span - (k - offset)
		} else {
			offset -= k
		}
	}
	p.frame = p.currentMinFrame + offset
	p.CheckBounds()
}

// clampBy is n clamped steps: saturates at the boundary ahead.
func (p *Player) clampBy(n float64) {
	if p.effectiveDirection() > 0 {
		if n >= float64(p.currentMaxFrame-p.frame) {
			p.frame = p.currentMaxFrame
		} else {
			p.frame += int(n)
		}
	} else {
		if n >= float64(p.frame-p.currentMinFrame) {
			p.frame = p.currentMinFrame
		} else {
			p.frame -= int(n)
		}
	}
	p.CheckBounds()
}
