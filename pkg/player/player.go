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

// Package player implements the frame clock of a sequence player: it turns
// elapsed time, a signed frame rate and the playback modes into an integer
// frame index kept inside a user adjustable sub-range.
//
// A Player is not safe for concurrent use. It is meant to be driven by a
// single host loop which calls Update once per redraw.
package player

import (
	"fmt"
	"time"

	"github.com/seqview/seqview/pkg/clock"
)

const (
	// DefaultFPS is the frame rate of a new player unless configured.
	DefaultFPS = 24.0
	// FPSSliderMin and FPSSliderMax are the range offered by frame rate
	// sliders. The player itself does not enforce them.
	FPSSliderMin = -100.0
	FPSSliderMax = 100.0
)

// Settings are the initial playback modes of a new player.
type Settings struct {
	FPS     float64
	Looping bool
	Bouncy  bool
	Playing bool
}

// DefaultSettings returns the settings of a player nobody configured.
func DefaultSettings() Settings {
	return Settings{
		FPS:     DefaultFPS,
		Looping: true,
	}
}

// Player owns the frame clock and bounds of one player slot.
type Player struct {
	frameClock       time.Time
	clock            *clock.Source
	id               string
	fps              float64
	frameAccumulator float64
	index            int
	frame            int
	minFrame         int
	maxFrame         int
	currentMinFrame  int
	currentMaxFrame  int
	direction        int
	playing          bool
	looping          bool
	bouncy           bool
}

// State is a read-only snapshot of a player, used for display.
type State struct {
	ID              string
	FPS             float64
	Accumulator     float64
	Index           int
	Frame           int
	MinFrame        int
	MaxFrame        int
	CurrentMinFrame int
	CurrentMaxFrame int
	Direction       int
	Playing         bool
	Looping         bool
	Bouncy          bool
}

// New creates the player for the 1-based slot index. A nil source uses the
// real clock. Until ReconcileBounds runs the player has no upper bound.
//
//nolint:gocritic // settings copied on purpose
func New(index int, src *clock.Source, s Settings) *Player {
	if src == nil {
		src = clock.NewSource(nil)
	}
	return &Player{
		clock:           src,
		id:              fmt.Sprintf("Player %d", index),
		index:           index,
		frame:           1,
		minFrame:        1,
		maxFrame:        Unbounded,
		currentMinFrame: 1,
		currentMaxFrame: Unbounded,
		direction:       1,
		fps:             s.FPS,
		looping:         s.Looping,
		bouncy:          s.Bouncy,
		playing:         s.Playing,
	}
}

// ID returns the player's display label.
func (p *Player) ID() string { return p.id }

// Index returns the 1-based slot of the player.
func (p *Player) Index() int { return p.index }

// Frame returns the current frame.
func (p *Player) Frame() int { return p.frame }

// Bounds returns the absolute frame bounds.
func (p *Player) Bounds() (minFrame, maxFrame int) { return p.minFrame, p.maxFrame }

// Range returns the playable sub-range.
func (p *Player) Range() (currentMin, currentMax int) {
	return p.currentMinFrame, p.currentMaxFrame
}

// FPS returns the signed frame rate. A negative rate plays backwards.
func (p *Player) FPS() float64 { return p.fps }

// Direction returns the bounce direction, +1 or -1. It is always +1 once
// an advance has run with bounce mode off.
func (p *Player) Direction() int { return p.direction }

// Playing reports whether advances move the frame.
func (p *Player) Playing() bool { return p.playing }

// Looping reports whether the frame wraps at the sub-range ends.
func (p *Player) Looping() bool { return p.looping }

// Bouncy reports whether playback reverses at the sub-range ends.
func (p *Player) Bouncy() bool { return p.bouncy }

// Snapshot returns the full state of the player.
func (p *Player) Snapshot() State {
	return State{
		ID:              p.id,
		Index:           p.index,
		Frame:           p.frame,
		MinFrame:        p.minFrame,
		MaxFrame:        p.maxFrame,
		CurrentMinFrame: p.currentMinFrame,
		CurrentMaxFrame: p.currentMaxFrame,
		Direction:       p.direction,
		FPS:             p.fps,
		Accumulator:     p.frameAccumulator,
		Playing:         p.playing,
		Looping:         p.looping,
		Bouncy:          p.bouncy,
	}
}
