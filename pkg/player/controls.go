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

// Origin tells manual edits apart by where they came from.
type Origin int

const (
	// OriginButton is a pointer driven control. Stepping from a button
	// pauses playback.
	OriginButton Origin = iota
	// OriginShortcut is a keyboard shortcut. It never changes playing.
	OriginShortcut
)

func (o Origin) String() string {
	switch o {
	case OriginButton:
		return "button"
	case OriginShortcut:
		return "shortcut"
	default:
		return "unknown"
	}
}

// Intents are the discrete input requests polled by the host for one tick.
type Intents struct {
	StepBackward bool
	StepForward  bool
	TogglePlay   bool
	SlowDown     bool
	SpeedUp      bool

	// ModifierHeld is true while control, alt or shift is down.
	ModifierHeld bool
	// KeyboardCaptured is true while the host UI wants exclusive keyboard
	// input, e.g. a text field has focus.
	KeyboardCaptured bool
}

// Any reports whether any action is requested.
func (in Intents) Any() bool {
	return in.StepBackward || in.StepForward || in.TogglePlay || in.SlowDown || in.SpeedUp
}

// HandleShortcuts applies keyboard intents. Nothing is applied while a
// modifier is held or the keyboard is captured. Returns whether the intents
// were interpreted at all.
func (p *Player) HandleShortcuts(in Intents) bool {
	if in.KeyboardCaptured || in.ModifierHeld {
		return false
	}
	if in.TogglePlay {
		p.TogglePlay()
	}
	if in.StepBackward {
		p.StepBackward(OriginShortcut)
	}
	if in.StepForward {
		p.StepForward(OriginShortcut)
	}
	if in.SlowDown {
		p.NudgeFPS(-1)
	}
	if in.SpeedUp {
		p.NudgeFPS(1)
	}
	return true
}

// StepBackward moves one frame back.
func (p *Player) StepBackward(o Origin) {
	p.frame--
	if o == OriginButton {
		p.pause()
	}
	p.CheckBounds()
}

// StepForward moves one frame forward.
func (p *Player) StepForward(o Origin) {
	p.frame++
	if o == OriginButton {
		p.pause()
	}
	p.CheckBounds()
}

// Seek jumps to a frame, as a frame slider does. Playback pauses.
func (p *Player) Seek(frame int) {
	p.frame = frame
	p.pause()
	p.CheckBounds()
}

// TogglePlay flips between playing and paused.
func (p *Player) TogglePlay() {
	p.SetPlaying(!p.playing)
}

// SetPlaying starts or pauses playback. Pausing drops the time banked
// toward the next frame.
func (p *Player) SetPlaying(playing bool) {
	if !playing {
		p.pause()
	} else {
		p.playing = true
	}
	p.CheckBounds()
}

// pause stops playback without banking the time already accumulated.
func (p *Player) pause() {
	p.playing = false
	p.frameAccumulator = 0
}

// SetLooping switches between wrapping and clamping at the sub-range ends.
func (p *Player) SetLooping(looping bool) {
	p.looping = looping
	p.CheckBounds()
}

// SetBouncy switches bounce mode. Direction goes back to forward on the
// next advance once bounce mode is off.
func (p *Player) SetBouncy(bouncy bool) {
	p.bouncy = bouncy
	p.CheckBounds()
}

// SetFPS sets the signed frame rate, as the rate slider does. The slider
// spans FPSSliderMin to FPSSliderMax but any value is accepted.
func (p *Player) SetFPS(fps float64) {
	p.fps = fps
	p.CheckBounds()
}

// NudgeFPS adds delta to the frame rate.
func (p *Player) NudgeFPS(delta float64) {
	p.fps += delta
	p.CheckBounds()
}
