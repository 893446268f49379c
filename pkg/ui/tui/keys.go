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

package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/seqview/seqview/pkg/player"
)

const modifierMask = tcell.ModCtrl | tcell.ModAlt | tcell.ModShift

// IntentsFromKey maps one key event to player intents:
//
//	Left / Right  step one frame
//	p             toggle play
//	F8 / F9       one fps slower / faster
func IntentsFromKey(ev *tcell.EventKey, captured bool) player.Intents {
	in := player.Intents{
		ModifierHeld:     ev.Modifiers()&modifierMask != 0,
		KeyboardCaptured: captured,
	}

	switch ev.Key() { //nolint:exhaustive
	case tcell.KeyLeft:
		in.StepBackward = true
	case tcell.KeyRight:
		in.StepForward = true
	case tcell.KeyF8:
		in.SlowDown = true
	case tcell.KeyF9:
		in.SpeedUp = true
	case tcell.KeyRune:
		if ev.Rune() == 'p' {
			in.TogglePlay = true
		}
	}

	return in
}

// FocusSlot returns the player slot for Alt+1 to Alt+9.
func FocusSlot(ev *tcell.EventKey) (int, bool) {
	if ev.Key() != tcell.KeyRune || ev.Modifiers()&tcell.ModAlt == 0 {
		return 0, false
	}
	r := ev.Rune()
	if r < '1' || r > '9' {
		return 0, false
	}
	return int(r - '0'), true
}
