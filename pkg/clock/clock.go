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

// Package clock converts wall-clock time into millisecond deltas for the
// frame clock of each player.
package clock

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Source measures elapsed time between polls. It holds no state of its own;
// callers keep the last reference timestamp.
type Source struct {
	clock clockwork.Clock
}

// NewSource creates a Source reading from the given clock. A nil clock uses
// the real system clock.
func NewSource(clock clockwork.Clock) *Source {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Source{clock: clock}
}

// Now returns the current time of the underlying clock.
func (s *Source) Now() time.Time {
	return s.clock.Now()
}

// Poll returns the milliseconds elapsed since last and the new reference
// timestamp. A zero last counts as no elapsed time, and a clock that went
// backwards reports zero instead of a negative delta.
func (s *Source) Poll(last time.Time) (deltaMs float64, now time.Time) {
	now = s.clock.Now()
	if last.IsZero() {
		return 0, now
	}
	elapsed := now.Sub(last)
	if elapsed <= 0 {
		return 0, now
	}
	return float64(elapsed) / float64(time.Millisecond), now
}

// Elapsed polls against *last and stores the new reference back into it.
func (s *Source) Elapsed(last *time.Time) float64 {
	delta, now := s.Poll(*last)
	*last = now
	return delta
}
