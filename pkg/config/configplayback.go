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

package config

import "time"

const (
	DefaultFPS      = 24.0
	DefaultTick     = 16 * time.Millisecond
	DefaultDebounce = 250 * time.Millisecond
	MaxPlayers      = 9
)

// Playback sets the initial state of every new player.
type Playback struct {
	FPS      float64 `toml:"fps" validate:"finite"`
	Looping  bool    `toml:"looping"`
	Bouncy   bool    `toml:"bouncy"`
	Autoplay bool    `toml:"autoplay"`
}

// Players configures the player pool.
type Players struct {
	Count int `toml:"count" validate:"gte=1,lte=9"`
}

// Host configures the redraw loop and sequence watching.
type Host struct {
	Tick     string `toml:"tick" validate:"duration"`
	Debounce string `toml:"debounce" validate:"duration"`
	Watch    bool   `toml:"watch"`
}

func (c *Instance) PlaybackFPS() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Playback.FPS
}

func (c *Instance) SetPlaybackFPS(fps float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Playback.FPS = fps
}

func (c *Instance) PlaybackLooping() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Playback.Looping
}

func (c *Instance) PlaybackBouncy() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Playback.Bouncy
}

// Autoplay reports whether new players start playing.
func (c *Instance) Autoplay() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Playback.Autoplay
}

// PlayerCount returns how many players to create at start, within
// [1, MaxPlayers].
func (c *Instance) PlayerCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return min(max(c.vals.Players.Count, 1), MaxPlayers)
}

func (c *Instance) SetPlayerCount(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Players.Count = n
}

// TickInterval returns the host redraw interval. Returns DefaultTick if
// not configured or if the duration cannot be parsed.
func (c *Instance) TickInterval() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return parseDuration(c.vals.Host.Tick, DefaultTick)
}

// DebounceInterval returns how long the sequence watcher waits for
// filesystem events to settle.
func (c *Instance) DebounceInterval() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return parseDuration(c.vals.Host.Debounce, DefaultDebounce)
}

func (c *Instance) WatchSequences() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Host.Watch
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
