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
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// MaxPlayers is the number of quick-focus slots (keys 1 to 9).
const MaxPlayers = 9

var ErrPoolFull = errors.New("player pool is full")

// Pool is the fixed-capacity, ordered set of players owned by the host.
// Players are addressed by their 1-based slot index.
type Pool struct {
	newPlayer func(index int) *Player
	players   []*Player
	capacity  int
	focused   int
}

// NewPool creates an empty pool. Capacity is clamped to [1, MaxPlayers].
// newPlayer builds the player for a slot; nil builds default players on the
// real clock.
func NewPool(capacity int, newPlayer func(index int) *Player) *Pool {
	capacity = min(max(capacity, 1), MaxPlayers)
	if newPlayer == nil {
		newPlayer = func(index int) *Player {
			return New(index, nil, DefaultSettings())
		}
	}
	return &Pool{
		newPlayer: newPlayer,
		players:   make([]*Player, 0, capacity),
		capacity:  capacity,
	}
}

// Add creates the player for the next free slot. The first player added
// gets focus.
func (p *Pool) Add() (*Player, error) {
	if len(p.players) >= p.capacity {
		return nil, fmt.Errorf("adding player %d: %w", len(p.players)+1, ErrPoolFull)
	}
	pl := p.newPlayer(len(p.players) + 1)
	p.players = append(p.players, pl)
	if p.focused == 0 {
		p.focused = pl.Index()
	}
	log.Debug().Str("player", pl.ID()).Msg("player: added to pool")
	return pl, nil
}

// Get returns the player in the 1-based slot index.
func (p *Pool) Get(index int) (*Player, bool) {
	if index < 1 || index > len(p.players) {
		return nil, false
	}
	return p.players[index-1], true
}

// Len returns the number of players.
func (p *Pool) Len() int { return len(p.players) }

// Cap returns the maximum number of players.
func (p *Pool) Cap() int { return p.capacity }

// Players returns the players in slot order.
func (p *Pool) Players() []*Player {
	out := make([]*Player, len(p.players))
	copy(out, p.players)
	return out
}

// Last returns the most recently added player, or nil.
func (p *Pool) Last() *Player {
	if len(p.players) == 0 {
		return nil
	}
	return p.players[len(p.players)-1]
}

// IndexOf returns the 1-based slot of pl, or 0 if pl is not in the pool.
func (p *Pool) IndexOf(pl *Player) int {
	for i, candidate := range p.players {
		if candidate == pl {
			return i + 1
		}
	}
	return 0
}

// Focus moves keyboard focus to the player in slot index. It returns false
// if no such player exists.
func (p *Pool) Focus(index int) bool {
	if _, ok := p.Get(index); !ok {
		return false
	}
	p.focused = index
	return true
}

// Focused returns the player receiving shortcuts, or nil for an empty pool.
func (p *Pool) Focused() *Player {
	pl, ok := p.Get(p.focused)
	if !ok {
		return nil
	}
	return pl
}

// UpdateAll advances every player by its own elapsed time.
func (p *Pool) UpdateAll() {
	for _, pl := range p.players {
		pl.Update()
	}
}

// ReconcileAll recomputes the bounds of every player.
func (p *Pool) ReconcileAll(c Collections) {
	for _, pl := range p.players {
		pl.ReconcileBounds(c)
	}
}
