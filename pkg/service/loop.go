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

// Package service runs the host side of the viewer: it ticks every player
// once per redraw and keeps player bounds in step with the sequences on
// disk.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/seqview/seqview/pkg/helpers/syncutil"
	"github.com/seqview/seqview/pkg/player"
	"github.com/seqview/seqview/pkg/sequences"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const DefaultTick = 16 * time.Millisecond

// Dispatch runs fn on the goroutine that owns the players. Under the TUI
// that is the tview event goroutine.
type Dispatch func(fn func())

type Options struct {
	Clock    clockwork.Clock
	Pool     *player.Pool
	Registry *sequences.Registry
	// Changes is usually a sequences.Watcher's Changes channel. Nil
	// disables reloading.
	Changes <-chan struct{}
	// OnTick runs through Dispatch after every player has been updated.
	OnTick func()
	// StatusInterval throttles the per-player status log. Zero disables it.
	StatusInterval time.Duration
	Tick           time.Duration
}

// Loop is the host loop.
type Loop struct {
	clock    clockwork.Clock
	pool     *player.Pool
	registry *sequences.Registry
	changes  <-chan struct{}
	onTick   func()
	status   *rate.Limiter
	tick     time.Duration
	mu       syncutil.Mutex
}

//nolint:gocritic // options struct copied on construction
func New(opts Options) *Loop {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Tick <= 0 {
		opts.Tick = DefaultTick
	}
	l := &Loop{
		clock:    opts.Clock,
		pool:     opts.Pool,
		registry: opts.Registry,
		changes:  opts.Changes,
		onTick:   opts.OnTick,
		tick:     opts.Tick,
	}
	if opts.StatusInterval > 0 {
		l.status = rate.NewLimiter(rate.Every(opts.StatusInterval), 1)
	}
	return l
}

// Run ticks the players until ctx is cancelled. A nil dispatch runs every
// player mutation on the loop's own goroutines, serialized by the loop.
func (l *Loop) Run(ctx context.Context, dispatch Dispatch) error {
	if dispatch == nil {
		dispatch = l.serial
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return l.tickLoop(ctx, dispatch)
	})
	if l.changes != nil && l.registry != nil {
		g.Go(func() error {
			return l.reloadLoop(ctx, dispatch)
		})
	}

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (l *Loop) serial(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn()
}

func (l *Loop) tickLoop(ctx context.Context, dispatch Dispatch) error {
	ticker := l.clock.NewTicker(l.tick)
	defer ticker.Stop()

	log.Info().Dur("tick", l.tick).Int("players", l.pool.Len()).Msg("host loop started")

	for {
		select {
		case <-ticker.Chan():
			dispatch(l.step)
		case <-ctx.Done():
			log.Info().Msg("host loop stopped")
			return ctx.Err()
		}
	}
}

// step is one redraw.
func (l *Loop) step() {
	l.pool.UpdateAll()
	if l.onTick != nil {
		l.onTick()
	}
	if l.status != nil && l.status.AllowN(l.clock.Now(), 1) {
		logStatus(l.pool)
	}
}

func logStatus(pool *player.Pool) {
	for _, pl := range pool.Players() {
		currentMin, currentMax := pl.Range()
		log.Info().
			Str("player", pl.ID()).
			Int("frame", pl.Frame()).
			Int("rangeMin", currentMin).
			Int("rangeMax", currentMax).
			Float64("fps", pl.FPS()).
			Bool("playing", pl.Playing()).
			Msg("player status")
	}
}

func (l *Loop) reloadLoop(ctx context.Context, dispatch Dispatch) error {
	for {
		select {
		case _, ok := <-l.changes:
			if !ok {
				return nil
			}
			l.reload(dispatch)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// reload expands the sequences again off the player goroutine and only
// reconciles bounds when something moved.
func (l *Loop) reload(dispatch Dispatch) {
	changed, err := l.registry.Reload()
	if err != nil {
		log.Warn().Err(err).Msg("failed to reload some sequences")
	}
	if !changed {
		return
	}
	log.Info().Msg("sequences changed, reconciling player bounds")
	dispatch(func() {
		l.pool.ReconcileAll(l.registry)
	})
}
