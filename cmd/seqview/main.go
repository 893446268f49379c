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

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
	"github.com/seqview/seqview/pkg/cli"
	"github.com/seqview/seqview/pkg/clock"
	"github.com/seqview/seqview/pkg/config"
	"github.com/seqview/seqview/pkg/helpers"
	"github.com/seqview/seqview/pkg/player"
	"github.com/seqview/seqview/pkg/sequences"
	"github.com/seqview/seqview/pkg/service"
	"github.com/seqview/seqview/pkg/ui/tui"
)

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags := cli.SetupFlags(nil)
	exit, err := flags.Pre(os.Args[1:], os.Stdout)
	if err != nil {
		return err
	}
	if exit {
		return nil
	}

	cfg, err := cli.Setup(flags, helpers.DefaultPaths(), config.BaseDefaults, flags.LogWriters())
	if err != nil {
		return err
	}

	defer func() {
		if err := recover(); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Panic: %s\n", err)
			log.Fatal().Msgf("panic: %v", err)
		}
	}()

	src := clock.NewSource(nil)
	settings := player.Settings{
		FPS:     cfg.PlaybackFPS(),
		Looping: cfg.PlaybackLooping(),
		Bouncy:  cfg.PlaybackBouncy(),
		Playing: cfg.Autoplay(),
	}
	pool := player.NewPool(player.MaxPlayers, func(index int) *player.Player {
		return player.New(index, src, settings)
	})

	registry := sequences.NewRegistry(nil)
	unclaimed, err := cli.ApplyArgs(pool, registry, flags.Args())
	if err != nil {
		log.Warn().Err(err).Msg("some viewer arguments were not applied")
	}
	for _, arg := range unclaimed {
		log.Warn().Str("arg", arg).Msg("ignoring unrecognized argument")
	}
	for pool.Len() < cfg.PlayerCount() {
		if _, err := pool.Add(); err != nil {
			break
		}
	}
	pool.ReconcileAll(registry)

	var changes <-chan struct{}
	if cfg.WatchSequences() && registry.Len() > 0 {
		watcher, err := sequences.NewWatcher(registry.Dirs(), cfg.DebounceInterval(), nil)
		if err != nil {
			log.Warn().Err(err).Msg("not watching sequences")
		} else {
			defer func() {
				if err := watcher.Close(); err != nil {
					log.Error().Err(err).Msg("error closing watcher")
				}
			}()
			changes = watcher.Changes()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := service.Options{
		Pool:     pool,
		Registry: registry,
		Changes:  changes,
		Tick:     cfg.TickInterval(),
	}

	if *flags.Headless {
		log.Info().Int("players", pool.Len()).Msg("started in headless mode")
		opts.StatusInterval = time.Second
		if err := service.New(opts).Run(ctx, nil); err != nil {
			return fmt.Errorf("error running host loop: %w", err)
		}
		return nil
	}

	app := tview.NewApplication().EnableMouse(true)
	tui.SetTheme(&tview.Styles)
	viewer := tui.NewViewer(app, pool, registry)
	opts.OnTick = viewer.Refresh

	loopErr := make(chan error, 1)
	go func() {
		loopErr <- service.New(opts).Run(ctx, viewer.Dispatch)
	}()

	if err := viewer.Run(ctx); err != nil {
		log.Error().Err(err).Msg("error running UI")
		stop()
		<-loopErr
		return err
	}

	stop()
	if err := <-loopErr; err != nil {
		return fmt.Errorf("error running host loop: %w", err)
	}
	return nil
}
