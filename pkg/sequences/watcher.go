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

package sequences

import (
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/seqview/seqview/pkg/helpers/syncutil"
)

const DefaultDebounce = 250 * time.Millisecond

// Watcher reports changes to the directories sequences live in. Bursts of
// filesystem events are collapsed into one notification after the debounce
// interval has passed without further events.
type Watcher struct {
	clock    clockwork.Clock
	fsw      *fsnotify.Watcher
	timer    clockwork.Timer
	changes  chan struct{}
	done     chan struct{}
	debounce time.Duration
	wg       sync.WaitGroup
	mu       syncutil.Mutex
	stopOnce sync.Once
	closed   bool
}

// NewWatcher starts watching dirs. A zero debounce uses DefaultDebounce and
// a nil clock uses the real clock.
func NewWatcher(dirs []string, debounce time.Duration, clock clockwork.Clock) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		log.Debug().Str("dir", dir).Msg("watcher: watching directory")
	}

	w := newWatcher(debounce, clock)
	w.fsw = fsw
	w.wg.Add(1)
	go w.run(fsw.Events, fsw.Errors)

	return w, nil
}

func newWatcher(debounce time.Duration, clock clockwork.Clock) *Watcher {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		clock:    clock,
		debounce: debounce,
		changes:  make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

// Changes delivers one value per settled burst of events. It is closed by
// Close.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		if w.fsw != nil {
			if closeErr := w.fsw.Close(); closeErr != nil {
				err = fmt.Errorf("failed to close fsnotify watcher: %w", closeErr)
			}
		}
		w.wg.Wait()

		w.mu.Lock()
		w.closed = true
		if w.timer != nil {
			w.timer.Stop()
		}
		close(w.changes)
		w.mu.Unlock()
	})
	return err
}

func (w *Watcher) run(events <-chan fsnotify.Event, errs <-chan error) {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-errs:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("watcher: fsnotify error")
		}
	}
}

// handle restarts the debounce timer for any event that can change which
// files a pattern matches.
func (w *Watcher) handle(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Write) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = w.clock.AfterFunc(w.debounce, w.notify)
}

func (w *Watcher) notify() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	select {
	case w.changes <- struct{}{}:
		log.Debug().Msg("watcher: sequences changed")
	default:
	}
}
