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
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func expectChange(t *testing.T, w *Watcher) {
	t.Helper()
	select {
	case _, ok := <-w.Changes():
		require.True(t, ok, "changes channel closed")
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change notification")
	}
}

func expectNoChange(t *testing.T, w *Watcher) {
	t.Helper()
	select {
	case <-w.Changes():
		t.Fatal("unexpected change notification")
	case <-time.After(20 * time.Millisecond):
	}
}

func TestWatcherDebounce(t *testing.T) {
	t.Parallel()

	fake := clockwork.NewFakeClock()
	w := newWatcher(100*time.Millisecond, fake)
	t.Cleanup(func() { assert.NoError(t, w.Close()) })

	w.handle(fsnotify.Event{Name: "/shots/a.0001.png", Op: fsnotify.Create})
	fake.Advance(99 * time.Millisecond)
	expectNoChange(t, w)

	// a second event inside the window restarts it
	w.handle(fsnotify.Event{Name: "/shots/a.0002.png", Op: fsnotify.Create})
	fake.Advance(99 * time.Millisecond)
	expectNoChange(t, w)

	fake.Advance(time.Millisecond)
	expectChange(t, w)
}

func TestWatcherIgnoresChmod(t *testing.T) {
	t.Parallel()

	fake := clockwork.NewFakeClock()
	w := newWatcher(10*time.Millisecond, fake)
	t.Cleanup(func() { assert.NoError(t, w.Close()) })

	w.handle(fsnotify.Event{Name: "/shots/a.0001.png", Op: fsnotify.Chmod})
	fake.Advance(time.Hour)
	expectNoChange(t, w)
}

func TestWatcherEventOps(t *testing.T) {
	t.Parallel()

	for _, op := range []fsnotify.Op{fsnotify.Create, fsnotify.Remove, fsnotify.Rename, fsnotify.Write} {
		t.Run(op.String(), func(t *testing.T) {
			t.Parallel()

			fake := clockwork.NewFakeClock()
			w := newWatcher(10*time.Millisecond, fake)
			t.Cleanup(func() { assert.NoError(t, w.Close()) })

			w.handle(fsnotify.Event{Name: "/shots/x.png", Op: op})
			fake.Advance(10 * time.Millisecond)
			expectChange(t, w)
		})
	}
}

func TestWatcherCloseClosesChanges(t *testing.T) {
	t.Parallel()

	fake := clockwork.NewFakeClock()
	w := newWatcher(0, fake)
	assert.Equal(t, DefaultDebounce, w.debounce)

	w.handle(fsnotify.Event{Name: "/shots/a.png", Op: fsnotify.Create})
	require.NoError(t, w.Close())
	require.NoError(t, w.Close(), "second close is a no-op")

	fake.Advance(time.Hour)
	w.handle(fsnotify.Event{Name: "/shots/b.png", Op: fsnotify.Create})

	_, ok := <-w.Changes()
	assert.False(t, ok)
}

func TestWatcherRunStopsWhenEventsClose(t *testing.T) {
	t.Parallel()

	w := newWatcher(time.Millisecond, clockwork.NewFakeClock())
	events := make(chan fsnotify.Event)
	errs := make(chan error)

	w.wg.Add(1)
	go w.run(events, errs)

	errs <- errors.New("queue overflow")
	close(events)
	w.wg.Wait()

	require.NoError(t, w.Close())
}

func TestNewWatcherMissingDir(t *testing.T) {
	t.Parallel()

	_, err := NewWatcher([]string{filepath.Join(t.TempDir(), "missing")}, 0, nil)
	require.Error(t, err)
}

func TestNewWatcherSeesNewFrames(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w, err := NewWatcher([]string{dir}, 10*time.Millisecond, nil)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, w.Close()) })

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.0001.png"), []byte{}, 0o600))
	expectChange(t, w)
}
