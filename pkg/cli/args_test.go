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

package cli

import (
	"testing"

	"github.com/seqview/seqview/pkg/player"
	"github.com/seqview/seqview/pkg/sequences"
	testhelpers "github.com/seqview/seqview/pkg/testing/helpers"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) *sequences.Registry {
	t.Helper()
	h := testhelpers.NewMemoryFS()
	_, err := h.CreateSequence("/shots", "a", 12)
	require.NoError(t, err)
	_, err = h.CreateSequence("/shots", "b", 5)
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(h.Fs, "/shots/still.exr", []byte{}, 0o644))
	return sequences.NewRegistry(h.Fs)
}

func TestApplyArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		args      []string
		unclaimed []string
		// maxFrames per player slot, in order
		maxFrames []int
	}{
		{
			name:      "no arguments creates nothing",
			args:      nil,
			maxFrames: []int{},
		},
		{
			name:      "sequence creates first player",
			args:      []string{"/shots/a.*.png"},
			maxFrames: []int{12},
		},
		{
			name:      "two sequences on one player take the longest",
			args:      []string{"/shots/b.*.png", "/shots/a.*.png"},
			maxFrames: []int{12},
		},
		{
			name:      "np splits players",
			args:      []string{"/shots/a.*.png", "np", "/shots/b.*.png"},
			maxFrames: []int{12, 5},
		},
		{
			name:      "leading np",
			args:      []string{"np", "/shots/still.exr"},
			maxFrames: []int{1},
		},
		{
			name:      "unknown arguments returned",
			args:      []string{"--wat", "/shots/a.*.png", "missing.png"},
			unclaimed: []string{"--wat", "missing.png"},
			maxFrames: []int{12},
		},
		{
			name:      "bad option returned",
			args:      []string{"p:fps:fast", "p:speed:2"},
			unclaimed: []string{"p:fps:fast", "p:speed:2"},
			maxFrames: []int{1},
		},
		{
			name:      "glob with no matches still attaches",
			args:      []string{"/shots/c.*.png"},
			maxFrames: []int{1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pool := player.NewPool(player.MaxPlayers, nil)
			unclaimed, err := ApplyArgs(pool, newTestRegistry(t), tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.unclaimed, unclaimed)

			maxFrames := []int{}
			for _, pl := range pool.Players() {
				_, maxFrame := pl.Bounds()
				maxFrames = append(maxFrames, maxFrame)
			}
			assert.Equal(t, tt.maxFrames, maxFrames)
		})
	}
}

func TestApplyArgsOptionsGoToCurrentPlayer(t *testing.T) {
	t.Parallel()

	pool := player.NewPool(player.MaxPlayers, nil)
	_, err := ApplyArgs(pool, newTestRegistry(t), []string{
		"/shots/a.*.png", "p:fps:12",
		"np", "p:play", "p:looping:0", "fps:30",
	})
	require.NoError(t, err)
	require.Equal(t, 2, pool.Len())

	first, _ := pool.Get(1)
	second, _ := pool.Get(2)

	assert.InDelta(t, 12.0, first.FPS(), 0)
	assert.False(t, first.Playing())
	assert.True(t, first.Looping())

	assert.InDelta(t, player.DefaultFPS, second.FPS(), 0, "unprefixed fps is not a player option here")
	assert.True(t, second.Playing())
	assert.False(t, second.Looping())
}

func TestApplyArgsPoolFull(t *testing.T) {
	t.Parallel()

	pool := player.NewPool(2, nil)
	unclaimed, err := ApplyArgs(pool, newTestRegistry(t), []string{
		"np", "np", "np", "/shots/b.*.png",
	})
	require.ErrorIs(t, err, player.ErrPoolFull)
	assert.Empty(t, unclaimed)
	assert.Equal(t, 2, pool.Len())

	second, _ := pool.Get(2)
	_, maxFrame := second.Bounds()
	assert.Equal(t, 5, maxFrame, "sequence goes to the last player created")
}

func TestApplyArgsBadPattern(t *testing.T) {
	t.Parallel()

	pool := player.NewPool(1, nil)
	_, err := ApplyArgs(pool, newTestRegistry(t), []string{"/shots/["})
	require.Error(t, err)
	assert.Equal(t, 1, pool.Len())
}
