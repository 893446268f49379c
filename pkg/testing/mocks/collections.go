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

package mocks

import (
	"github.com/stretchr/testify/mock"
)

// MockCollections is a mock bounds source using testify/mock.
type MockCollections struct {
	mock.Mock
}

// Lengths returns the collection lengths attached to a player slot.
func (m *MockCollections) Lengths(player int) []int {
	args := m.Called(player)
	if lengths, ok := args.Get(0).([]int); ok {
		return lengths
	}
	return nil
}

// StaticCollections is a fixed map of player slot to collection lengths.
type StaticCollections map[int][]int

// Lengths returns the lengths configured for the slot.
func (s StaticCollections) Lengths(player int) []int {
	return s[player]
}
