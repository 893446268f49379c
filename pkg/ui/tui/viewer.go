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

// Package tui is the terminal host for the viewer. It owns the players on
// the tview event goroutine: key presses and host ticks both reach them
// through the application's update queue.
package tui

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
	"github.com/seqview/seqview/pkg/player"
	"github.com/seqview/seqview/pkg/sequences"
)

const helpText = "←/→ step  p play  l loop  b bounce  F8/F9 fps  f set fps  " +
	"r set range  / go to frame  Alt+1-9 focus  q quit"

var errBadRange = errors.New("range must be two frame numbers")

// Viewer shows one panel per player plus the entry fields for the focused
// player.
type Viewer struct {
	app      *tview.Application
	pool     *player.Pool
	registry *sequences.Registry
	layout   *tview.Flex
	seek     *tview.InputField
	fps      *tview.InputField
	bounds   *tview.InputField
	stopped  chan struct{}
	panels   []panel
}

type panel struct {
	text    *tview.TextView
	looping *tview.Checkbox
	bouncy  *tview.Checkbox
}

func SetTheme(theme *tview.Theme) {
	theme.BorderColor = tcell.ColorLightYellow
	theme.PrimaryTextColor = tcell.ColorWhite
	theme.PrimitiveBackgroundColor = tcell.ColorDarkBlue
	theme.ContrastBackgroundColor = tcell.ColorBlue
	theme.InverseTextColor = tcell.ColorDarkBlue
}

// NewViewer builds the layout for every player currently in pool.
func NewViewer(app *tview.Application, pool *player.Pool, registry *sequences.Registry) *Viewer {
	v := &Viewer{
		app:      app,
		pool:     pool,
		registry: registry,
		layout:   tview.NewFlex().SetDirection(tview.FlexRow),
		stopped:  make(chan struct{}),
	}

	for _, pl := range pool.Players() {
		v.layout.AddItem(v.buildPanel(pl), 0, 1, false)
	}

	v.seek = newEntry("Go to frame: ", tview.InputFieldInteger, v.seekDone)
	v.fps = newEntry("FPS: ", tview.InputFieldFloat, v.fpsDone)
	v.bounds = newEntry("Range: ", acceptRange, v.rangeDone)

	entries := tview.NewFlex().
		AddItem(v.seek, 0, 1, false).
		AddItem(v.fps, 0, 1, false).
		AddItem(v.bounds, 0, 1, false)

	help := tview.NewTextView().SetText(helpText)
	v.layout.AddItem(entries, 1, 0, false).
		AddItem(help, 1, 0, false)

	app.SetInputCapture(v.handleKey)
	v.Refresh()

	return v
}

func newEntry(
	label string,
	accept func(string, rune) bool,
	done func(tcell.Key),
) *tview.InputField {
	field := tview.NewInputField().
		SetLabel(label).
		SetAcceptanceFunc(accept)
	field.SetDoneFunc(done)
	return field
}

// Root is the primitive to hand to tview.Application.SetRoot.
func (v *Viewer) Root() tview.Primitive {
	return v.layout
}

// Run shows the viewer until the app is stopped or ctx is cancelled. It
// may only be called once.
func (v *Viewer) Run(ctx context.Context) error {
	defer close(v.stopped)

	go func() {
		select {
		case <-ctx.Done():
			v.app.Stop()
		case <-v.stopped:
		}
	}()

	if err := v.app.SetRoot(v.layout, true).Run(); err != nil {
		return fmt.Errorf("error running UI: %w", err)
	}
	return nil
}

// Dispatch queues fn on the event goroutine, redraws afterwards and waits
// for it to run. Once Run has returned fn is dropped.
func (v *Viewer) Dispatch(fn func()) {
	select {
	case <-v.stopped:
		return
	default:
	}

	done := make(chan struct{})
	go v.app.QueueUpdateDraw(func() {
		fn()
		close(done)
	})

	select {
	case <-done:
	case <-v.stopped:
	}
}

func (v *Viewer) buildPanel(pl *player.Player) tview.Primitive {
	p := panel{
		text: tview.NewTextView().SetDynamicColors(true),
		looping: tview.NewCheckbox().SetLabel("loop ").SetChangedFunc(func(checked bool) {
			pl.SetLooping(checked)
			v.Refresh()
		}),
		bouncy: tview.NewCheckbox().SetLabel("bounce ").SetChangedFunc(func(checked bool) {
			pl.SetBouncy(checked)
			v.Refresh()
		}),
	}
	v.panels = append(v.panels, p)

	back := tview.NewButton("<").SetSelectedFunc(func() {
		pl.StepBackward(player.OriginButton)
		v.Refresh()
	})
	forward := tview.NewButton(">").SetSelectedFunc(func() {
		pl.StepForward(player.OriginButton)
		v.Refresh()
	})

	controls := tview.NewFlex().
		AddItem(back, 3, 0, false).
		AddItem(nil, 1, 0, false).
		AddItem(forward, 3, 0, false).
		AddItem(nil, 2, 0, false).
		AddItem(p.looping, 7, 0, false).
		AddItem(nil, 1, 0, false).
		AddItem(p.bouncy, 9, 0, false).
		AddItem(nil, 0, 1, false)

	box := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(p.text, 0, 1, false).
		AddItem(controls, 1, 0, false)
	box.SetBorder(true).SetTitle(" " + pl.ID() + " ")
	return box
}

// captured reports whether a text field owns the keyboard.
func (v *Viewer) captured() bool {
	switch v.app.GetFocus() {
	case v.seek, v.fps, v.bounds:
		return true
	default:
		return false
	}
}

func (v *Viewer) handleKey(ev *tcell.EventKey) *tcell.EventKey {
	if slot, ok := FocusSlot(ev); ok {
		if v.pool.Focus(slot) {
			v.Refresh()
		}
		return nil
	}

	if v.captured() {
		return ev
	}

	pl := v.pool.Focused()

	if ev.Key() == tcell.KeyRune && ev.Modifiers()&modifierMask == 0 {
		switch ev.Rune() {
		case 'q':
			v.app.Stop()
			return nil
		case '/':
			v.app.SetFocus(v.seek)
			return nil
		case 'f':
			v.app.SetFocus(v.fps)
			return nil
		case 'r':
			v.app.SetFocus(v.bounds)
			return nil
		case 'l':
			if pl != nil {
				pl.SetLooping(!pl.Looping())
				v.Refresh()
			}
			return nil
		case 'b':
			if pl != nil {
				pl.SetBouncy(!pl.Bouncy())
				v.Refresh()
			}
			return nil
		}
	}

	in := IntentsFromKey(ev, false)
	if pl == nil || !in.Any() {
		return ev
	}
	if pl.HandleShortcuts(in) {
		v.Refresh()
		return nil
	}
	return ev
}

// entryDone clears field, hands the keyboard back and returns its text if
// it was confirmed with enter.
func (v *Viewer) entryDone(field *tview.InputField, key tcell.Key) (string, bool) {
	text := field.GetText()
	field.SetText("")
	v.app.SetFocus(v.layout)
	return text, key == tcell.KeyEnter
}

func (v *Viewer) seekDone(key tcell.Key) {
	text, ok := v.entryDone(v.seek, key)
	if !ok {
		return
	}
	frame, err := strconv.Atoi(text)
	if err != nil {
		return
	}
	if pl := v.pool.Focused(); pl != nil {
		pl.Seek(frame)
		log.Debug().Str("player", pl.ID()).Int("frame", pl.Frame()).Msg("seek")
	}
	v.Refresh()
}

func (v *Viewer) fpsDone(key tcell.Key) {
	text, ok := v.entryDone(v.fps, key)
	if !ok {
		return
	}
	fps, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(fps) || math.IsInf(fps, 0) {
		return
	}
	if pl := v.pool.Focused(); pl != nil {
		pl.SetFPS(fps)
		log.Debug().Str("player", pl.ID()).Float64("fps", fps).Msg("fps set")
	}
	v.Refresh()
}

func (v *Viewer) rangeDone(key tcell.Key) {
	text, ok := v.entryDone(v.bounds, key)
	if !ok {
		return
	}
	currentMin, currentMax, err := ParseRange(text)
	if err != nil {
		log.Debug().Err(err).Str("input", text).Msg("ignoring range")
		return
	}
	if pl := v.pool.Focused(); pl != nil {
		pl.SetRange(currentMin, currentMax)
		log.Debug().Str("player", pl.ID()).Int("min", currentMin).Int("max", currentMax).Msg("range set")
	}
	v.Refresh()
}

func acceptRange(_ string, ch rune) bool {
	return unicode.IsDigit(ch) || isRangeSeparator(ch)
}

func isRangeSeparator(r rune) bool {
	return r == '-' || r == ',' || r == ' '
}

// ParseRange reads a sub-range typed as "first-last", "first,last" or
// "first last".
func ParseRange(s string) (first, last int, err error) {
	parts := strings.FieldsFunc(s, isRangeSeparator)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", errBadRange, s)
	}
	first, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", errBadRange, err)
	}
	last, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", errBadRange, err)
	}
	return first, last, nil
}

// Refresh redraws every panel from player state. It must run on the event
// goroutine.
func (v *Viewer) Refresh() {
	focused := v.pool.Focused()
	for i, pl := range v.pool.Players() {
		if i >= len(v.panels) {
			break
		}
		var seqs []sequences.Sequence
		if v.registry != nil {
			seqs = v.registry.Sequences(pl.Index())
		}
		v.panels[i].text.SetText(Describe(pl, seqs, pl == focused))
		v.panels[i].looping.SetChecked(pl.Looping())
		v.panels[i].bouncy.SetChecked(pl.Bouncy())
	}
}

// Describe renders a player's state and the file shown from each of its
// sequences.
func Describe(pl *player.Player, seqs []sequences.Sequence, focused bool) string {
	var sb strings.Builder

	state := "paused"
	if pl.Playing() {
		state = "playing"
	}
	currentMin, currentMax := pl.Range()
	_, maxFrame := pl.Bounds()

	if focused {
		sb.WriteString("[yellow]*[-] ")
	}
	_, _ = fmt.Fprintf(&sb, "frame %d (%d-%d) of %d  %s  %.1f fps",
		pl.Frame(), currentMin, currentMax, maxFrame, state, pl.FPS())

	var modes []string
	if pl.Looping() {
		modes = append(modes, "loop")
	}
	if pl.Bouncy() {
		modes = append(modes, "bounce")
	}
	if len(modes) > 0 {
		sb.WriteString("  " + strings.Join(modes, "+"))
	}

	for _, s := range seqs {
		if file, ok := s.File(pl.Frame()); ok {
			sb.WriteString("\n  " + tview.Escape(filepath.Base(file)))
		} else {
			sb.WriteString("\n  " + tview.Escape(filepath.Base(s.Pattern)) + " (no frame)")
		}
	}

	return sb.String()
}
