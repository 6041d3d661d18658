/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package engine

import (
	"inspiraview/internal/domain"
	"inspiraview/internal/telemetry"
	"inspiraview/internal/vector"
)

// WheelStep is the relative zoom per wheel notch or zoom shortcut.
const WheelStep = 0.1

// PointerDown starts a gesture. It reports whether the canvas claimed the event.
func (e *Engine) PointerDown(p Pointer) bool {
	if p.Target != TargetCanvas {
		return false
	}
	if e.state.ToolsOpen {
		e.state.ToolsOpen = false
	}
	id, hit := e.HitTest(p.Pos)
	if ed, ok := e.mode.(EditingText); ok && hit && id == ed.ID {
		// the text editor owns clicks inside the note being edited
		return true
	}
	e.commitEditing()

	additive := p.Mods.Has(AdditiveModifier)
	switch {
	case hit:
		if !additive {
			e.store.ClearSelection()
		}
		e.store.SetSelected(id, true)
		e.setMode(DraggingItems{Start: p.Pos, Last: p.Pos})
	case p.Mods.Has(BoxSelectModifier):
		if !additive {
			e.store.ClearSelection()
		}
		e.setMode(RubberBand{Box: SelectionBox{Start: p.Pos, Current: p.Pos}})
	default:
		e.store.ClearSelection()
		e.setMode(Panning{Last: p.Pos})
	}
	e.changed()
	return true
}

// PointerMove continues the current gesture.
func (e *Engine) PointerMove(pos vector.Pt) {
	switch m := e.mode.(type) {
	case Panning:
		d := pos.Sub(m.Last)
		e.setMode(Panning{Last: pos})
		if d.X == 0 && d.Y == 0 {
			return
		}
		e.cam.Pan(d.X, d.Y)
		e.changed()
	case DraggingItems:
		d := pos.Sub(m.Last)
		e.setMode(DraggingItems{Start: m.Start, Last: pos})
		if d.X == 0 && d.Y == 0 {
			return
		}
		w := d.Div(e.cam.Scale)
		e.store.ForEachSelected(func(it domain.Item) {
			b := it.Common()
			b.X += w.X
			b.Y += w.Y
		})
		e.changed()
	case RubberBand:
		m.Box.Current = pos
		e.setMode(m)
		e.notify()
	case Idle, EditingText:
	}
}

// PointerUp ends the current gesture.
func (e *Engine) PointerUp(pos vector.Pt) {
	switch m := e.mode.(type) {
	case RubberBand:
		m.Box.Current = pos
		e.setMode(Idle{})
		if n := e.selectInBox(m.Box); n > 0 {
			e.changed()
		} else {
			e.notify()
		}
	case Panning, DraggingItems:
		e.setMode(Idle{})
		e.notify()
	case Idle, EditingText:
	}
}

// selectInBox selects every item whose screen bounds overlap the box, unless
// the box is too small to be deliberate. Returns how many items it selected.
func (e *Engine) selectInBox(box SelectionBox) int {
	r := box.Rect()
	if r.W <= MinBoxDrag && r.H <= MinBoxDrag {
		return 0
	}
	n := 0
	for _, v := range e.Views() {
		if v.Bounds.Overlaps(r) {
			e.store.SetSelected(v.ID, true)
			n++
		}
	}
	return n
}

// DoubleClick edits the text note under pos, or creates one on empty canvas.
// Double-clicking an image does nothing.
func (e *Engine) DoubleClick(pos vector.Pt) {
	id, hit := e.HitTest(pos)
	if !hit {
		e.commitEditing()
		w := e.cam.ScreenToWorld(pos)
		t := domain.NewText(w.X, w.Y)
		e.store.Add(t)
		e.setMode(EditingText{ID: t.ID, Draft: t.Content})
		e.event(telemetry.EventItemsAdded, map[string]any{"count": 1, "kind": string(domain.KindText)})
		e.changed()
		return
	}
	it, _ := e.store.Get(id)
	t, ok := it.(*domain.Text)
	if !ok {
		return
	}
	if ed, editing := e.mode.(EditingText); editing && ed.ID == id {
		return
	}
	e.commitEditing()
	e.store.SelectOnly(id)
	e.setMode(EditingText{ID: id, Draft: t.Content})
	e.changed()
}

// Wheel zooms about pos. A positive delta (scrolling down) zooms out.
func (e *Engine) Wheel(pos vector.Pt, delta float64) {
	var f float64
	switch {
	case delta > 0:
		f = 1 - WheelStep
	case delta < 0:
		f = 1 + WheelStep
	default:
		return
	}
	e.zoomAt(pos, f)
}

func (e *Engine) zoomAt(pos vector.Pt, f float64) {
	before := e.cam
	e.cam.ZoomAt(pos, f)
	if e.cam != before {
		e.changed()
	}
}

// TypeText replaces the draft of the note being edited.
func (e *Engine) TypeText(draft string) {
	m, ok := e.mode.(EditingText)
	if !ok {
		return
	}
	m.Draft = draft
	e.setMode(m)
	e.notify()
}

// CommitEdit stores the draft in the note and leaves edit mode.
func (e *Engine) CommitEdit() {
	if e.commitEditing() {
		e.notify()
	}
}

// CancelEdit leaves edit mode and drops the draft.
func (e *Engine) CancelEdit() {
	if _, ok := e.mode.(EditingText); !ok {
		return
	}
	e.setMode(Idle{})
	e.notify()
}

// commitEditing writes the draft back if a note is being edited and returns
// to Idle. Reports whether edit mode was active.
func (e *Engine) commitEditing() bool {
	m, ok := e.mode.(EditingText)
	if !ok {
		return false
	}
	e.setMode(Idle{})
	changed := false
	e.store.Update(m.ID, func(it domain.Item) {
		if t, ok := it.(*domain.Text); ok && t.Content != m.Draft {
			t.Content = m.Draft
			changed = true
		}
	})
	if changed {
		e.changed()
	}
	return true
}
