/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package engine

import (
	"encoding/json"
	"math"
	"sync"
	"testing"

	"inspiraview/internal/camera"
	"inspiraview/internal/domain"
	"inspiraview/internal/toast"
	"inspiraview/internal/vector"
)

type recordingSaver struct {
	mu    sync.Mutex
	calls int
	items []domain.Item
	cam   camera.Camera
}

func (r *recordingSaver) Touch(items []domain.Item, cam camera.Camera) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.items = domain.CloneAll(items)
	r.cam = cam
}

func (r *recordingSaver) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func newTestEngine(t *testing.T, opts Options) (*Engine, *recordingSaver) {
	t.Helper()
	s := &recordingSaver{}
	if opts.Autosave == nil {
		opts.Autosave = s
	}
	if opts.Toasts == nil {
		opts.Toasts = toast.New()
	}
	e := New(opts)
	e.SetViewport(800, 600)
	t.Cleanup(e.Close)
	return e, s
}

func imageAt(x, y, w, h float64) *domain.Image {
	im := domain.NewImage("data:image/png;base64,AA==", w, h)
	im.X, im.Y = x, y
	im.Selected = false
	return im
}

func note(x, y float64, content string) *domain.Text {
	t := domain.NewText(x, y)
	t.Content = content
	t.Selected = false
	return t
}

func pt(x, y float64) vector.Pt { return vector.Pt{X: x, Y: y} }

func down(e *Engine, x, y float64, mods Modifiers) bool {
	return e.PointerDown(Pointer{Pos: pt(x, y), Target: TargetCanvas, Mods: mods})
}

func mustItem(t *testing.T, e *Engine, id string) domain.Item {
	t.Helper()
	it, ok := e.Item(id)
	if !ok {
		t.Fatalf("item %s missing", id)
	}
	return it
}

func jsonOf(t *testing.T, it domain.Item) string {
	t.Helper()
	b, err := json.Marshal(it)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestPanScenarioShiftsScreenNotWorld(t *testing.T) {
	e, _ := newTestEngine(t, Options{})
	im := imageAt(0, 0, 100, 100)
	e.Restore([]domain.Item{im}, nil)
	before := e.Views()[0].Bounds

	if !down(e, 500, 500, 0) {
		t.Fatalf("canvas did not claim pointer-down")
	}
	if _, ok := e.Mode().(Panning); !ok {
		t.Fatalf("mode = %v, want panning", e.Mode())
	}
	e.PointerMove(pt(520, 530))
	e.PointerMove(pt(550, 550))
	e.PointerUp(pt(550, 550))

	if _, ok := e.Mode().(Idle); !ok {
		t.Fatalf("mode = %v, want idle", e.Mode())
	}
	after := e.Views()[0].Bounds
	if !after.Min().Near(before.Min().Add(pt(50, 50)), 1e-9) {
		t.Fatalf("screen bounds moved from %+v to %+v, want +50,+50", before, after)
	}
	got := mustItem(t, e, im.ID).Common()
	if got.X != 0 || got.Y != 0 {
		t.Fatalf("world position = (%v,%v), want (0,0)", got.X, got.Y)
	}
	if c := e.Camera(); c.X != 50 || c.Y != 50 || c.Scale != 1 {
		t.Fatalf("camera = %+v", c)
	}
}

func TestDragMovesSelectionInWorldUnits(t *testing.T) {
	e, saver := newTestEngine(t, Options{})
	a := imageAt(0, 0, 100, 100)
	b := imageAt(300, 0, 100, 100)
	c := imageAt(0, 300, 100, 100)
	c.Selected = true
	e.Restore([]domain.Item{a, b, c}, &camera.Camera{Scale: 2})

	down(e, 50, 50, AdditiveModifier) // a, keeping c selected
	if _, ok := e.Mode().(DraggingItems); !ok {
		t.Fatalf("mode = %v, want dragging", e.Mode())
	}
	e.PointerMove(pt(70, 90))
	e.PointerUp(pt(70, 90))

	if got := mustItem(t, e, a.ID).Common(); got.X != 10 || got.Y != 20 {
		t.Fatalf("a at (%v,%v), want (10,20)", got.X, got.Y)
	}
	if got := mustItem(t, e, c.ID).Common(); got.X != 10 || got.Y != 320 {
		t.Fatalf("c at (%v,%v), want (10,320)", got.X, got.Y)
	}
	if got := mustItem(t, e, b.ID).Common(); got.X != 300 || got.Y != 0 || got.Selected {
		t.Fatalf("b changed: %+v", got)
	}
	if saver.count() == 0 {
		t.Fatalf("drag did not schedule an autosave")
	}
}

func TestClickWithoutShiftSelectsOnlyHitItem(t *testing.T) {
	e, _ := newTestEngine(t, Options{})
	a := imageAt(0, 0, 100, 100)
	b := imageAt(300, 0, 100, 100)
	a.Selected = true
	e.Restore([]domain.Item{a, b}, nil)

	down(e, 350, 50, 0)
	e.PointerUp(pt(350, 50))
	if ids := e.SelectedIDs(); len(ids) != 1 || ids[0] != b.ID {
		t.Fatalf("selected = %v, want [%s]", ids, b.ID)
	}
	down(e, 50, 50, ModShift)
	e.PointerUp(pt(50, 50))
	if ids := e.SelectedIDs(); len(ids) != 2 {
		t.Fatalf("additive click: selected = %v", ids)
	}
}

func TestItemHitBeatsBoxSelectModifier(t *testing.T) {
	e, _ := newTestEngine(t, Options{})
	a := imageAt(0, 0, 100, 100)
	e.Restore([]domain.Item{a}, nil)
	down(e, 10, 10, BoxSelectModifier)
	if _, ok := e.Mode().(DraggingItems); !ok {
		t.Fatalf("mode = %v, want dragging", e.Mode())
	}
}

func TestRubberBandSelectsOverlappingItems(t *testing.T) {
	e, _ := newTestEngine(t, Options{})
	a := imageAt(0, 0, 100, 100)
	b := imageAt(300, 0, 100, 100)
	c := imageAt(0, 300, 100, 100)
	e.Restore([]domain.Item{a, b, c}, nil)

	down(e, -20, -20, BoxSelectModifier)
	if _, ok := e.Mode().(RubberBand); !ok {
		t.Fatalf("mode = %v, want rubber band", e.Mode())
	}
	e.PointerMove(pt(350, 50))
	box, ok := e.SelectionBox()
	if !ok || box.Current != pt(350, 50) {
		t.Fatalf("selection box = %+v, %v", box, ok)
	}
	e.PointerUp(pt(350, 50))

	want := map[string]bool{a.ID: true, b.ID: true}
	ids := e.SelectedIDs()
	if len(ids) != 2 || !want[ids[0]] || !want[ids[1]] {
		t.Fatalf("selected = %v, want a and b", ids)
	}
	if _, ok := e.SelectionBox(); ok {
		t.Fatalf("selection box not cleared")
	}
	if _, ok := e.Mode().(Idle); !ok {
		t.Fatalf("mode = %v, want idle", e.Mode())
	}
}

func TestRubberBandBelowThresholdSelectsNothing(t *testing.T) {
	e, _ := newTestEngine(t, Options{})
	a := imageAt(0, 0, 100, 100)
	e.Restore([]domain.Item{a}, nil)

	down(e, -3, -3, BoxSelectModifier)
	e.PointerUp(pt(2, 1)) // 5 x 4 overlaps a but is not deliberate
	if ids := e.SelectedIDs(); len(ids) != 0 {
		t.Fatalf("selected = %v, want none", ids)
	}
	if _, ok := e.SelectionBox(); ok {
		t.Fatalf("selection box not cleared")
	}
}

func TestRubberBandAdditiveKeepsSelection(t *testing.T) {
	e, _ := newTestEngine(t, Options{})
	a := imageAt(0, 0, 100, 100)
	b := imageAt(300, 0, 100, 100)
	a.Selected = true
	e.Restore([]domain.Item{a, b}, nil)

	down(e, 250, -20, BoxSelectModifier|AdditiveModifier)
	e.PointerUp(pt(450, 150))
	if ids := e.SelectedIDs(); len(ids) != 2 {
		t.Fatalf("selected = %v, want both", ids)
	}

	down(e, 250, -20, BoxSelectModifier)
	e.PointerUp(pt(450, 150))
	if ids := e.SelectedIDs(); len(ids) != 1 || ids[0] != b.ID {
		t.Fatalf("selected = %v, want only b", ids)
	}
}

func TestRubberBandUsesRotatedBounds(t *testing.T) {
	e, _ := newTestEngine(t, Options{})
	a := imageAt(0, 0, 100, 100)
	a.Rotation = 45 // bounding rectangle now spans about -20.7..120.7
	e.Restore([]domain.Item{a}, nil)

	down(e, 115, 0, BoxSelectModifier) // outside the rotated square itself
	if _, ok := e.Mode().(RubberBand); !ok {
		t.Fatalf("mode = %v, want rubber band", e.Mode())
	}
	e.PointerUp(pt(125, 10))
	if ids := e.SelectedIDs(); len(ids) != 1 {
		t.Fatalf("rotated corner not selected: %v", ids)
	}
}

func TestDoubleClickEditScenario(t *testing.T) {
	e, _ := newTestEngine(t, Options{})
	im := imageAt(0, 0, 100, 100)
	tx := note(300, 0, "hi")
	e.Restore([]domain.Item{im, tx}, nil)
	imBefore := jsonOf(t, mustItem(t, e, im.ID))

	e.DoubleClick(pt(310, 10))
	m, ok := e.Mode().(EditingText)
	if !ok || m.ID != tx.ID || m.Draft != "hi" {
		t.Fatalf("mode = %v, want editing %s", e.Mode(), tx.ID)
	}
	if e.EditState().ID != tx.ID {
		t.Fatalf("edit state = %+v", e.EditState())
	}
	e.TypeText("hello world")
	if got := mustItem(t, e, tx.ID).(*domain.Text).Content; got != "hi" {
		t.Fatalf("draft leaked into item before commit: %q", got)
	}
	e.CommitEdit()

	if _, ok := e.Mode().(Idle); !ok {
		t.Fatalf("mode = %v, want idle after commit", e.Mode())
	}
	if got := mustItem(t, e, tx.ID).(*domain.Text).Content; got != "hello world" {
		t.Fatalf("content = %q, want %q", got, "hello world")
	}
	if got := jsonOf(t, mustItem(t, e, im.ID)); got != imBefore {
		t.Fatalf("image changed:\n%s\n%s", imBefore, got)
	}
}

func TestCancelEditKeepsContent(t *testing.T) {
	e, _ := newTestEngine(t, Options{})
	tx := note(0, 0, "keep")
	e.Restore([]domain.Item{tx}, nil)
	e.DoubleClick(pt(5, 5))
	e.TypeText("discard")
	e.CancelEdit()
	if got := mustItem(t, e, tx.ID).(*domain.Text).Content; got != "keep" {
		t.Fatalf("content = %q, want keep", got)
	}
}

func TestDoubleClickEmptyCanvasCreatesNote(t *testing.T) {
	e, _ := newTestEngine(t, Options{})
	e.Restore(nil, &camera.Camera{X: 100, Y: 0, Scale: 2})

	e.DoubleClick(pt(300, 40))
	m, ok := e.Mode().(EditingText)
	if !ok {
		t.Fatalf("mode = %v, want editing", e.Mode())
	}
	it := mustItem(t, e, m.ID)
	tx, isText := it.(*domain.Text)
	if !isText {
		t.Fatalf("created %T, want text", it)
	}
	if tx.X != 100 || tx.Y != 20 || !tx.Selected {
		t.Fatalf("note = %+v, want selected at world (100,20)", tx.Base)
	}
}

func TestDoubleClickImageIsNoop(t *testing.T) {
	e, _ := newTestEngine(t, Options{})
	e.Restore([]domain.Item{imageAt(0, 0, 100, 100)}, nil)
	e.DoubleClick(pt(50, 50))
	if _, ok := e.Mode().(Idle); !ok || e.Len() != 1 {
		t.Fatalf("mode = %v, len = %d", e.Mode(), e.Len())
	}
}

func TestPointerDownDuringEdit(t *testing.T) {
	e, _ := newTestEngine(t, Options{})
	tx := note(0, 0, "a")
	im := imageAt(400, 0, 100, 100)
	e.Restore([]domain.Item{tx, im}, nil)
	e.DoubleClick(pt(5, 5))
	e.TypeText("ab")

	if !down(e, 10, 10, 0) {
		t.Fatalf("click inside edited note not claimed")
	}
	if _, ok := e.Mode().(EditingText); !ok {
		t.Fatalf("click inside edited note left edit mode: %v", e.Mode())
	}

	down(e, 450, 50, 0)
	if _, ok := e.Mode().(DraggingItems); !ok {
		t.Fatalf("mode = %v, want dragging", e.Mode())
	}
	if got := mustItem(t, e, tx.ID).(*domain.Text).Content; got != "ab" {
		t.Fatalf("draft not committed on leaving edit: %q", got)
	}
}

func TestChromePointerDownIsNotClaimed(t *testing.T) {
	e, saver := newTestEngine(t, Options{})
	if e.PointerDown(Pointer{Pos: pt(1, 1), Target: TargetChrome}) {
		t.Fatalf("chrome click claimed")
	}
	if _, ok := e.Mode().(Idle); !ok || saver.count() != 0 {
		t.Fatalf("chrome click changed state: %v", e.Mode())
	}
}

func TestWheelZoomKeepsPointFixed(t *testing.T) {
	e, _ := newTestEngine(t, Options{})
	e.Restore(nil, &camera.Camera{X: 13, Y: -7, Scale: 1.5})
	p := pt(321, 123)
	before := e.Camera().ScreenToWorld(p)

	e.Wheel(p, -1)
	if got := e.Camera().Scale; math.Abs(got-1.65) > 1e-9 {
		t.Fatalf("scale = %v, want 1.65", got)
	}
	if after := e.Camera().ScreenToWorld(p); !after.Near(before, 1e-9) {
		t.Fatalf("world under cursor moved: %v -> %v", before, after)
	}
	e.Wheel(p, 3)
	if got := e.Camera().Scale; math.Abs(got-1.485) > 1e-9 {
		t.Fatalf("scale = %v, want 1.485 after zooming out", got)
	}
}

func TestWheelZoomClamps(t *testing.T) {
	e, _ := newTestEngine(t, Options{})
	for range 100 {
		e.Wheel(pt(0, 0), -1)
	}
	if got := e.Camera().Scale; got != camera.MaxScale {
		t.Fatalf("scale = %v, want %v", got, camera.MaxScale)
	}
	for range 200 {
		e.Wheel(pt(0, 0), 1)
	}
	if got := e.Camera().Scale; got != camera.MinScale {
		t.Fatalf("scale = %v, want %v", got, camera.MinScale)
	}
}

func TestWheelWorksWhileEditing(t *testing.T) {
	e, _ := newTestEngine(t, Options{})
	e.DoubleClick(pt(100, 100))
	e.Wheel(pt(0, 0), -1)
	if e.Camera().Scale == 1 {
		t.Fatalf("wheel ignored in edit mode")
	}
}

func TestModeStrings(t *testing.T) {
	for _, m := range []Mode{Idle{}, Panning{}, DraggingItems{}, RubberBand{}, EditingText{ID: "x"}} {
		if m.String() == "" {
			t.Fatalf("%T has no name", m)
		}
	}
}
