/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package engine

import (
	"math"

	"inspiraview/internal/camera"
	"inspiraview/internal/domain"
	"inspiraview/internal/telemetry"
)

// Item adjustment steps.
const (
	RotateStep   = 15.0 // degrees
	ScaleStep    = 1.1
	MinItemScale = 0.05
	MaxItemScale = 20.0
	FontSizeStep = 2.0
	MinFontSize  = 6.0
	MaxFontSize  = 400.0
	FitImageSide = 512.0 // new images larger than this are scaled down to fit
	DropCascade  = 20.0  // screen offset between several dropped images
	FitMargin    = 0.9   // share of the viewport FitAll fills
)

// selection applies per-variant edits to the selected items. A nil handler
// skips that variant.
type selection struct {
	image func(*domain.Image)
	text  func(*domain.Text)
	n     int
}

func (s *selection) VisitImage(im *domain.Image) {
	if s.image != nil {
		s.image(im)
		s.n++
	}
}

func (s *selection) VisitText(t *domain.Text) {
	if s.text != nil {
		s.text(t)
		s.n++
	}
}

// editSelected runs the handlers over the selection and records a change if
// anything matched.
func (e *Engine) editSelected(image func(*domain.Image), text func(*domain.Text)) int {
	s := &selection{image: image, text: text}
	e.store.VisitSelected(s)
	if s.n > 0 {
		e.changed()
	}
	return s.n
}

// DeleteSelected removes every selected item.
func (e *Engine) DeleteSelected() int {
	if ed, ok := e.mode.(EditingText); ok {
		if it, found := e.store.Get(ed.ID); found && it.Common().Selected {
			e.setMode(Idle{})
		}
	}
	n := e.store.RemoveSelected()
	if n > 0 {
		e.changed()
	}
	return n
}

func (e *Engine) FlipH() int {
	return e.editSelected(func(im *domain.Image) { im.FlipH = !im.FlipH }, nil)
}

func (e *Engine) FlipV() int {
	return e.editSelected(func(im *domain.Image) { im.FlipV = !im.FlipV }, nil)
}

func (e *Engine) ToggleGrayscale() int {
	return e.editSelected(func(im *domain.Image) { im.Grayscale = !im.Grayscale }, nil)
}

func (e *Engine) ToggleGuides() int {
	return e.editSelected(func(im *domain.Image) { im.Guides = !im.Guides }, nil)
}

// Recolor advances every selected note to the next palette colour.
func (e *Engine) Recolor() int {
	return e.editSelected(nil, func(t *domain.Text) { t.Color = domain.NextPaletteColor(t.Color) })
}

// ResizeFont changes the font size of selected notes by steps.
func (e *Engine) ResizeFont(steps int) int {
	if steps == 0 {
		return 0
	}
	return e.editSelected(nil, func(t *domain.Text) {
		t.FontSize = clamp(t.FontSize+float64(steps)*FontSizeStep, MinFontSize, MaxFontSize)
	})
}

// Rotate turns every selected item by deg degrees about its centre.
func (e *Engine) Rotate(deg float64) int {
	if deg == 0 || !finite(deg) {
		return 0
	}
	rot := func(b *domain.Base) { b.Rotation = normDeg(b.Rotation + deg) }
	return e.editSelected(
		func(im *domain.Image) { rot(&im.Base) },
		func(t *domain.Text) { rot(&t.Base) })
}

// ScaleItems multiplies the scale of every selected item by f.
func (e *Engine) ScaleItems(f float64) int {
	if f <= 0 || !finite(f) {
		return 0
	}
	sc := func(b *domain.Base) { b.Scale = clamp(b.Scale*f, MinItemScale, MaxItemScale) }
	return e.editSelected(
		func(im *domain.Image) { sc(&im.Base) },
		func(t *domain.Text) { sc(&t.Base) })
}

func (e *Engine) SelectAll() {
	if e.store.Len() == 0 {
		return
	}
	e.store.SelectAll()
	e.changed()
}

func (e *Engine) ClearSelection() {
	if len(e.store.Selected()) == 0 {
		return
	}
	e.store.ClearSelection()
	e.changed()
}

// Clear removes every item.
func (e *Engine) Clear() {
	if e.store.Len() == 0 {
		return
	}
	e.setMode(Idle{})
	e.store.Clear()
	e.changed()
}

// ResetCamera returns to the origin at scale 1.
func (e *Engine) ResetCamera() {
	if e.cam == camera.New() {
		return
	}
	e.cam.Reset()
	e.changed()
}

// Pan moves the camera by a screen offset.
func (e *Engine) Pan(dx, dy float64) {
	before := e.cam
	e.cam.Pan(dx, dy)
	if e.cam != before {
		e.changed()
	}
}

// ZoomIn and ZoomOut zoom about the viewport centre.
func (e *Engine) ZoomIn()  { e.zoomAt(e.viewportCenter(), 1+WheelStep) }
func (e *Engine) ZoomOut() { e.zoomAt(e.viewportCenter(), 1-WheelStep) }

// SetZoom sets the camera scale to percent/100 about the viewport centre.
func (e *Engine) SetZoom(percent float64) {
	if !finite(percent) || percent <= 0 {
		return
	}
	before := e.cam
	e.cam.SetScale(e.viewportCenter(), percent/100)
	if e.cam != before {
		e.changed()
	}
}

// ZoomPercent reports the camera scale as a percentage.
func (e *Engine) ZoomPercent() float64 { return e.cam.Scale * 100 }

// FitAll frames every item in the viewport, leaving a FitMargin border.
func (e *Engine) FitAll() {
	views := e.Views()
	vp := e.state.Viewport
	if len(views) == 0 || vp.W <= 0 || vp.H <= 0 {
		return
	}
	box := views[0].Bounds
	for _, v := range views[1:] {
		box = box.Union(v.Bounds)
	}
	if box.W <= 0 || box.H <= 0 {
		return
	}
	before := e.cam
	c := box.Center()
	e.cam.ZoomAt(c, FitMargin*math.Min(vp.W/box.W, vp.H/box.H))
	d := e.viewportCenter().Sub(c)
	e.cam.Pan(d.X, d.Y)
	if e.cam != before {
		e.changed()
	}
}

// AddTextAtCenter creates a note in the middle of the viewport and edits it.
func (e *Engine) AddTextAtCenter() {
	c := e.cam.ScreenToWorld(e.viewportCenter())
	e.commitEditing()
	t := domain.NewText(c.X-domain.DefaultTextWidth/2, c.Y)
	e.store.Add(t)
	e.event(telemetry.EventItemsAdded, map[string]any{"count": 1, "kind": string(domain.KindText)})
	e.setMode(EditingText{ID: t.ID, Draft: t.Content})
	e.changed()
}

func clamp(v, lo, hi float64) float64 { return math.Min(hi, math.Max(lo, v)) }

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// normDeg maps an angle into [0, 360).
func normDeg(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}
