/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package render derives per-item display state from the scene and camera.
// Nothing here mutates its inputs.
package render

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"

	"inspiraview/internal/camera"
	"inspiraview/internal/domain"
	"inspiraview/internal/textlayout"
	"inspiraview/internal/vector"
)

// EditState names the text item being edited and its uncommitted content.
type EditState struct {
	ID    string
	Draft string
}

// View is everything a display backend needs to draw one item.
type View struct {
	ID       string
	Kind     domain.Kind
	Matrix   vector.Affine2D // local [0,w]x[0,h] to screen
	Bounds   vector.Rect     // screen-space axis-aligned bounds
	Size     vector.Size     // unscaled local size
	Center   vector.Pt       // screen
	Rotation float64         // degrees
	ScaleX   float64         // camera scale * item scale * flip sign
	ScaleY   float64
	Selected bool
	Editing  bool

	Image *ImageView
	Text  *TextView
}

type ImageView struct {
	Src       string
	FlipH     bool
	FlipV     bool
	Grayscale bool
	Guides    bool
}

type TextView struct {
	Content  string
	Color    color.NRGBA
	FontSize float64
	Width    float64
	Lines    []string
}

// CSSTransform renders the transform as translate/rotate/scale with the
// transform origin at the element centre.
func (v View) CSSTransform() string {
	tx := v.Center.X - v.Size.W/2
	ty := v.Center.Y - v.Size.H/2
	return fmt.Sprintf("translate(%spx, %spx) rotate(%sdeg) scale(%s, %s)",
		num(tx), num(ty), num(v.Rotation), num(v.ScaleX), num(v.ScaleY))
}

func num(f float64) string { return strconv.FormatFloat(vector.FloatRound(f, 3), 'f', -1, 64) }

// Hit reports whether the screen point lies inside the item's rotated box.
func (v View) Hit(p vector.Pt) bool {
	inv, ok := v.Matrix.Invert()
	if !ok {
		return false
	}
	return vector.R(0, 0, v.Size.W, v.Size.H).Contains(inv.Apply(p))
}

// Projector maps items to views. Layout measures text notes; nil uses the basic font.
type Projector struct {
	Layout textlayout.Layouter
}

func New(l textlayout.Layouter) *Projector { return &Projector{Layout: l} }

func (p *Projector) layouter() textlayout.Layouter {
	if p == nil || p.Layout == nil {
		return textlayout.NewWordWrap(textlayout.BasicProvider{})
	}
	return p.Layout
}

// ItemSize returns the unscaled size of it. Text uses its width hint and the
// height of its wrapped lines.
func (p *Projector) ItemSize(it domain.Item, edit EditState) vector.Size {
	return domain.Match(it,
		func(im *domain.Image) vector.Size {
			w, h := im.Size()
			return vector.Size{W: w, H: h}
		},
		func(t *domain.Text) vector.Size {
			box := p.layouter().Layout(textContent(t, edit), t.FontSize, t.Width)
			return vector.Size{W: t.Width, H: box.Height}
		})
}

func textContent(t *domain.Text, edit EditState) string {
	if edit.ID != "" && edit.ID == t.ID {
		return edit.Draft
	}
	return t.Content
}

// Project computes the view of a single item.
func (p *Projector) Project(it domain.Item, cam camera.Camera, edit EditState) View {
	b := it.Common()
	sz := p.ItemSize(it, edit)
	v := View{
		ID:       b.ID,
		Kind:     it.Kind(),
		Size:     sz,
		Rotation: b.Rotation,
		Selected: b.Selected,
	}
	pv := &projectVisitor{p: p, v: &v, edit: edit, fx: 1, fy: 1}
	it.Accept(pv)
	fx, fy := pv.fx, pv.fy

	local := vector.Translate(b.X+sz.W/2, b.Y+sz.H/2).
		Mul(vector.Rotate(vector.Deg2Rad(b.Rotation))).
		Mul(vector.Scale(b.Scale*fx, b.Scale*fy)).
		Mul(vector.Translate(-sz.W/2, -sz.H/2))
	v.Matrix = cam.Matrix().Mul(local)
	v.Bounds = v.Matrix.TransformRect(vector.R(0, 0, sz.W, sz.H))
	v.Center = v.Matrix.Apply(vector.Pt{X: sz.W / 2, Y: sz.H / 2})
	v.ScaleX = cam.Scale * b.Scale * fx
	v.ScaleY = cam.Scale * b.Scale * fy
	return v
}

type projectVisitor struct {
	p      *Projector
	v      *View
	edit   EditState
	fx, fy float64
}

func (pv *projectVisitor) VisitImage(im *domain.Image) {
	if im.FlipH {
		pv.fx = -1
	}
	if im.FlipV {
		pv.fy = -1
	}
	pv.v.Image = &ImageView{Src: im.Src, FlipH: im.FlipH, FlipV: im.FlipV, Grayscale: im.Grayscale, Guides: im.Guides}
}

func (pv *projectVisitor) VisitText(t *domain.Text) {
	content := textContent(t, pv.edit)
	box := pv.p.layouter().Layout(content, t.FontSize, t.Width)
	pv.v.Editing = pv.edit.ID == t.ID
	pv.v.Text = &TextView{Content: content, Color: ParseColor(t.Color), FontSize: t.FontSize, Width: t.Width, Lines: box.Lines}
}

// Scene projects every item in display order: unselected items first, then
// selected ones, each group in scene order.
func (p *Projector) Scene(items []domain.Item, cam camera.Camera, edit EditState) []View {
	views := make([]View, len(items))
	for i, it := range items {
		views[i] = p.Project(it, cam, edit)
	}
	sort.SliceStable(views, func(i, j int) bool { return !views[i].Selected && views[j].Selected })
	return views
}

// HitTest returns the id of the topmost view containing the screen point.
func HitTest(views []View, pt vector.Pt) (string, bool) {
	for i := len(views) - 1; i >= 0; i-- {
		if views[i].Hit(pt) {
			return views[i].ID, true
		}
	}
	return "", false
}

// ParseColor converts a #rrggbb string to NRGBA, falling back to white.
func ParseColor(s string) color.NRGBA {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}
