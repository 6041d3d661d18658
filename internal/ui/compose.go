/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

// Frame compositing for the canvas. Views arrive already projected to screen
// space; this file only rasterises them, so it builds without fyne and is
// covered by the headless tests.

import (
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"math"
	"sync"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
	raster "golang.org/x/image/vector"

	applog "inspiraview/internal/log"
	"inspiraview/internal/media"
	"inspiraview/internal/render"
	"inspiraview/internal/textlayout"
	"inspiraview/internal/vector"
)

var (
	selectionColor = color.NRGBA{R: 0x4a, G: 0x9e, B: 0xff, A: 0xff}
	editingColor   = color.NRGBA{R: 0xff, G: 0xc1, B: 0x07, A: 0xff}
	bandFill       = color.NRGBA{R: 0x4a, G: 0x9e, B: 0xff, A: 0x33}
	guideColor     = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x99}
)

// maxTextOversample bounds the resolution text is rasterised at when zoomed in.
const maxTextOversample = 4.0

// Compositor draws projected views into an RGBA frame. Decoded image sources
// and their filtered variants are cached by data URI.
type Compositor struct {
	Provider   textlayout.Provider
	Background color.Color

	mu       sync.Mutex
	variants map[variantKey]image.Image
	failed   map[string]bool
}

type variantKey struct {
	src    string
	gray   bool
	guides bool
}

func NewCompositor(p textlayout.Provider) *Compositor {
	if p == nil {
		p = textlayout.BasicProvider{}
	}
	return &Compositor{
		Provider:   p,
		Background: color.NRGBA{A: 0},
		variants:   make(map[variantKey]image.Image),
		failed:     make(map[string]bool),
	}
}

// Frame renders views into a w×h pixel image. pixelScale converts the logical
// screen units the views are expressed in to pixels. box, when non-nil, is a
// rubber band selection rectangle in logical units.
func (c *Compositor) Frame(w, h int, pixelScale float64, views []render.View, box *vector.Rect) *image.RGBA {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if pixelScale <= 0 || math.IsNaN(pixelScale) {
		pixelScale = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if c.Background != nil {
		draw.Draw(dst, dst.Bounds(), image.NewUniform(c.Background), image.Point{}, draw.Src)
	}
	toPx := vector.Scale(pixelScale, pixelScale)
	for _, v := range views {
		m := toPx.Mul(v.Matrix)
		switch {
		case v.Image != nil:
			c.drawImage(dst, m, v)
		case v.Text != nil:
			c.drawText(dst, m, v, pixelScale)
		}
		switch {
		case v.Editing:
			strokeQuad(dst, m, v.Size, 2*pixelScale, editingColor)
		case v.Selected:
			strokeQuad(dst, m, v.Size, 2*pixelScale, selectionColor)
		}
	}
	if box != nil && (box.W > 0 || box.H > 0) {
		r := toPx.TransformRect(*box)
		quad := vector.Translate(r.X, r.Y)
		fillQuad(dst, quad, vector.Size{W: r.W, H: r.H}, bandFill)
		strokeQuad(dst, quad, vector.Size{W: r.W, H: r.H}, pixelScale, selectionColor)
	}
	return dst
}

// Prune drops cached variants whose source no longer appears in views.
func (c *Compositor) Prune(views []render.View) {
	live := make(map[string]bool, len(views))
	for _, v := range views {
		if v.Image != nil {
			live[v.Image.Src] = true
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.variants {
		if !live[k.src] {
			delete(c.variants, k)
		}
	}
	for src := range c.failed {
		if !live[src] {
			delete(c.failed, src)
		}
	}
}

func (c *Compositor) drawImage(dst draw.Image, m vector.Affine2D, v render.View) {
	src := c.variant(v.Image)
	if src == nil {
		fillQuad(dst, m, v.Size, color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff})
		return
	}
	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	m = m.Mul(vector.Scale(v.Size.W/float64(b.Dx()), v.Size.H/float64(b.Dy()))).
		Mul(vector.Translate(-float64(b.Min.X), -float64(b.Min.Y)))
	xdraw.BiLinear.Transform(dst, aff3(m), src, b, xdraw.Over, nil)
}

// variant returns the decoded source with the display filters applied.
// Flips are part of the view matrix and need no pixel work here.
func (c *Compositor) variant(iv *render.ImageView) image.Image {
	key := variantKey{src: iv.Src, gray: iv.Grayscale, guides: iv.Guides}
	c.mu.Lock()
	defer c.mu.Unlock()
	if img, ok := c.variants[key]; ok {
		return img
	}
	if c.failed[iv.Src] {
		return nil
	}
	base, ok := c.variants[variantKey{src: iv.Src}]
	if !ok {
		mime, data, err := media.ParseDataURI(iv.Src)
		if err == nil {
			var d media.Decoded
			d, err = media.Decode("image", mime, data)
			base = d.Image
		}
		if err != nil {
			applog.WithComponent("ui").Warn("image source unreadable", slog.Any("err", err))
			c.failed[iv.Src] = true
			return nil
		}
		c.variants[variantKey{src: iv.Src}] = base
	}
	img := base
	if iv.Grayscale {
		img = imaging.Grayscale(img)
	}
	if iv.Guides {
		img = withGuides(img)
	}
	c.variants[key] = img
	return img
}

// withGuides overlays rule-of-thirds lines.
func withGuides(src image.Image) image.Image {
	out := imaging.Clone(src)
	b := out.Bounds()
	w, h := b.Dx(), b.Dy()
	t := max(1, min(w, h)/300)
	line := image.NewUniform(guideColor)
	for i := 1; i <= 2; i++ {
		x := b.Min.X + w*i/3
		y := b.Min.Y + h*i/3
		draw.Draw(out, image.Rect(x-t/2, b.Min.Y, x-t/2+t, b.Max.Y), line, image.Point{}, draw.Over)
		draw.Draw(out, image.Rect(b.Min.X, y-t/2, b.Max.X, y-t/2+t), line, image.Point{}, draw.Over)
	}
	return out
}

// drawText rasterises the note's lines at a resolution matching the current
// zoom, then maps that bitmap through the view matrix.
func (c *Compositor) drawText(dst draw.Image, m vector.Affine2D, v render.View, pixelScale float64) {
	tv := v.Text
	if len(tv.Lines) == 0 || v.Size.W <= 0 || v.Size.H <= 0 {
		return
	}
	over := math.Max(1, math.Min(maxTextOversample, math.Abs(v.ScaleY)*pixelScale))
	face, factor := c.Provider.Resolve(tv.FontSize * over)
	if factor <= 0 {
		factor = 1
	}
	// bitmap units per local unit
	k := over / factor
	bw := int(math.Ceil(v.Size.W * k))
	bh := int(math.Ceil(v.Size.H * k))
	if bw <= 0 || bh <= 0 {
		return
	}
	bmp := image.NewNRGBA(image.Rect(0, 0, bw, bh))
	met := face.Metrics()
	lineH := met.Height
	if sum := met.Ascent + met.Descent; sum > lineH {
		lineH = sum
	}
	d := &font.Drawer{Dst: bmp, Src: image.NewUniform(tv.Color), Face: face}
	for i, line := range tv.Lines {
		d.Dot = fixed.Point26_6{X: 0, Y: met.Ascent + lineH*fixed.Int26_6(i)}
		d.DrawString(line)
	}
	m = m.Mul(vector.Scale(1/k, 1/k))
	xdraw.BiLinear.Transform(dst, aff3(m), bmp, bmp.Bounds(), xdraw.Over, nil)
}

func aff3(m vector.Affine2D) f64.Aff3 {
	return f64.Aff3{m.A, m.C, m.E, m.B, m.D, m.F}
}

func corners(m vector.Affine2D, sz vector.Size) [4]vector.Pt {
	return [4]vector.Pt{
		m.Apply(vector.Pt{}),
		m.Apply(vector.Pt{X: sz.W}),
		m.Apply(vector.Pt{X: sz.W, Y: sz.H}),
		m.Apply(vector.Pt{Y: sz.H}),
	}
}

func fillQuad(dst draw.Image, m vector.Affine2D, sz vector.Size, col color.Color) {
	cs := corners(m, sz)
	fillPolygon(dst, cs[:], col)
}

// strokeQuad outlines the transformed [0,w]x[0,h] box with a line of width
// px centred on each edge.
func strokeQuad(dst draw.Image, m vector.Affine2D, sz vector.Size, px float64, col color.Color) {
	cs := corners(m, sz)
	half := px / 2
	for i := range cs {
		a, b := cs[i], cs[(i+1)%len(cs)]
		d := b.Sub(a)
		l := math.Hypot(d.X, d.Y)
		if l == 0 {
			continue
		}
		n := vector.Pt{X: -d.Y / l * half, Y: d.X / l * half}
		ext := d.Mul(half / l)
		fillPolygon(dst, []vector.Pt{
			a.Sub(ext).Add(n), b.Add(ext).Add(n), b.Add(ext).Sub(n), a.Sub(ext).Sub(n),
		}, col)
	}
}

func fillPolygon(dst draw.Image, pts []vector.Pt, col color.Color) {
	b := dst.Bounds()
	r := raster.NewRasterizer(b.Dx(), b.Dy())
	for i, p := range pts {
		x, y := float32(p.X-float64(b.Min.X)), float32(p.Y-float64(b.Min.Y))
		if i == 0 {
			r.MoveTo(x, y)
			continue
		}
		r.LineTo(x, y)
	}
	r.ClosePath()
	r.Draw(dst, b, image.NewUniform(col), image.Point{})
}
