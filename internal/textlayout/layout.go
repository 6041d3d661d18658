/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

// Text measurement and line breaking for canvas notes. Everything sits
// behind Provider so tests can use the fixed-width basic font.

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Metrics provides font metrics in pixels for the resolved face.
type Metrics struct {
	Ascent, Descent, LineGap float64
}

// LineHeight is the baseline-to-baseline distance.
func (m Metrics) LineHeight() float64 { return m.Ascent + m.Descent + m.LineGap }

// Provider maps a pixel size to a face. The returned factor scales the face's
// own measurements to the requested size (1 for faces built at that size).
type Provider interface {
	Resolve(sizePx float64) (face font.Face, factor float64)
}

// BasicProvider uses x/image/basicfont Face7x13 for deterministic tests.
type BasicProvider struct{}

func (BasicProvider) Resolve(sizePx float64) (font.Face, float64) {
	if sizePx <= 0 {
		sizePx = 13
	}
	return basicfont.Face7x13, sizePx / 13
}

// TextBox is the result of laying out text into a box width.
type TextBox struct {
	Lines   []string
	Width   float64 // widest line
	Height  float64
	Metrics Metrics
}

// Layouter performs line-breaking and measurement.
type Layouter interface {
	Layout(text string, sizePx, maxWidth float64) TextBox
}

// WordWrapLayouter breaks on spaces and hard newlines; it does not
// perform shaping or hyphenation. A word wider than maxWidth gets its own line.
type WordWrapLayouter struct{ Provider Provider }

func NewWordWrap(provider Provider) *WordWrapLayouter { return &WordWrapLayouter{Provider: provider} }

func (l *WordWrapLayouter) Layout(text string, sizePx, maxWidth float64) TextBox {
	p := l.Provider
	if p == nil {
		p = BasicProvider{}
	}
	face, k := p.Resolve(sizePx)
	met := metricsOf(face, k)
	d := &font.Drawer{Face: face}
	box := TextBox{Metrics: met}

	for _, para := range strings.Split(text, "\n") {
		cur, curW := "", 0.0
		for _, word := range strings.Fields(para) {
			if cur == "" {
				cur, curW = word, advance(d, word)*k
				continue
			}
			cand := cur + " " + word
			w := advance(d, cand) * k
			if maxWidth > 0 && w > maxWidth {
				box.push(cur, curW)
				cur, curW = word, advance(d, word)*k
				continue
			}
			cur, curW = cand, w
		}
		box.push(cur, curW)
	}
	box.Height = float64(len(box.Lines)) * met.LineHeight()
	return box
}

func (b *TextBox) push(line string, w float64) {
	b.Lines = append(b.Lines, line)
	if w > b.Width {
		b.Width = w
	}
}

func metricsOf(face font.Face, k float64) Metrics {
	m := face.Metrics()
	asc, desc, h := i26(m.Ascent), i26(m.Descent), i26(m.Height)
	gap := h - asc - desc
	if gap < 0 {
		gap = 0
	}
	return Metrics{Ascent: asc * k, Descent: desc * k, LineGap: gap * k}
}

func i26(v fixed.Int26_6) float64 { return float64(v) / 64 }

func advance(d *font.Drawer, s string) float64 {
	return i26(d.MeasureString(s))
}

// Measure returns the single-line width and line height of s.
func Measure(provider Provider, s string, sizePx float64) (w, h float64) {
	if provider == nil {
		provider = BasicProvider{}
	}
	face, k := provider.Resolve(sizePx)
	d := &font.Drawer{Face: face}
	return advance(d, s) * k, metricsOf(face, k).LineHeight()
}
