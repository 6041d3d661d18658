/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

// This file defines the canvas item model of a moodboard scene. Items form a
// closed sum type: every variant implements Item and is dispatched through
// Visitor, so adding a variant is a compile error in every visitor until handled.

// Kind discriminates item variants on the wire.
type Kind string

const (
	KindImage Kind = "image"
	KindText  Kind = "text"
)

// DefaultImageSize is used when an image's natural size is unknown.
const DefaultImageSize = 200.0

// Text defaults for newly created notes.
const (
	DefaultTextColor    = "#ffffff"
	DefaultTextFontSize = 24.0
	DefaultTextWidth    = 200.0
)

// Base carries the fields shared by all item variants.
// X and Y locate the item's top-left corner in world coordinates before
// rotation and scale, which are applied about the item centre.
type Base struct {
	ID       string  `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"` // degrees
	Scale    float64 `json:"scale"`
	Selected bool    `json:"selected"`
}

// Item is a canvas item. The set of implementations is closed to this package.
type Item interface {
	Common() *Base
	Kind() Kind
	Accept(v Visitor)
	Clone() Item
	sealed()
}

// Visitor dispatches over every item variant.
type Visitor interface {
	VisitImage(*Image)
	VisitText(*Text)
}

// Image is a picture placed on the canvas. The flags are display-only.
type Image struct {
	Base
	Src       string  `json:"src"`
	FlipH     bool    `json:"flipH"`
	FlipV     bool    `json:"flipV"`
	Grayscale bool    `json:"grayscale"`
	Guides    bool    `json:"guides"`
	Width     float64 `json:"naturalWidth,omitempty"`
	Height    float64 `json:"naturalHeight,omitempty"`
}

// Text is a free-standing note.
type Text struct {
	Base
	Content  string  `json:"content"`
	Color    string  `json:"color"`
	FontSize float64 `json:"fontSize"`
	Width    float64 `json:"width"`
}

func (i *Image) Common() *Base    { return &i.Base }
func (i *Image) Kind() Kind       { return KindImage }
func (i *Image) Accept(v Visitor) { v.VisitImage(i) }
func (i *Image) sealed()          {}

func (i *Image) Clone() Item {
	c := *i
	return &c
}

func (t *Text) Common() *Base    { return &t.Base }
func (t *Text) Kind() Kind       { return KindText }
func (t *Text) Accept(v Visitor) { v.VisitText(t) }
func (t *Text) sealed()          {}

func (t *Text) Clone() Item {
	c := *t
	return &c
}

// Size returns the unscaled image size, falling back to DefaultImageSize.
func (i *Image) Size() (w, h float64) {
	w, h = i.Width, i.Height
	if w <= 0 || h <= 0 {
		return DefaultImageSize, DefaultImageSize
	}
	return w, h
}

// NewImage returns a selected image item with a fresh ID.
func NewImage(src string, w, h float64) *Image {
	return &Image{Base: Base{ID: NewID(), Scale: 1, Selected: true}, Src: src, Width: w, Height: h}
}

// NewText returns a selected, empty text note with default styling.
func NewText(x, y float64) *Text {
	return &Text{
		Base:     Base{ID: NewID(), X: x, Y: y, Scale: 1, Selected: true},
		Color:    DefaultTextColor,
		FontSize: DefaultTextFontSize,
		Width:    DefaultTextWidth,
	}
}

// Match dispatches it to the handler for its variant and returns the result.
func Match[T any](it Item, image func(*Image) T, text func(*Text) T) T {
	m := &matcher[T]{image: image, text: text}
	it.Accept(m)
	return m.out
}

type matcher[T any] struct {
	image func(*Image) T
	text  func(*Text) T
	out   T
}

func (m *matcher[T]) VisitImage(i *Image) { m.out = m.image(i) }
func (m *matcher[T]) VisitText(t *Text)   { m.out = m.text(t) }

// CloneAll deep-copies a slice of items.
func CloneAll(items []Item) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}
