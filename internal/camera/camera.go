/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package camera holds the world-to-screen transform of the infinite canvas:
// screen = world*scale + (x, y).
package camera

import (
	"math"

	"inspiraview/internal/vector"
)

const (
	MinScale = 0.1
	MaxScale = 20.0
)

// Camera is a pan offset in screen pixels plus a uniform scale.
type Camera struct {
	X     float64 `json:"x" yaml:"x"`
	Y     float64 `json:"y" yaml:"y"`
	Scale float64 `json:"scale" yaml:"scale"`
}

// New returns the reset camera.
func New() Camera { return Camera{Scale: 1} }

func (c Camera) WorldToScreen(p vector.Pt) vector.Pt {
	return vector.Pt{X: p.X*c.Scale + c.X, Y: p.Y*c.Scale + c.Y}
}

func (c Camera) ScreenToWorld(p vector.Pt) vector.Pt {
	return vector.Pt{X: (p.X - c.X) / c.Scale, Y: (p.Y - c.Y) / c.Scale}
}

// Matrix returns the camera as an affine transform.
func (c Camera) Matrix() vector.Affine2D {
	return vector.Affine2D{A: c.Scale, D: c.Scale, E: c.X, F: c.Y}
}

// Pan shifts the offset by a screen-space delta.
func (c *Camera) Pan(dx, dy float64) {
	if !finite(dx) || !finite(dy) {
		return
	}
	c.X += dx
	c.Y += dy
}

// ZoomAt scales by factor while keeping the world point under at fixed on screen.
// The resulting scale is clamped to [MinScale, MaxScale]; non-positive factors are ignored.
func (c *Camera) ZoomAt(at vector.Pt, factor float64) {
	if !(factor > 0) || !finite(factor) || !finite(at.X) || !finite(at.Y) {
		return
	}
	old := c.Scale
	next := Clamp(old * factor)
	if next == old {
		return
	}
	ratio := next / old
	c.X = at.X - (at.X-c.X)*ratio
	c.Y = at.Y - (at.Y-c.Y)*ratio
	c.Scale = next
}

// SetScale sets an absolute scale about a screen point.
func (c *Camera) SetScale(at vector.Pt, scale float64) {
	if !(scale > 0) || c.Scale <= 0 {
		return
	}
	c.ZoomAt(at, scale/c.Scale)
}

func (c *Camera) Reset() { *c = New() }

// Sanitize repairs a camera read from persisted state.
func (c Camera) Sanitize() Camera {
	if !finite(c.X) {
		c.X = 0
	}
	if !finite(c.Y) {
		c.Y = 0
	}
	if !finite(c.Scale) || c.Scale <= 0 {
		c.Scale = 1
	}
	c.Scale = Clamp(c.Scale)
	return c
}

// Clamp limits s to the allowed scale range.
func Clamp(s float64) float64 {
	return math.Min(MaxScale, math.Max(MinScale, s))
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
