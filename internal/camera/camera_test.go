/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package camera

import (
	"math"
	"testing"

	"inspiraview/internal/vector"
)

const eps = 1e-9

func TestRoundTripAfterPans(t *testing.T) {
	c := New()
	pans := [][2]float64{{10, -4}, {-300.5, 12}, {0.25, 0.75}}
	p := vector.Pt{X: 123.4, Y: -56.7}
	for _, d := range pans {
		c.Pan(d[0], d[1])
		if got := c.ScreenToWorld(c.WorldToScreen(p)); !got.Near(p, eps) {
			t.Fatalf("round trip = %+v, want %+v", got, p)
		}
	}
	c.ZoomAt(vector.Pt{X: 40, Y: 40}, 3.3)
	if got := c.ScreenToWorld(c.WorldToScreen(p)); !got.Near(p, eps) {
		t.Fatalf("round trip after zoom = %+v, want %+v", got, p)
	}
}

func TestZoomAtKeepsPointUnderCursor(t *testing.T) {
	c := Camera{X: 15, Y: -30, Scale: 1.5}
	at := vector.Pt{X: 320, Y: 240}
	for _, f := range []float64{1.1, 0.9, 4, 0.01, 100} {
		before := c.ScreenToWorld(at)
		c.ZoomAt(at, f)
		if after := c.ScreenToWorld(at); !after.Near(before, 1e-6) {
			t.Fatalf("factor %v: world under cursor moved %+v -> %+v", f, before, after)
		}
	}
}

func TestZoomClamped(t *testing.T) {
	c := New()
	c.ZoomAt(vector.Pt{}, 1000)
	if c.Scale != MaxScale {
		t.Fatalf("Scale = %v, want %v", c.Scale, MaxScale)
	}
	c.ZoomAt(vector.Pt{}, 1e-6)
	if c.Scale != MinScale {
		t.Fatalf("Scale = %v, want %v", c.Scale, MinScale)
	}
}

func TestSetScaleAbsolute(t *testing.T) {
	c := Camera{X: 15, Y: -30, Scale: 1.5}
	at := vector.Pt{X: 320, Y: 240}
	before := c.ScreenToWorld(at)
	c.SetScale(at, 2)
	if math.Abs(c.Scale-2) > eps {
		t.Fatalf("Scale = %v, want 2", c.Scale)
	}
	if after := c.ScreenToWorld(at); !after.Near(before, 1e-6) {
		t.Fatalf("anchor moved %+v -> %+v", before, after)
	}
	c.SetScale(at, 500)
	if c.Scale != MaxScale {
		t.Fatalf("Scale = %v, want %v", c.Scale, MaxScale)
	}
	c.SetScale(at, 0)
	c.SetScale(at, math.NaN())
	if c.Scale != MaxScale {
		t.Fatalf("invalid scale applied: %v", c.Scale)
	}
}

func TestZoomIgnoresInvalidFactor(t *testing.T) {
	c := Camera{X: 1, Y: 2, Scale: 3}
	c.ZoomAt(vector.Pt{X: 5, Y: 5}, 0)
	c.ZoomAt(vector.Pt{X: 5, Y: 5}, -2)
	c.ZoomAt(vector.Pt{X: 5, Y: 5}, math.NaN())
	if c != (Camera{X: 1, Y: 2, Scale: 3}) {
		t.Fatalf("camera changed: %+v", c)
	}
}

func TestPanScenario(t *testing.T) {
	c := New()
	world := vector.Pt{}
	before := c.WorldToScreen(world)
	c.Pan(50, 50)
	after := c.WorldToScreen(world)
	if after.Sub(before) != (vector.Pt{X: 50, Y: 50}) {
		t.Fatalf("screen shift = %+v, want (50,50)", after.Sub(before))
	}
}

func TestResetAndSanitize(t *testing.T) {
	c := Camera{X: 9, Y: 9, Scale: 9}
	c.Reset()
	if c != New() {
		t.Fatalf("Reset = %+v", c)
	}
	s := Camera{X: math.NaN(), Y: 4, Scale: 500}.Sanitize()
	if s.X != 0 || s.Y != 4 || s.Scale != MaxScale {
		t.Fatalf("Sanitize = %+v", s)
	}
	if z := (Camera{Scale: 0}).Sanitize(); z.Scale != 1 {
		t.Fatalf("zero scale sanitized to %v, want 1", z.Scale)
	}
}

func TestMatrixMatchesWorldToScreen(t *testing.T) {
	c := Camera{X: 7, Y: -3, Scale: 2.5}
	p := vector.Pt{X: 4, Y: 10}
	if got, want := c.Matrix().Apply(p), c.WorldToScreen(p); !got.Near(want, eps) {
		t.Fatalf("Matrix().Apply = %+v, want %+v", got, want)
	}
}
