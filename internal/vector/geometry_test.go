/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import (
	"math"
	"testing"
)

func TestRectContainsAndInset(t *testing.T) {
	r := R(10, 20, 100, 50)
	if !r.Contains(Pt{10, 20}) || !r.Contains(Pt{110, 70}) {
		t.Fatalf("expected edge points to be contained")
	}
	in := r.Inset(5, 5)
	if in.X != 15 || in.Y != 25 || in.W != 90 || in.H != 40 {
		t.Fatalf("unexpected inset: %+v", in)
	}
}

func TestFromCornersNormalizes(t *testing.T) {
	r := FromCorners(Pt{30, 40}, Pt{10, 5})
	if r != R(10, 5, 20, 35) {
		t.Fatalf("FromCorners = %+v", r)
	}
}

func TestRectOverlaps(t *testing.T) {
	a := R(0, 0, 10, 10)
	if !a.Overlaps(R(5, 5, 10, 10)) {
		t.Fatalf("partial overlap not detected")
	}
	if !a.Overlaps(R(10, 0, 5, 5)) {
		t.Fatalf("touching edges should overlap")
	}
	if a.Overlaps(R(11, 0, 5, 5)) {
		t.Fatalf("disjoint on x reported as overlapping")
	}
	if a.Overlaps(R(0, -20, 5, 5)) {
		t.Fatalf("disjoint on y reported as overlapping")
	}
	if !a.Overlaps(R(-5, -5, 50, 50)) {
		t.Fatalf("containment should overlap")
	}
}

func TestRectUnion(t *testing.T) {
	u := R(0, 0, 10, 10).Union(R(20, -5, 5, 5))
	if u != R(0, -5, 25, 15) {
		t.Fatalf("Union = %+v", u)
	}
	if got := R(2, 2, 4, 4).Union(R(0, 0, 10, 10)); got != R(0, 0, 10, 10) {
		t.Fatalf("Union with container = %+v", got)
	}
}

func TestAffineBasic(t *testing.T) {
	m := Translate(10, 5).Mul(Scale(2, 3))
	p := m.Apply(Pt{1, 1})
	if p.X != 12 || p.Y != 8 { // (1*2+10, 1*3+5)
		t.Fatalf("unexpected transform result: %+v", p)
	}
}

func TestAffineInvertRoundTrip(t *testing.T) {
	m := Translate(40, -7).Mul(Rotate(Deg2Rad(30))).Mul(Scale(2, -0.5))
	inv, ok := m.Invert()
	if !ok {
		t.Fatalf("expected invertible matrix")
	}
	p := Pt{13, 21}
	if got := inv.Apply(m.Apply(p)); !got.Near(p, 1e-9) {
		t.Fatalf("round trip = %+v, want %+v", got, p)
	}
	if _, ok := Scale(0, 1).Invert(); ok {
		t.Fatalf("zero scale should be singular")
	}
}

func TestTransformRectRotated(t *testing.T) {
	b := Rotate(Deg2Rad(90)).TransformRect(R(0, 0, 100, 50))
	if math.Abs(b.W-50) > 1e-9 || math.Abs(b.H-100) > 1e-9 {
		t.Fatalf("rotated bounds = %+v, want 50x100", b)
	}
	if math.Abs(b.X+50) > 1e-9 || math.Abs(b.Y) > 1e-9 {
		t.Fatalf("rotated origin = (%v,%v), want (-50,0)", b.X, b.Y)
	}
}

func TestFloatRound(t *testing.T) {
	if got := FloatRound(1.23456, 2); got != 1.23 {
		t.Fatalf("FloatRound = %v, want 1.23", got)
	}
}
