/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

import (
	"math"
	"path/filepath"
	"testing"
)

func TestWordWrap_Naive(t *testing.T) {
	l := NewWordWrap(BasicProvider{})
	box := l.Layout("Hello world from Go", 13, 50)
	if len(box.Lines) < 2 {
		t.Fatalf("expected wrapping into multiple lines, got %d", len(box.Lines))
	}
	if box.Width <= 0 || box.Height <= 0 {
		t.Fatalf("expected positive box size: %+v", box)
	}
}

func TestWordWrap_HardBreaksAndEmpty(t *testing.T) {
	l := NewWordWrap(BasicProvider{})
	box := l.Layout("a\n\nb", 13, 0)
	if len(box.Lines) != 3 || box.Lines[1] != "" {
		t.Fatalf("Lines = %q, want [a  b]", box.Lines)
	}
	empty := l.Layout("", 13, 200)
	if len(empty.Lines) != 1 {
		t.Fatalf("empty text should occupy one line, got %d", len(empty.Lines))
	}
	if math.Abs(empty.Height-empty.Metrics.LineHeight()) > 1e-9 {
		t.Fatalf("Height = %v, want one line height %v", empty.Height, empty.Metrics.LineHeight())
	}
}

func TestBasicProviderScalesWithSize(t *testing.T) {
	w13, h13 := Measure(BasicProvider{}, "ABC", 13)
	w26, h26 := Measure(BasicProvider{}, "ABC", 26)
	if w13 != 21 {
		t.Fatalf("width at 13px = %v, want 21", w13)
	}
	if w26 != 2*w13 || h26 != 2*h13 {
		t.Fatalf("26px = %vx%v, want double of %vx%v", w26, h26, w13, h13)
	}
}

func TestGoRegularProviderCachesFaces(t *testing.T) {
	p, err := NewGoRegular()
	if err != nil {
		t.Fatalf("NewGoRegular: %v", err)
	}
	f1, k1 := p.Resolve(24)
	f2, _ := p.Resolve(24.2)
	if f1 != f2 {
		t.Fatalf("expected cached face for rounded size")
	}
	if k1 != 1 {
		t.Fatalf("factor = %v, want 1", k1)
	}
	w, h := Measure(p, "moodboard", 24)
	if w <= 0 || h <= 0 {
		t.Fatalf("Measure = %vx%v", w, h)
	}
}

func TestLoadFontFileMissing(t *testing.T) {
	if _, err := LoadFontFile(filepath.Join(t.TempDir(), "nope.ttf")); err == nil {
		t.Fatalf("expected error for missing font")
	}
}
