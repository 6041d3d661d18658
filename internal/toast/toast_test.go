/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package toast

import "testing"

func run(s *Sink, seconds float32) {
	const step = float32(0.05)
	for t := float32(0); t < seconds; t += step {
		s.Update(step)
	}
}

func TestToastLifecycle(t *testing.T) {
	s := New()
	s.Errorf("not an image: %s", "a.txt")
	v := s.Visible()
	if len(v) != 1 || v[0].Level != Error || v[0].Message != "not an image: a.txt" || v[0].Offset != 1 {
		t.Fatalf("Visible = %+v", v)
	}
	run(s, SlideTime+0.1)
	if v := s.Visible(); len(v) != 1 || v[0].Offset != 0 {
		t.Fatalf("after slide-in = %+v", v)
	}
	run(s, Lifetime)
	if len(s.Visible()) != 1 {
		t.Fatalf("toast should still be sliding out")
	}
	run(s, SlideTime+0.2)
	if v := s.Visible(); len(v) != 0 {
		t.Fatalf("expected toast gone, got %+v", v)
	}
	if s.Update(0.1) {
		t.Fatalf("Update reported live toasts")
	}
}

func TestMaxVisibleDropsOldest(t *testing.T) {
	s := New()
	var first int
	for i := 0; i < MaxVisible+2; i++ {
		id := s.Infof("n%d", i)
		if i == 0 {
			first = id
		}
	}
	v := s.Visible()
	if len(v) != MaxVisible {
		t.Fatalf("len = %d, want %d", len(v), MaxVisible)
	}
	for _, x := range v {
		if x.ID == first {
			t.Fatalf("oldest toast not dropped")
		}
	}
}

func TestDismissAndOnChange(t *testing.T) {
	s := New()
	calls := 0
	s.OnChange(func() { calls++ })
	id := s.Successf("saved")
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
	s.Dismiss(id)
	run(s, SlideTime+0.2)
	if len(s.Visible()) != 0 {
		t.Fatalf("dismissed toast still visible")
	}
	if calls != 2 {
		t.Fatalf("calls = %d, want 2", calls)
	}
}

func TestLevelString(t *testing.T) {
	if Info.String() != "info" || Success.String() != "success" || Error.String() != "error" {
		t.Fatalf("unexpected level names")
	}
}
