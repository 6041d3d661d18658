/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestEncodeDecodePreservesOrderAndFields(t *testing.T) {
	im := NewImage("data:image/png;base64,AAAA", 640, 480)
	im.X, im.Y, im.Rotation, im.Scale = 10, -20, 45, 0.5
	im.FlipH, im.Grayscale = true, true
	tx := NewText(3, 4)
	tx.Content = "hello\nworld"
	tx.Color = "#ff5c5c"
	tx.Selected = false

	b, err := EncodeItems([]Item{im, tx})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeItems(b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	gi, ok := got[0].(*Image)
	if !ok || *gi != *im {
		t.Fatalf("image = %+v, want %+v", got[0], im)
	}
	gt, ok := got[1].(*Text)
	if !ok || *gt != *tx {
		t.Fatalf("text = %+v, want %+v", got[1], tx)
	}
}

func TestEncodeWritesTypeDiscriminator(t *testing.T) {
	b, err := json.Marshal(NewText(0, 0))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"type":"text"`) {
		t.Fatalf("missing discriminator: %s", b)
	}
	if b, _ := EncodeItems(nil); string(b) != "[]" {
		t.Fatalf("EncodeItems(nil) = %s, want []", b)
	}
}

func TestDecodeInfersKindAndDefaults(t *testing.T) {
	items, err := DecodeItems([]byte(`[{"id":"a","src":"x"},{"content":"hi","color":"#ABC","fontSize":-1}]`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	im := items[0].(*Image)
	if im.Scale != 1 {
		t.Fatalf("default scale = %v, want 1", im.Scale)
	}
	if w, h := im.Size(); w != DefaultImageSize || h != DefaultImageSize {
		t.Fatalf("Size = %vx%v", w, h)
	}
	tx := items[1].(*Text)
	if tx.ID == "" {
		t.Fatalf("missing id should be generated")
	}
	if tx.Color != "#aabbcc" || tx.FontSize != DefaultTextFontSize {
		t.Fatalf("text defaults = %+v", tx)
	}
}

func TestDecodeRejectsBadShapes(t *testing.T) {
	if _, err := DecodeItems([]byte(`{"not":"an array"}`)); !errors.Is(err, ErrNotArray) {
		t.Fatalf("err = %v, want ErrNotArray", err)
	}
	if _, err := DecodeItems([]byte(`[{"type":"video"}]`)); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("err = %v, want ErrUnknownKind", err)
	}
	if _, err := DecodeItems([]byte(`[{"type":"image","scale":-2}]`)); !errors.Is(err, ErrInvalidItem) {
		t.Fatalf("err = %v, want ErrInvalidItem", err)
	}
}

func TestDecodeReassignsDuplicateIDs(t *testing.T) {
	items, err := DecodeItems([]byte(`[{"id":"x","src":"a"},{"id":"x","src":"b"}]`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if items[0].Common().ID != "x" || items[1].Common().ID == "x" {
		t.Fatalf("ids = %q, %q", items[0].Common().ID, items[1].Common().ID)
	}
}

func TestMatchIsExhaustive(t *testing.T) {
	kinds := []Item{NewImage("", 0, 0), NewText(0, 0)}
	var got []string
	for _, it := range kinds {
		got = append(got, Match(it,
			func(*Image) string { return "image" },
			func(*Text) string { return "text" }))
	}
	if strings.Join(got, ",") != "image,text" {
		t.Fatalf("Match = %v", got)
	}
}

func TestCloneIsDeep(t *testing.T) {
	tx := NewText(0, 0)
	c := tx.Clone().(*Text)
	c.Content = "changed"
	c.Common().X = 99
	if tx.Content != "" || tx.X != 0 {
		t.Fatalf("clone aliases original: %+v", tx)
	}
}

func TestNewIDsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewID()
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}

func TestNormalizeColor(t *testing.T) {
	if c, err := NormalizeColor("#FFF"); err != nil || c != "#ffffff" {
		t.Fatalf("NormalizeColor(#FFF) = %q, %v", c, err)
	}
	if c, err := NormalizeColor("ff5c5c"); err != nil || c != "#ff5c5c" {
		t.Fatalf("NormalizeColor(ff5c5c) = %q, %v", c, err)
	}
	if _, err := NormalizeColor("not-a-color"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestNextPaletteColorCycles(t *testing.T) {
	if got := NextPaletteColor(Palette[0]); got != Palette[1] {
		t.Fatalf("next of first = %q, want %q", got, Palette[1])
	}
	if got := NextPaletteColor(Palette[len(Palette)-1]); got != Palette[0] {
		t.Fatalf("next of last = %q, want %q", got, Palette[0])
	}
	if got := NextPaletteColor("bogus"); got != Palette[0] {
		t.Fatalf("next of bogus = %q, want %q", got, Palette[0])
	}
	if got := NextPaletteColor("#fefefe"); got != Palette[1] {
		t.Fatalf("near-white should advance from white, got %q", got)
	}
}
